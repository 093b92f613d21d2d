package fares

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// ErrInvalidOperatorTable is returned when an operator table cannot be used.
var ErrInvalidOperatorTable = errors.New("invalid operator table")

// Operator binds a GTFS agency id to a ride type and the fare charged for it.
type Operator struct {
	AgencyID         string
	Name             string
	Type             RideType
	Low              float64
	Peak             float64
	Senior           float64
	TransferFrom     []RideType
	TransferDiscount float64
}

// Rule returns the pricing rule for the operator.
func (op Operator) Rule() PricingRule {
	var rule PricingRule
	if op.Low == op.Peak && op.Peak == op.Senior {
		rule = FlatRule{Base: op.Peak}
	} else {
		rule = TieredRule{Low: op.Low, Peak: op.Peak, Senior: op.Senior}
	}
	if len(op.TransferFrom) > 0 {
		rule = TransferRule{Rule: rule, From: op.TransferFrom, Discount: op.TransferDiscount}
	}
	return rule
}

func flatOperator(agencyID, name string, rideType RideType, base float64) Operator {
	return Operator{AgencyID: agencyID, Name: name, Type: rideType, Low: base, Peak: base, Senior: base}
}

// DefaultOperators returns the built-in San Francisco Bay Area operator table.
func DefaultOperators() []Operator {
	return []Operator{
		flatOperator("VTA", "Santa Clara VTA", VTA, 2.00),
		flatOperator("caltrain-ca-us", "Caltrain", Caltrain, 10.00),
		flatOperator("samtrans-ca-us", "SamTrans", SamTrans, 4.00),
		flatOperator("Santa Cruz Metro", "Santa Cruz Metro", SantaCruz, 5.00),
		flatOperator("SFMTA", "San Francisco Muni", SFMTA, 6.00),
		flatOperator("BART", "Bay Area Rapid Transit", BART, 3.50),
		flatOperator("AC Transit", "AC Transit", ACTransit, 5.00),
		flatOperator("Golden Gate Transit", "Golden Gate Transit", GGTransit, 7.50),
	}
}

// DefaultZones returns coarse Bay Area zones. They do not affect pricing.
func DefaultZones() []FareZone {
	return []FareZone{
		{ID: "SF", Name: "San Francisco", Box: NewFareZoneBox(-122.52, 37.70, -122.35, 37.82)},
		{ID: "EASTBAY", Name: "East Bay", Box: NewFareZoneBox(-122.35, 37.60, -121.90, 38.05)},
		{ID: "PENINSULA", Name: "Peninsula", Box: NewFareZoneBox(-122.52, 37.40, -122.10, 37.70)},
		{ID: "SOUTHBAY", Name: "South Bay", Box: NewFareZoneBox(-122.10, 37.10, -121.60, 37.50)},
	}
}

// DefaultOperatorTable builds the table for DefaultOperators and DefaultZones.
func DefaultOperatorTable() *OperatorTable {
	table, err := NewOperatorTable(DefaultOperators())
	if err != nil {
		panic(err)
	}
	table.Zones = DefaultZones()
	return table
}

// OperatorTable is the classification and pricing data for one region.
type OperatorTable struct {
	Operators  []Operator
	Zones      []FareZone
	Classifier *Classifier
	Fares      *FareTable
}

// NewOperatorTable validates operators and builds the classifier and fare table
// over them. The first operator listed for a ride type supplies its pricing rule.
func NewOperatorTable(operators []Operator) (*OperatorTable, error) {
	seen := make(map[string]bool, len(operators))
	rules := make(map[RideType]PricingRule, len(operators))

	for i, op := range operators {
		if op.AgencyID == "" {
			return nil, fmt.Errorf("operator %d: empty agency id: %w", i, ErrInvalidOperatorTable)
		}
		if op.Type == Unclassified {
			return nil, fmt.Errorf("operator %q: empty ride type: %w", op.AgencyID, ErrInvalidOperatorTable)
		}
		if !op.Type.Known() {
			return nil, fmt.Errorf("operator %q: unknown ride type %q: %w", op.AgencyID, string(op.Type), ErrInvalidOperatorTable)
		}
		for _, from := range op.TransferFrom {
			if !from.Known() {
				return nil, fmt.Errorf("operator %q: unknown transfer ride type %q: %w", op.AgencyID, string(from), ErrInvalidOperatorTable)
			}
		}
		if seen[op.AgencyID] {
			return nil, fmt.Errorf("operator %q: duplicate agency id: %w", op.AgencyID, ErrInvalidOperatorTable)
		}
		if op.Low < 0 || op.Peak < 0 || op.Senior < 0 || op.TransferDiscount < 0 {
			return nil, fmt.Errorf("operator %q: negative amount: %w", op.AgencyID, ErrInvalidOperatorTable)
		}
		seen[op.AgencyID] = true

		if _, exists := rules[op.Type]; !exists {
			rules[op.Type] = op.Rule()
		}
	}

	return &OperatorTable{
		Operators:  operators,
		Classifier: NewClassifier(operators),
		Fares:      NewFareTable(rules),
	}, nil
}

// FindOperator returns the operator registered for agencyID, or nil.
func (t *OperatorTable) FindOperator(agencyID string) *Operator {
	for i := range t.Operators {
		if t.Operators[i].AgencyID == agencyID {
			return &t.Operators[i]
		}
	}
	return nil
}

type yamlTransfer struct {
	From     []string `yaml:"from"`
	Discount float64  `yaml:"discount"`
}

type yamlOperator struct {
	AgencyID string        `yaml:"agency_id"`
	Name     string        `yaml:"name"`
	Type     string        `yaml:"type"`
	Fare     *float64      `yaml:"fare"`
	Low      *float64      `yaml:"low"`
	Peak     *float64      `yaml:"peak"`
	Senior   *float64      `yaml:"senior"`
	Transfer *yamlTransfer `yaml:"transfer"`
}

type yamlZone struct {
	ID     string  `yaml:"id"`
	Name   string  `yaml:"name"`
	MinLon float64 `yaml:"min_lon"`
	MinLat float64 `yaml:"min_lat"`
	MaxLon float64 `yaml:"max_lon"`
	MaxLat float64 `yaml:"max_lat"`
}

type yamlOperatorTable struct {
	Operators []yamlOperator `yaml:"operators"`
	Zones     []yamlZone     `yaml:"zones"`
}

// LoadOperatorTable reads an operator table from YAML:
//
//	operators:
//	  - agency_id: BART
//	    type: BART
//	    fare: 3.50
//	  - agency_id: caltrain-ca-us
//	    type: CALTRAIN
//	    low: 8.00
//	    peak: 10.00
//	    senior: 5.00
//	    transfer: {from: [BART], discount: 0.50}
//	zones:
//	  - {id: SF, name: San Francisco, min_lon: -122.52, min_lat: 37.70, max_lon: -122.35, max_lat: 37.82}
//
// A tier left out of a tiered entry takes the value of fare, or zero.
func LoadOperatorTable(r io.Reader) (*OperatorTable, error) {
	var doc yamlOperatorTable
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty document: %w", ErrInvalidOperatorTable)
		}
		return nil, fmt.Errorf("decoding operator table: %v: %w", err, ErrInvalidOperatorTable)
	}

	operators := make([]Operator, 0, len(doc.Operators))
	for _, entry := range doc.Operators {
		var base float64
		if entry.Fare != nil {
			base = *entry.Fare
		}
		op := Operator{
			AgencyID: entry.AgencyID,
			Name:     entry.Name,
			Type:     RideType(entry.Type),
			Low:      valueOr(entry.Low, base),
			Peak:     valueOr(entry.Peak, base),
			Senior:   valueOr(entry.Senior, base),
		}
		if entry.Transfer != nil {
			for _, from := range entry.Transfer.From {
				op.TransferFrom = append(op.TransferFrom, RideType(from))
			}
			op.TransferDiscount = entry.Transfer.Discount
		}
		operators = append(operators, op)
	}

	table, err := NewOperatorTable(operators)
	if err != nil {
		return nil, err
	}

	zoneIDs := make(map[string]bool, len(doc.Zones))
	for i, z := range doc.Zones {
		if z.ID == "" {
			return nil, fmt.Errorf("zone %d: empty id: %w", i, ErrInvalidOperatorTable)
		}
		if zoneIDs[z.ID] {
			return nil, fmt.Errorf("zone %q: duplicate id: %w", z.ID, ErrInvalidOperatorTable)
		}
		zoneIDs[z.ID] = true
		table.Zones = append(table.Zones, FareZone{
			ID:   z.ID,
			Name: z.Name,
			Box:  NewFareZoneBox(z.MinLon, z.MinLat, z.MaxLon, z.MaxLat),
		})
	}

	return table, nil
}

func valueOr(v *float64, fallback float64) float64 {
	if v == nil {
		return fallback
	}
	return *v
}
