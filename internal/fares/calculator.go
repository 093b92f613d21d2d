package fares

import "fmt"

const DiagnosticUnclassifiedOperator = "unclassified_operator"

// Diagnostic records a condition noticed while pricing that did not stop the
// computation.
type Diagnostic struct {
	Kind      string
	RideIndex int
	RouteID   string
	AgencyID  string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: ride %d route %q agency %q", d.Kind, d.RideIndex, d.RouteID, d.AgencyID)
}

type DiagnosticHandler func(Diagnostic)

type Options struct {
	// SplitUnclassifiedByOperator keeps consecutive unclassified rides in
	// separate segments unless they share an agency id. When false, all
	// adjacent unclassified rides merge into one segment.
	SplitUnclassifiedByOperator bool

	// OnDiagnostic, when set, is called synchronously for every diagnostic.
	OnDiagnostic DiagnosticHandler
}

// Calculator prices itineraries. It holds no per-call state and is safe for
// concurrent use.
type Calculator struct {
	table *OperatorTable
	opts  Options
}

func NewCalculator(table *OperatorTable, opts Options) *Calculator {
	return &Calculator{table: table, opts: opts}
}

func (c *Calculator) Table() *OperatorTable {
	return c.table
}

// Segment is a maximal run of consecutive rides charged as one fare.
type Segment struct {
	From      Stop
	To        Stop
	// Path is the boarding stop followed by the arrival stop of every leg.
	Path      []Stop
	Type      RideType
	AgencyID  string
	RideCount int
	Fare      Fare
}

type Itinerary struct {
	Segments    []Segment
	Diagnostics []Diagnostic
}

// Fares returns one fare per segment, in travel order.
func (it *Itinerary) Fares() []Fare {
	fares := make([]Fare, 0, len(it.Segments))
	for _, segment := range it.Segments {
		fares = append(fares, segment.Fare)
	}
	return fares
}

// Total sums the tiers of every segment fare. The result carries no ride
// type and is marked reduced when any segment was.
func (it *Itinerary) Total() Fare {
	if len(it.Segments) == 0 {
		return Fare{}
	}

	total := it.Segments[0].Fare.Clone()
	for i := range it.Segments {
		if i > 0 {
			total.Accumulate(&it.Segments[i].Fare)
		}
		if it.Segments[i].Fare.TransferReduction {
			total.TransferReduction = true
		}
	}
	return total
}

type fareSegment struct {
	from      Stop
	to        Stop
	path      []Stop
	rideType  RideType
	agencyID  string
	rideCount int
	fare      Fare
	prev      *fareSegment
}

func (s *fareSegment) previousType() RideType {
	if s.prev == nil {
		return Unclassified
	}
	return s.prev.rideType
}

// CalculateFares returns one fare per fare segment of rides, in order.
func (c *Calculator) CalculateFares(rides []Ride) ([]Fare, error) {
	itinerary, err := c.Compute(rides)
	if err != nil {
		return nil, err
	}
	return itinerary.Fares(), nil
}

// Compute merges consecutive rides of the same ride type into fare segments
// and prices each one. A malformed ride aborts the whole computation.
func (c *Calculator) Compute(rides []Ride) (*Itinerary, error) {
	var (
		segments    []*fareSegment
		diagnostics []Diagnostic
		current     *fareSegment
	)

	for i, ride := range rides {
		leg, err := ride.exemplar()
		if err != nil {
			return nil, fmt.Errorf("ride %d: %w", i, err)
		}

		rideType, ok := c.table.Classifier.Classify(leg.Route)
		if !ok {
			d := Diagnostic{
				Kind:      DiagnosticUnclassifiedOperator,
				RideIndex: i,
				RouteID:   leg.Route.ID,
				AgencyID:  leg.Route.AgencyID,
			}
			diagnostics = append(diagnostics, d)
			if c.opts.OnDiagnostic != nil {
				c.opts.OnDiagnostic(d)
			}
		}

		to := ride.destination()
		if current != nil && c.sameSegment(current, rideType, leg.Route.AgencyID) {
			current.to = to
			current.path = append(current.path, ride.arrivals()...)
			current.rideCount++
			current.fare = c.table.Fares.BaseFare(current.rideType, current.previousType())
			continue
		}

		current = &fareSegment{
			from:      leg.From,
			to:        to,
			path:      append([]Stop{leg.From}, ride.arrivals()...),
			rideType:  rideType,
			agencyID:  leg.Route.AgencyID,
			rideCount: 1,
			prev:      current,
		}
		current.fare = c.table.Fares.BaseFare(current.rideType, current.previousType())
		segments = append(segments, current)
	}

	itinerary := &Itinerary{
		Segments:    make([]Segment, 0, len(segments)),
		Diagnostics: diagnostics,
	}
	for _, s := range segments {
		itinerary.Segments = append(itinerary.Segments, Segment{
			From:      s.from,
			To:        s.to,
			Path:      s.path,
			Type:      s.rideType,
			AgencyID:  s.agencyID,
			RideCount: s.rideCount,
			Fare:      s.fare,
		})
	}
	return itinerary, nil
}

func (c *Calculator) sameSegment(current *fareSegment, rideType RideType, agencyID string) bool {
	if current.rideType != rideType {
		return false
	}
	if rideType == Unclassified && c.opts.SplitUnclassifiedByOperator {
		return current.agencyID == agencyID
	}
	return true
}
