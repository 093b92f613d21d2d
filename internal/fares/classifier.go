package fares

// RideType is the service classification derived from an operator's identity.
type RideType string

const (
	// Unclassified marks a ride whose operator is not in the operator table.
	Unclassified RideType = ""

	VTA       RideType = "VTA"
	Caltrain  RideType = "CALTRAIN"
	SamTrans  RideType = "SAMTRANS"
	SantaCruz RideType = "SANTACRUZ"
	SFMTA     RideType = "SFMTA"
	BART      RideType = "BART"
	ACTransit RideType = "AC_TRANSIT"
	GGTransit RideType = "GG_TRANSIT"
)

var knownRideTypes = map[RideType]bool{
	VTA:       true,
	Caltrain:  true,
	SamTrans:  true,
	SantaCruz: true,
	SFMTA:     true,
	BART:      true,
	ACTransit: true,
	GGTransit: true,
}

// Known reports whether t is one of the recognized ride types. Unclassified
// is not known.
func (t RideType) Known() bool {
	return knownRideTypes[t]
}

func (t RideType) String() string {
	if t == Unclassified {
		return "UNCLASSIFIED"
	}
	return string(t)
}

// Classifier maps a route's operator to a RideType using an ordered operator list.
type Classifier struct {
	byAgency map[string]RideType
}

// NewClassifier builds a classifier over operators. When the same agency id
// appears more than once the earliest entry wins.
func NewClassifier(operators []Operator) *Classifier {
	c := &Classifier{byAgency: make(map[string]RideType, len(operators))}
	for _, op := range operators {
		if _, exists := c.byAgency[op.AgencyID]; exists {
			continue
		}
		c.byAgency[op.AgencyID] = op.Type
	}
	return c
}

// Classify matches the route's agency id exactly and case-sensitively. The
// boolean result is false when the operator is not recognized.
func (c *Classifier) Classify(route Route) (RideType, bool) {
	rideType, ok := c.byAgency[route.AgencyID]
	if !ok {
		return Unclassified, false
	}
	return rideType, true
}
