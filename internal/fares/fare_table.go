package fares

// PricingRule prices a segment of the current ride type. previous is the ride
// type of the segment before it, or Unclassified when there is none.
type PricingRule interface {
	Price(current, previous RideType) Fare
}

// FlatRule charges the same base amount on every tier.
type FlatRule struct {
	Base float64
}

func (r FlatRule) Price(current, previous RideType) Fare {
	return NewFare(r.Base)
}

type TieredRule struct {
	Low    float64
	Peak   float64
	Senior float64
}

func (r TieredRule) Price(current, previous RideType) Fare {
	return NewTieredFare(r.Low, r.Peak, r.Senior)
}

// TransferRule discounts the wrapped rule when the rider transfers from one of
// the listed ride types.
type TransferRule struct {
	Rule     PricingRule
	From     []RideType
	Discount float64
}

func (r TransferRule) Price(current, previous RideType) Fare {
	fare := r.Rule.Price(current, previous)
	for _, from := range r.From {
		if from == previous && previous != Unclassified {
			fare.Discount(r.Discount)
			break
		}
	}
	return fare
}

// FareTable looks up the pricing rule for a ride type.
type FareTable struct {
	rules map[RideType]PricingRule
}

func NewFareTable(rules map[RideType]PricingRule) *FareTable {
	copied := make(map[RideType]PricingRule, len(rules))
	for rideType, rule := range rules {
		copied[rideType] = rule
	}
	return &FareTable{rules: copied}
}

// BaseFare returns the fare for a segment of type current. Types with no rule,
// Unclassified included, are charged nothing.
func (t *FareTable) BaseFare(current, previous RideType) Fare {
	var fare Fare
	if rule, ok := t.rules[current]; ok && current != Unclassified {
		fare = rule.Price(current, previous)
	}
	fare.Type = current
	return fare
}
