package fares

// Fare holds the tiered amounts charged for one fare segment.
type Fare struct {
	Type              RideType
	Low               float64
	Peak              float64
	Senior            float64
	TransferReduction bool
}

// NewFare creates a flat fare where every tier is charged the base amount.
func NewFare(base float64) Fare {
	return Fare{Low: base, Peak: base, Senior: base}
}

func NewTieredFare(low, peak, senior float64) Fare {
	return Fare{Low: low, Peak: peak, Senior: senior}
}

// Accumulate adds the tiers of other into f. A nil other is a no-op.
func (f *Fare) Accumulate(other *Fare) {
	if other == nil {
		return
	}
	f.Low += other.Low
	f.Peak += other.Peak
	f.Senior += other.Senior
}

// Discount subtracts amount from every tier and marks the fare as reduced.
// Amounts are not floored at zero, and each call subtracts again.
func (f *Fare) Discount(amount float64) {
	f.Low -= amount
	f.Peak -= amount
	f.Senior -= amount
	f.TransferReduction = true
}

// Clone returns a copy of f carrying over only its amounts.
func (f *Fare) Clone() Fare {
	var c Fare
	c.Accumulate(f)
	return c
}
