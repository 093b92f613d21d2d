package fares

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func assertTiers(t *testing.T, f Fare, low, peak, senior float64) {
	t.Helper()
	assert.InDelta(t, low, f.Low, 1e-9, "low")
	assert.InDelta(t, peak, f.Peak, 1e-9, "peak")
	assert.InDelta(t, senior, f.Senior, 1e-9, "senior")
}

func TestNewFareSetsAllTiers(t *testing.T) {
	f := NewFare(2.25)
	assertTiers(t, f, 2.25, 2.25, 2.25)
	assert.False(t, f.TransferReduction)
}

func TestAccumulate(t *testing.T) {
	t.Run("adds elementwise", func(t *testing.T) {
		f := NewTieredFare(1, 2, 0.5)
		other := NewTieredFare(3, 4, 1.5)
		f.Accumulate(&other)
		assertTiers(t, f, 4, 6, 2)
	})

	t.Run("nil is a no-op", func(t *testing.T) {
		f := NewFare(3)
		f.Accumulate(nil)
		assertTiers(t, f, 3, 3, 3)
	})

	t.Run("is commutative", func(t *testing.T) {
		a := NewTieredFare(1.1, 2.2, 0.3)
		b := NewTieredFare(4.4, 0.5, 6.6)

		ab := a
		ab.Accumulate(&b)
		ba := b
		ba.Accumulate(&a)

		assertTiers(t, ab, ba.Low, ba.Peak, ba.Senior)
	})

	t.Run("is associative", func(t *testing.T) {
		a := NewTieredFare(1.1, 2.2, 0.3)
		b := NewTieredFare(4.4, 0.5, 6.6)
		c := NewTieredFare(7.7, 8.8, 9.9)

		left := a
		left.Accumulate(&b)
		left.Accumulate(&c)

		bc := b
		bc.Accumulate(&c)
		right := a
		right.Accumulate(&bc)

		assertTiers(t, left, right.Low, right.Peak, right.Senior)
	})
}

func TestDiscount(t *testing.T) {
	f := NewFare(5)

	f.Discount(1.00)
	assertTiers(t, f, 4, 4, 4)
	assert.True(t, f.TransferReduction)

	f.Discount(1.00)
	assertTiers(t, f, 3, 3, 3)
	assert.True(t, f.TransferReduction)
}

func TestDiscountAllowsNegativeAmounts(t *testing.T) {
	f := NewFare(0.5)
	f.Discount(1)
	assertTiers(t, f, -0.5, -0.5, -0.5)
}

func TestCloneCopiesAmountsOnly(t *testing.T) {
	f := NewTieredFare(1, 2, 3)
	f.Type = BART
	f.TransferReduction = true

	c := f.Clone()
	assertTiers(t, c, 1, 2, 3)
	assert.Equal(t, Unclassified, c.Type)
	assert.False(t, c.TransferReduction)

	c.Accumulate(&f)
	assertTiers(t, f, 1, 2, 3)
}
