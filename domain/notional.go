package domain

import "math/bits"

// Notional is an unsigned 128-bit accumulator for Σ fillQty*fillPx. Prices
// and quantities admitted by the engine are positive mantissas, so the sum
// never goes negative; 128 bits keep the running total exact where an int64
// would overflow.
type Notional struct {
	hi uint64
	lo uint64
}

// AddProduct accumulates qty*px. qty and px must be non-negative.
func (n *Notional) AddProduct(qty, px int64) {
	hi, lo := bits.Mul64(uint64(qty), uint64(px))
	var carry uint64
	n.lo, carry = bits.Add64(n.lo, lo, 0)
	n.hi, _ = bits.Add64(n.hi, hi, carry)
}

// IsZero reports whether nothing has been accumulated.
func (n Notional) IsZero() bool {
	return n.hi == 0 && n.lo == 0
}

// DivInt64 returns n/div as an int64. div must be positive. A quotient
// outside the int64 range means the engine's VWAP invariant is broken and
// panics.
func (n Notional) DivInt64(div int64) int64 {
	d := uint64(div)
	if n.hi >= d {
		panic("notional: quotient out of int64 range")
	}
	quo, _ := bits.Div64(n.hi, n.lo, d)
	if quo > uint64(1<<63-1) {
		panic("notional: quotient out of int64 range")
	}
	return int64(quo)
}
