package domain

import "falcon-exchange/sbe"

// NoIndex is the nil value for pool-index links. Orders reference each other
// by pool index rather than by pointer so that freeing and reusing a slot
// never leaves a dangling reference.
const NoIndex int32 = -1

// Key uniquely identifies a live order on the book.
type Key struct {
	Account sbe.UUID
	ClOrdID sbe.UUID
}

// Order is the engine's hot record. Fields touched on the match path are
// grouped at the front so they share a cache line; identity and static fields
// follow.
type Order struct {
	// Hot fields, read and written on every fill.
	LeavesQty     int64
	Price         int64 // decimal-64 mantissa; sbe.NullDecimal for market orders
	CumQty        int64
	TotalNotional Notional // Σ fillQty*fillPx across fills, 128-bit
	SeqNum        uint64   // engine-assigned admission order, the time component of priority
	Qty           int64

	// Intrusive FIFO links within a price level (pool indices).
	PrevIdx int32
	NextIdx int32

	Side    sbe.Side
	OrdType sbe.OrdType

	// Cold fields.
	ClOrdID sbe.UUID
	Account sbe.UUID
	Symbol  sbe.Symbol
}

// Key returns the composite live-order key.
func (o *Order) Key() Key {
	return Key{Account: o.Account, ClOrdID: o.ClOrdID}
}

// IsFullyFilled reports whether no quantity remains.
func (o *Order) IsFullyFilled() bool {
	return o.LeavesQty == 0
}

// Fill applies one execution of qty at px to the order's mutable state.
func (o *Order) Fill(qty, px int64) {
	o.CumQty += qty
	o.LeavesQty -= qty
	o.TotalNotional.AddProduct(qty, px)
}

// AvgPx returns the volume-weighted average fill price mantissa, 0 if the
// order has no fills.
func (o *Order) AvgPx() int64 {
	if o.CumQty == 0 {
		return 0
	}
	return o.TotalNotional.DivInt64(o.CumQty)
}

// Reset clears the record for slot reuse in the pool.
func (o *Order) Reset() {
	*o = Order{PrevIdx: NoIndex, NextIdx: NoIndex}
}
