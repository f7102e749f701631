package orderbook

import "falcon-exchange/sbe"

// Side selects the buy or sell half of the book at compile time. The matching
// code is generic over this interface so the hot path carries no per-side
// branches; Buy and Sell are the only implementations.
type Side interface {
	Wire() sbe.Side
	// CanCross reports whether an aggressor at aggPx trades against a
	// resting order at restPx.
	CanCross(aggPx, restPx int64) bool
	own(b *Book) *half
	opp(b *Book) *half
}

type Buy struct{}

func (Buy) Wire() sbe.Side { return sbe.SideBuy }

func (Buy) CanCross(aggPx, restPx int64) bool { return aggPx >= restPx }

func (Buy) own(b *Book) *half { return &b.bids }

func (Buy) opp(b *Book) *half { return &b.asks }

type Sell struct{}

func (Sell) Wire() sbe.Side { return sbe.SideSell }

func (Sell) CanCross(aggPx, restPx int64) bool { return aggPx <= restPx }

func (Sell) own(b *Book) *half { return &b.asks }

func (Sell) opp(b *Book) *half { return &b.bids }
