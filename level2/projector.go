// Package level2 rebuilds the aggregated per-price depth book by replaying
// the execution-report stream. The projector holds no state that cannot be
// reconstructed from a replay; its correctness rests entirely on the
// stream's ordering and completeness guarantees, so a sequence gap is fatal
// rather than recoverable.
package level2

import (
	"fmt"

	"falcon-exchange/feed"
	"falcon-exchange/sbe"
)

// Update is one L2 record: the new aggregate quantity at a price level after
// applying a report.
type Update struct {
	Side        string `json:"side"`
	EventTime   string `json:"event_time"`
	PriceLevel  string `json:"price_level"`
	NewQuantity string `json:"new_quantity"`
	ProductID   string `json:"product_id"`
}

// Projector is the per-instrument depth book. It is not safe for concurrent
// use; one instrument's update stream is serialized by design.
type Projector struct {
	symbol          string
	bids            map[int64]int64
	asks            map[int64]int64
	lastSeenOrderID uint64
}

// New creates a projector for one instrument symbol.
func New(symbol string) *Projector {
	return &Projector{
		symbol: symbol,
		bids:   make(map[int64]int64),
		asks:   make(map[int64]int64),
	}
}

// Bid returns the aggregate resting quantity at a bid price.
func (p *Projector) Bid(price int64) int64 { return p.bids[price] }

// Ask returns the aggregate resting quantity at an ask price.
func (p *Projector) Ask(price int64) int64 { return p.asks[price] }

// BestBid returns the highest bid price with its aggregate quantity.
func (p *Projector) BestBid() (price, qty int64, ok bool) {
	for px, q := range p.bids {
		if !ok || px > price {
			price, qty, ok = px, q, true
		}
	}
	return price, qty, ok
}

// BestAsk returns the lowest ask price with its aggregate quantity.
func (p *Projector) BestAsk() (price, qty int64, ok bool) {
	for px, q := range p.asks {
		if !ok || px < price {
			price, qty, ok = px, q, true
		}
	}
	return price, qty, ok
}

// Depth returns copies of both aggregated sides.
func (p *Projector) Depth() (bids, asks map[int64]int64) {
	bids = make(map[int64]int64, len(p.bids))
	for px, qty := range p.bids {
		bids[px] = qty
	}
	asks = make(map[int64]int64, len(p.asks))
	for px, qty := range p.asks {
		asks[px] = qty
	}
	return bids, asks
}

// Process applies one report and returns the L2 update to emit, or nil when
// the report does not change the aggregated book (market orders, rejects).
// A non-nil error is an invariant violation: the caller must terminate, not
// continue, because the book can no longer be trusted to mirror the engine.
func (p *Projector) Process(r *feed.Report) (*Update, error) {
	switch r.ExecType {
	case sbe.ExecTypeNew:
		if err := p.advanceOrderID(r); err != nil {
			return nil, err
		}
		if !r.HasPrice() {
			return nil, nil
		}
		qty := p.adjust(r.Side, r.Price, r.OrderQty)
		return p.update(r, qty), nil

	case sbe.ExecTypeTrade:
		if !r.HasPrice() {
			return nil, nil
		}
		if !p.levelExists(r.Side, r.Price) {
			return nil, fmt.Errorf("level2: trade at non-existent price level %d side %s", r.Price, r.Side)
		}
		qty := p.adjust(r.Side, r.Price, -r.LastQty)
		if qty < 0 {
			return nil, fmt.Errorf("level2: negative quantity %d at price level %d side %s", qty, r.Price, r.Side)
		}
		return p.update(r, qty), nil

	case sbe.ExecTypeCanceled:
		if !r.HasPrice() {
			return nil, nil
		}
		// The report's leaves quantity is ground truth for how much of the
		// order was still resting at this price.
		qty := p.adjust(r.Side, r.Price, -r.LeavesQty)
		if qty < 0 {
			return nil, fmt.Errorf("level2: negative quantity %d at price level %d side %s", qty, r.Price, r.Side)
		}
		return p.update(r, qty), nil

	case sbe.ExecTypeRejected:
		if err := p.advanceOrderID(r); err != nil {
			return nil, err
		}
		return nil, nil
	}

	return nil, nil
}

// advanceOrderID enforces the stream's gap-free order-id sequence on the
// report types that consume an order id.
func (p *Projector) advanceOrderID(r *feed.Report) error {
	if r.OrderID != p.lastSeenOrderID+1 {
		return fmt.Errorf("level2: sequence gap: received order id %d, expected %d", r.OrderID, p.lastSeenOrderID+1)
	}
	p.lastSeenOrderID++
	return nil
}

func (p *Projector) side(side sbe.Side) map[int64]int64 {
	if side == sbe.SideBuy {
		return p.bids
	}
	return p.asks
}

func (p *Projector) levelExists(side sbe.Side, price int64) bool {
	_, ok := p.side(side)[price]
	return ok
}

// adjust applies a signed delta at a price level and returns the new
// aggregate quantity, removing the level when it reaches zero.
func (p *Projector) adjust(side sbe.Side, price, delta int64) int64 {
	levels := p.side(side)
	qty := levels[price] + delta
	if qty == 0 {
		delete(levels, price)
	} else {
		levels[price] = qty
	}
	return qty
}

func (p *Projector) update(r *feed.Report, newQty int64) *Update {
	return &Update{
		Side:        feed.SideWord(r.Side),
		EventTime:   feed.FormatTimestamp(r.TransactTime),
		PriceLevel:  feed.FormatDecimal(r.Price),
		NewQuantity: feed.FormatDecimal(newQty),
		ProductID:   p.symbol,
	}
}
