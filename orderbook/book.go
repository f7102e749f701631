// Package orderbook implements the engine-local resting book: a fixed-size
// order pool with stable indices, per-side ordered price sets, and an
// intrusive FIFO per price level for time priority.
package orderbook

import (
	"falcon-exchange/domain"
	"falcon-exchange/sbe"
)

// Book is the single-instrument resting order book. It is owned by the
// matching thread and carries no synchronization.
type Book struct {
	pool *Pool
	keys map[domain.Key]int32
	bids half
	asks half
}

// New creates a book bounded at maxOrders live orders.
func New(maxOrders int) *Book {
	return &Book{
		pool: NewPool(maxOrders),
		keys: make(map[domain.Key]int32, maxOrders),
		// Bids order descending so the tree minimum is the highest price;
		// asks order ascending so it is the lowest.
		bids: newHalf(func(a, b int64) int { return cmp64(b, a) }),
		asks: newHalf(func(a, b int64) int { return cmp64(a, b) }),
	}
}

func cmp64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// IsFull reports whether the pool is at capacity. No resting order is ever
// displaced to make room.
func (b *Book) IsFull() bool {
	return b.pool.IsFull()
}

// Live returns the number of live orders on the book.
func (b *Book) Live() int {
	return b.pool.Live()
}

// Contains reports whether key identifies a live order.
func (b *Book) Contains(key domain.Key) bool {
	_, ok := b.keys[key]
	return ok
}

// Order returns the live order at a pool index.
func (b *Book) Order(idx int32) *domain.Order {
	return b.pool.Get(idx)
}

// Insert rests the order on side S at its limit price, appending it to the
// FIFO at that price. ok is false when the pool is at capacity.
func Insert[S Side](b *Book, o domain.Order) bool {
	var s S
	idx, ok := b.pool.Insert(o)
	if !ok {
		return false
	}
	b.keys[o.Key()] = idx
	s.own(b).append(b.pool, idx)
	return true
}

// BestOpposite returns the first order in FIFO order at the extremal price of
// the side opposite S, or ok=false when that side is empty.
func BestOpposite[S Side](b *Book) (*domain.Order, int32, bool) {
	var s S
	lvl := s.opp(b).best()
	if lvl == nil {
		return nil, domain.NoIndex, false
	}
	return b.pool.Get(lvl.Head), lvl.Head, true
}

// RemoveOpposite unlinks and frees the resting order at idx on the side
// opposite S. Used on the match path after a complete fill.
func RemoveOpposite[S Side](b *Book, idx int32) domain.Order {
	var s S
	s.opp(b).unlink(b.pool, idx)
	o := b.pool.Remove(idx)
	delete(b.keys, o.Key())
	return o
}

// Remove resolves key, unlinks the order from its price level and frees its
// slot. ok is false for an unknown key.
func (b *Book) Remove(key domain.Key) (domain.Order, bool) {
	idx, ok := b.keys[key]
	if !ok {
		return domain.Order{}, false
	}
	o := b.pool.Get(idx)
	b.halfFor(o).unlink(b.pool, idx)
	removed := b.pool.Remove(idx)
	delete(b.keys, key)
	return removed, true
}

// BestBid returns the first order at the highest resting buy price.
func (b *Book) BestBid() (*domain.Order, bool) {
	lvl := b.bids.best()
	if lvl == nil {
		return nil, false
	}
	return b.pool.Get(lvl.Head), true
}

// BestAsk returns the first order at the lowest resting sell price.
func (b *Book) BestAsk() (*domain.Order, bool) {
	lvl := b.asks.best()
	if lvl == nil {
		return nil, false
	}
	return b.pool.Get(lvl.Head), true
}

// LevelQuantity returns the aggregate leaves quantity resting at price on the
// given half. Used by tests to cross-check projections.
func (b *Book) LevelQuantity(side Side, price int64) int64 {
	h := side.own(b)
	lvl, ok := h.levels[price]
	if !ok {
		return 0
	}
	var total int64
	for idx := lvl.Head; idx != domain.NoIndex; idx = b.pool.Get(idx).NextIdx {
		total += b.pool.Get(idx).LeavesQty
	}
	return total
}

func (b *Book) halfFor(o *domain.Order) *half {
	if o.Side == sbe.SideBuy {
		return &b.bids
	}
	return &b.asks
}
