package orderbook

import (
	"github.com/emirpasic/gods/v2/trees/redblacktree"

	"falcon-exchange/domain"
)

// Level is one resting price level: the head and tail pool indices of the
// FIFO of orders at that price. The FIFO itself is threaded through the
// orders' PrevIdx/NextIdx links.
type Level struct {
	Price int64
	Head  int32
	Tail  int32
}

// half holds one side of the book: the ordered set of active prices and the
// price -> level map. The tree comparator is chosen so that Left() is always
// the best price for that side; level lookup on the hot path goes through the
// hash map.
type half struct {
	prices *redblacktree.Tree[int64, *Level]
	levels map[int64]*Level
}

func newHalf(cmp func(a, b int64) int) half {
	return half{
		prices: redblacktree.NewWith[int64, *Level](cmp),
		levels: make(map[int64]*Level),
	}
}

// best returns the level at the extremal price, or nil when the side is empty.
func (h *half) best() *Level {
	node := h.prices.Left()
	if node == nil {
		return nil
	}
	return node.Value
}

// append links the order at idx onto the tail of its price level, creating
// the level when this is the first order at that price.
func (h *half) append(pool *Pool, idx int32) {
	o := pool.Get(idx)
	lvl, ok := h.levels[o.Price]
	if !ok {
		lvl = &Level{Price: o.Price, Head: idx, Tail: idx}
		h.levels[o.Price] = lvl
		h.prices.Put(o.Price, lvl)
		o.PrevIdx = domain.NoIndex
		o.NextIdx = domain.NoIndex
		return
	}
	tail := pool.Get(lvl.Tail)
	tail.NextIdx = idx
	o.PrevIdx = lvl.Tail
	o.NextIdx = domain.NoIndex
	lvl.Tail = idx
}

// unlink removes the order at idx from its price level FIFO, dropping the
// level from the price set when it empties.
func (h *half) unlink(pool *Pool, idx int32) {
	o := pool.Get(idx)
	lvl := h.levels[o.Price]

	if o.PrevIdx != domain.NoIndex {
		pool.Get(o.PrevIdx).NextIdx = o.NextIdx
	} else {
		lvl.Head = o.NextIdx
	}
	if o.NextIdx != domain.NoIndex {
		pool.Get(o.NextIdx).PrevIdx = o.PrevIdx
	} else {
		lvl.Tail = o.PrevIdx
	}
	o.PrevIdx = domain.NoIndex
	o.NextIdx = domain.NoIndex

	if lvl.Head == domain.NoIndex {
		delete(h.levels, lvl.Price)
		h.prices.Remove(lvl.Price)
	}
}
