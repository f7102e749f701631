package orderbook

import "falcon-exchange/domain"

// Pool is a fixed-capacity slab of orders with stable indices. Freed slots go
// onto a free list and are reused; an index handed out by Insert stays valid
// until the matching Remove.
type Pool struct {
	orders []domain.Order
	free   []int32
	live   int
}

// NewPool allocates a pool for at most capacity live orders.
func NewPool(capacity int) *Pool {
	return &Pool{
		orders: make([]domain.Order, 0, capacity),
		free:   make([]int32, 0, capacity),
	}
}

// IsFull reports whether the pool holds its configured maximum of live orders.
func (p *Pool) IsFull() bool {
	return p.live == cap(p.orders)
}

// Live returns the number of live orders.
func (p *Pool) Live() int {
	return p.live
}

// Insert stores o and returns its index. ok is false when the pool is full;
// the caller translates that into a reject.
func (p *Pool) Insert(o domain.Order) (int32, bool) {
	if p.IsFull() {
		return domain.NoIndex, false
	}
	p.live++
	if n := len(p.free); n > 0 {
		idx := p.free[n-1]
		p.free = p.free[:n-1]
		p.orders[idx] = o
		return idx, true
	}
	p.orders = append(p.orders, o)
	return int32(len(p.orders) - 1), true
}

// Get returns the order at idx. The pointer is invalidated by Remove of the
// same index.
func (p *Pool) Get(idx int32) *domain.Order {
	return &p.orders[idx]
}

// Remove frees the slot at idx and returns the order that occupied it.
func (p *Pool) Remove(idx int32) domain.Order {
	o := p.orders[idx]
	p.orders[idx].Reset()
	p.free = append(p.free, idx)
	p.live--
	return o
}
