package orderbook

import (
	"testing"

	"falcon-exchange/domain"
	"falcon-exchange/sbe"
)

func mkOrder(tag byte, side sbe.Side, price, qty int64, seq uint64) domain.Order {
	var clOrdID, account sbe.UUID
	clOrdID[0] = tag
	account[0] = tag
	return domain.Order{
		LeavesQty: qty,
		Price:     price,
		SeqNum:    seq,
		Qty:       qty,
		PrevIdx:   domain.NoIndex,
		NextIdx:   domain.NoIndex,
		Side:      side,
		OrdType:   sbe.OrdTypeLimit,
		ClOrdID:   clOrdID,
		Account:   account,
	}
}

func TestInsertAndBest(t *testing.T) {
	b := New(16)

	if !Insert[Sell](b, mkOrder(1, sbe.SideSell, 50_000, 100, 1)) {
		t.Fatal("insert failed")
	}
	ask, ok := b.BestAsk()
	if !ok || ask.Price != 50_000 {
		t.Fatalf("expected best ask 50000, got %+v ok=%v", ask, ok)
	}

	if !Insert[Buy](b, mkOrder(2, sbe.SideBuy, 49_000, 100, 2)) {
		t.Fatal("insert failed")
	}
	bid, ok := b.BestBid()
	if !ok || bid.Price != 49_000 {
		t.Fatalf("expected best bid 49000, got %+v ok=%v", bid, ok)
	}
}

func TestPricePriority(t *testing.T) {
	b := New(16)

	Insert[Sell](b, mkOrder(1, sbe.SideSell, 51_000, 100, 1))
	Insert[Sell](b, mkOrder(2, sbe.SideSell, 50_000, 100, 2))
	Insert[Sell](b, mkOrder(3, sbe.SideSell, 52_000, 100, 3))

	ask, _ := b.BestAsk()
	if ask.Price != 50_000 {
		t.Errorf("expected best ask 50000, got %d", ask.Price)
	}

	Insert[Buy](b, mkOrder(4, sbe.SideBuy, 48_000, 100, 4))
	Insert[Buy](b, mkOrder(5, sbe.SideBuy, 49_000, 100, 5))

	bid, _ := b.BestBid()
	if bid.Price != 49_000 {
		t.Errorf("expected best bid 49000, got %d", bid.Price)
	}
}

func TestFIFOWithinLevel(t *testing.T) {
	b := New(16)

	Insert[Sell](b, mkOrder(1, sbe.SideSell, 50_000, 100, 1))
	Insert[Sell](b, mkOrder(2, sbe.SideSell, 50_000, 200, 2))
	Insert[Sell](b, mkOrder(3, sbe.SideSell, 50_000, 300, 3))

	// The head of the level is the earliest insertion.
	order, idx, ok := BestOpposite[Buy](b)
	if !ok || order.SeqNum != 1 {
		t.Fatalf("expected seq 1 at head, got %+v", order)
	}

	RemoveOpposite[Buy](b, idx)
	order, _, _ = BestOpposite[Buy](b)
	if order.SeqNum != 2 {
		t.Fatalf("expected seq 2 after removing head, got seq %d", order.SeqNum)
	}

	if got := b.LevelQuantity(Sell{}, 50_000); got != 500 {
		t.Errorf("expected level quantity 500, got %d", got)
	}
}

func TestRemoveByKey(t *testing.T) {
	b := New(16)

	o := mkOrder(1, sbe.SideSell, 50_000, 100, 1)
	Insert[Sell](b, o)

	removed, ok := b.Remove(o.Key())
	if !ok {
		t.Fatal("expected removal to succeed")
	}
	if removed.SeqNum != 1 {
		t.Errorf("expected seq 1, got %d", removed.SeqNum)
	}
	if _, ok := b.BestAsk(); ok {
		t.Error("expected empty ask side after removal")
	}
	if b.Contains(o.Key()) {
		t.Error("expected key to be gone")
	}
	if _, ok := b.Remove(o.Key()); ok {
		t.Error("expected second removal to fail")
	}
}

// Removing the middle order of a level must relink its neighbours.
func TestRemoveMiddleOfLevel(t *testing.T) {
	b := New(16)

	o1 := mkOrder(1, sbe.SideBuy, 40_000, 100, 1)
	o2 := mkOrder(2, sbe.SideBuy, 40_000, 200, 2)
	o3 := mkOrder(3, sbe.SideBuy, 40_000, 300, 3)
	Insert[Buy](b, o1)
	Insert[Buy](b, o2)
	Insert[Buy](b, o3)

	if _, ok := b.Remove(o2.Key()); !ok {
		t.Fatal("remove failed")
	}

	order, idx, _ := BestOpposite[Sell](b)
	if order.SeqNum != 1 {
		t.Fatalf("expected seq 1 at head, got %d", order.SeqNum)
	}
	RemoveOpposite[Sell](b, idx)

	order, _, _ = BestOpposite[Sell](b)
	if order.SeqNum != 3 {
		t.Fatalf("expected seq 3 after head, got %d", order.SeqNum)
	}
}

func TestLevelDisappearsWhenEmpty(t *testing.T) {
	b := New(16)

	o1 := mkOrder(1, sbe.SideSell, 50_000, 100, 1)
	o2 := mkOrder(2, sbe.SideSell, 51_000, 100, 2)
	Insert[Sell](b, o1)
	Insert[Sell](b, o2)

	b.Remove(o1.Key())

	ask, ok := b.BestAsk()
	if !ok || ask.Price != 51_000 {
		t.Fatalf("expected best ask 51000 after level removal, got %+v ok=%v", ask, ok)
	}
}

func TestCapacity(t *testing.T) {
	b := New(2)

	Insert[Buy](b, mkOrder(1, sbe.SideBuy, 40_000, 100, 1))
	Insert[Buy](b, mkOrder(2, sbe.SideBuy, 40_000, 100, 2))
	if !b.IsFull() {
		t.Fatal("expected book to be full")
	}
	if Insert[Buy](b, mkOrder(3, sbe.SideBuy, 40_000, 100, 3)) {
		t.Fatal("expected insert into full book to fail")
	}

	// Freeing a slot makes room again, and indices are reused.
	o1 := mkOrder(1, sbe.SideBuy, 40_000, 100, 1)
	o1Key := o1.Key()
	b.Remove(o1Key)
	if b.IsFull() {
		t.Fatal("expected room after removal")
	}
	if !Insert[Buy](b, mkOrder(4, sbe.SideBuy, 41_000, 100, 4)) {
		t.Fatal("expected insert to succeed after removal")
	}
	if b.Live() != 2 {
		t.Errorf("expected 2 live orders, got %d", b.Live())
	}
}
