package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"falcon-exchange/level2"
	"falcon-exchange/orderbook"
	"falcon-exchange/sbe"
)

// Replaying the engine's outbound stream through the L2 projector must
// reproduce the engine's own aggregated book at every sequence-consistent
// point. This drives a mixed order flow and cross-checks each touched level.
func TestLevel2ReplayMatchesEngineBook(t *testing.T) {
	h, pub := newTestHandler(64)

	h.OnNewOrderSingle(newOrderFrame(id(1), id(10), sbe.SideBuy, sbe.OrdTypeLimit, 5*lot, 500_000_00))
	h.OnNewOrderSingle(newOrderFrame(id(2), id(20), sbe.SideBuy, sbe.OrdTypeLimit, 3*lot, 500_000_00))
	h.OnNewOrderSingle(newOrderFrame(id(3), id(30), sbe.SideBuy, sbe.OrdTypeLimit, 2*lot, 490_000_00))
	h.OnNewOrderSingle(newOrderFrame(id(4), id(40), sbe.SideSell, sbe.OrdTypeLimit, 6*lot, 500_000_00))
	h.OnNewOrderSingle(newOrderFrame(id(5), id(50), sbe.SideSell, sbe.OrdTypeLimit, 4*lot, 510_000_00))
	h.OnOrderCancelRequest(cancelFrame(id(3), id(6), id(30)))
	h.OnNewOrderSingle(newOrderFrame(id(7), id(20), sbe.SideSell, sbe.OrdTypeMarket, lot, sbe.NullDecimal))

	projector := level2.New("FLCN")
	for i := range pub.reports {
		_, err := projector.Process(&pub.reports[i])
		require.NoError(t, err)
	}

	book := h.Book()
	for _, price := range []int64{480_000_00, 490_000_00, 500_000_00, 510_000_00, 520_000_00} {
		assert.Equal(t, book.LevelQuantity(orderbook.Buy{}, price), projector.Bid(price),
			"bid level %d", price)
		assert.Equal(t, book.LevelQuantity(orderbook.Sell{}, price), projector.Ask(price),
			"ask level %d", price)
	}
}
