package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"falcon-exchange/domain"
	"falcon-exchange/feed"
	"falcon-exchange/orderbook"
	"falcon-exchange/publisher"
	"falcon-exchange/sbe"
)

// capturePublisher routes every publish through the real wire encoder and
// keeps the decoded frames, so tests observe exactly what downstream
// consumers would.
type capturePublisher struct {
	enc           *publisher.ReportEncoder
	reports       []feed.Report
	cancelRejects []cancelReject
}

type cancelReject struct {
	clOrdID     sbe.UUID
	origClOrdID sbe.UUID
	orderID     uint64
	reason      sbe.CxlRejReason
	responseTo  sbe.CxlRejResponseTo
}

func newCapturePublisher() *capturePublisher {
	return &capturePublisher{enc: publisher.NewReportEncoder()}
}

func (p *capturePublisher) capture(frame []byte) {
	p.reports = append(p.reports, feed.DecodeReport(frame))
}

func (p *capturePublisher) PublishNew(o *domain.Order, execID uint64) {
	p.capture(p.enc.EncodeNew(o, execID))
}

func (p *capturePublisher) PublishTrade(o *domain.Order, execID, matchID uint64, lastQty, lastPx int64) {
	p.capture(p.enc.EncodeTrade(o, execID, matchID, lastQty, lastPx))
}

func (p *capturePublisher) PublishCancel(o *domain.Order, execID uint64) {
	p.capture(p.enc.EncodeCancel(o, execID))
}

func (p *capturePublisher) PublishReject(o *domain.Order, execID uint64, reason sbe.OrdRejReason) {
	p.capture(p.enc.EncodeReject(o, execID, reason))
}

func (p *capturePublisher) PublishCancelReject(req *domain.CancelRequest, execID uint64, reason sbe.CxlRejReason, responseTo sbe.CxlRejResponseTo) {
	frame := p.enc.EncodeCancelReject(req, reason, responseTo)
	dec := sbe.WrapOrderCancelReject(frame)
	p.cancelRejects = append(p.cancelRejects, cancelReject{
		clOrdID:     dec.ClOrdID(),
		origClOrdID: dec.OrigClOrdID(),
		orderID:     dec.OrderID(),
		reason:      dec.CxlRejReason(),
		responseTo:  dec.CxlRejResponseTo(),
	})
}

func newTestHandler(maxOrders int) (*Handler, *capturePublisher) {
	pub := newCapturePublisher()
	return NewHandler(maxOrders, pub, zap.NewNop()), pub
}

func id(b byte) sbe.UUID {
	var u sbe.UUID
	u[15] = b
	return u
}

var testSymbol = sbe.Symbol{'F', 'L', 'C', 'N', ' ', ' '}

func newOrderFrame(clOrdID, account sbe.UUID, side sbe.Side, ordType sbe.OrdType, qty, px int64) []byte {
	frame := make([]byte, sbe.NewOrderSingleMessageSize)
	enc := sbe.EncodeNewOrderSingleHeader(frame)
	enc.ClOrdID(clOrdID)
	enc.Account(account)
	enc.Symbol(testSymbol)
	enc.Side(side)
	enc.TransactTime(1_700_000_000_000_000_000)
	enc.OrdType(ordType)
	enc.OrderQty(qty)
	enc.Price(px)
	return frame
}

func cancelFrame(origClOrdID, clOrdID, account sbe.UUID) []byte {
	frame := make([]byte, sbe.OrderCancelRequestMessageSize)
	enc := sbe.EncodeOrderCancelRequestHeader(frame)
	enc.OrigClOrdID(origClOrdID)
	enc.ClOrdID(clOrdID)
	enc.Account(account)
	enc.TransactTime(1_700_000_000_000_000_000)
	enc.Symbol(testSymbol)
	enc.Side(sbe.SideNull)
	return frame
}

const lot = 100_000_000 // 1.0 in decimal-64 mantissa

func TestBasicCross(t *testing.T) {
	h, pub := newTestHandler(64)

	h.OnNewOrderSingle(newOrderFrame(id(1), id(10), sbe.SideBuy, sbe.OrdTypeLimit, lot, 500_000_00))
	h.OnNewOrderSingle(newOrderFrame(id(2), id(20), sbe.SideSell, sbe.OrdTypeLimit, lot, 500_000_00))

	require.Len(t, pub.reports, 4)

	newA, newB, tradeAgg, tradeRest := pub.reports[0], pub.reports[1], pub.reports[2], pub.reports[3]

	assert.Equal(t, sbe.ExecTypeNew, newA.ExecType)
	assert.Equal(t, int64(lot), newA.LeavesQty)
	assert.Equal(t, sbe.ExecTypeNew, newB.ExecType)

	for i, r := range pub.reports {
		assert.Equal(t, uint64(i+1), r.ExecID, "exec ids are dense from 1")
	}

	// Aggressor (B, the sell) reports first.
	require.Equal(t, sbe.ExecTypeTrade, tradeAgg.ExecType)
	assert.Equal(t, id(2), tradeAgg.ClOrdID)
	assert.Equal(t, sbe.SideSell, tradeAgg.Side)
	assert.Equal(t, int64(lot), tradeAgg.LastQty)
	assert.Equal(t, int64(500_000_00), tradeAgg.LastPx)
	assert.Equal(t, uint64(1), tradeAgg.TrdMatchID)
	assert.Equal(t, sbe.OrdStatusFilled, tradeAgg.OrdStatus)

	require.Equal(t, sbe.ExecTypeTrade, tradeRest.ExecType)
	assert.Equal(t, id(1), tradeRest.ClOrdID)
	assert.Equal(t, sbe.SideBuy, tradeRest.Side)
	assert.Equal(t, tradeAgg.TrdMatchID, tradeRest.TrdMatchID)
	assert.Equal(t, tradeAgg.LastQty, tradeRest.LastQty)
	assert.Equal(t, tradeAgg.LastPx, tradeRest.LastPx)
	assert.Equal(t, sbe.OrdStatusFilled, tradeRest.OrdStatus)

	assert.Equal(t, 0, h.Book().Live())
}

func TestPartialFillAggressorPriceImprovement(t *testing.T) {
	h, pub := newTestHandler(64)

	h.OnNewOrderSingle(newOrderFrame(id(1), id(10), sbe.SideBuy, sbe.OrdTypeLimit, 3*lot, 510_000_00))
	h.OnNewOrderSingle(newOrderFrame(id(2), id(20), sbe.SideSell, sbe.OrdTypeLimit, lot, 500_000_00))

	require.Len(t, pub.reports, 4)
	tradeAgg, tradeRest := pub.reports[2], pub.reports[3]

	// The cross prints at the resting price: improvement goes to the
	// sell-side aggressor.
	assert.Equal(t, int64(510_000_00), tradeAgg.LastPx)
	assert.Equal(t, sbe.OrdStatusFilled, tradeAgg.OrdStatus)

	assert.Equal(t, sbe.OrdStatusPartiallyFilled, tradeRest.OrdStatus)
	assert.Equal(t, int64(2*lot), tradeRest.LeavesQty)
	assert.Equal(t, int64(lot), tradeRest.CumQty)

	assert.Equal(t, int64(2*lot), h.Book().LevelQuantity(orderbook.Buy{}, 510_000_00))
}

func TestSelfTradePrevention(t *testing.T) {
	h, pub := newTestHandler(64)

	h.OnNewOrderSingle(newOrderFrame(id(1), id(10), sbe.SideBuy, sbe.OrdTypeLimit, lot, 100_000_00))
	h.OnNewOrderSingle(newOrderFrame(id(2), id(10), sbe.SideSell, sbe.OrdTypeLimit, lot, 100_000_00))

	require.Len(t, pub.reports, 3)
	assert.Equal(t, sbe.ExecTypeNew, pub.reports[0].ExecType)
	assert.Equal(t, sbe.ExecTypeNew, pub.reports[1].ExecType)

	cancel := pub.reports[2]
	assert.Equal(t, sbe.ExecTypeCanceled, cancel.ExecType)
	assert.Equal(t, id(2), cancel.ClOrdID, "the aggressor is cancelled")
	assert.Equal(t, int64(lot), cancel.LeavesQty)

	// The resting buy is untouched.
	assert.Equal(t, int64(lot), h.Book().LevelQuantity(orderbook.Buy{}, 100_000_00))
}

func TestFIFOTieBreak(t *testing.T) {
	h, pub := newTestHandler(64)

	h.OnNewOrderSingle(newOrderFrame(id(1), id(10), sbe.SideBuy, sbe.OrdTypeLimit, lot, 200_000_00))
	h.OnNewOrderSingle(newOrderFrame(id(2), id(20), sbe.SideBuy, sbe.OrdTypeLimit, lot, 200_000_00))
	h.OnNewOrderSingle(newOrderFrame(id(3), id(30), sbe.SideSell, sbe.OrdTypeLimit, lot, 200_000_00))

	require.Len(t, pub.reports, 5)
	tradeRest := pub.reports[4]
	assert.Equal(t, id(1), tradeRest.ClOrdID, "the earlier order at the level matches first")

	assert.Equal(t, int64(lot), h.Book().LevelQuantity(orderbook.Buy{}, 200_000_00))
}

func TestCancelUnknownOrder(t *testing.T) {
	h, pub := newTestHandler(64)

	h.OnOrderCancelRequest(cancelFrame(id(9), id(8), id(10)))

	require.Len(t, pub.cancelRejects, 1)
	rej := pub.cancelRejects[0]
	assert.Equal(t, sbe.CxlRejReasonUnknownOrder, rej.reason)
	assert.Equal(t, sbe.CxlRejResponseToOrderCancelRequest, rej.responseTo)
	assert.Equal(t, id(9), rej.origClOrdID)
	assert.Equal(t, sbe.NullU64, rej.orderID)
	assert.Empty(t, pub.reports)
	assert.Equal(t, 0, h.Book().Live())
}

func TestCancelRestingOrder(t *testing.T) {
	h, pub := newTestHandler(64)

	h.OnNewOrderSingle(newOrderFrame(id(1), id(10), sbe.SideBuy, sbe.OrdTypeLimit, 2*lot, 300_000_00))
	h.OnOrderCancelRequest(cancelFrame(id(1), id(2), id(10)))

	require.Len(t, pub.reports, 2)
	cancel := pub.reports[1]
	assert.Equal(t, sbe.ExecTypeCanceled, cancel.ExecType)
	assert.Equal(t, sbe.OrdStatusCanceled, cancel.OrdStatus)
	assert.Equal(t, int64(2*lot), cancel.LeavesQty)
	assert.Equal(t, int64(0), cancel.CumQty)
	assert.Equal(t, 0, h.Book().Live())
}

func TestDuplicateKeyReject(t *testing.T) {
	h, pub := newTestHandler(64)

	h.OnNewOrderSingle(newOrderFrame(id(1), id(10), sbe.SideBuy, sbe.OrdTypeLimit, lot, 100_000_00))
	h.OnNewOrderSingle(newOrderFrame(id(1), id(10), sbe.SideBuy, sbe.OrdTypeLimit, lot, 100_000_00))

	require.Len(t, pub.reports, 2)
	rej := pub.reports[1]
	assert.Equal(t, sbe.ExecTypeRejected, rej.ExecType)
	assert.Equal(t, sbe.OrdStatusRejected, rej.OrdStatus)
	assert.Equal(t, sbe.OrdRejReasonDuplicateOrder, rej.OrdRejReason)

	// The resting original is not perturbed.
	assert.Equal(t, int64(lot), h.Book().LevelQuantity(orderbook.Buy{}, 100_000_00))
	assert.Equal(t, 1, h.Book().Live())
}

func TestCapacityReject(t *testing.T) {
	h, pub := newTestHandler(1)

	h.OnNewOrderSingle(newOrderFrame(id(1), id(10), sbe.SideBuy, sbe.OrdTypeLimit, lot, 100_000_00))
	h.OnNewOrderSingle(newOrderFrame(id(2), id(20), sbe.SideBuy, sbe.OrdTypeLimit, lot, 110_000_00))

	require.Len(t, pub.reports, 2)
	rej := pub.reports[1]
	assert.Equal(t, sbe.ExecTypeRejected, rej.ExecType)
	assert.Equal(t, sbe.OrdRejReasonOther, rej.OrdRejReason)
	assert.Equal(t, 1, h.Book().Live())
}

func TestMarketOrderEmptyBook(t *testing.T) {
	h, pub := newTestHandler(64)

	h.OnNewOrderSingle(newOrderFrame(id(1), id(10), sbe.SideSell, sbe.OrdTypeMarket, lot, sbe.NullDecimal))

	require.Len(t, pub.reports, 2)
	cancel := pub.reports[1]
	assert.Equal(t, sbe.ExecTypeCanceled, cancel.ExecType)
	assert.Equal(t, int64(lot), cancel.LeavesQty)
	assert.Equal(t, sbe.NullDecimal, cancel.Price, "market orders carry the null price sentinel")
	assert.Equal(t, 0, h.Book().Live())
}

func TestMarketOrderPartialFillThenCancel(t *testing.T) {
	h, pub := newTestHandler(64)

	h.OnNewOrderSingle(newOrderFrame(id(1), id(10), sbe.SideBuy, sbe.OrdTypeLimit, lot, 400_000_00))
	h.OnNewOrderSingle(newOrderFrame(id(2), id(20), sbe.SideSell, sbe.OrdTypeMarket, 2*lot, sbe.NullDecimal))

	require.Len(t, pub.reports, 5)
	assert.Equal(t, sbe.ExecTypeTrade, pub.reports[2].ExecType)
	assert.Equal(t, sbe.ExecTypeTrade, pub.reports[3].ExecType)

	cancel := pub.reports[4]
	assert.Equal(t, sbe.ExecTypeCanceled, cancel.ExecType)
	assert.Equal(t, id(2), cancel.ClOrdID)
	assert.Equal(t, int64(lot), cancel.LeavesQty)
	assert.Equal(t, int64(lot), cancel.CumQty)
	assert.Equal(t, 0, h.Book().Live())
}

func TestNullSideRejected(t *testing.T) {
	h, pub := newTestHandler(64)

	h.OnNewOrderSingle(newOrderFrame(id(1), id(10), sbe.SideNull, sbe.OrdTypeLimit, lot, 100_000_00))

	require.Len(t, pub.reports, 2)
	assert.Equal(t, sbe.ExecTypeNew, pub.reports[0].ExecType)
	rej := pub.reports[1]
	assert.Equal(t, sbe.ExecTypeRejected, rej.ExecType)
	assert.Equal(t, sbe.OrdRejReasonOther, rej.OrdRejReason)
	assert.Equal(t, 0, h.Book().Live())
}

// TestStreamInvariants runs a mixed sequence and checks the cross-cutting
// stream properties: strictly increasing exec ids, non-decreasing order and
// match ids, per-order quantity conservation, and match-pair symmetry.
func TestStreamInvariants(t *testing.T) {
	h, pub := newTestHandler(64)

	h.OnNewOrderSingle(newOrderFrame(id(1), id(10), sbe.SideBuy, sbe.OrdTypeLimit, 5*lot, 500_000_00))
	h.OnNewOrderSingle(newOrderFrame(id(2), id(20), sbe.SideBuy, sbe.OrdTypeLimit, 3*lot, 490_000_00))
	h.OnNewOrderSingle(newOrderFrame(id(3), id(30), sbe.SideSell, sbe.OrdTypeLimit, 6*lot, 490_000_00))
	h.OnNewOrderSingle(newOrderFrame(id(4), id(40), sbe.SideSell, sbe.OrdTypeLimit, lot, 480_000_00))
	h.OnOrderCancelRequest(cancelFrame(id(2), id(5), id(20)))
	h.OnNewOrderSingle(newOrderFrame(id(6), id(40), sbe.SideBuy, sbe.OrdTypeMarket, 4*lot, sbe.NullDecimal))

	var lastExecID, lastOrderID, lastMatchID uint64
	for _, r := range pub.reports {
		assert.Greater(t, r.ExecID, lastExecID, "exec ids strictly increase")
		lastExecID = r.ExecID

		assert.GreaterOrEqual(t, r.OrderID, lastOrderID, "order ids never decrease")
		lastOrderID = max(lastOrderID, r.OrderID)

		assert.Equal(t, r.OrderQty, r.CumQty+r.LeavesQty, "quantity conservation")

		if r.ExecType == sbe.ExecTypeTrade {
			assert.GreaterOrEqual(t, r.TrdMatchID, lastMatchID, "match ids never decrease")
			lastMatchID = max(lastMatchID, r.TrdMatchID)
		}
	}

	// Trade reports come in aggressor/resting pairs with identical economics.
	for i := 0; i+1 < len(pub.reports); i++ {
		a := pub.reports[i]
		if a.ExecType != sbe.ExecTypeTrade {
			continue
		}
		b := pub.reports[i+1]
		if b.ExecType != sbe.ExecTypeTrade || b.TrdMatchID != a.TrdMatchID {
			continue
		}
		assert.Equal(t, a.LastQty, b.LastQty)
		assert.Equal(t, a.LastPx, b.LastPx)
		assert.Equal(t, a.Side.Opposite(), b.Side)
		i++
	}
}
