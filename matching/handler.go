// Package matching implements the single-threaded matching handler: it
// consumes decoded inbound messages, matches against the resting book with
// price-time priority, and emits execution reports through a publisher that
// preserves per-match ordering.
package matching

import (
	"go.uber.org/zap"

	"falcon-exchange/domain"
	"falcon-exchange/orderbook"
	"falcon-exchange/sbe"
)

// ReportPublisher is the outbound side of the handler. Implementations must
// emit reports in call order; the handler relies on that for the
// aggressor-before-resting contract within a match.
type ReportPublisher interface {
	PublishNew(o *domain.Order, execID uint64)
	PublishTrade(o *domain.Order, execID, matchID uint64, lastQty, lastPx int64)
	PublishCancel(o *domain.Order, execID uint64)
	PublishReject(o *domain.Order, execID uint64, reason sbe.OrdRejReason)
	PublishCancelReject(req *domain.CancelRequest, execID uint64, reason sbe.CxlRejReason, responseTo sbe.CxlRejResponseTo)
}

// Handler owns the book, the three monotonic counters and the publisher. It
// must only ever be driven from one goroutine.
type Handler struct {
	book *orderbook.Book

	counterOrderID uint64
	counterExecID  uint64
	counterMatchID uint64

	maxOrders int
	publisher ReportPublisher
	log       *zap.Logger
}

// NewHandler creates a handler over an empty book bounded at maxOrders.
func NewHandler(maxOrders int, publisher ReportPublisher, log *zap.Logger) *Handler {
	return &Handler{
		book:      orderbook.New(maxOrders),
		maxOrders: maxOrders,
		publisher: publisher,
		log:       log,
	}
}

// Book exposes the resting book for projections and tests.
func (h *Handler) Book() *orderbook.Book {
	return h.book
}

// OnNewOrderSingle decodes and processes a template-1 frame.
func (h *Handler) OnNewOrderSingle(frame []byte) {
	dec := sbe.WrapNewOrderSingle(frame)

	h.counterOrderID++
	qty := dec.OrderQty()
	order := domain.Order{
		LeavesQty: qty,
		Price:     dec.Price(),
		SeqNum:    h.counterOrderID,
		Qty:       qty,
		PrevIdx:   domain.NoIndex,
		NextIdx:   domain.NoIndex,
		Side:      dec.Side(),
		OrdType:   dec.OrdType(),
		ClOrdID:   dec.ClOrdID(),
		Account:   dec.Account(),
		Symbol:    dec.Symbol(),
	}
	h.processNewOrder(&order)
}

// OnOrderCancelRequest decodes and processes a template-2 frame.
func (h *Handler) OnOrderCancelRequest(frame []byte) {
	dec := sbe.WrapOrderCancelRequest(frame)
	req := domain.CancelRequest{
		OrigClOrdID: dec.OrigClOrdID(),
		ClOrdID:     dec.ClOrdID(),
		Account:     dec.Account(),
		Side:        dec.Side(),
	}
	h.processCancel(&req)
}

func (h *Handler) processNewOrder(order *domain.Order) {
	if h.book.IsFull() {
		h.publishReject(order, sbe.OrdRejReasonOther)
		h.log.Warn("order book capacity limit reached, rejecting new orders",
			zap.Int("live_orders", h.book.Live()),
			zap.Int("max_orders", h.maxOrders))
		return
	}

	if h.book.Contains(order.Key()) {
		h.publishReject(order, sbe.OrdRejReasonDuplicateOrder)
		return
	}

	h.publishNew(order)

	switch {
	case order.OrdType == sbe.OrdTypeLimit && order.Side == sbe.SideBuy:
		matchLimit[orderbook.Buy](h, order)
	case order.OrdType == sbe.OrdTypeLimit && order.Side == sbe.SideSell:
		matchLimit[orderbook.Sell](h, order)
	case order.OrdType == sbe.OrdTypeMarket && order.Side == sbe.SideBuy:
		matchMarket[orderbook.Buy](h, order)
	case order.OrdType == sbe.OrdTypeMarket && order.Side == sbe.SideSell:
		matchMarket[orderbook.Sell](h, order)
	case order.OrdType != sbe.OrdTypeLimit && order.OrdType != sbe.OrdTypeMarket:
		h.rejectInvalidField(order, "ord_type")
	default:
		h.rejectInvalidField(order, "side")
	}
}

func (h *Handler) processCancel(req *domain.CancelRequest) {
	key := domain.Key{Account: req.Account, ClOrdID: req.OrigClOrdID}
	if !h.book.Contains(key) {
		h.publishCancelReject(req, sbe.CxlRejReasonUnknownOrder, sbe.CxlRejResponseToOrderCancelRequest)
		return
	}

	order, _ := h.book.Remove(key)
	h.publishCancel(&order)
}

// rejectInvalidField handles a NullVal in a required enum slot. That value
// never arrives from a healthy gateway, so it is logged as an integrity alarm
// on top of the reject.
func (h *Handler) rejectInvalidField(order *domain.Order, field string) {
	h.publishReject(order, sbe.OrdRejReasonOther)
	h.log.Error("order received with NullVal for required field; possible message corruption, gateway bug, or schema mismatch",
		zap.String("field", field),
		zap.Uint64("order_id", order.SeqNum))
}

// matchLimit runs the limit-order matching loop for aggressor side S. Price
// improvement goes to the aggressor: trades print at the resting price.
func matchLimit[S orderbook.Side](h *Handler, aggressor *domain.Order) {
	var s S
	for aggressor.LeavesQty > 0 {
		resting, restingIdx, ok := orderbook.BestOpposite[S](h.book)
		if !ok {
			break // no orders on the opposite side
		}

		if !s.CanCross(aggressor.Price, resting.Price) {
			break
		}

		if aggressor.Account == resting.Account {
			// Self-trade prevention cancels the aggressor and leaves the
			// resting order untouched.
			h.publishCancel(aggressor)
			return
		}

		h.executeTrade(aggressor, resting)

		if resting.IsFullyFilled() {
			orderbook.RemoveOpposite[S](h.book, restingIdx)
		}
	}

	// Any remaining portion rests at the limit price, keeping the sequence
	// number assigned at admission for time priority.
	if aggressor.LeavesQty > 0 {
		if !orderbook.Insert[S](h.book, *aggressor) {
			h.log.Panic("order pool full after admission check",
				zap.Uint64("order_id", aggressor.SeqNum))
		}
	}
}

// matchMarket runs the market-order loop for aggressor side S: no crossing
// test, and the unfilled remainder is cancelled when the opposite side
// empties. A market order never rests.
func matchMarket[S orderbook.Side](h *Handler, aggressor *domain.Order) {
	for aggressor.LeavesQty > 0 {
		resting, restingIdx, ok := orderbook.BestOpposite[S](h.book)
		if !ok {
			h.publishCancel(aggressor)
			return
		}

		if aggressor.Account == resting.Account {
			h.publishCancel(aggressor)
			return
		}

		h.executeTrade(aggressor, resting)

		if resting.IsFullyFilled() {
			orderbook.RemoveOpposite[S](h.book, restingIdx)
		}
	}
}

// executeTrade fills both orders and publishes the two Trade reports of the
// match: the match id is allocated before either report, and the aggressor's
// report commits before the resting's.
func (h *Handler) executeTrade(aggressor, resting *domain.Order) {
	tradeQty := min(aggressor.LeavesQty, resting.LeavesQty)
	tradePx := resting.Price

	aggressor.Fill(tradeQty, tradePx)
	resting.Fill(tradeQty, tradePx)

	h.counterMatchID++
	h.counterExecID++
	h.publisher.PublishTrade(aggressor, h.counterExecID, h.counterMatchID, tradeQty, tradePx)

	h.counterExecID++
	h.publisher.PublishTrade(resting, h.counterExecID, h.counterMatchID, tradeQty, tradePx)
}

func (h *Handler) publishNew(order *domain.Order) {
	h.counterExecID++
	h.publisher.PublishNew(order, h.counterExecID)
}

func (h *Handler) publishCancel(order *domain.Order) {
	h.counterExecID++
	h.publisher.PublishCancel(order, h.counterExecID)
}

func (h *Handler) publishReject(order *domain.Order, reason sbe.OrdRejReason) {
	h.counterExecID++
	h.publisher.PublishReject(order, h.counterExecID, reason)
}

func (h *Handler) publishCancelReject(req *domain.CancelRequest, reason sbe.CxlRejReason, responseTo sbe.CxlRejResponseTo) {
	h.counterExecID++
	h.publisher.PublishCancelReject(req, h.counterExecID, reason, responseTo)
}
