package publisher

import (
	"time"

	"falcon-exchange/domain"
	"falcon-exchange/sbe"
)

// reportKind tags the execution-report variant being emitted. The wire
// classification fields and the null-or-present optional slots are a pure
// function of the kind and the order's post-fill state.
type reportKind uint8

const (
	reportNew reportKind = iota
	reportTrade
	reportCancel
	reportReject
)

// trade carries the per-fill fields of a Trade report.
type trade struct {
	matchID uint64
	qty     int64
	px      int64
}

func (k reportKind) execType() sbe.ExecType {
	switch k {
	case reportNew:
		return sbe.ExecTypeNew
	case reportTrade:
		return sbe.ExecTypeTrade
	case reportCancel:
		return sbe.ExecTypeCanceled
	default:
		return sbe.ExecTypeRejected
	}
}

func (k reportKind) ordStatus(order *domain.Order) sbe.OrdStatus {
	switch k {
	case reportNew:
		return sbe.OrdStatusNew
	case reportTrade:
		if order.IsFullyFilled() {
			return sbe.OrdStatusFilled
		}
		return sbe.OrdStatusPartiallyFilled
	case reportCancel:
		return sbe.OrdStatusCanceled
	default:
		return sbe.OrdStatusRejected
	}
}

// ReportEncoder turns report variants into wire frames. It reuses one
// scratch buffer, so a returned frame is only valid until the next call.
type ReportEncoder struct {
	scratch []byte
	now     func() uint64
}

// NewReportEncoder creates an encoder stamping reports with the wall clock.
func NewReportEncoder() *ReportEncoder {
	return &ReportEncoder{
		scratch: make([]byte, sbe.ExecutionReportMessageSize),
		now:     func() uint64 { return uint64(time.Now().UnixNano()) },
	}
}

// EncodeNew encodes the admission acknowledgement.
func (e *ReportEncoder) EncodeNew(order *domain.Order, execID uint64) []byte {
	return e.encodeExecutionReport(reportNew, order, execID, nil, sbe.OrdRejReasonNull)
}

// EncodeTrade encodes one side's report of a fill.
func (e *ReportEncoder) EncodeTrade(order *domain.Order, execID, matchID uint64, lastQty, lastPx int64) []byte {
	t := trade{matchID: matchID, qty: lastQty, px: lastPx}
	return e.encodeExecutionReport(reportTrade, order, execID, &t, sbe.OrdRejReasonNull)
}

// EncodeCancel encodes a Canceled report carrying the order's state before
// removal.
func (e *ReportEncoder) EncodeCancel(order *domain.Order, execID uint64) []byte {
	return e.encodeExecutionReport(reportCancel, order, execID, nil, sbe.OrdRejReasonNull)
}

// EncodeReject encodes a Rejected report for an order refused at admission.
func (e *ReportEncoder) EncodeReject(order *domain.Order, execID uint64, reason sbe.OrdRejReason) []byte {
	return e.encodeExecutionReport(reportReject, order, execID, nil, reason)
}

// EncodeCancelReject encodes a template-4 reject for a cancel naming an
// unknown order.
func (e *ReportEncoder) EncodeCancelReject(req *domain.CancelRequest, reason sbe.CxlRejReason, responseTo sbe.CxlRejResponseTo) []byte {
	enc := sbe.EncodeOrderCancelRejectHeader(e.scratch)
	enc.ClOrdID(req.ClOrdID)
	enc.OrigClOrdID(req.OrigClOrdID)
	enc.OrderID(sbe.NullU64)
	enc.OrdStatus(sbe.OrdStatusNull)
	enc.CxlRejResponseTo(responseTo)
	enc.CxlRejReason(reason)
	return e.scratch[:sbe.OrderCancelRejectMessageSize]
}

func (e *ReportEncoder) encodeExecutionReport(kind reportKind, order *domain.Order, execID uint64, t *trade, reason sbe.OrdRejReason) []byte {
	enc := sbe.EncodeExecutionReportHeader(e.scratch)

	enc.ClOrdID(order.ClOrdID)
	enc.Account(order.Account)
	enc.OrderID(order.SeqNum)
	enc.ExecID(execID)
	enc.TransactTime(e.now())
	enc.Symbol(order.Symbol)
	enc.Side(order.Side)

	enc.LeavesQty(order.LeavesQty)
	enc.CumQty(order.CumQty)
	enc.OrderQty(order.Qty)

	// Market orders have no price on the book; the slot carries the null
	// mantissa so consumers never mistake it for a value.
	if order.OrdType == sbe.OrdTypeLimit {
		enc.Price(order.Price)
	} else {
		enc.Price(sbe.NullDecimal)
	}

	enc.ExecType(kind.execType())
	enc.OrdStatus(kind.ordStatus(order))
	enc.OrdRejReason(reason)

	if t != nil {
		enc.TrdMatchID(t.matchID)
		enc.LastQty(t.qty)
		enc.LastPx(t.px)
		enc.AvgPx(order.AvgPx())
	} else {
		enc.TrdMatchID(sbe.NullU64)
		enc.LastQty(sbe.NullDecimal)
		enc.LastPx(sbe.NullDecimal)
		enc.AvgPx(sbe.NullDecimal)
	}

	return e.scratch[:sbe.ExecutionReportMessageSize]
}
