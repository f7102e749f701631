// Package feed carries the decoded execution-report message and the shared
// display formatting used by every consumer of the outbound stream. Consumers
// are stateless replicas of the engine's side-effects: everything they know
// comes from these reports.
package feed

import "falcon-exchange/sbe"

// Report is the decoded form of one ExecutionReport frame.
type Report struct {
	ClOrdID      sbe.UUID
	Account      sbe.UUID
	OrderID      uint64
	ExecID       uint64
	TrdMatchID   uint64
	TransactTime uint64
	Price        int64
	OrderQty     int64
	LastQty      int64
	LastPx       int64
	LeavesQty    int64
	CumQty       int64
	AvgPx        int64
	Symbol       sbe.Symbol
	ExecType     sbe.ExecType
	OrdStatus    sbe.OrdStatus
	OrdRejReason sbe.OrdRejReason
	Side         sbe.Side
}

// DecodeReport reads a full frame (header included) into a Report.
func DecodeReport(frame []byte) Report {
	d := sbe.WrapExecutionReport(frame)
	return Report{
		ClOrdID:      d.ClOrdID(),
		Account:      d.Account(),
		OrderID:      d.OrderID(),
		ExecID:       d.ExecID(),
		TrdMatchID:   d.TrdMatchID(),
		TransactTime: d.TransactTime(),
		Price:        d.Price(),
		OrderQty:     d.OrderQty(),
		LastQty:      d.LastQty(),
		LastPx:       d.LastPx(),
		LeavesQty:    d.LeavesQty(),
		CumQty:       d.CumQty(),
		AvgPx:        d.AvgPx(),
		Symbol:       d.Symbol(),
		ExecType:     d.ExecType(),
		OrdStatus:    d.OrdStatus(),
		OrdRejReason: d.OrdRejReason(),
		Side:         d.Side(),
	}
}

// HasPrice reports whether the price slot carries a value. Market-order
// reports carry the null mantissa and must never reach arithmetic.
func (r *Report) HasPrice() bool {
	return r.Price != sbe.NullDecimal
}
