// Package recorder persists order history: New and Trade execution reports
// are written to a QuestDB time-series table over ILP, timestamped with the
// engine's transact time.
package recorder

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	qdb "github.com/questdb/go-questdb-client/v3"

	"falcon-exchange/feed"
	"falcon-exchange/sbe"
)

const table = "orders"

// Recorder buffers rows into a QuestDB line sender. Flush cadence is the
// caller's concern; Record only appends.
type Recorder struct {
	sender qdb.LineSender
}

// New wraps an ILP line sender.
func New(sender qdb.LineSender) *Recorder {
	return &Recorder{sender: sender}
}

// Record appends one report row. Reports other than New/Trade, and statuses
// outside new/partially_filled/filled/canceled, are skipped without error.
func (r *Recorder) Record(ctx context.Context, report *feed.Report) error {
	if report.ExecType != sbe.ExecTypeNew && report.ExecType != sbe.ExecTypeTrade {
		return nil
	}

	var status string
	switch report.OrdStatus {
	case sbe.OrdStatusNew:
		status = "new"
	case sbe.OrdStatusPartiallyFilled:
		status = "partially_filled"
	case sbe.OrdStatusFilled:
		status = "filled"
	case sbe.OrdStatusCanceled:
		status = "canceled"
	default:
		return nil
	}

	var side bool
	switch report.Side {
	case sbe.SideBuy:
		side = true
	case sbe.SideSell:
		side = false
	default:
		return nil
	}

	row := r.sender.Table(table).
		Symbol("symbol", feed.FormatSymbol(report.Symbol)).
		Symbol("ord_status", status).
		StringColumn("account", uuid.UUID(report.Account).String()).
		StringColumn("cl_ord_id", uuid.UUID(report.ClOrdID).String()).
		Float64Column("leaves_qty", mantissaToFloat(report.LeavesQty)).
		Float64Column("cum_qty", mantissaToFloat(report.CumQty)).
		BoolColumn("side", side)

	if report.Price != sbe.NullDecimal {
		row = row.Float64Column("price", mantissaToFloat(report.Price))
	}
	if report.AvgPx != sbe.NullDecimal {
		row = row.Float64Column("avg_px", mantissaToFloat(report.AvgPx))
	}

	if err := row.At(ctx, time.Unix(0, int64(report.TransactTime))); err != nil {
		return fmt.Errorf("append order row: %w", err)
	}
	return nil
}

// Flush pushes buffered rows to the server.
func (r *Recorder) Flush(ctx context.Context) error {
	return r.sender.Flush(ctx)
}

func mantissaToFloat(mantissa int64) float64 {
	return float64(mantissa) / 1e8
}
