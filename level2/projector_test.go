package level2

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"falcon-exchange/feed"
	"falcon-exchange/sbe"
)

const px = 500_000 // 0.005 in decimal-64 mantissa

func report(execType sbe.ExecType, orderID uint64, side sbe.Side, price, orderQty, lastQty, leavesQty int64) feed.Report {
	return feed.Report{
		OrderID:      orderID,
		TransactTime: 1_700_000_000_123_456_789,
		Price:        price,
		OrderQty:     orderQty,
		LastQty:      lastQty,
		LeavesQty:    leavesQty,
		ExecType:     execType,
		Side:         side,
	}
}

// Replaying a simple cross produces the update sequence of a drift-free
// projection: each level's new aggregate after every report.
func TestReplayCross(t *testing.T) {
	p := New("FLCN")

	var updates []*Update
	reports := []feed.Report{
		report(sbe.ExecTypeNew, 1, sbe.SideBuy, px, 5, sbe.NullDecimal, 5),
		report(sbe.ExecTypeNew, 2, sbe.SideSell, px, 3, sbe.NullDecimal, 3),
		// Aggressor (sell) report first, then the resting buy.
		report(sbe.ExecTypeTrade, 2, sbe.SideSell, px, 3, 3, 0),
		report(sbe.ExecTypeTrade, 1, sbe.SideBuy, px, 5, 3, 2),
	}
	for i := range reports {
		u, err := p.Process(&reports[i])
		require.NoError(t, err)
		if u != nil {
			updates = append(updates, u)
		}
	}

	require.Len(t, updates, 4)
	assert.Equal(t, "buy", updates[0].Side)
	assert.Equal(t, "0.005", updates[0].PriceLevel)
	assert.Equal(t, "0.00000005", updates[0].NewQuantity)
	assert.Equal(t, "sell", updates[1].Side)
	assert.Equal(t, "0.00000003", updates[1].NewQuantity)
	assert.Equal(t, "0", updates[2].NewQuantity, "sell level empties")
	assert.Equal(t, "0.00000002", updates[3].NewQuantity, "buy level keeps the remainder")

	bids, asks := p.Depth()
	assert.Equal(t, map[int64]int64{px: 2}, bids)
	assert.Empty(t, asks)
}

func TestSequenceGapIsFatal(t *testing.T) {
	p := New("FLCN")

	r1 := report(sbe.ExecTypeNew, 1, sbe.SideBuy, px, 5, sbe.NullDecimal, 5)
	_, err := p.Process(&r1)
	require.NoError(t, err)

	r3 := report(sbe.ExecTypeNew, 3, sbe.SideBuy, px, 5, sbe.NullDecimal, 5)
	_, err = p.Process(&r3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sequence gap")
}

func TestRejectedAdvancesSequence(t *testing.T) {
	p := New("FLCN")

	r1 := report(sbe.ExecTypeRejected, 1, sbe.SideBuy, px, 5, sbe.NullDecimal, 5)
	u, err := p.Process(&r1)
	require.NoError(t, err)
	assert.Nil(t, u, "rejects emit nothing")

	r2 := report(sbe.ExecTypeNew, 2, sbe.SideBuy, px, 5, sbe.NullDecimal, 5)
	_, err = p.Process(&r2)
	require.NoError(t, err)
}

func TestMarketOrderTouchesNothing(t *testing.T) {
	p := New("FLCN")

	r1 := report(sbe.ExecTypeNew, 1, sbe.SideSell, sbe.NullDecimal, 5, sbe.NullDecimal, 5)
	u, err := p.Process(&r1)
	require.NoError(t, err)
	assert.Nil(t, u, "null-price reports emit no update")

	bids, asks := p.Depth()
	assert.Empty(t, bids)
	assert.Empty(t, asks)

	// The order id was still consumed.
	r2 := report(sbe.ExecTypeNew, 2, sbe.SideBuy, px, 5, sbe.NullDecimal, 5)
	_, err = p.Process(&r2)
	require.NoError(t, err)
}

func TestCancelUsesReportLeavesQty(t *testing.T) {
	p := New("FLCN")

	r1 := report(sbe.ExecTypeNew, 1, sbe.SideBuy, px, 5, sbe.NullDecimal, 5)
	_, err := p.Process(&r1)
	require.NoError(t, err)

	// A cancel after a partial fill carries the remaining leaves; the level
	// empties only because the trade already removed the traded-away portion.
	rTrade := report(sbe.ExecTypeTrade, 1, sbe.SideBuy, px, 5, 2, 3)
	_, err = p.Process(&rTrade)
	require.NoError(t, err)

	rCancel := report(sbe.ExecTypeCanceled, 1, sbe.SideBuy, px, 5, sbe.NullDecimal, 3)
	u, err := p.Process(&rCancel)
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "0", u.NewQuantity)

	bids, _ := p.Depth()
	assert.Empty(t, bids)
}

func TestTradeAtMissingLevelIsFatal(t *testing.T) {
	p := New("FLCN")

	r := report(sbe.ExecTypeTrade, 1, sbe.SideBuy, px, 5, 2, 3)
	_, err := p.Process(&r)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "non-existent price level")
}

func TestUpdateFormatting(t *testing.T) {
	p := New("FLCN")

	r := report(sbe.ExecTypeNew, 1, sbe.SideBuy, 123_450_000_000, 100_000_000, sbe.NullDecimal, 100_000_000)
	u, err := p.Process(&r)
	require.NoError(t, err)
	require.NotNil(t, u)

	assert.Equal(t, "1234.5", u.PriceLevel, "trailing zeros are trimmed")
	assert.Equal(t, "1", u.NewQuantity)
	assert.Equal(t, "2023-11-14T22:13:20.123456789Z", u.EventTime)
	assert.Equal(t, "FLCN", u.ProductID)
}
