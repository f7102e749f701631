// Package ticker projects the execution-report stream into a rolling
// per-instrument ticker: last price, daily open/high/low/volume, yearly
// range, and the current best bid/ask. Like the L2 projector it is a
// stateless-to-replay consumer.
package ticker

import (
	"math"
	"strconv"
	"time"

	"falcon-exchange/feed"
	"falcon-exchange/level2"
	"falcon-exchange/sbe"
)

// Ticker is the JSON record emitted after each trade.
type Ticker struct {
	ProductID          string `json:"product_id"`
	Price              string `json:"price"`
	Volume24H          string `json:"volume_24_h"`
	Low24H             string `json:"low_24_h"`
	High24H            string `json:"high_24_h"`
	Open24H            string `json:"open_24_h"`
	Low52W             string `json:"low_52_w"`
	High52W            string `json:"high_52_w"`
	PricePercentChg24H string `json:"price_percent_chg_24_h"`
	BestBid            string `json:"best_bid"`
	BestBidQuantity    string `json:"best_bid_quantity"`
	BestAsk            string `json:"best_ask"`
	BestAskQuantity    string `json:"best_ask_quantity"`
	Timestamp          string `json:"timestamp"`
}

const dayNanos = uint64(24 * time.Hour / time.Nanosecond)

// State accumulates the rolling windows. The daily window resets at UTC
// midnight boundaries derived from report timestamps, so replay reproduces
// the same tickers.
type State struct {
	productID  string
	start24H   uint64
	volume24H  int64
	low24H     int64
	high24H    int64
	open24H    int64
	low52W     int64
	high52W    int64
	lastPrice  int64
}

// NewState starts the windows at the UTC midnight preceding now.
func NewState(productID string, now time.Time) *State {
	midnight := now.UTC().Truncate(24 * time.Hour)
	return &State{
		productID: productID,
		start24H:  uint64(midnight.UnixNano()),
		low24H:    math.MaxInt64,
		high24H:   math.MinInt64,
		low52W:    math.MaxInt64,
		high52W:   math.MinInt64,
	}
}

func (s *State) rollWindows(ts uint64) {
	next := s.start24H + dayNanos
	for ts >= next {
		s.start24H = next
		s.volume24H = 0
		s.low24H = math.MaxInt64
		s.high24H = math.MinInt64
		s.open24H = s.lastPrice
		next += dayNanos
	}
}

// UpdateOnMatch folds one Trade report into the windows.
func (s *State) UpdateOnMatch(r *feed.Report) {
	s.rollWindows(r.TransactTime)

	s.lastPrice = r.Price
	s.volume24H += r.LastQty

	s.low24H = min(s.low24H, r.Price)
	s.high24H = max(s.high24H, r.Price)
	if s.open24H == 0 {
		s.open24H = r.Price
	}

	s.low52W = min(s.low52W, r.Price)
	s.high52W = max(s.high52W, r.Price)
}

func (s *State) pricePercentChange() float64 {
	if s.open24H != 0 && s.lastPrice != 0 {
		return (float64(s.lastPrice) - float64(s.open24H)) / float64(s.open24H) * 100
	}
	return 0
}

// Snapshot renders the current ticker against the book's best levels.
func (s *State) Snapshot(book *level2.Projector, ts uint64) Ticker {
	bestBid, bestBidQty, _ := book.BestBid()
	bestAsk, bestAskQty, _ := book.BestAsk()

	// Bounds that were never updated render as the last price.
	low24 := s.low24H
	if low24 == math.MaxInt64 {
		low24 = s.lastPrice
	}
	high24 := s.high24H
	if high24 == math.MinInt64 {
		high24 = s.lastPrice
	}
	low52 := s.low52W
	if low52 == math.MaxInt64 {
		low52 = s.lastPrice
	}
	high52 := s.high52W
	if high52 == math.MinInt64 {
		high52 = s.lastPrice
	}

	return Ticker{
		ProductID:          s.productID,
		Price:              feed.FormatDecimal(s.lastPrice),
		Volume24H:          feed.FormatDecimal(s.volume24H),
		Low24H:             feed.FormatDecimal(low24),
		High24H:            feed.FormatDecimal(high24),
		Open24H:            feed.FormatDecimal(s.open24H),
		Low52W:             feed.FormatDecimal(low52),
		High52W:            feed.FormatDecimal(high52),
		PricePercentChg24H: strconv.FormatFloat(s.pricePercentChange(), 'f', -1, 64),
		BestBid:            feed.FormatDecimal(bestBid),
		BestBidQuantity:    feed.FormatDecimal(bestBidQty),
		BestAsk:            feed.FormatDecimal(bestAsk),
		BestAskQuantity:    feed.FormatDecimal(bestAskQty),
		Timestamp:          feed.FormatTimestamp(ts),
	}
}

// Process replays one report through the depth book and returns a ticker to
// emit after trades with a book price. Errors are invariant violations from
// the underlying projection and are fatal to the consumer.
func Process(book *level2.Projector, state *State, r *feed.Report) (*Ticker, error) {
	if _, err := book.Process(r); err != nil {
		return nil, err
	}
	if r.ExecType != sbe.ExecTypeTrade || !r.HasPrice() {
		return nil, nil
	}
	state.UpdateOnMatch(r)
	t := state.Snapshot(book, r.TransactTime)
	return &t, nil
}
