package feed

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"falcon-exchange/sbe"
)

// rfc3339Nanos keeps the full nine fractional digits so downstream parsers
// see a fixed-width timestamp.
const rfc3339Nanos = "2006-01-02T15:04:05.000000000Z07:00"

// FormatDecimal renders a decimal-64 mantissa as base-10 text with trailing
// zeros trimmed from the 8-digit fractional part.
func FormatDecimal(mantissa int64) string {
	return decimal.New(mantissa, sbe.DecimalExponent).String()
}

// FormatTimestamp renders nanoseconds since the Unix epoch as RFC-3339 with
// nanosecond precision in UTC.
func FormatTimestamp(nanos uint64) string {
	return time.Unix(0, int64(nanos)).UTC().Format(rfc3339Nanos)
}

// FormatSymbol trims the NUL/space padding from a wire symbol.
func FormatSymbol(symbol sbe.Symbol) string {
	return strings.TrimRight(string(symbol[:]), "\x00 ")
}

// SideWord renders a side as the lowercase word used in market-data JSON.
func SideWord(side sbe.Side) string {
	return strings.ToLower(side.String())
}
