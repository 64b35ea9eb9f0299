package service

import (
	"math/big"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

const displayPlaces = 4

// ToQuantity converts a raw smallest-unit amount into whole tokens.
func ToQuantity(raw *big.Int, decimals int32) decimal.Decimal {
	return decimal.NewFromBigInt(raw, -decimals)
}

// FormatBalance renders a quantity for chat replies, e.g. 1,234,567.8912.
// Digits past the fourth decimal place are truncated.
func FormatBalance(d decimal.Decimal) string {
	whole := d.Truncate(0)
	out := humanize.BigComma(whole.BigInt())
	frac := d.Sub(whole).Abs().Truncate(displayPlaces)
	if !frac.IsZero() {
		out += strings.TrimPrefix(frac.String(), "0")
	}
	return out
}
