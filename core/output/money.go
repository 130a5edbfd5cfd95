package output

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"landed-cost/core/types"
)

// Money renders an amount rounded to cents with thousands separators
func Money(v decimal.Decimal, currency types.Currency) string {
	r := v.Round(2)
	sign := ""
	if r.IsNegative() {
		sign = "-"
		r = r.Neg()
	}
	whole := r.IntPart()
	cents := r.Sub(decimal.NewFromInt(whole)).Shift(2).IntPart()
	return fmt.Sprintf("%s %s%s.%02d", currency, sign, humanize.Comma(whole), cents)
}

// SignedMoney renders an amount with an explicit plus sign when positive
func SignedMoney(v decimal.Decimal, currency types.Currency) string {
	if v.Round(2).IsPositive() {
		return "+" + Money(v, currency)
	}
	return Money(v, currency)
}

// Days renders a lead time
func Days(v decimal.Decimal) string {
	if v.Equal(decimal.NewFromInt(1)) {
		return "1 day"
	}
	return v.String() + " days"
}

// Rate renders a tariff rate in percent
func Rate(pct decimal.Decimal) string {
	return pct.String() + "%"
}
