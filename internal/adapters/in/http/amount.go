package http

import (
	"fmt"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Amount is money on the wire: a JSON number with two decimals.
// Input may be a number or a numeric string.
type Amount struct {
	decimal.Decimal
}

func AmountOf(m kernel.Money) Amount {
	return Amount{Decimal: m.Amount()}
}

func AmountFromDecimal(d decimal.Decimal) Amount {
	return Amount{Decimal: d}
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.StringFixed(kernel.MoneyScale)), nil
}

// Money converts a submitted amount. Sub-cent digits are rejected rather than
// rounded so a fee of 5.004 never matches a quote of 5.00.
func (a Amount) Money() (kernel.Money, error) {
	if !a.Equal(a.Round(kernel.MoneyScale)) {
		return kernel.Money{}, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%s has more than %d decimal places", a.String(), kernel.MoneyScale))
	}
	return kernel.NewMoney(a.Decimal)
}
