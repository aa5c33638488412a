package domain

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// COP is the only currency the storefront trades in. Pesos have no
// usable minor unit here, so amounts are whole pesos.
var COP = currency.MustParseISO("COP")

var copPrinter = message.NewPrinter(language.MustParse("es-CO"))

type Money struct {
	Amount   decimal.Decimal
	Currency currency.Unit
}

func NewMoney(amount int64) Money {
	return Money{
		Amount:   decimal.NewFromInt(amount),
		Currency: COP,
	}
}

func (m Money) Add(other Money) Money {
	return Money{Amount: m.Amount.Add(other.Amount), Currency: m.Currency}
}

func (m Money) MulInt(n int) Money {
	return Money{Amount: m.Amount.Mul(decimal.NewFromInt(int64(n))), Currency: m.Currency}
}

func (m Money) Int64() int64 {
	return m.Amount.IntPart()
}

func (m Money) Format() string {
	return FormatPrice(m.Amount.IntPart())
}

// ParsePrice extracts a whole-peso amount from a display string such as
// "$1.200.000". Every non-digit is stripped and the rest is parsed as a
// base-10 integer; input with no digits yields 0. This is the single
// parsing rule for deriving a numeric price from a display string.
func ParsePrice(display string) int64 {
	var digits strings.Builder
	for _, r := range display {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return 0
	}

	n, err := strconv.ParseInt(digits.String(), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// FormatPrice renders a whole-peso amount with es-CO grouping and no
// decimals, e.g. 2500000 -> "$2.500.000". Not an exact inverse of
// ParsePrice: only the digit sequence round-trips, not the decorated
// string.
func FormatPrice(amount int64) string {
	return "$" + copPrinter.Sprintf("%d", amount)
}
