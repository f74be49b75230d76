package kernel

import (
	"fmt"

	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// MoneyScale is the number of fractional digits kept for currency amounts.
const MoneyScale = 2

var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError("money must be created via NewMoney, MoneyFromInt or MoneyFromString")

// Money is a non-negative currency amount rounded to MoneyScale digits.
// Arithmetic never yields a negative amount: Sub returns an error instead.
type Money struct {
	amount decimal.Decimal
	guard  guard.ConstructorGuard
}

// ZeroMoney returns a constructed zero amount.
func ZeroMoney() Money {
	return Money{amount: decimal.Zero, guard: guard.NewConstructorGuard()}
}

// NewMoney rounds amount to MoneyScale digits and rejects negative values.
func NewMoney(amount decimal.Decimal) (Money, error) {
	rounded := amount.Round(MoneyScale)
	if rounded.IsNegative() {
		return Money{}, errs.NewValueIsOutOfRangeError("amount", amount.String(), 0, "unbounded")
	}
	return Money{amount: rounded, guard: guard.NewConstructorGuard()}, nil
}

// MoneyFromInt builds a whole-unit amount.
func MoneyFromInt(units int64) (Money, error) {
	return NewMoney(decimal.NewFromInt(units))
}

func MoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", err)
	}
	return NewMoney(d)
}

// MustMoney panics on invalid input. Intended for constants and tests.
func MustMoney(s string) Money {
	m, err := MoneyFromString(s)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}

func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount), guard: guard.NewConstructorGuard()}
}

// Sub subtracts other, failing when the result would be negative.
func (m Money) Sub(other Money) (Money, error) {
	if m.amount.LessThan(other.amount) {
		return Money{}, errs.NewValueIsOutOfRangeError("amount", m.amount.Sub(other.amount).String(), 0, "unbounded")
	}
	return Money{amount: m.amount.Sub(other.amount), guard: guard.NewConstructorGuard()}, nil
}

// Times multiplies by a quantity.
func (m Money) Times(quantity int) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(quantity))), guard: guard.NewConstructorGuard()}
}

func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

func (m Money) Equal(other Money) bool {
	return m.amount.Equal(other.amount)
}

func (m Money) GreaterThanOrEqual(other Money) bool {
	return m.amount.GreaterThanOrEqual(other.amount)
}

// WholeUnits returns the amount truncated to whole currency units.
func (m Money) WholeUnits() int64 {
	return m.amount.IntPart()
}

// MinorUnits returns the amount in the smallest currency unit (e.g. paise).
func (m Money) MinorUnits() int64 {
	return m.amount.Shift(MoneyScale).IntPart()
}

// String renders the amount with exactly MoneyScale fractional digits.
func (m Money) String() string {
	return m.amount.StringFixed(MoneyScale)
}

func (m Money) GoString() string {
	return fmt.Sprintf("Money(%s)", m.String())
}
