// Package money implements a signed fixed-point decimal value with exactly
// four fractional digits, suitable for exact monetary arithmetic. All
// arithmetic is checked: an operation that would overflow the underlying
// 64-bit scaled integer returns a distinguishable error instead of wrapping
// or losing precision, which rules out float64 as a representation.
package money

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// scale is the number of integer units per whole currency unit. A Money
// value of 1.0000 is stored internally as the scaled integer 10000.
const scale = 10000

var (
	// ErrOverflow is returned by a checked arithmetic operation whose
	// result cannot be represented without overflowing the underlying
	// scaled integer.
	ErrOverflow = errors.New("money: operation overflows")

	// ErrInvalidFormat is returned when a decimal string does not match
	// the accepted grammar: an optional sign, integer digits, and an
	// optional fractional part of up to four digits.
	ErrInvalidFormat = errors.New("money: invalid decimal string")

	// ErrTooManyFractionalDigits is returned when a decimal string
	// carries more than four digits after the decimal point; accepting
	// it would silently lose precision.
	ErrTooManyFractionalDigits = errors.New("money: more than four fractional digits")
)

// Money is a signed fixed-point decimal with exactly four fractional
// digits. The zero value is a valid representation of 0.0000.
type Money struct {
	scaled int64
}

// Zero returns the Money value 0.0000.
func Zero() Money {
	return Money{}
}

// FromScaled constructs a Money value directly from its internal scaled
// representation. It exists for tests and internal callers that already
// hold a validated integer amount.
func FromScaled(scaled int64) Money {
	return Money{scaled: scaled}
}

// Scaled returns the value's internal integer representation (the decimal
// value multiplied by 10000).
func (m Money) Scaled() int64 {
	return m.scaled
}

// FromDecimalString parses s as a signed decimal amount with up to four
// fractional digits. Leading/trailing whitespace is trimmed. An optional
// leading '+' or '-' sign is accepted. Scientific notation, thousands
// separators, and more than four fractional digits are all rejected.
func FromDecimalString(s string) (Money, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Money{}, ErrInvalidFormat
	}

	negative := false
	rest := trimmed
	switch rest[0] {
	case '+':
		rest = rest[1:]
	case '-':
		negative = true
		rest = rest[1:]
	}
	if rest == "" {
		return Money{}, ErrInvalidFormat
	}

	intPart, fracPart, hasFrac := strings.Cut(rest, ".")
	if intPart == "" && (!hasFrac || fracPart == "") {
		return Money{}, ErrInvalidFormat
	}
	if intPart == "" {
		intPart = "0"
	}
	if !isAllDigits(intPart) {
		return Money{}, ErrInvalidFormat
	}
	if hasFrac {
		if !isAllDigits(fracPart) {
			return Money{}, ErrInvalidFormat
		}
		if len(fracPart) > 4 {
			return Money{}, ErrTooManyFractionalDigits
		}
	}
	// Pad the fractional part out to exactly four digits.
	for len(fracPart) < 4 {
		fracPart += "0"
	}

	intVal, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		if numErr, ok := err.(*strconv.NumError); ok && numErr.Err == strconv.ErrRange {
			return Money{}, ErrOverflow
		}
		return Money{}, ErrInvalidFormat
	}
	fracVal, err := strconv.ParseInt(fracPart, 10, 64)
	if err != nil {
		return Money{}, ErrInvalidFormat
	}

	scaledInt, ok := checkedMul(intVal, scale)
	if !ok {
		return Money{}, ErrOverflow
	}
	total, ok := checkedAddInt64(scaledInt, fracVal)
	if !ok {
		return Money{}, ErrOverflow
	}
	if negative {
		total = -total
	}

	return Money{scaled: total}, nil
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// CheckedAdd returns m + other, or ErrOverflow if the result cannot be
// represented.
func (m Money) CheckedAdd(other Money) (Money, error) {
	result, ok := checkedAddInt64(m.scaled, other.scaled)
	if !ok {
		return Money{}, ErrOverflow
	}
	return Money{scaled: result}, nil
}

// CheckedSub returns m - other, or ErrOverflow if the result cannot be
// represented.
func (m Money) CheckedSub(other Money) (Money, error) {
	result, ok := checkedSubInt64(m.scaled, other.scaled)
	if !ok {
		return Money{}, ErrOverflow
	}
	return Money{scaled: result}, nil
}

// IsNegative reports whether m is strictly less than zero.
func (m Money) IsNegative() bool {
	return m.scaled < 0
}

// IsZero reports whether m is exactly zero.
func (m Money) IsZero() bool {
	return m.scaled == 0
}

// IsPositive reports whether m is strictly greater than zero.
func (m Money) IsPositive() bool {
	return m.scaled > 0
}

// Cmp compares m and other, returning -1, 0, or 1 as m is less than, equal
// to, or greater than other.
func (m Money) Cmp(other Money) int {
	switch {
	case m.scaled < other.scaled:
		return -1
	case m.scaled > other.scaled:
		return 1
	default:
		return 0
	}
}

// LessThan reports whether m is strictly less than other.
func (m Money) LessThan(other Money) bool {
	return m.scaled < other.scaled
}

// Format renders m with exactly four fractional digits, a leading '-' for
// negative values, and no thousands separators or leading '+'.
func (m Money) Format() string {
	scaled := m.scaled
	sign := ""
	if scaled < 0 {
		sign = "-"
		// Guard against negating math.MinInt64.
		if scaled == math.MinInt64 {
			return "-922337203685477.5808"
		}
		scaled = -scaled
	}
	whole := scaled / scale
	frac := scaled % scale
	return fmt.Sprintf("%s%d.%04d", sign, whole, frac)
}

// String implements fmt.Stringer.
func (m Money) String() string {
	return m.Format()
}

func checkedAddInt64(a, b int64) (int64, bool) {
	sum := a + b
	if (b > 0 && sum < a) || (b < 0 && sum > a) {
		return 0, false
	}
	return sum, true
}

func checkedSubInt64(a, b int64) (int64, bool) {
	diff := a - b
	if (b < 0 && diff < a) || (b > 0 && diff > a) {
		return 0, false
	}
	return diff, true
}

func checkedMul(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	result := a * b
	if result/b != a {
		return 0, false
	}
	return result, true
}
