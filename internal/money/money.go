package money

import "fmt"

const (
	// Currency is the only currency the system prices and renders in.
	Currency = "MVR"

	// Scale is the number of decimal places between minor and major units.
	Scale = 2

	minorPerMajor = 100
)

// Money is an immutable amount held in minor units (laari). All arithmetic
// stays in minor units; conversion to major units happens only in Format, at
// the point a human-readable amount is produced.
type Money struct {
	Minor int64
}

func FromMinor(minor int64) Money {
	return Money{Minor: minor}
}

func (m Money) Add(other Money) Money {
	return Money{Minor: m.Minor + other.Minor}
}

// MulQty scales the amount by an item quantity.
func (m Money) MulQty(qty int) Money {
	return Money{Minor: m.Minor * int64(qty)}
}

func (m Money) IsZero() bool {
	return m.Minor == 0
}

// Format renders the amount in major units with the currency code prefix,
// e.g. 30000 -> "MVR 300.00". Integer division only, no float conversion.
func (m Money) Format() string {
	minor := m.Minor
	sign := ""
	if minor < 0 {
		sign = "-"
		minor = -minor
	}
	return fmt.Sprintf("%s %s%d.%02d", Currency, sign, minor/minorPerMajor, minor%minorPerMajor)
}

func (m Money) String() string {
	return m.Format()
}
