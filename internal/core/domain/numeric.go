package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Numeric is an exact monetary quantity quantized to a commodity's smallest
// fraction. It behaves as the rational pair numerator/10^fraction: the
// coefficient is an arbitrary-precision integer, so add/negate/compare never
// round. Display rounding only ever happens in StringFixed, and only when the
// caller asks for fewer digits than the stored fraction.
type Numeric struct {
	value    decimal.Decimal
	fraction int32 // decimal places; denominator is 10^fraction
}

// NewNumericFromString parses a decimal string at the given commodity fraction.
// Input requiring more precision than the fraction allows is rejected rather
// than silently truncated.
func NewNumericFromString(s string, fraction int32) (Numeric, error) {
	if fraction < 0 {
		return Numeric{}, fmt.Errorf("numeric fraction must be non-negative, got %d", fraction)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Numeric{}, fmt.Errorf("invalid numeric string %q: %w", s, err)
	}
	if !d.Equal(d.Round(fraction)) {
		return Numeric{}, fmt.Errorf("numeric %q exceeds fraction of %d decimal places", s, fraction)
	}
	return Numeric{value: d, fraction: fraction}, nil
}

// NewNumericFromDecimal quantizes an exact decimal at the given fraction.
// Fails if the value does not fit the fraction; conversion that would truncate
// is the caller's decision, never this type's.
func NewNumericFromDecimal(d decimal.Decimal, fraction int32) (Numeric, error) {
	if fraction < 0 {
		return Numeric{}, fmt.Errorf("numeric fraction must be non-negative, got %d", fraction)
	}
	if !d.Equal(d.Round(fraction)) {
		return Numeric{}, fmt.Errorf("decimal %s exceeds fraction of %d decimal places", d.String(), fraction)
	}
	return Numeric{value: d, fraction: fraction}, nil
}

// ZeroNumeric returns the zero quantity at the given fraction.
func ZeroNumeric(fraction int32) Numeric {
	return Numeric{value: decimal.Zero, fraction: fraction}
}

// Num returns the numerator of the rational view: value scaled to an integer
// count of smallest fraction units.
func (n Numeric) Num() int64 {
	return n.value.Shift(n.fraction).IntPart()
}

// Denom returns the denominator of the rational view, 10^fraction.
func (n Numeric) Denom() int64 {
	d := int64(1)
	for i := int32(0); i < n.fraction; i++ {
		d *= 10
	}
	return d
}

// Fraction returns the number of decimal places this quantity is stored at.
func (n Numeric) Fraction() int32 {
	return n.fraction
}

// Decimal exposes the exact decimal value for persistence and DTO boundaries.
func (n Numeric) Decimal() decimal.Decimal {
	return n.value
}

// Add returns n + other exactly. Mixed fractions rescale to the finer of the
// two; no precision is lost in either direction.
func (n Numeric) Add(other Numeric) Numeric {
	f := n.fraction
	if other.fraction > f {
		f = other.fraction
	}
	return Numeric{value: n.value.Add(other.value), fraction: f}
}

// Sub returns n - other exactly.
func (n Numeric) Sub(other Numeric) Numeric {
	return n.Add(other.Neg())
}

// Neg returns -n.
func (n Numeric) Neg() Numeric {
	return Numeric{value: n.value.Neg(), fraction: n.fraction}
}

// Abs returns the absolute value of n.
func (n Numeric) Abs() Numeric {
	return Numeric{value: n.value.Abs(), fraction: n.fraction}
}

// IsZero is the canonical exact zero test over the normalized coefficient.
func (n Numeric) IsZero() bool {
	return n.value.IsZero()
}

// IsZeroWithin reports whether |n| <= epsilon. Only for comparing against
// legacy floating display values; the balance invariant always uses IsZero.
func (n Numeric) IsZeroWithin(epsilon decimal.Decimal) bool {
	return n.value.Abs().LessThanOrEqual(epsilon)
}

// Equal reports exact equality of the represented quantities, independent of
// the stored fraction.
func (n Numeric) Equal(other Numeric) bool {
	return n.value.Equal(other.value)
}

// Cmp compares the represented quantities: -1 if n < other, 0 if equal, +1 otherwise.
func (n Numeric) Cmp(other Numeric) int {
	return n.value.Cmp(other.value)
}

// Sign returns -1, 0, or +1.
func (n Numeric) Sign() int {
	return n.value.Sign()
}

// StringFixed renders the quantity at its own fraction, e.g. "12.34" at fraction 2.
func (n Numeric) StringFixed() string {
	return n.value.StringFixed(n.fraction)
}

// String implements fmt.Stringer.
func (n Numeric) String() string {
	return n.StringFixed()
}

// MarshalJSON renders the quantity as a JSON string at its own fraction.
func (n Numeric) MarshalJSON() ([]byte, error) {
	return []byte(`"` + n.StringFixed() + `"`), nil
}
