// Package quantity implements the arbitrary-precision number that underlies
// every amount. A Quantity pairs an exact decimal value with a precision tag:
// the number of fractional digits the value is considered to carry. The tag
// follows its own arithmetic (see Add, Multiply and Divide) and is independent
// of how many digits the stored value happens to have.
//
// The zero Quantity is empty. An empty quantity is not zero: it represents a
// value that was never assigned, and callers higher up refuse to operate on it.
package quantity

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

const (
	// ExtendByDigits is the number of places by which division extends
	// precision to avoid losing information.
	ExtendByDigits = 6

	// MaxPrecision is the largest precision a valid quantity may carry.
	MaxPrecision = 1024
)

var (
	ErrDivisionByZero = errors.New("division by zero")
	ErrEmpty          = errors.New("uninitialized quantity")
	ErrSyntax         = errors.New("invalid quantity syntax")
)

// Quantity is an immutable decimal value with a precision tag.
type Quantity struct {
	value decimal.Decimal
	prec  int
	set   bool
}

var (
	Zero = FromInt64(0, 0)
	One  = FromInt64(1, 0)
)

// FromInt64 returns v tagged with the given precision.
func FromInt64(v int64, prec int) Quantity {
	return Quantity{value: decimal.NewFromInt(v), prec: prec, set: true}
}

// FromDecimal returns d tagged with the given precision.
func FromDecimal(d decimal.Decimal, prec int) Quantity {
	return Quantity{value: d, prec: prec, set: true}
}

// FromFloat64 decodes as much precision as a float carries.
func FromFloat64(f float64) Quantity {
	d := decimal.NewFromFloat(f)
	prec := 0
	if exp := d.Exponent(); exp < 0 {
		prec = int(-exp)
	}
	return Quantity{value: d, prec: prec, set: true}
}

// IsEmpty reports whether the quantity was never assigned a value.
func (q Quantity) IsEmpty() bool { return !q.set }

// Precision returns the precision tag.
func (q Quantity) Precision() int { return q.prec }

// Decimal returns the underlying value, zero for an empty quantity.
func (q Quantity) Decimal() decimal.Decimal { return q.value }

// Valid is false when the precision tag exceeds MaxPrecision.
func (q Quantity) Valid() bool {
	return q.prec <= MaxPrecision
}

// Sign returns -1, 0 or 1. An empty quantity has sign 0.
func (q Quantity) Sign() int {
	if !q.set {
		return 0
	}
	return q.value.Sign()
}

func (q Quantity) with(v decimal.Decimal, prec int) Quantity {
	return Quantity{value: v, prec: prec, set: true}
}

// Add returns q+o at the larger of the two precisions. Empty operands count
// as zero.
func (q Quantity) Add(o Quantity) Quantity {
	return q.with(q.value.Add(o.value), max(q.prec, o.prec))
}

// Subtract returns q-o at the larger of the two precisions.
func (q Quantity) Subtract(o Quantity) Quantity {
	return q.with(q.value.Sub(o.value), max(q.prec, o.prec))
}

// Multiply returns q*o. The precision is the sum of both precisions.
func (q Quantity) Multiply(o Quantity) Quantity {
	return q.with(q.value.Mul(o.value), q.prec+o.prec)
}

// Divide returns q/o. The precision is the sum of both precisions plus
// ExtendByDigits; the stored value keeps ExtendByDigits more digits than
// that so later rounding does not compound.
func (q Quantity) Divide(o Quantity) (Quantity, error) {
	if !o.set || o.value.IsZero() {
		return Quantity{}, ErrDivisionByZero
	}
	prec := q.prec + o.prec + ExtendByDigits
	v := q.value.DivRound(o.value, int32(prec+ExtendByDigits))
	return q.with(v, prec), nil
}

// Invert returns 1/q.
func (q Quantity) Invert() (Quantity, error) {
	return One.Divide(q)
}

// Negate returns -q. An empty quantity stays empty.
func (q Quantity) Negate() Quantity {
	if !q.set {
		return q
	}
	return q.with(q.value.Neg(), q.prec)
}

// Abs returns |q|. An empty quantity stays empty.
func (q Quantity) Abs() Quantity {
	if !q.set {
		return q
	}
	return q.with(q.value.Abs(), q.prec)
}

// Floor rounds toward negative infinity, keeping the precision tag.
func (q Quantity) Floor() Quantity {
	return q.with(q.value.Floor(), q.prec)
}

// Ceil rounds toward positive infinity, keeping the precision tag.
func (q Quantity) Ceil() Quantity {
	return q.with(q.value.Ceil(), q.prec)
}

// RoundTo rounds the value half-to-even at places digits. The precision tag
// is unchanged.
func (q Quantity) RoundTo(places int) Quantity {
	return q.with(q.value.RoundBank(int32(places)), q.prec)
}

// SetPrecision returns q tagged with precision n. When n is narrower than
// the digits the value holds, the value is rounded half-to-even to n places.
func (q Quantity) SetPrecision(n int) Quantity {
	v := q.value
	if q.set && -v.Exponent() > int32(n) {
		v = v.RoundBank(int32(n))
	}
	return Quantity{value: v, prec: n, set: q.set}
}

// IsZeroInPrecision reports whether q rounds to zero at n places. An empty
// quantity is zero in every precision.
func (q Quantity) IsZeroInPrecision(n int) bool {
	if !q.set {
		return true
	}
	return q.value.RoundBank(int32(n)).IsZero()
}

// Compare returns -1, 0 or 1. It fails when either side is empty.
func (q Quantity) Compare(o Quantity) (int, error) {
	if !q.set || !o.set {
		return 0, ErrEmpty
	}
	return q.value.Cmp(o.value), nil
}

// Equal compares values, ignoring precision. Two empty quantities are equal.
func (q Quantity) Equal(o Quantity) bool {
	if q.set != o.set {
		return false
	}
	return q.value.Equal(o.value)
}

// Key returns a canonical text form of the value, suitable as a map key.
// Values that are Equal share a key.
func (q Quantity) Key() string {
	if !q.set {
		return ""
	}
	return q.value.String()
}

// Int64 rounds half-to-even to an integer.
func (q Quantity) Int64() int64 {
	if !q.set {
		return 0
	}
	return q.value.RoundBank(0).IntPart()
}

// FitsInInt64 reports whether Int64 would not overflow.
func (q Quantity) FitsInInt64() bool {
	if !q.set {
		return false
	}
	r := q.value.RoundBank(0)
	return r.LessThan(decimal.NewFromInt(math.MaxInt64)) && r.GreaterThan(decimal.NewFromInt(math.MinInt64))
}

// Float64 converts to the nearest float.
func (q Quantity) Float64() float64 {
	f, _ := q.value.Float64()
	return f
}

// String prints the exact stored value.
func (q Quantity) String() string {
	if !q.set {
		return "<empty>"
	}
	return q.value.String()
}

// GoString is used by debug dumps.
func (q Quantity) GoString() string {
	if !q.set {
		return "quantity.Quantity{}"
	}
	return fmt.Sprintf("quantity.Quantity{%s/%d}", q.value.String(), q.prec)
}
