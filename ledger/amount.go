package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/robinvdvleuten/commodities/quantity"
	"github.com/shopspring/decimal"
)

// Amount is a quantity bound to an optional commodity. The zero Amount is
// uninitialized: it prints as "<null>" and most operations on it fail with
// ErrUninitialized.
//
// Methods named InPlace* modify the receiver and return it; the others leave
// the receiver alone and return a new Amount.
type Amount struct {
	quantity      quantity.Quantity
	commodity     *Commodity
	keepPrecision bool
}

// NewAmount binds q to c. A nil c means no commodity.
func NewAmount(q quantity.Quantity, c *Commodity) *Amount {
	return &Amount{quantity: q, commodity: c}
}

// NewAmountInt returns v without a commodity.
func NewAmountInt(v int64) *Amount {
	return &Amount{quantity: quantity.FromInt64(v, 0)}
}

// NewAmountDecimal returns d without a commodity, at the precision its
// exponent implies.
func NewAmountDecimal(d decimal.Decimal) *Amount {
	prec := 0
	if exp := d.Exponent(); exp < 0 {
		prec = int(-exp)
	}
	return &Amount{quantity: quantity.FromDecimal(d, prec)}
}

// Copy returns an independent copy of a.
func (a *Amount) Copy() *Amount {
	c := *a
	return &c
}

func (a *Amount) Quantity() quantity.Quantity { return a.quantity }

// Commodity returns the bound commodity, which may be nil or the pool's
// null commodity when the amount has none.
func (a *Amount) Commodity() *Commodity { return a.commodity }

// IsEmpty reports whether a holds no quantity.
func (a *Amount) IsEmpty() bool {
	return a == nil || a.quantity.IsEmpty()
}

// HasCommodity is false for a nil or null commodity.
func (a *Amount) HasCommodity() bool {
	return !a.IsEmpty() && !a.commodity.isNull()
}

func (a *Amount) KeepPrecision() bool { return a.keepPrecision }

func (a *Amount) SetKeepPrecision(keep bool) error {
	if a.IsEmpty() {
		return uninitialized("Cannot set whether to keep the precision of an uninitialized amount")
	}
	a.keepPrecision = keep
	return nil
}

// SetCommodity binds a to c. An uninitialized amount becomes zero.
func (a *Amount) SetCommodity(c *Commodity) {
	if a.quantity.IsEmpty() {
		a.quantity = quantity.Zero
	}
	a.commodity = c
}

// ClearCommodity unbinds a from its commodity.
func (a *Amount) ClearCommodity() {
	if a.commodity != nil {
		a.commodity = a.commodity.pool.null
	}
}

// WithCommodity returns a copy of a bound to c.
func (a *Amount) WithCommodity(c *Commodity) *Amount {
	t := a.Copy()
	t.SetCommodity(c)
	return t
}

// HasAnnotation reports whether the commodity carries lot details.
func (a *Amount) HasAnnotation() (bool, error) {
	if a.IsEmpty() {
		return false, uninitialized("Cannot determine if an uninitialized amount's commodity is annotated")
	}
	return a.HasCommodity() && a.commodity.IsAnnotated(), nil
}

// Annotation returns the lot details of the amount's commodity.
func (a *Amount) Annotation() (*Annotation, error) {
	if a.IsEmpty() {
		return nil, uninitialized("Cannot return commodity annotation details of an uninitialized amount")
	}
	if !a.commodity.IsAnnotated() {
		return nil, amountError(ErrInvalidArgument, "Request for annotation details from an unannotated amount")
	}
	return a.commodity.annotation, nil
}

// Annotate moves a to the annotated variant of its commodity carrying
// details. Amounts without a commodity are left alone.
func (a *Amount) Annotate(details *Annotation) error {
	if a.IsEmpty() {
		return uninitialized("Cannot annotate the commodity of an uninitialized amount")
	}
	if !a.HasCommodity() {
		return nil
	}
	c, err := a.commodity.pool.FindOrCreateAnnotated(a.commodity.Referent(), details)
	if err != nil {
		return err
	}
	a.SetCommodity(c)
	return nil
}

// StripAnnotations returns a with only the lot details selected by keep. When
// everything would be kept the receiver itself is returned.
func (a *Amount) StripAnnotations(keep KeepDetails) (*Amount, error) {
	if a.IsEmpty() {
		return nil, uninitialized("Cannot strip commodity annotations from an uninitialized amount")
	}
	if keep.KeepAllFor(a.commodity) {
		return a, nil
	}
	c, err := a.commodity.StripAnnotations(keep)
	if err != nil {
		return nil, err
	}
	t := NewAmount(a.quantity, a.commodity)
	t.SetCommodity(c)
	return t, nil
}

// Valid is false when the quantity's precision tag overflows, or when a
// commodity is bound to an uninitialized amount.
func (a *Amount) Valid() bool {
	if a == nil {
		return false
	}
	if a.quantity.IsEmpty() {
		return a.commodity.isNull()
	}
	if !a.quantity.Valid() {
		return false
	}
	if a.commodity != nil && !a.commodity.Valid() {
		return false
	}
	return true
}

// Verify returns an error when a is not Valid.
func (a *Amount) Verify() error {
	if !a.Valid() {
		return amountError(ErrInvalid, "Invalid amount: %s", a.FullString())
	}
	return nil
}

// Sign returns -1, 0 or 1.
func (a *Amount) Sign() (int, error) {
	if a.IsEmpty() {
		return 0, uninitialized("Cannot determine sign of an uninitialized amount")
	}
	return a.quantity.Sign(), nil
}

// IsRealZero reports whether the exact value is zero. 0.0001 USD is never a
// real zero.
func (a *Amount) IsRealZero() (bool, error) {
	s, err := a.Sign()
	return s == 0, err
}

// IsZero reports whether a displays as zero: a value that rounds to zero at
// the commodity's precision is zero unless the amount keeps its own
// precision or is narrower than the commodity.
func (a *Amount) IsZero() (bool, error) {
	if a.IsEmpty() {
		return false, uninitialized("Cannot determine if an uninitialized amount is zero")
	}
	if a.HasCommodity() {
		cp := a.commodity.Precision()
		if a.keepPrecision || a.quantity.Precision() < cp {
			return a.quantity.Sign() == 0, nil
		}
		if a.quantity.Sign() == 0 {
			return true, nil
		}
		return a.quantity.IsZeroInPrecision(cp), nil
	}
	return a.quantity.Sign() == 0, nil
}

func (a *Amount) IsNonZero() (bool, error) {
	z, err := a.IsZero()
	return !z, err
}

// Precision returns the quantity's precision tag.
func (a *Amount) Precision() (int, error) {
	if a.IsEmpty() {
		return 0, uninitialized("Cannot determine precision of an uninitialized amount")
	}
	return a.quantity.Precision(), nil
}

// DisplayPrecision is the commodity's precision, or the wider of the
// quantity's and the commodity's when the amount keeps its precision.
func (a *Amount) DisplayPrecision() (int, error) {
	if a.IsEmpty() {
		return 0, uninitialized("Cannot determine display precision of an uninitialized amount")
	}
	if !a.HasCommodity() {
		return a.quantity.Precision(), nil
	}
	if !a.keepPrecision {
		return a.commodity.Precision(), nil
	}
	return max(a.quantity.Precision(), a.commodity.Precision()), nil
}

// Equal reports equal values in the same commodity, regardless of
// precision.
func (a *Amount) Equal(o *Amount) bool {
	if a.IsEmpty() || o.IsEmpty() {
		return a.IsEmpty() && o.IsEmpty()
	}
	return sameCommodity(a.commodity, o.commodity) && a.quantity.Equal(o.quantity)
}

// Compare returns -1, 0 or 1. Amounts in different commodities cannot be
// compared.
func (a *Amount) Compare(o *Amount) (int, error) {
	if o == nil {
		return 0, &ArgumentError{Name: "amount"}
	}
	if err := uninitCompare.check(a, o); err != nil {
		return 0, err
	}
	if a.HasCommodity() && o.HasCommodity() && !a.commodity.Equal(o.commodity) {
		return 0, amountError(ErrCommodityMismatch, "Cannot compare amounts with different commodities: '%s' and '%s'", a.commodity, o.commodity)
	}
	return a.quantity.Compare(o.quantity)
}

func (a *Amount) IsLessThan(o *Amount) (bool, error) {
	c, err := a.Compare(o)
	return c < 0, err
}

func (a *Amount) IsGreaterThan(o *Amount) (bool, error) {
	c, err := a.Compare(o)
	return c > 0, err
}

// InPlaceAdd adds o to a. Both must be initialized and, when both have one,
// share a commodity.
func (a *Amount) InPlaceAdd(o *Amount) (*Amount, error) {
	if o == nil {
		return nil, &ArgumentError{Name: "amount"}
	}
	if err := uninitAdd.check(a, o); err != nil {
		return nil, err
	}
	if a.HasCommodity() && o.HasCommodity() && !a.commodity.Equal(o.commodity) {
		return nil, amountError(ErrCommodityMismatch, "Adding amounts with different commodities: '%s' != '%s'", a.commodity, o.commodity)
	}
	a.quantity = a.quantity.Add(o.quantity)
	return a, nil
}

func (a *Amount) Add(o *Amount) (*Amount, error) {
	if o == nil {
		return nil, &ArgumentError{Name: "amount"}
	}
	if a.IsEmpty() {
		return nil, uninitAdd.check(a, o)
	}
	return a.Copy().InPlaceAdd(o)
}

// InPlaceSubtract subtracts o from a under the same rules as InPlaceAdd.
func (a *Amount) InPlaceSubtract(o *Amount) (*Amount, error) {
	if o == nil {
		return nil, &ArgumentError{Name: "amount"}
	}
	if err := uninitSubtract.check(a, o); err != nil {
		return nil, err
	}
	if a.HasCommodity() && o.HasCommodity() && !a.commodity.Equal(o.commodity) {
		return nil, amountError(ErrCommodityMismatch, "Subtracting amounts with different commodities: '%s' != '%s'", a.commodity, o.commodity)
	}
	a.quantity = a.quantity.Subtract(o.quantity)
	return a, nil
}

func (a *Amount) Subtract(o *Amount) (*Amount, error) {
	if o == nil {
		return nil, &ArgumentError{Name: "amount"}
	}
	if a.IsEmpty() {
		return nil, uninitSubtract.check(a, o)
	}
	return a.Copy().InPlaceSubtract(o)
}

// capPrecision limits q to the commodity's precision plus the guard digits
// unless the amount keeps its own precision.
func (a *Amount) capPrecision(q quantity.Quantity) quantity.Quantity {
	if a.HasCommodity() && !a.keepPrecision {
		if cp := a.commodity.Precision() + quantity.ExtendByDigits; q.Precision() > cp {
			return q.SetPrecision(cp)
		}
	}
	return q
}

// InPlaceMultiply multiplies a by o. A commodity-less a takes o's
// commodity.
func (a *Amount) InPlaceMultiply(o *Amount) (*Amount, error) {
	if o == nil {
		return nil, &ArgumentError{Name: "amount"}
	}
	if err := uninitMultiply.check(a, o); err != nil {
		return nil, err
	}
	q := a.quantity.Multiply(o.quantity)
	if !a.HasCommodity() && o.HasCommodity() {
		a.commodity = o.commodity
	}
	a.quantity = a.capPrecision(q)
	return a, nil
}

func (a *Amount) Multiply(o *Amount) (*Amount, error) {
	if o == nil {
		return nil, &ArgumentError{Name: "amount"}
	}
	if a.IsEmpty() {
		return nil, uninitMultiply.check(a, o)
	}
	return a.Copy().InPlaceMultiply(o)
}

// InPlaceDivide divides a by o, extending precision so the quotient keeps
// its accuracy. Dividing by an amount that displays as zero fails.
func (a *Amount) InPlaceDivide(o *Amount) (*Amount, error) {
	if o == nil {
		return nil, &ArgumentError{Name: "amount"}
	}
	if err := uninitDivide.check(a, o); err != nil {
		return nil, err
	}
	if zero, _ := o.IsZero(); zero {
		return nil, amountError(ErrDivideByZero, "Divide by zero")
	}
	q, err := a.quantity.Divide(o.quantity)
	if err != nil {
		return nil, amountError(ErrDivideByZero, "Divide by zero")
	}
	if !a.HasCommodity() && o.HasCommodity() {
		a.commodity = o.commodity
	}
	a.quantity = a.capPrecision(q)
	return a, nil
}

func (a *Amount) Divide(o *Amount) (*Amount, error) {
	if o == nil {
		return nil, &ArgumentError{Name: "amount"}
	}
	if a.IsEmpty() {
		return nil, uninitDivide.check(a, o)
	}
	return a.Copy().InPlaceDivide(o)
}

// Merge multiplies the quantities of a and o and binds the result to o's
// commodity, which must differ from a's.
func (a *Amount) Merge(o *Amount) (*Amount, error) {
	if o == nil {
		return nil, &ArgumentError{Name: "amount"}
	}
	if sameCommodity(a.commodity, o.commodity) {
		return nil, amountError(ErrInvalidArgument, "Cannot merge amounts of the same commodity '%s'", a.commodity)
	}
	return NewAmount(a.quantity.Multiply(o.quantity), o.commodity), nil
}

// InPlaceInvert replaces a non-zero a by 1/a.
func (a *Amount) InPlaceInvert() (*Amount, error) {
	if a.IsEmpty() {
		return nil, uninitialized("Cannot invert an uninitialized amount")
	}
	if a.quantity.Sign() != 0 {
		q, err := a.quantity.Invert()
		if err != nil {
			return nil, amountError(ErrDivideByZero, "Divide by zero")
		}
		a.quantity = q
	}
	return a, nil
}

func (a *Amount) Inverted() (*Amount, error) {
	if a.IsEmpty() {
		return nil, uninitialized("Cannot invert an uninitialized amount")
	}
	return a.Copy().InPlaceInvert()
}

func (a *Amount) InPlaceNegate() (*Amount, error) {
	if a.IsEmpty() {
		return nil, uninitialized("Cannot negate an uninitialized amount")
	}
	a.quantity = a.quantity.Negate()
	return a, nil
}

func (a *Amount) Negated() (*Amount, error) {
	if a.IsEmpty() {
		return nil, uninitialized("Cannot negate an uninitialized amount")
	}
	return a.Copy().InPlaceNegate()
}

func (a *Amount) Abs() (*Amount, error) {
	if a.IsEmpty() {
		return nil, uninitialized("Cannot determine sign of an uninitialized amount")
	}
	t := a.Copy()
	t.quantity = t.quantity.Abs()
	return t, nil
}

// InPlaceRound makes a display at its commodity's precision again.
func (a *Amount) InPlaceRound() (*Amount, error) {
	if a.IsEmpty() {
		return nil, uninitialized("Cannot set rounding for an uninitialized amount")
	}
	a.keepPrecision = false
	return a, nil
}

// Rounded returns a copy displayed at the commodity's precision.
func (a *Amount) Rounded() (*Amount, error) {
	if a.IsEmpty() {
		return nil, uninitialized("Cannot set rounding for an uninitialized amount")
	}
	return a.Copy().InPlaceRound()
}

// InPlaceUnround makes a display every digit of its quantity.
func (a *Amount) InPlaceUnround() (*Amount, error) {
	if a.IsEmpty() {
		return nil, uninitialized("Cannot unround an uninitialized amount")
	}
	a.keepPrecision = true
	return a, nil
}

func (a *Amount) Unrounded() (*Amount, error) {
	if a.IsEmpty() {
		return nil, uninitialized("Cannot unround an uninitialized amount")
	}
	return a.Copy().InPlaceUnround()
}

// InPlaceTruncate rounds the value to its display precision.
func (a *Amount) InPlaceTruncate() (*Amount, error) {
	dp, err := a.DisplayPrecision()
	if err != nil {
		return nil, uninitialized("Cannot truncate an uninitialized amount")
	}
	a.quantity = a.quantity.RoundTo(dp)
	return a, nil
}

func (a *Amount) Truncated() (*Amount, error) {
	if a.IsEmpty() {
		return nil, uninitialized("Cannot truncate an uninitialized amount")
	}
	return a.Copy().InPlaceTruncate()
}

func (a *Amount) InPlaceFloor() (*Amount, error) {
	if a.IsEmpty() {
		return nil, uninitialized("Cannot compute floor on an uninitialized amount")
	}
	a.quantity = a.quantity.Floor()
	return a, nil
}

func (a *Amount) Floored() (*Amount, error) {
	if a.IsEmpty() {
		return nil, uninitialized("Cannot compute floor on an uninitialized amount")
	}
	return a.Copy().InPlaceFloor()
}

func (a *Amount) InPlaceCeiling() (*Amount, error) {
	if a.IsEmpty() {
		return nil, uninitialized("Cannot compute ceiling on an uninitialized amount")
	}
	a.quantity = a.quantity.Ceil()
	return a, nil
}

func (a *Amount) Ceilinged() (*Amount, error) {
	if a.IsEmpty() {
		return nil, uninitialized("Cannot compute ceiling on an uninitialized amount")
	}
	return a.Copy().InPlaceCeiling()
}

// InPlaceRoundTo rounds the value half to even at places digits.
func (a *Amount) InPlaceRoundTo(places int) (*Amount, error) {
	if a.IsEmpty() {
		return nil, uninitialized("Cannot round an uninitialized amount")
	}
	a.quantity = a.quantity.RoundTo(places)
	return a, nil
}

func (a *Amount) RoundTo(places int) (*Amount, error) {
	if a.IsEmpty() {
		return nil, uninitialized("Cannot round an uninitialized amount")
	}
	return a.Copy().InPlaceRoundTo(places)
}

// InPlaceReduce converts a into the smallest unit of its scaling chain, so
// 1h becomes 3600s.
func (a *Amount) InPlaceReduce() (*Amount, error) {
	if a.IsEmpty() {
		return nil, uninitialized("Cannot reduce an uninitialized amount")
	}
	for a.commodity != nil && a.commodity.Smaller() != nil {
		smaller := a.commodity.Smaller()
		a.quantity = a.quantity.Multiply(smaller.quantity)
		a.commodity = smaller.commodity
	}
	return a, nil
}

func (a *Amount) Reduced() (*Amount, error) {
	if a.IsEmpty() {
		return nil, uninitialized("Cannot reduce an uninitialized amount")
	}
	return a.Copy().InPlaceReduce()
}

// InPlaceUnreduce converts a into the largest unit of its scaling chain in
// which it is still at least one, so 3601s becomes 1.0003h.
func (a *Amount) InPlaceUnreduce() (*Amount, error) {
	if a.IsEmpty() {
		return nil, uninitialized("Cannot unreduce an uninitialized amount")
	}

	tmp := a
	comm := a.commodity
	shifted := false
	one := NewAmountInt(1)

	for !comm.isNull() && comm.Larger() != nil {
		next, err := tmp.Divide(comm.Larger().Number())
		if err != nil {
			return nil, err
		}
		abs, _ := next.Abs()
		if less, _ := abs.IsLessThan(one); less {
			break
		}
		tmp = next
		comm = comm.Larger().commodity
		shifted = true
	}
	if !shifted {
		return a, nil
	}

	if sym := comm.Symbol(); (sym == "h" || sym == "m") && comm.pool.cfg.TimeColonByDefault && comm.Smaller() != nil {
		var err error
		if tmp, err = timeColonFraction(tmp, comm); err != nil {
			return nil, err
		}
	}

	a.quantity = tmp.quantity
	a.commodity = comm
	return a, nil
}

// timeColonFraction rewrites the fractional part of tmp from a decimal
// fraction of comm into units of comm's smaller unit over 100, so 1.5h
// prints as 1:30.
func timeColonFraction(tmp *Amount, comm *Commodity) (*Amount, error) {
	floored, err := tmp.Floored()
	if err != nil {
		return nil, err
	}
	frac, err := tmp.Subtract(floored)
	if err != nil {
		return nil, err
	}
	if frac.quantity.Sign() < 0 {
		if _, err := frac.InPlaceAdd(NewAmountInt(1)); err != nil {
			return nil, err
		}
		if _, err := floored.InPlaceSubtract(NewAmountInt(1)); err != nil {
			return nil, err
		}
	}
	scale, err := comm.Smaller().Number().Divide(NewAmountInt(100))
	if err != nil {
		return nil, err
	}
	if frac, err = frac.Multiply(scale); err != nil {
		return nil, err
	}
	return floored.Add(frac)
}

func (a *Amount) Unreduced() (*Amount, error) {
	if a.IsEmpty() {
		return nil, uninitialized("Cannot unreduce an uninitialized amount")
	}
	return a.Copy().InPlaceUnreduce()
}

// Number returns a without its commodity.
func (a *Amount) Number() *Amount {
	if !a.HasCommodity() {
		return a
	}
	t := a.Copy()
	t.ClearCommodity()
	return t
}

// Int64 rounds to the nearest integer, half to even.
func (a *Amount) Int64() (int64, error) {
	if a.IsEmpty() {
		return 0, uninitialized("Cannot convert an uninitialized amount to an integer")
	}
	if !a.quantity.FitsInInt64() {
		return 0, amountError(ErrInvalid, "Amount %s does not fit in a 64-bit integer", a.quantity)
	}
	return a.quantity.Int64(), nil
}

func (a *Amount) Float64() (float64, error) {
	if a.IsEmpty() {
		return 0, uninitialized("Cannot convert an uninitialized amount to a float")
	}
	return a.quantity.Float64(), nil
}

// Price returns the total lot cost: the annotation's per-unit price times
// a. It is nil when the commodity has no lot price.
func (a *Amount) Price() (*Amount, error) {
	has, err := a.HasAnnotation()
	if err != nil || !has {
		return nil, err
	}
	d := a.commodity.annotation
	if d.Price == nil {
		return nil, nil
	}
	t, err := d.Price.Multiply(a)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// Value returns the market value of a at moment, expressed in inTermsOf or
// in whatever commodity the price history leads to. A fixated lot price is
// used as is. The result is nil when no price is known or when a is already
// a primary commodity and no target was requested.
func (a *Amount) Value(moment time.Time, inTermsOf *Commodity) (*Amount, error) {
	if a.IsEmpty() {
		return nil, uninitialized("Cannot determine value of an uninitialized amount")
	}
	if inTermsOf.isNull() {
		inTermsOf = nil
	}
	if !a.HasCommodity() || (inTermsOf == nil && a.commodity.Flags().Has(Primary)) {
		return nil, nil
	}

	var (
		point PricePoint
		found bool
	)
	comm := inTermsOf
	if d := a.commodity.annotation; d != nil && d.Price != nil {
		if d.IsPriceFixated {
			point, found = PricePoint{Price: d.Price}, true
		} else if comm == nil {
			comm = d.Price.commodity
		}
	}

	if comm != nil && a.commodity.Referent() == comm.Referent() {
		return a.WithCommodity(comm.Referent()), nil
	}

	if !found {
		point, found = a.commodity.FindPrice(comm, moment, time.Time{})
		point, found = a.commodity.CheckForUpdatedPrice(point, found, moment, comm)
	}
	if !found {
		return nil, nil
	}

	price, err := point.Price.Multiply(a.Number())
	if err != nil {
		return nil, err
	}
	return price.InPlaceRound()
}

// Print renders a with its commodity's style: symbol placement and
// separation, display precision, decimal mark and digit grouping, followed
// by any lot annotation. PrintColorize renders negative amounts in red when
// the terminal supports it.
func (a *Amount) Print(flags PrintFlags) string {
	if a.IsEmpty() {
		return "<null>"
	}
	comm := a.commodity
	elide := flags.has(PrintElideCommodityQuotes)
	cflags := comm.Flags()

	var b strings.Builder
	if !cflags.Has(StyleSuffixed) {
		if sym := comm.Print(elide, false); sym != "" {
			b.WriteString(sym)
			if cflags.Has(StyleSeparated) {
				b.WriteByte(' ')
			}
		}
	}

	dp, _ := a.DisplayPrecision()
	b.WriteString(a.quantity.Print(dp, comm.Precision(), comm.style()))

	if cflags.Has(StyleSuffixed) {
		if sym := comm.Print(elide, false); sym != "" {
			if cflags.Has(StyleSeparated) {
				b.WriteByte(' ')
			}
			b.WriteString(sym)
		}
	}

	b.WriteString(comm.WriteAnnotations(flags.has(PrintNoComputedAnnotations)))
	if flags.has(PrintColorize) && a.quantity.Sign() < 0 {
		return negativeStyle.Render(b.String())
	}
	return b.String()
}

var negativeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))

// PrintWidth pads the printed amount to width display cells, on the left
// when PrintRightJustify is set and on the right otherwise.
func (a *Amount) PrintWidth(width int, flags PrintFlags) string {
	s := a.Print(flags)
	pad := width - runewidth.StringWidth(a.Print(flags&^PrintColorize))
	if pad <= 0 {
		return s
	}
	if flags.has(PrintRightJustify) {
		return strings.Repeat(" ", pad) + s
	}
	return s + strings.Repeat(" ", pad)
}

func (a *Amount) String() string {
	return a.Print(PrintNoFlags)
}

// FullString prints every digit of the quantity.
func (a *Amount) FullString() string {
	if a.IsEmpty() {
		return "<null>"
	}
	u, _ := a.Unrounded()
	return u.Print(PrintNoFlags)
}

// QuantityString prints the number alone.
func (a *Amount) QuantityString() string {
	if a.IsEmpty() {
		return "<null>"
	}
	return a.Number().Print(PrintNoFlags)
}

// GoString is used by debug dumps.
func (a *Amount) GoString() string {
	if a.IsEmpty() {
		return "ledger.Amount{}"
	}
	return fmt.Sprintf("ledger.Amount{%#v, %q, keep=%t}", a.quantity, a.commodity.Symbol(), a.keepPrecision)
}
