package ledger

import (
	"errors"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/robinvdvleuten/commodities/quantity"
	"github.com/shopspring/decimal"
)

func TestAmountParseNegative(t *testing.T) {
	pool := newTestPool(t)

	var a Amount
	rest, ok, err := a.Parse(pool, "-10 USD", ParseDefault)
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "", rest)
	assert.Equal(t, "-10", a.Quantity().String())
	assert.Equal(t, "USD", a.Commodity().Symbol())
	assert.Equal(t, "SUFFIXED|SEPARATED", a.Commodity().Flags().String())
	assert.Equal(t, "-10 USD", a.String())
}

func TestAmountPrintRoundTrip(t *testing.T) {
	pool := newTestPool(t)

	// Order matters: "$" learns its style from the first amount.
	for _, text := range []string{
		"$1,000.00",
		"$-5.00",
		"-10 USD",
		"0.25 BTC",
		`10 "M&M"`,
		"10 AAPL {$150.00} [2024/03/01] (lot1)",
		"5 GOOG {=$120.00}",
	} {
		t.Run(text, func(t *testing.T) {
			a := mustAmount(t, pool, text)
			assert.Equal(t, text, a.String())
		})
	}
}

func TestAmountDecimalComma(t *testing.T) {
	t.Run("Inferred", func(t *testing.T) {
		pool := newTestPool(t)
		a := mustAmount(t, pool, "1.000,00 EUR")
		assertDecimal(t, "1000", a)
		prec, err := a.Precision()
		assert.NoError(t, err)
		assert.Equal(t, 2, prec)
		assert.True(t, a.Commodity().Flags().Has(StyleDecimalComma|StyleThousands))
		assert.Equal(t, "1.000,00 EUR", a.String())
	})

	t.Run("ByDefault", func(t *testing.T) {
		pool := newTestPool(t, WithDecimalCommaByDefault())
		a := mustAmount(t, pool, "1,50 EUR")
		assertDecimal(t, "1.5", a)
		assert.Equal(t, "1,50 EUR", a.String())
	})
}

func TestAmountParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		opts    []Option
		wantErr string
	}{
		{"TooManyPeriods", "1,2,3.4.5 EUR", nil, `Too many periods in amount: "1,2,3.4.5"`},
		{"TooManyCommas", "1,2,3 EUR", nil, `Too many commas in amount: "1,2,3"`},
		{"ThousandMarkComma", "1,00,000 EUR", nil, `Incorrect use of thousand-mark comma: "1,00,000"`},
		{"ThousandMarkPeriod", "1.00 EUR", []Option{WithDecimalCommaByDefault()}, `Incorrect use of thousand-mark period: "1.00"`},
		{"NoQuantity", "EUR", nil, `No quantity specified for amount: "EUR"`},
		{"UnclosedQuote", `"EUR 10`, nil, "Quoted commodity symbol lacks closing quote"},
		{"UnclosedPrice", "10 AAPL {$150", nil, "Commodity lot price lacks closing brace"},
		{"TwoPrices", "10 AAPL {$1} {$2}", nil, "Commodity specifies more than one price"},
		{"BadLotDate", "10 AAPL [2024/13/01]", nil, `Invalid date in commodity annotation: "2024/13/01"`},
		{"UnclosedTag", "10 AAPL (lot", nil, "Commodity tag lacks closing parenthesis"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool := newTestPool(t, tt.opts...)
			a, err := pool.ParseAmount(tt.input, ParseDefault)
			assert.True(t, a == nil)
			assert.IsError(t, err, ErrParse)
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestAmountParseFlags(t *testing.T) {
	t.Run("SoftFail", func(t *testing.T) {
		pool := newTestPool(t)
		a, err := pool.ParseAmount("EUR", ParseSoftFail)
		assert.NoError(t, err)
		assert.True(t, a == nil)

		b := NewAmountInt(5)
		rest, ok, err := b.Parse(pool, "EUR", ParseSoftFail)
		assert.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, "EUR", rest)
		assertDecimal(t, "5", b)
	})

	t.Run("NoMigrate", func(t *testing.T) {
		pool := newTestPool(t)
		a, err := pool.ExactAmount("1.2345 EUR")
		assert.NoError(t, err)
		assert.True(t, a.KeepPrecision())
		assert.Equal(t, 0, a.Commodity().Precision())
		assert.Equal(t, StyleDefaults, a.Commodity().Flags())
		dp, err := a.DisplayPrecision()
		assert.NoError(t, err)
		assert.Equal(t, 4, dp)
	})

	t.Run("NoAnnot", func(t *testing.T) {
		pool := newTestPool(t)
		var a Amount
		rest, ok, err := a.Parse(pool, "10 AAPL {$150}", ParseNoAnnot)
		assert.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, " {$150}", rest)
		assert.False(t, a.Commodity().IsAnnotated())
	})

	t.Run("TotalLotPrice", func(t *testing.T) {
		pool := newTestPool(t)
		a := mustAmount(t, pool, "10 AAPL {{$1500.00}}")
		ann, err := a.Annotation()
		assert.NoError(t, err)
		assertDecimal(t, "150", ann.Price)
		assert.Equal(t, "$", ann.Price.Commodity().Symbol())
	})

	t.Run("MigratesPrecision", func(t *testing.T) {
		pool := newTestPool(t)
		mustAmount(t, pool, "1 EUR")
		mustAmount(t, pool, "1.250 EUR")
		mustAmount(t, pool, "1.5 EUR")
		assert.Equal(t, 3, pool.Find("EUR").Precision())
	})
}

func TestAmountPrecisionLaws(t *testing.T) {
	t.Run("Divide", func(t *testing.T) {
		a := NewAmount(quantity.FromInt64(10, 2), nil)
		b := NewAmount(quantity.FromInt64(4, 2), nil)
		r, err := a.Divide(b)
		assert.NoError(t, err)
		assertDecimal(t, "2.5", r)
		assert.Equal(t, 2+2+quantity.ExtendByDigits, r.Quantity().Precision())
		assertDecimal(t, "10", a)
	})

	t.Run("Multiply", func(t *testing.T) {
		r, err := NewAmount(mustQuantity("1.5"), nil).Multiply(NewAmount(mustQuantity("2.25"), nil))
		assert.NoError(t, err)
		assertDecimal(t, "3.375", r)
		assert.Equal(t, 3, r.Quantity().Precision())
	})

	t.Run("Add", func(t *testing.T) {
		r, err := NewAmount(mustQuantity("1.5"), nil).Add(NewAmount(mustQuantity("2.125"), nil))
		assert.NoError(t, err)
		assertDecimal(t, "3.625", r)
		assert.Equal(t, 3, r.Quantity().Precision())
	})

	t.Run("CappedByCommodity", func(t *testing.T) {
		pool := newTestPool(t)
		usd := mustAmount(t, pool, "1.00 USD")
		r, err := usd.Multiply(NewAmount(mustQuantity("1.2345678"), nil))
		assert.NoError(t, err)
		assert.Equal(t, 2+quantity.ExtendByDigits, r.Quantity().Precision())
		assertDecimal(t, "1.2345678", r)

		third, err := usd.Divide(NewAmountInt(3))
		assert.NoError(t, err)
		assert.Equal(t, 8, third.Quantity().Precision())
		assert.Equal(t, "0.33333333", third.Quantity().Decimal().Round(8).String())
		assert.Equal(t, "0.33 USD", third.String())
	})

	t.Run("KeepPrecisionIsNotCapped", func(t *testing.T) {
		pool := newTestPool(t)
		a, err := pool.ExactAmount("1.00 USD")
		assert.NoError(t, err)
		r, err := a.Divide(NewAmountInt(3))
		assert.NoError(t, err)
		assert.Equal(t, 8, r.Quantity().Precision())

		r, err = r.Divide(NewAmountInt(3))
		assert.NoError(t, err)
		assert.Equal(t, 14, r.Quantity().Precision())
	})
}

func TestAmountIsZero(t *testing.T) {
	pool := newTestPool(t)
	usd := pool.Create("USD")
	usd.SetPrecision(2)

	tiny := quantity.FromDecimal(decimal.RequireFromString("0.008"), 8)
	smaller := quantity.FromDecimal(decimal.RequireFromString("0.004"), 8)

	tests := []struct {
		name     string
		amount   *Amount
		keep     bool
		wantZero bool
		wantReal bool
	}{
		{"RoundsUp", NewAmount(tiny, usd), false, false, false},
		{"NoCommodity", NewAmount(tiny, nil), false, false, false},
		{"RoundsDown", NewAmount(smaller, usd), false, true, false},
		{"KeepPrecision", NewAmount(smaller, usd), true, false, false},
		{"RealZero", NewAmount(quantity.FromInt64(0, 2), usd), false, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NoError(t, tt.amount.SetKeepPrecision(tt.keep))
			zero, err := tt.amount.IsZero()
			assert.NoError(t, err)
			assert.Equal(t, tt.wantZero, zero)

			realZero, err := tt.amount.IsRealZero()
			assert.NoError(t, err)
			assert.Equal(t, tt.wantReal, realZero)
		})
	}
}

func TestAmountUninitialized(t *testing.T) {
	pool := newTestPool(t)
	one := mustAmount(t, pool, "1 USD")

	var empty Amount
	assert.True(t, empty.IsEmpty())
	assert.False(t, empty.HasCommodity())
	assert.Equal(t, "<null>", empty.String())
	assert.True(t, empty.Valid())

	_, err := empty.Add(one)
	assert.IsError(t, err, ErrUninitialized)
	assert.EqualError(t, err, "Cannot add an amount to an uninitialized amount")

	_, err = one.Add(&Amount{})
	assert.EqualError(t, err, "Cannot add an uninitialized amount to an amount")

	_, err = empty.Subtract(&Amount{})
	assert.EqualError(t, err, "Cannot subtract two uninitialized amounts")

	_, err = one.Divide(&Amount{})
	assert.EqualError(t, err, "Cannot divide an amount by an uninitialized amount")

	_, err = empty.Sign()
	assert.EqualError(t, err, "Cannot determine sign of an uninitialized amount")

	_, err = empty.IsZero()
	assert.IsError(t, err, ErrUninitialized)

	_, err = empty.Value(newTestDate(t, "2024-01-01"), nil)
	assert.IsError(t, err, ErrUninitialized)

	_, err = one.Add(nil)
	assert.IsError(t, err, ErrInvalidArgument)
	assert.EqualError(t, err, `argument "amount" must not be nil`)
}

func TestAmountCommodityMismatch(t *testing.T) {
	pool := newTestPool(t)
	usd := mustAmount(t, pool, "1 USD")
	eur := mustAmount(t, pool, "1 EUR")

	_, err := usd.Add(eur)
	assert.IsError(t, err, ErrCommodityMismatch)
	assert.EqualError(t, err, "Adding amounts with different commodities: 'USD' != 'EUR'")

	_, err = usd.Subtract(eur)
	assert.EqualError(t, err, "Subtracting amounts with different commodities: 'USD' != 'EUR'")

	_, err = usd.Compare(eur)
	assert.EqualError(t, err, "Cannot compare amounts with different commodities: 'USD' and 'EUR'")

	// Bare numbers mix with any commodity.
	sum, err := usd.Add(NewAmountInt(2))
	assert.NoError(t, err)
	assert.Equal(t, "3 USD", sum.String())

	// Lots of the same commodity with different details do not.
	lot := mustAmount(t, pool, "1 USD (lot)")
	_, err = usd.Add(lot)
	assert.IsError(t, err, ErrCommodityMismatch)
}

func TestAmountDivideByZero(t *testing.T) {
	pool := newTestPool(t)
	usd := mustAmount(t, pool, "1.00 USD")

	_, err := usd.Divide(NewAmountInt(0))
	assert.IsError(t, err, ErrDivideByZero)
	assert.EqualError(t, err, "Divide by zero")

	// 0.001 displays as zero in USD.
	_, err = usd.Divide(NewAmount(mustQuantity("0.001"), usd.Commodity()))
	assert.IsError(t, err, ErrDivideByZero)

	zero, err := NewAmountInt(0).Inverted()
	assert.NoError(t, err)
	assertDecimal(t, "0", zero)
}

func TestAmountArithmetic(t *testing.T) {
	pool := newTestPool(t)
	a := mustAmount(t, pool, "10.50 EUR")
	b := mustAmount(t, pool, "2.25 EUR")

	sum, err := a.Add(b)
	assert.NoError(t, err)
	assert.Equal(t, "12.75 EUR", sum.String())

	diff, err := b.Subtract(a)
	assert.NoError(t, err)
	assert.Equal(t, "-8.25 EUR", diff.String())

	cmp, err := a.Compare(b)
	assert.NoError(t, err)
	assert.Equal(t, 1, cmp)
	less, err := b.IsLessThan(a)
	assert.NoError(t, err)
	assert.True(t, less)

	neg, err := a.Negated()
	assert.NoError(t, err)
	abs, err := neg.Abs()
	assert.NoError(t, err)
	assert.True(t, abs.Equal(a))
	assert.Equal(t, "10.50 EUR", a.String(), "receiver is unchanged")

	inv, err := NewAmountInt(4).Inverted()
	assert.NoError(t, err)
	assertDecimal(t, "0.25", inv)

	in, err := a.Copy().InPlaceAdd(b)
	assert.NoError(t, err)
	assert.Equal(t, "12.75 EUR", in.String())
}

func TestAmountMerge(t *testing.T) {
	pool := newTestPool(t)
	eur := mustAmount(t, pool, "2 EUR")
	rate := mustAmount(t, pool, "1.10 USD")

	merged, err := eur.Merge(rate)
	assert.NoError(t, err)
	assertDecimal(t, "2.2", merged)
	assert.True(t, merged.Commodity() == rate.Commodity())

	_, err = eur.Merge(eur)
	assert.IsError(t, err, ErrInvalidArgument)
	assert.EqualError(t, err, "Cannot merge amounts of the same commodity 'EUR'")
}

func TestAmountRounding(t *testing.T) {
	pool := newTestPool(t)
	mustAmount(t, pool, "1.00 USD")
	usd := pool.Find("USD")
	a := NewAmount(mustQuantity("2.345"), usd)

	assert.Equal(t, "2.34 USD", a.String())
	assert.Equal(t, "2.345 USD", a.FullString())
	assert.Equal(t, "2.345", a.QuantityString())

	unrounded, err := a.Unrounded()
	assert.NoError(t, err)
	assert.True(t, unrounded.KeepPrecision())
	rounded, err := unrounded.Rounded()
	assert.NoError(t, err)
	assert.False(t, rounded.KeepPrecision())

	truncated, err := a.Truncated()
	assert.NoError(t, err)
	assertDecimal(t, "2.34", truncated)

	roundedTo, err := a.RoundTo(1)
	assert.NoError(t, err)
	assertDecimal(t, "2.3", roundedTo)

	neg := NewAmount(mustQuantity("-2.345"), usd)
	floor, err := neg.Floored()
	assert.NoError(t, err)
	assertDecimal(t, "-3", floor)
	ceil, err := neg.Ceilinged()
	assert.NoError(t, err)
	assertDecimal(t, "-2", ceil)
	assertDecimal(t, "-2.345", neg)
}

func TestAmountConversions(t *testing.T) {
	tests := []struct {
		input string
		want  int64
	}{
		{"2.5", 2},
		{"3.5", 4},
		{"-1.2", -1},
		{"7", 7},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := NewAmount(mustQuantity(tt.input), nil).Int64()
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	f, err := NewAmount(mustQuantity("0.5"), nil).Float64()
	assert.NoError(t, err)
	assert.Equal(t, 0.5, f)

	huge := NewAmountDecimal(decimal.RequireFromString("1e30"))
	_, err = huge.Int64()
	assert.IsError(t, err, ErrInvalid)
}

func TestAmountPrintWidth(t *testing.T) {
	pool := newTestPool(t)
	a := mustAmount(t, pool, "10 EUR")

	assert.Equal(t, "  10 EUR", a.PrintWidth(8, PrintRightJustify))
	assert.Equal(t, "10 EUR  ", a.PrintWidth(8, PrintNoFlags))
	assert.Equal(t, "10 EUR", a.PrintWidth(3, PrintRightJustify))
}

func TestAmountElideQuotes(t *testing.T) {
	pool := newTestPool(t)
	a := mustAmount(t, pool, `10 "M&M"`)

	assert.Equal(t, `10 "M&M"`, a.Print(PrintNoFlags))
	assert.Equal(t, "10 M&M", a.Print(PrintElideCommodityQuotes))
}

func TestAmountNoComputedAnnotations(t *testing.T) {
	pool := newTestPool(t)
	mustAmount(t, pool, "$1.00")
	aapl := mustAmount(t, pool, "10 AAPL")

	b, err := pool.ExchangeAmount(aapl, mustAmount(t, pool, "$1500.00"), false, false, newTestDate(t, "2024-03-01"), "")
	assert.NoError(t, err)
	assert.Equal(t, "10 AAPL {$150.00} [2024/03/01]", b.Amount.String())
	assert.Equal(t, "10 AAPL", b.Amount.Print(PrintNoComputedAnnotations))
}

func TestAmountStripAnnotations(t *testing.T) {
	pool := newTestPool(t)
	mustAmount(t, pool, "$1.00")
	a := mustAmount(t, pool, "10 AAPL {$150.00} [2024/03/01] (lot1)")

	all, err := a.StripAnnotations(KeepDetails{KeepPrice: true, KeepDate: true, KeepTag: true})
	assert.NoError(t, err)
	assert.True(t, all == a, "keeping everything returns the receiver")

	none, err := a.StripAnnotations(KeepDetails{})
	assert.NoError(t, err)
	assert.True(t, none.Commodity() == pool.Find("AAPL"))
	assert.Equal(t, "10 AAPL", none.String())

	dated, err := a.StripAnnotations(KeepDetails{KeepDate: true})
	assert.NoError(t, err)
	assert.Equal(t, "10 AAPL [2024/03/01]", dated.String())

	plain := mustAmount(t, pool, "5 EUR")
	same, err := plain.StripAnnotations(KeepDetails{})
	assert.NoError(t, err)
	assert.True(t, same == plain)
}

func TestAmountAnnotate(t *testing.T) {
	pool := newTestPool(t)
	mustAmount(t, pool, "$1.00")
	a := mustAmount(t, pool, "10 AAPL")

	_, err := a.Annotation()
	assert.IsError(t, err, ErrInvalidArgument)
	assert.EqualError(t, err, "Request for annotation details from an unannotated amount")

	assert.NoError(t, a.Annotate(&Annotation{Tag: "gift"}))
	has, err := a.HasAnnotation()
	assert.NoError(t, err)
	assert.True(t, has)
	assert.Equal(t, "10 AAPL (gift)", a.String())

	// Annotating again starts from the plain commodity.
	assert.NoError(t, a.Annotate(&Annotation{Tag: "other"}))
	assert.Equal(t, "10 AAPL (other)", a.String())

	number := NewAmountInt(3)
	assert.NoError(t, number.Annotate(&Annotation{Tag: "ignored"}))
	assert.Equal(t, "3", number.String())
}

func TestAmountPrice(t *testing.T) {
	pool := newTestPool(t)
	mustAmount(t, pool, "$1.00")

	price, err := mustAmount(t, pool, "10 AAPL {$150.00}").Price()
	assert.NoError(t, err)
	assertDecimal(t, "1500", price)
	assert.Equal(t, "$1500.00", price.String())

	price, err = mustAmount(t, pool, "10 AAPL").Price()
	assert.NoError(t, err)
	assert.True(t, price == nil)
}

func TestAmountReduce(t *testing.T) {
	pool := newTestPool(t)
	assert.NoError(t, pool.ParseConversion("1.0m", "60s"))
	assert.NoError(t, pool.ParseConversion("1.0h", "60m"))

	t.Run("ParseReduces", func(t *testing.T) {
		a := mustAmount(t, pool, "2h")
		assertDecimal(t, "7200", a)
		assert.True(t, a.Commodity() == pool.Find("s"))
	})

	t.Run("NoReduce", func(t *testing.T) {
		a, err := pool.ParseAmount("2h", ParseNoReduce)
		assert.NoError(t, err)
		assert.True(t, a.Commodity() == pool.Find("h"))

		r, err := a.Reduced()
		assert.NoError(t, err)
		assertDecimal(t, "7200", r)
		assertDecimal(t, "2", a)
	})

	t.Run("Unreduce", func(t *testing.T) {
		u, err := mustAmount(t, pool, "3601s").Unreduced()
		assert.NoError(t, err)
		assert.True(t, u.Commodity() == pool.Find("h"))
		assert.Equal(t, "1.0003", u.Quantity().Decimal().Round(4).String())

		u, err = mustAmount(t, pool, "90s").Unreduced()
		assert.NoError(t, err)
		assert.True(t, u.Commodity() == pool.Find("m"))
		assert.Equal(t, "1.5m", u.String())

		small := mustAmount(t, pool, "59s")
		u, err = small.Unreduced()
		assert.NoError(t, err)
		assert.True(t, u.Commodity() == pool.Find("s"))
		assertDecimal(t, "59", u)
	})
}

func TestAmountUnreduceTimeColon(t *testing.T) {
	pool := newTestPool(t, WithTimeColonByDefault())
	assert.NoError(t, pool.ParseConversion("1.0m", "60s"))
	assert.NoError(t, pool.ParseConversion("1.0h", "60m"))

	u, err := mustAmount(t, pool, "5400s").Unreduced()
	assert.NoError(t, err)
	assert.True(t, u.Commodity() == pool.Find("h"))
	assertDecimal(t, "1.3", u)
}

func TestAmountValue(t *testing.T) {
	pool := newTestPool(t)
	_, _, err := pool.ParsePriceDirective("2024/01/02 EUR 1.10 USD", false, false)
	assert.NoError(t, err)
	usd := pool.Find("USD")
	eur := pool.Find("EUR")
	ten := mustAmount(t, pool, "10 EUR")

	t.Run("InTermsOf", func(t *testing.T) {
		v, err := ten.Value(newTestDate(t, "2024-01-03"), usd)
		assert.NoError(t, err)
		assertDecimal(t, "11", v)
		assert.True(t, v.Commodity() == usd)
		assert.False(t, v.KeepPrecision())
	})

	t.Run("AnyCommodity", func(t *testing.T) {
		v, err := ten.Value(newTestDate(t, "2024-01-03"), nil)
		assert.NoError(t, err)
		assertDecimal(t, "11", v)
		assert.True(t, v.Commodity() == usd)
	})

	t.Run("BeforeFirstPrice", func(t *testing.T) {
		v, err := ten.Value(newTestDate(t, "2024-01-01"), usd)
		assert.NoError(t, err)
		assert.True(t, v == nil)
	})

	t.Run("Primary", func(t *testing.T) {
		assert.True(t, usd.Flags().Has(Primary))
		v, err := mustAmount(t, pool, "5 USD").Value(newTestDate(t, "2024-01-03"), nil)
		assert.NoError(t, err)
		assert.True(t, v == nil)
	})

	t.Run("SameCommodity", func(t *testing.T) {
		v, err := ten.Value(newTestDate(t, "2024-01-03"), eur)
		assert.NoError(t, err)
		assert.True(t, v.Equal(ten))
	})

	t.Run("NoCommodity", func(t *testing.T) {
		v, err := NewAmountInt(3).Value(newTestDate(t, "2024-01-03"), usd)
		assert.NoError(t, err)
		assert.True(t, v == nil)
	})

	t.Run("FixatedLotPrice", func(t *testing.T) {
		v, err := mustAmount(t, pool, "10 AAPL {=$150.00}").Value(newTestDate(t, "2024-01-03"), nil)
		assert.NoError(t, err)
		assertDecimal(t, "1500", v)
		assert.Equal(t, "$", v.Commodity().Symbol())
	})
}

func TestAmountValid(t *testing.T) {
	pool := newTestPool(t)
	a := mustAmount(t, pool, "1 EUR")
	assert.True(t, a.Valid())
	assert.NoError(t, a.Verify())

	a.Commodity().SetPrecision(17)
	assert.False(t, a.Valid())
	assert.IsError(t, a.Verify(), ErrInvalid)

	assert.False(t, (*Amount)(nil).Valid())
	assert.False(t, (&Amount{commodity: pool.Find("s")}).Valid())
}

func TestAmountNilArgument(t *testing.T) {
	pool := newTestPool(t)

	tests := []struct {
		name string
		op   func(a *Amount) (*Amount, error)
	}{
		{"Add", func(a *Amount) (*Amount, error) { return a.Add(nil) }},
		{"Subtract", func(a *Amount) (*Amount, error) { return a.Subtract(nil) }},
		{"Multiply", func(a *Amount) (*Amount, error) { return a.Multiply(nil) }},
		{"Divide", func(a *Amount) (*Amount, error) { return a.Divide(nil) }},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			for _, a := range []*Amount{{}, mustAmount(t, pool, "10 EUR")} {
				_, err := test.op(a)
				assert.IsError(t, err, ErrInvalidArgument)
				assert.False(t, errors.Is(err, ErrUninitialized))
			}
		})
	}
}
