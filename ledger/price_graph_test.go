package ledger

import (
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"
)

func TestHistoryFindPrice(t *testing.T) {
	pool := newTestPool(t)
	aaa := pool.Create("AAA")
	bbb := pool.Create("BBB")
	recorded := newTestDate(t, "2010-10-15")

	price := pool.NewAmount(mustQuantity("10"), bbb)
	assert.NoError(t, pool.History().AddPrice(aaa, recorded, price))

	point, ok := pool.History().FindPrice(aaa, newTestDate(t, "2010-10-16"), time.Time{})
	assert.True(t, ok)
	assert.True(t, point.Price == price, "the stored price is returned as is")
	assert.True(t, point.When.Equal(recorded))

	// On the day itself the price is already known.
	_, ok = pool.History().FindPrice(aaa, recorded, time.Time{})
	assert.True(t, ok)

	_, ok = pool.History().FindPrice(aaa, newTestDate(t, "2010-10-14"), time.Time{})
	assert.False(t, ok)

	_, ok = pool.History().FindPrice(aaa, newTestDate(t, "2010-10-20"), newTestDate(t, "2010-10-16"))
	assert.False(t, ok, "price older than the oldest bound is ignored")

	inverse, ok := pool.History().FindPrice(bbb, newTestDate(t, "2010-10-16"), time.Time{})
	assert.True(t, ok)
	assert.True(t, inverse.Price.Commodity() == aaa)
	assertDecimal(t, "0.1", inverse.Price)
}

func TestHistoryFindPriceLatest(t *testing.T) {
	pool := newTestPool(t)
	eur := pool.Create("EUR")
	usd := pool.Create("USD")
	gbp := pool.Create("GBP")

	assert.NoError(t, eur.AddPrice(newTestDate(t, "2024-01-02"), pool.NewAmount(mustQuantity("1.10"), usd), true))
	assert.NoError(t, eur.AddPrice(newTestDate(t, "2024-01-05"), pool.NewAmount(mustQuantity("0.85"), gbp), true))
	assert.NoError(t, eur.AddPrice(newTestDate(t, "2024-01-04"), pool.NewAmount(mustQuantity("1.12"), usd), true))

	point, ok := pool.History().FindPrice(eur, newTestDate(t, "2024-01-10"), time.Time{})
	assert.True(t, ok)
	assert.True(t, point.Price.Commodity() == gbp)

	point, ok = pool.History().FindPrice(eur, newTestDate(t, "2024-01-04"), time.Time{})
	assert.True(t, ok)
	assertDecimal(t, "1.12", point.Price)
}

func TestHistoryFindPriceIn(t *testing.T) {
	pool := newTestPool(t)
	eur := pool.Create("EUR")
	usd := pool.Create("USD")
	gbp := pool.Create("GBP")
	jpy := pool.Create("JPY")
	history := pool.History()

	assert.NoError(t, history.AddPrice(eur, newTestDate(t, "2024-01-02"), pool.NewAmount(mustQuantity("1.25"), usd)))
	assert.NoError(t, history.AddPrice(gbp, newTestDate(t, "2024-01-03"), pool.NewAmount(mustQuantity("1.20"), eur)))
	moment := newTestDate(t, "2024-01-05")

	t.Run("Direct", func(t *testing.T) {
		point, ok, err := history.FindPriceIn(eur, usd, moment, time.Time{})
		assert.NoError(t, err)
		assert.True(t, ok)
		assertDecimal(t, "1.25", point.Price)
		assert.True(t, point.Price.Commodity() == usd)
	})

	t.Run("Inverted", func(t *testing.T) {
		point, ok, err := history.FindPriceIn(usd, eur, moment, time.Time{})
		assert.NoError(t, err)
		assert.True(t, ok)
		assertDecimal(t, "0.8", point.Price)
		assert.True(t, point.Price.Commodity() == eur)
	})

	t.Run("Composed", func(t *testing.T) {
		point, ok, err := history.FindPriceIn(gbp, usd, moment, time.Time{})
		assert.NoError(t, err)
		assert.True(t, ok)
		assertDecimal(t, "1.5", point.Price)
		assert.True(t, point.Price.Commodity() == usd)
		assert.True(t, point.When.Equal(newTestDate(t, "2024-01-02")), "oldest price on the path")
	})

	t.Run("NotYetKnown", func(t *testing.T) {
		_, ok, err := history.FindPriceIn(gbp, usd, newTestDate(t, "2024-01-02"), time.Time{})
		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Unconnected", func(t *testing.T) {
		_, ok, err := history.FindPriceIn(jpy, usd, moment, time.Time{})
		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("SameCommodity", func(t *testing.T) {
		_, _, err := history.FindPriceIn(usd, usd, moment, time.Time{})
		assert.IsError(t, err, ErrGraphInvariant)
	})
}

func TestHistoryPrefersFreshestPath(t *testing.T) {
	pool := newTestPool(t)
	eur := pool.Create("EUR")
	usd := pool.Create("USD")
	gbp := pool.Create("GBP")
	history := pool.History()

	// A stale direct rate and a fresh route through GBP.
	assert.NoError(t, history.AddPrice(eur, newTestDate(t, "2023-01-01"), pool.NewAmount(mustQuantity("1.00"), usd)))
	assert.NoError(t, history.AddPrice(eur, newTestDate(t, "2024-01-04"), pool.NewAmount(mustQuantity("0.80"), gbp)))
	assert.NoError(t, history.AddPrice(gbp, newTestDate(t, "2024-01-04"), pool.NewAmount(mustQuantity("1.50"), usd)))

	point, ok, err := history.FindPriceIn(eur, usd, newTestDate(t, "2024-01-05"), time.Time{})
	assert.NoError(t, err)
	assert.True(t, ok)
	assertDecimal(t, "1.2", point.Price)
}

func TestHistoryAddPriceSameCommodity(t *testing.T) {
	pool := newTestPool(t)
	eur := pool.Create("EUR")

	err := pool.History().AddPrice(eur, newTestDate(t, "2024-01-02"), pool.NewAmount(mustQuantity("1"), eur))
	assert.IsError(t, err, ErrGraphInvariant)
	assert.EqualError(t, err, "add price: source commodity 'EUR' must differ from target 'EUR'")

	err = eur.AddPrice(newTestDate(t, "2024-01-02"), nil, false)
	assert.IsError(t, err, ErrInvalidArgument)
}

func TestHistoryRemovePrice(t *testing.T) {
	pool := newTestPool(t)
	eur := pool.Create("EUR")
	usd := pool.Create("USD")
	first := newTestDate(t, "2024-01-02")
	second := newTestDate(t, "2024-01-03")

	assert.NoError(t, eur.AddPrice(first, pool.NewAmount(mustQuantity("1.10"), usd), true))
	assert.NoError(t, eur.AddPrice(second, pool.NewAmount(mustQuantity("1.12"), usd), true))

	assert.NoError(t, eur.RemovePrice(second, usd))
	point, ok := eur.FindPrice(usd, newTestDate(t, "2024-01-05"), time.Time{})
	assert.True(t, ok)
	assertDecimal(t, "1.10", point.Price)

	assert.NoError(t, eur.RemovePrice(first, usd))
	_, ok = eur.FindPrice(usd, newTestDate(t, "2024-01-05"), time.Time{})
	assert.False(t, ok)
	assert.NotContains(t, pool.History().PrintMap(time.Time{}), "--")

	err := pool.History().RemovePrice(eur, eur, first)
	assert.IsError(t, err, ErrGraphInvariant)
}

func TestHistoryMapPrices(t *testing.T) {
	pool := newTestPool(t)
	eur := pool.Create("EUR")
	usd := pool.Create("USD")

	assert.NoError(t, eur.AddPrice(newTestDate(t, "2024-01-02"), pool.NewAmount(mustQuantity("1.25"), usd), true))
	assert.NoError(t, eur.AddPrice(newTestDate(t, "2024-01-04"), pool.NewAmount(mustQuantity("1.00"), usd), true))
	assert.NoError(t, eur.AddPrice(newTestDate(t, "2024-07-01"), pool.NewAmount(mustQuantity("2.00"), usd), true))

	collect := func(c *Commodity, moment, oldest time.Time, both bool) []string {
		var out []string
		assert.NoError(t, c.MapPrices(func(when time.Time, price *Amount) {
			out = append(out, when.Format("2006-01-02")+" "+price.Quantity().Decimal().String()+" "+price.Commodity().Symbol())
		}, moment, oldest, both))
		return out
	}

	// The pool clock stands at 2024-06-01.
	assert.Equal(t, []string{"2024-01-02 1.25 USD", "2024-01-04 1 USD"}, collect(eur, time.Time{}, time.Time{}, false))
	assert.Equal(t, []string{"2024-01-04 1 USD"}, collect(eur, time.Time{}, newTestDate(t, "2024-01-03"), false))
	assert.Equal(t, 0, len(collect(usd, time.Time{}, time.Time{}, false)))
	assert.Equal(t, []string{"2024-01-02 0.8 EUR", "2024-01-04 1 EUR"}, collect(usd, time.Time{}, time.Time{}, true))

	err := pool.History().MapPrices(nil, eur, time.Time{}, time.Time{}, false)
	assert.IsError(t, err, ErrInvalidArgument)
}

func TestHistoryPrintMap(t *testing.T) {
	pool := newTestPool(t)
	eur := pool.Create("EUR")
	usd := pool.Create("USD")
	assert.NoError(t, eur.AddPrice(newTestDate(t, "2024-01-02"), pool.NewAmount(mustQuantity("1.10"), usd), true))

	assert.Equal(t, ""+
		"graph G {\n"+
		"0[label=\"\"];\n"+
		"1[label=\"s\"];\n"+
		"2[label=\"%\"];\n"+
		"3[label=\"EUR\"];\n"+
		"4[label=\"USD\"];\n"+
		"3--4 ;\n"+
		"}\n", pool.History().PrintMap(time.Time{}))

	assert.NotContains(t, pool.History().PrintMap(newTestDate(t, "2024-01-01")), "3--4")
}

func TestPriceCacheMemoizes(t *testing.T) {
	pool := newTestPool(t)
	eur := pool.Create("EUR")
	usd := pool.Create("USD")
	gbp := pool.Create("GBP")
	assert.NoError(t, eur.AddPrice(newTestDate(t, "2024-01-02"), pool.NewAmount(mustQuantity("1.10"), usd), true))

	history := pool.History()
	moment := newTestDate(t, "2024-01-03")

	before := history.FilterCalls()
	first, ok := eur.FindPrice(usd, moment, time.Time{})
	assert.True(t, ok)
	traversed := history.FilterCalls()
	assert.True(t, traversed > before)

	second, ok := eur.FindPrice(usd, moment, time.Time{})
	assert.True(t, ok)
	assert.Equal(t, traversed, history.FilterCalls(), "memoized lookup does not touch the graph")
	assert.True(t, first.Price == second.Price)

	// Misses are remembered too.
	_, ok = gbp.FindPrice(usd, moment, time.Time{})
	assert.False(t, ok)
	assert.Equal(t, 1, gbp.base.prices.len())
}

func TestPriceCacheEviction(t *testing.T) {
	pool := newTestPool(t)
	eur := pool.Create("EUR")
	usd := pool.Create("USD")
	assert.NoError(t, eur.AddPrice(newTestDate(t, "2024-01-02"), pool.NewAmount(mustQuantity("1.10"), usd), true))

	history := pool.History()
	start := newTestDate(t, "2024-02-01")
	lookup := func(day int) {
		_, ok := eur.FindPrice(usd, start.AddDate(0, 0, day), time.Time{})
		assert.True(t, ok)
	}

	for day := range MaxPriceMapSize + 1 {
		lookup(day)
	}
	assert.Equal(t, MaxPriceMapSize+1, eur.base.prices.len())

	// The next insertion drops the oldest half first.
	lookup(MaxPriceMapSize + 1)
	assert.Equal(t, MaxPriceMapSize+1-MaxPriceMapSize/2+1, eur.base.prices.len())

	calls := history.FilterCalls()
	lookup(MaxPriceMapSize + 1)
	assert.Equal(t, calls, history.FilterCalls(), "recent lookup is still memoized")

	lookup(0)
	assert.True(t, history.FilterCalls() > calls, "evicted lookup walks the graph again")
}

func TestPriceCacheClearedByAddPrice(t *testing.T) {
	pool := newTestPool(t)
	eur := pool.Create("EUR")
	usd := pool.Create("USD")
	assert.NoError(t, eur.AddPrice(newTestDate(t, "2024-01-02"), pool.NewAmount(mustQuantity("1.10"), usd), true))

	moment := newTestDate(t, "2024-01-10")
	point, ok := eur.FindPrice(usd, moment, time.Time{})
	assert.True(t, ok)
	assertDecimal(t, "1.10", point.Price)
	assert.Equal(t, 1, eur.base.prices.len())

	assert.NoError(t, eur.AddPrice(newTestDate(t, "2024-01-05"), pool.NewAmount(mustQuantity("1.20"), usd), true))
	assert.Equal(t, 0, eur.base.prices.len())

	point, ok = eur.FindPrice(usd, moment, time.Time{})
	assert.True(t, ok)
	assertDecimal(t, "1.20", point.Price)
}

func TestPriceCacheConcurrentLookups(t *testing.T) {
	pool := newTestPool(t)
	eur := pool.Create("EUR")
	usd := pool.Create("USD")
	assert.NoError(t, eur.AddPrice(newTestDate(t, "2024-01-02"), pool.NewAmount(mustQuantity("1.10"), usd), true))

	moment := newTestDate(t, "2024-01-10")
	_, ok := eur.FindPrice(usd, moment, time.Time{})
	assert.True(t, ok)

	done := make(chan bool)
	for range 8 {
		go func() {
			_, ok := eur.FindPrice(usd, moment, time.Time{})
			done <- ok
		}()
	}
	for range 8 {
		assert.True(t, <-done)
	}
}

func TestCommodityFindPriceDefaultCommodity(t *testing.T) {
	pool := newTestPool(t)
	eur := pool.Create("EUR")
	usd := pool.Create("USD")
	gbp := pool.Create("GBP")
	moment := newTestDate(t, "2024-01-10")
	assert.NoError(t, eur.AddPrice(newTestDate(t, "2024-01-02"), pool.NewAmount(mustQuantity("1.10"), usd), true))
	assert.NoError(t, eur.AddPrice(newTestDate(t, "2024-01-03"), pool.NewAmount(mustQuantity("0.85"), gbp), true))

	point, ok := eur.FindPrice(nil, moment, time.Time{})
	assert.True(t, ok)
	assert.True(t, point.Price.Commodity() == gbp, "latest adjacent price")

	pool.SetDefaultCommodity(usd)
	point, ok = eur.FindPrice(pool.Null(), newTestDate(t, "2024-01-11"), time.Time{})
	assert.True(t, ok)
	assert.True(t, point.Price.Commodity() == usd)

	_, ok = usd.FindPrice(nil, moment, time.Time{})
	assert.False(t, ok, "the default commodity has no price in itself")
}

func TestCommodityFindPriceAnnotated(t *testing.T) {
	pool := newTestPool(t)
	mustAmount(t, pool, "$1.00")
	usd := pool.Find("$")
	aapl := pool.Create("AAPL")
	assert.NoError(t, aapl.AddPrice(newTestDate(t, "2024-01-02"), pool.NewAmount(mustQuantity("180"), usd), true))
	moment := newTestDate(t, "2024-01-10")

	fixated := mustAmount(t, pool, "1 AAPL {=$150.00}").Commodity()
	point, ok := fixated.FindPrice(nil, moment, time.Time{})
	assert.True(t, ok)
	assertDecimal(t, "150", point.Price)
	assert.True(t, point.When.Equal(moment))

	floating := mustAmount(t, pool, "1 AAPL {$140.00}").Commodity()
	point, ok = floating.FindPrice(nil, moment, time.Time{})
	assert.True(t, ok)
	assertDecimal(t, "180", point.Price)
	assert.True(t, point.Price.Commodity() == usd)
}

func TestCommodityValuation(t *testing.T) {
	pool := newTestPool(t)
	eur := pool.Create("EUR")
	usd := pool.Create("USD")
	assert.NoError(t, eur.AddPrice(newTestDate(t, "2024-01-02"), pool.NewAmount(mustQuantity("1.10"), usd), true))
	moment := newTestDate(t, "2024-01-10")

	var asked *Commodity
	eur.SetValuation(func(c *Commodity, when time.Time, inTermsOf *Commodity) *Amount {
		asked = inTermsOf
		return pool.NewAmount(mustQuantity("2"), usd)
	})
	point, ok := eur.FindPrice(usd, moment, time.Time{})
	assert.True(t, ok)
	assertDecimal(t, "2", point.Price)
	assert.True(t, asked == usd)
	assert.True(t, point.When.Equal(moment))

	eur.SetValuation(func(*Commodity, time.Time, *Commodity) *Amount { return nil })
	_, ok = eur.FindPrice(usd, moment, time.Time{})
	assert.False(t, ok)

	eur.SetValuation(nil)
	point, ok = eur.FindPrice(usd, moment, time.Time{})
	assert.True(t, ok)
	assertDecimal(t, "1.10", point.Price)
}

func TestCommodityQuotes(t *testing.T) {
	var requests int
	source := func(c, inTermsOf *Commodity) (PricePoint, bool) {
		requests++
		return PricePoint{
			When:  time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			Price: c.Pool().NewAmount(mustQuantity("1.30"), inTermsOf),
		}, true
	}

	t.Run("Missing", func(t *testing.T) {
		requests = 0
		pool := newTestPool(t, WithGetQuotes(source))
		usd := pool.Create("USD")
		ten := mustAmount(t, pool, "10 EUR")

		v, err := ten.Value(time.Time{}, usd)
		assert.NoError(t, err)
		assertDecimal(t, "13", v)
		assert.Equal(t, 1, requests)
	})

	t.Run("Stale", func(t *testing.T) {
		requests = 0
		pool := newTestPool(t, WithGetQuotes(source))
		usd := pool.Create("USD")
		ten := mustAmount(t, pool, "10 EUR")
		assert.NoError(t, ten.Commodity().AddPrice(newTestDate(t, "2024-01-02"), pool.NewAmount(mustQuantity("1.10"), usd), true))

		v, err := ten.Value(time.Time{}, usd)
		assert.NoError(t, err)
		assertDecimal(t, "13", v)
		assert.Equal(t, 1, requests)
	})

	t.Run("Fresh", func(t *testing.T) {
		requests = 0
		pool := newTestPool(t, WithGetQuotes(source))
		usd := pool.Create("USD")
		ten := mustAmount(t, pool, "10 EUR")
		assert.NoError(t, ten.Commodity().AddPrice(newTestDate(t, "2024-06-01"), pool.NewAmount(mustQuantity("1.10"), usd), true))

		v, err := ten.Value(time.Time{}, usd)
		assert.NoError(t, err)
		assertDecimal(t, "11", v)
		assert.Equal(t, 0, requests)
	})

	t.Run("NoMarket", func(t *testing.T) {
		requests = 0
		pool := newTestPool(t, WithGetQuotes(source))
		usd := pool.Create("USD")
		ten := mustAmount(t, pool, "10 EUR")
		ten.Commodity().AddFlags(NoMarket)

		v, err := ten.Value(time.Time{}, usd)
		assert.NoError(t, err)
		assert.True(t, v == nil)
		assert.Equal(t, 0, requests)
	})

	t.Run("Disabled", func(t *testing.T) {
		requests = 0
		pool := newTestPool(t, WithQuoteSource(source))
		usd := pool.Create("USD")

		v, err := mustAmount(t, pool, "10 EUR").Value(time.Time{}, usd)
		assert.NoError(t, err)
		assert.True(t, v == nil)
		assert.Equal(t, 0, requests)
	})
}
