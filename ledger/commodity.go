package ledger

import (
	"strings"
	"time"

	"github.com/robinvdvleuten/commodities/quantity"
)

// maxCommodityPrecision is the widest display precision a valid commodity
// may carry.
const maxCommodityPrecision = 16

// commodityBase is the state shared by a commodity and every annotated
// variant of it.
type commodityBase struct {
	symbol    string
	precision int
	flags     CommodityFlags
	note      string

	smaller *Amount
	larger  *Amount

	valuation Valuation
	prices    priceCache
}

// Valuation computes the price of c at moment in terms of inTermsOf (which
// may be nil). It replaces the price history for commodities that have one.
// Returning nil means no price is known.
type Valuation func(c *Commodity, moment time.Time, inTermsOf *Commodity) *Amount

// PricePoint is a single price observation or lookup result.
type PricePoint struct {
	When  time.Time
	Price *Amount
}

// Commodity is either a plain commodity or an annotated variant of one. Both
// forms share the same base record; an annotated commodity additionally
// carries lot details and points back to its plain referent.
type Commodity struct {
	pool            *Pool
	base            *commodityBase
	qualifiedSymbol string
	seq             uint64

	annotation *Annotation
	referent   *Commodity
}

// Pool returns the pool that created c.
func (c *Commodity) Pool() *Pool { return c.pool }

// Symbol returns the qualified (quoted) symbol when one is needed, else the
// base symbol.
func (c *Commodity) Symbol() string {
	if c == nil {
		return ""
	}
	if c.qualifiedSymbol != "" {
		return c.qualifiedSymbol
	}
	return c.base.symbol
}

func (c *Commodity) BaseSymbol() string {
	if c == nil {
		return ""
	}
	return c.base.symbol
}

// Seq returns the creation sequence number. Commodities created later have
// larger numbers.
func (c *Commodity) Seq() uint64 { return c.seq }

func (c *Commodity) IsAnnotated() bool {
	return c != nil && c.annotation != nil
}

// Annotation returns the lot details, or nil for a plain commodity.
func (c *Commodity) Annotation() *Annotation {
	if c == nil {
		return nil
	}
	return c.annotation
}

// Referent returns the plain commodity underlying c.
func (c *Commodity) Referent() *Commodity {
	if c != nil && c.referent != nil {
		return c.referent
	}
	return c
}

func (c *Commodity) isNull() bool {
	return c == nil || c == c.pool.null
}

func (c *Commodity) Flags() CommodityFlags {
	if c == nil {
		return 0
	}
	return c.base.flags
}

func (c *Commodity) SetFlags(f CommodityFlags) { c.base.flags = f }

func (c *Commodity) AddFlags(f CommodityFlags) { c.base.flags |= f }

func (c *Commodity) DropFlags(f CommodityFlags) { c.base.flags &^= f }

// Precision is the display precision learned from parsed amounts.
func (c *Commodity) Precision() int {
	if c == nil {
		return 0
	}
	return c.base.precision
}

func (c *Commodity) SetPrecision(n int) { c.base.precision = n }

func (c *Commodity) Smaller() *Amount { return c.base.smaller }

func (c *Commodity) SetSmaller(a *Amount) { c.base.smaller = a }

func (c *Commodity) Larger() *Amount { return c.base.larger }

func (c *Commodity) SetLarger(a *Amount) { c.base.larger = a }

func (c *Commodity) Note() string { return c.base.note }

func (c *Commodity) SetNote(note string) { c.base.note = note }

// SetValuation installs a valuation hook that takes precedence over the
// price history. Pass nil to remove it.
func (c *Commodity) SetValuation(v Valuation) {
	c.base.valuation = v
	c.base.prices.clear()
}

// Equal reports whether c and o share a base and are either both plain or
// both annotated with equal details.
func (c *Commodity) Equal(o *Commodity) bool {
	if c == nil || o == nil {
		return c == o
	}
	if c.base != o.base || c.IsAnnotated() != o.IsAnnotated() {
		return false
	}
	if c.IsAnnotated() {
		return c.annotation.Equal(o.annotation)
	}
	return true
}

// sameCommodity treats nil and the null commodity as the same "no
// commodity".
func sameCommodity(a, b *Commodity) bool {
	if a.isNull() || b.isNull() {
		return a.isNull() && b.isNull()
	}
	return a.Equal(b)
}

// Valid is false for an unnamed commodity other than the null commodity, for
// a precision wider than 16, and for an annotated commodity without details.
func (c *Commodity) Valid() bool {
	if c == nil {
		return false
	}
	if c.base.symbol == "" && c != c.pool.null {
		return false
	}
	if c.base.precision > maxCommodityPrecision {
		return false
	}
	if c.referent != nil && (c.annotation == nil || !c.referent.Valid()) {
		return false
	}
	return true
}

// DefaultComparer orders commodities by creation sequence.
func DefaultComparer(a, b *Commodity) int {
	switch {
	case a.seq < b.seq:
		return -1
	case a.seq > b.seq:
		return 1
	}
	return 0
}

// Print returns the symbol. With elideQuotes, a quoted symbol of a
// separated commodity is printed bare when it contains no space and is not
// purely numeric.
func (c *Commodity) Print(elideQuotes, printAnnotations bool) string {
	if c == nil {
		return ""
	}
	sym := c.Symbol()
	if elideQuotes && c.Flags().Has(StyleSeparated) && strings.HasPrefix(sym, `"`) && !strings.Contains(sym, " ") && len(sym) >= 2 {
		inner := sym[1 : len(sym)-1]
		if strings.TrimLeft(inner, "0123456789") != "" {
			sym = inner
		}
	}
	if printAnnotations {
		sym += c.WriteAnnotations(false)
	}
	return sym
}

// WriteAnnotations renders the lot details of an annotated commodity.
func (c *Commodity) WriteAnnotations(noComputed bool) string {
	if !c.IsAnnotated() {
		return ""
	}
	return c.annotation.Print(c.pool.cfg.KeepBase, noComputed)
}

func (c *Commodity) String() string {
	return c.Print(false, true)
}

func (c *Commodity) style() quantity.Style {
	if c == nil {
		return quantity.Style{}
	}
	cfg := c.pool.cfg
	flags := c.Flags()
	sym := c.Symbol()

	timeColon := (sym == "h" || sym == "m") && (cfg.TimeColonByDefault || flags.Has(StyleTimeColon))
	decimalComma := cfg.DecimalCommaByDefault || flags.Has(StyleDecimalComma)

	var s quantity.Style
	switch {
	case timeColon:
		s.DecimalMark = ":"
	case decimalComma:
		s.DecimalMark = ","
	}
	if flags.Has(StyleThousands) {
		switch {
		case timeColon:
			s.GroupSeparator = ":"
		case decimalComma:
			s.GroupSeparator = "."
		default:
			s.GroupSeparator = ","
		}
	}
	return s
}

// StripAnnotations returns the commodity with only the lot details selected
// by keep. Plain commodities are returned unchanged.
func (c *Commodity) StripAnnotations(keep KeepDetails) (*Commodity, error) {
	if !c.IsAnnotated() {
		return c, nil
	}
	d := c.annotation
	flags := c.Flags()

	keepPrice := (keep.KeepPrice || (d.IsPriceFixated && flags.Has(SawAnnPriceFloat) && flags.Has(SawAnnPriceFixated))) &&
		(!keep.OnlyActuals || !d.IsPriceCalculated)
	keepDate := keep.KeepDate && (!keep.OnlyActuals || !d.IsDateCalculated)
	keepTag := keep.KeepTag && (!keep.OnlyActuals || !d.IsTagCalculated)

	if !(keepPrice && d.Price != nil) && !(keepDate && d.HasDate()) && !(keepTag && d.Tag != "") {
		return c.referent, nil
	}

	details := &Annotation{}
	if keepPrice {
		details.Price = d.Price
	}
	if keepDate {
		details.Date = d.Date
	}
	if keepTag {
		details.Tag = d.Tag
	}
	stripped, err := c.pool.FindOrCreateAnnotated(c.referent, details)
	if err != nil {
		return nil, err
	}
	if stripped.IsAnnotated() {
		sd := stripped.annotation
		if keepPrice {
			sd.IsPriceCalculated = d.IsPriceCalculated
			sd.IsPriceFixated = d.IsPriceFixated
		}
		if keepDate {
			sd.IsDateCalculated = d.IsDateCalculated
		}
		if keepTag {
			sd.IsTagCalculated = d.IsTagCalculated
		}
	}
	return stripped, nil
}

// NailDown returns the annotated variant of c carrying expr as a calculated
// valuation expression.
func (c *Commodity) NailDown(expr string) (*Commodity, error) {
	details := &Annotation{ValueExpr: expr, IsValueExprCalculated: true}
	return c.pool.FindOrCreateSymbolAnnotated(c.Symbol(), details)
}

// AddPrice records price as the value of one unit of c on date. A reflexive
// price marks the price's commodity as primary, otherwise c itself is
// marked.
func (c *Commodity) AddPrice(date time.Time, price *Amount, reflexive bool) error {
	if price == nil {
		return &ArgumentError{Name: "price"}
	}
	log := c.pool.logger("commodity.prices.add")
	if reflexive {
		log.Debug("marking primary commodity", "commodity", price.commodity.Symbol())
		price.commodity.AddFlags(Primary)
	} else {
		log.Debug("marking primary commodity", "commodity", c.Symbol())
		c.AddFlags(Primary)
	}
	log.Debug("adding price", "commodity", c.Symbol(), "price", price, "date", date)

	if err := c.pool.history.AddPrice(c.Referent(), date, price); err != nil {
		return err
	}
	c.base.prices.clear()
	return nil
}

// RemovePrice deletes the price of c in target recorded on date.
func (c *Commodity) RemovePrice(date time.Time, target *Commodity) error {
	if err := c.pool.history.RemovePrice(c.Referent(), target.Referent(), date); err != nil {
		return err
	}
	c.base.prices.clear()
	return nil
}

func (c *Commodity) when(moment time.Time) time.Time {
	if !moment.IsZero() {
		return moment
	}
	return c.pool.cfg.now()
}

// FindPrice looks up the price of c in target (or in the pool's default
// commodity) at moment, ignoring prices older than oldest. A zero moment
// means now; a zero oldest means no lower bound.
func (c *Commodity) FindPrice(target *Commodity, moment, oldest time.Time) (PricePoint, bool) {
	if c.IsAnnotated() {
		return c.findAnnotatedPrice(target, moment, oldest)
	}
	return c.findPrice(target, moment, oldest)
}

func (c *Commodity) findAnnotatedPrice(target *Commodity, moment, oldest time.Time) (PricePoint, bool) {
	log := c.pool.logger("commodity.price.find")
	when := c.when(moment)

	if target.isNull() {
		target = nil
	}
	d := c.annotation
	if d.Price != nil {
		if d.IsPriceFixated {
			log.Debug("fixated price", "commodity", c.Symbol(), "price", d.Price)
			return PricePoint{When: when, Price: d.Price}, true
		}
		if target == nil {
			target = d.Price.commodity
		}
	}
	if d.ValueExpr != "" {
		if v := c.base.valuation; v != nil {
			return valuationPoint(v(c, when, target), when)
		}
	}
	return c.referent.findPrice(target, when, oldest)
}

func (c *Commodity) findPrice(commodity *Commodity, moment, oldest time.Time) (PricePoint, bool) {
	log := c.pool.logger("commodity.price.find")
	log.Debug("finding price", "commodity", c.Symbol())

	if commodity.isNull() {
		commodity = nil
	}
	var target *Commodity
	switch {
	case commodity != nil:
		target = commodity
	case !c.pool.defaultCommodity.isNull():
		target = c.pool.defaultCommodity
	}
	if target != nil && c.Equal(target) {
		return PricePoint{}, false
	}

	key := priceKey{start: moment.UTC(), end: oldest.UTC(), commodity: commodity}
	if point, found, ok := c.base.prices.get(key); ok {
		log.Debug("memoized price", "commodity", c.Symbol(), "found", found)
		return point, found
	}

	when := c.when(moment)
	if v := c.base.valuation; v != nil {
		return valuationPoint(v(c, when, commodity), when)
	}

	var (
		point PricePoint
		found bool
	)
	if target != nil {
		var err error
		point, found, err = c.pool.history.FindPriceIn(c.Referent(), target.Referent(), when, oldest)
		if err != nil {
			log.Error("price lookup failed", "err", err)
		}
	} else {
		point, found = c.pool.history.FindPrice(c.Referent(), when, oldest)
	}

	c.base.prices.put(key, point, found)
	log.Debug("remembered price", "commodity", c.Symbol(), "found", found)
	return point, found
}

func valuationPoint(price *Amount, when time.Time) (PricePoint, bool) {
	if price == nil || price.IsEmpty() {
		return PricePoint{}, false
	}
	return PricePoint{When: when, Price: price}, true
}

// CheckForUpdatedPrice asks the pool's quote source for a fresh price when
// quotes are enabled, c is a market commodity and the known price is missing
// or older than the quote leeway. A quote in the wrong commodity is ignored.
func (c *Commodity) CheckForUpdatedPrice(point PricePoint, found bool, moment time.Time, inTermsOf *Commodity) (PricePoint, bool) {
	cfg := c.pool.cfg
	if !cfg.GetQuotes || cfg.QuoteSource == nil || c.Flags().Has(NoMarket) {
		return point, found
	}

	if found {
		ref := moment
		if ref.IsZero() {
			ref = cfg.now()
		}
		if ref.Sub(point.When) < cfg.QuoteLeeway {
			return point, found
		}
	}

	c.pool.logger("commodity.download").Debug("requesting quote", "commodity", c.Symbol(), "in", inTermsOf.Symbol())
	quote, ok := cfg.QuoteSource(c.Referent(), inTermsOf)
	if !ok || quote.Price == nil {
		return point, found
	}
	if inTermsOf == nil || (quote.Price.HasCommodity() && quote.Price.commodity.Equal(inTermsOf)) {
		return quote, true
	}
	return point, found
}

// MapPrices calls fn for every recorded price of c between oldest and moment.
// Prices stored in the other direction are inverted and passed along only
// when bidirectionally is set.
func (c *Commodity) MapPrices(fn func(when time.Time, price *Amount), moment, oldest time.Time, bidirectionally bool) error {
	return c.pool.history.MapPrices(fn, c.Referent(), c.when(moment), oldest, bidirectionally)
}

// CompareByCommodity orders amounts by base symbol, then plain before
// annotated, then by lot price, date, tag and valuation expression. Missing
// details sort before present ones.
func CompareByCommodity(left, right *Amount) (int, error) {
	if left == nil {
		return 0, &ArgumentError{Name: "left"}
	}
	if right == nil {
		return 0, &ArgumentError{Name: "right"}
	}
	lc, rc := left.commodity, right.commodity

	if ls, rs := lc.BaseSymbol(), rc.BaseSymbol(); ls != rs {
		return strings.Compare(ls, rs), nil
	}

	la, ra := lc.IsAnnotated(), rc.IsAnnotated()
	switch {
	case !la && !ra:
		return 0, nil
	case !la:
		return -1, nil
	case !ra:
		return 1, nil
	}

	ld, rd := lc.annotation, rc.annotation

	switch {
	case ld.Price == nil && rd.Price != nil:
		return -1, nil
	case ld.Price != nil && rd.Price == nil:
		return 1, nil
	case ld.Price != nil && rd.Price != nil:
		lp, rp := ld.Price, rd.Price
		if !sameCommodity(lp.commodity, rp.commodity) {
			lp = NewAmount(lp.quantity, nil)
			rp = NewAmount(rp.quantity, nil)
		}
		cmp, err := lp.Compare(rp)
		if err != nil {
			return 0, err
		}
		if cmp != 0 {
			return cmp, nil
		}
	}

	switch {
	case !ld.HasDate() && rd.HasDate():
		return -1, nil
	case ld.HasDate() && !rd.HasDate():
		return 1, nil
	case ld.HasDate() && rd.HasDate():
		if cmp := ld.Date.Compare(rd.Date); cmp != 0 {
			return cmp, nil
		}
	}

	switch {
	case ld.Tag == "" && rd.Tag != "":
		return -1, nil
	case ld.Tag != "" && rd.Tag == "":
		return 1, nil
	case ld.Tag != "" && rd.Tag != "":
		if cmp := strings.Compare(ld.Tag, rd.Tag); cmp != 0 {
			return cmp, nil
		}
	}

	switch {
	case ld.ValueExpr == "" && rd.ValueExpr != "":
		return -1, nil
	case ld.ValueExpr != "" && rd.ValueExpr == "":
		return 1, nil
	}
	return strings.Compare(ld.ValueExpr, rd.ValueExpr), nil
}
