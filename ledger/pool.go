package ledger

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/charmbracelet/log"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// QuoteSource downloads a current price for c, expressed in inTermsOf when
// that is not nil.
type QuoteSource func(c, inTermsOf *Commodity) (PricePoint, bool)

// Pool owns every commodity of one ledger, interns annotated commodities and
// holds the price history connecting them. A Pool is not safe for concurrent
// mutation; only the per-commodity price memo is synchronized.
type Pool struct {
	cfg *Config
	log *log.Logger

	null             *Commodity
	defaultCommodity *Commodity

	commodities map[string]*Commodity
	annotated   map[annotationKey]*Commodity
	history     *History

	seq uint64
}

// NewPool creates a pool configured by opts, with the null commodity and the
// builtin "s" and "%" commodities already registered.
func NewPool(opts ...Option) *Pool {
	cfg := NewConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return NewPoolWithConfig(cfg)
}

// NewPoolWithConfig creates a pool that uses cfg.
func NewPoolWithConfig(cfg *Config) *Pool {
	if cfg == nil {
		cfg = NewConfig()
	}
	if cfg.Logger == nil {
		cfg.Logger = NewConfig().Logger
	}
	p := &Pool{
		cfg:         cfg,
		log:         cfg.Logger,
		commodities: make(map[string]*Commodity),
		annotated:   make(map[annotationKey]*Commodity),
	}
	p.history = NewHistory(p.logger("history.find"))

	p.null = p.Create("")
	p.null.AddFlags(Builtin | NoMarket)
	p.Initialize()
	if len(cfg.ISOCurrencies) > 0 {
		if err := p.SeedISOCurrencies(cfg.ISOCurrencies...); err != nil {
			p.logger("pool.commodities").Warn("seeding currencies", "err", err)
		}
	}
	return p
}

// Initialize registers the builtin commodities for seconds and percentages.
func (p *Pool) Initialize() {
	for _, sym := range []string{"s", "%"} {
		c := p.FindOrCreate(sym)
		c.AddFlags(Builtin | NoMarket)
	}
}

func (p *Pool) logger(category string) *log.Logger {
	return p.log.WithPrefix(category)
}

// Config returns the pool's settings.
func (p *Pool) Config() *Config { return p.cfg }

// Null returns the commodity of bare numbers.
func (p *Pool) Null() *Commodity { return p.null }

// History returns the price graph.
func (p *Pool) History() *History { return p.history }

func (p *Pool) DefaultCommodity() *Commodity { return p.defaultCommodity }

func (p *Pool) SetDefaultCommodity(c *Commodity) { p.defaultCommodity = c }

// Commodities returns the registered plain commodities, aliases included
// once, in creation order.
func (p *Pool) Commodities() []*Commodity {
	seen := make(map[*Commodity]bool, len(p.commodities))
	var out []*Commodity
	for _, c := range maps.Values(p.commodities) {
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	slices.SortFunc(out, DefaultComparer)
	return out
}

// Symbols returns every registered symbol, aliases included, sorted.
func (p *Pool) Symbols() []string {
	syms := maps.Keys(p.commodities)
	slices.Sort(syms)
	return syms
}

func (p *Pool) nextSeq() uint64 {
	p.seq++
	return p.seq
}

// Create registers a new plain commodity under symbol. An existing entry for
// the same symbol is replaced.
func (p *Pool) Create(symbol string) *Commodity {
	base := &commodityBase{symbol: symbol}
	if p.cfg.DecimalCommaByDefault {
		base.flags |= StyleDecimalComma
	}
	c := &Commodity{pool: p, base: base, seq: p.nextSeq()}
	if SymbolNeedsQuotes(symbol) {
		c.qualifiedSymbol = `"` + symbol + `"`
	}

	p.logger("pool.commodities").Debug("creating commodity", "symbol", symbol)
	p.commodities[symbol] = c
	p.history.AddCommodity(c)
	return c
}

// CreateAnnotated interns a new annotated variant of the plain commodity c.
func (p *Pool) CreateAnnotated(c *Commodity, details *Annotation) (*Commodity, error) {
	if c == nil {
		return nil, &ArgumentError{Name: "commodity"}
	}
	if details == nil {
		return nil, &ArgumentError{Name: "details"}
	}
	if c.IsAnnotated() {
		return nil, amountError(ErrInvalidArgument, "Commodity is already annotated")
	}

	ann := &Commodity{
		pool:            p,
		base:            c.base,
		qualifiedSymbol: c.qualifiedSymbol,
		seq:             p.nextSeq(),
		annotation:      details.clone(),
		referent:        c,
	}

	c.AddFlags(SawAnnotated)
	if details.Price != nil {
		if details.IsPriceFixated {
			c.AddFlags(SawAnnPriceFixated)
		} else {
			c.AddFlags(SawAnnPriceFloat)
		}
	}

	p.logger("pool.commodities").Debug("creating annotated commodity", "symbol", c.BaseSymbol(), "details", details)
	p.annotated[details.key(c.BaseSymbol())] = ann
	return ann, nil
}

// CreateSymbolAnnotated creates the annotated commodity symbol+details,
// creating the plain commodity first when needed. With nil details it is
// Create.
func (p *Pool) CreateSymbolAnnotated(symbol string, details *Annotation) (*Commodity, error) {
	if details == nil {
		return p.Create(symbol), nil
	}
	return p.CreateAnnotated(p.FindOrCreate(symbol), details)
}

// Find returns the plain commodity registered under symbol, or nil.
func (p *Pool) Find(symbol string) *Commodity {
	return p.commodities[symbol]
}

// FindAnnotated returns the interned annotated commodity for symbol and
// details, or nil.
func (p *Pool) FindAnnotated(symbol string, details *Annotation) *Commodity {
	if details == nil {
		return nil
	}
	return p.annotated[details.key(symbol)]
}

func (p *Pool) FindOrCreate(symbol string) *Commodity {
	if c := p.Find(symbol); c != nil {
		return c
	}
	return p.Create(symbol)
}

// FindOrCreateAnnotated returns the annotated variant of c carrying details,
// interning it on first use. With nil details c is returned.
func (p *Pool) FindOrCreateAnnotated(c *Commodity, details *Annotation) (*Commodity, error) {
	if c == nil {
		return nil, &ArgumentError{Name: "commodity"}
	}
	if details == nil {
		return c, nil
	}
	if ann := p.FindAnnotated(c.BaseSymbol(), details); ann != nil {
		return ann, nil
	}
	return p.CreateAnnotated(c, details)
}

func (p *Pool) FindOrCreateSymbolAnnotated(symbol string, details *Annotation) (*Commodity, error) {
	if details == nil {
		return p.FindOrCreate(symbol), nil
	}
	if ann := p.FindAnnotated(symbol, details); ann != nil {
		return ann, nil
	}
	return p.CreateSymbolAnnotated(symbol, details)
}

// Alias registers name as another symbol for referent.
func (p *Pool) Alias(name string, referent *Commodity) (*Commodity, error) {
	if referent == nil {
		return nil, &ArgumentError{Name: "referent"}
	}
	c, ok := p.commodities[referent.BaseSymbol()]
	if !ok {
		return nil, amountError(ErrInvalidArgument, "Cannot alias unknown commodity '%s'", referent.BaseSymbol())
	}
	p.commodities[name] = c
	return c, nil
}

// DefaultISOCurrencies are seeded when SeedISOCurrencies gets no codes.
var DefaultISOCurrencies = []string{
	money.USD, money.EUR, money.GBP, money.JPY, money.CHF, money.CAD,
	money.AUD, money.NZD, money.SEK, money.NOK, money.DKK, money.CNY,
}

// SeedISOCurrencies creates the given ISO 4217 currencies, or
// DefaultISOCurrencies when codes is empty. Each commodity takes the
// currency's minor unit digits as precision, its symbol placement and decimal
// mark as display style and its grapheme as note. Existing commodities are
// left alone.
func (p *Pool) SeedISOCurrencies(codes ...string) error {
	if len(codes) == 0 {
		codes = DefaultISOCurrencies
	}
	for _, code := range codes {
		cur := money.GetCurrency(code)
		if cur == nil {
			return fmt.Errorf("unknown ISO currency %q", code)
		}
		if p.Find(cur.Code) != nil {
			continue
		}
		c := p.Create(cur.Code)
		c.SetPrecision(cur.Fraction)
		if !strings.HasPrefix(cur.Template, "$") {
			c.AddFlags(StyleSuffixed)
		}
		if strings.Contains(cur.Template, " ") {
			c.AddFlags(StyleSeparated)
		}
		if cur.Decimal == "," {
			c.AddFlags(StyleDecimalComma)
		}
		if cur.Thousand != "" {
			c.AddFlags(StyleThousands)
		}
		c.AddFlags(Known)
		c.SetNote(cur.Grapheme)
	}
	return nil
}
