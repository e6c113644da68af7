package ledger

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// Config holds the settings a commodity pool runs with. Everything that is
// process-wide in ledger-style tools (decimal comma by default, quote
// downloading, the reporting epoch) lives here so independent pools can
// coexist.
type Config struct {
	DecimalCommaByDefault bool
	TimeColonByDefault    bool

	// KeepBase prints annotation prices without unreducing them.
	KeepBase bool

	// GetQuotes enables the QuoteSource for missing or stale prices.
	GetQuotes   bool
	QuoteLeeway time.Duration
	QuoteSource QuoteSource

	// Epoch, when set, replaces the current time as the default moment for
	// price lookups.
	Epoch time.Time
	Now   func() time.Time

	// ISOCurrencies are seeded into every pool built from this Config.
	ISOCurrencies []string

	Logger *log.Logger
}

// NewConfig creates a Config with defaults.
func NewConfig() *Config {
	return &Config{
		QuoteLeeway: 24 * time.Hour,
		Now:         time.Now,
		Logger:      log.New(io.Discard),
	}
}

// Option configures a Config.
type Option func(*Config)

func WithDecimalCommaByDefault() Option {
	return func(c *Config) { c.DecimalCommaByDefault = true }
}

func WithTimeColonByDefault() Option {
	return func(c *Config) { c.TimeColonByDefault = true }
}

func WithKeepBase() Option {
	return func(c *Config) { c.KeepBase = true }
}

// WithGetQuotes enables quote downloading through source.
func WithGetQuotes(source QuoteSource) Option {
	return func(c *Config) {
		c.GetQuotes = true
		c.QuoteSource = source
	}
}

// WithQuoteSource sets the source without turning quote downloading on.
func WithQuoteSource(source QuoteSource) Option {
	return func(c *Config) { c.QuoteSource = source }
}

// WithISOCurrencies seeds the named ISO 4217 currencies, or
// DefaultISOCurrencies when none are named.
func WithISOCurrencies(codes ...string) Option {
	return func(c *Config) {
		if len(codes) == 0 {
			codes = DefaultISOCurrencies
		}
		c.ISOCurrencies = codes
	}
}

func WithQuoteLeeway(d time.Duration) Option {
	return func(c *Config) { c.QuoteLeeway = d }
}

func WithEpoch(t time.Time) Option {
	return func(c *Config) { c.Epoch = t }
}

func WithClock(now func() time.Time) Option {
	return func(c *Config) { c.Now = now }
}

func WithLogger(l *log.Logger) Option {
	return func(c *Config) { c.Logger = l }
}

// ConfigFromOptions parses ledger-style option names into a Config.
// Supports:
//   - "decimal-comma", "time-colon", "base", "download" (boolean, value optional)
//   - "leeway" seconds
//   - "now" a date in YYYY-MM-DD or YYYY/MM/DD form
func ConfigFromOptions(options map[string][]string) (*Config, error) {
	cfg := NewConfig()

	for name, vals := range options {
		val := ""
		if len(vals) > 0 {
			val = strings.TrimSpace(vals[0])
		}

		switch name {
		case "decimal-comma", "time-colon", "base", "download":
			on, err := parseBoolOption(name, val)
			if err != nil {
				return nil, err
			}
			switch name {
			case "decimal-comma":
				cfg.DecimalCommaByDefault = on
			case "time-colon":
				cfg.TimeColonByDefault = on
			case "base":
				cfg.KeepBase = on
			case "download":
				cfg.GetQuotes = on
			}
		case "leeway":
			secs, err := strconv.ParseInt(val, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid leeway %q: %w", val, err)
			}
			cfg.QuoteLeeway = time.Duration(secs) * time.Second
		case "now":
			t, err := ParseDate(val)
			if err != nil {
				return nil, fmt.Errorf("invalid now %q: %w", val, err)
			}
			cfg.Epoch = t
		default:
			return nil, fmt.Errorf("unknown option %q", name)
		}
	}

	return cfg, nil
}

func parseBoolOption(name, val string) (bool, error) {
	if val == "" {
		return true, nil
	}
	on, err := strconv.ParseBool(val)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q, expected TRUE or FALSE", name, val)
	}
	return on, nil
}

func (c *Config) now() time.Time {
	if !c.Epoch.IsZero() {
		return c.Epoch
	}
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

// contextKey is a private type to avoid key collisions in context.
type contextKey struct{}

type poolContextKey struct{}

// WithContext returns a new context with the Config attached.
func (c *Config) WithContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, c)
}

// ConfigFromContext retrieves the Config from context.
// Returns a default Config if not found.
func ConfigFromContext(ctx context.Context) *Config {
	if cfg, ok := ctx.Value(contextKey{}).(*Config); ok {
		return cfg
	}
	return NewConfig()
}

// WithPool returns a new context carrying p.
func WithPool(ctx context.Context, p *Pool) context.Context {
	return context.WithValue(ctx, poolContextKey{}, p)
}

// PoolFromContext returns the pool stored by WithPool, or a fresh pool built
// from the context's Config.
func PoolFromContext(ctx context.Context) *Pool {
	if p, ok := ctx.Value(poolContextKey{}).(*Pool); ok {
		return p
	}
	return NewPoolWithConfig(ConfigFromContext(ctx))
}
