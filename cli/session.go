package cli

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/robinvdvleuten/commodities/ledger"
	"github.com/robinvdvleuten/commodities/loader"
	"github.com/robinvdvleuten/commodities/output"
	"github.com/robinvdvleuten/commodities/telemetry"
)

// session is the state every command runs with: a configured pool, the
// price database loaded into it and an optional telemetry collector.
type session struct {
	ctx  context.Context
	pool *ledger.Pool

	stderr    io.Writer
	collector telemetry.Collector
	timer     telemetry.Timer
	once      sync.Once
}

// poolOptions translates the global flags into pool configuration.
func (g *Globals) poolOptions(stderr io.Writer) []ledger.Option {
	var opts []ledger.Option
	if g.Debug {
		opts = append(opts, ledger.WithLogger(log.NewWithOptions(stderr, log.Options{
			Level:  log.DebugLevel,
			Prefix: "commodities",
		})))
	}
	if g.DecimalComma {
		opts = append(opts, ledger.WithDecimalCommaByDefault())
	}
	if g.ISOCurrencies {
		opts = append(opts, ledger.WithISOCurrencies())
	}
	return opts
}

// newSession builds the pool for a command named name and loads the
// global price database into it. Callers must close the session.
func (g *Globals) newSession(ctx *kong.Context, name string) (*session, error) {
	s := &session{
		ctx:    context.Background(),
		pool:   ledger.NewPool(g.poolOptions(ctx.Stderr)...),
		stderr: ctx.Stderr,
	}
	s.ctx = ledger.WithPool(s.pool.Config().WithContext(s.ctx), s.pool)

	if g.Telemetry {
		collector := telemetry.NewTimingCollector()
		s.collector = collector
		s.ctx = telemetry.WithCollector(s.ctx, collector)
		s.timer = collector.Start(name)
		s.pool.History().SetFilterHook(func() {
			collector.Count("history.filter", 1)
		})
	}

	if g.PriceDB != "" {
		ldr := loader.New(loader.WithFollowIncludes())
		if _, err := ldr.Load(s.ctx, s.pool, g.PriceDB); err != nil {
			s.close()
			return nil, fmt.Errorf("failed to load price database: %w", err)
		}
	}

	return s, nil
}

// close reports telemetry, once.
func (s *session) close() {
	s.once.Do(func() {
		if s.collector != nil {
			s.timer.End()
			_, _ = fmt.Fprintln(s.stderr)
			s.collector.Report(s.stderr, output.NewStyles(s.stderr))
		}
	})
}

// amount parses text in the session's pool.
func (s *session) amount(text string, flags ledger.ParseFlags) (*ledger.Amount, error) {
	return s.pool.ParseAmount(text, flags)
}

// commodity looks symbol up, failing when the pool has never seen it.
func (s *session) commodity(symbol string) (*ledger.Commodity, error) {
	c := s.pool.Find(symbol)
	if c == nil {
		return nil, fmt.Errorf("unknown commodity %q", symbol)
	}
	return c, nil
}
