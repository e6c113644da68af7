// Package loader reads price database files into a commodity pool.
//
// A price database is a line oriented text file:
//
//	; comment
//	P 2024/01/02 EUR 1.10 USD
//	P 2024/01/02 09:30:00 AAPL $185.20
//	C 1.00h = 60m
//	N AAPL
//	D $1,000.00
//	A EURO EUR
//	include fx.db
//
// Price lines record market prices, C lines link the units of a scaling
// chain, N lines exclude a commodity from market pricing, D sets the
// default commodity and its display style, and A registers an alias.
// Lines starting with ';', '#', '%', '|' or '*' are comments.
//
// Include lines are resolved relative to the including file and each file is
// loaded at most once when the loader follows includes:
//
//	ldr := loader.New(loader.WithFollowIncludes())
//	result, err := ldr.Load(ctx, pool, "prices.db")
package loader

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/robinvdvleuten/commodities/ledger"
	"github.com/robinvdvleuten/commodities/telemetry"
)

// Loader reads price databases. Configure it with options passed to New.
type Loader struct {
	// FollowIncludes loads included files recursively. When false include
	// lines are only recorded in the Result.
	FollowIncludes bool
}

// Option configures how files are loaded.
type Option func(*Loader)

// WithFollowIncludes loads included files, resolving relative paths from the
// including file's directory.
func WithFollowIncludes() Option {
	return func(l *Loader) {
		l.FollowIncludes = true
	}
}

// New creates a Loader with the given options.
func New(opts ...Option) *Loader {
	l := &Loader{}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Result summarizes a load.
type Result struct {
	// Root is the absolute path of the loaded file.
	Root string
	// Includes lists the absolute paths of included files, in the order
	// they were first referenced.
	Includes []string

	Prices      int
	Conversions int
	Directives  int
}

// Load reads filename into pool. Malformed lines do not stop the load; their
// errors are returned together as LoadErrors after every line was read.
func (l *Loader) Load(ctx context.Context, pool *ledger.Pool, filename string) (*Result, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}
	return l.LoadBytes(ctx, pool, filename, data)
}

// LoadBytes reads data, which was read from filename, into pool.
func (l *Loader) LoadBytes(ctx context.Context, pool *ledger.Pool, filename string, data []byte) (*Result, error) {
	root, err := filepath.Abs(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve absolute path for %s: %w", filename, err)
	}

	collector := telemetry.FromContext(ctx)
	timer := collector.Start("load " + filepath.Base(filename))
	defer timer.End()

	state := &loaderState{
		loader:  l,
		pool:    pool,
		visited: map[string]bool{root: true},
		result:  &Result{Root: root},
		timer:   timer,
	}
	if err := state.loadData(ctx, filename, root, data); err != nil {
		return nil, err
	}

	collector.Count("loader.prices", uint64(state.result.Prices))
	collector.Count("loader.conversions", uint64(state.result.Conversions))

	if len(state.errs) > 0 {
		return state.result, state.errs
	}
	return state.result, nil
}

// loaderState tracks one load across included files.
type loaderState struct {
	loader  *Loader
	pool    *ledger.Pool
	visited map[string]bool
	result  *Result
	errs    LoadErrors
	timer   telemetry.Timer
}

func (s *loaderState) fail(filename string, line, column int, err error) {
	s.errs = append(s.errs, &ParseError{
		Pos: Position{Filename: filename, Line: line, Column: column},
		Err: err,
	})
}

// loadData reads every line of data. The returned error is only set for
// cancellation; line errors are collected.
func (s *loaderState) loadData(ctx context.Context, filename, abs string, data []byte) error {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for lineNo := 1; scanner.Scan(); lineNo++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line := strings.TrimRight(scanner.Text(), " \t\r")
		if err := s.directive(ctx, filename, abs, lineNo, line); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read %s: %w", filename, err)
	}
	return nil
}

func (s *loaderState) directive(ctx context.Context, filename, abs string, lineNo int, line string) error {
	if line == "" || strings.ContainsRune(";#%|*", rune(line[0])) {
		return nil
	}

	keyword, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)
	column := len(line) - len(strings.TrimLeft(line[len(keyword):], " \t")) + 1

	pool := s.pool
	switch keyword {
	case "P":
		c, _, err := pool.ParsePriceDirective(rest, false, false)
		switch {
		case err != nil:
			s.fail(filename, lineNo, column, err)
			return nil
		case c == nil:
			s.fail(filename, lineNo, column, fmt.Errorf("price directive needs a date, a symbol and a price"))
			return nil
		}
		s.result.Prices++

	case "C":
		larger, smaller, ok := strings.Cut(rest, "=")
		if !ok {
			s.fail(filename, lineNo, column, fmt.Errorf("conversion directive needs the form AMOUNT = AMOUNT"))
			return nil
		}
		if err := pool.ParseConversion(strings.TrimSpace(larger), strings.TrimSpace(smaller)); err != nil {
			s.fail(filename, lineNo, column, err)
			return nil
		}
		s.result.Conversions++

	case "N":
		symbol, _, err := ledger.ParseSymbol(rest)
		if err == nil && symbol == "" {
			err = fmt.Errorf("no-market directive needs a commodity symbol")
		}
		if err != nil {
			s.fail(filename, lineNo, column, err)
			return nil
		}
		pool.FindOrCreate(symbol).AddFlags(ledger.NoMarket)

	case "D":
		amount, err := pool.ParseAmount(rest, ledger.ParseDefault)
		if err != nil {
			s.fail(filename, lineNo, column, err)
			return nil
		}
		pool.SetDefaultCommodity(amount.Commodity())

	case "A":
		name, symbol, _ := strings.Cut(rest, " ")
		symbol = strings.TrimSpace(symbol)
		if name == "" || symbol == "" {
			s.fail(filename, lineNo, column, fmt.Errorf("alias directive needs an alias and a commodity symbol"))
			return nil
		}
		if _, err := pool.Alias(name, pool.FindOrCreate(symbol)); err != nil {
			s.fail(filename, lineNo, column, err)
			return nil
		}

	case "include":
		return s.include(ctx, filename, abs, lineNo, column, rest)

	default:
		s.fail(filename, lineNo, 1, fmt.Errorf("unknown directive %q", keyword))
		return nil
	}

	s.result.Directives++
	return nil
}

func (s *loaderState) include(ctx context.Context, filename, abs string, lineNo, column int, path string) error {
	path = strings.Trim(path, `"`)
	if path == "" {
		s.fail(filename, lineNo, column, fmt.Errorf("include directive needs a file name"))
		return nil
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(filepath.Dir(abs), path)
	}
	path = filepath.Clean(path)

	if s.visited[path] {
		return nil
	}
	s.visited[path] = true
	s.result.Includes = append(s.result.Includes, path)
	s.result.Directives++

	if !s.loader.FollowIncludes {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		s.fail(filename, lineNo, column, fmt.Errorf("failed to read included file: %w", err))
		return nil
	}

	parent := s.timer
	s.timer = parent.Child("include " + filepath.Base(path))
	defer func() {
		s.timer.End()
		s.timer = parent
	}()
	return s.loadData(ctx, path, path, data)
}
