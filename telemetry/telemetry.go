// Package telemetry collects nested operation timings and named counters for
// the commodities tools. A collector travels in the context, so callers that
// never install one pay nothing.
//
//	collector := telemetry.NewTimingCollector()
//	ctx := telemetry.WithCollector(context.Background(), collector)
//
//	timer := collector.Start("load prices.db")
//	defer timer.End()
//	collector.Count("history.filter", 1)
//
//	collector.Report(os.Stderr, nil)
package telemetry

import (
	"context"
	"io"
)

type contextKey struct{}

var collectorKey = contextKey{}

// Collector records timings and counters.
type Collector interface {
	// Start begins timing an operation. The first timer started becomes the
	// root; later ones nest under the timer started before them.
	Start(name string) Timer

	// Count adds delta to the counter called name.
	Count(name string, delta uint64)

	// Report writes the timing tree and counters to w. styles may be an
	// *output.Styles or nil.
	Report(w io.Writer, styles any)
}

// Timer tracks a single operation.
type Timer interface {
	End()

	// Child starts a timer nested under this one.
	Child(name string) Timer
}

// WithCollector returns a context carrying collector.
func WithCollector(ctx context.Context, collector Collector) context.Context {
	return context.WithValue(ctx, collectorKey, collector)
}

// FromContext returns the context's collector, or one that discards
// everything.
func FromContext(ctx context.Context) Collector {
	if collector, ok := ctx.Value(collectorKey).(Collector); ok {
		return collector
	}
	return noOpCollector{}
}
