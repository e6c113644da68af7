package telemetry

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"
)

// steppingClock advances by step on every call.
func steppingClock(step time.Duration) func() time.Time {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		now = now.Add(step)
		return now
	}
}

func TestNoOpCollector(t *testing.T) {
	collector := FromContext(context.Background())
	_, ok := collector.(noOpCollector)
	assert.True(t, ok)

	timer := collector.Start("load")
	timer.Child("parse").End()
	timer.End()
	collector.Count("prices", 3)

	var buf bytes.Buffer
	collector.Report(&buf, nil)
	assert.Equal(t, "", buf.String())
}

func TestWithCollector(t *testing.T) {
	collector := NewTimingCollector()
	ctx := WithCollector(context.Background(), collector)
	assert.True(t, FromContext(ctx) == Collector(collector))
}

func TestTimingTree(t *testing.T) {
	collector := NewTimingCollector()
	collector.now = steppingClock(5 * time.Millisecond)

	root := collector.Start("check prices.db")
	load := root.Child("load prices.db")
	load.Child("include fx.db").End()
	load.End()
	root.Child("verify").End()
	root.End()

	var buf bytes.Buffer
	collector.Report(&buf, nil)
	assert.Equal(t, ""+
		"check prices.db: 35ms\n"+
		"├─ load prices.db: 15ms\n"+
		"│  └─ include fx.db: 5ms\n"+
		"└─ verify: 5ms\n", buf.String())
}

func TestSequentialStartsNest(t *testing.T) {
	collector := NewTimingCollector()
	collector.now = steppingClock(time.Second)

	outer := collector.Start("outer")
	inner := collector.Start("inner")
	inner.End()
	outer.End()

	var buf bytes.Buffer
	collector.Report(&buf, nil)
	assert.Equal(t, "outer: 3.00s\n└─ inner: 1.00s\n", buf.String())
}

func TestCounters(t *testing.T) {
	collector := NewTimingCollector()
	collector.Count("history.filter", 4)
	collector.Count("loader.prices", 2)
	collector.Count("history.filter", 1)

	assert.Equal(t, uint64(5), collector.Counter("history.filter"))
	assert.Equal(t, uint64(0), collector.Counter("missing"))

	var buf bytes.Buffer
	collector.Report(&buf, nil)
	assert.Equal(t, "Counters:\n  history.filter: 5\n  loader.prices: 2\n", buf.String())
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0ms"},
		{1500 * time.Microsecond, "2ms"},
		{999 * time.Millisecond, "999ms"},
		{1250 * time.Millisecond, "1.25s"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatDuration(tt.d))
	}
}
