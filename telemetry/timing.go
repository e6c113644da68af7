package telemetry

import (
	"io"
	"sync"
	"time"
)

// TimingCollector keeps a tree of timed operations and a set of counters.
// It is safe for concurrent use.
type TimingCollector struct {
	mu       sync.Mutex
	root     *timerNode
	current  *timerNode
	counters map[string]uint64
	now      func() time.Time
}

type timerNode struct {
	name     string
	start    time.Time
	end      time.Time
	children []*timerNode
	parent   *timerNode
}

func (n *timerNode) duration() time.Duration {
	if n.end.IsZero() {
		return 0
	}
	return n.end.Sub(n.start)
}

// NewTimingCollector creates an empty collector.
func NewTimingCollector() *TimingCollector {
	return &TimingCollector{counters: make(map[string]uint64), now: time.Now}
}

func (c *TimingCollector) Start(name string) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()

	node := &timerNode{name: name, start: c.now()}
	if c.root == nil {
		c.root = node
	} else {
		node.parent = c.current
		c.current.children = append(c.current.children, node)
	}
	c.current = node
	return &timingTimer{collector: c, node: node}
}

func (c *TimingCollector) Count(name string, delta uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.counters[name] += delta
}

// Counter returns the current value of the counter called name.
func (c *TimingCollector) Counter(name string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.counters[name]
}

func (c *TimingCollector) Report(w io.Writer, styles any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.root != nil {
		formatTimingTree(w, c.root, styles)
	}
	formatCounters(w, c.counters, styles)
}

type timingTimer struct {
	collector *TimingCollector
	node      *timerNode
}

func (t *timingTimer) End() {
	t.collector.mu.Lock()
	defer t.collector.mu.Unlock()

	t.node.end = t.collector.now()
	if t.node.parent != nil && t.collector.current == t.node {
		t.collector.current = t.node.parent
	}
}

func (t *timingTimer) Child(name string) Timer {
	t.collector.mu.Lock()
	defer t.collector.mu.Unlock()

	node := &timerNode{name: name, start: t.collector.now(), parent: t.node}
	t.node.children = append(t.node.children, node)
	return &timingTimer{collector: t.collector, node: node}
}
