package ledger

import (
	"io"
	"sort"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/exp/slices"
)

// PriceGraphEdge holds the prices recorded between two commodities, keyed by
// time. Weight and PricePoint are set by the recency filter each time the
// edge is considered for a lookup.
type PriceGraphEdge struct {
	Prices     map[time.Time]*Amount
	Weight     time.Duration
	PricePoint PricePoint

	times []time.Time
}

func newPriceGraphEdge() *PriceGraphEdge {
	return &PriceGraphEdge{Prices: make(map[time.Time]*Amount)}
}

// Times returns the recorded price times in ascending order.
func (e *PriceGraphEdge) Times() []time.Time {
	return e.times
}

func (e *PriceGraphEdge) set(when time.Time, price *Amount) {
	when = when.UTC()
	if _, ok := e.Prices[when]; !ok {
		i := sort.Search(len(e.times), func(i int) bool { return !e.times[i].Before(when) })
		e.times = append(e.times, time.Time{})
		copy(e.times[i+1:], e.times[i:])
		e.times[i] = when
	}
	e.Prices[when] = price
}

func (e *PriceGraphEdge) remove(when time.Time) {
	when = when.UTC()
	if _, ok := e.Prices[when]; !ok {
		return
	}
	delete(e.Prices, when)
	i := sort.Search(len(e.times), func(i int) bool { return !e.times[i].Before(when) })
	e.times = append(e.times[:i], e.times[i+1:]...)
}

// History is the price graph: commodities are vertices and every pair with
// recorded prices shares one edge. Lookups only use edges with a price at or
// before the reference time.
type History struct {
	g   *graph
	log *log.Logger

	filterCalls atomic.Uint64
	filterHook  func()
}

// NewHistory creates an empty price graph.
func NewHistory(logger *log.Logger) *History {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &History{g: newGraph(), log: logger}
}

// SetFilterHook installs fn to be called on every recency filter
// evaluation.
func (h *History) SetFilterHook(fn func()) {
	h.filterHook = fn
}

// FilterCalls returns how many times the recency filter has run.
func (h *History) FilterCalls() uint64 {
	return h.filterCalls.Load()
}

// AddCommodity registers c as a vertex.
func (h *History) AddCommodity(c *Commodity) {
	h.g.addVertex(c)
}

// Commodities returns every vertex in creation order.
func (h *History) Commodities() []*Commodity {
	out := slices.Clone(h.g.vertices)
	slices.SortStableFunc(out, DefaultComparer)
	return out
}

// AddPrice records the price of source at when. The edge between source and
// the price's commodity is created on first use.
func (h *History) AddPrice(source *Commodity, when time.Time, price *Amount) error {
	target := price.commodity.Referent()
	if source == target {
		return &GraphError{Op: "add price", Source: source.Symbol(), Target: target.Symbol()}
	}
	e := h.g.findEdge(source, target)
	if e == nil {
		e = h.g.addEdge(source, target, newPriceGraphEdge())
	}
	e.data.set(when, price)
	return nil
}

// RemovePrice deletes the price between source and target at date. The edge
// goes away with its last price.
func (h *History) RemovePrice(source, target *Commodity, date time.Time) error {
	if source == target {
		return &GraphError{Op: "remove price", Source: source.Symbol(), Target: target.Symbol()}
	}
	e := h.g.findEdge(source, target)
	if e == nil {
		return nil
	}
	e.data.remove(date)
	if len(e.data.Prices) == 0 {
		h.g.removeEdge(e)
	}
	return nil
}

// recentEdgeWeight accepts edges that have a price at or before ref and, if
// oldest is set, whose latest such price is not older than oldest.
type recentEdgeWeight struct {
	ref    time.Time
	oldest time.Time
	h      *History
}

func (h *History) recent(ref, oldest time.Time) recentEdgeWeight {
	return recentEdgeWeight{ref: ref, oldest: oldest, h: h}
}

func (r recentEdgeWeight) accept(e *graphEdge) bool {
	r.h.filterCalls.Add(1)
	if r.h.filterHook != nil {
		r.h.filterHook()
	}

	edge := e.data
	if len(edge.times) == 0 {
		return false
	}
	if edge.times[0].After(r.ref) {
		return false
	}
	i := sort.Search(len(edge.times), func(i int) bool { return edge.times[i].After(r.ref) })
	low := edge.times[i-1]
	if !r.oldest.IsZero() && low.Before(r.oldest) {
		return false
	}
	edge.Weight = r.ref.Sub(low)
	edge.PricePoint = PricePoint{When: low, Price: edge.Prices[low]}
	return true
}

// invertedPrice expresses price, which is denominated in source, in the
// commodity at the other end of e.
func invertedPrice(price *Amount, e *graphEdge, source *Commodity) (*Amount, error) {
	q, err := price.quantity.Invert()
	if err != nil {
		return nil, amountError(ErrDivideByZero, "Divide by zero")
	}
	return NewAmount(q, e.other(source)), nil
}

// FindPrice returns the most recent price of source in any adjacent
// commodity at moment.
func (h *History) FindPrice(source *Commodity, moment, oldest time.Time) (PricePoint, bool) {
	filter := h.recent(moment, oldest)
	h.log.Debug("find price", "source", source.Symbol(), "primary", source.Flags().Has(Primary))

	var (
		best  PricePoint
		found bool
	)
	for _, e := range h.g.adjacent(source, filter.accept) {
		point := e.data.PricePoint
		if found && !point.When.After(best.When) {
			continue
		}
		price := point.Price
		if sameCommodity(price.commodity.Referent(), source) {
			inv, err := invertedPrice(price, e, source)
			if err != nil {
				continue
			}
			price = inv
		}
		best = PricePoint{When: point.When, Price: price}
		found = true
	}

	if !found || best.Price.IsEmpty() {
		h.log.Debug("no final price", "source", source.Symbol())
		return PricePoint{}, false
	}
	h.log.Debug("final price", "source", source.Symbol(), "price", best.Price)
	return best, true
}

// FindPriceIn returns the price of source in target at moment, composed
// along the freshest path of price edges. The point's time is the oldest
// price used on the path. Asking for the price of a commodity in itself is
// an error.
func (h *History) FindPriceIn(source, target *Commodity, moment, oldest time.Time) (PricePoint, bool, error) {
	if source == target {
		return PricePoint{}, false, &GraphError{Op: "find price", Source: source.Symbol(), Target: target.Symbol()}
	}
	filter := h.recent(moment, oldest)
	h.log.Debug("find price", "source", source.Symbol(), "target", target.Symbol())

	path := h.g.shortestPath(source, target, filter.accept, func(e *graphEdge) int64 {
		return int64(e.data.Weight)
	})

	var (
		leastRecent = moment
		price       *Amount
		lastTarget  = target
	)
	for i := len(path) - 1; i >= 0; i-- {
		e := path[i]
		point := e.data.PricePoint

		first := price == nil
		if first || point.When.Before(leastRecent) {
			leastRecent = point.When
		}

		leg := point.Price.Copy()
		if !sameCommodity(leg.commodity.Referent(), lastTarget) {
			inv, err := leg.Inverted()
			if err != nil {
				return PricePoint{}, false, err
			}
			leg = inv
		}
		if first {
			price = leg
		} else {
			var err error
			if price, err = price.Multiply(leg); err != nil {
				return PricePoint{}, false, err
			}
		}

		if lastTarget == e.v {
			lastTarget = e.u
		} else {
			lastTarget = e.v
		}
	}

	if price == nil || price.IsEmpty() {
		h.log.Debug("no final price", "source", source.Symbol(), "target", target.Symbol())
		return PricePoint{}, false, nil
	}
	price = NewAmount(price.quantity, target)
	h.log.Debug("final price", "source", source.Symbol(), "price", price)
	return PricePoint{When: leastRecent, Price: price}, true, nil
}

// MapPrices calls fn for every price of source recorded between oldest and
// moment on a usable edge. Prices stored against source are inverted and
// reported only when bidirectionally is set.
func (h *History) MapPrices(fn func(when time.Time, price *Amount), source *Commodity, moment, oldest time.Time, bidirectionally bool) error {
	if fn == nil {
		return &ArgumentError{Name: "fn"}
	}
	filter := h.recent(moment, oldest)
	h.log.Debug("map prices", "source", source.Symbol())

	for _, e := range h.g.adjacent(source, filter.accept) {
		for _, when := range e.data.times {
			if (!oldest.IsZero() && when.Before(oldest)) || when.After(moment) {
				continue
			}
			price := e.data.Prices[when]
			if sameCommodity(price.commodity.Referent(), source) {
				if !bidirectionally {
					continue
				}
				inv, err := invertedPrice(price, e, source)
				if err != nil {
					return err
				}
				price = inv
			}
			fn(when, price)
		}
	}
	return nil
}

// PrintMap renders the graph in GraphViz format. A non-zero moment limits
// the edges to those usable at that time.
func (h *History) PrintMap(moment time.Time) string {
	var keep func(*graphEdge) bool
	if !moment.IsZero() {
		keep = h.recent(moment, time.Time{}).accept
	}
	return h.g.writeGraphViz("G", keep)
}
