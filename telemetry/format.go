package telemetry

import (
	"fmt"
	"io"
	"time"

	"github.com/robinvdvleuten/commodities/output"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// slowOperation marks timings that are highlighted in styled reports.
const slowOperation = 100 * time.Millisecond

// formatTimingTree writes the tree like:
//
//	check prices.db: 12ms
//	├─ load prices.db: 9ms
//	│  └─ include fx.db: 3ms
//	└─ verify: 2ms
func formatTimingTree(w io.Writer, root *timerNode, stylesAny any) {
	styles, _ := stylesAny.(*output.Styles)

	name := root.name
	if styles != nil {
		name = styles.Keyword(name)
	}
	_, _ = fmt.Fprintf(w, "%s: %s\n", name, formatDuration(root.duration()))

	for i, child := range root.children {
		formatNode(w, child, "", i == len(root.children)-1, styles)
	}
}

func formatNode(w io.Writer, node *timerNode, prefix string, last bool, styles *output.Styles) {
	branch, extension := "├─ ", "│  "
	if last {
		branch, extension = "└─ ", "   "
	}

	d := node.duration()
	tree, timing := prefix+branch, formatDuration(d)
	if styles != nil {
		tree = styles.Dim(tree)
		timing = styles.Timing(timing, d >= slowOperation)
	}
	_, _ = fmt.Fprintf(w, "%s%s: %s\n", tree, node.name, timing)

	for i, child := range node.children {
		formatNode(w, child, prefix+extension, i == len(node.children)-1, styles)
	}
}

// formatCounters writes one "name: value" line per counter, sorted by name.
func formatCounters(w io.Writer, counters map[string]uint64, stylesAny any) {
	if len(counters) == 0 {
		return
	}
	styles, _ := stylesAny.(*output.Styles)

	names := maps.Keys(counters)
	slices.Sort(names)

	title := "Counters"
	if styles != nil {
		title = styles.Keyword(title)
	}
	_, _ = fmt.Fprintf(w, "%s:\n", title)
	for _, name := range names {
		_, _ = fmt.Fprintf(w, "  %s: %d\n", name, counters[name])
	}
}

// formatDuration shows milliseconds below one second and seconds above.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%.0fms", float64(d)/float64(time.Millisecond))
	}
	return fmt.Sprintf("%.2fs", float64(d)/float64(time.Second))
}
