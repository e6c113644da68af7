package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/robinvdvleuten/commodities/ledger"
)

type DescribeCmd struct {
	Symbol string `arg:"" help:"Commodity to describe."`
	At     string `help:"Describe prices as of this date." placeholder:"YYYY-MM-DD"`
	Plain  bool   `help:"Print the report as markdown instead of rendering it."`
}

func (cmd *DescribeCmd) Run(ctx *kong.Context, globals *Globals) error {
	moment, err := parseMoment("at", cmd.At)
	if err != nil {
		return err
	}

	s, err := globals.newSession(ctx, "describe "+cmd.Symbol)
	if err != nil {
		return err
	}
	defer s.close()

	comm, err := s.commodity(cmd.Symbol)
	if err != nil {
		return err
	}

	report, err := describeCommodity(comm, moment)
	if err != nil {
		return err
	}
	if cmd.Plain {
		_, _ = fmt.Fprint(ctx.Stdout, report)
		return nil
	}

	style := styles.NoTTYStyle
	if isTerminalWriter(ctx.Stdout) {
		style = styles.AutoStyle
	}
	renderer, err := glamour.NewTermRenderer(glamour.WithStandardStyle(style), glamour.WithWordWrap(80))
	if err != nil {
		return fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	rendered, err := renderer.Render(report)
	if err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	_, _ = fmt.Fprint(ctx.Stdout, rendered)
	return nil
}

// describeCommodity writes a markdown report of comm: its display
// properties, scaling units and the latest price against every commodity it
// is connected to.
func describeCommodity(comm *ledger.Commodity, moment time.Time) (string, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", comm.Symbol())
	if note := comm.Note(); note != "" {
		fmt.Fprintf(&b, "%s\n\n", note)
	}

	b.WriteString("| Property | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Precision | %d |\n", comm.Precision())
	fmt.Fprintf(&b, "| Flags | %s |\n", comm.Flags())
	if smaller := comm.Smaller(); smaller != nil {
		fmt.Fprintf(&b, "| Smaller unit | %s |\n", smaller)
	}
	if larger := comm.Larger(); larger != nil {
		fmt.Fprintf(&b, "| Larger unit | %s |\n", larger)
	}
	if comm.IsAnnotated() {
		fmt.Fprintf(&b, "| Annotation | `%s` |\n", strings.TrimSpace(comm.WriteAnnotations(false)))
	}

	latest := make(map[string]ledger.PricePoint)
	err := comm.MapPrices(func(when time.Time, price *ledger.Amount) {
		symbol := price.Commodity().Symbol()
		if prev, ok := latest[symbol]; !ok || !when.Before(prev.When) {
			latest[symbol] = ledger.PricePoint{When: when, Price: price}
		}
	}, moment, time.Time{}, true)
	if err != nil {
		return "", err
	}

	b.WriteString("\n## Latest prices\n\n")
	if len(latest) == 0 {
		b.WriteString("No prices recorded.\n")
		return b.String(), nil
	}

	b.WriteString("| Commodity | Price | Date |\n|---|---:|---|\n")
	symbols := maps.Keys(latest)
	slices.Sort(symbols)
	for _, symbol := range symbols {
		point := latest[symbol]
		fmt.Fprintf(&b, "| %s | %s | %s |\n", symbol, point.Price, formatWhen(point.When))
	}
	return b.String(), nil
}
