package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/mattn/go-runewidth"
	"golang.org/x/exp/slices"

	"github.com/robinvdvleuten/commodities/ledger"
)

type PricesCmd struct {
	Symbol string `arg:"" help:"Commodity whose prices to list."`
	At     string `help:"Only list prices recorded on or before this date." placeholder:"YYYY-MM-DD"`
	Since  string `help:"Only list prices recorded on or after this date." placeholder:"YYYY-MM-DD"`
	Both   bool   `help:"Include prices recorded in the other direction, inverted."`
}

type priceRow struct {
	when  time.Time
	price *ledger.Amount
}

func (cmd *PricesCmd) Run(ctx *kong.Context, globals *Globals) error {
	moment, err := parseMoment("at", cmd.At)
	if err != nil {
		return err
	}
	oldest, err := parseMoment("since", cmd.Since)
	if err != nil {
		return err
	}

	s, err := globals.newSession(ctx, "prices "+cmd.Symbol)
	if err != nil {
		return err
	}
	defer s.close()

	comm, err := s.commodity(cmd.Symbol)
	if err != nil {
		return err
	}

	var rows []priceRow
	err = comm.MapPrices(func(when time.Time, price *ledger.Amount) {
		rows = append(rows, priceRow{when: when, price: price})
	}, moment, oldest, cmd.Both)
	if err != nil {
		return err
	}

	if len(rows) == 0 {
		printInfof(ctx.Stderr, "No prices recorded for %s", pathStyle.Render(comm.Symbol()))
		return nil
	}

	slices.SortStableFunc(rows, func(a, b priceRow) int {
		if c := a.when.Compare(b.when); c != 0 {
			return c
		}
		return ledger.DefaultComparer(a.price.Commodity(), b.price.Commodity())
	})
	writePriceTable(ctx.Stdout, rows)
	return nil
}

func formatWhen(t time.Time) string {
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 {
		return t.Format("2006-01-02")
	}
	return t.Format("2006-01-02 15:04:05")
}

// writePriceTable prints rows with the dates left aligned and the prices
// right aligned on their last digit.
func writePriceTable(w io.Writer, rows []priceRow) {
	dateWidth := runewidth.StringWidth("DATE")
	priceWidth := runewidth.StringWidth("PRICE")
	for _, row := range rows {
		dateWidth = max(dateWidth, runewidth.StringWidth(formatWhen(row.when)))
		priceWidth = max(priceWidth, runewidth.StringWidth(row.price.String()))
	}

	header := runewidth.FillRight("DATE", dateWidth) + "  " + runewidth.FillLeft("PRICE", priceWidth)
	_, _ = fmt.Fprintln(w, headerStyle.Render(header))
	_, _ = fmt.Fprintln(w, strings.Repeat("─", dateWidth+2+priceWidth))
	for _, row := range rows {
		_, _ = fmt.Fprintf(w, "%s  %s\n",
			runewidth.FillRight(formatWhen(row.when), dateWidth),
			row.price.PrintWidth(priceWidth, ledger.PrintRightJustify|ledger.PrintColorize))
	}
}
