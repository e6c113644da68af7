package cli

import (
	"fmt"
	"time"

	"github.com/alecthomas/kong"
	"github.com/alecthomas/repr"

	"github.com/robinvdvleuten/commodities/ledger"
)

type ParseCmd struct {
	Amounts []string `arg:"" help:"Amounts to parse, such as '$1,000.00' or '10 AAPL {$150} [2024-01-02]'."`
	Exact   bool     `help:"Do not let the amounts change their commodity's display style."`
	Dump    bool     `help:"Print the internal representation of each amount."`
}

// amountDump is what --dump shows of an amount.
type amountDump struct {
	Input            string
	Quantity         string
	Precision        int
	DisplayPrecision int
	KeepPrecision    bool
	Commodity        string
	Flags            string
	Annotation       *annotationDump
}

type annotationDump struct {
	Price      string
	Date       time.Time
	Tag        string
	ValueExpr  string
	Fixated    bool
	Calculated bool
}

func (cmd *ParseCmd) Run(ctx *kong.Context, globals *Globals) error {
	s, err := globals.newSession(ctx, "parse")
	if err != nil {
		return err
	}
	defer s.close()

	flags := ledger.ParseDefault
	if cmd.Exact {
		flags = ledger.ParseNoMigrate
	}

	failed := 0
	for _, text := range cmd.Amounts {
		amount, err := s.amount(text, flags)
		if err != nil {
			printError(ctx.Stderr, fmt.Sprintf("%s: %v", text, err))
			failed++
			continue
		}

		prec, _ := amount.Precision()
		dp, _ := amount.DisplayPrecision()
		comm := amount.Commodity()

		_, _ = fmt.Fprintln(ctx.Stdout, amount.Print(ledger.PrintColorize))
		_, _ = fmt.Fprintf(ctx.Stdout, "  precision %d, display precision %d, commodity %s [%s]\n",
			prec, dp, pathStyle.Render(comm.Print(false, false)), comm.Flags())

		if cmd.Dump {
			_, _ = fmt.Fprintln(ctx.Stdout, repr.String(dumpAmount(text, amount), repr.Indent("  "), repr.OmitEmpty(true)))
		}
	}

	if failed > 0 {
		return NewCommandError(1)
	}
	return nil
}

func dumpAmount(text string, amount *ledger.Amount) amountDump {
	prec, _ := amount.Precision()
	dp, _ := amount.DisplayPrecision()
	comm := amount.Commodity()

	d := amountDump{
		Input:            text,
		Quantity:         amount.Number().FullString(),
		Precision:        prec,
		DisplayPrecision: dp,
		KeepPrecision:    amount.KeepPrecision(),
		Commodity:        comm.Symbol(),
		Flags:            comm.Flags().String(),
	}
	if ann := comm.Annotation(); ann != nil {
		d.Annotation = &annotationDump{
			Date:       ann.Date,
			Tag:        ann.Tag,
			ValueExpr:  ann.ValueExpr,
			Fixated:    ann.IsPriceFixated,
			Calculated: ann.IsPriceCalculated,
		}
		if ann.Price != nil {
			d.Annotation.Price = ann.Price.FullString()
		}
	}
	return d
}
