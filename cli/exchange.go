package cli

import (
	"fmt"
	"time"

	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/commodities/ledger"
)

type ExchangeCmd struct {
	Amount  string `arg:"" help:"Amount being acquired or sold, such as '10 AAPL'."`
	Cost    string `arg:"" help:"What was paid, as a total unless --per-unit is given."`
	PerUnit bool   `help:"Treat COST as the price of a single unit."`
	At      string `help:"Date of the exchange. Also becomes the lot date." placeholder:"YYYY-MM-DD"`
	Tag     string `help:"Lot tag to attach to the exchanged amount."`
	NoPrice bool   `help:"Do not record the per-unit cost as a market price."`
}

func (cmd *ExchangeCmd) Run(ctx *kong.Context, globals *Globals) error {
	moment, err := parseMoment("at", cmd.At)
	if err != nil {
		return err
	}

	s, err := globals.newSession(ctx, "exchange")
	if err != nil {
		return err
	}
	defer s.close()

	amount, err := s.amount(cmd.Amount, ledger.ParseDefault)
	if err != nil {
		return fmt.Errorf("invalid amount: %w", err)
	}
	cost, err := s.amount(cmd.Cost, ledger.ParseDefault)
	if err != nil {
		return fmt.Errorf("invalid cost: %w", err)
	}

	breakdown, err := s.pool.ExchangeAmount(amount, cost, cmd.PerUnit, !cmd.NoPrice, moment, cmd.Tag)
	if err != nil {
		return err
	}

	rows := []struct {
		label  string
		amount *ledger.Amount
	}{
		{"Amount", breakdown.Amount},
		{"Final cost", breakdown.FinalCost},
		{"Basis cost", breakdown.BasisCost},
	}
	for _, row := range rows {
		_, _ = fmt.Fprintf(ctx.Stdout, "%s %s\n",
			headerStyle.Render(fmt.Sprintf("%-11s", row.label+":")),
			row.amount.Print(ledger.PrintColorize))
	}

	if !cmd.NoPrice && cost.HasCommodity() {
		if point, ok := amount.Commodity().Referent().FindPrice(cost.Commodity(), moment, time.Time{}); ok {
			printInfof(ctx.Stderr, "Recorded price %s", point.Price)
		}
	}
	return nil
}
