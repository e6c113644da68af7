package cli

import (
	"fmt"

	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/commodities/ledger"
)

// confirm asks the user a yes/no question.
var confirm = promptYesNo

type ValueCmd struct {
	Amount string `arg:"" help:"Amount to value, such as '10 AAPL'."`
	In     string `help:"Commodity to express the value in. Defaults to whatever the price history leads to." placeholder:"SYMBOL"`
	At     string `help:"Value at this date instead of now." placeholder:"YYYY-MM-DD"`
}

func (cmd *ValueCmd) Run(ctx *kong.Context, globals *Globals) error {
	moment, err := parseMoment("at", cmd.At)
	if err != nil {
		return err
	}

	s, err := globals.newSession(ctx, "value")
	if err != nil {
		return err
	}
	defer s.close()

	amount, err := s.amount(cmd.Amount, ledger.ParseDefault)
	if err != nil {
		return err
	}

	var target *ledger.Commodity
	if cmd.In != "" {
		if target, err = cmd.target(s); err != nil {
			return err
		}
	}

	value, err := amount.Value(moment, target)
	if err != nil {
		return err
	}
	if value == nil {
		in := "any commodity"
		if target != nil {
			in = target.Symbol()
		}
		printError(ctx.Stderr, fmt.Sprintf("no price known for %s in %s", amount.Commodity().Symbol(), in))
		return NewCommandError(1)
	}

	_, _ = fmt.Fprintf(ctx.Stdout, "%s = %s\n", amount.Print(ledger.PrintColorize), value.Print(ledger.PrintColorize))
	return nil
}

// target resolves --in, offering to create the commodity when the pool has
// never seen it. Without a terminal an unknown target is an error.
func (cmd *ValueCmd) target(s *session) (*ledger.Commodity, error) {
	if c := s.pool.Find(cmd.In); c != nil {
		return c, nil
	}
	create, err := confirm(fmt.Sprintf("Commodity %s is unknown. Create it?", cmd.In))
	if err != nil {
		return nil, err
	}
	if !create {
		return nil, fmt.Errorf("unknown commodity %q", cmd.In)
	}
	return s.pool.Create(cmd.In), nil
}
