package cli

import (
	"fmt"

	"github.com/alecthomas/kong"
)

type GraphCmd struct {
	At string `help:"Only include prices recorded on or before this date." placeholder:"YYYY-MM-DD"`
}

func (cmd *GraphCmd) Run(ctx *kong.Context, globals *Globals) error {
	moment, err := parseMoment("at", cmd.At)
	if err != nil {
		return err
	}

	s, err := globals.newSession(ctx, "graph")
	if err != nil {
		return err
	}
	defer s.close()

	_, _ = fmt.Fprint(ctx.Stdout, s.pool.History().PrintMap(moment))
	return nil
}
