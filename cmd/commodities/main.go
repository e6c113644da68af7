package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/commodities/cli"
)

var (
	// Version contains the application version number. It's set via ldflags
	// when building.
	Version = ""

	// CommitSHA contains the SHA of the commit that this application was built
	// against. It's set via ldflags when building.
	CommitSHA = ""

	app struct {
		Version kong.VersionFlag `help:"Show version information"`
		cli.Commands
	}
)

func main() {
	ctx := kong.Parse(&app,
		kong.Vars{
			"version": buildVersion(),
		},
		kong.Name("commodities"),
		kong.Description("Parse amounts, convert them with a price history and inspect commodities."),
		kong.UsageOnError(),
		kong.Bind(&app.Globals),
	)

	result := cli.ResultOf(ctx.Run())
	ctx.FatalIfErrorf(result.Err)
	os.Exit(result.ExitCode)
}

func buildVersion() string {
	if Version == "" {
		Version = "dev"
	}
	if CommitSHA == "" {
		return Version
	}
	return fmt.Sprintf("%s (%s)", Version, CommitSHA)
}
