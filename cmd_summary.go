package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type summaryCmd struct {
	portfolio string
	all       bool
	asJSON    bool
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "print the totals and holdings of a portfolio" }
func (*summaryCmd) Usage() string {
	return `summary [-p <portfolio id>] [-all] [-json]

  Prints the invested total, current value, profit/loss and change percent
  followed by one row per holding. Defaults to the first portfolio.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.portfolio, "p", "", "portfolio id (defaults to the first portfolio)")
	f.BoolVar(&c.all, "all", false, "summarize every portfolio together")
	f.BoolVar(&c.asJSON, "json", false, "print JSON instead of a table")
}

func (c *summaryCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	app, err := setup(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer app.Close()

	var (
		title string
		sum   SummaryResponse
	)
	if c.all {
		title = "All portfolios"
		sum, err = app.Holdings.SummaryAll(ctx)
	} else {
		var p Portfolio
		if p, err = app.resolvePortfolio(ctx, c.portfolio); err == nil {
			title = p.Name
			sum, err = app.Holdings.Summary(ctx, p.ID)
		}
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	if c.asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(sum); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}
	return printMarkdown(SummaryMarkdown(title, sum))
}

func printMarkdown(md string) subcommands.ExitStatus {
	out, err := renderMarkdown(md)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Print(out)
	return subcommands.ExitSuccess
}
