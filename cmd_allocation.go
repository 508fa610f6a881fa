package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type allocationCmd struct {
	portfolio string
	all       bool
	png       string
}

func (*allocationCmd) Name() string     { return "allocation" }
func (*allocationCmd) Synopsis() string { return "print the value allocation of a portfolio" }
func (*allocationCmd) Usage() string {
	return `allocation [-p <portfolio id>] [-all] [-png <file>]

  Prints one row per holding with its current value and weight. With -png
  the pie chart is also written to the given file.
`
}

func (c *allocationCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.portfolio, "p", "", "portfolio id (defaults to the first portfolio)")
	f.BoolVar(&c.all, "all", false, "combine every portfolio")
	f.StringVar(&c.png, "png", "", "write the allocation chart to this file")
}

func (c *allocationCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	app, err := setup(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer app.Close()

	var (
		title string
		alloc AllocationResponse
	)
	if c.all {
		title = "Allocation: all portfolios"
		alloc, err = app.Holdings.AllocationAll(ctx)
	} else {
		var p Portfolio
		if p, err = app.resolvePortfolio(ctx, c.portfolio); err == nil {
			title = "Allocation: " + p.Name
			alloc, err = app.Holdings.Allocation(ctx, p.ID)
		}
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	if c.png != "" {
		png, err := RenderAllocationChart(alloc.Items, alloc.RefCurrency)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		if err := os.WriteFile(c.png, png, 0o644); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
	}
	return printMarkdown(AllocationMarkdown(title, alloc))
}
