package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type addCmd struct {
	portfolio string
	name      string
	amount    string
	price     string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "add a holding to a portfolio" }
func (*addCmd) Usage() string {
	return `add [-p <portfolio id>] -name <asset> -amount <units> -price <purchase price>

  Adds a holding priced at its purchase price. Amount and price must be
  positive numbers.
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.portfolio, "p", "", "portfolio id (defaults to the first portfolio)")
	f.StringVar(&c.name, "name", "", "asset name, e.g. BTC")
	f.StringVar(&c.amount, "amount", "", "number of units held")
	f.StringVar(&c.price, "price", "", "average purchase price per unit")
}

func (c *addCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	app, err := setup(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer app.Close()

	p, err := app.resolvePortfolio(ctx, c.portfolio)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	h, err := app.Holdings.Add(ctx, p.ID, RawHoldingInput{
		AssetName: c.name,
		Amount:    c.amount,
		Price:     c.price,
	})
	var inv *InvalidInputError
	if errors.As(err, &inv) {
		fmt.Fprintf(os.Stderr, "%v\n\n%s", err, c.Usage())
		return subcommands.ExitUsageError
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("added %s (%s): %s @ %s = %s\n",
		h.AssetName, h.Symbol, h.Amount, formatMoney(h.AveragePrice, app.Holdings.RefCurrency()),
		formatMoney(h.Invested(), app.Holdings.RefCurrency()))
	return subcommands.ExitSuccess
}
