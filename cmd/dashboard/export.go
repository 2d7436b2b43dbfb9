package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"seasonalDashboard/internal/finance"
)

type exportCmd struct {
	data   dataFlags
	asset  string
	month  string
	years  string
	window int
	ma     int
	out    string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "write the series of an asset to a workbook" }
func (*exportCmd) Usage() string {
	return `dashboard export -asset <name> -out <file.xlsx> [-month <0-12>] [-years <default|all|2021,2022>] [-window <21|42|63|252>] [-ma <n>]

  Writes one sheet per chart: prices, rolling volatility, annual volatility
  and the seasonal profile.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	c.data.register(f)
	f.StringVar(&c.asset, "asset", "", "Asset column.")
	f.StringVar(&c.out, "out", "", "Workbook file to write.")
	f.StringVar(&c.month, "month", "0", "Month 1-12, or 0 for the full year.")
	f.StringVar(&c.years, "years", "default", "Years to include: default or all (every year), none or a comma separated list.")
	f.IntVar(&c.window, "window", 21, "Rolling volatility window in trading days.")
	f.IntVar(&c.ma, "ma", 0, "Moving average period, 0 disables.")
}

func (c *exportCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.asset == "" || c.out == "" {
		fmt.Fprintln(os.Stderr, "Error: -asset and -out are required")
		return subcommands.ExitUsageError
	}
	month, err := finance.ParseMonthChoice(c.month)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	years, err := finance.ParseYears(c.years)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	a, err := newApp(c.data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	snap, err := a.dashboard.Snapshot(ctx, finance.Query{
		Asset:         c.asset,
		Years:         years,
		Window:        c.window,
		Month:         month,
		MovingAverage: c.ma,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	f, err := os.Create(c.out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating %q: %v\n", c.out, err)
		return subcommands.ExitFailure
	}
	if err := finance.WriteWorkbook(f, snap, a.cfg.Locale); err != nil {
		f.Close()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := f.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %q: %v\n", c.out, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Wrote %s\n", c.out)
	return subcommands.ExitSuccess
}
