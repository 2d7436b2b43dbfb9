package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"

	"seasonalDashboard/internal/finance"
)

type volatilityCmd struct {
	data   dataFlags
	asset  string
	window int
	years  string
	png    string
	raw    bool
}

func (*volatilityCmd) Name() string     { return "volatility" }
func (*volatilityCmd) Synopsis() string { return "print rolling and annual volatility of an asset" }
func (*volatilityCmd) Usage() string {
	return `dashboard volatility -asset <name> [-window <21|42|63|252>] [-years <default|all|2021,2022>] [-png <file>]

  Prints the latest rolling annualised volatility and one value per year.
  -png also writes the rolling volatility chart.
`
}

func (c *volatilityCmd) SetFlags(f *flag.FlagSet) {
	c.data.register(f)
	f.StringVar(&c.asset, "asset", "", "Asset column.")
	f.IntVar(&c.window, "window", 21, "Rolling window in trading days: 21, 42, 63 or 252.")
	f.StringVar(&c.years, "years", "all", "Years to include: default or all (every year), none or a comma separated list.")
	f.StringVar(&c.png, "png", "", "Write the rolling volatility chart to this file.")
	f.BoolVar(&c.raw, "raw", false, "Print markdown without terminal styling.")
}

func (c *volatilityCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.asset == "" {
		fmt.Fprintln(os.Stderr, "Error: -asset is required")
		return subcommands.ExitUsageError
	}
	if !finance.ValidWindow(c.window) {
		fmt.Fprintf(os.Stderr, "Error: window must be one of %v\n", finance.VolatilityWindows)
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
	snap, err := a.dashboard.Snapshot(ctx, finance.Query{Asset: c.asset, Years: years, Window: c.window, Month: finance.FullYear})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	var b strings.Builder
	writeVolatilityReport(&b, snap)
	printMarkdown(b.String(), c.raw)

	if c.png != "" {
		img, err := a.charts.Render(finance.ChartVolatility, snap, "")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error rendering chart: %v\n", err)
			return subcommands.ExitFailure
		}
		if err := os.WriteFile(c.png, img, 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing %q: %v\n", c.png, err)
			return subcommands.ExitFailure
		}
	}
	return subcommands.ExitSuccess
}
