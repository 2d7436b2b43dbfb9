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

type profileCmd struct {
	data  dataFlags
	asset string
	month string
	years string
	png   string
	raw   bool
}

func (*profileCmd) Name() string     { return "profile" }
func (*profileCmd) Synopsis() string { return "print the seasonal profile of an asset" }
func (*profileCmd) Usage() string {
	return `dashboard profile -asset <name> [-month <0-12>] [-years <default|all|2021,2022>] [-png <file>]

  Prints the cumulative return profile of one month, or the mean of every
  month when -month is 0. -png also writes the seasonal chart.
`
}

func (c *profileCmd) SetFlags(f *flag.FlagSet) {
	c.data.register(f)
	f.StringVar(&c.asset, "asset", "", "Asset column.")
	f.StringVar(&c.month, "month", "0", "Month 1-12, or 0 for the full year.")
	f.StringVar(&c.years, "years", "default", "Years to include: default or all (every year), none or a comma separated list.")
	f.StringVar(&c.png, "png", "", "Write the seasonal chart to this file.")
	f.BoolVar(&c.raw, "raw", false, "Print markdown without terminal styling.")
}

func (c *profileCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.asset == "" {
		fmt.Fprintln(os.Stderr, "Error: -asset is required")
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
	snap, err := a.dashboard.Snapshot(ctx, finance.Query{Asset: c.asset, Years: years, Window: 21, Month: month})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	var b strings.Builder
	if snap.MonthProfile != nil {
		writeMonthReport(&b, snap, a.cfg.Locale)
	} else {
		writeYearReport(&b, snap, a.cfg.Locale)
	}
	printMarkdown(b.String(), c.raw)

	if c.png != "" {
		img, err := a.charts.Render(finance.ChartSeasonal, snap, "")
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
