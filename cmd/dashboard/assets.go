package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type assetsCmd struct {
	data dataFlags
}

func (*assetsCmd) Name() string     { return "assets" }
func (*assetsCmd) Synopsis() string { return "list the asset columns of the data file" }
func (*assetsCmd) Usage() string {
	return `dashboard assets [-data <file>]

  Prints one asset name per line.
`
}

func (c *assetsCmd) SetFlags(f *flag.FlagSet) { c.data.register(f) }

func (c *assetsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := newApp(c.data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	assets, err := a.dashboard.Assets(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %q: %v\n", a.cfg.DataPath, err)
		return subcommands.ExitFailure
	}
	for _, name := range assets {
		fmt.Println(name)
	}
	return subcommands.ExitSuccess
}
