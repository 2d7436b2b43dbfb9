package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/rs/zerolog"

	"seasonalDashboard/internal/config"
	"seasonalDashboard/internal/finance"
	"seasonalDashboard/internal/logger"
)

// dataFlags are shared by every command that reads the data file.
type dataFlags struct {
	dataPath   string
	dateColumn string
}

func (d *dataFlags) register(f *flag.FlagSet) {
	f.StringVar(&d.dataPath, "data", "", "CSV data file. Defaults to SEASONAL_DATA_PATH.")
	f.StringVar(&d.dateColumn, "date-column", "", "Name of the date column. Defaults to SEASONAL_DATE_COLUMN.")
}

// app is the wired pipeline shared by the commands.
type app struct {
	cfg       *config.Config
	log       zerolog.Logger
	source    *finance.Source
	dashboard *finance.Dashboard
	charts    *finance.Charts
}

func newApp(d dataFlags) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if d.dataPath != "" {
		cfg.DataPath = d.dataPath
	}
	if d.dateColumn != "" {
		cfg.DateColumn = d.dateColumn
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Pretty: cfg.LogPretty, Out: os.Stderr})
	source := finance.NewSource(cfg.DataPath, cfg.DateColumn, log)
	profile := finance.DefaultProfileOptions()
	profile.IncludeCurrentYear = cfg.IncludeCurrentYear
	dashboard := finance.NewDashboard(source, finance.DashboardOptions{
		Profile:        profile,
		AnnualLookback: cfg.AnnualLookback,
	}, log)

	return &app{
		cfg:       cfg,
		log:       log,
		source:    source,
		dashboard: dashboard,
		charts:    finance.NewCharts(cfg.Locale, cfg.ChartTheme, cfg.ChartCacheTTL),
	}, nil
}

// printMarkdown renders md for the terminal, or prints it as is when raw.
func printMarkdown(md string, raw bool) {
	if raw {
		fmt.Print(md)
		return
	}
	out, err := glamour.Render(md, "dark")
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
