package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"farecalc.onebusaway.org/internal/app"
	"farecalc.onebusaway.org/internal/fares"
	"farecalc.onebusaway.org/internal/gtfs"
	"farecalc.onebusaway.org/internal/logging"
)

const defaultGtfsURL = "https://www.bart.gov/dev/schedules/google_transit.zip"

// parseConfig reads the command line into the application and GTFS settings.
func parseConfig(args []string) (app.Config, gtfs.Config, error) {
	var (
		cfg         app.Config
		gtfsCfg     gtfs.Config
		apiKeysFlag string
	)

	fs := flag.NewFlagSet("api", flag.ContinueOnError)
	fs.IntVar(&cfg.Port, "port", 4000, "API server port")
	fs.StringVar(&cfg.Env, "env", "development", "Environment (development|staging|production)")
	fs.StringVar(&apiKeysFlag, "api-keys", "test", "Comma Separated API Keys (test, etc)")
	fs.IntVar(&cfg.RateLimit, "rate-limit", 100, "Requests per second allowed for each API key (negative disables limiting)")
	fs.StringVar(&cfg.FareTablePath, "fare-table", "", "YAML operator table; the built-in Bay Area table is used when empty")
	fs.BoolVar(&cfg.SplitUnclassified, "split-unclassified", false, "Price adjacent rides on different unknown operators separately")
	fs.StringVar(&cfg.LogLevel, "log-level", "info", "Log level (debug|info|warn|error)")
	fs.StringVar(&gtfsCfg.GtfsURL, "gtfs-url", defaultGtfsURL, "Path or URL of a static GTFS zip file")
	fs.DurationVar(&gtfsCfg.FetchTimeout, "gtfs-timeout", time.Minute, "Timeout for downloading the GTFS feed")

	if err := fs.Parse(args); err != nil {
		return cfg, gtfsCfg, err
	}

	for _, key := range strings.Split(apiKeysFlag, ",") {
		if key = strings.TrimSpace(key); key != "" {
			cfg.ApiKeys = append(cfg.ApiKeys, key)
		}
	}

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return cfg, gtfsCfg, fmt.Errorf("invalid port %d", cfg.Port)
	}
	if gtfsCfg.GtfsURL == "" {
		return cfg, gtfsCfg, fmt.Errorf("-gtfs-url must not be empty")
	}

	return cfg, gtfsCfg, nil
}

// loadFareTable returns the operator table named by path, or the built-in
// table when path is empty.
func loadFareTable(path string, logger *slog.Logger) (table *fares.OperatorTable, err error) {
	if path == "" {
		return fares.DefaultOperatorTable(), nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer logging.HandleDeferredError(&err, file.Close, logger, "close_fare_table")

	table, err = fares.LoadOperatorTable(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	logging.LogOperation(logger, "fare_table_loaded",
		slog.String("path", path),
		slog.Int("operators", len(table.Operators)),
		slog.Int("zones", len(table.Zones)))

	return table, nil
}

// buildApplication loads the fare table and GTFS directory and wires the
// calculator that prices requests against them.
func buildApplication(ctx context.Context, cfg app.Config, gtfsCfg gtfs.Config, logger *slog.Logger) (*app.Application, error) {
	table, err := loadFareTable(cfg.FareTablePath, logger)
	if err != nil {
		return nil, err
	}

	directory, err := gtfs.LoadDirectory(ctx, gtfsCfg, logger)
	if err != nil {
		return nil, err
	}

	calculator := fares.NewCalculator(table, fares.Options{
		SplitUnclassifiedByOperator: cfg.SplitUnclassified,
	})

	return &app.Application{
		Config:     cfg,
		GtfsConfig: gtfsCfg,
		Logger:     logger,
		Directory:  directory,
		Calculator: calculator,
	}, nil
}
