package app

import (
	"log/slog"

	"farecalc.onebusaway.org/internal/fares"
	"farecalc.onebusaway.org/internal/gtfs"
)

// Application holds the dependencies for our HTTP handlers, helpers,
// and middleware.
type Application struct {
	Config     Config
	GtfsConfig gtfs.Config
	Logger     *slog.Logger
	Directory  *gtfs.Directory
	Calculator *fares.Calculator
}

// Config holds all the configuration settings for our Application. It is
// filled from command-line flags when the Application starts.
type Config struct {
	Port      int
	Env       string
	ApiKeys   []string
	RateLimit int
	// FareTablePath names a YAML operator table. Empty selects the built-in table.
	FareTablePath     string
	SplitUnclassified bool
	LogLevel          string
}

// FareTable returns the operator table the calculator prices with.
func (app *Application) FareTable() *fares.OperatorTable {
	return app.Calculator.Table()
}
