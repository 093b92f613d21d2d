package gtfs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/jamespfennell/gtfs"

	"farecalc.onebusaway.org/internal/fares"
	"farecalc.onebusaway.org/internal/logging"
)

var (
	ErrRouteNotFound = errors.New("route not found")
	ErrStopNotFound  = errors.New("stop not found")
)

// Directory indexes the routes and stops of a static GTFS feed so that
// itinerary legs given by id can be turned into priced ride legs.
// It is read-only after construction and safe for concurrent use.
type Directory struct {
	agencies []gtfs.Agency
	routes   map[string]fares.Route
	stops    map[string]fares.Stop
	loadedAt time.Time
}

// LoadDirectory reads the feed named by config.GtfsURL, which may be a local
// path or an http(s) URL.
func LoadDirectory(ctx context.Context, config Config, logger *slog.Logger) (*Directory, error) {
	start := time.Now()

	staticData, err := loadGTFSData(ctx, config, logger)
	if err != nil {
		return nil, err
	}

	directory := NewDirectory(staticData)

	logging.LogOperation(logger, "gtfs_directory_loaded",
		slog.String("source", config.GtfsURL),
		slog.Int("agencies", len(directory.agencies)),
		slog.Int("routes", len(directory.routes)),
		slog.Int("stops", len(directory.stops)),
		slog.Duration("duration", time.Since(start)))

	return directory, nil
}

func NewDirectory(staticData *gtfs.Static) *Directory {
	directory := &Directory{
		agencies: staticData.Agencies,
		routes:   make(map[string]fares.Route, len(staticData.Routes)),
		stops:    make(map[string]fares.Stop, len(staticData.Stops)),
		loadedAt: time.Now(),
	}

	for i := range staticData.Routes {
		route := &staticData.Routes[i]
		fareRoute := fares.Route{
			ID:        route.Id,
			ShortName: route.ShortName,
			LongName:  route.LongName,
		}
		if route.Agency != nil {
			fareRoute.AgencyID = route.Agency.Id
			fareRoute.AgencyURL = route.Agency.Url
		}
		directory.routes[route.Id] = fareRoute
	}

	for i := range staticData.Stops {
		stop := &staticData.Stops[i]
		fareStop := fares.Stop{ID: stop.Id, Name: stop.Name}
		if stop.Latitude != nil && stop.Longitude != nil {
			fareStop.Lat = *stop.Latitude
			fareStop.Lon = *stop.Longitude
		}
		directory.stops[stop.Id] = fareStop
	}

	return directory
}

func (d *Directory) Agencies() []gtfs.Agency {
	return d.agencies
}

// FindAgency returns the agency with the given id, or nil.
func (d *Directory) FindAgency(id string) *gtfs.Agency {
	for i := range d.agencies {
		if d.agencies[i].Id == id {
			return &d.agencies[i]
		}
	}
	return nil
}

func (d *Directory) Route(id string) (fares.Route, bool) {
	route, ok := d.routes[id]
	return route, ok
}

func (d *Directory) Stop(id string) (fares.Stop, bool) {
	stop, ok := d.stops[id]
	return stop, ok
}

// Routes returns every indexed route ordered by id.
func (d *Directory) Routes() []fares.Route {
	routes := make([]fares.Route, 0, len(d.routes))
	for _, route := range d.routes {
		routes = append(routes, route)
	}
	slices.SortFunc(routes, func(a, b fares.Route) int { return strings.Compare(a.ID, b.ID) })
	return routes
}

// Stops returns every indexed stop ordered by id.
func (d *Directory) Stops() []fares.Stop {
	stops := make([]fares.Stop, 0, len(d.stops))
	for _, stop := range d.stops {
		stops = append(stops, stop)
	}
	slices.SortFunc(stops, func(a, b fares.Stop) int { return strings.Compare(a.ID, b.ID) })
	return stops
}

func (d *Directory) LoadedAt() time.Time {
	return d.loadedAt
}

// ResolveLeg looks up the route and both stops of a leg.
func (d *Directory) ResolveLeg(routeID, fromStopID, toStopID string) (fares.RideLeg, error) {
	route, ok := d.routes[routeID]
	if !ok {
		return fares.RideLeg{}, fmt.Errorf("%w: %s", ErrRouteNotFound, routeID)
	}
	from, ok := d.stops[fromStopID]
	if !ok {
		return fares.RideLeg{}, fmt.Errorf("%w: %s", ErrStopNotFound, fromStopID)
	}
	to, ok := d.stops[toStopID]
	if !ok {
		return fares.RideLeg{}, fmt.Errorf("%w: %s", ErrStopNotFound, toStopID)
	}
	return fares.RideLeg{From: from, To: to, Route: route}, nil
}
