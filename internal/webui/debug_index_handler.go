package webui

import (
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/davecgh/go-spew/spew"

	"farecalc.onebusaway.org/internal/app"
)

//go:embed debug_index.html
var templateFS embed.FS

var debugTemplate = template.Must(template.ParseFS(templateFS, "debug_index.html"))

// WebUI serves a browsable dump of the loaded fare table and GTFS directory.
type WebUI struct {
	*app.Application
}

type debugData struct {
	Title string
	Pre   string
}

type debugSummary struct {
	Env               string
	GtfsSource        string
	LoadedAt          time.Time
	Agencies          int
	Routes            int
	Stops             int
	Operators         int
	Zones             int
	SplitUnclassified bool
}

func writeDebugData(w http.ResponseWriter, title string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	err := debugTemplate.Execute(w, debugData{
		Title: title,
		Pre:   spew.Sdump(data),
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (webUI *WebUI) debugIndexHandler(w http.ResponseWriter, r *http.Request) {
	dataType := r.URL.Query().Get("dataType")

	var data interface{}
	var title string

	table := webUI.FareTable()

	switch dataType {
	case "operators":
		data = table.Operators
		title = "Fare Table - Operators"
	case "zones":
		data = table.Zones
		title = "Fare Table - Zones"
	case "agencies":
		data = webUI.Directory.Agencies()
		title = "GTFS Static - Agencies"
	case "routes":
		data = webUI.Directory.Routes()
		title = "GTFS Static - Routes"
	case "stops":
		data = webUI.Directory.Stops()
		title = "GTFS Static - Stops"
	case "summary":
		data = debugSummary{
			Env:               webUI.Config.Env,
			GtfsSource:        webUI.GtfsConfig.GtfsURL,
			LoadedAt:          webUI.Directory.LoadedAt(),
			Agencies:          len(webUI.Directory.Agencies()),
			Routes:            len(webUI.Directory.Routes()),
			Stops:             len(webUI.Directory.Stops()),
			Operators:         len(table.Operators),
			Zones:             len(table.Zones),
			SplitUnclassified: webUI.Config.SplitUnclassified,
		}
		title = "Summary"
	default:
		data = map[string]string{
			"error": "Please use one of the following: operators, zones, agencies, routes, stops, summary.",
		}
		title = "Choose a data type"
	}

	writeDebugData(w, title, data)
}
