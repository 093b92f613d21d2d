// Package gtfstest builds small static GTFS feeds for tests.
package gtfstest

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

var bayAreaFeed = map[string]string{
	"agency.txt": `agency_id,agency_name,agency_url,agency_timezone,agency_fare_url
BART,Bay Area Rapid Transit,https://www.bart.gov,America/Los_Angeles,https://www.bart.gov/tickets
AC Transit,AC Transit,https://www.actransit.org,America/Los_Angeles,
SFMTA,San Francisco Municipal Transportation Agency,https://www.sfmta.com,America/Los_Angeles,
Mystery Ferry,Mystery Ferry Co,https://ferry.example.com,America/Los_Angeles,
`,
	"stops.txt": `stop_id,stop_name,stop_lat,stop_lon
EMBR,Embarcadero,37.792874,-122.397020
MONT,Montgomery St,37.789405,-122.401066
12TH,12th St Oakland City Center,37.803768,-122.271450
FRMT,Fremont,37.557465,-121.976608
BDWY,Broadway & 14th St,37.804400,-122.270800
CIVC,Civic Center,37.779732,-122.414123
PIER,Ferry Pier,37.795500,-122.393400
`,
	"routes.txt": `route_id,agency_id,route_short_name,route_long_name,route_type
BART-YL,BART,YL,Antioch - SFO,1
BART-GN,BART,GN,Berryessa - Daly City,1
AC-72,AC Transit,72,San Pablo Ave,3
MUNI-F,SFMTA,F,Market & Wharves,0
FERRY-1,Mystery Ferry,1,Bay Crossing,4
`,
	"calendar.txt": `service_id,monday,tuesday,wednesday,thursday,friday,saturday,sunday,start_date,end_date
WKDY,1,1,1,1,1,0,0,20260101,20261231
`,
	"trips.txt": `route_id,service_id,trip_id
BART-YL,WKDY,YL1
BART-GN,WKDY,GN1
AC-72,WKDY,AC1
MUNI-F,WKDY,F1
FERRY-1,WKDY,FY1
`,
	"stop_times.txt": `trip_id,arrival_time,departure_time,stop_id,stop_sequence
YL1,08:00:00,08:00:00,EMBR,1
YL1,08:02:00,08:02:00,MONT,2
GN1,08:10:00,08:10:00,12TH,1
GN1,08:40:00,08:40:00,FRMT,2
AC1,09:00:00,09:00:00,BDWY,1
AC1,09:20:00,09:20:00,12TH,2
F1,07:30:00,07:30:00,CIVC,1
F1,07:50:00,07:50:00,EMBR,2
FY1,10:00:00,10:00:00,PIER,1
FY1,10:30:00,10:30:00,12TH,2
`,
}

// BayAreaFeed returns a zipped feed with BART, AC Transit and SFMTA routes,
// plus a ferry operated by an agency no fare table knows about.
func BayAreaFeed(t *testing.T) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, content := range bayAreaFeed {
		f, err := w.Create(name)
		if err != nil {
			t.Fatalf("creating %s: %v", name, err)
		}
		if _, err := f.Write([]byte(content)); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("closing feed archive: %v", err)
	}
	return buf.Bytes()
}

// WriteBayAreaFeed writes BayAreaFeed to a temporary file and returns its path.
func WriteBayAreaFeed(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "gtfs.zip")
	if err := os.WriteFile(path, BayAreaFeed(t), 0o600); err != nil {
		t.Fatalf("writing feed: %v", err)
	}
	return path
}
