package fares

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"farecalc.onebusaway.org/internal/models"
)

func TestFareZoneBoxContains(t *testing.T) {
	box := NewFareZoneBox(-122.5, 37.7, -122.3, 37.8)

	tests := []struct {
		name  string
		point models.CoordinatePoint
		want  bool
	}{
		{"inside", models.CoordinatePoint{Lat: 37.75, Lon: -122.4}, true},
		{"on min corner", models.CoordinatePoint{Lat: 37.7, Lon: -122.5}, true},
		{"on max corner", models.CoordinatePoint{Lat: 37.8, Lon: -122.3}, true},
		{"west", models.CoordinatePoint{Lat: 37.75, Lon: -122.6}, false},
		{"north", models.CoordinatePoint{Lat: 37.9, Lon: -122.4}, false},
		{"lat and lon swapped", models.CoordinatePoint{Lat: -122.4, Lon: 37.75}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, box.Contains(tt.point))
		})
	}
}

func TestNewFareZoneBoxNormalizesCorners(t *testing.T) {
	box := NewFareZoneBox(-122.3, 37.8, -122.5, 37.7)
	assert.Equal(t, FareZoneBox{MinLon: -122.5, MinLat: 37.7, MaxLon: -122.3, MaxLat: 37.8}, box)
}

func TestFareZoneBoxContainsStop(t *testing.T) {
	box := NewFareZoneBox(-122.5, 37.7, -122.3, 37.8)
	assert.True(t, box.ContainsStop(Stop{ID: "powell", Lat: 37.7844, Lon: -122.4079}))
	assert.False(t, box.ContainsStop(Stop{ID: "fremont", Lat: 37.5574, Lon: -121.9764}))
}

func TestZonesContaining(t *testing.T) {
	zones := DefaultZones()

	matches := ZonesContaining(zones, models.CoordinatePoint{Lat: 37.7844, Lon: -122.4079})
	if assert.Len(t, matches, 1) {
		assert.Equal(t, "SF", matches[0].ID)
	}

	none := ZonesContaining(zones, models.CoordinatePoint{Lat: 47.6, Lon: -122.3})
	assert.NotNil(t, none)
	assert.Empty(t, none)
}
