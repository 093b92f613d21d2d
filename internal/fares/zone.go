package fares

import "farecalc.onebusaway.org/internal/models"

// FareZoneBox is a closed longitude/latitude rectangle.
type FareZoneBox struct {
	MinLon float64
	MinLat float64
	MaxLon float64
	MaxLat float64
}

// NewFareZoneBox creates a box from two corners, swapping bounds given in the
// wrong order.
func NewFareZoneBox(minLon, minLat, maxLon, maxLat float64) FareZoneBox {
	if minLon > maxLon {
		minLon, maxLon = maxLon, minLon
	}
	if minLat > maxLat {
		minLat, maxLat = maxLat, minLat
	}
	return FareZoneBox{MinLon: minLon, MinLat: minLat, MaxLon: maxLon, MaxLat: maxLat}
}

// Contains reports whether p lies inside the box or on its edge.
func (b FareZoneBox) Contains(p models.CoordinatePoint) bool {
	return p.Lon >= b.MinLon && p.Lon <= b.MaxLon &&
		p.Lat >= b.MinLat && p.Lat <= b.MaxLat
}

func (b FareZoneBox) ContainsStop(stop Stop) bool {
	return b.Contains(stop.Point())
}

type FareZone struct {
	ID   string
	Name string
	Box  FareZoneBox
}

// ZonesContaining returns the zones whose box contains p, in the order given.
func ZonesContaining(zones []FareZone, p models.CoordinatePoint) []FareZone {
	matches := make([]FareZone, 0)
	for _, zone := range zones {
		if zone.Box.Contains(p) {
			matches = append(matches, zone)
		}
	}
	return matches
}
