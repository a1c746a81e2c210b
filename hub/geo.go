package hub

import (
	"strings"
)

// GeoLocation is one spatial coverage entry. A point, a box and a polygon are
// distinct variants; an entry may carry any of them plus a place name.
type GeoLocation struct {
	Place   string         `json:"geoLocationPlace,omitempty"`
	Point   *GeoPoint      `json:"geoLocationPoint,omitempty"`
	Box     *GeoBox        `json:"geoLocationBox,omitempty"`
	Polygon []PolygonPoint `json:"geoLocationPolygon,omitempty"`
}

// GeoPoint is a latitude/longitude pair. Coordinates are kept as strings so the
// source precision survives a round trip.
type GeoPoint struct {
	PointLatitude  string `json:"pointLatitude"`
	PointLongitude string `json:"pointLongitude"`
}

// GeoBox is a bounding box.
type GeoBox struct {
	WestBoundLongitude string `json:"westBoundLongitude"`
	EastBoundLongitude string `json:"eastBoundLongitude"`
	SouthBoundLatitude string `json:"southBoundLatitude"`
	NorthBoundLatitude string `json:"northBoundLatitude"`
}

// PolygonPoint wraps one vertex of a polygon.
type PolygonPoint struct {
	PolygonPoint GeoPoint `json:"polygonPoint"`
}

// RawGeoLocation carries geolocation values as found in a source document,
// before normalization.
type RawGeoLocation struct {
	Place string

	// PointText is the kernel-3 "lat lon" form.
	PointText string
	Point     *GeoPoint

	// BoxText is the kernel-3 "south west north east" form.
	BoxText string
	Box     *GeoBox

	Polygon []GeoPoint
}

// NormalizeGeoLocations converts raw entries to GeoLocations, dropping entries
// that carry neither a place nor a usable variant.
func NormalizeGeoLocations(raw []RawGeoLocation) []GeoLocation {
	var result []GeoLocation
	for _, r := range raw {
		g := GeoLocation{Place: strings.TrimSpace(r.Place)}

		switch {
		case r.Point != nil:
			g.Point = normalizePoint(*r.Point)
		case r.PointText != "":
			g.Point = PointFromText(r.PointText)
		}

		switch {
		case r.Box != nil:
			g.Box = normalizeBox(*r.Box)
		case r.BoxText != "":
			g.Box = BoxFromText(r.BoxText)
		}

		for _, p := range r.Polygon {
			if np := normalizePoint(p); np != nil {
				g.Polygon = append(g.Polygon, PolygonPoint{PolygonPoint: *np})
			}
		}

		if g.Place == "" && g.Point == nil && g.Box == nil && len(g.Polygon) == 0 {
			continue
		}
		result = append(result, g)
	}
	return result
}

// PointFromText parses "lat lon". It returns nil unless both values are present.
func PointFromText(s string) *GeoPoint {
	f := strings.Fields(s)
	if len(f) != 2 {
		return nil
	}
	return &GeoPoint{PointLatitude: f[0], PointLongitude: f[1]}
}

// BoxFromText parses "south west north east". It returns nil unless all four
// values are present.
func BoxFromText(s string) *GeoBox {
	f := strings.Fields(s)
	if len(f) != 4 {
		return nil
	}
	return &GeoBox{
		SouthBoundLatitude: f[0],
		WestBoundLongitude: f[1],
		NorthBoundLatitude: f[2],
		EastBoundLongitude: f[3],
	}
}

// BoxText renders b in the "south west north east" form used by schema.org.
func (b GeoBox) BoxText() string {
	return strings.Join([]string{b.SouthBoundLatitude, b.WestBoundLongitude, b.NorthBoundLatitude, b.EastBoundLongitude}, " ")
}

func normalizePoint(p GeoPoint) *GeoPoint {
	p.PointLatitude = strings.TrimSpace(p.PointLatitude)
	p.PointLongitude = strings.TrimSpace(p.PointLongitude)
	if p.PointLatitude == "" || p.PointLongitude == "" {
		return nil
	}
	return &p
}

func normalizeBox(b GeoBox) *GeoBox {
	b.WestBoundLongitude = strings.TrimSpace(b.WestBoundLongitude)
	b.EastBoundLongitude = strings.TrimSpace(b.EastBoundLongitude)
	b.SouthBoundLatitude = strings.TrimSpace(b.SouthBoundLatitude)
	b.NorthBoundLatitude = strings.TrimSpace(b.NorthBoundLatitude)
	if b.WestBoundLongitude == "" || b.EastBoundLongitude == "" || b.SouthBoundLatitude == "" || b.NorthBoundLatitude == "" {
		return nil
	}
	return &b
}
