package mapgen

import "math"

// boundsMargin widens the bounding box on each side, as a share of its span.
const boundsMargin = 0.15

// Pin is a place positioned on the canvas.
type Pin struct {
	Place
	X, Y int
}

// mercatorY is the Web-Mercator ordinate of a latitude in degrees.
func mercatorY(lat float64) float64 {
	rad := lat * math.Pi / 180
	return math.Log(math.Tan(rad) + 1/math.Cos(rad))
}

// Project maps places into the padded area of c. Longitudes are normalised
// linearly and latitudes through Web Mercator over the bounding box of all
// places widened by 15% of each span. Northern places get smaller y.
func Project(places []Place, c Canvas) []Pin {
	if len(places) == 0 {
		return nil
	}
	minLat, maxLat := places[0].Lat, places[0].Lat
	minLng, maxLng := places[0].Lng, places[0].Lng
	for _, p := range places[1:] {
		minLat = math.Min(minLat, p.Lat)
		maxLat = math.Max(maxLat, p.Lat)
		minLng = math.Min(minLng, p.Lng)
		maxLng = math.Max(maxLng, p.Lng)
	}
	latMargin := (maxLat - minLat) * boundsMargin
	lngMargin := (maxLng - minLng) * boundsMargin
	minLng -= lngMargin
	maxLng += lngMargin
	minY := mercatorY(minLat - latMargin)
	maxY := mercatorY(maxLat + latMargin)

	innerW := float64(c.Width - 2*c.PadX)
	innerH := float64(c.Height - 2*c.PadY)
	out := make([]Pin, 0, len(places))
	for _, p := range places {
		xNorm := normalise(p.Lng, minLng, maxLng)
		yNorm := normalise(mercatorY(p.Lat), minY, maxY)
		out = append(out, Pin{
			Place: p,
			X:     int(math.Round(float64(c.PadX) + xNorm*innerW)),
			Y:     int(math.Round(float64(c.PadY) + (1-yNorm)*innerH)),
		})
	}
	return out
}

// normalise maps v from [lo,hi] to [0,1]; an empty range maps to the middle.
func normalise(v, lo, hi float64) float64 {
	if hi == lo {
		return 0.5
	}
	return (v - lo) / (hi - lo)
}

// PinByKey returns the pin of key.
func PinByKey(pins []Pin, key string) (Pin, bool) {
	for _, p := range pins {
		if p.Key == key {
			return p, true
		}
	}
	return Pin{}, false
}
