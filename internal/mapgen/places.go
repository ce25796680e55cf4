// Package mapgen renders the access map: a raster base map with routes and
// markers, then an annotated version with travel time cards.
package mapgen

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Output files, relative to the repository root.
const (
	BasePath    = "public/media/acces-carte-base.png"
	FinalPath   = "public/media/acces-carte.png"
	OverlayPath = "public/media/acces-carte-overlay.svg"
)

// Place is a point of the map.
type Place struct {
	Key   string
	Name  string
	Lat   float64
	Lng   float64
	Time  string // travel time to the destination, empty for the destination
	Color string // label colour of the travel time
}

// Canvas is the output size and the inner padding kept free of points.
type Canvas struct {
	Width, Height int
	PadX, PadY    int
}

// DefaultCanvas is the size of the published map.
var DefaultCanvas = Canvas{Width: 1600, Height: 900, PadX: 80, PadY: 80}

// Destination is the resort.
var Destination = Place{Key: "isola2000", Name: "ISOLA 2000", Lat: 44.1847, Lng: 7.1583}

// Cities are the departure points, west to east.
var Cities = []Place{
	{Key: "montpellier", Name: "Montpellier", Lat: 43.6108, Lng: 3.8767, Time: "~5h", Color: "#ef4444"},
	{Key: "marseille", Name: "Marseille", Lat: 43.2965, Lng: 5.3698, Time: "~3h30", Color: "#f59e0b"},
	{Key: "nice", Name: "Nice", Lat: 43.7102, Lng: 7.2620, Time: "~1h30", Color: "#10b981"},
}

// Places returns the cities followed by the destination.
func Places() []Place {
	out := make([]Place, 0, len(Cities)+1)
	out = append(out, Cities...)
	return append(out, Destination)
}

// Drawing colours.
const (
	RouteColor       = "#3b82f6"
	DestinationColor = "#ef4444"
)

// Marker radii in metres and stroke widths in pixels.
const (
	CityRadiusMeters        = 8000
	DestinationRadiusMeters = 10000
	RouteWidth              = 4
	CityStroke              = 3
	DestinationStroke       = 4
)

// ParseHex parses "#rrggbb" or "#rrggbbaa".
func ParseHex(s string) (color.NRGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 && len(h) != 8 {
		return color.NRGBA{}, fmt.Errorf("mapgen: invalid colour %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("mapgen: invalid colour %q: %w", s, err)
	}
	if len(h) == 6 {
		v = v<<8 | 0xff
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

func mustHex(s string) color.NRGBA {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// withOpacity returns c with its alpha scaled by o in [0,1].
func withOpacity(c color.NRGBA, o float64) color.NRGBA {
	c.A = uint8(float64(c.A)*o + 0.5)
	return c
}
