// Package lightbox models the full-screen image viewer of the season page.
package lightbox

import (
	"math"
	"net/url"
	"strconv"

	"isoatthetop.com/web/internal/routing"
)

const (
	MinZoom  = 1.0
	MaxZoom  = 4.0
	ZoomStep = 0.5
)

// SlopeMapSrc is the high resolution slope map opened in zoomable mode.
const SlopeMapSrc = "media/hiver/plan-pistes-hd.jpg"

// SlopeMapAlt returns the alt text of the slope map for locale.
func SlopeMapAlt(locale routing.Locale) string {
	if locale == routing.LocaleFR {
		return "Plan des pistes Isola 2000"
	}
	return "Isola 2000 ski slopes map"
}

// State is the viewer state. The zero value is closed.
type State struct {
	Open     bool
	Src      string
	Alt      string
	Caption  string
	Zoomable bool
	Zoom     float64
}

// OpenMedia shows a gallery picture at zoom 1 without zoom controls.
func (s *State) OpenMedia(src, alt, caption string) {
	*s = State{Open: true, Src: src, Alt: alt, Caption: caption, Zoom: MinZoom}
}

// OpenSlopeMap shows the zoomable slope map.
func (s *State) OpenSlopeMap(locale routing.Locale) {
	alt := SlopeMapAlt(locale)
	*s = State{Open: true, Src: SlopeMapSrc, Alt: alt, Caption: alt, Zoomable: true, Zoom: MinZoom}
}

// Close hides the viewer and resets zoom.
func (s *State) Close() {
	*s = State{Zoom: MinZoom}
}

func (s *State) ZoomIn() {
	s.Zoom = math.Min(s.level()+ZoomStep, MaxZoom)
}

func (s *State) ZoomOut() {
	s.Zoom = math.Max(s.level()-ZoomStep, MinZoom)
}

// Reset returns to the unzoomed level.
func (s *State) Reset() {
	s.Zoom = MinZoom
}

// SetZoom snaps z to the nearest half step inside [MinZoom, MaxZoom].
// Non-zoomable viewers stay at MinZoom.
func (s *State) SetZoom(z float64) {
	if !s.Zoomable || math.IsNaN(z) {
		s.Zoom = MinZoom
		return
	}
	z = math.Round(z/ZoomStep) * ZoomStep
	s.Zoom = math.Max(MinZoom, math.Min(MaxZoom, z))
}

func (s *State) level() float64 {
	if s.Zoom < MinZoom {
		return MinZoom
	}
	return s.Zoom
}

// CanZoomIn reports whether ZoomIn would change the level.
func (s State) CanZoomIn() bool { return s.Zoomable && s.level() < MaxZoom }

// CanZoomOut reports whether ZoomOut would change the level.
func (s State) CanZoomOut() bool { return s.Zoomable && s.level() > MinZoom }

// Percent is the zoom level as an integer percentage, for CSS.
func (s State) Percent() int { return int(math.Round(s.level() * 100)) }

// Pannable reports whether dragging moves the picture.
func (s State) Pannable() bool { return s.Zoomable && s.level() > MinZoom }

// Item is a picture the viewer can show.
type Item struct {
	Src     string
	Alt     string
	Caption string
}

// FromQuery rebuilds the viewer state from page query parameters:
// "photo" is an index into items, "slopes=1" opens the slope map and "zoom"
// sets the level of a zoomable viewer. Invalid values leave it closed.
func FromQuery(q url.Values, items []Item, locale routing.Locale) State {
	var s State
	s.Close()
	if q.Get("slopes") == "1" {
		s.OpenSlopeMap(locale)
		if z, err := strconv.ParseFloat(q.Get("zoom"), 64); err == nil {
			s.SetZoom(z)
		}
		return s
	}
	raw := q.Get("photo")
	if raw == "" {
		return s
	}
	i, err := strconv.Atoi(raw)
	if err != nil || i < 0 || i >= len(items) {
		return s
	}
	it := items[i]
	s.OpenMedia(it.Src, it.Alt, it.Caption)
	return s
}

// ZoomQuery returns the query string value for level z.
func ZoomQuery(z float64) string {
	return strconv.FormatFloat(z, 'f', -1, 64)
}
