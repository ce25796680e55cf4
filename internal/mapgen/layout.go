package mapgen

// Text of the annotation overlay, centred on X with its baseline at Y.
type Text struct {
	X, Y    int
	Size    float64
	Weight  int
	Fill    string
	Content string
}

// Box is a rounded card of the overlay.
type Box struct {
	X, Y, W, H  int
	Radius      int
	Fill        string
	Opacity     float64
	Stroke      string
	StrokeWidth int
}

// Element is either a Box or a Text; the overlay is painted in order.
type Element struct {
	Box  *Box
	Text *Text
}

// Layout is the annotation overlay of the access map.
type Layout struct {
	Width, Height int
	Elements      []Element
}

const (
	titleText    = "Accès à Isola 2000"
	subtitleText = "Temps de trajet depuis les principales villes"
	resortText   = "Station de ski - 2000m"
	areaText     = "Alpes-Maritimes (06)"
	footerText   = "Les temps de trajet sont indicatifs et peuvent varier selon les conditions. © OpenStreetMap contributors"

	cardWidth  = 200
	cardHeight = 70
	// cardGap separates a city marker from its card.
	cardGap = 25
)

func (l *Layout) box(b Box)   { l.Elements = append(l.Elements, Element{Box: &b}) }
func (l *Layout) text(t Text) { l.Elements = append(l.Elements, Element{Text: &t}) }

// BuildLayout places the title, one card per city under its marker, the
// destination card above its marker and the attribution footer.
func BuildLayout(pins []Pin, c Canvas, destKey string) Layout {
	l := Layout{Width: c.Width, Height: c.Height}
	mid := c.Width / 2

	l.box(Box{X: mid - 250, Y: 20, W: 500, H: 90, Radius: 12, Fill: "#ffffff", Opacity: 0.95, Stroke: "#cbd5e1", StrokeWidth: 3})
	l.text(Text{X: mid, Y: 60, Size: 36, Weight: 700, Fill: "#0f172a", Content: titleText})
	l.text(Text{X: mid, Y: 90, Size: 16, Weight: 400, Fill: "#64748b", Content: subtitleText})

	for _, p := range pins {
		if p.Key == destKey {
			continue
		}
		top := p.Y + cardGap
		l.box(Box{X: p.X - cardWidth/2, Y: top, W: cardWidth, H: cardHeight, Radius: 8, Fill: "#ffffff", Opacity: 0.95, Stroke: RouteColor, StrokeWidth: 2})
		l.text(Text{X: p.X, Y: top + 28, Size: 18, Weight: 600, Fill: "#0f172a", Content: p.Name})
		l.text(Text{X: p.X, Y: top + 57, Size: 26, Weight: 700, Fill: p.Color, Content: p.Time})
	}

	if d, ok := PinByKey(pins, destKey); ok {
		l.box(Box{X: d.X - 140, Y: d.Y - 170, W: 280, H: 100, Radius: 12, Fill: DestinationColor, Opacity: 0.95, Stroke: "#ffffff", StrokeWidth: 4})
		l.text(Text{X: d.X, Y: d.Y - 130, Size: 32, Weight: 800, Fill: "#ffffff", Content: d.Name})
		l.text(Text{X: d.X, Y: d.Y - 102, Size: 15, Weight: 400, Fill: "#fecaca", Content: resortText})
		l.text(Text{X: d.X, Y: d.Y - 82, Size: 14, Weight: 400, Fill: "#fee2e2", Content: areaText})
	}

	l.text(Text{X: mid, Y: c.Height - 20, Size: 11, Weight: 400, Fill: "#475569", Content: footerText})
	return l
}
