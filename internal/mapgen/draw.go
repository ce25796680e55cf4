package mapgen

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
)

// circleSegments approximates circles with a polygon.
const circleSegments = 72

func fill(dst draw.Image, c color.Color, path func(z *vector.Rasterizer)) {
	b := dst.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	z.DrawOp = draw.Over
	path(z)
	z.Draw(dst, b, image.NewUniform(c), image.Point{})
}

// FillLine draws a segment of the given width with square ends.
func FillLine(dst draw.Image, x1, y1, x2, y2, width float64, c color.Color) {
	dx, dy := x2-x1, y2-y1
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}
	// half-width normal
	nx, ny := -dy/length*width/2, dx/length*width/2
	fill(dst, c, func(z *vector.Rasterizer) {
		z.MoveTo(float32(x1+nx), float32(y1+ny))
		z.LineTo(float32(x2+nx), float32(y2+ny))
		z.LineTo(float32(x2-nx), float32(y2-ny))
		z.LineTo(float32(x1-nx), float32(y1-ny))
		z.ClosePath()
	})
}

// FillCircle draws a disc.
func FillCircle(dst draw.Image, cx, cy, r float64, c color.Color) {
	if r <= 0 {
		return
	}
	fill(dst, c, func(z *vector.Rasterizer) {
		for i := 0; i <= circleSegments; i++ {
			a := 2 * math.Pi * float64(i) / circleSegments
			x, y := float32(cx+r*math.Cos(a)), float32(cy+r*math.Sin(a))
			if i == 0 {
				z.MoveTo(x, y)
				continue
			}
			z.LineTo(x, y)
		}
		z.ClosePath()
	})
}

// Marker draws a disc with an outline of stroke pixels.
func Marker(dst draw.Image, cx, cy, r, stroke float64, outline, body color.Color) {
	FillCircle(dst, cx, cy, r+stroke/2, outline)
	FillCircle(dst, cx, cy, r-stroke/2, body)
}

// FillRoundRect draws a rectangle with rounded corners.
func FillRoundRect(dst draw.Image, r image.Rectangle, radius float64, c color.Color) {
	x0, y0 := float32(r.Min.X), float32(r.Min.Y)
	x1, y1 := float32(r.Max.X), float32(r.Max.Y)
	rad := float32(math.Min(radius, math.Min(float64(r.Dx()), float64(r.Dy()))/2))
	fill(dst, c, func(z *vector.Rasterizer) {
		z.MoveTo(x0+rad, y0)
		z.LineTo(x1-rad, y0)
		z.QuadTo(x1, y0, x1, y0+rad)
		z.LineTo(x1, y1-rad)
		z.QuadTo(x1, y1, x1-rad, y1)
		z.LineTo(x0+rad, y1)
		z.QuadTo(x0, y1, x0, y1-rad)
		z.LineTo(x0, y0+rad)
		z.QuadTo(x0, y0, x0+rad, y0)
		z.ClosePath()
	})
}

// Card draws a rounded card with a drop shadow and a border of stroke
// pixels.
func Card(dst draw.Image, r image.Rectangle, radius, stroke float64, border, body color.Color) {
	FillRoundRect(dst, r.Add(image.Pt(0, 2)).Inset(-2), radius+2, color.NRGBA{A: 0x30})
	if stroke > 0 {
		FillRoundRect(dst, r.Inset(-int(stroke/2)), radius+stroke/2, border)
	}
	FillRoundRect(dst, r.Inset(int(math.Ceil(stroke/2))), radius-stroke/2, body)
}
