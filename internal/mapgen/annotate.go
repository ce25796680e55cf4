package mapgen

import (
	"fmt"
	"image"
	"image/draw"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

type faceKey struct {
	size float64
	bold bool
}

var (
	fontsOnce sync.Once
	fontsErr  error
	regular   *opentype.Font
	bold      *opentype.Font

	facesMu sync.Mutex
	faces   = map[faceKey]font.Face{}
)

func fontFace(size float64, weight int) (font.Face, error) {
	fontsOnce.Do(func() {
		if regular, fontsErr = opentype.Parse(goregular.TTF); fontsErr != nil {
			return
		}
		bold, fontsErr = opentype.Parse(gobold.TTF)
	})
	if fontsErr != nil {
		return nil, fontsErr
	}
	key := faceKey{size: size, bold: weight >= 600}
	facesMu.Lock()
	defer facesMu.Unlock()
	if f, ok := faces[key]; ok {
		return f, nil
	}
	src := regular
	if key.bold {
		src = bold
	}
	f, err := opentype.NewFace(src, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, err
	}
	faces[key] = f
	return f, nil
}

// Annotate paints the layout over a copy of base.
func Annotate(base image.Image, l Layout) (*image.RGBA, error) {
	b := base.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), base, b.Min, draw.Src)
	for _, el := range l.Elements {
		switch {
		case el.Box != nil:
			if err := paintBox(out, *el.Box); err != nil {
				return nil, err
			}
		case el.Text != nil:
			if err := paintText(out, *el.Text); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

func paintBox(dst draw.Image, b Box) error {
	body, err := ParseHex(b.Fill)
	if err != nil {
		return err
	}
	border, err := ParseHex(b.Stroke)
	if err != nil {
		return err
	}
	r := image.Rect(b.X, b.Y, b.X+b.W, b.Y+b.H)
	Card(dst, r, float64(b.Radius), float64(b.StrokeWidth), border, withOpacity(body, b.Opacity))
	return nil
}

func paintText(dst draw.Image, t Text) error {
	c, err := ParseHex(t.Fill)
	if err != nil {
		return err
	}
	face, err := fontFace(t.Size, t.Weight)
	if err != nil {
		return fmt.Errorf("font: %w", err)
	}
	width := font.MeasureString(face, t.Content)
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.I(t.X) - width/2, Y: fixed.I(t.Y)},
	}
	d.DrawString(t.Content)
	return nil
}
