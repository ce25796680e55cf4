package mapgen

import (
	"context"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
)

// Stitcher builds the raster background of a viewport.
type Stitcher interface {
	Stitch(ctx context.Context, v Viewport) (*image.RGBA, error)
}

// RenderBase fits the places on the canvas, stitches the background tiles
// and draws a route from each city to the destination plus the markers.
func RenderBase(ctx context.Context, s Stitcher, c Canvas, cities []Place, dest Place) (*image.RGBA, error) {
	all := append(append([]Place{}, cities...), dest)
	v := FitViewport(all, c)
	img, err := s.Stitch(ctx, v)
	if err != nil {
		return nil, fmt.Errorf("stitch tiles: %w", err)
	}
	DrawRoutes(img, v, cities, dest)
	return img, nil
}

// DrawRoutes draws the route lines first, then the city and destination
// markers on top.
func DrawRoutes(dst draw.Image, v Viewport, cities []Place, dest Place) {
	route := mustHex(RouteColor)
	red := mustHex(DestinationColor)
	dx, dy := v.Pixel(dest.Lat, dest.Lng)
	for _, p := range cities {
		x, y := v.Pixel(p.Lat, p.Lng)
		FillLine(dst, x, y, dx, dy, RouteWidth, route)
	}
	for _, p := range cities {
		x, y := v.Pixel(p.Lat, p.Lng)
		Marker(dst, x, y, v.MetersToPixels(CityRadiusMeters, p.Lat), CityStroke, route, route)
	}
	Marker(dst, dx, dy, v.MetersToPixels(DestinationRadiusMeters, dest.Lat), DestinationStroke, red, red)
}

// ReadPNG decodes a PNG file.
func ReadPNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// WritePNG encodes img to path, creating the directory.
func WritePNG(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
