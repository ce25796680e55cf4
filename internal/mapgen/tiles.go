package mapgen

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

// TileSize is the edge of a raster tile in pixels.
const TileSize = 256

const (
	maxZoom = 18
	// DefaultTileURL is the Carto Voyager raster service.
	DefaultTileURL   = "https://{s}.basemaps.cartocdn.com/rastertiles/voyager/{z}/{x}/{y}.png"
	defaultUserAgent = "isoatthetop-mapgen/1.0 (+https://isoatthetop.com)"
	defaultWorkers   = 4
	// earthCircumference is the equatorial length in metres.
	earthCircumference = 40075016.686
)

var defaultSubdomains = []string{"a", "b", "c", "d"}

// Viewport is a canvas placed on the world pixel grid of a zoom level.
type Viewport struct {
	Zoom          int
	Left, Top     float64 // world pixel of the canvas origin
	Width, Height int
}

func worldSize(zoom int) float64 { return TileSize * math.Exp2(float64(zoom)) }

func worldX(lng float64, zoom int) float64 {
	return (lng + 180) / 360 * worldSize(zoom)
}

func worldY(lat float64, zoom int) float64 {
	return (1 - mercatorY(lat)/math.Pi) / 2 * worldSize(zoom)
}

// FitViewport picks the highest zoom at which every place fits inside the
// padded canvas and centres the places on it.
func FitViewport(places []Place, c Canvas) Viewport {
	innerW := float64(c.Width - 2*c.PadX)
	innerH := float64(c.Height - 2*c.PadY)
	for z := maxZoom; z >= 0; z-- {
		minX, maxX, minY, maxY := extent(places, z)
		if maxX-minX <= innerW && maxY-minY <= innerH || z == 0 {
			return Viewport{
				Zoom:   z,
				Left:   (minX+maxX)/2 - float64(c.Width)/2,
				Top:    (minY+maxY)/2 - float64(c.Height)/2,
				Width:  c.Width,
				Height: c.Height,
			}
		}
	}
	return Viewport{Width: c.Width, Height: c.Height}
}

func extent(places []Place, zoom int) (minX, maxX, minY, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, p := range places {
		x, y := worldX(p.Lng, zoom), worldY(p.Lat, zoom)
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
	}
	return
}

// Pixel returns the canvas position of a coordinate.
func (v Viewport) Pixel(lat, lng float64) (float64, float64) {
	return worldX(lng, v.Zoom) - v.Left, worldY(lat, v.Zoom) - v.Top
}

// MetersToPixels converts a ground distance at lat to pixels.
func (v Viewport) MetersToPixels(meters, lat float64) float64 {
	perPixel := earthCircumference * math.Cos(lat*math.Pi/180) / worldSize(v.Zoom)
	return meters / perPixel
}

// TileCoord addresses a tile.
type TileCoord struct {
	Z, X, Y int
}

// Tiles lists the tiles covering the viewport in row order.
func (v Viewport) Tiles() []TileCoord {
	minTX := int(math.Floor(v.Left / TileSize))
	maxTX := int(math.Floor((v.Left + float64(v.Width) - 1) / TileSize))
	minTY := int(math.Floor(v.Top / TileSize))
	maxTY := int(math.Floor((v.Top + float64(v.Height) - 1) / TileSize))
	n := 1 << v.Zoom
	var out []TileCoord
	for ty := minTY; ty <= maxTY; ty++ {
		if ty < 0 || ty >= n {
			continue
		}
		for tx := minTX; tx <= maxTX; tx++ {
			out = append(out, TileCoord{Z: v.Zoom, X: tx, Y: ty})
		}
	}
	return out
}

// TileFetcher downloads raster tiles.
type TileFetcher struct {
	client     *http.Client
	urlPattern string
	subdomains []string
	userAgent  string
	workers    int
	rr         atomic.Uint32
}

// TileOption configures a TileFetcher.
type TileOption func(*TileFetcher)

// WithTileURL sets the URL pattern with {s}, {z}, {x} and {y} placeholders.
func WithTileURL(pattern string) TileOption {
	return func(f *TileFetcher) { f.urlPattern = pattern }
}

// WithWorkers bounds the number of concurrent downloads.
func WithWorkers(n int) TileOption {
	return func(f *TileFetcher) {
		if n > 0 {
			f.workers = n
		}
	}
}

// NewTileFetcher returns a fetcher for the Carto Voyager tiles. A nil
// client uses one with a 20 s timeout.
func NewTileFetcher(client *http.Client, opts ...TileOption) *TileFetcher {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	f := &TileFetcher{
		client:     client,
		urlPattern: DefaultTileURL,
		subdomains: defaultSubdomains,
		userAgent:  defaultUserAgent,
		workers:    defaultWorkers,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// URL returns the address of a tile. Subdomains rotate round robin.
func (f *TileFetcher) URL(t TileCoord) string {
	n := 1 << t.Z
	x := ((t.X % n) + n) % n
	s := f.subdomains[int(f.rr.Add(1)-1)%len(f.subdomains)]
	r := strings.NewReplacer("{s}", s, "{z}", fmt.Sprint(t.Z), "{x}", fmt.Sprint(x), "{y}", fmt.Sprint(t.Y))
	return r.Replace(f.urlPattern)
}

// Fetch downloads one tile.
func (f *TileFetcher) Fetch(ctx context.Context, t TileCoord) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL(t), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", f.userAgent)
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tile %d/%d/%d: %w", t.Z, t.X, t.Y, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tile %d/%d/%d: %s", t.Z, t.X, t.Y, resp.Status)
	}
	img, _, err := image.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("tile %d/%d/%d: decode: %w", t.Z, t.X, t.Y, err)
	}
	return img, nil
}

// Stitch fetches every tile of v and draws them on a new canvas. The first
// failing tile cancels the others and is returned.
func (f *TileFetcher) Stitch(ctx context.Context, v Viewport) (*image.RGBA, error) {
	canvas := image.NewRGBA(image.Rect(0, 0, v.Width, v.Height))
	draw.Draw(canvas, canvas.Bounds(), &image.Uniform{C: color.RGBA{0xE8, 0xE8, 0xE8, 0xFF}}, image.Point{}, draw.Src)

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(f.workers)
	for _, t := range v.Tiles() {
		t := t
		g.Go(func() error {
			tile, err := f.Fetch(gctx, t)
			if err != nil {
				return err
			}
			x := int(math.Round(float64(t.X*TileSize) - v.Left))
			y := int(math.Round(float64(t.Y*TileSize) - v.Top))
			mu.Lock()
			draw.Draw(canvas, image.Rect(x, y, x+TileSize, y+TileSize), tile, tile.Bounds().Min, draw.Src)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return canvas, nil
}
