// Command mapbase downloads the background tiles of the access map and draws
// the routes and markers on it.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"isoatthetop.com/web/internal/mapgen"
	"isoatthetop.com/web/internal/observability"
)

func main() {
	logger, err := observability.NewLogger(true)
	if err != nil {
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	logger.Info("rendering base map", zap.Int("width", mapgen.DefaultCanvas.Width), zap.Int("height", mapgen.DefaultCanvas.Height))
	img, err := mapgen.RenderBase(ctx, mapgen.NewTileFetcher(nil), mapgen.DefaultCanvas, mapgen.Cities, mapgen.Destination)
	if err != nil {
		logger.Fatal("render base map", zap.Error(err))
	}
	if err := mapgen.WritePNG(mapgen.BasePath, img); err != nil {
		logger.Fatal("write base map", zap.Error(err))
	}
	logger.Info("base map written", zap.String("path", mapgen.BasePath))
}
