// Command mapfinal annotates the base access map with the travel time cards
// and writes the PNG and its SVG overlay.
package main

import (
	"os"

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

	base, err := mapgen.ReadPNG(mapgen.BasePath)
	if err != nil {
		logger.Fatal("read base map", zap.Error(err))
	}

	pins := mapgen.Project(mapgen.Places(), mapgen.DefaultCanvas)
	for _, p := range pins {
		logger.Info("projected", zap.String("place", p.Name), zap.Int("x", p.X), zap.Int("y", p.Y))
	}
	layout := mapgen.BuildLayout(pins, mapgen.DefaultCanvas, mapgen.Destination.Key)

	out, err := mapgen.Annotate(base, layout)
	if err != nil {
		logger.Fatal("annotate map", zap.Error(err))
	}
	if err := mapgen.WritePNG(mapgen.FinalPath, out); err != nil {
		logger.Fatal("write map", zap.Error(err))
	}
	if err := mapgen.WriteSVGFile(mapgen.OverlayPath, layout); err != nil {
		logger.Fatal("write overlay", zap.Error(err))
	}
	logger.Info("map written", zap.String("png", mapgen.FinalPath), zap.String("svg", mapgen.OverlayPath))
}
