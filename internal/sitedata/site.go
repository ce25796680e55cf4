package sitedata

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"isoatthetop.com/web/internal/routing"
)

// Content is everything the season page renders, with defaults applied.
type Content struct {
	Contact ContactConfig
	Weeks   []WeekRow
	Media   []MediaItem
	Reviews ReviewsData
}

// Site loads page content through a shared Loader.
type Site struct {
	loader *Loader
	logger *zap.Logger
}

// NewSite builds a Site. A nil logger is replaced by a no-op logger.
func NewSite(loader *Loader, logger *zap.Logger) *Site {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Site{loader: loader, logger: logger}
}

// Contact loads config.json merged over the defaults for locale.
func (s *Site) Contact(ctx context.Context, locale routing.Locale) ContactConfig {
	base := DefaultContact(locale)
	cfg, err := GetJSON[ContactConfig](ctx, s.loader, ConfigPath)
	if err != nil {
		s.logger.Warn("failed to load site content, keeping defaults", zap.String("path", ConfigPath), zap.Error(err))
		return base
	}
	return base.Merge(cfg)
}

// Content loads the four content files concurrently. A file that fails to
// load is logged and replaced by its default value.
func (s *Site) Content(ctx context.Context, locale routing.Locale) Content {
	var out Content
	var g errgroup.Group
	g.Go(func() error {
		out.Contact = s.Contact(ctx, locale)
		return nil
	})
	g.Go(func() error {
		rows, err := GetJSON[[]WeekRow](ctx, s.loader, WeeksPath)
		if err != nil {
			s.logger.Warn("failed to load site content", zap.String("path", WeeksPath), zap.Error(err))
			rows = nil
		}
		out.Weeks = rows
		return nil
	})
	g.Go(func() error {
		items, err := GetJSON[[]MediaItem](ctx, s.loader, MediaPath)
		if err != nil {
			s.logger.Warn("failed to load site content", zap.String("path", MediaPath), zap.Error(err))
			items = nil
		}
		out.Media = items
		return nil
	})
	g.Go(func() error {
		data, err := GetJSON[ReviewsData](ctx, s.loader, ReviewsPath)
		if err != nil {
			s.logger.Warn("failed to load site content", zap.String("path", ReviewsPath), zap.Error(err))
			data = ReviewsData{}
		}
		out.Reviews = data
		return nil
	})
	_ = g.Wait()
	return out
}

// UpcomingWeeks returns the weeks of season whose start date is strictly
// after the calendar day of now. Rows with unparseable dates are skipped.
func UpcomingWeeks(rows []WeekRow, season routing.Season, now time.Time) []WeekRow {
	loc := now.Location()
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, loc)
	out := make([]WeekRow, 0, len(rows))
	for _, w := range rows {
		if w.Season != season {
			continue
		}
		start, err := w.StartDate(loc)
		if err != nil {
			continue
		}
		if start.After(today) {
			out = append(out, w)
		}
	}
	return out
}

// MediaFor returns the gallery items of season in file order.
func MediaFor(items []MediaItem, season routing.Season) []MediaItem {
	out := make([]MediaItem, 0, len(items))
	for _, it := range items {
		if it.Season == season {
			out = append(out, it)
		}
	}
	return out
}
