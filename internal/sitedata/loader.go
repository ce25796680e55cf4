package sitedata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"isoatthetop.com/web/internal/observability"
)

// ErrNotFound is returned by fetchers when the asset does not exist.
var ErrNotFound = errors.New("sitedata: not found")

// Fetcher retrieves the raw bytes of a site asset such as "data/weeks.json".
type Fetcher interface {
	Fetch(ctx context.Context, path string) ([]byte, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context, path string) ([]byte, error)

// Fetch calls f.
func (f FetcherFunc) Fetch(ctx context.Context, path string) ([]byte, error) {
	return f(ctx, path)
}

// Loader memoizes assets per path for the lifetime of the process.
// Concurrent callers asking for a path that is still loading share the single
// in-flight fetch. Failed fetches are reported to every waiter and not cached.
type Loader struct {
	fetcher Fetcher
	group   singleflight.Group

	mu    sync.RWMutex
	cache map[string][]byte
}

// NewLoader wraps fetcher with the per-path cache.
func NewLoader(fetcher Fetcher) *Loader {
	return &Loader{fetcher: fetcher, cache: map[string][]byte{}}
}

// Fetch returns the cached bytes for path, fetching them once if needed.
// The returned slice is shared and must not be modified.
func (l *Loader) Fetch(ctx context.Context, path string) ([]byte, error) {
	path = normalizePath(path)
	if path == "" {
		return nil, fmt.Errorf("sitedata: empty asset path")
	}
	if b, ok := l.cached(path); ok {
		observability.ObserveDataCache(path, "hit")
		return b, nil
	}
	v, err, _ := l.group.Do(path, func() (any, error) {
		if b, ok := l.cached(path); ok {
			return b, nil
		}
		observability.ObserveDataCache(path, "miss")
		b, err := l.fetcher.Fetch(ctx, path)
		if err != nil {
			observability.ObserveDataCache(path, "error")
			return nil, fmt.Errorf("sitedata: fetch %s: %w", path, err)
		}
		l.mu.Lock()
		l.cache[path] = b
		l.mu.Unlock()
		return b, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

func (l *Loader) cached(path string) ([]byte, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	b, ok := l.cache[path]
	return b, ok
}

// GetJSON fetches path through loader and decodes it into T.
func GetJSON[T any](ctx context.Context, loader *Loader, path string) (T, error) {
	var out T
	b, err := loader.Fetch(ctx, path)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(b, &out); err != nil {
		return out, fmt.Errorf("sitedata: decode %s: %w", normalizePath(path), err)
	}
	return out, nil
}

func normalizePath(p string) string {
	return strings.TrimLeft(strings.TrimSpace(p), "/")
}
