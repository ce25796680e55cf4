package sitedata

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

const (
	defaultFetchTimeout = 10 * time.Second
	maxAssetBytes       = 4 << 20
)

// DirFetcher reads assets from a filesystem rooted at the public directory.
type DirFetcher struct {
	fsys fs.FS
}

// NewDirFetcher serves assets from dir.
func NewDirFetcher(dir string) *DirFetcher {
	return &DirFetcher{fsys: os.DirFS(dir)}
}

// NewFSFetcher serves assets from fsys.
func NewFSFetcher(fsys fs.FS) *DirFetcher {
	return &DirFetcher{fsys: fsys}
}

// Fetch reads path from the directory.
func (d *DirFetcher) Fetch(_ context.Context, path string) ([]byte, error) {
	path = normalizePath(path)
	if !fs.ValidPath(path) {
		return nil, fmt.Errorf("invalid asset path %q", path)
	}
	b, err := fs.ReadFile(d.fsys, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

// HTTPFetcher issues GET requests relative to a base URL, the way a browser
// loads the static JSON next to the site.
type HTTPFetcher struct {
	baseURL string
	http    *http.Client
}

// NewHTTPFetcher builds a fetcher for baseURL. A nil client gets a default with timeout.
func NewHTTPFetcher(baseURL string, client *http.Client) *HTTPFetcher {
	if client == nil {
		client = &http.Client{Timeout: defaultFetchTimeout}
	}
	return &HTTPFetcher{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http:    client,
	}
}

// Fetch GETs baseURL/path. Non-2xx answers are errors.
func (h *HTTPFetcher) Fetch(ctx context.Context, path string) ([]byte, error) {
	endpoint, err := url.JoinPath(h.baseURL, normalizePath(path))
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := h.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxAssetBytes))
}
