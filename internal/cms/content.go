package cms

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned when a page cannot be located.
var ErrNotFound = errors.New("cms: not found")

// ContentPage is a localized markdown page with its rendering.
type ContentPage struct {
	Kind      string
	Slug      string
	Lang      string
	Title     string
	Summary   string
	Body      string
	Format    string // markdown unless the front matter says html
	UpdatedAt time.Time
	SEO       ContentSEO

	// HTML is the sanitized rendering of Body.
	HTML template.HTML
	// Description is SEO.Description or, when empty, derived from HTML.
	Description string
}

// ContentSEO overrides the page metadata.
type ContentSEO struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

type frontMatter struct {
	Title     string     `yaml:"title"`
	Summary   string     `yaml:"summary"`
	Format    string     `yaml:"format"`
	UpdatedAt string     `yaml:"updated_at"`
	SEO       ContentSEO `yaml:"seo"`
}

const cacheTTL = 5 * time.Minute

var dateLayouts = []string{time.RFC3339, "2006-01-02", "2006/01/02"}

// Store reads pages laid out as <kind>/<lang>/<slug>.md under a content
// directory. Built-in pages are the last resort.
type Store struct {
	files fs.FS
	now   func() time.Time

	mu    sync.RWMutex
	pages map[string]cacheEntry
}

type cacheEntry struct {
	page    ContentPage
	expires time.Time
}

// NewStore builds a Store rooted at dir ("content" when empty).
func NewStore(dir string) *Store {
	if dir = strings.TrimSpace(dir); dir == "" {
		dir = "content"
	}
	return NewFSStore(os.DirFS(dir))
}

// NewFSStore builds a Store over files.
func NewFSStore(files fs.FS) *Store {
	return &Store{files: files, now: time.Now, pages: map[string]cacheEntry{}}
}

// Page returns the rendered page kind/slug in lang. Languages are tried in
// the order lang, en, fr.
func (s *Store) Page(kind, slug, lang string) (ContentPage, error) {
	kind = strings.ToLower(strings.TrimSpace(kind))
	slug, ok := cleanSlug(slug)
	if kind == "" || !ok {
		return ContentPage{}, ErrNotFound
	}
	lang = baseLang(lang)

	key := kind + "/" + lang + "/" + slug
	s.mu.RLock()
	entry, hit := s.pages[key]
	s.mu.RUnlock()
	if hit && s.now().Before(entry.expires) {
		return entry.page, nil
	}

	page, err := s.find(kind, slug, lang)
	if err != nil {
		return ContentPage{}, err
	}
	if err := renderPage(&page); err != nil {
		return ContentPage{}, err
	}
	s.mu.Lock()
	s.pages[key] = cacheEntry{page: page, expires: s.now().Add(cacheTTL)}
	s.mu.Unlock()
	return page, nil
}

func (s *Store) find(kind, slug, lang string) (ContentPage, error) {
	for _, l := range languages(lang) {
		name := path.Join(kind, l, slug+".md")
		data, err := fs.ReadFile(s.files, name)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return ContentPage{}, err
		}
		page, err := parsePage(data, kind, slug, l)
		if err != nil {
			return ContentPage{}, fmt.Errorf("cms: %s: %w", name, err)
		}
		if page.UpdatedAt.IsZero() {
			if info, err := fs.Stat(s.files, name); err == nil {
				page.UpdatedAt = info.ModTime()
			}
		}
		return page, nil
	}
	return builtinPage(kind, slug, lang)
}

// languages is the lookup order for lang.
func languages(lang string) []string {
	out := []string{lang}
	for _, l := range []string{"en", "fr"} {
		if l != lang {
			out = append(out, l)
		}
	}
	return out
}

func parsePage(raw []byte, kind, slug, lang string) (ContentPage, error) {
	head, body := cutFrontMatter(raw)
	var front frontMatter
	if len(bytes.TrimSpace(head)) > 0 {
		if err := yaml.Unmarshal(head, &front); err != nil {
			return ContentPage{}, fmt.Errorf("front matter: %w", err)
		}
	}
	format := strings.ToLower(strings.TrimSpace(front.Format))
	if format == "" {
		format = "markdown"
	}
	return ContentPage{
		Kind:    kind,
		Slug:    slug,
		Lang:    lang,
		Title:   strings.TrimSpace(front.Title),
		Summary: strings.TrimSpace(front.Summary),
		Body:    string(body),
		Format:  format,
		SEO: ContentSEO{
			Title:       strings.TrimSpace(front.SEO.Title),
			Description: strings.TrimSpace(front.SEO.Description),
		},
		UpdatedAt: parseDate(front.UpdatedAt),
	}, nil
}

var fence = []byte("---")

// cutFrontMatter splits a leading "---" delimited YAML block from the body.
func cutFrontMatter(raw []byte) (head, body []byte) {
	raw = bytes.TrimPrefix(raw, []byte("\ufeff"))
	first, rest, ok := bytes.Cut(raw, []byte("\n"))
	if !ok || !bytes.Equal(bytes.TrimSpace(first), fence) {
		return nil, raw
	}
	for off := 0; off < len(rest); {
		line, next, _ := bytes.Cut(rest[off:], []byte("\n"))
		if bytes.Equal(bytes.TrimSpace(line), fence) {
			return rest[:off], bytes.TrimLeft(next, "\r\n")
		}
		off += len(line) + 1
	}
	return nil, raw
}

func parseDate(v string) time.Time {
	v = strings.TrimSpace(v)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return time.Time{}
}

func cleanSlug(slug string) (string, bool) {
	slug = strings.Trim(strings.ToLower(strings.TrimSpace(slug)), "/")
	if slug == "" || strings.Contains(slug, "..") || strings.ContainsAny(slug, `/\`) {
		return "", false
	}
	return slug, true
}

func baseLang(lang string) string {
	if strings.HasPrefix(strings.ToLower(strings.TrimSpace(lang)), "fr") {
		return "fr"
	}
	return "en"
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
