package seo

import (
	"html/template"
	"strings"
)

type OpenGraph struct {
	Title       string
	Description string
	Image       string
	Type        string
	URL         string
	Locale      string
	SiteName    string
}

type Twitter struct {
	Card  string
	Site  string
	Image string
}

// Alternate is an hreflang link.
type Alternate struct {
	Lang string
	Href string
}

// Meta is everything a page puts in its <head>. Pages build one value and
// hand it to the template.
type Meta struct {
	Lang        string
	Title       string
	Description string
	Canonical   string
	Robots      string
	OG          OpenGraph
	Twitter     Twitter
	Alternates  []Alternate
	JSONLD      []string
}

// Absolute joins base and path into an absolute URL. An empty base keeps the
// path site-relative.
func Absolute(base, path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	base = strings.TrimRight(base, "/")
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return base + path
}

// WithJSONLD appends each schema serialized as JSON.
func (m Meta) WithJSONLD(schemas ...map[string]any) Meta {
	out := m
	out.JSONLD = append([]string(nil), m.JSONLD...)
	for _, s := range schemas {
		if j := JSON(s); j != "" {
			out.JSONLD = append(out.JSONLD, j)
		}
	}
	return out
}

// Scripts returns the JSON-LD payloads typed for a script element.
func (m Meta) Scripts() []template.JS {
	out := make([]template.JS, 0, len(m.JSONLD))
	for _, s := range m.JSONLD {
		out = append(out, template.JS(s))
	}
	return out
}
