package cms

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"golang.org/x/net/html"
)

const maxDescriptionRunes = 160

var (
	markdown = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Typographer),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	)
	policy = newPolicy()
)

func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("id").OnElements("h1", "h2", "h3", "h4")
	p.RequireNoFollowOnLinks(false)
	return p
}

// RenderMarkdown converts markdown to sanitized HTML.
func RenderMarkdown(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("cms: render markdown: %w", err)
	}
	return template.HTML(policy.SanitizeBytes(buf.Bytes())), nil
}

func renderPage(page *ContentPage) error {
	if page.Format == "html" {
		page.HTML = template.HTML(policy.Sanitize(page.Body))
	} else {
		out, err := RenderMarkdown(page.Body)
		if err != nil {
			return err
		}
		page.HTML = out
	}
	page.Description = firstNonEmpty(page.SEO.Description, page.Summary, Excerpt(string(page.HTML)))
	return nil
}

// Excerpt returns the text of the first paragraph of an HTML fragment,
// whitespace-collapsed and cut to a meta description length.
func Excerpt(fragment string) string {
	z := html.NewTokenizer(strings.NewReader(fragment))
	var b strings.Builder
	inParagraph := false
	for {
		switch z.Next() {
		case html.ErrorToken:
			return truncate(b.String())
		case html.StartTagToken:
			name, _ := z.TagName()
			if string(name) == "p" {
				inParagraph = true
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			if string(name) == "p" && inParagraph {
				if s := strings.TrimSpace(b.String()); s != "" {
					return truncate(s)
				}
				inParagraph = false
			}
		case html.TextToken:
			if inParagraph {
				b.Write(z.Text())
			}
		}
	}
}

func truncate(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if utf8.RuneCountInString(s) <= maxDescriptionRunes {
		return s
	}
	runes := []rune(s)
	cut := string(runes[:maxDescriptionRunes-1])
	if i := strings.LastIndex(cut, " "); i > maxDescriptionRunes/2 {
		cut = cut[:i]
	}
	return cut + "…"
}

// Expand substitutes {key} placeholders in the page body before rendering.
// It returns a copy and leaves the cached page untouched.
func Expand(page ContentPage, vars map[string]string) (ContentPage, error) {
	if len(vars) == 0 {
		return page, nil
	}
	pairs := make([]string, 0, len(vars)*2)
	for k, v := range vars {
		pairs = append(pairs, "{"+k+"}", v)
	}
	out := page
	out.Body = strings.NewReplacer(pairs...).Replace(page.Body)
	if err := renderPage(&out); err != nil {
		return ContentPage{}, err
	}
	return out, nil
}
