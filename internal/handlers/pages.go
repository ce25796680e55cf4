package handlers

import (
	"isoatthetop.com/web/internal/nav"
	"isoatthetop.com/web/internal/routing"
	"isoatthetop.com/web/internal/seo"
)

// Translator looks up UI strings. *i18n.Bundle satisfies it.
type Translator interface {
	T(lang, key string) string
}

// PageData is the view model of the shared layout.
type PageData struct {
	// Page names the content template the layout renders.
	Page      string
	Title     string
	Lang      string
	Locale    routing.Locale
	SEO       seo.Meta
	Analytics Analytics

	Path        string
	Brand       string
	Year        int
	Nav         []nav.RenderedItem
	Breadcrumbs []nav.Crumb
	Seasons     []nav.SeasonSwitch
	OtherLocale LocaleLink

	// Per-page payloads, one of which is set.
	Season   *SeasonView
	Legal    *LegalView
	NotFound *NotFoundView
}

// LocaleLink points at the same page in the other language.
type LocaleLink struct {
	Locale routing.Locale
	Href   string
}

// otherLocale builds the language switch for a page whose path in each locale
// is given by path.
func otherLocale(locale routing.Locale, path func(routing.Locale) string) LocaleLink {
	other := locale.Other()
	return LocaleLink{Locale: other, Href: path(other)}
}

// alternates lists hreflang links for every locale plus x-default.
func alternates(base string, path func(routing.Locale) string) []seo.Alternate {
	out := make([]seo.Alternate, 0, len(routing.Locales)+1)
	for _, l := range routing.Locales {
		out = append(out, seo.Alternate{Lang: string(l), Href: seo.Absolute(base, path(l))})
	}
	return append(out, seo.Alternate{Lang: "x-default", Href: seo.Absolute(base, path(routing.LocaleFR))})
}

func crumbsLD(tr Translator, base string, locale routing.Locale, crumbs []nav.Crumb) map[string]any {
	items := make([]seo.BreadcrumbItem, 0, len(crumbs))
	for _, c := range crumbs {
		name := c.Label
		if c.LabelKey != "" {
			name = tr.T(string(locale), c.LabelKey)
		}
		items = append(items, seo.BreadcrumbItem{Name: name, Item: seo.Absolute(base, c.Href)})
	}
	return seo.BreadcrumbList(items)
}
