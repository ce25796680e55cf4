package handlers

import (
	"time"

	"isoatthetop.com/web/internal/nav"
	"isoatthetop.com/web/internal/routing"
	"isoatthetop.com/web/internal/seo"
	"isoatthetop.com/web/internal/sitedata"
)

// NotFoundView is the payload of the 404 page.
type NotFoundView struct {
	HomeHref string
}

// BuildNotFoundPage builds the localized 404 page model.
func BuildNotFoundPage(tr Translator, locale routing.Locale, now time.Time, a Analytics) PageData {
	lang := string(locale)
	title := "404 · " + sitedata.DefaultBrandName
	return PageData{
		Page:   "notfound",
		Title:  title,
		Lang:   lang,
		Locale: locale,
		SEO: seo.Meta{
			Lang:        lang,
			Title:       title,
			Description: tr.T(lang, "notfound.message"),
			Robots:      "noindex",
		},
		Analytics:   a,
		Path:        routing.LocaleRoot(locale) + "404/",
		Brand:       sitedata.DefaultBrandName,
		Year:        now.Year(),
		Seasons:     nav.Seasons(locale, ""),
		OtherLocale: LocaleLink{Locale: locale.Other(), Href: routing.LocaleRoot(locale.Other())},
		NotFound:    &NotFoundView{HomeHref: routing.LocaleRoot(locale)},
	}
}
