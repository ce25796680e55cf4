package main

import (
	"net/http"
	"net/url"
	"path"
	"strings"

	handlersPkg "isoatthetop.com/web/internal/handlers"
	mw "isoatthetop.com/web/internal/middleware"
	"isoatthetop.com/web/internal/routing"
)

// ghpParam carries the original path through the not-found redirect.
const ghpParam = "ghp"

// RootHandler sends visitors to their language home.
func RootHandler(w http.ResponseWriter, r *http.Request) {
	target := routing.LocaleRoot(negotiateLocale(r))
	if r.URL.RawQuery != "" {
		target += "?" + r.URL.RawQuery
	}
	http.Redirect(w, r, target, http.StatusFound)
}

// LocaleHomeHandler redirects to the preferred season page, or back to the
// page a not-found redirect came from.
func LocaleHomeHandler(w http.ResponseWriter, r *http.Request) {
	locale := mw.LocaleFrom(r.Context())
	if target, ok := ghpTarget(locale, r.URL.Query().Get(ghpParam)); ok {
		http.Redirect(w, r, target, http.StatusFound)
		return
	}
	stored, ok := prefs.Get(r)
	season := routing.ResolveSeason(stored, ok, nowFunc())
	http.Redirect(w, r, routing.SeasonURL(locale, season), http.StatusFound)
}

// ghpTarget validates an original path and rebuilds it from known routes.
// Only season and legal pages of locale qualify; an optional project prefix
// is dropped.
func ghpTarget(locale routing.Locale, raw string) (string, bool) {
	if raw == "" {
		return "", false
	}
	u, err := url.Parse(raw)
	if err != nil || u.IsAbs() || u.Host != "" || !strings.HasPrefix(u.Path, "/") {
		return "", false
	}
	parts := splitPath(u.Path)
	if len(parts) >= 2 {
		if _, ok := routing.ParseLocale(parts[1]); ok {
			if _, first := routing.ParseLocale(parts[0]); !first {
				parts = parts[1:]
			}
		}
	}
	if len(parts) != 2 || parts[0] != string(locale) {
		return "", false
	}
	var target string
	if parts[1] == routing.LegalSegment {
		target = routing.LegalURL(locale)
	} else if season, ok := routing.SeasonForSegment(parts[1]); ok {
		target = routing.SeasonURL(locale, season)
	} else {
		return "", false
	}
	if u.RawQuery != "" {
		q := u.Query()
		q.Del(ghpParam)
		if enc := q.Encode(); enc != "" {
			target += "?" + enc
		}
	}
	return target, true
}

// FallbackHandler handles paths outside any locale. The locale comes from
// the path, either first or after a project prefix, else from
// Accept-Language. The visitor is redirected to that locale home with the
// original path in ghp. The site is served from the root, so a project
// prefix stays in ghp only.
func FallbackHandler(w http.ResponseWriter, r *http.Request) {
	parts := splitPath(r.URL.Path)
	if len(parts) > 0 && path.Ext(parts[len(parts)-1]) != "" {
		// missing files are not pages
		http.NotFound(w, r)
		return
	}
	var locale routing.Locale
	if len(parts) >= 2 {
		if l, ok := routing.ParseLocale(parts[1]); ok {
			locale = l
		}
	}
	if locale == "" && len(parts) > 0 {
		if l, ok := routing.ParseLocale(parts[0]); ok {
			locale = l
		}
	}
	if locale == "" {
		locale = negotiateLocale(r)
		w.Header().Add("Vary", "Accept-Language")
	}

	original := r.URL.Path
	if r.URL.RawQuery != "" {
		original += "?" + r.URL.RawQuery
	}
	target := routing.LocaleRoot(locale) + "?" + url.Values{ghpParam: {original}}.Encode()
	http.Redirect(w, r, target, http.StatusFound)
}

// LocalizedNotFoundHandler handles unknown paths under a valid locale.
// Paths missing their trailing slash are redirected first.
func LocalizedNotFoundHandler(w http.ResponseWriter, r *http.Request) {
	p := r.URL.Path
	if r.Method == http.MethodGet && !strings.HasSuffix(p, "/") && path.Ext(p) == "" {
		target := p + "/"
		if r.URL.RawQuery != "" {
			target += "?" + r.URL.RawQuery
		}
		http.Redirect(w, r, target, http.StatusMovedPermanently)
		return
	}
	renderNotFound(w, r, mw.LocaleFrom(r.Context()))
}

// NotFoundPageHandler serves /{locale}/404/.
func NotFoundPageHandler(w http.ResponseWriter, r *http.Request) {
	renderNotFound(w, r, mw.LocaleFrom(r.Context()))
}

func renderNotFound(w http.ResponseWriter, r *http.Request, locale routing.Locale) {
	vm := handlersPkg.BuildNotFoundPage(i18nBundle, locale, nowFunc(), siteAnalytics)
	renderPage(w, r, http.StatusNotFound, vm)
}

func negotiateLocale(r *http.Request) routing.Locale {
	if i18nBundle == nil {
		return routing.LocaleEN
	}
	return routing.LocaleFromID(i18nBundle.Resolve(r.Header.Get("Accept-Language")))
}

func splitPath(p string) []string {
	var parts []string
	for _, s := range strings.Split(p, "/") {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return parts
}
