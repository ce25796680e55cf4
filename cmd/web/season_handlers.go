package main

import (
	"bytes"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"isoatthetop.com/web/internal/contact"
	handlersPkg "isoatthetop.com/web/internal/handlers"
	mw "isoatthetop.com/web/internal/middleware"
	"isoatthetop.com/web/internal/observability"
	"isoatthetop.com/web/internal/ratesheet"
	"isoatthetop.com/web/internal/routing"
	"isoatthetop.com/web/internal/sitedata"
)

// seasonFromRequest resolves the {segment} of the route. Segments of the
// other locale are accepted and answered with a redirect to the canonical
// one; unknown segments get the 404 page. ok is false when a response was
// written.
func seasonFromRequest(w http.ResponseWriter, r *http.Request) (routing.Locale, routing.Season, bool) {
	locale := mw.LocaleFrom(r.Context())
	segment := chi.URLParam(r, "segment")
	season, ok := routing.SeasonForSegment(segment)
	if !ok {
		renderNotFound(w, r, locale)
		return "", "", false
	}
	if canonical := routing.SegmentFor(locale, season); canonical != segment {
		target := strings.Replace(r.URL.Path, "/"+segment+"/", "/"+canonical+"/", 1)
		if r.URL.RawQuery != "" {
			target += "?" + r.URL.RawQuery
		}
		code := http.StatusMovedPermanently
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			code = http.StatusPermanentRedirect
		}
		http.Redirect(w, r, target, code)
		return "", "", false
	}
	return locale, season, true
}

// contentFor loads the page content with the configured endpoint override.
func contentFor(r *http.Request, locale routing.Locale) sitedata.Content {
	content := site.Content(r.Context(), locale)
	if formEndpoint != "" {
		content.Contact.FormEndpoint = formEndpoint
	}
	return content
}

// SeasonHandler renders the winter or summer page.
func SeasonHandler(w http.ResponseWriter, r *http.Request) {
	locale, season, ok := seasonFromRequest(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()

	// a gallery toggle becomes the preference, else the page season does
	gallery := season
	if g, ok := routing.ParseSeason(q.Get(handlersPkg.QueryGallery)); ok {
		gallery = g
	}
	prefs.Set(w, gallery)

	banner, _ := flash.Pop(w, r)
	vm := handlersPkg.BuildSeasonPage(i18nBundle, handlersPkg.SeasonInput{
		Locale:        locale,
		Season:        season,
		GallerySeason: gallery,
		Content:       contentFor(r, locale),
		Now:           nowFunc(),
		Query:         q,
		CSRFToken:     mw.CSRFToken(r.Context()),
		Banner:        banner,
		BaseURL:       siteBase(r),
		Analytics:     siteAnalytics,
	})
	renderPage(w, r, http.StatusOK, vm)
}

// ContactHandler accepts the stay request form. Without a form endpoint the
// visitor is sent to their mail client; otherwise the outcome banner is
// returned to htmx or carried to the page in a flash cookie.
func ContactHandler(w http.ResponseWriter, r *http.Request) {
	locale, season, ok := seasonFromRequest(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		mw.WriteError(w, r, http.StatusBadRequest, "invalid form")
		return
	}
	cfg := site.Contact(r.Context(), locale)
	if formEndpoint != "" {
		cfg.FormEndpoint = formEndpoint
	}

	res, err := contactSvc.Submit(r.Context(), contact.Request{
		Locale:   locale,
		Contact:  cfg,
		ClientIP: mw.ClientIP(r),
		Values:   r.PostForm,
	})
	if err != nil && !errors.Is(err, contact.ErrRateLimited) {
		observability.FromContext(r.Context()).Info("contact form not delivered", zap.String("outcome", res.Outcome), zap.Error(err))
	}

	if res.Outcome == contact.OutcomeMailto {
		if mw.IsHTMX(r.Context()) {
			w.Header().Set("HX-Redirect", res.MailtoURL)
			w.WriteHeader(http.StatusNoContent)
			return
		}
		http.Redirect(w, r, res.MailtoURL, http.StatusSeeOther)
		return
	}

	if mw.IsHTMX(r.Context()) {
		// htmx only swaps 2xx responses
		renderTemplate(w, r, http.StatusOK, "frag_contact_banner", handlersPkg.BannerView{Lang: string(locale), Banner: res.Banner})
		return
	}
	if err := flash.Set(w, res.Banner); err != nil {
		observability.FromContext(r.Context()).Error("set flash", zap.Error(err))
	}
	target := routing.SeasonURL(locale, season) + "#" + routing.SectionID(locale, routing.SectionContact)
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// RateSheetHandler serves the upcoming weeks of a season as a PDF.
func RateSheetHandler(w http.ResponseWriter, r *http.Request) {
	locale, season, ok := seasonFromRequest(w, r)
	if !ok {
		return
	}
	sheet := handlersPkg.BuildRateSheet(i18nBundle, locale, season, contentFor(r, locale), nowFunc())
	var buf bytes.Buffer
	if err := ratesheet.Render(&buf, sheet); err != nil {
		mw.WriteError(w, r, http.StatusInternalServerError, "rate sheet: "+err.Error())
		return
	}
	filename := "isoatthetop-" + routing.SegmentFor(locale, season) + ".pdf"
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `inline; filename="`+filename+`"`)
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
