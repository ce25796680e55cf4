package main

import (
	"net/http"

	"go.uber.org/zap"

	"isoatthetop.com/web/internal/cms"
	handlersPkg "isoatthetop.com/web/internal/handlers"
	mw "isoatthetop.com/web/internal/middleware"
	"isoatthetop.com/web/internal/observability"
	"isoatthetop.com/web/internal/routing"
)

// LegalHandler renders the legal notice of the requested locale.
func LegalHandler(w http.ResponseWriter, r *http.Request) {
	locale := mw.LocaleFrom(r.Context())
	now := nowFunc()
	page, err := legalStore.Page(cms.KindLegal, routing.LegalSegment, string(locale))
	if err != nil {
		mw.WriteError(w, r, http.StatusInternalServerError, "legal page unavailable")
		return
	}
	contactCfg := site.Contact(r.Context(), locale)
	expanded, err := cms.Expand(page, handlersPkg.LegalVars(contactCfg, now))
	if err != nil {
		observability.FromContext(r.Context()).Warn("expand legal page", zap.Error(err))
		expanded = page
	}
	vm := handlersPkg.BuildLegalPage(i18nBundle, handlersPkg.LegalInput{
		Locale:    locale,
		Page:      expanded,
		Contact:   contactCfg,
		Now:       now,
		Query:     r.URL.Query(),
		BaseURL:   siteBase(r),
		Analytics: siteAnalytics,
	})
	renderPage(w, r, http.StatusOK, vm)
}
