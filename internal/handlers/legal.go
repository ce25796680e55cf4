package handlers

import (
	"html/template"
	"net/url"
	"strings"
	"time"

	"isoatthetop.com/web/internal/cms"
	"isoatthetop.com/web/internal/format"
	"isoatthetop.com/web/internal/nav"
	"isoatthetop.com/web/internal/routing"
	"isoatthetop.com/web/internal/seo"
	"isoatthetop.com/web/internal/sitedata"
)

// LegalView is the payload of the legal notice page.
type LegalView struct {
	Title     string
	HTML      template.HTML
	UpdatedAt string

	Email           string
	EmailHref       string
	Phone           string
	TelHref         template.URL
	ShowPhone       bool
	RevealPhoneHref string
}

// LegalInput is what a legal page request resolved to.
type LegalInput struct {
	Locale    routing.Locale
	Page      cms.ContentPage
	Contact   sitedata.ContactConfig
	Now       time.Time
	Query     url.Values
	BaseURL   string
	Analytics Analytics
}

// LegalVars are the placeholders the legal markdown may use.
func LegalVars(c sitedata.ContactConfig, now time.Time) map[string]string {
	brand := strings.TrimSpace(c.BrandName)
	if brand == "" {
		brand = sitedata.DefaultBrandName
	}
	email := strings.TrimSpace(c.Email)
	if email == "" {
		email = sitedata.DefaultEmail
	}
	return map[string]string{
		"brand":    brand,
		"locality": c.AddressLocality,
		"email":    email,
		"phone":    PhoneValue(c.Phone),
		"year":     now.Format("2006"),
	}
}

// BuildLegalPage builds the legal notice page model.
func BuildLegalPage(tr Translator, in LegalInput) PageData {
	lang := string(in.Locale)
	vars := LegalVars(in.Contact, in.Now)
	path := routing.LegalURL(in.Locale)
	phone := vars["phone"]

	v := &LegalView{
		Title:           firstNonEmpty(in.Page.Title, tr.T(lang, "legal.title")),
		HTML:            in.Page.HTML,
		Email:           vars["email"],
		EmailHref:       format.MailtoHref(vars["email"]),
		Phone:           phone,
		TelHref:         template.URL(format.TelHref(phone)),
		ShowPhone:       in.Query.Get(QueryReveal) == "phone",
		RevealPhoneHref: path + "?" + url.Values{QueryReveal: {"phone"}}.Encode(),
	}
	if !in.Page.UpdatedAt.IsZero() {
		v.UpdatedAt = format.Date(in.Page.UpdatedAt, in.Locale)
	}

	title := firstNonEmpty(in.Page.SEO.Title, v.Title) + " · " + vars["brand"]
	desc := firstNonEmpty(in.Page.Description, tr.T(lang, "legal.description"))
	canonical := seo.Absolute(in.BaseURL, path)
	crumbs := nav.Breadcrumbs(in.Locale, "", true)
	meta := seo.Meta{
		Lang:        lang,
		Title:       title,
		Description: desc,
		Canonical:   canonical,
		OG: seo.OpenGraph{
			Title:       title,
			Description: desc,
			Type:        "article",
			URL:         canonical,
			Locale:      ogLocale(in.Locale),
			SiteName:    vars["brand"],
		},
		Twitter:    seo.Twitter{Card: "summary"},
		Alternates: alternates(in.BaseURL, routing.LegalURL),
	}.WithJSONLD(crumbsLD(tr, in.BaseURL, in.Locale, crumbs))

	return PageData{
		Page:        "legal",
		Title:       title,
		Lang:        lang,
		Locale:      in.Locale,
		SEO:         meta,
		Analytics:   in.Analytics,
		Path:        path,
		Brand:       vars["brand"],
		Year:        in.Now.Year(),
		Breadcrumbs: crumbs,
		Seasons:     nav.Seasons(in.Locale, ""),
		OtherLocale: otherLocale(in.Locale, routing.LegalURL),
		Legal:       v,
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
