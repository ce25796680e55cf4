package handlers

import (
	"html/template"
	"net/url"
	"strconv"
	"strings"
	"time"

	"isoatthetop.com/web/internal/contact"
	"isoatthetop.com/web/internal/format"
	"isoatthetop.com/web/internal/lightbox"
	"isoatthetop.com/web/internal/nav"
	"isoatthetop.com/web/internal/routing"
	"isoatthetop.com/web/internal/seo"
	"isoatthetop.com/web/internal/sitedata"
)

// Query parameters understood by the season page.
const (
	QueryGallery = "gallery"
	QueryReveal  = "reveal"
	QueryPhoto   = "photo"
	QuerySlopes  = "slopes"
	QueryZoom    = "zoom"
)

// Isola 2000 resort coordinates.
const (
	resortLatitude  = 44.1847
	resortLongitude = 7.1583
)

// WeekView is a row of the pricing table.
type WeekView struct {
	Label         string
	Price         string
	Status        sitedata.WeekStatus
	StatusLabel   string
	Zones         []string
	HolidaysLabel string
}

// GalleryItem is a thumbnail linking to its lightbox view.
type GalleryItem struct {
	Src     string
	Alt     string
	Caption string
	Href    string
}

// GalleryView is the gallery section.
type GalleryView struct {
	Season  routing.Season
	Items   []GalleryItem
	Toggles []nav.SeasonSwitch
}

// ReviewView is a guest review.
type ReviewView struct {
	Excerpt  string
	TripType string
	Date     string
	Source   string
}

// ContactView is the contact section and form.
type ContactView struct {
	Brand     string
	Locality  string
	Email     string
	EmailHref string
	Phone     string
	TelHref   template.URL

	ShowPhone       bool
	ShowEmail       bool
	RevealPhoneHref string
	RevealEmailHref string

	FormAction      string
	RelayConfigured bool
	CSRFToken       string
	CSRFField       string
	HoneypotField   string
	Banner          BannerView
}

// BannerView is the form outcome banner, also rendered alone for htmx.
type BannerView struct {
	Lang   string
	Banner contact.Banner
}

// LightboxView is the viewer plus the links driving it.
type LightboxView struct {
	lightbox.State
	Lang        string
	CloseHref   string
	ZoomInHref  string
	ZoomOutHref string
	ResetHref   string
}

// SlopeMapView is the slope map teaser of the winter page.
type SlopeMapView struct {
	Src  string
	Alt  string
	Href string
}

// SeasonView is the payload of the season page.
type SeasonView struct {
	Locale  routing.Locale
	Season  routing.Season
	Segment string
	Path    string
	// Sections maps section keys to their HTML ids.
	Sections map[string]string

	HeroSrc       string
	Weeks         []WeekView
	Gallery       GalleryView
	SlopeMap      SlopeMapView
	Lightbox      LightboxView
	RatingText    string
	Reviews       []ReviewView
	Contact       ContactView
	RateSheetHref string
}

// SeasonInput is what a season page request resolved to.
type SeasonInput struct {
	Locale        routing.Locale
	Season        routing.Season
	GallerySeason routing.Season
	Content       sitedata.Content
	Now           time.Time
	Query         url.Values
	CSRFToken     string
	Banner        contact.Banner
	BaseURL       string
	Analytics     Analytics
}

// BuildSeasonView computes the season page payload.
func BuildSeasonView(in SeasonInput) SeasonView {
	locale, season := in.Locale, in.Season
	gallerySeason := in.GallerySeason
	if gallerySeason == "" {
		gallerySeason = season
	}
	path := routing.SeasonURL(locale, season)
	q := in.Query
	if q == nil {
		q = url.Values{}
	}

	v := SeasonView{
		Locale:        locale,
		Season:        season,
		Segment:       routing.SegmentFor(locale, season),
		Path:          path,
		Sections:      sectionIDs(locale),
		HeroSrc:       AssetPath(HeroImage(season)),
		RatingText:    RatingText(in.Content.Reviews, locale),
		RateSheetHref: path + "tarifs.pdf",
	}

	for _, w := range sitedata.UpcomingWeeks(in.Content.Weeks, season, in.Now) {
		v.Weeks = append(v.Weeks, weekView(w, locale, in.Now.Location()))
	}

	// gallery links keep the chosen gallery season
	keep := url.Values{}
	if q.Get(QueryGallery) != "" && gallerySeason != season {
		keep.Set(QueryGallery, string(gallerySeason))
	}
	media := sitedata.MediaFor(in.Content.Media, gallerySeason)
	items := make([]lightbox.Item, 0, len(media))
	v.Gallery.Season = gallerySeason
	for i, m := range media {
		it := lightbox.Item{Src: AssetPath(m.Src), Alt: m.Alt.In(locale), Caption: m.Caption.In(locale)}
		items = append(items, it)
		link := cloneValues(keep)
		link.Set(QueryPhoto, strconv.Itoa(i))
		v.Gallery.Items = append(v.Gallery.Items, GalleryItem{
			Src:     it.Src,
			Alt:     it.Alt,
			Caption: it.Caption,
			Href:    withQuery(path, link) + "#" + v.Sections["gallery"],
		})
	}
	for _, s := range routing.Seasons {
		link := url.Values{}
		if s != season {
			link.Set(QueryGallery, string(s))
		}
		v.Gallery.Toggles = append(v.Gallery.Toggles, nav.SeasonSwitch{
			Season:   s,
			Href:     withQuery(path, link) + "#" + v.Sections["gallery"],
			LabelKey: "season." + string(s),
			Active:   s == gallerySeason,
		})
	}

	slopes := cloneValues(keep)
	slopes.Set(QuerySlopes, "1")
	v.SlopeMap = SlopeMapView{
		Src:  AssetPath(lightbox.SlopeMapSrc),
		Alt:  lightbox.SlopeMapAlt(locale),
		Href: withQuery(path, slopes) + "#" + v.Sections["slopes-map"],
	}

	state := lightbox.FromQuery(q, items, locale)
	if state.Zoomable {
		state.Src = AssetPath(state.Src)
	}
	v.Lightbox = lightboxView(state, locale, path, keep, v.Sections)

	for _, r := range in.Content.Reviews.Reviews {
		rv := ReviewView{
			Excerpt:  r.Excerpt.In(locale),
			TripType: r.TripType.In(locale),
			Date:     r.Date,
			Source:   r.Source,
		}
		if t, err := time.Parse("2006-01-02", r.Date); err == nil {
			rv.Date = format.Date(t, locale)
		}
		v.Reviews = append(v.Reviews, rv)
	}

	v.Contact = contactView(in, path, v.Sections["contact"])
	return v
}

// BuildSeasonPage wraps the season payload in the layout model.
func BuildSeasonPage(tr Translator, in SeasonInput) PageData {
	v := BuildSeasonView(in)
	lang := string(in.Locale)
	brand := v.Contact.Brand
	title := brand + " · " + tr.T(lang, "season."+string(in.Season)+".title")
	desc := tr.T(lang, "season."+string(in.Season)+".description")
	path := func(l routing.Locale) string { return routing.SeasonURL(l, in.Season) }
	crumbs := nav.Breadcrumbs(in.Locale, in.Season, false)
	canonical := seo.Absolute(in.BaseURL, v.Path)
	image := seo.Absolute(in.BaseURL, v.HeroSrc)

	meta := seo.Meta{
		Lang:        lang,
		Title:       title,
		Description: desc,
		Canonical:   canonical,
		OG: seo.OpenGraph{
			Title:       title,
			Description: desc,
			Image:       image,
			Type:        "website",
			URL:         canonical,
			Locale:      ogLocale(in.Locale),
			SiteName:    brand,
		},
		Twitter:    seo.Twitter{Card: "summary_large_image", Image: image},
		Alternates: alternates(in.BaseURL, path),
	}.WithJSONLD(
		seo.VacationRental(seo.Rental{
			Name:        brand,
			Description: desc,
			URL:         canonical,
			Image:       image,
			Telephone:   v.Contact.Phone,
			Email:       v.Contact.Email,
			Address:     seo.Address{Locality: v.Contact.Locality, Region: "Alpes-Maritimes", Country: "FR"},
			Latitude:    resortLatitude,
			Longitude:   resortLongitude,
			Language:    lang,
		}),
		crumbsLD(tr, in.BaseURL, in.Locale, crumbs),
	)

	return PageData{
		Page:        "season",
		Title:       title,
		Lang:        lang,
		Locale:      in.Locale,
		SEO:         meta,
		Analytics:   in.Analytics,
		Path:        v.Path,
		Brand:       brand,
		Year:        in.Now.Year(),
		Nav:         nav.Build(in.Locale, "", ""),
		Breadcrumbs: crumbs,
		Seasons:     nav.Seasons(in.Locale, in.Season),
		OtherLocale: otherLocale(in.Locale, path),
		Season:      &v,
	}
}

func weekView(w sitedata.WeekRow, locale routing.Locale, loc *time.Location) WeekView {
	out := WeekView{
		Price:         format.Price(w.Price, locale),
		Status:        w.Status,
		StatusLabel:   StatusLabel(w.Status, locale),
		Zones:         w.Holidays.Zones(),
		HolidaysLabel: HolidaysLabel(w.Holidays, locale),
	}
	start, errStart := w.StartDate(loc)
	end, errEnd := w.EndDate(loc)
	if errStart == nil && errEnd == nil {
		out.Label = format.WeekLabel(start, end, locale)
	} else {
		out.Label = w.Start + " → " + w.End
	}
	return out
}

func lightboxView(s lightbox.State, lang routing.Locale, path string, keep url.Values, sections map[string]string) LightboxView {
	v := LightboxView{State: s, Lang: string(lang)}
	if !s.Open {
		return v
	}
	anchor := sections["gallery"]
	if s.Zoomable {
		anchor = sections["slopes-map"]
	}
	v.CloseHref = withQuery(path, keep) + "#" + anchor
	if !s.Zoomable {
		return v
	}
	zoomLink := func(z float64) string {
		q := cloneValues(keep)
		q.Set(QuerySlopes, "1")
		if z > lightbox.MinZoom {
			q.Set(QueryZoom, lightbox.ZoomQuery(z))
		}
		return withQuery(path, q)
	}
	in, out, reset := s, s, s
	in.ZoomIn()
	out.ZoomOut()
	reset.Reset()
	if s.CanZoomIn() {
		v.ZoomInHref = zoomLink(in.Zoom)
	}
	if s.CanZoomOut() {
		v.ZoomOutHref = zoomLink(out.Zoom)
	}
	v.ResetHref = zoomLink(reset.Zoom)
	return v
}

func contactView(in SeasonInput, path, anchor string) ContactView {
	c := in.Content.Contact
	email := strings.TrimSpace(c.Email)
	if email == "" {
		email = sitedata.DefaultEmail
	}
	phone := PhoneValue(c.Phone)
	reveal := ""
	if in.Query != nil {
		reveal = in.Query.Get(QueryReveal)
	}
	revealLink := func(what string) string {
		return withQuery(path, url.Values{QueryReveal: {what}}) + "#" + anchor
	}
	brand := strings.TrimSpace(c.BrandName)
	if brand == "" {
		brand = sitedata.DefaultBrandName
	}
	return ContactView{
		Brand:           brand,
		Locality:        c.AddressLocality,
		Email:           email,
		EmailHref:       format.MailtoHref(email),
		Phone:           phone,
		TelHref:         template.URL(format.TelHref(phone)),
		ShowPhone:       reveal == "phone",
		ShowEmail:       reveal == "email",
		RevealPhoneHref: revealLink("phone"),
		RevealEmailHref: revealLink("email"),
		FormAction:      path + "contact",
		RelayConfigured: strings.TrimSpace(c.FormEndpoint) != "",
		CSRFToken:       in.CSRFToken,
		CSRFField:       contact.CSRFField,
		HoneypotField:   contact.HoneypotField,
		Banner:          BannerView{Lang: string(in.Locale), Banner: in.Banner},
	}
}

// PhoneValue is the display phone: the configured one formatted, or the
// built-in number.
func PhoneValue(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return sitedata.DefaultPhone
	}
	return format.FrenchPhone(raw)
}

// AssetPath makes a content-relative media path site-absolute.
func AssetPath(src string) string {
	if src == "" || strings.HasPrefix(src, "/") || strings.Contains(src, "://") {
		return src
	}
	return "/" + src
}

func sectionIDs(locale routing.Locale) map[string]string {
	all := []routing.Section{
		routing.SectionMain, routing.SectionStation, routing.SectionApartment,
		routing.SectionBooking, routing.SectionPricing, routing.SectionAccess,
		routing.SectionContact, routing.SectionGallery, routing.SectionActivities,
		routing.SectionIncluded, routing.SectionReviews, routing.SectionSlopesMap,
	}
	out := make(map[string]string, len(all))
	for _, s := range all {
		out[string(s)] = routing.SectionID(locale, s)
	}
	return out
}

func ogLocale(l routing.Locale) string {
	if l == routing.LocaleFR {
		return "fr_FR"
	}
	return "en_GB"
}

func withQuery(path string, q url.Values) string {
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}

func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v))
	for k, vs := range v {
		out[k] = append([]string(nil), vs...)
	}
	return out
}
