package nav

import (
	"isoatthetop.com/web/internal/routing"
)

// Item represents an entry of the season page menu.
type Item struct {
	Section  routing.Section
	LabelKey string // i18n key, e.g. "nav.apartment"
}

// RenderedItem is a view model for templates.
type RenderedItem struct {
	Href     string
	LabelKey string
	Active   bool
}

// Crumb represents a breadcrumb entry. If LabelKey is empty, use Label.
type Crumb struct {
	Href     string
	LabelKey string
	Label    string
	Active   bool
}

// Main is the in-page navigation of the season page.
var Main = []Item{
	{Section: routing.SectionApartment, LabelKey: "nav.apartment"},
	{Section: routing.SectionPricing, LabelKey: "nav.pricing"},
	{Section: routing.SectionGallery, LabelKey: "nav.gallery"},
	{Section: routing.SectionActivities, LabelKey: "nav.activities"},
	{Section: routing.SectionAccess, LabelKey: "nav.access"},
	{Section: routing.SectionReviews, LabelKey: "nav.reviews"},
	{Section: routing.SectionContact, LabelKey: "nav.contact"},
}

// Build renders the menu anchors for locale. base is the page path the
// anchors hang off; an empty base yields bare "#id" links. The entry matching
// current is marked active.
func Build(locale routing.Locale, base string, current routing.Section) []RenderedItem {
	items := make([]RenderedItem, 0, len(Main))
	for _, it := range Main {
		items = append(items, RenderedItem{
			Href:     base + "#" + routing.SectionID(locale, it.Section),
			LabelKey: it.LabelKey,
			Active:   it.Section == current,
		})
	}
	return items
}

// SeasonSwitch is a link to a season page.
type SeasonSwitch struct {
	Season   routing.Season
	Href     string
	LabelKey string
	Active   bool
}

// Seasons returns both season links of locale with the current one active.
func Seasons(locale routing.Locale, current routing.Season) []SeasonSwitch {
	out := make([]SeasonSwitch, 0, len(routing.Seasons))
	for _, s := range routing.Seasons {
		out = append(out, SeasonSwitch{
			Season:   s,
			Href:     routing.SeasonURL(locale, s),
			LabelKey: "season." + string(s),
			Active:   s == current,
		})
	}
	return out
}

// Breadcrumbs builds the trail for a page under locale.
// The trail always starts at the locale home. A season page adds its season;
// the legal page adds itself.
func Breadcrumbs(locale routing.Locale, season routing.Season, legal bool) []Crumb {
	crumbs := []Crumb{{Href: routing.LocaleRoot(locale), LabelKey: "nav.home"}}
	if legal {
		return append(crumbs, Crumb{Href: routing.LegalURL(locale), LabelKey: "legal.title", Active: true})
	}
	if season == "" {
		crumbs[0].Active = true
		return crumbs
	}
	return append(crumbs, Crumb{
		Href:     routing.SeasonURL(locale, season),
		LabelKey: "season." + string(season),
		Active:   true,
	})
}
