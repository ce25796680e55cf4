package routing

import (
	"strings"
	"time"
)

// Locale is the UI language of a page.
type Locale string

// Season selects the winter or summer rental offering.
type Season string

const (
	LocaleEN Locale = "en"
	LocaleFR Locale = "fr"

	Winter Season = "winter"
	Summer Season = "summer"
)

// LegalSegment is the route segment of the legal notice page in both locales.
const LegalSegment = "mentions-legales"

// Locales lists supported locales in display order.
var Locales = []Locale{LocaleFR, LocaleEN}

// Seasons lists seasons in display order.
var Seasons = []Season{Winter, Summer}

var routeSegments = map[Locale]map[Season]string{
	LocaleEN: {Winter: "winter", Summer: "summer"},
	LocaleFR: {Winter: "hiver", Summer: "ete"},
}

// SegmentFor returns the URL segment naming season in locale.
func SegmentFor(locale Locale, season Season) string {
	return routeSegments[locale.orDefault()][season.orDefault()]
}

// PathFor returns the locale-relative path of the season page, e.g. "/hiver".
func PathFor(locale Locale, season Season) string {
	return "/" + SegmentFor(locale, season)
}

// SeasonURL returns the absolute site path "/{locale}/{segment}/".
func SeasonURL(locale Locale, season Season) string {
	return LocaleRoot(locale) + SegmentFor(locale, season) + "/"
}

// LocaleRoot returns "/{locale}/".
func LocaleRoot(locale Locale) string {
	return "/" + string(locale.orDefault()) + "/"
}

// LegalURL returns the absolute path of the legal notice page.
func LegalURL(locale Locale) string {
	return LocaleRoot(locale) + LegalSegment + "/"
}

// SeasonForSegment maps any known season segment back to its season.
// Every locale accepts every segment, so "/en/hiver/" still renders winter.
func SeasonForSegment(segment string) (Season, bool) {
	segment = strings.ToLower(strings.Trim(segment, "/ "))
	for _, table := range routeSegments {
		for season, seg := range table {
			if seg == segment {
				return season, true
			}
		}
	}
	return "", false
}

// LocaleFromID maps a locale identifier such as "fr-FR" to a Locale.
func LocaleFromID(id string) Locale {
	if strings.HasPrefix(strings.ToLower(strings.TrimSpace(id)), "fr") {
		return LocaleFR
	}
	return LocaleEN
}

// ParseLocale validates an exact locale code.
func ParseLocale(s string) (Locale, bool) {
	switch Locale(strings.ToLower(strings.TrimSpace(s))) {
	case LocaleEN:
		return LocaleEN, true
	case LocaleFR:
		return LocaleFR, true
	}
	return "", false
}

// ParseSeason validates a season name.
func ParseSeason(s string) (Season, bool) {
	switch Season(s) {
	case Winter:
		return Winter, true
	case Summer:
		return Summer, true
	}
	return "", false
}

// Other returns the opposite season.
func (s Season) Other() Season {
	if s == Summer {
		return Winter
	}
	return Summer
}

// Other returns the opposite locale.
func (l Locale) Other() Locale {
	if l == LocaleFR {
		return LocaleEN
	}
	return LocaleFR
}

func (l Locale) orDefault() Locale {
	if l == LocaleFR {
		return LocaleFR
	}
	return LocaleEN
}

func (s Season) orDefault() Season {
	if s == Summer {
		return Summer
	}
	return Winter
}

// DefaultSeason applies the calendar heuristic: from Aug 15 through Apr 15
// (both days included) is winter, the rest of the year summer.
func DefaultSeason(now time.Time) Season {
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	startWinter := time.Date(y, time.August, 15, 0, 0, 0, 0, time.UTC)
	endWinter := time.Date(y, time.April, 15, 0, 0, 0, 0, time.UTC)
	if !today.Before(startWinter) || !today.After(endWinter) {
		return Winter
	}
	return Summer
}

// ResolveSeason prefers a valid stored season and falls back to the calendar.
func ResolveSeason(stored Season, ok bool, now time.Time) Season {
	if ok {
		if s, valid := ParseSeason(string(stored)); valid {
			return s
		}
	}
	return DefaultSeason(now)
}
