package sitedata

import (
	"encoding/json"
	"strings"
	"time"

	"isoatthetop.com/web/internal/routing"
)

// Asset paths of the static content files.
const (
	ConfigPath  = "data/config.json"
	WeeksPath   = "data/weeks.json"
	MediaPath   = "data/media.json"
	ReviewsPath = "data/reviews.json"
)

const dateLayout = "2006-01-02"

// WeekStatus is the booking state of a rental week.
type WeekStatus string

const (
	StatusAvailable WeekStatus = "available"
	StatusOption    WeekStatus = "option"
	StatusBooked    WeekStatus = "booked"
)

// Localized holds per-locale strings.
type Localized map[routing.Locale]string

// In returns the text for locale, falling back to English then French.
func (l Localized) In(locale routing.Locale) string {
	for _, candidate := range []routing.Locale{locale, routing.LocaleEN, routing.LocaleFR} {
		if v := strings.TrimSpace(l[candidate]); v != "" {
			return l[candidate]
		}
	}
	return ""
}

// WeekRow is one line of the pricing calendar.
type WeekRow struct {
	Season   routing.Season `json:"season"`
	Start    string         `json:"start"`
	End      string         `json:"end"`
	Price    float64        `json:"price"`
	Status   WeekStatus     `json:"status"`
	Holidays HolidayTags    `json:"holidays"`
}

// StartDate parses Start as a calendar date in loc.
func (w WeekRow) StartDate(loc *time.Location) (time.Time, error) {
	return parseDate(w.Start, loc)
}

// EndDate parses End as a calendar date in loc.
func (w WeekRow) EndDate(loc *time.Location) (time.Time, error) {
	return parseDate(w.End, loc)
}

func parseDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	s = strings.TrimSpace(s)
	if len(s) > len(dateLayout) {
		// tolerate full timestamps, only the date matters
		s = s[:len(dateLayout)]
	}
	return time.ParseInLocation(dateLayout, s, loc)
}

// HolidayTags lists school-holiday zones overlapping a week. A nil value means
// the information was not provided; an empty, non-nil value means no holidays.
type HolidayTags []string

// UnmarshalJSON keeps only string entries and maps non-array values to nil.
func (h *HolidayTags) UnmarshalJSON(data []byte) error {
	var raw []any
	if err := json.Unmarshal(data, &raw); err != nil || raw == nil {
		*h = nil
		return nil
	}
	out := HolidayTags{}
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	*h = out
	return nil
}

// Zones returns the valid zone letters (A, B or C), normalised, or nil when
// the information is missing.
func (h HolidayTags) Zones() []string {
	if h == nil {
		return nil
	}
	zones := []string{}
	for _, z := range h {
		z = strings.ToUpper(strings.TrimSpace(z))
		switch z {
		case "A", "B", "C":
			zones = append(zones, z)
		}
	}
	return zones
}

// MediaItem is a gallery picture.
type MediaItem struct {
	Season  routing.Season `json:"season"`
	Src     string         `json:"src"`
	Alt     Localized      `json:"alt"`
	Caption Localized      `json:"caption"`
}

// ReviewsData is the content of reviews.json.
type ReviewsData struct {
	RatingText Localized `json:"ratingText"`
	Reviews    []Review  `json:"reviews"`
}

// Review is a guest review excerpt.
type Review struct {
	Excerpt  Localized `json:"excerpt"`
	TripType Localized `json:"tripType"`
	Date     string    `json:"date"`
	Source   string    `json:"source"`
}

// ContactConfig is the content of config.json.
type ContactConfig struct {
	BrandName       string `json:"brandName"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	AddressLocality string `json:"addressLocality"`
	FormEndpoint    string `json:"formEndpoint"`
}

// Default contact values used before and instead of config.json.
const (
	DefaultBrandName = "Iso At The Top"
	DefaultEmail     = "contact@isoatthetop.com"
	DefaultPhone     = "+33 6 51 18 58 62"
)

// DefaultContact returns the built-in contact settings for locale.
func DefaultContact(locale routing.Locale) ContactConfig {
	locality := "Isola 2000 (French Alps)"
	if locale == routing.LocaleFR {
		locality = "Isola 2000 (Alpes-Maritimes)"
	}
	return ContactConfig{
		BrandName:       DefaultBrandName,
		Email:           DefaultEmail,
		AddressLocality: locality,
	}
}

// Merge overlays the non-empty fields of override on c.
func (c ContactConfig) Merge(override ContactConfig) ContactConfig {
	out := c
	if v := strings.TrimSpace(override.BrandName); v != "" {
		out.BrandName = v
	}
	if v := strings.TrimSpace(override.Email); v != "" {
		out.Email = v
	}
	if v := strings.TrimSpace(override.Phone); v != "" {
		out.Phone = v
	}
	if v := strings.TrimSpace(override.AddressLocality); v != "" {
		out.AddressLocality = v
	}
	if v := strings.TrimSpace(override.FormEndpoint); v != "" {
		out.FormEndpoint = v
	}
	return out
}
