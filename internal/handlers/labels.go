package handlers

import (
	"strings"

	"isoatthetop.com/web/internal/routing"
	"isoatthetop.com/web/internal/sitedata"
)

// StatusLabel names a week status in locale. Unknown statuses pass through.
func StatusLabel(status sitedata.WeekStatus, locale routing.Locale) string {
	fr := locale == routing.LocaleFR
	switch status {
	case sitedata.StatusAvailable:
		if fr {
			return "Disponible"
		}
		return "Available"
	case sitedata.StatusOption:
		return "Option"
	case sitedata.StatusBooked:
		if fr {
			return "Réservé"
		}
		return "Booked"
	}
	return string(status)
}

// HolidaysLabel describes a week without zone tags. It is empty when zones
// are listed.
func HolidaysLabel(tags sitedata.HolidayTags, locale routing.Locale) string {
	fr := locale == routing.LocaleFR
	if tags == nil {
		if fr {
			return "Vacances non renseignées"
		}
		return "School holidays not set"
	}
	if len(tags) == 0 {
		if fr {
			return "Hors vacances scolaires"
		}
		return "No holidays"
	}
	return ""
}

// RatingText returns the localized rating headline of reviews.json or the
// built-in one.
func RatingText(data sitedata.ReviewsData, locale routing.Locale) string {
	if v := strings.TrimSpace(data.RatingText.In(locale)); v != "" {
		return v
	}
	if locale == routing.LocaleFR {
		return "5 étoiles sur Airbnb"
	}
	return "5-star rating on Airbnb"
}

// HeroImage is the header picture of a season page.
func HeroImage(season routing.Season) string {
	if season == routing.Summer {
		return "media/ete/vue_été.JPG"
	}
	return "media/hiver/vue_hiver.jpg"
}
