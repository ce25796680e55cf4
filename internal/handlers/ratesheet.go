package handlers

import (
	"strings"
	"time"

	"isoatthetop.com/web/internal/format"
	"isoatthetop.com/web/internal/ratesheet"
	"isoatthetop.com/web/internal/routing"
	"isoatthetop.com/web/internal/sitedata"
)

// BuildRateSheet lays out the upcoming weeks of season for the PDF rate sheet.
// It lists the same weeks as the pricing table of the page.
func BuildRateSheet(tr Translator, locale routing.Locale, season routing.Season, content sitedata.Content, now time.Time) ratesheet.Sheet {
	lang := string(locale)
	brand := strings.TrimSpace(content.Contact.BrandName)
	if brand == "" {
		brand = sitedata.DefaultBrandName
	}
	sheet := ratesheet.Sheet{
		Brand:    brand,
		Title:    tr.T(lang, "ratesheet.title") + " · " + tr.T(lang, "season."+string(season)),
		Subtitle: tr.T(lang, "ratesheet.subtitle"),
		Headers: [4]string{
			tr.T(lang, "pricing.period"),
			tr.T(lang, "pricing.price"),
			tr.T(lang, "pricing.status"),
			tr.T(lang, "pricing.holidays"),
		},
		Empty:  tr.T(lang, "ratesheet.empty"),
		Footer: tr.T(lang, "ratesheet.footer") + " " + format.Date(now, locale) + ". " + PhoneValue(content.Contact.Phone),
	}
	for _, w := range sitedata.UpcomingWeeks(content.Weeks, season, now) {
		wv := weekView(w, locale, now.Location())
		holidays := wv.HolidaysLabel
		if len(wv.Zones) > 0 {
			holidays = strings.Join(wv.Zones, " ")
		}
		sheet.Rows = append(sheet.Rows, ratesheet.Row{
			Period:   wv.Label,
			Price:    wv.Price,
			Status:   wv.StatusLabel,
			Holidays: holidays,
		})
	}
	return sheet
}
