package format

import (
	"fmt"
	"math"
	"net/url"
	"regexp"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"isoatthetop.com/web/internal/routing"
)

var (
	nonDigits     = regexp.MustCompile(`\D`)
	whitespace    = regexp.MustCompile(`\s+`)
	nationalZero  = regexp.MustCompile(`^0\d{9}$`)
	countryPrefix = regexp.MustCompile(`^33\d{9}$`)
)

// FrenchPhone renders a French number as "+33 X XX XX XX XX" when its digits
// are a 10-digit national number or a 33-prefixed one. Anything else is
// returned unchanged.
func FrenchPhone(raw string) string {
	digits := nonDigits.ReplaceAllString(raw, "")
	var national string
	switch {
	case nationalZero.MatchString(digits):
		national = digits[1:]
	case countryPrefix.MatchString(digits):
		national = digits[2:]
	default:
		return raw
	}
	return fmt.Sprintf("+33 %s %s %s %s %s", national[0:1], national[1:3], national[3:5], national[5:7], national[7:9])
}

// TelHref builds a tel: link for phone.
func TelHref(phone string) string {
	compact := whitespace.ReplaceAllString(phone, "")
	if strings.HasPrefix(compact, "+") {
		return "tel:" + compact
	}
	digits := nonDigits.ReplaceAllString(phone, "")
	if nationalZero.MatchString(digits) {
		return "tel:+33" + digits[1:]
	}
	if countryPrefix.MatchString(digits) {
		return "tel:+" + digits
	}
	if digits != "" {
		return "tel:" + digits
	}
	return "tel:" + compact
}

// MailtoHref returns a plain mailto: link.
func MailtoHref(email string) string {
	return "mailto:" + email
}

// Mailto builds a mailto: URL with an encoded subject and body. Every part is
// percent-encoded with %20 for spaces, as mail clients expect.
func Mailto(email, subject, body string) string {
	return "mailto:" + encodeComponent(email) + "?subject=" + encodeComponent(subject) + "&body=" + encodeComponent(body)
}

func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

var monthsFR = [...]string{"janv.", "févr.", "mars", "avr.", "mai", "juin", "juil.", "août", "sept.", "oct.", "nov.", "déc."}

// DayMonth formats t as a two-digit day and abbreviated month, e.g. "05 déc." or "Dec 05".
func DayMonth(t time.Time, locale routing.Locale) string {
	if locale == routing.LocaleFR {
		return fmt.Sprintf("%02d %s", t.Day(), monthsFR[t.Month()-1])
	}
	return t.Format("Jan 02")
}

// WeekLabel renders a booking period, e.g. "19 déc. → 26 déc. 2026".
// The year is the one of the start date.
func WeekLabel(start, end time.Time, locale routing.Locale) string {
	return fmt.Sprintf("%s → %s %d", DayMonth(start, locale), DayMonth(end, locale), start.Year())
}

// Date formats t in a locale-friendly long form.
func Date(t time.Time, locale routing.Locale) string {
	if locale == routing.LocaleFR {
		return fmt.Sprintf("%d %s %d", t.Day(), monthsFR[t.Month()-1], t.Year())
	}
	return t.Format("Jan 2, 2006")
}

// Price formats an amount in euros with the locale's grouping, e.g.
// "1,250 €" in English and "1 250 €" in French. Fractions are dropped when
// the amount is whole.
func Price(amount float64, locale routing.Locale) string {
	tag := language.English
	if locale == routing.LocaleFR {
		tag = language.French
	}
	p := message.NewPrinter(tag)
	if amount == math.Trunc(amount) {
		return p.Sprint(number.Decimal(int64(amount))) + " €"
	}
	return p.Sprint(number.Decimal(amount, number.MinFractionDigits(2), number.MaxFractionDigits(2))) + " €"
}
