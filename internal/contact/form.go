// Package contact handles the stay request form of the season pages.
package contact

import (
	"errors"
	"net/url"
	"sort"
	"strings"
	"unicode/utf8"

	"isoatthetop.com/web/internal/format"
	"isoatthetop.com/web/internal/routing"
)

var (
	// ErrEmpty is returned when a submission carries no field at all.
	ErrEmpty = errors.New("contact: empty submission")
	// ErrSpam is returned when the hidden honeypot field was filled.
	ErrSpam = errors.New("contact: honeypot filled")
	// ErrRateLimited is returned when a client sent too many requests.
	ErrRateLimited = errors.New("contact: rate limited")
	// ErrRelayFailed is returned when the form endpoint rejected the submission.
	ErrRelayFailed = errors.New("contact: relay failed")
)

// Field names of the form. Unknown fields are kept and sorted after these.
var FieldOrder = []string{"name", "email", "phone", "arrival", "departure", "guests", "message"}

const (
	// CSRFField carries the double-submit token and is never forwarded.
	CSRFField = "csrf_token"
	// HoneypotField must stay empty; bots tend to fill every input.
	HoneypotField = "website"
)

const maxFieldLen = 4000

// Field is one non-empty form value.
type Field struct {
	Key   string
	Value string
}

// Submission is a cleaned form post in display order.
type Submission struct {
	Fields []Field
}

// FromValues cleans posted values: empty values, the CSRF token and the
// honeypot are dropped and each value is trimmed and capped.
func FromValues(v url.Values) (Submission, error) {
	if strings.TrimSpace(v.Get(HoneypotField)) != "" {
		return Submission{}, ErrSpam
	}
	known := map[string]bool{CSRFField: true, HoneypotField: true}
	var sub Submission
	add := func(key string) {
		for _, raw := range v[key] {
			val := strings.TrimSpace(raw)
			if val == "" {
				continue
			}
			val = truncate(val, maxFieldLen)
			sub.Fields = append(sub.Fields, Field{Key: key, Value: val})
		}
	}
	for _, key := range FieldOrder {
		known[key] = true
		add(key)
	}
	var extra []string
	for key := range v {
		if !known[key] {
			extra = append(extra, key)
		}
	}
	sort.Strings(extra)
	for _, key := range extra {
		add(key)
	}
	if len(sub.Fields) == 0 {
		return Submission{}, ErrEmpty
	}
	return sub, nil
}

// Get returns the first value of key.
func (s Submission) Get(key string) string {
	for _, f := range s.Fields {
		if f.Key == key {
			return f.Value
		}
	}
	return ""
}

// Values converts the submission back to form values for relaying.
func (s Submission) Values() url.Values {
	out := url.Values{}
	for _, f := range s.Fields {
		out.Add(f.Key, f.Value)
	}
	return out
}

// Body renders "key: value" lines.
func (s Submission) Body() string {
	lines := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		lines = append(lines, f.Key+": "+f.Value)
	}
	return strings.Join(lines, "\n")
}

// Subject is the mail subject of a stay request in locale.
func Subject(locale routing.Locale) string {
	if locale == routing.LocaleFR {
		return "Demande de séjour – Iso At The Top"
	}
	return "Stay request – Iso At The Top"
}

// MailtoURL builds the mail client fallback used when no form endpoint is set.
func MailtoURL(email string, locale routing.Locale, sub Submission) string {
	return format.Mailto(email, Subject(locale), sub.Body())
}

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
