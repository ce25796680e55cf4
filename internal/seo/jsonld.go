package seo

import (
	"encoding/json"
)

// JSON marshals v to a compact JSON string. It returns an empty string on error.
func JSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// Address is a schema.org PostalAddress.
type Address struct {
	Locality string
	Region   string
	Country  string
}

// Rental describes the apartment for VacationRental markup.
type Rental struct {
	Name        string
	Description string
	URL         string
	Image       string
	Telephone   string
	Email       string
	Address     Address
	Latitude    float64
	Longitude   float64
	Language    string
}

// VacationRental returns a schema.org VacationRental payload, which search
// engines also read as a LodgingBusiness.
func VacationRental(r Rental) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    []string{"VacationRental", "LodgingBusiness"},
		"name":     r.Name,
	}
	if r.Description != "" {
		m["description"] = r.Description
	}
	if r.URL != "" {
		m["url"] = r.URL
	}
	if r.Image != "" {
		m["image"] = r.Image
	}
	if r.Telephone != "" {
		m["telephone"] = r.Telephone
	}
	if r.Email != "" {
		m["email"] = r.Email
	}
	if r.Language != "" {
		m["inLanguage"] = r.Language
	}
	addr := map[string]any{"@type": "PostalAddress"}
	if r.Address.Locality != "" {
		addr["addressLocality"] = r.Address.Locality
	}
	if r.Address.Region != "" {
		addr["addressRegion"] = r.Address.Region
	}
	if r.Address.Country != "" {
		addr["addressCountry"] = r.Address.Country
	}
	if len(addr) > 1 {
		m["address"] = addr
	}
	if r.Latitude != 0 || r.Longitude != 0 {
		m["geo"] = map[string]any{
			"@type":     "GeoCoordinates",
			"latitude":  r.Latitude,
			"longitude": r.Longitude,
		}
	}
	return m
}

// WebSite returns a minimal WebSite schema.
func WebSite(name, url, lang string) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "WebSite",
		"name":     name,
	}
	if url != "" {
		m["url"] = url
	}
	if lang != "" {
		m["inLanguage"] = lang
	}
	return m
}

// BreadcrumbItem maps name and absolute item URL.
type BreadcrumbItem struct {
	Name string
	Item string
}

// BreadcrumbList builds schema.org BreadcrumbList.
func BreadcrumbList(items []BreadcrumbItem) map[string]any {
	el := make([]map[string]any, 0, len(items))
	for i, it := range items {
		el = append(el, map[string]any{
			"@type":    "ListItem",
			"position": i + 1,
			"name":     it.Name,
			"item":     it.Item,
		})
	}
	return map[string]any{
		"@context":        "https://schema.org",
		"@type":           "BreadcrumbList",
		"itemListElement": el,
	}
}
