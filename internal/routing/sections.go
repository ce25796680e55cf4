package routing

// Section identifies an anchored block of the season page.
type Section string

const (
	SectionMain       Section = "main"
	SectionStation    Section = "station"
	SectionApartment  Section = "apartment"
	SectionBooking    Section = "booking"
	SectionPricing    Section = "pricing"
	SectionAccess     Section = "access"
	SectionContact    Section = "contact"
	SectionGallery    Section = "gallery"
	SectionActivities Section = "activities"
	SectionIncluded   Section = "included"
	SectionReviews    Section = "reviews"
	SectionSlopesMap  Section = "slopes-map"
)

var frSectionIDs = map[Section]string{
	SectionApartment:  "appartement",
	SectionBooking:    "reserver",
	SectionPricing:    "tarifs",
	SectionAccess:     "acces",
	SectionGallery:    "galerie",
	SectionActivities: "activites",
	SectionIncluded:   "inclus",
	SectionReviews:    "avis",
	SectionSlopesMap:  "plan-des-pistes",
}

// SectionID returns the HTML id of a section for locale. English ids are the
// section keys themselves.
func SectionID(locale Locale, section Section) string {
	if locale == LocaleFR {
		if id, ok := frSectionIDs[section]; ok {
			return id
		}
	}
	return string(section)
}
