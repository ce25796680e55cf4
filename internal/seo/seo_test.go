package seo

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAbsolute(t *testing.T) {
	require.Equal(t, "https://isoatthetop.com/fr/hiver/", Absolute("https://isoatthetop.com/", "/fr/hiver/"))
	require.Equal(t, "/fr/hiver/", Absolute("", "fr/hiver/"))
	require.Equal(t, "https://cdn.example/x.jpg", Absolute("https://isoatthetop.com", "https://cdn.example/x.jpg"))
}

func TestVacationRentalOmitsEmptyFields(t *testing.T) {
	m := VacationRental(Rental{
		Name:      "Iso At The Top",
		URL:       "https://isoatthetop.com/en/winter/",
		Telephone: "+33 6 51 18 58 62",
		Address:   Address{Locality: "Isola 2000", Country: "FR"},
		Latitude:  44.1847,
		Longitude: 7.1583,
	})
	require.Equal(t, []string{"VacationRental", "LodgingBusiness"}, m["@type"])
	require.NotContains(t, m, "email")
	require.NotContains(t, m, "description")
	addr, ok := m["address"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "Isola 2000", addr["addressLocality"])
	require.NotContains(t, addr, "addressRegion")
}

func TestWithJSONLDDoesNotShareBacking(t *testing.T) {
	base := Meta{Title: "x"}
	a := base.WithJSONLD(WebSite("Iso At The Top", "https://isoatthetop.com", "fr"))
	b := a.WithJSONLD(BreadcrumbList([]BreadcrumbItem{{Name: "Accueil", Item: "https://isoatthetop.com/fr/"}}))
	require.Len(t, base.JSONLD, 0)
	require.Len(t, a.JSONLD, 1)
	require.Len(t, b.JSONLD, 2)

	var crumbs map[string]any
	require.NoError(t, json.Unmarshal([]byte(b.JSONLD[1]), &crumbs))
	items := crumbs["itemListElement"].([]any)
	require.Equal(t, float64(1), items[0].(map[string]any)["position"])
	require.Len(t, b.Scripts(), 2)
}
