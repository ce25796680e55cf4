package sitedata

import (
	"context"
	"encoding/json"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/require"

	"isoatthetop.com/web/internal/routing"
)

func TestUpcomingWeeksExcludesToday(t *testing.T) {
	now := time.Date(2026, time.December, 12, 15, 0, 0, 0, time.UTC)
	rows := []WeekRow{
		{Season: routing.Winter, Start: "2026-12-12", End: "2026-12-19"},
		{Season: routing.Winter, Start: "2026-12-13", End: "2026-12-20"},
		{Season: routing.Winter, Start: "2026-12-05", End: "2026-12-12"},
		{Season: routing.Summer, Start: "2027-07-03", End: "2027-07-10"},
		{Season: routing.Winter, Start: "not-a-date"},
	}
	got := UpcomingWeeks(rows, routing.Winter, now)
	require.Len(t, got, 1)
	require.Equal(t, "2026-12-13", got[0].Start)

	got = UpcomingWeeks(rows, routing.Summer, now)
	require.Len(t, got, 1)
}

func TestHolidayTagsDistinguishMissingFromEmpty(t *testing.T) {
	var rows []WeekRow
	err := json.Unmarshal([]byte(`[
		{"season":"winter","start":"2027-02-06","holidays":[" a ","b",3,"x"]},
		{"season":"winter","start":"2027-02-13","holidays":[]},
		{"season":"winter","start":"2027-02-20"},
		{"season":"winter","start":"2027-02-27","holidays":"A"}
	]`), &rows)
	require.NoError(t, err)
	require.Equal(t, []string{"A", "B"}, rows[0].Holidays.Zones())
	require.NotNil(t, rows[1].Holidays.Zones())
	require.Empty(t, rows[1].Holidays.Zones())
	require.Nil(t, rows[2].Holidays.Zones())
	require.Nil(t, rows[3].Holidays.Zones())
}

func TestLocalizedFallback(t *testing.T) {
	l := Localized{routing.LocaleFR: "Salon"}
	require.Equal(t, "Salon", l.In(routing.LocaleEN))
	l[routing.LocaleEN] = "Living room"
	require.Equal(t, "Living room", l.In(routing.LocaleEN))
	require.Equal(t, "Salon", l.In(routing.LocaleFR))
	require.Equal(t, "", Localized(nil).In(routing.LocaleFR))
}

func TestSiteContentDegradesToDefaults(t *testing.T) {
	fsys := fstest.MapFS{
		"data/config.json":  {Data: []byte(`{"phone":"0651185862","formEndpoint":""}`)},
		"data/weeks.json":   {Data: []byte(`{not json`)},
		"data/reviews.json": {Data: []byte(`{"ratingText":{"fr":"5 étoiles"}}`)},
	}
	site := NewSite(NewLoader(NewFSFetcher(fsys)), nil)

	c := site.Content(context.Background(), routing.LocaleFR)
	require.Equal(t, DefaultBrandName, c.Contact.BrandName)
	require.Equal(t, DefaultEmail, c.Contact.Email)
	require.Equal(t, "0651185862", c.Contact.Phone)
	require.Equal(t, "Isola 2000 (Alpes-Maritimes)", c.Contact.AddressLocality)
	require.Empty(t, c.Weeks)
	require.Empty(t, c.Media)
	require.Equal(t, "5 étoiles", c.Reviews.RatingText.In(routing.LocaleEN))
}

func TestMediaFor(t *testing.T) {
	items := []MediaItem{
		{Season: routing.Winter, Src: "a.jpg"},
		{Season: routing.Summer, Src: "b.jpg"},
		{Season: routing.Winter, Src: "c.jpg"},
	}
	got := MediaFor(items, routing.Winter)
	require.Len(t, got, 2)
	require.Equal(t, "c.jpg", got[1].Src)
}
