package scrape

import (
	"context"
	"testing"

	"coraldex/internal/catalog"
	"coraldex/internal/gifts"
	"coraldex/lib/telemetry"
	"coraldex/lib/wiki"

	"github.com/stretchr/testify/require"
)

// fakeSite serves canned category membership and page HTML without any
// network or pacing. Fetch attempts are counted so retry behavior is
// observable.
type fakeSite struct {
	members    map[string][]string
	pages      map[string]string
	categories map[string][]string
	sections   map[string][]wiki.Section
	sectionTxt map[string]string

	fetchAttempts map[string]int
}

func (f *fakeSite) CategoryMembers(_ context.Context, category string, skip ...string) []string {
	skipSet := map[string]bool{}
	for _, s := range skip {
		skipSet[s] = true
	}
	var out []string
	for _, m := range f.members[category] {
		if !skipSet[m] {
			out = append(out, m)
		}
	}
	return out
}

func (f *fakeSite) PageCategories(_ context.Context, title string) []string {
	return f.categories[title]
}

func (f *fakeSite) FetchPageWithRetry(_ context.Context, title string) string {
	if f.fetchAttempts == nil {
		f.fetchAttempts = map[string]int{}
	}
	f.fetchAttempts[title] += 2 // initial attempt plus the one retry
	return f.pages[title]
}

func (f *fakeSite) ListSections(_ context.Context, title string) []wiki.Section {
	return f.sections[title]
}

func (f *fakeSite) FetchSection(_ context.Context, title, index string) string {
	return f.sectionTxt[title+"#"+index]
}

func (f *fakeSite) PageURL(title string) string {
	return "https://example.wiki.gg/wiki/" + title
}

func setup(t *testing.T, site *fakeSite, opts Options) *Scraper {
	t.Cleanup(telemetry.SetupForTesting(t, "test:internal/scrape"))
	return newScraper(site, opts)
}

func byName(records []catalog.Record) map[string]catalog.Record {
	out := map[string]catalog.Record{}
	for _, rec := range records {
		out[rec.Name] = rec
	}
	return out
}

func TestUnknownCategoryIsHardError(t *testing.T) {
	s := setup(t, &fakeSite{}, Options{Fast: true})
	_, err := s.Scrape(context.Background(), "spaceships")
	require.Error(t, err)
}

func TestCropsFastModeAccumulatesSeasons(t *testing.T) {
	site := &fakeSite{members: map[string][]string{
		"Spring crops":     {"A"},
		"Summer crops":     {"A", "B"},
		"Any season crops": {"C"},
	}}
	s := setup(t, site, Options{Fast: true})

	records, err := s.Scrape(context.Background(), "crops")
	require.NoError(t, err)

	recs := byName(records)
	require.Len(t, records, 3)
	require.Equal(t, []string{"spring", "summer"}, recs["A"].Seasons)
	require.Equal(t, []string{"summer"}, recs["B"].Seasons)
	require.Equal(t, []string{"spring", "summer", "fall", "winter"}, recs["C"].Seasons)
}

func TestOceanCropsGetFullSeasonsAndFlag(t *testing.T) {
	site := &fakeSite{members: map[string][]string{
		"Spring crops": {"Kelp"},
		"Ocean crops":  {"Kelp"},
	}}
	s := setup(t, site, Options{Fast: true})

	records, err := s.Scrape(context.Background(), "crops")
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, []string{"spring", "summer", "fall", "winter"}, records[0].Seasons)
	require.Equal(t, true, records[0].Metadata["ocean"])
}

func TestFailedFetchStillEmitsRecord(t *testing.T) {
	// the page for A never loads; the membership-derived fallback survives
	site := &fakeSite{members: map[string][]string{
		"Spring crops": {"A"},
	}}
	s := setup(t, site, Options{})

	records, err := s.Scrape(context.Background(), "crops")
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, "A", records[0].Name)
	require.Equal(t, []string{"spring"}, records[0].Seasons)
	require.Empty(t, records[0].ImageURL)
	require.Equal(t, 2, site.fetchAttempts["A"])
}

func TestFullModeOverlaysPageData(t *testing.T) {
	site := &fakeSite{
		members: map[string][]string{"Fish": {"Tuna"}},
		pages: map[string]string{"Tuna": `
			<aside class="portable-infobox">
			  <figure class="pi-image"><img src="https://static.wiki.gg/tuna.png"></figure>
			  <div class="pi-item" data-source="rarity"><div class="pi-data-value">Rare</div></div>
			  <div class="pi-item" data-source="time"><div class="pi-data-value">Morning</div></div>
			</aside>`},
	}
	s := setup(t, site, Options{})

	records, err := s.Scrape(context.Background(), "fish")
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, "https://static.wiki.gg/tuna.png", records[0].ImageURL)
	require.Equal(t, "rare", records[0].Rarity)
	require.Equal(t, []string{"morning"}, records[0].TimeOfDay)
	require.Equal(t, "https://example.wiki.gg/wiki/Tuna", records[0].Metadata["page_url"])
}

func TestInsectsCategoryFallbackYieldsToPage(t *testing.T) {
	site := &fakeSite{
		members: map[string][]string{
			"Insects":        {"Firefly", "Ant"},
			"Summer insects": {"Firefly", "Ant"},
			"Night insects":  {"Firefly"},
		},
		pages: map[string]string{
			// Firefly's page states its own seasons; the category fallback
			// must not override it
			"Firefly": `<aside class="portable-infobox">
				<div class="pi-item" data-source="season"><div class="pi-data-value">Spring, Summer</div></div>
			</aside>`,
		},
	}
	s := setup(t, site, Options{})

	records, err := s.Scrape(context.Background(), "insects")
	require.NoError(t, err)
	recs := byName(records)

	require.Equal(t, []string{"spring", "summer"}, recs["Firefly"].Seasons)
	require.Equal(t, []string{"night"}, recs["Firefly"].TimeOfDay)
	// Ant has no page: category-derived fallback applies
	require.Equal(t, []string{"summer"}, recs["Ant"].Seasons)
}

func TestArtisanEquipmentMappingWinsOverPage(t *testing.T) {
	site := &fakeSite{
		members: map[string][]string{
			"Artisan products": {"Wine", "Cheese"},
			"Keg products":     {"Wine"},
		},
		pages: map[string]string{
			"Wine": `<aside class="portable-infobox">
				<div class="pi-item" data-source="equipment"><div class="pi-data-value">Barrel</div></div>
			</aside>`,
			"Cheese": `<aside class="portable-infobox">
				<div class="pi-item" data-source="equipment"><div class="pi-data-value">Cheese Press</div></div>
			</aside>`,
		},
	}
	s := setup(t, site, Options{})

	records, err := s.Scrape(context.Background(), "artisan-products")
	require.NoError(t, err)
	recs := byName(records)

	require.Equal(t, "Keg", recs["Wine"].Metadata["equipment"])
	// no category mapping: the page field stands
	require.Equal(t, "Cheese Press", recs["Cheese"].Metadata["equipment"])
}

func TestForageablesOceanDefaults(t *testing.T) {
	site := &fakeSite{
		members: map[string][]string{
			"Forageables":         {"Morel"},
			"Ocean scavengeables": {"Sea Urchin"},
		},
		pages: map[string]string{
			"Sea Urchin": `<aside class="portable-infobox">
				<div class="pi-item" data-source="location"><div class="pi-data-value">Tide pools</div></div>
			</aside>`,
		},
	}
	s := setup(t, site, Options{})

	records, err := s.Scrape(context.Background(), "forageables")
	require.NoError(t, err)
	recs := byName(records)

	// page location overrides the ocean default, the flag stays
	require.Equal(t, []string{"Tide pools"}, recs["Sea Urchin"].Locations)
	require.Equal(t, true, recs["Sea Urchin"].Metadata["is_ocean"])
	require.Empty(t, recs["Morel"].Locations)
}

func TestCharacterTypeAndGifts(t *testing.T) {
	site := &fakeSite{
		members: map[string][]string{
			"Characters": {"Suki", "Ondine", "Nemo"},
			"Merfolk":    {"Ondine"},
		},
		categories: map[string][]string{
			"Suki": {"Townie characters", "Lives at Starlet Town"},
		},
		sections: map[string][]wiki.Section{
			"Suki": {{Index: "1", Line: "Schedule"}, {Index: "2", Line: "Gifts"}},
		},
		sectionTxt: map[string]string{
			"Suki#2": `<table><tr><th>Loved</th><td><a title="Rose">Rose</a></td></tr></table>`,
		},
	}
	s := setup(t, site, Options{})

	records, err := s.Scrape(context.Background(), "characters")
	require.NoError(t, err)
	recs := byName(records)

	// category override beats the heuristic; heuristic fills the gap
	require.Equal(t, "merperson", recs["Ondine"].Metadata["type"])
	require.Equal(t, "townie", recs["Suki"].Metadata["type"])
	require.Equal(t, "Starlet Town", recs["Suki"].Metadata["residence"])

	prefs, ok := recs["Suki"].Metadata["gift_preferences"].(gifts.Preferences)
	require.True(t, ok)
	require.Equal(t, []string{"Rose"}, prefs.Loved)

	// no Gifts section: the key must be absent entirely
	_, has := recs["Nemo"].Metadata["gift_preferences"]
	require.False(t, has)
}

func TestLakeTempleIsConstant(t *testing.T) {
	s := setup(t, &fakeSite{}, Options{})

	records, err := s.Scrape(context.Background(), "lake-temple")
	require.NoError(t, err)
	require.NotEmpty(t, records)
	for _, rec := range records {
		require.NotEmpty(t, rec.Name)
		require.NotEmpty(t, rec.ImageURL)
		require.NotEmpty(t, rec.Metadata["altar"])
		require.NotEmpty(t, rec.Metadata["required_items"])
		require.NotEmpty(t, rec.Metadata["reward"])
	}
}

func TestProgressIsAdvisoryOnly(t *testing.T) {
	site := &fakeSite{members: map[string][]string{"Gems": {"Opal", "Topaz"}}}

	var seen []string
	s := setup(t, site, Options{Progress: func(_, _ int, name string) {
		seen = append(seen, name)
	}})

	records, err := s.Scrape(context.Background(), "gems")
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, []string{"Opal", "Topaz"}, seen)
}
