package scrape

import (
	"context"
	"sort"

	"coraldex/internal/catalog"
	"coraldex/lib/wikitext"
)

// cropAccumulator folds several category scans into one record set keyed by
// item name. An item tagged in two season categories must end up with both
// seasons, so the map lives for the whole strategy run and nowhere longer.
type cropAccumulator struct {
	order   []string
	records map[string]*catalog.Record
}

func newCropAccumulator() *cropAccumulator {
	return &cropAccumulator{records: map[string]*catalog.Record{}}
}

func (a *cropAccumulator) get(name string) *catalog.Record {
	if rec, ok := a.records[name]; ok {
		return rec
	}
	rec := &catalog.Record{Name: name}
	a.records[name] = rec
	a.order = append(a.order, name)
	return rec
}

func (a *cropAccumulator) list() []*catalog.Record {
	out := make([]*catalog.Record, 0, len(a.order))
	for _, name := range a.order {
		out = append(out, a.records[name])
	}
	return out
}

// scrapeCrops accumulates seasonal availability across the per-season crop
// categories. Membership in the any-season or ocean category short-circuits
// to the full season set; ocean crops additionally carry an ocean flag.
func scrapeCrops(ctx context.Context, s *Scraper) []catalog.Record {
	acc := newCropAccumulator()

	for _, season := range wikitext.AllSeasons {
		for _, name := range s.site.CategoryMembers(ctx, wikitext.TitleCase(season)+" crops") {
			rec := acc.get(name)
			rec.Seasons = addSeason(rec.Seasons, season)
		}
	}
	for _, name := range s.site.CategoryMembers(ctx, "Any season crops") {
		acc.get(name).Seasons = append([]string{}, wikitext.AllSeasons...)
	}
	for _, name := range s.site.CategoryMembers(ctx, "Ocean crops") {
		rec := acc.get(name)
		rec.Seasons = append([]string{}, wikitext.AllSeasons...)
		rec.SetMeta("ocean", true)
	}

	return s.finishAccumulated(ctx, acc)
}

// scrapeForageables merges the land and ocean forage categories. Ocean
// scavengeables default to an ocean location before per-page enrichment;
// a page that states its own location overrides the default.
func scrapeForageables(ctx context.Context, s *Scraper) []catalog.Record {
	acc := newCropAccumulator()

	for _, name := range s.site.CategoryMembers(ctx, "Forageables", "Forageables") {
		acc.get(name)
	}
	for _, name := range s.site.CategoryMembers(ctx, "Ocean scavengeables") {
		rec := acc.get(name)
		rec.Locations = []string{"Ocean"}
		rec.SetMeta("is_ocean", true)
	}

	return s.finishAccumulated(ctx, acc)
}

func (s *Scraper) finishAccumulated(ctx context.Context, acc *cropAccumulator) []catalog.Record {
	accumulated := acc.list()

	out := make([]catalog.Record, 0, len(accumulated))
	for i, rec := range accumulated {
		sortSeasons(rec.Seasons)
		if !s.fast {
			s.progress(i, len(accumulated), rec.Name)
			s.enrich(ctx, rec)
		}
		out = append(out, *rec)
	}
	return out
}

func addSeason(seasons []string, season string) []string {
	for _, have := range seasons {
		if have == season {
			return seasons
		}
	}
	return append(seasons, season)
}

// sortSeasons orders a season set canonically (spring first) so accumulated
// sets are deterministic regardless of category scan order.
func sortSeasons(seasons []string) {
	rank := map[string]int{}
	for i, season := range wikitext.AllSeasons {
		rank[season] = i
	}
	sort.Slice(seasons, func(i, j int) bool {
		return rank[seasons[i]] < rank[seasons[j]]
	})
}
