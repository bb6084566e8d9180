package scrape

import (
	"context"

	"coraldex/internal/catalog"
	"coraldex/lib/wikitext"
)

// The simple strategies share one shape: list the members of a single wiki
// category, optionally pre-seed fallback fields from cross-reference
// categories, then enrich per page in full mode.

func scrapeFish(ctx context.Context, s *Scraper) []catalog.Record {
	return s.memberRecords(ctx, "Fish", nil)
}

func scrapeCritters(ctx context.Context, s *Scraper) []catalog.Record {
	return s.memberRecords(ctx, "Critters", nil)
}

func scrapeArtifacts(ctx context.Context, s *Scraper) []catalog.Record {
	return s.memberRecords(ctx, "Artifacts", nil)
}

func scrapeGems(ctx context.Context, s *Scraper) []catalog.Record {
	return s.memberRecords(ctx, "Gems", nil)
}

// scrapeInsects pre-seeds season and time-of-day availability from the
// wiki's per-season and per-time insect categories. The seeded values act
// as fallback only: a page whose infobox states its own availability wins.
func scrapeInsects(ctx context.Context, s *Scraper) []catalog.Record {
	seasons := map[string][]string{}
	for _, season := range wikitext.AllSeasons {
		category := wikitext.TitleCase(season) + " insects"
		for _, name := range s.site.CategoryMembers(ctx, category) {
			seasons[name] = append(seasons[name], season)
		}
	}

	times := map[string][]string{}
	for _, tod := range wikitext.AllTimes {
		category := wikitext.TitleCase(tod) + " insects"
		for _, name := range s.site.CategoryMembers(ctx, category) {
			times[name] = append(times[name], tod)
		}
	}

	return s.memberRecords(ctx, "Insects", func(rec *catalog.Record) {
		rec.Seasons = seasons[rec.Name]
		rec.TimeOfDay = times[rec.Name]
	})
}

// memberRecords builds one record per content page in the named wiki
// category. seed, when non-nil, fills membership-derived fallback fields
// before any per-page enrichment.
func (s *Scraper) memberRecords(ctx context.Context, wikiCategory string, seed func(*catalog.Record)) []catalog.Record {
	members := s.site.CategoryMembers(ctx, wikiCategory, wikiCategory)

	records := make([]catalog.Record, 0, len(members))
	for i, name := range members {
		rec := catalog.Record{Name: name}
		if seed != nil {
			seed(&rec)
		}
		if !s.fast {
			s.progress(i, len(members), name)
			s.enrich(ctx, &rec)
		}
		records = append(records, rec)
	}
	return records
}
