// Package scrape turns wiki category membership and page content into
// normalized catalog records. Each supported catalog category has its own
// strategy; all strategies share the same fetch pacing, the same infobox
// extraction, and the same merge rule set.
package scrape

import (
	"context"
	"fmt"
	"strings"

	"coraldex/internal/catalog"
	"coraldex/internal/infobox"
	"coraldex/lib/wiki"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = otel.Tracer("coraldex/scrape")

// site is the slice of the wiki client the strategies consume. Narrow on
// purpose so tests can substitute a canned implementation.
type site interface {
	CategoryMembers(ctx context.Context, category string, skip ...string) []string
	PageCategories(ctx context.Context, title string) []string
	FetchPageWithRetry(ctx context.Context, title string) string
	ListSections(ctx context.Context, title string) []wiki.Section
	FetchSection(ctx context.Context, title, sectionIndex string) string
	PageURL(title string) string
}

// ProgressFunc is invoked once per member during full-mode iteration. It is
// advisory only: reporting, not control flow.
type ProgressFunc func(index, total int, name string)

type Options struct {
	// Fast skips all per-page fetches; records are built from category
	// membership alone.
	Fast     bool
	Progress ProgressFunc
}

type Scraper struct {
	site     site
	fast     bool
	progress ProgressFunc
}

func New(client *wiki.Client, opts Options) *Scraper {
	return newScraper(client, opts)
}

func newScraper(s site, opts Options) *Scraper {
	progress := opts.Progress
	if progress == nil {
		progress = func(int, int, string) {}
	}
	return &Scraper{site: s, fast: opts.Fast, progress: progress}
}

type strategy func(ctx context.Context, s *Scraper) []catalog.Record

// strategies maps catalog category slugs to their scrape routine. An
// unlisted slug is a configuration bug and fails hard at Scrape.
var strategies = map[string]strategy{
	"fish":             scrapeFish,
	"insects":          scrapeInsects,
	"critters":         scrapeCritters,
	"crops":            scrapeCrops,
	"artifacts":        scrapeArtifacts,
	"gems":             scrapeGems,
	"forageables":      scrapeForageables,
	"artisan-products": scrapeArtisanProducts,
	"characters":       scrapeCharacters,
	"lake-temple":      emitLakeTemple,
}

// Categories returns the supported category slugs in a stable order.
func Categories() []string {
	return []string{
		"fish", "insects", "critters", "crops", "artifacts", "gems",
		"forageables", "artisan-products", "characters", "lake-temple",
	}
}

// Scrape runs one category's strategy. Remote flakiness never surfaces as
// an error; the only failure is asking for a category no strategy exists
// for.
func (s *Scraper) Scrape(ctx context.Context, categorySlug string) ([]catalog.Record, error) {
	run, ok := strategies[categorySlug]
	if !ok {
		return nil, fmt.Errorf("no scrape strategy for category %q", categorySlug)
	}

	ctx, span := tracer.Start(ctx, "Scrape")
	defer span.End()
	span.SetAttributes(attribute.String("category", categorySlug), attribute.Bool("fast", s.fast))

	records := run(ctx, s)
	span.SetAttributes(attribute.Int("records", len(records)))
	return records, nil
}

// enrich runs the full-mode per-page pass over a record: fetch the page,
// parse the infobox, and overlay the parsed fields onto the membership-
// derived fallback. Page data wins when non-empty; a page that cannot be
// fetched leaves the fallback record untouched.
func (s *Scraper) enrich(ctx context.Context, rec *catalog.Record) {
	rec.SetMeta("page_url", s.site.PageURL(rec.Name))

	html := s.site.FetchPageWithRetry(ctx, rec.Name)
	if html == "" {
		return
	}
	overlay(rec, infobox.Parse(html))
}

// overlay merges page-derived fields over whatever the record already
// carries from category membership.
func overlay(rec *catalog.Record, parsed infobox.Parsed) {
	if parsed.ImageURL != "" {
		rec.ImageURL = parsed.ImageURL
	}
	if parsed.Description != "" {
		rec.Description = parsed.Description
	}
	if parsed.Rarity != "" {
		rec.Rarity = parsed.Rarity
	}
	if parsed.BasePrice != nil {
		rec.BasePrice = parsed.BasePrice
	}
	if parsed.Type != "" {
		rec.SetMeta("type", strings.ToLower(parsed.Type))
	}
	if len(parsed.Seasons) > 0 {
		rec.Seasons = parsed.Seasons
	}
	if len(parsed.TimeOfDay) > 0 {
		rec.TimeOfDay = parsed.TimeOfDay
	}
	if len(parsed.Weather) > 0 {
		rec.Weather = parsed.Weather
	}
	if len(parsed.Locations) > 0 {
		rec.Locations = parsed.Locations
	}
	for key, value := range parsed.Metadata {
		rec.SetMeta(key, value)
	}
}
