package scrape

import (
	"context"
	"strings"

	"coraldex/internal/catalog"
	"coraldex/internal/gifts"
	"coraldex/lib/wiki"
)

// typeOverrides are authoritative: membership in one of these categories
// decides a character's type outright, before the less reliable page
// categories heuristic gets a say.
var typeOverrides = []struct {
	category string
	kind     string
}{
	{"Townies", "townie"},
	{"Merfolk", "merperson"},
	{"Kids", "child"},
}

func scrapeCharacters(ctx context.Context, s *Scraper) []catalog.Record {
	typeByName := map[string]string{}
	for _, override := range typeOverrides {
		for _, name := range s.site.CategoryMembers(ctx, override.category) {
			if _, taken := typeByName[name]; !taken {
				typeByName[name] = override.kind
			}
		}
	}

	members := s.site.CategoryMembers(ctx, "Characters", "Characters")

	records := make([]catalog.Record, 0, len(members))
	for i, name := range members {
		rec := catalog.Record{Name: name}
		if kind, ok := typeByName[name]; ok {
			rec.SetMeta("type", kind)
		}

		if !s.fast {
			s.progress(i, len(members), name)
			s.enrichCharacter(ctx, &rec, typeByName)
		}
		records = append(records, rec)
	}
	return records
}

func (s *Scraper) enrichCharacter(ctx context.Context, rec *catalog.Record, typeByName map[string]string) {
	s.enrich(ctx, rec)

	categories := s.site.PageCategories(ctx, rec.Name)

	// the override map wins; the page categories heuristic only fills a gap
	if kind, ok := typeByName[rec.Name]; ok {
		rec.SetMeta("type", kind)
	} else if _, has := rec.Metadata["type"]; !has {
		if kind := typeFromCategories(categories); kind != "" {
			rec.SetMeta("type", kind)
		}
	}

	// residence: infobox field first, then a "Lives at X" category name
	if _, has := rec.Metadata["residence"]; !has {
		for _, category := range categories {
			if rest, ok := strings.CutPrefix(category, "Lives at "); ok {
				rec.SetMeta("residence", rest)
				break
			}
		}
	}

	// gift preferences live in a page section, not the infobox; a character
	// with no Gifts section gets no gift_preferences key at all
	if index := findSection(s.site.ListSections(ctx, rec.Name), "gifts"); index != "" {
		prefs := gifts.ParseTable(s.site.FetchSection(ctx, rec.Name, index))
		if !prefs.Empty() {
			rec.SetMeta("gift_preferences", prefs)
		}
	}
}

func typeFromCategories(categories []string) string {
	for _, category := range categories {
		lower := strings.ToLower(category)
		switch {
		case strings.Contains(lower, "townie"):
			return "townie"
		case strings.Contains(lower, "merfolk"), strings.Contains(lower, "merpeople"):
			return "merperson"
		case strings.Contains(lower, "kid"), strings.Contains(lower, "child"):
			return "child"
		}
	}
	return ""
}

// findSection returns the index of the first section whose heading matches
// name case-insensitively, or "" when the page has no such section.
func findSection(sections []wiki.Section, name string) string {
	for _, section := range sections {
		if strings.EqualFold(strings.TrimSpace(section.Line), name) {
			return section.Index
		}
	}
	return ""
}
