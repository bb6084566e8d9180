package scrape

import (
	"context"

	"coraldex/internal/catalog"
)

// artisanEquipment maps each equipment's product category to the machine
// that makes those products. Scanned up front into a name -> equipment
// lookup; a per-page equipment field never overrides a category mapping.
var artisanEquipment = []struct {
	category  string
	equipment string
}{
	{"Keg products", "Keg"},
	{"Preserves Jar products", "Preserves Jar"},
	{"Cheese Press products", "Cheese Press"},
	{"Mayonnaise Machine products", "Mayonnaise Machine"},
	{"Loom products", "Loom"},
	{"Oil Press products", "Oil Press"},
	{"Smoker products", "Smoker"},
	{"Dehydrator products", "Dehydrator"},
	{"Aging Barrel products", "Aging Barrel"},
	{"Bee House products", "Bee House"},
	{"Mill products", "Mill"},
}

func scrapeArtisanProducts(ctx context.Context, s *Scraper) []catalog.Record {
	equipmentByName := map[string]string{}
	for _, entry := range artisanEquipment {
		for _, name := range s.site.CategoryMembers(ctx, entry.category) {
			if _, taken := equipmentByName[name]; !taken {
				equipmentByName[name] = entry.equipment
			}
		}
	}

	records := s.memberRecords(ctx, "Artisan products", nil)

	// applied after enrichment: the category mapping is authoritative over
	// whatever the page's own equipment field said
	for i := range records {
		if equipment, ok := equipmentByName[records[i].Name]; ok {
			records[i].SetMeta("equipment", equipment)
		}
	}
	return records
}
