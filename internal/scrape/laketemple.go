package scrape

import (
	"context"

	"coraldex/internal/catalog"
)

// The Lake Temple offerings are not scraped. The altar layout changes with
// game patches, not wiki edits, so the table is maintained by hand and the
// strategy exists only to push the data through the same normalization and
// write path as everything else.

type offering struct {
	altar  string
	name   string
	items  []string
	reward string
}

var lakeTempleOfferings = []offering{
	{
		altar:  "Harvest Altar",
		name:   "Spring Harvest Offering",
		items:  []string{"Taro", "Peanut", "Cucumber", "Strawberry", "Iris"},
		reward: "Farm sprinklers",
	},
	{
		altar:  "Harvest Altar",
		name:   "Summer Harvest Offering",
		items:  []string{"Pineapple", "Chili Pepper", "Melon", "Sunflower"},
		reward: "Quality fertilizer recipe",
	},
	{
		altar:  "Harvest Altar",
		name:   "Fall Harvest Offering",
		items:  []string{"Pumpkin", "Grapes", "Sweet Potato", "Amaranth"},
		reward: "Seed maker",
	},
	{
		altar:  "Ocean Altar",
		name:   "Reef Fish Offering",
		items:  []string{"Clownfish", "Blue Tang", "Lionfish", "Parrotfish"},
		reward: "Diving gear upgrade",
	},
	{
		altar:  "Ocean Altar",
		name:   "Deep Sea Offering",
		items:  []string{"Tuna", "Swordfish", "Anglerfish"},
		reward: "Crab pots",
	},
	{
		altar:  "Forest Altar",
		name:   "Foraging Offering",
		items:  []string{"Coconut", "Wild Honey", "Morel", "Fiddlehead Fern"},
		reward: "Greenhouse repair",
	},
	{
		altar:  "Forest Altar",
		name:   "Scavenging Offering",
		items:  []string{"Sea Grapes", "Sea Urchin", "Scallop", "Nautilus Shell"},
		reward: "Beach bridge repair",
	},
	{
		altar:  "Mines Altar",
		name:   "Gemstone Offering",
		items:  []string{"Amethyst", "Topaz", "Emerald", "Ruby", "Diamond"},
		reward: "Minecart access",
	},
	{
		altar:  "Mines Altar",
		name:   "Artifact Offering",
		items:  []string{"Ancient Coin", "Broken Vase", "Stone Tablet"},
		reward: "Museum wing expansion",
	},
}

// offeringImages carries one constant illustration per offering name. The
// wiki has no per-item pages for these, so the image cannot be scraped.
var offeringImages = map[string]string{
	"Spring Harvest Offering": "https://static.wiki.gg/coraldex/images/offering_spring.png",
	"Summer Harvest Offering": "https://static.wiki.gg/coraldex/images/offering_summer.png",
	"Fall Harvest Offering":   "https://static.wiki.gg/coraldex/images/offering_fall.png",
	"Reef Fish Offering":      "https://static.wiki.gg/coraldex/images/offering_reef.png",
	"Deep Sea Offering":       "https://static.wiki.gg/coraldex/images/offering_deep.png",
	"Foraging Offering":       "https://static.wiki.gg/coraldex/images/offering_forage.png",
	"Scavenging Offering":     "https://static.wiki.gg/coraldex/images/offering_scavenge.png",
	"Gemstone Offering":       "https://static.wiki.gg/coraldex/images/offering_gems.png",
	"Artifact Offering":       "https://static.wiki.gg/coraldex/images/offering_artifacts.png",
}

func emitLakeTemple(_ context.Context, _ *Scraper) []catalog.Record {
	records := make([]catalog.Record, 0, len(lakeTempleOfferings))
	for _, o := range lakeTempleOfferings {
		rec := catalog.Record{
			Name:     o.name,
			ImageURL: offeringImages[o.name],
		}
		rec.SetMeta("altar", o.altar)
		rec.SetMeta("required_items", o.items)
		rec.SetMeta("reward", o.reward)
		records = append(records, rec)
	}
	return records
}
