package infobox

import (
	"strings"

	"coraldex/lib/wikitext"

	"github.com/PuerkitoBio/goquery"
)

// qualityKeys are the sell-price tiers a price grid may carry, in the order
// the wiki renders them.
var qualityKeys = []string{"base", "bronze", "silver", "gold", "osmium"}

// priceTables scans the infobox's captioned sub-tables for sell-price grids
// (quality tier columns over one price row). The first grid whose caption
// does not mention the sell-perk variant is authoritative for the base
// price; the perk variant is kept separately.
func (p parser) priceTables() (prices, perkPrices map[string]int64) {
	p.root.Find("table").Each(func(_ int, table *goquery.Selection) {
		caption := strings.ToLower(wikitext.StripMarkup(table.Find("caption").First().Text()))
		if !strings.Contains(caption, "sell price") && !strings.Contains(caption, "prices") {
			return
		}

		grid := parsePriceGrid(table)
		if len(grid) == 0 {
			return
		}

		if strings.Contains(caption, "perk") {
			if perkPrices == nil {
				perkPrices = grid
			}
			return
		}
		if prices == nil {
			prices = grid
		}
	})
	return prices, perkPrices
}

// parsePriceGrid reads one price per known quality key out of a grid whose
// header row names the tiers and whose following row carries the values.
func parsePriceGrid(table *goquery.Selection) map[string]int64 {
	columns := map[int]string{}
	table.Find("th").Each(func(i int, th *goquery.Selection) {
		label := strings.ToLower(wikitext.StripMarkup(th.Text()))
		for _, key := range qualityKeys {
			if strings.Contains(label, key) {
				columns[i] = key
				return
			}
		}
	})
	if len(columns) == 0 {
		return nil
	}

	grid := map[string]int64{}
	table.Find("td").Each(func(i int, td *goquery.Selection) {
		key, ok := columns[i]
		if !ok {
			return
		}
		if price := wikitext.ParsePrice(td.Text()); price != nil {
			grid[key] = *price
		}
	})
	return grid
}

// seasonTable reads the checkbox-style season availability table: one
// column per season, where a checkmark glyph, an embedded checkmark image
// or any non-dash content marks the season available. Returns ok=false when
// the page has no such table so the caller can fall back to the free-text
// season field.
func (p parser) seasonTable() ([]string, bool) {
	var seasons []string
	found := false

	p.root.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		caption := strings.ToLower(wikitext.StripMarkup(table.Find("caption").First().Text()))
		if !strings.Contains(caption, "season") {
			return true
		}
		found = true

		columns := map[int]string{}
		table.Find("th").Each(func(i int, th *goquery.Selection) {
			label := strings.ToLower(wikitext.StripMarkup(th.Text()))
			for _, season := range wikitext.AllSeasons {
				if strings.Contains(label, season) {
					columns[i] = season
					return
				}
			}
		})

		table.Find("td").Each(func(i int, td *goquery.Selection) {
			season, ok := columns[i]
			if !ok {
				return
			}
			if cellChecked(td) {
				seasons = append(seasons, season)
			}
		})
		return false
	})

	return seasons, found
}

func cellChecked(td *goquery.Selection) bool {
	if td.Find("img").Length() > 0 {
		return true
	}
	text := wikitext.StripMarkup(td.Text())
	switch text {
	case "", "-", "—", "–":
		return false
	}
	return true
}
