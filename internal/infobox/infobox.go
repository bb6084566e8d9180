// Package infobox extracts the fixed vocabulary of semantic fields out of
// one page's rendered infobox HTML. Every field extraction is independent
// and tolerant of absence: a missing field is skipped, never an error.
//
// The wiki renders two structurally different infobox layouts: the portable
// infobox (nested blocks tagged with data-source attributes) and the classic
// table layout (label cell next to value cell). Field lookups try the
// portable layout first, then the table layout, returning the first match.
package infobox

import (
	"strings"

	"coraldex/lib/wikitext"

	"github.com/PuerkitoBio/goquery"
)

// assetHost identifies images served from the wiki's own asset CDN; used by
// the lazy-load fallback so external decoration images are never picked up.
const assetHost = "static.wiki.gg"

// Parsed is the partial record extracted from a single infobox. Empty
// availability sets mean the page gave no usable information for the field;
// strategies decide whether category-derived fallback applies.
type Parsed struct {
	ImageURL    string
	Description string
	Rarity      string
	Type        string
	Seasons     []string
	TimeOfDay   []string
	Weather     []string
	Locations   []string
	BasePrice   *int64
	Metadata    map[string]any
}

type parser struct {
	root *goquery.Selection
}

// Parse extracts all recognized fields from a page's rendered HTML. It
// never fails: unusable HTML simply yields an empty result.
func Parse(html string) Parsed {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return Parsed{}
	}

	root := doc.Find("aside.portable-infobox").First()
	if root.Length() == 0 {
		root = doc.Find("table.infobox").First()
	}
	if root.Length() == 0 {
		return Parsed{}
	}
	p := parser{root: root}

	out := Parsed{
		ImageURL:    p.image(),
		Description: p.description(),
		Metadata:    map[string]any{},
	}

	if text, ok := p.field("location"); ok {
		out.Locations = dedupe(wikitext.ParseLocations(text))
	}
	if text, ok := p.field("weather"); ok {
		out.Weather = wikitext.ParseWeather(text)
	}
	if text, ok := p.field("time"); ok {
		out.TimeOfDay = wikitext.ParseTimeOfDay(text)
	}
	if text, ok := p.field("rarity"); ok {
		out.Rarity = wikitext.ParseRarity(text)
	}
	if text, ok := p.field("type"); ok {
		out.Type = text
	}

	// the checkbox table wins outright over the free-text season field
	if seasons, ok := p.seasonTable(); ok {
		out.Seasons = seasons
	} else if text, ok := p.field("season"); ok {
		out.Seasons = wikitext.ParseSeasons(text)
	}

	prices, perkPrices := p.priceTables()
	if len(prices) > 0 {
		out.Metadata["prices"] = prices
		if base, ok := prices["base"]; ok {
			out.BasePrice = &base
		}
	}
	if len(perkPrices) > 0 {
		out.Metadata["prices_with_perk"] = perkPrices
	}
	if out.BasePrice == nil {
		if text, ok := p.field("price"); ok {
			out.BasePrice = wikitext.ParsePrice(text)
		}
	}

	p.fishExtras(&out)
	p.cropExtras(&out)
	p.artisanExtras(&out)
	p.characterExtras(&out)

	return out
}

// field locates a labeled data row by its semantic key, trying the portable
// layout then the classic table layout.
func (p parser) field(key string) (string, bool) {
	// layout A: <div class="pi-item" data-source="key">...<div class="pi-data-value">
	value := p.root.Find("[data-source='" + key + "'] .pi-data-value").First()
	if value.Length() > 0 {
		html, err := value.Html()
		if err == nil {
			return wikitext.StripMarkup(html), true
		}
	}

	// layout B: <tr><th>Label</th><td>value</td></tr>
	found := ""
	ok := false
	p.root.Find("tr").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		label := strings.ToLower(strings.TrimSpace(row.Find("th").First().Text()))
		if label != key {
			return true
		}
		cell := row.Find("td").First()
		if cell.Length() == 0 {
			return true
		}
		html, err := cell.Html()
		if err != nil {
			return true
		}
		found = wikitext.StripMarkup(html)
		ok = true
		return false
	})
	return found, ok
}

func (p parser) image() string {
	// primary: figure-linked image inside the infobox image block
	img := p.root.Find("figure.pi-image a img, .pi-image img").First()
	if src, ok := img.Attr("src"); ok && src != "" {
		return src
	}

	// fallback: any infobox-scoped lazy-load image pointing at the asset host
	found := ""
	p.root.Find("img").EachWithBreak(func(_ int, img *goquery.Selection) bool {
		src := img.AttrOr("data-src", "")
		if strings.Contains(src, assetHost) {
			found = src
			return false
		}
		return true
	})
	return found
}

func (p parser) description() string {
	caption := p.root.Find("figcaption.pi-caption, .pi-caption").First()
	if caption.Length() == 0 {
		caption = p.root.Find("figcaption").First()
	}
	if caption.Length() == 0 {
		return ""
	}
	html, err := caption.Html()
	if err != nil {
		return ""
	}
	return wikitext.StripMarkup(html)
}

func dedupe(values []string) []string {
	seen := make(map[string]bool, len(values))
	var out []string
	for _, v := range values {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
