// Package gifts parses a character page's gift preference table into
// ranked buckets. The table is not part of the infobox; callers fetch the
// "Gifts" section of the page separately and hand the rendered HTML here.
package gifts

import (
	"strings"

	"coraldex/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

// Preferences holds one character's gift preferences, one bucket per
// reaction tier. Buckets are deduplicated and keep table order.
type Preferences struct {
	Loved    []string `json:"loved,omitempty"`
	Liked    []string `json:"liked,omitempty"`
	Disliked []string `json:"disliked,omitempty"`
	Hated    []string `json:"hated,omitempty"`
}

// Empty reports whether no bucket holds any item.
func (p Preferences) Empty() bool {
	return len(p.Loved) == 0 && len(p.Liked) == 0 && len(p.Disliked) == 0 && len(p.Hated) == 0
}

var buckets = []string{"loved", "liked", "disliked", "hated"}

// ParseTable classifies each table row of the section HTML into one of the
// four reaction buckets and collects the item names linked from it. Rows
// that match no bucket are skipped. Items that appear only inside a
// collapsible "universal" sub-block are universal gifts, not this
// character's, and are removed before name extraction.
func ParseTable(html string) Preferences {
	var out Preferences
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return out
	}

	doc.Find("tr").Each(func(_ int, row *goquery.Selection) {
		bucket := classifyRow(row)
		if bucket == "" {
			return
		}

		row.Find(".mw-collapsible, .universal-gifts").Each(func(_ int, sub *goquery.Selection) {
			if isUniversalBlock(sub) {
				sub.Remove()
			}
		})

		names := linkedItemNames(row)
		switch bucket {
		case "loved":
			out.Loved = appendUnique(out.Loved, names)
		case "liked":
			out.Liked = appendUnique(out.Liked, names)
		case "disliked":
			out.Disliked = appendUnique(out.Disliked, names)
		case "hated":
			out.Hated = appendUnique(out.Hated, names)
		}
	})
	return out
}

// classifyRow finds the reaction tier of a row from the icon alt/title
// attributes in its header cell, falling back to the header cell's label
// text. Returns "" when the row carries no recognizable tier.
func classifyRow(row *goquery.Selection) string {
	header := row.Find("th").First()
	if header.Length() == 0 {
		header = row.Find("td").First()
	}
	if header.Length() == 0 {
		return ""
	}

	probe := strings.ToLower(htmlutil.GetText(header.Get(0)))
	header.Find("img").Each(func(_ int, img *goquery.Selection) {
		probe += " " + strings.ToLower(img.AttrOr("alt", ""))
		probe += " " + strings.ToLower(img.AttrOr("title", ""))
	})

	// "disliked" contains "liked"; longest match first
	for _, bucket := range []string{"disliked", "loved", "hated", "liked"} {
		if strings.Contains(probe, bucket) {
			return bucket
		}
	}
	if strings.Contains(probe, "love") {
		return "loved"
	}
	if strings.Contains(probe, "hate") {
		return "hated"
	}
	return ""
}

func isUniversalBlock(sub *goquery.Selection) bool {
	if strings.Contains(strings.ToLower(sub.AttrOr("class", "")), "universal") {
		return true
	}
	return strings.Contains(strings.ToLower(sub.Text()), "universal")
}

// linkedItemNames pulls item names from the title attribute of internal
// links, skipping media and category namespaces.
func linkedItemNames(row *goquery.Selection) []string {
	var names []string
	row.Find("a[title]").Each(func(_ int, link *goquery.Selection) {
		title := strings.TrimSpace(link.AttrOr("title", ""))
		if title == "" || strings.Contains(title, ":") {
			return
		}
		names = append(names, htmlutil.CleanText(title))
	})
	return names
}

func appendUnique(bucket, names []string) []string {
	seen := make(map[string]bool, len(bucket))
	for _, name := range bucket {
		seen[name] = true
	}
	for _, name := range names {
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		bucket = append(bucket, name)
	}
	return bucket
}
