package infobox

import (
	"regexp"
	"strings"

	"coraldex/lib/wikitext"
)

// Category-specific infobox extras. Each one is independent and optional;
// the absence of one never blocks the others.

func (p parser) fishExtras(out *Parsed) {
	if text, ok := p.field("difficulty"); ok {
		out.Metadata["difficulty"] = text
	}
	if text, ok := p.field("size"); ok {
		out.Metadata["size"] = text
	}
	if text, ok := p.field("pattern"); ok {
		out.Metadata["pattern"] = text
	}
}

var (
	seedRegex    = regexp.MustCompile(`^(.*?)\s*\(\s*([\d,]+)`)
	daysRegex    = regexp.MustCompile(`([\d,]+)\s*day`)
	regrowRegex  = regexp.MustCompile(`(?i)regrows?\D*?([\d,]+)`)
	hoursRegex   = regexp.MustCompile(`([\d,]+)\s*hour`)
	minutesRegex = regexp.MustCompile(`([\d,]+)\s*min`)
)

func (p parser) cropExtras(out *Parsed) {
	// seed renders as a combined "Taro Seeds (25g)" string
	if text, ok := p.field("seed"); ok {
		if groups := seedRegex.FindStringSubmatch(text); len(groups) == 3 {
			out.Metadata["seed_name"] = strings.TrimSpace(groups[1])
			if price := wikitext.ParsePrice(groups[2]); price != nil {
				out.Metadata["seed_price"] = *price
			}
		} else if text != "" {
			out.Metadata["seed_name"] = text
		}
	}

	if text, ok := p.field("growth"); ok {
		if groups := daysRegex.FindStringSubmatch(text); len(groups) == 2 {
			if days := wikitext.ParsePrice(groups[1]); days != nil {
				out.Metadata["growth_days"] = *days
			}
		}
		if groups := regrowRegex.FindStringSubmatch(text); len(groups) == 2 {
			if days := wikitext.ParsePrice(groups[1]); days != nil {
				out.Metadata["regrowth_days"] = *days
			}
		}
	}
	if text, ok := p.field("regrowth"); ok {
		if days := wikitext.ParsePrice(text); days != nil {
			out.Metadata["regrowth_days"] = *days
		}
	}
	if text, ok := p.field("unlock"); ok {
		out.Metadata["unlock"] = text
	}
}

func (p parser) artisanExtras(out *Parsed) {
	if text, ok := p.field("equipment"); ok {
		out.Metadata["equipment"] = text
	}
	if text, ok := p.field("input"); ok {
		out.Metadata["input"] = text
	}

	// processing time renders as exactly one of "N days", "N hours" or
	// "N minutes"; only the matching bucket is populated
	if text, ok := p.field("processing"); ok {
		switch {
		case daysRegex.MatchString(text):
			if n := wikitext.ParsePrice(daysRegex.FindStringSubmatch(text)[1]); n != nil {
				out.Metadata["processing_days"] = *n
			}
		case hoursRegex.MatchString(text):
			if n := wikitext.ParsePrice(hoursRegex.FindStringSubmatch(text)[1]); n != nil {
				out.Metadata["processing_hours"] = *n
			}
		case minutesRegex.MatchString(text):
			if n := wikitext.ParsePrice(minutesRegex.FindStringSubmatch(text)[1]); n != nil {
				out.Metadata["processing_minutes"] = *n
			}
		}
	}
}

// birthday and residence live in character infoboxes; the richer inline
// markup some pages wrap around the text is already stripped by field().
func (p parser) characterExtras(out *Parsed) {
	if text, ok := p.field("birthday"); ok {
		out.Metadata["birthday"] = text
	}
	if text, ok := p.field("residence"); ok {
		out.Metadata["residence"] = text
	}
}
