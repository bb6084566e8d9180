// Package wikitext normalizes the free-text fragments found in wiki infobox
// fields into canonical values. Every function is total: unparseable input
// yields the "no information" value for its type, never an error.
package wikitext

import (
	"regexp"
	"strconv"
	"strings"
)

// Canonical availability values, in display order.
var (
	AllSeasons = []string{"spring", "summer", "fall", "winter"}
	AllTimes   = []string{"morning", "afternoon", "evening", "night"}
	AllWeather = []string{"sunny", "windy", "rain", "storm", "snow", "blizzard"}
)

// Rarity scalars, lowest to highest.
const (
	RarityCommon    = "common"
	RarityUncommon  = "uncommon"
	RarityRare      = "rare"
	RaritySuperRare = "super_rare"
	RarityEpic      = "epic"
	RarityLegendary = "legendary"
)

var (
	tagRegex        = regexp.MustCompile(`<[^>]*>`)
	numericEntity   = regexp.MustCompile(`&#\d+;`)
	whitespaceRegex = regexp.MustCompile(`\s+`)
)

var namedEntities = strings.NewReplacer(
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#39;", "'",
	"&apos;", "'",
	"&nbsp;", " ",
)

// StripMarkup removes tags and entities from a rendered HTML fragment,
// collapses bullet separators to commas and squeezes whitespace. It is
// idempotent: tag stripping and entity decoding repeat until stable, since
// decoding an entity-encoded bracket can surface a tag that a single pass
// would leave behind.
func StripMarkup(text string) string {
	for {
		next := tagRegex.ReplaceAllString(text, "")
		next = namedEntities.Replace(next)
		next = numericEntity.ReplaceAllString(next, "")
		if next == text {
			break
		}
		text = next
	}
	text = strings.ReplaceAll(text, "•", ",")
	text = whitespaceRegex.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

var anySeasonRegex = regexp.MustCompile(`(?i)\b(all|any)\b.{0,10}\bseasons?\b|\bseasons?\b.{0,10}\b(all|any)\b`)

var seasonPatterns = []struct {
	name  string
	match *regexp.Regexp
}{
	{"spring", regexp.MustCompile(`(?i)\b(spring|spr)\b`)},
	{"summer", regexp.MustCompile(`(?i)\b(summer|sum)\b`)},
	{"fall", regexp.MustCompile(`(?i)\b(fall|autumn)\b`)},
	{"winter", regexp.MustCompile(`(?i)\b(winter|win)\b`)},
}

// ParseSeasons maps free text to the set of seasons it names. An explicit
// "all/any season" phrase short-circuits to the full set. The empty result
// means unrestricted, per the availability-set convention.
func ParseSeasons(text string) []string {
	if anySeasonRegex.MatchString(text) {
		return append([]string{}, AllSeasons...)
	}

	var out []string
	for _, p := range seasonPatterns {
		if p.match.MatchString(text) {
			out = append(out, p.name)
		}
	}
	return out
}

var (
	allDayRegex   = regexp.MustCompile(`(?i)\b(all|any)\b.{0,10}\b(day|time)s?\b`)
	bareDayRegex  = regexp.MustCompile(`(?i)\bday(time)?\b`)
	nightRegex    = regexp.MustCompile(`(?i)\bnight\b`)
	timeOfDayList = []struct {
		name  string
		match *regexp.Regexp
	}{
		{"morning", regexp.MustCompile(`(?i)\bmorning\b`)},
		{"afternoon", regexp.MustCompile(`(?i)\bafternoon\b`)},
		{"evening", regexp.MustCompile(`(?i)\bevening\b`)},
		{"night", nightRegex},
	}
)

// ParseTimeOfDay maps free text to the set of day periods it names. A bare
// "day" without "night" covers morning through evening.
func ParseTimeOfDay(text string) []string {
	if allDayRegex.MatchString(text) {
		return append([]string{}, AllTimes...)
	}

	var out []string
	for _, p := range timeOfDayList {
		if p.match.MatchString(text) {
			out = append(out, p.name)
		}
	}
	if len(out) == 0 && bareDayRegex.MatchString(text) {
		return []string{"morning", "afternoon", "evening"}
	}
	return out
}

var (
	anyWeatherRegex = regexp.MustCompile(`(?i)\b(any|all)\b`)
	rainWordRegex   = regexp.MustCompile(`(?i)\brain(y|ing)?\b`)
)

// ParseWeather maps free text to the set of weather conditions it names.
// "any"/"all" yields the empty set: unrestricted, not "no weather". Rain is
// matched on a word boundary so "Rainstorm" counts as storm, not both.
func ParseWeather(text string) []string {
	if anyWeatherRegex.MatchString(text) {
		return nil
	}

	lower := strings.ToLower(text)
	var out []string
	for _, w := range AllWeather {
		switch w {
		case "rain":
			if rainWordRegex.MatchString(text) {
				out = append(out, w)
			}
		case "sunny":
			if strings.Contains(lower, "sunny") || strings.Contains(lower, "sun") {
				out = append(out, w)
			}
		case "windy":
			if strings.Contains(lower, "wind") {
				out = append(out, w)
			}
		default:
			if strings.Contains(lower, w) {
				out = append(out, w)
			}
		}
	}
	return out
}

// ParseRarity resolves a rarity keyword with higher tiers taking precedence,
// defaulting to common.
func ParseRarity(text string) string {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "legendary"):
		return RarityLegendary
	case strings.Contains(lower, "epic"):
		return RarityEpic
	case strings.Contains(lower, "super rare"), strings.Contains(lower, "super_rare"):
		return RaritySuperRare
	case strings.Contains(lower, "rare"):
		return RarityRare
	case strings.Contains(lower, "uncommon"):
		return RarityUncommon
	default:
		return RarityCommon
	}
}

var (
	basePriceRegex = regexp.MustCompile(`(?i)base:?\s*([\d,]+)`)
	leadingInt     = regexp.MustCompile(`\d[\d,]*`)
)

// ParsePrice extracts an integer price from free text, preferring an
// explicit "Base: N" pattern over the first integer run. Returns nil when
// no digits are present.
func ParsePrice(text string) *int64 {
	groups := basePriceRegex.FindStringSubmatch(text)
	raw := ""
	if len(groups) == 2 {
		raw = groups[1]
	} else {
		raw = leadingInt.FindString(text)
	}
	if raw == "" {
		return nil
	}

	raw = strings.ReplaceAll(raw, ",", "")
	raw = strings.TrimSpace(raw)
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil
	}
	return &n
}

var locationSplit = regexp.MustCompile(`[•,\n;]`)

const maxLocationLen = 60

// ParseLocations splits a location field into individual place names,
// dropping empty, purely numeric and implausibly long fragments.
func ParseLocations(text string) []string {
	var out []string
	for _, frag := range locationSplit.Split(text, -1) {
		frag = strings.TrimSpace(frag)
		if frag == "" || len(frag) > maxLocationLen {
			continue
		}
		if _, err := strconv.Atoi(frag); err == nil {
			continue
		}
		out = append(out, frag)
	}
	return out
}

// TitleCase capitalizes a canonical lowercase value for use in wiki
// category names ("spring" -> "Spring").
func TitleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

var nonAlnumRun = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives the stable natural key used alongside category id:
// lowercase, non-alphanumeric runs collapsed to single hyphens.
func Slugify(name string) string {
	slug := strings.ToLower(name)
	slug = nonAlnumRun.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}
