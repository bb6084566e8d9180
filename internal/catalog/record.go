// Package catalog owns the normalized record model and the merge/upsert
// path that reconciles freshly scraped data with previously persisted rows.
package catalog

// Record is the unit of output of one category scrape. Instances are built
// fresh every run and never mutated after being handed to the Writer.
//
// Seasons, TimeOfDay and Weather are availability sets: an empty set means
// "unrestricted", never "unknown". Parsers and the writer must not conflate
// an absent field with an intentionally empty set.
type Record struct {
	Name        string
	Rarity      string // "" when the page gave no rarity
	Seasons     []string
	TimeOfDay   []string
	Weather     []string
	Locations   []string
	BasePrice   *int64
	ImageURL    string
	Description string
	// Metadata is an open category-specific bag (growth_days, equipment,
	// gift_preferences, prices, altar, ...). On repeat runs it is merged by
	// key rather than replaced wholesale.
	Metadata map[string]any
}

// SetMeta lazily initializes the bag; nil values are dropped so an absent
// field never materializes a key.
func (r *Record) SetMeta(key string, value any) {
	if value == nil {
		return
	}
	if r.Metadata == nil {
		r.Metadata = map[string]any{}
	}
	r.Metadata[key] = value
}
