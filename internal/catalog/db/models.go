package db

import "database/sql"

type Category struct {
	ID   int64
	Slug string
	Name string
}

// Item is the persisted row keyed by (category_id, slug). The availability
// sets and the metadata bag are stored as JSON text.
type Item struct {
	ID          int64
	CategoryID  int64
	Slug        string
	Name        string
	Rarity      sql.NullString
	Seasons     string
	TimeOfDay   string
	Weather     string
	Locations   string
	BasePrice   sql.NullInt64
	ImageUrl    sql.NullString
	Description sql.NullString
	Metadata    string
	UpdatedAt   int64
}
