package db

import (
	"context"
	"database/sql"
)

const getCategoryBySlug = `
SELECT id, slug, name FROM category WHERE slug = ?
`

func (q *Queries) GetCategoryBySlug(ctx context.Context, slug string) (Category, error) {
	row := q.db.QueryRowContext(ctx, getCategoryBySlug, slug)
	var c Category
	err := row.Scan(&c.ID, &c.Slug, &c.Name)
	return c, err
}

const listCategories = `
SELECT id, slug, name FROM category ORDER BY id
`

func (q *Queries) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := q.db.QueryContext(ctx, listCategories)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Slug, &c.Name); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

const getItem = `
SELECT id, category_id, slug, name, rarity, seasons, time_of_day, weather,
       locations, base_price, image_url, description, metadata, updated_at
FROM item
WHERE category_id = ? AND slug = ?
`

type GetItemParams struct {
	CategoryID int64
	Slug       string
}

func (q *Queries) GetItem(ctx context.Context, arg GetItemParams) (Item, error) {
	row := q.db.QueryRowContext(ctx, getItem, arg.CategoryID, arg.Slug)
	var i Item
	err := row.Scan(
		&i.ID, &i.CategoryID, &i.Slug, &i.Name, &i.Rarity,
		&i.Seasons, &i.TimeOfDay, &i.Weather, &i.Locations,
		&i.BasePrice, &i.ImageUrl, &i.Description, &i.Metadata, &i.UpdatedAt,
	)
	return i, err
}

const upsertItem = `
INSERT INTO item (
    category_id, slug, name, rarity, seasons, time_of_day, weather,
    locations, base_price, image_url, description, metadata, updated_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (category_id, slug) DO UPDATE SET
    name = excluded.name,
    rarity = excluded.rarity,
    seasons = excluded.seasons,
    time_of_day = excluded.time_of_day,
    weather = excluded.weather,
    locations = excluded.locations,
    base_price = excluded.base_price,
    image_url = excluded.image_url,
    description = excluded.description,
    metadata = excluded.metadata,
    updated_at = excluded.updated_at
`

type UpsertItemParams struct {
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

func (q *Queries) UpsertItem(ctx context.Context, arg UpsertItemParams) error {
	_, err := q.db.ExecContext(ctx, upsertItem,
		arg.CategoryID, arg.Slug, arg.Name, arg.Rarity,
		arg.Seasons, arg.TimeOfDay, arg.Weather, arg.Locations,
		arg.BasePrice, arg.ImageUrl, arg.Description, arg.Metadata, arg.UpdatedAt,
	)
	return err
}

const deleteItemsInCategory = `
DELETE FROM item WHERE category_id = ?
`

func (q *Queries) DeleteItemsInCategory(ctx context.Context, categoryID int64) error {
	_, err := q.db.ExecContext(ctx, deleteItemsInCategory, categoryID)
	return err
}

const countItemsInCategory = `
SELECT COUNT(*) FROM item WHERE category_id = ?
`

func (q *Queries) CountItemsInCategory(ctx context.Context, categoryID int64) (int64, error) {
	row := q.db.QueryRowContext(ctx, countItemsInCategory, categoryID)
	var n int64
	err := row.Scan(&n)
	return n, err
}
