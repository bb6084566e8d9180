package catalog

import (
	"context"
	"encoding/json"
	"testing"

	"coraldex/internal/catalog/db"
	"coraldex/lib/sqliteutil"
	"coraldex/lib/telemetry"

	"github.com/stretchr/testify/require"
)

func setupWriter(t *testing.T) (Writer, *db.Queries) {
	cleanup := telemetry.SetupForTesting(t, "test:internal/catalog")
	t.Cleanup(cleanup)

	database, err := sqliteutil.OpenDB(db.Schema, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	return NewWriter(database), db.New(database)
}

func price(n int64) *int64 { return &n }

func TestWriteInsertsAndCounts(t *testing.T) {
	writer, qry := setupWriter(t)
	ctx := context.Background()

	n, err := writer.Write(ctx, "fish", []Record{
		{Name: "Tuna", Seasons: []string{"spring"}, BasePrice: price(100)},
		{Name: "Blue Tang"},
		{Name: ""}, // nameless records are skipped, not an error
	})
	require.NoError(t, err)
	require.Equal(t, 2, n)

	category, err := qry.GetCategoryBySlug(ctx, "fish")
	require.NoError(t, err)
	count, err := qry.CountItemsInCategory(ctx, category.ID)
	require.NoError(t, err)
	require.Equal(t, int64(2), count)
}

func TestWriteUnknownCategory(t *testing.T) {
	writer, _ := setupWriter(t)

	_, err := writer.Write(context.Background(), "spaceships", []Record{{Name: "X"}})
	require.Error(t, err)
}

func TestRescrapeIsUpdateNotDuplicate(t *testing.T) {
	writer, qry := setupWriter(t)
	ctx := context.Background()

	_, err := writer.Write(ctx, "crops", []Record{{Name: "Rambutan (Fruit)"}})
	require.NoError(t, err)
	// different display spelling, same slug
	_, err = writer.Write(ctx, "crops", []Record{{Name: "rambutan fruit"}})
	require.NoError(t, err)

	category, err := qry.GetCategoryBySlug(ctx, "crops")
	require.NoError(t, err)
	count, err := qry.CountItemsInCategory(ctx, category.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), count)

	item, err := qry.GetItem(ctx, db.GetItemParams{CategoryID: category.ID, Slug: "rambutan-fruit"})
	require.NoError(t, err)
	require.Equal(t, "rambutan fruit", item.Name)
}

func TestMergeRetainsAbsentScalars(t *testing.T) {
	writer, qry := setupWriter(t)
	ctx := context.Background()

	_, err := writer.Write(ctx, "fish", []Record{{
		Name:        "Tuna",
		Rarity:      "rare",
		BasePrice:   price(100),
		ImageURL:    "https://img.example/tuna.png",
		Description: "A big fish.",
	}})
	require.NoError(t, err)

	// a later scrape where the page lost those fields must not erase them
	_, err = writer.Write(ctx, "fish", []Record{{Name: "Tuna"}})
	require.NoError(t, err)

	category, err := qry.GetCategoryBySlug(ctx, "fish")
	require.NoError(t, err)
	item, err := qry.GetItem(ctx, db.GetItemParams{CategoryID: category.ID, Slug: "tuna"})
	require.NoError(t, err)
	require.Equal(t, "rare", item.Rarity.String)
	require.Equal(t, int64(100), item.BasePrice.Int64)
	require.Equal(t, "https://img.example/tuna.png", item.ImageUrl.String)
	require.Equal(t, "A big fish.", item.Description.String)
}

func TestMergeNewWinsForAvailabilitySets(t *testing.T) {
	writer, qry := setupWriter(t)
	ctx := context.Background()

	_, err := writer.Write(ctx, "fish", []Record{{
		Name:    "Tuna",
		Seasons: []string{"spring"},
		Weather: []string{"rain"},
	}})
	require.NoError(t, err)

	// explicitly unrestricted now: the empty set must overwrite
	_, err = writer.Write(ctx, "fish", []Record{{Name: "Tuna"}})
	require.NoError(t, err)

	category, err := qry.GetCategoryBySlug(ctx, "fish")
	require.NoError(t, err)
	item, err := qry.GetItem(ctx, db.GetItemParams{CategoryID: category.ID, Slug: "tuna"})
	require.NoError(t, err)
	require.JSONEq(t, `[]`, item.Seasons)
	require.JSONEq(t, `[]`, item.Weather)
}

func TestMergeMetadataByKey(t *testing.T) {
	writer, qry := setupWriter(t)
	ctx := context.Background()

	_, err := writer.Write(ctx, "crops", []Record{{
		Name:     "Taro",
		Metadata: map[string]any{"growth_days": 10, "seed_name": "Taro Seeds"},
	}})
	require.NoError(t, err)

	_, err = writer.Write(ctx, "crops", []Record{{
		Name:     "Taro",
		Metadata: map[string]any{"growth_days": 12},
	}})
	require.NoError(t, err)

	category, err := qry.GetCategoryBySlug(ctx, "crops")
	require.NoError(t, err)
	item, err := qry.GetItem(ctx, db.GetItemParams{CategoryID: category.ID, Slug: "taro"})
	require.NoError(t, err)

	var meta map[string]any
	require.NoError(t, json.Unmarshal([]byte(item.Metadata), &meta))
	require.EqualValues(t, 12, meta["growth_days"])
	require.Equal(t, "Taro Seeds", meta["seed_name"])
}

func TestClear(t *testing.T) {
	writer, qry := setupWriter(t)
	ctx := context.Background()

	_, err := writer.Write(ctx, "gems", []Record{{Name: "Opal"}, {Name: "Topaz"}})
	require.NoError(t, err)
	require.NoError(t, writer.Clear(ctx, "gems"))

	category, err := qry.GetCategoryBySlug(ctx, "gems")
	require.NoError(t, err)
	count, err := qry.CountItemsInCategory(ctx, category.ID)
	require.NoError(t, err)
	require.Zero(t, count)
}
