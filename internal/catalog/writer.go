package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"coraldex/internal/catalog/db"
	"coraldex/lib/wikitext"

	"dario.cat/mergo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = otel.Tracer("coraldex/catalog")

type Writer struct {
	db  *sql.DB
	qry *db.Queries
}

func NewWriter(database *sql.DB) Writer {
	return Writer{
		db:  database,
		qry: db.New(database),
	}
}

// Write upserts a batch of records into a category. A missing category
// aborts the whole batch; a failure on one item is logged and skipped so the
// rest of the batch still lands. Returns the number of records written.
func (w Writer) Write(ctx context.Context, categorySlug string, records []Record) (int, error) {
	ctx, span := tracer.Start(ctx, "Write")
	defer span.End()
	span.SetAttributes(
		attribute.String("category", categorySlug),
		attribute.Int("records", len(records)),
	)

	category, err := w.qry.GetCategoryBySlug(ctx, categorySlug)
	if err != nil {
		return 0, fmt.Errorf("look up category %q: %w", categorySlug, err)
	}

	written := 0
	for _, rec := range records {
		if rec.Name == "" {
			continue
		}
		if err := w.writeOne(ctx, category.ID, rec); err != nil {
			slog.ErrorContext(ctx, "failed to write item",
				"category", categorySlug,
				"name", rec.Name,
				"err", err,
			)
			continue
		}
		written++
	}

	span.SetAttributes(attribute.Int("written", written))
	return written, nil
}

// Clear removes all persisted items for a category.
func (w Writer) Clear(ctx context.Context, categorySlug string) error {
	category, err := w.qry.GetCategoryBySlug(ctx, categorySlug)
	if err != nil {
		return fmt.Errorf("look up category %q: %w", categorySlug, err)
	}
	return w.qry.DeleteItemsInCategory(ctx, category.ID)
}

// writeOne applies the field-level merge against the previously persisted
// row and performs the upsert in its own transaction, so a failure here
// cannot partially apply mutations for another item.
//
// Precedence: name and the availability sets, locations and metadata always
// reflect the fresh scrape (an intentionally empty set overwrites); rarity,
// price, image and description only move forward when the new value is
// present, so a page that stopped rendering a field does not erase history.
func (w Writer) writeOne(ctx context.Context, categoryID int64, rec Record) error {
	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	txqry := w.qry.WithTx(tx)

	slug := wikitext.Slugify(rec.Name)
	if slug == "" {
		return fmt.Errorf("name %q produced an empty slug", rec.Name)
	}

	old, err := txqry.GetItem(ctx, db.GetItemParams{
		CategoryID: categoryID,
		Slug:       slug,
	})
	exists := err == nil
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	params := db.UpsertItemParams{
		CategoryID: categoryID,
		Slug:       slug,
		Name:       rec.Name,
		Seasons:    marshalList(rec.Seasons),
		TimeOfDay:  marshalList(rec.TimeOfDay),
		Weather:    marshalList(rec.Weather),
		Locations:  marshalList(rec.Locations),
		UpdatedAt:  time.Now().Unix(),
	}

	params.Rarity = sql.NullString{String: rec.Rarity, Valid: rec.Rarity != ""}
	if rec.Rarity == "" && exists {
		params.Rarity = old.Rarity
	}
	params.BasePrice = sql.NullInt64{}
	if rec.BasePrice != nil {
		params.BasePrice = sql.NullInt64{Int64: *rec.BasePrice, Valid: true}
	} else if exists {
		params.BasePrice = old.BasePrice
	}
	params.ImageUrl = sql.NullString{String: rec.ImageURL, Valid: rec.ImageURL != ""}
	if rec.ImageURL == "" && exists {
		params.ImageUrl = old.ImageUrl
	}
	params.Description = sql.NullString{String: rec.Description, Valid: rec.Description != ""}
	if rec.Description == "" && exists {
		params.Description = old.Description
	}

	metadata, err := mergeMetadata(rec.Metadata, old.Metadata, exists)
	if err != nil {
		return err
	}
	params.Metadata = metadata

	if err := txqry.UpsertItem(ctx, params); err != nil {
		return err
	}
	return tx.Commit()
}

// mergeMetadata keeps the fresh scrape authoritative for every key it
// produced while retaining previously stored keys the page no longer
// renders.
func mergeMetadata(fresh map[string]any, storedJSON string, exists bool) (string, error) {
	merged := map[string]any{}
	for k, v := range fresh {
		merged[k] = v
	}

	if exists && storedJSON != "" {
		var stored map[string]any
		if err := json.Unmarshal([]byte(storedJSON), &stored); err == nil {
			if err := mergo.Merge(&merged, stored); err != nil {
				return "", err
			}
		}
	}

	out, err := json.Marshal(merged)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func marshalList(values []string) string {
	if values == nil {
		values = []string{}
	}
	out, err := json.Marshal(values)
	if err != nil {
		return "[]"
	}
	return string(out)
}
