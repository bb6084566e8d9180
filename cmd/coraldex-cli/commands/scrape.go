package commands

import (
	"log/slog"
	"os"
	"time"

	"coraldex/internal/catalog"
	"coraldex/internal/catalog/db"
	"coraldex/internal/scrape"
	"coraldex/lib/serviceutil"
	"coraldex/lib/sqliteutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	scrapeDb    *string
	scrapeFast  *bool
	scrapeClear *bool
)

func init() {
	scrapeDb = scrapeCmd.Flags().String("db", "", "The database to write scrape results to (overrides config).")
	scrapeFast = scrapeCmd.Flags().Bool("fast", false, "Skip per-page fetches; build records from category membership only.")
	scrapeClear = scrapeCmd.Flags().Bool("clear", false, "Delete existing rows for the selected categories before writing.")
	rootCmd.AddCommand(scrapeCmd)
}

type categorySummary struct {
	category    string
	written     int
	withImage   int
	withPrice   int
	withSeasons int
}

func summarize(category string, written int, records []catalog.Record) categorySummary {
	out := categorySummary{category: category, written: written}
	for _, rec := range records {
		if rec.ImageURL != "" {
			out.withImage++
		}
		if rec.BasePrice != nil {
			out.withPrice++
		}
		if len(rec.Seasons) > 0 {
			out.withSeasons++
		}
	}
	return out
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape [--fast] [--clear] [--db <path/to/output.db>] [category ...]",
	Short: "Scrapes the selected catalog categories from the wiki into a database.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := readConfig()
		if *scrapeDb != "" {
			cfg.Database = *scrapeDb
		}

		categories := args
		if len(categories) == 0 {
			categories = scrape.Categories()
		}

		out, err := sqliteutil.OpenDB(db.Schema, cfg.Database)
		if err != nil {
			serviceutil.Fatal("failed to open db", err)
		}
		defer out.Close()

		writer := catalog.NewWriter(out)
		scraper := scrape.New(newWikiClient(cfg), scrape.Options{
			Fast: *scrapeFast,
			Progress: func(index, total int, name string) {
				slog.Info("scraping", "item", name, "index", index+1, "total", total)
			},
		})

		ctx := cmd.Context()
		var summaries []categorySummary

		t1 := time.Now()
		for _, category := range categories {
			records, err := scraper.Scrape(ctx, category)
			if err != nil {
				// unknown category is a configuration bug, not a data issue
				serviceutil.Fatal("scrape failed", err)
			}

			if *scrapeClear {
				if err := writer.Clear(ctx, category); err != nil {
					slog.ErrorContext(ctx, "failed to clear category", "category", category, "err", err)
					continue
				}
			}

			written, err := writer.Write(ctx, category, records)
			if err != nil {
				slog.ErrorContext(ctx, "failed to write category", "category", category, "err", err)
				continue
			}
			summaries = append(summaries, summarize(category, written, records))
		}
		slog.Info("scraping time", "seconds", time.Since(t1).Seconds())

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Category", "Written", "With image", "With price", "With seasons"})
		for _, s := range summaries {
			t.AppendRow(table.Row{s.category, s.written, s.withImage, s.withPrice, s.withSeasons})
		}
		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}
