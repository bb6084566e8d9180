package commands

import (
	"os"

	"coraldex/internal/catalog/db"
	"coraldex/lib/serviceutil"
	"coraldex/lib/sqliteutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var categoriesDb *string

func init() {
	categoriesDb = categoriesCmd.Flags().String("db", "", "The catalog database to inspect (overrides config).")
	rootCmd.AddCommand(categoriesCmd)
}

var categoriesCmd = &cobra.Command{
	Use:   "categories [wiki category ...]",
	Short: "Without arguments, prints catalog categories and their item counts. With arguments, probes wiki category membership.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := readConfig()

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)

		if len(args) == 0 {
			if *categoriesDb != "" {
				cfg.Database = *categoriesDb
			}
			database, err := sqliteutil.OpenDB(db.Schema, cfg.Database)
			if err != nil {
				serviceutil.Fatal("failed to open db", err)
			}
			defer database.Close()
			qry := db.New(database)

			categories, err := qry.ListCategories(cmd.Context())
			if err != nil {
				serviceutil.Fatal("failed to list categories", err)
			}

			t.AppendHeader(table.Row{"Category", "Items"})
			for _, category := range categories {
				count, err := qry.CountItemsInCategory(cmd.Context(), category.ID)
				if err != nil {
					serviceutil.Fatal("failed to count items", err)
				}
				t.AppendRow(table.Row{category.Slug, count})
			}
		} else {
			client := newWikiClient(cfg)

			t.AppendHeader(table.Row{"Category", "Members", "Page"})
			for _, category := range args {
				members := client.CategoryMembers(cmd.Context(), category)
				if len(members) == 0 {
					t.AppendRow(table.Row{category, 0, ""})
					continue
				}
				for _, member := range members {
					t.AppendRow(table.Row{category, len(members), member})
				}
			}
		}

		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}
