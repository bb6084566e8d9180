package wiki

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel/attribute"
)

// CategoryMembers returns the content-page titles tagged under a named
// category. Non-content namespaces (anything with a namespace separator,
// e.g. "Category:Fish" or "File:Tuna.png") are filtered out, as are titles
// in the skip list — typically the category's own umbrella page.
func (c *Client) CategoryMembers(ctx context.Context, category string, skip ...string) []string {
	ctx, span := tracer.Start(ctx, "CategoryMembers")
	defer span.End()
	span.SetAttributes(attribute.String("category", category))

	skipSet := make(map[string]bool, len(skip))
	for _, s := range skip {
		skipSet[s] = true
	}

	var members []string
	seen := map[string]bool{}
	cont := map[string]string{}

	for {
		params := map[string]string{
			"action":  "query",
			"list":    "categorymembers",
			"cmtitle": "Category:" + category,
			"cmlimit": "500",
		}
		for k, v := range cont {
			params[k] = v
		}

		body := c.call(ctx, params)
		if body == nil || body.Query == nil {
			break
		}

		for _, m := range body.Query.CategoryMembers {
			if m.Ns != 0 || strings.Contains(m.Title, ":") {
				continue
			}
			if skipSet[m.Title] || seen[m.Title] {
				continue
			}
			seen[m.Title] = true
			members = append(members, m.Title)
		}

		if len(body.Continue) == 0 {
			break
		}
		cont = body.Continue
	}

	span.SetAttributes(attribute.Int("members", len(members)))
	return members
}

// PageCategories returns the categories a single page belongs to, with the
// "Category:" prefix stripped.
func (c *Client) PageCategories(ctx context.Context, title string) []string {
	ctx, span := tracer.Start(ctx, "PageCategories")
	defer span.End()
	span.SetAttributes(attribute.String("title", title))

	body := c.call(ctx, map[string]string{
		"action":  "query",
		"prop":    "categories",
		"titles":  title,
		"cllimit": "500",
	})
	if body == nil || body.Query == nil || len(body.Query.Pages) == 0 {
		return nil
	}

	var out []string
	for _, cat := range body.Query.Pages[0].Categories {
		out = append(out, strings.TrimPrefix(cat.Title, "Category:"))
	}
	return out
}
