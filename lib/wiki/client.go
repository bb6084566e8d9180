// Package wiki is a client for the MediaWiki api.php query interface the
// catalog is scraped from. All calls are issued strictly one at a time with
// a fixed pre-call delay; this politeness pacing is a deliberate contract
// with the data source, not a performance detail.
package wiki

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/url"
	"time"

	"coraldex/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("coraldex/wiki")

const (
	DefaultRequestDelay  = 300 * time.Millisecond
	DefaultRetryCooldown = time.Second
)

type ClientOptions struct {
	// BaseUrl is the wiki root, e.g. "https://coralisland.wiki.gg".
	BaseUrl   string
	UserAgent string
	// RequestDelay is slept before every remote call regardless of outcome.
	RequestDelay time.Duration
	// RetryCooldown is slept before the single retry FetchPageWithRetry makes.
	RetryCooldown time.Duration
	Timeout       time.Duration
}

type Client struct {
	BaseUrl *url.URL
	Http    *resty.Client

	requestDelay  time.Duration
	retryCooldown time.Duration
}

func NewClient(opts ClientOptions) (*Client, error) {
	baseUrl, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return nil, err
	}

	if opts.RequestDelay <= 0 {
		opts.RequestDelay = DefaultRequestDelay
	}
	if opts.RetryCooldown <= 0 {
		opts.RetryCooldown = DefaultRetryCooldown
	}
	if opts.Timeout <= 0 {
		opts.Timeout = time.Second * 30
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "coraldex (catalog sync; one request at a time)"
	}

	client := resty.New()
	client.SetBaseURL(opts.BaseUrl)
	client.SetHeader("user-agent", opts.UserAgent)
	client.SetTimeout(opts.Timeout)
	client.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(baseUrl.Hostname()))
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	telemetry.InstrumentResty(client, "coraldex/wiki/http")

	return &Client{
		BaseUrl:       baseUrl,
		Http:          client,
		requestDelay:  opts.RequestDelay,
		retryCooldown: opts.RetryCooldown,
	}, nil
}

// PageURL returns the canonical link for a page title.
func (c *Client) PageURL(title string) string {
	return c.BaseUrl.JoinPath("wiki", url.PathEscape(title)).String()
}

type apiError struct {
	Code string `json:"code"`
	Info string `json:"info"`
}

type Section struct {
	Index string `json:"index"`
	Line  string `json:"line"`
}

type envelope struct {
	Error *apiError `json:"error"`
	Parse *struct {
		Title    string    `json:"title"`
		Text     string    `json:"text"`
		Sections []Section `json:"sections"`
	} `json:"parse"`
	Query *struct {
		CategoryMembers []struct {
			Title string `json:"title"`
			Ns    int    `json:"ns"`
		} `json:"categorymembers"`
		Pages []struct {
			Title      string `json:"title"`
			Categories []struct {
				Title string `json:"title"`
			} `json:"categories"`
		} `json:"pages"`
	} `json:"query"`
	Continue map[string]string `json:"continue"`
}

// throttle enforces the inter-call spacing. It runs before every request,
// success or failure, so the request rate is bounded no matter how fast the
// remote answers.
func (c *Client) throttle(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}

// call performs one api.php request and decodes the envelope. A transport
// failure, a non-2xx status, a malformed body or an explicit error field all
// collapse to nil: the wiki is allowed to be flaky, callers treat absence as
// "no data".
func (c *Client) call(ctx context.Context, params map[string]string) *envelope {
	ctx, span := tracer.Start(ctx, "call")
	defer span.End()
	span.SetAttributes(attribute.String("action", params["action"]))

	c.throttle(ctx, c.requestDelay)
	if ctx.Err() != nil {
		return nil
	}

	query := map[string]string{
		"format":        "json",
		"formatversion": "2",
	}
	for k, v := range params {
		query[k] = v
	}

	res, err := c.Http.R().
		SetContext(ctx).
		SetQueryParams(query).
		Get("/api.php")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport failure")
		slog.WarnContext(ctx, "wiki request failed", "err", err)
		return nil
	}
	if res.IsError() {
		span.SetStatus(codes.Error, res.Status())
		slog.WarnContext(ctx, "wiki request rejected", "status", res.StatusCode())
		return nil
	}

	var body envelope
	if err := json.Unmarshal(res.Body(), &body); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "malformed payload")
		slog.WarnContext(ctx, "wiki response unparseable", "err", err)
		return nil
	}
	if body.Error != nil {
		// a logical error (e.g. missing page) is "no data", not a failure
		span.AddEvent("api error", trace.WithAttributes(
			attribute.String("code", body.Error.Code),
			attribute.String("info", body.Error.Info),
		))
		slog.DebugContext(ctx, "wiki api error", "code", body.Error.Code, "info", body.Error.Info)
		return nil
	}
	return &body
}

// FetchPage returns the rendered HTML of a page, or "" when the page is
// missing or the remote hiccuped.
func (c *Client) FetchPage(ctx context.Context, title string) string {
	ctx, span := tracer.Start(ctx, "FetchPage")
	defer span.End()
	span.SetAttributes(attribute.String("title", title))

	body := c.call(ctx, map[string]string{
		"action": "parse",
		"page":   title,
		"prop":   "text",
	})
	if body == nil || body.Parse == nil {
		return ""
	}
	return body.Parse.Text
}

// FetchPageWithRetry wraps FetchPage with a single retry after a longer
// cooldown. After the retry fails the caller proceeds with a partial record.
func (c *Client) FetchPageWithRetry(ctx context.Context, title string) string {
	html := c.FetchPage(ctx, title)
	if html != "" {
		return html
	}

	slog.DebugContext(ctx, "retrying page fetch after cooldown", "title", title)
	c.throttle(ctx, c.retryCooldown)
	if ctx.Err() != nil {
		return ""
	}
	return c.FetchPage(ctx, title)
}

// ListSections returns the named sections of a page in document order.
func (c *Client) ListSections(ctx context.Context, title string) []Section {
	ctx, span := tracer.Start(ctx, "ListSections")
	defer span.End()
	span.SetAttributes(attribute.String("title", title))

	body := c.call(ctx, map[string]string{
		"action": "parse",
		"page":   title,
		"prop":   "sections",
	})
	if body == nil || body.Parse == nil {
		return nil
	}
	return body.Parse.Sections
}

// FetchSection returns the rendered HTML of a single page section.
func (c *Client) FetchSection(ctx context.Context, title, sectionIndex string) string {
	ctx, span := tracer.Start(ctx, "FetchSection")
	defer span.End()
	span.SetAttributes(
		attribute.String("title", title),
		attribute.String("section", sectionIndex),
	)

	body := c.call(ctx, map[string]string{
		"action":  "parse",
		"page":    title,
		"section": sectionIndex,
		"prop":    "text",
	})
	if body == nil || body.Parse == nil {
		return ""
	}
	return body.Parse.Text
}
