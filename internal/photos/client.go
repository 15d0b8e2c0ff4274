// Package photos finds landscape pictures of a trip destination and rotates
// them through a small persisted cache so each visit shows a different one.
package photos

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
)

const (
	defaultBaseURL = "https://api.pexels.com/v1"
	perPage        = 15
	maxResults     = 15
)

// Client searches the Pexels photo API.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
	log     *slog.Logger
	page    func() int
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at another API root, e.g. an httptest server.
func WithBaseURL(u string) Option { return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") } }

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(h *http.Client) Option { return func(c *Client) { c.http = h } }

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option { return func(c *Client) { c.log = l } }

// WithPage fixes the result page picker. By default a page between 1 and 3 is
// picked at random for variety.
func WithPage(fn func() int) Option { return func(c *Client) { c.page = fn } }

// NewClient returns a Client using apiKey. An empty key yields a disabled
// client whose searches return nothing.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
		log:     slog.Default(),
		page:    func() int { return rand.IntN(3) + 1 },
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Enabled reports whether the client has an API key.
func (c *Client) Enabled() bool { return c.apiKey != "" }

// Search returns up to 15 photo URLs for destination. It never fails: a
// missing key, transport error or unexpected response all yield an empty list.
func (c *Client) Search(ctx context.Context, destination string) []string {
	destination = strings.TrimSpace(destination)
	if !c.Enabled() || destination == "" {
		return []string{}
	}

	urls, err := c.search(ctx, destination)
	if err != nil {
		c.log.WarnContext(ctx, "photo search failed", "destination", destination, "error", err)
		return []string{}
	}
	return urls
}

func (c *Client) search(ctx context.Context, destination string) ([]string, error) {
	q := url.Values{}
	q.Set("query", destination+" travel landscape landmarks")
	q.Set("per_page", strconv.Itoa(perPage))
	q.Set("page", strconv.Itoa(c.page()))
	q.Set("orientation", "landscape")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("photos.Client.Search: build request: %w", err)
	}
	req.Header.Set("Authorization", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("photos.Client.Search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("photos.Client.Search: unexpected status %d", resp.StatusCode)
	}

	var body any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("photos.Client.Search: decode: %w", err)
	}
	return extractURLs(body), nil
}

// srcPreference lists the size variants to use, best first.
var srcPreference = []string{"large2x", "large", "original"}

// extractURLs picks one URL per photo from a search response.
func extractURLs(body any) []string {
	out := []string{}
	srcs, err := jsonpath.Get("$.photos[*].src", body)
	if err != nil {
		return out
	}
	list, ok := srcs.([]any)
	if !ok {
		return out
	}

	for _, s := range list {
		src, ok := s.(map[string]any)
		if !ok {
			continue
		}
		for _, size := range srcPreference {
			if u, ok := src[size].(string); ok && strings.TrimSpace(u) != "" {
				out = append(out, u)
				break
			}
		}
		if len(out) == maxResults {
			break
		}
	}
	return out
}
