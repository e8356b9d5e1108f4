// Package ddg provides a client for the DuckDuckGo HTML search endpoint.
package ddg

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"

	"github.com/sells-group/leadsearch-cli/internal/resilience"
)

// defaultBaseURL is the no-JavaScript DuckDuckGo endpoint.
const defaultBaseURL = "https://html.duckduckgo.com/html/"

// userAgent identifies the client; the HTML endpoint rejects empty agents.
const userAgent = "Mozilla/5.0 (X11; Linux x86_64) leadsearch-cli/1.0"

// Searcher defines the DuckDuckGo search operation.
type Searcher interface {
	// Search runs a text query and returns up to max results.
	Search(ctx context.Context, query string, max int) ([]Result, error)
}

// Result is a single parsed search result.
type Result struct {
	Title   string
	URL     string
	Snippet string
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL sets a custom endpoint (for testing).
func WithBaseURL(u string) Option {
	return func(c *httpClient) { c.baseURL = u }
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) { c.http = hc }
}

// WithRateLimit throttles outgoing requests to r per second.
func WithRateLimit(r rate.Limit) Option {
	return func(c *httpClient) { c.limiter = rate.NewLimiter(r, 1) }
}

type httpClient struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	retry   resilience.Policy
}

// New creates a DuckDuckGo client. By default requests are throttled to one
// every two seconds; the endpoint blocks clients that burst.
func New(opts ...Option) Searcher {
	c := &httpClient{
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
		limiter: rate.NewLimiter(rate.Every(2*time.Second), 1),
		retry:   resilience.DefaultPolicy(),
	}
	c.retry.OnRetry = resilience.RetryLogger("ddg", "search")
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Search implements Searcher.
func (c *httpClient) Search(ctx context.Context, query string, max int) ([]Result, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "ddg: rate limit wait")
	}

	body, err := resilience.DoVal(ctx, c.retry, func(ctx context.Context) (string, error) {
		return c.fetch(ctx, query)
	})
	if err != nil {
		return nil, err
	}

	results, err := parseResults(strings.NewReader(body))
	if err != nil {
		return nil, eris.Wrap(err, "ddg: parse results")
	}
	if max > 0 && len(results) > max {
		results = results[:max]
	}
	return results, nil
}

func (c *httpClient) fetch(ctx context.Context, query string) (string, error) {
	form := url.Values{"q": {query}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return "", eris.Wrap(err, "ddg: build request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", eris.Wrap(err, "ddg: search request")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := eris.Errorf("ddg: search returned status %d", resp.StatusCode)
		if resilience.IsTransientHTTPStatus(resp.StatusCode) {
			return "", resilience.NewTransientError(err, resp.StatusCode)
		}
		return "", err
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", eris.Wrap(err, "ddg: read response")
	}
	return string(data), nil
}
