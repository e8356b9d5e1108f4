// Package datagov provides a client for the data.gov.il CKAN datastore API.
package datagov

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/leadsearch-cli/internal/resilience"
)

// defaultBaseURL is the CKAN datastore_search action endpoint.
const defaultBaseURL = "https://data.gov.il/api/3/action/datastore_search"

// Searcher defines the datastore search operation.
type Searcher interface {
	// Search runs a full-text query against a datastore resource.
	Search(ctx context.Context, resourceID, query string, limit int) ([]Record, error)
}

// Record is one datastore row. Registry field names are Hebrew; values may
// arrive as strings or numbers depending on the column type.
type Record map[string]any

// Str returns the record field as a trimmed string. Numeric values are
// formatted without a decimal point when whole, which is how the registry
// encodes org numbers.
func (r Record) Str(key string) string {
	switch v := r[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}

// Has reports whether the field is present at all, regardless of value.
func (r Record) Has(key string) bool {
	_, ok := r[key]
	return ok
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

type httpClient struct {
	baseURL string
	http    *http.Client
	retry   resilience.Policy
}

// New creates a data.gov.il datastore client.
func New(opts ...Option) Searcher {
	c := &httpClient{
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
		retry:   resilience.DefaultPolicy(),
	}
	c.retry.OnRetry = resilience.RetryLogger("datagov", "datastore_search")
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type searchResponse struct {
	Success bool `json:"success"`
	Result  struct {
		Records []Record `json:"records"`
	} `json:"result"`
}

// Search implements Searcher.
func (c *httpClient) Search(ctx context.Context, resourceID, query string, limit int) ([]Record, error) {
	return resilience.DoVal(ctx, c.retry, func(ctx context.Context) ([]Record, error) {
		return c.search(ctx, resourceID, query, limit)
	})
}

func (c *httpClient) search(ctx context.Context, resourceID, query string, limit int) ([]Record, error) {
	params := url.Values{
		"resource_id": {resourceID},
		"q":           {query},
		"limit":       {strconv.Itoa(limit)},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, eris.Wrap(err, "datagov: build request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "datagov: datastore_search request")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := eris.Errorf("datagov: datastore_search returned status %d", resp.StatusCode)
		if resilience.IsTransientHTTPStatus(resp.StatusCode) {
			return nil, resilience.NewTransientError(err, resp.StatusCode)
		}
		return nil, err
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "datagov: read response")
	}

	var parsed searchResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, eris.Wrap(err, "datagov: decode response")
	}
	if !parsed.Success {
		return nil, eris.New("datagov: datastore_search reported failure")
	}

	return parsed.Result.Records, nil
}
