// Package linkedin provides a minimal client for LinkedIn's internal
// Voyager API. The API is unofficial and undocumented; using it may violate
// LinkedIn's Terms of Service. Callers are expected to surface that warning.
package linkedin

import (
	"context"
	"encoding/json"
	"errors"
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

// ErrAuthentication indicates credentials were present but rejected.
var ErrAuthentication = errors.New("linkedin: authentication rejected")

const (
	defaultBaseURL = "https://www.linkedin.com/voyager/api"
	defaultAuthURL = "https://www.linkedin.com/uas/authenticate"

	userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36"
)

// Client defines the people-search operation against Voyager.
type Client interface {
	// SearchPeople runs a keyword people search limited to the given network
	// depths ("F" first, "S" second, "O" out-of-network).
	SearchPeople(ctx context.Context, req SearchPeopleRequest) ([]Person, error)
}

// SearchPeopleRequest describes one people search.
type SearchPeopleRequest struct {
	Keywords      string
	NetworkDepths []string
	GeoURN        string // optional region filter
	Limit         int
}

// Option configures the client.
type Option func(*voyagerClient)

// WithBaseURL sets a custom API base URL (for testing).
func WithBaseURL(u string) Option {
	return func(c *voyagerClient) { c.baseURL = u }
}

// WithAuthURL sets a custom authentication URL (for testing).
func WithAuthURL(u string) Option {
	return func(c *voyagerClient) { c.authURL = u }
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *voyagerClient) { c.http = hc }
}

type voyagerClient struct {
	baseURL string
	authURL string
	http    *http.Client
	retry   resilience.Policy

	liAt string
	csrf string // JSESSIONID doubles as the csrf-token header value
}

func newClient(opts ...Option) *voyagerClient {
	c := &voyagerClient{
		baseURL: defaultBaseURL,
		authURL: defaultAuthURL,
		http:    &http.Client{Timeout: 30 * time.Second},
		retry:   resilience.DefaultPolicy(),
	}
	c.retry.OnRetry = resilience.RetryLogger("linkedin", "search_people")
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewWithCookies creates a client from an existing li_at / JSESSIONID cookie
// pair. No login round-trip is made; bad cookies surface as
// ErrAuthentication on the first search.
func NewWithCookies(liAt, jsessionID string, opts ...Option) (Client, error) {
	if liAt == "" || jsessionID == "" {
		return nil, eris.New("linkedin: both li_at and JSESSIONID cookies are required")
	}
	c := newClient(opts...)
	c.liAt = liAt
	c.csrf = strings.Trim(jsessionID, `"`)
	return c, nil
}

// Login authenticates with an email/password pair and returns a session
// client. Rejected credentials return ErrAuthentication.
func Login(ctx context.Context, email, password string, opts ...Option) (Client, error) {
	c := newClient(opts...)

	form := url.Values{
		"session_key":      {email},
		"session_password": {password},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.authURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, eris.Wrap(err, "linkedin: build login request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "linkedin: login request")
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, ErrAuthentication
	}
	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("linkedin: login returned status %d", resp.StatusCode)
	}

	for _, ck := range resp.Cookies() {
		switch ck.Name {
		case "li_at":
			c.liAt = ck.Value
		case "JSESSIONID":
			c.csrf = strings.Trim(ck.Value, `"`)
		}
	}
	if c.liAt == "" || c.csrf == "" {
		return nil, eris.Wrap(ErrAuthentication, "linkedin: login response missing session cookies")
	}

	return c, nil
}

type searchResponse struct {
	Elements []struct {
		Elements []Person `json:"elements"`
	} `json:"elements"`
}

// SearchPeople implements Client.
func (c *voyagerClient) SearchPeople(ctx context.Context, req SearchPeopleRequest) ([]Person, error) {
	return resilience.DoVal(ctx, c.retry, func(ctx context.Context) ([]Person, error) {
		return c.searchPeople(ctx, req)
	})
}

func (c *voyagerClient) searchPeople(ctx context.Context, req SearchPeopleRequest) ([]Person, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = 25
	}

	filters := []string{"resultType->PEOPLE"}
	if len(req.NetworkDepths) > 0 {
		filters = append(filters, "network->"+strings.Join(req.NetworkDepths, "|"))
	}
	if req.GeoURN != "" {
		filters = append(filters, "geoUrn->"+req.GeoURN)
	}

	params := url.Values{
		"keywords": {req.Keywords},
		"origin":   {"GLOBAL_SEARCH_HEADER"},
		"count":    {strconv.Itoa(limit)},
		"filters":  {fmt.Sprintf("List(%s)", strings.Join(filters, ","))},
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/search/blended?"+params.Encode(), nil)
	if err != nil {
		return nil, eris.Wrap(err, "linkedin: build search request")
	}
	httpReq.Header.Set("User-Agent", userAgent)
	httpReq.Header.Set("Accept", "application/vnd.linkedin.normalized+json+2.1")
	httpReq.Header.Set("csrf-token", c.csrf)
	httpReq.AddCookie(&http.Cookie{Name: "li_at", Value: c.liAt})
	httpReq.AddCookie(&http.Cookie{Name: "JSESSIONID", Value: c.csrf})

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, eris.Wrap(err, "linkedin: search request")
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, ErrAuthentication
	}
	if resp.StatusCode != http.StatusOK {
		err := eris.Errorf("linkedin: search returned status %d", resp.StatusCode)
		if resilience.IsTransientHTTPStatus(resp.StatusCode) {
			return nil, resilience.NewTransientError(err, resp.StatusCode)
		}
		return nil, err
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "linkedin: read response")
	}

	var parsed searchResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, eris.Wrap(err, "linkedin: decode response")
	}

	var people []Person
	for _, cluster := range parsed.Elements {
		people = append(people, cluster.Elements...)
	}
	if len(people) > limit {
		people = people[:limit]
	}
	return people, nil
}
