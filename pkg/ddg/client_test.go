package ddg

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

const resultsPage = `<!DOCTYPE html>
<html><body>
<div class="result">
  <a class="result__a" href="https://il.linkedin.com/in/dana-cohen">Dana Cohen - Student | LinkedIn</a>
  <a class="result__snippet">Studying at Tel Aviv University.</a>
</div>
<div class="result">
  <a class="result__a" href="//duckduckgo.com/l/?uddg=https%3A%2F%2Fwww.linkedin.com%2Fin%2Fnoa-levi&amp;rut=abc">Noa Levi | LinkedIn</a>
  <div class="result__snippet">Student union <b>chair</b>.</div>
</div>
<div class="result">
  <a class="result__a" href="https://example.com/page">Unrelated</a>
</div>
</body></html>`

func testServer(t *testing.T, handler http.HandlerFunc) (Searcher, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := New(
		WithBaseURL(srv.URL),
		WithHTTPClient(srv.Client()),
		WithRateLimit(rate.Inf),
	)
	return client, srv
}

func TestSearch_ParsesResults(t *testing.T) {
	client, _ := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, `site:linkedin.com/in "student"`, r.PostForm.Get("q"))
		_, _ = w.Write([]byte(resultsPage))
	})

	results, err := client.Search(context.Background(), `site:linkedin.com/in "student"`, 0)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "Dana Cohen - Student | LinkedIn", results[0].Title)
	assert.Equal(t, "https://il.linkedin.com/in/dana-cohen", results[0].URL)
	assert.Equal(t, "Studying at Tel Aviv University.", results[0].Snippet)

	// The redirect wrapper is unwrapped and nested markup flattened.
	assert.Equal(t, "https://www.linkedin.com/in/noa-levi", results[1].URL)
	assert.Equal(t, "Student union chair.", results[1].Snippet)
}

func TestSearch_TruncatesToMax(t *testing.T) {
	client, _ := testServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(resultsPage))
	})

	results, err := client.Search(context.Background(), "q", 1)
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestSearch_RetriesServerError(t *testing.T) {
	var calls atomic.Int32
	client, _ := testServer(t, func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(resultsPage))
	})

	results, err := client.Search(context.Background(), "q", 0)
	require.NoError(t, err)
	assert.Len(t, results, 3)
	assert.Equal(t, int32(2), calls.Load())
}

func TestSearch_PermanentStatusFailsImmediately(t *testing.T) {
	var calls atomic.Int32
	client, _ := testServer(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusForbidden)
	})

	_, err := client.Search(context.Background(), "q", 0)
	assert.ErrorContains(t, err, "status 403")
	assert.Equal(t, int32(1), calls.Load())
}

func TestUnwrapRedirect(t *testing.T) {
	assert.Equal(t, "https://www.linkedin.com/in/noa",
		unwrapRedirect("//duckduckgo.com/l/?uddg=https%3A%2F%2Fwww.linkedin.com%2Fin%2Fnoa&rut=x"))
	assert.Equal(t, "https://example.com", unwrapRedirect("https://example.com"))
	assert.Equal(t, "/l/?other=1", unwrapRedirect("/l/?other=1"))
	assert.Empty(t, unwrapRedirect(""))
}

func TestParseResults_EmptyPage(t *testing.T) {
	results, err := parseResults(strings.NewReader("<html><body>No results.</body></html>"))
	require.NoError(t, err)
	assert.Empty(t, results)
}
