// Package websearch implements the web-search engine: DuckDuckGo queries
// scoped to linkedin.com/in that surface public profile pages.
package websearch

import (
	"context"
	"regexp"
	"time"

	"go.uber.org/zap"

	"github.com/sells-group/leadsearch-cli/internal/config"
	"github.com/sells-group/leadsearch-cli/internal/dedupe"
	"github.com/sells-group/leadsearch-cli/internal/engine"
	"github.com/sells-group/leadsearch-cli/internal/model"
	"github.com/sells-group/leadsearch-cli/internal/plan"
	"github.com/sells-group/leadsearch-cli/pkg/ddg"
)

// profilePattern matches a LinkedIn profile URL and captures the handle.
var profilePattern = regexp.MustCompile(`linkedin\.com/in/([^/?#]+)`)

// snippetMax bounds the free-text snippet carried into output files.
const snippetMax = 200

// Engine is the search-derived adapter.
type Engine struct {
	client         ddg.Searcher
	now            func() time.Time
	failureBackoff time.Duration
}

// New creates the web-search engine.
func New(client ddg.Searcher) *Engine {
	return &Engine{
		client:         client,
		now:            time.Now,
		failureBackoff: 5 * time.Second,
	}
}

// Name implements engine.Engine.
func (e *Engine) Name() string { return "google_dorks" }

// Kind implements engine.Engine.
func (e *Engine) Kind() engine.Kind { return engine.KindPerson }

// Run executes every planned search unit in order. A single unit's provider
// failure is logged and followed by an extended backoff; the run continues
// with the next unit.
func (e *Engine) Run(ctx context.Context, cfg *config.Config) (*engine.Result, error) {
	log := zap.L().With(zap.String("engine", e.Name()))

	units := plan.SearchUnits(cfg)
	pace := engine.Pacing{
		Base:           time.Duration(cfg.Settings.SleepBetweenQueries) * time.Second,
		FailureBackoff: e.failureBackoff,
	}

	res := &engine.Result{}
	seen := dedupe.NewSeen()

	for _, unit := range units {
		if ctx.Err() != nil {
			return res, ctx.Err()
		}
		res.Units++

		log.Info("query unit", zap.String("label", unit.Label), zap.String("query", unit.Query))

		hits, err := e.client.Search(ctx, unit.Query, cfg.Settings.MaxResultsPerQuery)
		if err != nil {
			log.Warn("unit failed", zap.String("label", unit.Label), zap.Error(err))
			if werr := pace.WaitFailure(ctx); werr != nil {
				return res, werr
			}
			continue
		}

		added := 0
		for _, hit := range hits {
			handle := extractHandle(hit.URL)
			if handle == "" {
				res.Rejected++
				continue
			}
			if !seen.Add(hit.URL) {
				res.Rejected++
				continue
			}
			res.People = append(res.People, e.normalize(hit, unit))
			res.Accepted++
			added++
		}
		log.Info("unit complete", zap.String("label", unit.Label), zap.Int("new_leads", added))

		if werr := pace.Wait(ctx); werr != nil {
			return res, werr
		}
	}

	return res, nil
}

// normalize flattens one search hit into a person lead.
func (e *Engine) normalize(hit ddg.Result, unit plan.Unit) model.PersonLead {
	return model.PersonLead{
		LinkedInURL: hit.URL,
		Handle:      extractHandle(hit.URL),
		Title:       hit.Title,
		Snippet:     truncate(hit.Snippet, snippetMax),
		SourceQuery: unit.Label,
		Segment:     unit.Segment,
		Engine:      e.Name(),
		Status:      model.StatusIdentified,
		FoundAt:     model.Today(e.now()),
	}
}

// extractHandle returns the profile handle from a LinkedIn profile URL, or
// "" when the URL is not a profile page.
func extractHandle(url string) string {
	m := profilePattern.FindStringSubmatch(url)
	if m == nil {
		return ""
	}
	return m[1]
}

// truncate bounds s to n characters without splitting a rune; snippets are
// frequently Hebrew.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
