// Package govil implements the org-registry engine against the Israeli
// NGO registry (Rasham Amutot) on data.gov.il. Official open data, no
// authentication. The engine only runs when the configured country is
// Israel.
package govil

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sells-group/leadsearch-cli/internal/config"
	"github.com/sells-group/leadsearch-cli/internal/dedupe"
	"github.com/sells-group/leadsearch-cli/internal/engine"
	"github.com/sells-group/leadsearch-cli/internal/model"
	"github.com/sells-group/leadsearch-cli/internal/plan"
	"github.com/sells-group/leadsearch-cli/pkg/datagov"
)

// amutotResourceID is the Rasham Amutot dataset on data.gov.il.
const amutotResourceID = "be5b7935-3922-45d4-9638-08871b17ec95"

// countryGate is the only country this registry covers.
const countryGate = "Israel"

// perKeywordLimit bounds one keyword query's result count.
const perKeywordLimit = 100

// Registry field names (the dataset's columns are Hebrew).
const (
	fieldNameHebrew  = "שם עמותה בעברית"
	fieldNameEnglish = "שם עמותה באנגלית"
	fieldOrgNumber   = "מספר עמותה"
	fieldCategory    = "סיווג פעילות ענפי"
	fieldCity        = "כתובת - ישוב"
	fieldStatus      = "סטטוס"
)

// activeStatuses are the registry statuses considered active. A record with
// no status field at all is also treated as active.
var activeStatuses = []string{"רשומה", "פעילה"}

// Engine is the registry-derived adapter.
type Engine struct {
	client         datagov.Searcher
	now            func() time.Time
	failureBackoff time.Duration
}

// New creates the org-registry engine.
func New(client datagov.Searcher) *Engine {
	return &Engine{
		client:         client,
		now:            time.Now,
		failureBackoff: 5 * time.Second,
	}
}

// Name implements engine.Engine.
func (e *Engine) Name() string { return "gov_il_orgs" }

// Kind implements engine.Engine.
func (e *Engine) Kind() engine.Kind { return engine.KindOrg }

// Run issues one registry query per configured keyword. HTTP errors are
// recoverable: the keyword contributes nothing and the run continues.
// Inactive records are dropped before normalization.
func (e *Engine) Run(ctx context.Context, cfg *config.Config) (*engine.Result, error) {
	log := zap.L().With(zap.String("engine", e.Name()))
	res := &engine.Result{}

	if cfg.Country != countryGate {
		log.Info("skipping: country is not Israel", zap.String("country", cfg.Country))
		return res, engine.ErrCountryGate
	}

	units := plan.RegistryUnits(cfg)
	if len(units) == 0 {
		log.Warn("no org_keywords configured")
		return res, nil
	}

	pace := engine.Pacing{
		Base:           time.Duration(cfg.Settings.SleepBetweenQueries) * time.Second,
		FailureBackoff: e.failureBackoff,
	}

	seen := dedupe.NewSeen()

	for _, unit := range units {
		if ctx.Err() != nil {
			return res, ctx.Err()
		}
		res.Units++

		log.Info("query unit", zap.String("label", unit.Label), zap.String("keyword", unit.Query))

		records, err := e.client.Search(ctx, amutotResourceID, unit.Query, perKeywordLimit)
		if err != nil {
			log.Warn("unit failed", zap.String("keyword", unit.Query), zap.Error(err))
			if werr := pace.WaitFailure(ctx); werr != nil {
				return res, werr
			}
			continue
		}

		added := 0
		for _, rec := range records {
			if !isActive(rec) {
				res.Rejected++
				continue
			}
			if !seen.Add(rec.Str(fieldOrgNumber)) {
				res.Rejected++
				continue
			}
			res.Orgs = append(res.Orgs, e.normalize(rec, unit))
			res.Accepted++
			added++
		}
		log.Info("unit complete", zap.String("keyword", unit.Query), zap.Int("new_orgs", added))

		if werr := pace.Wait(ctx); werr != nil {
			return res, werr
		}
	}

	return res, nil
}

// isActive applies the registry's active predicate: the status matches one
// of the recognized active statuses, or the status field is absent entirely.
// This is a set-membership check, not strict equality; statuses carry
// qualifier suffixes in the raw data.
func isActive(rec datagov.Record) bool {
	if !rec.Has(fieldStatus) {
		return true
	}
	status := rec.Str(fieldStatus)
	if status == "" {
		return true
	}
	for _, active := range activeStatuses {
		if strings.Contains(status, active) {
			return true
		}
	}
	return false
}

// normalize flattens one registry record into an org lead. The public
// profile URL is derived only when the org number is non-empty.
func (e *Engine) normalize(rec datagov.Record, unit plan.Unit) model.OrgLead {
	number := rec.Str(fieldOrgNumber)

	var guidestarURL string
	if number != "" {
		guidestarURL = "https://www.guidestar.org.il/organization/" + number
	}

	return model.OrgLead{
		NameHebrew:    rec.Str(fieldNameHebrew),
		NameEnglish:   rec.Str(fieldNameEnglish),
		OrgNumber:     number,
		Category:      rec.Str(fieldCategory),
		City:          rec.Str(fieldCity),
		Status:        rec.Str(fieldStatus),
		GuidestarURL:  guidestarURL,
		SourceKeyword: unit.Query,
		Segment:       model.SegmentOrganization,
		LeadStatus:    model.StatusIdentified,
		FoundAt:       model.Today(e.now()),
	}
}
