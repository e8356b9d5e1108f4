package engine

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/leadsearch-cli/internal/config"
	"github.com/sells-group/leadsearch-cli/internal/dedupe"
	"github.com/sells-group/leadsearch-cli/internal/model"
)

// Summary reports one engine's run for the user-facing breakdown.
type Summary struct {
	Engine   string
	Kind     Kind
	Units    int
	Accepted int
	Rejected int
	Skipped  bool   // engine terminated early (gate, credentials, auth)
	Reason   string // diagnostic when Skipped or the run errored
	Duration time.Duration
}

// Outcome is the merged, deduplicated output of an orchestrated run.
type Outcome struct {
	People    []model.PersonLead
	Orgs      []model.OrgLead
	Summaries []Summary
}

// Run drives the selected engines and merges their output. Engines run
// concurrently; they share no state, each unit loop stays strictly
// sequential inside its engine, and the cross-engine dedup pass happens
// only after every engine has finished. One engine's failure never stops
// the others: it contributes an empty result and a diagnostic.
//
// Cancellation stops each engine at its next unit boundary; whatever was
// collected by then is still merged and returned.
func Run(ctx context.Context, cfg *config.Config, engines []Engine) *Outcome {
	log := zap.L().With(zap.String("component", "orchestrator"))

	results := make([]*Result, len(engines))
	summaries := make([]Summary, len(engines))

	g, gctx := errgroup.WithContext(ctx)
	for i, e := range engines {
		i, e := i, e
		g.Go(func() error {
			eLog := log.With(zap.String("engine", e.Name()))
			eLog.Info("engine starting")

			start := time.Now()
			res, err := e.Run(gctx, cfg)
			elapsed := time.Since(start)

			if res == nil {
				res = &Result{}
			}
			results[i] = res

			s := Summary{
				Engine:   e.Name(),
				Kind:     e.Kind(),
				Units:    res.Units,
				Accepted: res.Accepted,
				Rejected: res.Rejected,
				Duration: elapsed,
			}
			if err != nil {
				// Engine-terminating, pipeline-non-fatal. Partial results
				// in res still count.
				s.Skipped = true
				s.Reason = err.Error()
				eLog.Warn("engine did not complete", zap.Error(err), zap.Duration("elapsed", elapsed))
			} else {
				eLog.Info("engine complete",
					zap.Int("accepted", res.Accepted),
					zap.Int("rejected", res.Rejected),
					zap.Duration("elapsed", elapsed),
				)
			}
			summaries[i] = s
			return nil
		})
	}
	_ = g.Wait() // goroutines never return an error; failures are summaries

	// Merge in selection order, then the final cross-engine pass: people
	// found by two engines collapse to the first occurrence by profile URL.
	var people []model.PersonLead
	var orgs []model.OrgLead
	for _, res := range results {
		people = append(people, res.People...)
		orgs = append(orgs, res.Orgs...)
	}
	people = dedupe.FirstSeen(people, model.PersonLead.Key)
	orgs = dedupe.FirstSeen(orgs, model.OrgLead.Key)

	return &Outcome{People: people, Orgs: orgs, Summaries: summaries}
}
