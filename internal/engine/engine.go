// Package engine defines the search engine contract, the fixed engine
// registry, and the orchestrator that drives selected engines and merges
// their output.
package engine

import (
	"context"
	"errors"

	"github.com/sells-group/leadsearch-cli/internal/config"
	"github.com/sells-group/leadsearch-cli/internal/model"
)

// Kind declares which lead collection an engine's output is routed into.
type Kind int

const (
	// KindPerson engines produce person leads keyed by profile URL.
	KindPerson Kind = iota + 1
	// KindOrg engines produce organization leads keyed by registry number.
	KindOrg
)

// String returns the human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindPerson:
		return "person"
	case KindOrg:
		return "org"
	default:
		return "unknown"
	}
}

// Engine-terminating conditions. All of them end a single engine's run with
// an empty result and a diagnostic; none of them is fatal to the pipeline.
var (
	// ErrCapabilityUnavailable means the engine's provider client could not
	// be constructed at all.
	ErrCapabilityUnavailable = errors.New("provider client unavailable")
	// ErrCredentialsMissing means the engine needs credentials that are not
	// set in the environment.
	ErrCredentialsMissing = errors.New("credentials not configured")
	// ErrCountryGate means the configured country does not match the
	// engine's supported region.
	ErrCountryGate = errors.New("country not supported by engine")
	// ErrAuthFailed means credentials were present but rejected.
	ErrAuthFailed = errors.New("authentication failed")
)

// Result is one engine's collected output. Exactly one of People/Orgs is
// populated, according to the engine's Kind.
type Result struct {
	People []model.PersonLead
	Orgs   []model.OrgLead

	Units    int // query units executed
	Accepted int // records that survived filtering and per-engine dedup
	Rejected int // records dropped (duplicates, pattern/status filters)
}

// Engine is a pluggable source adapter wrapping one external data provider.
//
// Run drives the engine's whole unit loop: it executes the planner's units
// strictly in order, paces between them, and treats per-unit provider
// failures as recoverable. It returns collected results even on error;
// cancellation takes effect at the next unit boundary and partial results
// survive.
type Engine interface {
	Name() string
	Kind() Kind
	Run(ctx context.Context, cfg *config.Config) (*Result, error)
}
