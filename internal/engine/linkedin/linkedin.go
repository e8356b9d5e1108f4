// Package linkedin implements the network-API engine on top of LinkedIn's
// unofficial Voyager API. It only runs when selected explicitly and when
// session credentials are present in the environment.
package linkedin

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/leadsearch-cli/internal/config"
	"github.com/sells-group/leadsearch-cli/internal/dedupe"
	"github.com/sells-group/leadsearch-cli/internal/engine"
	"github.com/sells-group/leadsearch-cli/internal/model"
	"github.com/sells-group/leadsearch-cli/internal/plan"
	"github.com/sells-group/leadsearch-cli/pkg/linkedin"
)

// Environment variables carrying session credentials. The cookie pair is
// preferred; email/password is the fallback.
const (
	EnvLiAt       = "LINKEDIN_LI_AT"
	EnvJSessionID = "LINKEDIN_JSESSIONID"
	EnvEmail      = "LINKEDIN_EMAIL"
	EnvPassword   = "LINKEDIN_PASSWORD"
)

// Credentials is one resolved auth scheme.
type Credentials struct {
	LiAt       string
	JSessionID string
	Email      string
	Password   string
}

// Cookie reports whether the cookie scheme is in use.
func (c Credentials) Cookie() bool { return c.LiAt != "" }

// CredentialsFromEnv resolves credentials from the process environment,
// cookie pair first. It returns nil when neither scheme is complete.
func CredentialsFromEnv() *Credentials {
	liAt, jsession := os.Getenv(EnvLiAt), os.Getenv(EnvJSessionID)
	if liAt != "" && jsession != "" {
		return &Credentials{LiAt: liAt, JSessionID: jsession}
	}
	email, password := os.Getenv(EnvEmail), os.Getenv(EnvPassword)
	if email != "" && password != "" {
		return &Credentials{Email: email, Password: password}
	}
	return nil
}

// Connector builds an authenticated client from resolved credentials.
type Connector func(ctx context.Context, creds Credentials) (linkedin.Client, error)

// DefaultConnector connects against the real Voyager API.
func DefaultConnector(ctx context.Context, creds Credentials) (linkedin.Client, error) {
	if creds.Cookie() {
		zap.L().Info("authenticating with LinkedIn (cookie auth)")
		return linkedin.NewWithCookies(creds.LiAt, creds.JSessionID)
	}
	zap.L().Info("authenticating with LinkedIn (email/password)")
	return linkedin.Login(ctx, creds.Email, creds.Password)
}

// Engine is the network-API-derived adapter.
type Engine struct {
	connect        Connector
	credentials    func() *Credentials
	now            func() time.Time
	failureBackoff time.Duration

	noticeOnce sync.Once
}

// New creates the LinkedIn engine with environment credentials and the real
// connector.
func New() *Engine {
	return &Engine{
		connect:        DefaultConnector,
		credentials:    CredentialsFromEnv,
		now:            time.Now,
		failureBackoff: 10 * time.Second,
	}
}

// Name implements engine.Engine.
func (e *Engine) Name() string { return "linkedin_api" }

// Kind implements engine.Engine.
func (e *Engine) Kind() engine.Kind { return engine.KindPerson }

// Run executes the planned keyword units until they are exhausted or the
// session-wide cap on accepted results is reached. Missing credentials and
// rejected authentication terminate the run with an empty result; a single
// unit's provider failure only triggers an extended backoff.
func (e *Engine) Run(ctx context.Context, cfg *config.Config) (*engine.Result, error) {
	log := zap.L().With(zap.String("engine", e.Name()))
	res := &engine.Result{}

	creds := e.credentials()
	if creds == nil {
		log.Warn("no LinkedIn credentials set",
			zap.String("option_1", fmt.Sprintf("%s + %s (safer)", EnvLiAt, EnvJSessionID)),
			zap.String("option_2", fmt.Sprintf("%s + %s", EnvEmail, EnvPassword)),
		)
		return res, engine.ErrCredentialsMissing
	}

	e.noticeOnce.Do(func() {
		fmt.Fprintln(os.Stderr,
			"LinkedIn engine: uses an unofficial API. Review its documentation for risks and Terms of Service implications.")
	})

	client, err := e.connect(ctx, *creds)
	if err != nil {
		if errors.Is(err, linkedin.ErrAuthentication) {
			return res, eris.Wrap(engine.ErrAuthFailed, err.Error())
		}
		return res, eris.Wrap(engine.ErrCapabilityUnavailable, err.Error())
	}
	log.Info("connected")

	units := plan.NetworkUnits(cfg)
	pace := engine.Pacing{
		Base:           time.Duration(cfg.Settings.SleepBetweenQueries) * time.Second,
		Jitter:         time.Duration(cfg.LinkedIn.SleepJitter) * time.Second,
		FailureBackoff: e.failureBackoff,
	}
	maxSession := cfg.LinkedIn.MaxPerSession

	seen := dedupe.NewSeen()

	for _, unit := range units {
		if ctx.Err() != nil {
			return res, ctx.Err()
		}
		if res.Accepted >= maxSession {
			log.Info("session limit reached, stopping", zap.Int("max_per_session", maxSession))
			return res, nil
		}
		res.Units++

		log.Info("query unit", zap.String("label", unit.Label), zap.String("keyword", unit.Query))

		people, err := client.SearchPeople(ctx, linkedin.SearchPeopleRequest{
			Keywords:      unit.Query,
			NetworkDepths: cfg.LinkedIn.NetworkDepths,
			GeoURN:        cfg.GeoURN(),
			Limit:         cfg.Settings.MaxResultsPerQuery,
		})
		if err != nil {
			if errors.Is(err, linkedin.ErrAuthentication) {
				// Session died mid-run; keep what we have.
				return res, eris.Wrap(engine.ErrAuthFailed, err.Error())
			}
			log.Warn("unit failed", zap.String("label", unit.Label), zap.Error(err))
			if werr := pace.WaitFailure(ctx); werr != nil {
				return res, werr
			}
			continue
		}

		added := 0
		for _, person := range people {
			if res.Accepted >= maxSession {
				log.Info("session limit reached, stopping", zap.Int("max_per_session", maxSession))
				return res, nil
			}
			if !seen.Add(person.MemberIdentity) {
				res.Rejected++
				continue
			}
			res.People = append(res.People, e.normalize(person, unit))
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

// normalize flattens one people-search hit into a person lead. The profile
// URL is derived from the handle only when the handle is non-empty.
func (e *Engine) normalize(p linkedin.Person, unit plan.Unit) model.PersonLead {
	handle := p.MemberIdentity

	var url string
	if handle != "" {
		url = "https://www.linkedin.com/in/" + handle
	}

	name := strings.TrimSpace(p.FirstName.String() + " " + p.LastName.String())

	return model.PersonLead{
		Name:        name,
		LinkedInURL: url,
		Handle:      handle,
		Title:       p.Headline.String(),
		Location:    p.Subline.String(),
		SourceQuery: unit.Label,
		Segment:     unit.Segment,
		Engine:      e.Name(),
		Status:      model.StatusIdentified,
		FoundAt:     model.Today(e.now()),
	}
}
