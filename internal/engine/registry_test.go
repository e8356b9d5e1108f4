package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/leadsearch-cli/internal/config"
)

type stubEngine struct {
	name string
	kind Kind
	run  func(ctx context.Context, cfg *config.Config) (*Result, error)
}

func (s *stubEngine) Name() string { return s.name }
func (s *stubEngine) Kind() Kind   { return s.kind }
func (s *stubEngine) Run(ctx context.Context, cfg *config.Config) (*Result, error) {
	if s.run == nil {
		return &Result{}, nil
	}
	return s.run(ctx, cfg)
}

func TestRegistry_GetUnknown(t *testing.T) {
	r := NewRegistry()
	_, err := r.Get("nope")
	assert.ErrorContains(t, err, "unknown engine")
}

func TestRegistry_TokensInRegistrationOrder(t *testing.T) {
	r := NewRegistry()
	r.Register("google", &stubEngine{name: "google_dorks", kind: KindPerson})
	r.Register("linkedin", &stubEngine{name: "linkedin_api", kind: KindPerson})
	r.Register("gov_il", &stubEngine{name: "gov_il_orgs", kind: KindOrg})

	assert.Equal(t, []string{"google", "linkedin", "gov_il"}, r.Tokens())
}

func TestRegistry_SelectNamed(t *testing.T) {
	r := NewRegistry()
	li := &stubEngine{name: "linkedin_api", kind: KindPerson}
	r.Register("linkedin", li)

	engines, err := r.Select("linkedin")
	require.NoError(t, err)
	require.Len(t, engines, 1)
	assert.Equal(t, "linkedin_api", engines[0].Name())
}

func TestRegistry_SelectDefaultExcludesLinkedIn(t *testing.T) {
	r := NewRegistry()
	r.Register("google", &stubEngine{name: "google_dorks", kind: KindPerson})
	r.Register("linkedin", &stubEngine{name: "linkedin_api", kind: KindPerson})
	r.Register("gov_il", &stubEngine{name: "gov_il_orgs", kind: KindOrg})

	engines, err := r.Select("")
	require.NoError(t, err)
	require.Len(t, engines, 2)
	assert.Equal(t, "google_dorks", engines[0].Name())
	assert.Equal(t, "gov_il_orgs", engines[1].Name())
}

func TestRegistry_SelectUnknownToken(t *testing.T) {
	r := NewRegistry()
	_, err := r.Select("mystery")
	assert.Error(t, err)
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "person", KindPerson.String())
	assert.Equal(t, "org", KindOrg.String())
	assert.Equal(t, "unknown", Kind(0).String())
}
