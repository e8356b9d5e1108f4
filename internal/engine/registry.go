package engine

import (
	"github.com/rotisserie/eris"
)

// Registry maps CLI engine tokens to their implementations. The mapping is
// fixed at construction; selection never dispatches on record shapes.
type Registry struct {
	engines map[string]Engine
	order   []string // registration order for deterministic iteration
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{engines: make(map[string]Engine)}
}

// Register adds an engine under the given CLI token.
func (r *Registry) Register(token string, e Engine) {
	if _, exists := r.engines[token]; !exists {
		r.order = append(r.order, token)
	}
	r.engines[token] = e
}

// Get returns the engine registered under token.
func (r *Registry) Get(token string) (Engine, error) {
	e, ok := r.engines[token]
	if !ok {
		return nil, eris.Errorf("engine: unknown engine %q (valid: %v)", token, r.order)
	}
	return e, nil
}

// Tokens returns all registered tokens in registration order.
func (r *Registry) Tokens() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Select resolves the engines to run: the single named engine when token is
// non-empty, otherwise the default set (web search + org registry; LinkedIn
// only runs when asked for explicitly).
func (r *Registry) Select(token string) ([]Engine, error) {
	if token != "" {
		e, err := r.Get(token)
		if err != nil {
			return nil, err
		}
		return []Engine{e}, nil
	}

	var out []Engine
	for _, t := range defaultTokens {
		if e, ok := r.engines[t]; ok {
			out = append(out, e)
		}
	}
	return out, nil
}

// defaultTokens is the engine set run when no --engine flag is given.
var defaultTokens = []string{"google", "gov_il"}
