// Package dedupe provides exact-key, first-seen-wins deduplication for
// lead records. Records with an empty identity key are always discarded.
package dedupe

// FirstSeen filters items to the first occurrence of each non-empty key,
// preserving input order. Surviving items are returned as-is, never merged
// or mutated.
func FirstSeen[T any](items []T, key func(T) string) []T {
	seen := NewSeen()
	out := make([]T, 0, len(items))
	for _, item := range items {
		if seen.Add(key(item)) {
			out = append(out, item)
		}
	}
	return out
}

// Seen tracks identity keys while an engine streams results.
type Seen struct {
	keys map[string]struct{}
}

// NewSeen returns an empty key set.
func NewSeen() *Seen {
	return &Seen{keys: make(map[string]struct{})}
}

// Add records key and reports whether it was accepted: false for empty keys
// and for keys already seen.
func (s *Seen) Add(key string) bool {
	if key == "" {
		return false
	}
	if _, dup := s.keys[key]; dup {
		return false
	}
	s.keys[key] = struct{}{}
	return true
}

// Len returns the number of distinct keys accepted so far.
func (s *Seen) Len() int { return len(s.keys) }
