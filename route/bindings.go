package route

import "strings"

// Bindings is a case-insensitive mapping from parameter name to the raw
// string captured during a match. Repeated-option values are
// accumulated and joined by a single ASCII space; that join is the
// documented wire format between the resolver and the binder.
type Bindings struct {
	values map[string]string
	// original preserves the first-seen casing of each key purely for
	// Keys()/introspection; lookups themselves are case-insensitive.
	original map[string]string
}

// NewBindings returns an empty Bindings map.
func NewBindings() *Bindings {
	return &Bindings{
		values:   make(map[string]string),
		original: make(map[string]string),
	}
}

// Set stores value under name, case-insensitively.
func (b *Bindings) Set(name, value string) {
	key := strings.ToLower(name)
	b.values[key] = value
	if _, seen := b.original[key]; !seen {
		b.original[key] = name
	}
}

// Append accumulates value onto any existing binding for name, joined by
// a single space, the repeated-option wire format.
func (b *Bindings) Append(name, value string) {
	key := strings.ToLower(name)
	if existing, ok := b.values[key]; ok && existing != "" {
		b.values[key] = existing + " " + value
	} else {
		b.values[key] = value
	}
	if _, seen := b.original[key]; !seen {
		b.original[key] = name
	}
}

// Get returns the raw string bound to name (case-insensitive) and whether
// it was present.
func (b *Bindings) Get(name string) (string, bool) {
	v, ok := b.values[strings.ToLower(name)]
	return v, ok
}

// Has reports whether name is bound, case-insensitively.
func (b *Bindings) Has(name string) bool {
	_, ok := b.values[strings.ToLower(name)]
	return ok
}

// Keys returns the bound parameter names in their first-seen casing, in
// no particular order.
func (b *Bindings) Keys() []string {
	keys := make([]string, 0, len(b.original))
	for _, name := range b.original {
		keys = append(keys, name)
	}
	return keys
}

// Clone returns an independent copy of b, so a resolver's internal
// scratch map can be handed off without aliasing.
func (b *Bindings) Clone() *Bindings {
	out := NewBindings()
	for k, v := range b.values {
		out.values[k] = v
	}
	for k, v := range b.original {
		out.original[k] = v
	}
	return out
}
