package route

import (
	"sort"
	"strings"
)

// Handler is the opaque handler identity carried by an Endpoint. Per the
// design, a handler is either an inline function
// pointer or a type tag dispatched via a host-provided factory; the core
// treats both uniformly and never invokes either itself.
type Handler interface {
	handlerIdentity()
}

// InlineHandler wraps an arbitrary host-supplied function value. The core
// never calls it; it is handed back verbatim on a successful resolve.
type InlineHandler struct {
	Func any
}

func (InlineHandler) handlerIdentity() {}

// TypedHandler identifies a handler by a type tag (the "mediator command"
// shape), dispatched by a host-provided factory keyed on
// TypeTag. The core never constructs or inspects the tagged type.
type TypedHandler struct {
	TypeTag any
}

func (TypedHandler) handlerIdentity() {}

// Endpoint pairs a CompiledRoute with a handler identity and metadata.
type Endpoint struct {
	Pattern     string
	Route       *CompiledRoute
	Handler     Handler
	Description string
}

// EndpointInfo is introspection metadata for a registered Endpoint,
// suitable for a host building `--help` output or shell completion.
type EndpointInfo struct {
	Pattern     string
	Description string
	Positional  []ParameterMatcher
	Options     []OptionMatcher
}

// EndpointCollection is the ordered set of compiled routes plus handler
// identity, kept sorted by specificity after every
// insertion.
type EndpointCollection struct {
	endpoints []*Endpoint
}

// NewEndpointCollection returns an empty collection.
func NewEndpointCollection() *EndpointCollection {
	return &EndpointCollection{}
}

// Insert adds ep and re-sorts the collection by specificity. The sort is
// stable: endpoints of equal specificity retain relative insertion order.
func (c *EndpointCollection) Insert(ep *Endpoint) {
	c.endpoints = append(c.endpoints, ep)
	sort.SliceStable(c.endpoints, func(i, j int) bool {
		return specificityLess(c.endpoints[i], c.endpoints[j])
	})
}

// All returns the endpoints in current specificity order. The returned
// slice must not be mutated by the caller.
func (c *EndpointCollection) All() []*Endpoint {
	return c.endpoints
}

// Lookup finds a previously registered endpoint by its original pattern
// text.
func (c *EndpointCollection) Lookup(pattern string) (*Endpoint, bool) {
	for _, ep := range c.endpoints {
		if ep.Pattern == pattern {
			return ep, true
		}
	}
	return nil, false
}

// Describe renders introspection metadata for every registered endpoint,
// in current specificity order.
func (c *EndpointCollection) Describe() []EndpointInfo {
	infos := make([]EndpointInfo, 0, len(c.endpoints))
	for _, ep := range c.endpoints {
		info := EndpointInfo{
			Pattern:     ep.Pattern,
			Description: ep.Description,
			Options:     ep.Route.Options,
		}
		for _, seg := range ep.Route.Positional {
			if p, ok := seg.(ParameterMatcher); ok {
				info.Positional = append(info.Positional, p)
			}
		}
		infos = append(infos, info)
	}
	return infos
}

// specificityLess implements the specificity ordering keys, highest
// specificity first.
func specificityLess(a, b *Endpoint) bool {
	if d := descending(a.Route.LiteralCount(), b.Route.LiteralCount()); d != 0 {
		return d < 0
	}
	if d := descending(a.Route.RequiredOptionCount(), b.Route.RequiredOptionCount()); d != 0 {
		return d < 0
	}
	if d := ascending(a.Route.OptionalParameterCount(), b.Route.OptionalParameterCount()); d != 0 {
		return d < 0
	}
	if d := ascending(boolToInt(a.Route.HasCatchAll), boolToInt(b.Route.HasCatchAll)); d != 0 {
		return d < 0
	}
	if d := descending(a.Route.PositionalCount(), b.Route.PositionalCount()); d != 0 {
		return d < 0
	}
	if c := strings.Compare(normalizePattern(a.Pattern), normalizePattern(b.Pattern)); c != 0 {
		return c < 0
	}
	// Equal on every key: stable sort preserves insertion order.
	return false
}

// descending returns a value whose sign says whether x ranks before y
// when larger values should sort first.
func descending(x, y int) int {
	return y - x
}

// ascending returns a value whose sign says whether x ranks before y
// when smaller values should sort first.
func ascending(x, y int) int {
	return x - y
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// normalizePattern collapses incidental whitespace so two patterns that
// differ only in spacing compare identically for the tiebreaker.
func normalizePattern(pattern string) string {
	fields := strings.Fields(pattern)
	return strings.Join(fields, " ")
}
