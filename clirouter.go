// Package clirouter is the public entry point: register pattern routes,
// resolve argv against them, and bind the result onto a handler's
// parameter struct.
package clirouter

import (
	"github.com/clirouter/clirouter/bind"
	"github.com/clirouter/clirouter/convert"
	"github.com/clirouter/clirouter/parser"
	"github.com/clirouter/clirouter/resolve"
	"github.com/clirouter/clirouter/route"
)

// Router owns the endpoint collection and converter registry for one
// command surface.
type Router struct {
	endpoints *route.EndpointCollection
	registry  *convert.Registry
	binder    *bind.Binder
}

// New returns an empty Router with only built-in type converters
// registered.
func New() *Router {
	registry := convert.NewRegistry()
	return &Router{
		endpoints: route.NewEndpointCollection(),
		registry:  registry,
		binder:    bind.NewBinder(registry),
	}
}

// Register parses pattern and adds it to the router under handler. A
// non-empty parser.ParseErrorList means the pattern was rejected and was
// not added.
func (r *Router) Register(pattern string, handler route.Handler) (*route.Endpoint, parser.ParseErrorList) {
	return r.RegisterDescribed(pattern, handler, "")
}

// RegisterDescribed is Register with an explicit description, overriding
// any top-level `| description` clause already present in pattern.
func (r *Router) RegisterDescribed(pattern string, handler route.Handler, description string) (*route.Endpoint, parser.ParseErrorList) {
	cr, errs := parser.Parse(pattern)
	if errs.HasErrors() {
		return nil, errs
	}
	if description == "" {
		description = cr.Description
	}
	ep := &route.Endpoint{
		Pattern:     pattern,
		Route:       cr,
		Handler:     handler,
		Description: description,
	}
	r.endpoints.Insert(ep)
	return ep, nil
}

// AddTypeConverter registers or replaces the converter used for
// constraint name in every subsequent Bind call.
func (r *Router) AddTypeConverter(name string, fn convert.Converter) {
	r.registry.Register(name, fn)
}

// AddEnumConverter registers a case-insensitive by-name converter for an
// enum constraint.
func (r *Router) AddEnumConverter(name string, members map[string]any) {
	r.registry.RegisterEnum(name, members)
}

// Resolve matches argv against the registered endpoints in specificity
// order, returning the first match and its extracted bindings.
func (r *Router) Resolve(argv []string) (*resolve.Result, *resolve.ResolveError) {
	return resolve.Resolve(argv, r.endpoints)
}

// Bind reflects a resolved Result's bindings onto dest, which must be a
// pointer to a struct whose fields are tagged `cli:"name"`.
func (r *Router) Bind(res *resolve.Result, dest any) error {
	return r.binder.Bind(res.Endpoint.Route, res.Bindings, dest)
}

// Lookup finds a previously registered endpoint by its original pattern
// text, for introspection or shell-completion tooling.
func (r *Router) Lookup(pattern string) (*route.Endpoint, bool) {
	return r.endpoints.Lookup(pattern)
}

// Describe renders introspection metadata for every registered endpoint,
// in current specificity order.
func (r *Router) Describe() []route.EndpointInfo {
	return r.endpoints.Describe()
}
