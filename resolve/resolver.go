package resolve

import (
	"strings"

	"github.com/clirouter/clirouter/route"
)

// Result is the outcome of a successful resolve: the matched endpoint and
// the bindings extracted from argv.
type Result struct {
	Endpoint *route.Endpoint
	Bindings *route.Bindings
}

// Resolve walks endpoints in specificity order and returns the first one
// whose CompiledRoute matches argv, along with its extracted bindings
// If no endpoint matches, it returns a ResolveError whose
// only externally visible kind is NoRouteMatched — per-endpoint mismatch
// detail is never surfaced.
func Resolve(argv []string, endpoints *route.EndpointCollection) (*Result, *ResolveError) {
	for _, ep := range endpoints.All() {
		if bindings, ok := matchEndpoint(argv, ep.Route); ok {
			return &Result{Endpoint: ep, Bindings: bindings}, nil
		}
	}
	return nil, &ResolveError{
		Kind:    NoRouteMatched,
		Message: "No matching command found",
	}
}

func matchEndpoint(argv []string, cr *route.CompiledRoute) (*route.Bindings, bool) {
	bindings := route.NewBindings()
	pos := 0
	seenEndOfOptions := false

	for _, seg := range cr.Positional {
		switch m := seg.(type) {
		case route.EndOfOptionsMatcher:
			if pos < len(argv) && argv[pos] == "--" {
				pos++
				seenEndOfOptions = true
			}

		case route.LiteralMatcher:
			if pos >= len(argv) {
				return nil, false
			}
			tok := argv[pos]
			if !seenEndOfOptions && looksLikeOptionPrefix(tok) {
				return nil, false
			}
			if tok != m.Text {
				return nil, false
			}
			pos++

		case route.ParameterMatcher:
			if m.CatchAll {
				var parts []string
				for pos < len(argv) && !looksLikeDefinedOption(argv[pos], cr) {
					parts = append(parts, argv[pos])
					pos++
				}
				bindings.Set(m.Name, strings.Join(parts, " "))
				continue
			}

			if pos >= len(argv) {
				if m.Optional {
					continue
				}
				return nil, false
			}
			tok := argv[pos]
			if !seenEndOfOptions && looksLikeOptionPrefix(tok) {
				if m.Optional {
					continue
				}
				return nil, false
			}
			bindings.Set(m.Name, tok)
			pos++
		}
	}

	consumed := make([]bool, len(argv))
	for i := 0; i < pos && i < len(argv); i++ {
		consumed[i] = true
	}

	for _, opt := range cr.Options {
		matched := false
		for i := pos; i < len(argv); i++ {
			if consumed[i] || !opt.Matches(argv[i]) {
				continue
			}
			consumed[i] = true
			matched = true

			if opt.ExpectsValue {
				if i+1 < len(argv) && !consumed[i+1] && !looksLikeOptionPrefix(argv[i+1]) {
					consumed[i+1] = true
					if opt.IsRepeated {
						bindings.Append(opt.ParameterName, argv[i+1])
					} else {
						bindings.Set(opt.ParameterName, argv[i+1])
					}
				} else if !opt.ParameterIsOptional {
					return nil, false
				}
			} else {
				bindings.Set(optionBindingName(opt), "true")
			}

			if !opt.IsRepeated {
				break
			}
		}

		if !matched {
			if !opt.IsOptional {
				return nil, false
			}
			if !opt.ExpectsValue {
				bindings.Set(optionBindingName(opt), "false")
			}
		}
	}

	if !cr.HasCatchAll {
		for _, c := range consumed {
			if !c {
				return nil, false
			}
		}
	}

	return bindings, true
}

// looksLikeOptionPrefix reports whether tok starts with '-', the signal
// used throughout resolution to distinguish option tokens from
// positional ones.
func looksLikeOptionPrefix(tok string) bool {
	return strings.HasPrefix(tok, "-")
}

// looksLikeDefinedOption reports whether tok names one of this route's
// declared options, the stopping condition for catch-all consumption.
func looksLikeDefinedOption(tok string, cr *route.CompiledRoute) bool {
	if !looksLikeOptionPrefix(tok) {
		return false
	}
	for _, opt := range cr.Options {
		if opt.Matches(tok) {
			return true
		}
	}
	return false
}

// optionBindingName returns the parameter name a boolean-flag option
// (one with no value placeholder) binds under: its primary form with
// leading dashes stripped.
func optionBindingName(opt route.OptionMatcher) string {
	if opt.ExpectsValue {
		return opt.ParameterName
	}
	return strings.TrimLeft(opt.Primary, "-")
}
