package main

import (
	"github.com/clirouter/clirouter"
	"github.com/clirouter/clirouter/route"
)

// buildRouter registers the demo's representative pattern set and
// returns the router ready to resolve argv against it. Each handler is
// an InlineHandler wrapping a func(ArgsStruct); dispatch binds the
// resolved route onto a fresh ArgsStruct via reflection before calling it.
func buildRouter() (*clirouter.Router, error) {
	r := clirouter.New()

	r.AddEnumConverter("level", map[string]any{
		"debug": "debug",
		"info":  "info",
		"warn":  "warn",
		"error": "error",
	})

	registrations := []struct {
		pattern string
		handler any
	}{
		{"status | Shows current status", handleStatus},
		{"add {x:int} {y:int} | Adds two integers", handleAdd},
		{"deploy {app} {tag?} --env,-e {e} --dry-run? | Deploys an application", handleDeploy},
		{"build --tag {t}* --level {l:level} | Builds a tagged artifact at a log level", handleBuild},
		{"docker {*args} | Forwards the remaining arguments to docker", handleDocker},
		{"exec -- {*cmd} | Runs cmd, treating everything after -- literally", handleExec},
	}

	for _, reg := range registrations {
		if _, errs := r.Register(reg.pattern, route.InlineHandler{Func: reg.handler}); errs.HasErrors() {
			return nil, errs
		}
	}

	return r, nil
}
