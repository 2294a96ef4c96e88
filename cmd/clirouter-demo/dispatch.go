package main

import (
	"fmt"
	"os"
	"reflect"

	"github.com/clirouter/clirouter/route"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// NewDispatchCommand returns the "dispatch" subcommand, which hands every
// argument following it straight to the router rather than letting cobra
// parse flags itself; the pattern DSL owns its own option syntax.
func NewDispatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:                "dispatch [args...]",
		Short:              "Resolve and invoke a demo command from raw argv",
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDispatch(args)
		},
	}
	return cmd
}

func runDispatch(argv []string) error {
	r, err := buildRouter()
	if err != nil {
		return err
	}

	res, rerr := r.Resolve(argv)
	if rerr != nil {
		color.New(color.FgRed, color.Bold).Fprintln(os.Stderr, "no matching command")
		return rerr
	}

	inline, ok := res.Endpoint.Handler.(route.InlineHandler)
	if !ok {
		return fmt.Errorf("dispatch: unsupported handler kind %T", res.Endpoint.Handler)
	}

	fnVal := reflect.ValueOf(inline.Func)
	fnType := fnVal.Type()
	if fnType.Kind() != reflect.Func || fnType.NumIn() != 1 {
		return fmt.Errorf("dispatch: handler for %q must be a func(ArgsStruct)", res.Endpoint.Pattern)
	}

	argPtr := reflect.New(fnType.In(0))
	if err := r.Bind(res, argPtr.Interface()); err != nil {
		return fmt.Errorf("dispatch: %w", err)
	}

	fnVal.Call([]reflect.Value{argPtr.Elem()})
	return nil
}
