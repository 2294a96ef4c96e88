package main

import (
	"fmt"

	"github.com/clirouter/clirouter/internal/democonfig"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// NewRoutesCommand returns the "routes" subcommand, which lists every
// registered pattern and its description for discoverability.
func NewRoutesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "List every registered command pattern",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := democonfig.Load()
			if err != nil {
				return err
			}

			r, err := buildRouter()
			if err != nil {
				return err
			}

			heading := color.New(color.FgCyan, color.Bold)
			if !cfg.Color {
				heading.DisableColor()
			}

			for _, info := range r.Describe() {
				heading.Printf("%s\n", info.Pattern)
				if info.Description != "" {
					fmt.Printf("    %s\n", info.Description)
				}
			}
			return nil
		},
	}
}
