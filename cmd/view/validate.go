package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/majeekg/view/pkg/scenario"
)

const exitCodeValidationFailure = 2

func validateCmd() *cobra.Command {
	var nocolor bool

	cmd := &cobra.Command{
		Use:   "validate <scenario.json>",
		Short: "Validate a scenario file against the decoration schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runValidate(args[0], nocolor)
		},
	}

	cmd.Flags().BoolVar(&nocolor, "no-color", false, "disable colored output")

	return cmd
}

func runValidate(path string, nocolor bool) error {
	if nocolor {
		color.NoColor = true //nolint:reassign // intentional override of library global
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	result, err := scenario.Validate(data)
	if err != nil {
		return fmt.Errorf("validate %s: %w", path, err)
	}

	if result.Valid() {
		color.New(color.FgGreen).Fprintf(os.Stdout, "%s is valid\n", path)

		doc, err := scenario.Parse(data)
		if err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}

		if _, err := doc.Build(); err != nil {
			color.New(color.FgYellow).Fprintf(os.Stdout, "  schema-valid but decoration build failed: %v\n", err)

			return nil
		}

		color.New(color.FgGreen).Fprintf(os.Stdout, "  %d decorations built cleanly\n", len(doc.Decorations))

		return nil
	}

	color.New(color.FgRed).Fprintf(os.Stdout, "%s failed validation\n", path)
	fmt.Fprintln(os.Stdout, "\nErrors:")

	for _, verr := range result.Errors() {
		color.New(color.FgRed).Fprintf(os.Stdout, "  - %s: %s\n", verr.Field(), verr.Description())
	}

	os.Exit(exitCodeValidationFailure)

	return nil
}
