// Command speck plans and verifies software task specs: its plan command
// surveys a codebase against a requirement, and its other commands show
// the specs in the store, validate them against the codebase, and sync
// them to an issue tracker.
package main

import (
	"fmt"
	"os"

	"github.com/jessevdk/go-flags"
)

func main() {
	parser := flags.NewParser(nil, flags.HelpFlag|flags.PassDoubleDash)

	addCmd(parser, "plan", "Survey the codebase against a requirement",
		"Runs the broad-survey stage and prints its routing table, cross-cutting "+
			"concerns, foundational gaps, and dependency graph. Signal classification, "+
			"reconciliation, and the pushback loop are not run, and no task specs are "+
			"written to the store.",
		&cmdPlan{})

	addCmd(parser, "validate", "Run a task spec's verification checks",
		"Validates one spec by ID, or every spec in the store with --all.",
		&cmdValidate{})

	addCmd(parser, "map", "Generate or diff the codebase map",
		"Writes .spec-cache/codebase_map.yaml, or compares it against a freshly generated map with --diff.",
		&cmdMap{})

	addCmd(parser, "show", "Display a task spec, or list all spec IDs",
		"",
		&cmdShow{})

	addCmd(parser, "status", "List every task spec in a summary table",
		"",
		&cmdStatus{})

	addCmd(parser, "deps", "Display the task spec dependency graph",
		"",
		&cmdDeps{})

	addCmd(parser, "sync", "Sync task specs to an external issue tracker",
		"Supported targets: beads.",
		&cmdSync{})

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func addCmd(parser *flags.Parser, name, short, long string, data interface{}) *flags.Command {
	cmd, err := parser.AddCommand(name, short, long, data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to register command %s: %v\n", name, err)
		os.Exit(1)
	}
	return cmd
}
