package main

import (
	"fmt"
	"strings"

	"github.com/ozten/speck/pkg/spec"
	"github.com/ozten/speck/pkg/store"
)

type cmdShow struct {
	Args struct {
		ID string `positional-arg-name:"id" description:"The spec to display"`
	} `positional-args:"yes"`
}

func (cmd *cmdShow) Execute(_ []string) error {
	root, err := currentDir()
	if err != nil {
		return err
	}
	ctx, cleanup, err := newServiceContext(root)
	if err != nil {
		return err
	}
	defer cleanup()
	st := store.New(ctx.FS, storeRoot())

	if cmd.Args.ID != "" {
		ts, err := st.LoadTaskSpec(cmd.Args.ID)
		if err != nil {
			return err
		}
		printSpec(ts)
		return nil
	}

	ids, err := st.ListTaskSpecs()
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		fmt.Println("No specs found in store.")
		return nil
	}
	fmt.Println("Available specs:")
	for _, id := range ids {
		fmt.Printf("  %s\n", id)
	}
	fmt.Println("\nUse `speck show <SPEC_ID>` to view details.")
	return nil
}

func printSpec(ts *spec.TaskSpec) {
	fmt.Printf("Spec: %s\n", ts.ID)
	fmt.Printf("Title: %s\n", ts.Title)

	if ts.Requirement != nil {
		fmt.Printf("Requirement: %s\n", *ts.Requirement)
	}

	fmt.Printf("Signal: %s\n", ts.SignalType)

	if ts.Context != nil {
		if len(ts.Context.Modules) > 0 {
			fmt.Printf("Modules: %s\n", strings.Join(ts.Context.Modules, ", "))
		}
		if ts.Context.Patterns != nil {
			fmt.Printf("Patterns: %s\n", *ts.Context.Patterns)
		}
		if len(ts.Context.Dependencies) > 0 {
			fmt.Printf("Dependencies: %s\n", strings.Join(ts.Context.Dependencies, ", "))
		}
	}

	fmt.Println("\nAcceptance Criteria:")
	for i, criterion := range ts.AcceptanceCriteria {
		fmt.Printf("  %d. %s\n", i+1, criterion)
	}

	fmt.Println("\nVerification:")
	printVerification(ts.Verification)
}

func printVerification(v spec.VerificationStrategy) {
	switch strat := v.(type) {
	case spec.DirectAssertionStrategy:
		fmt.Println("  Strategy: direct_assertion")
		for _, check := range strat.Checks {
			printCheck(check)
		}
	case spec.RefactorToExposeStrategy:
		fmt.Println("  Strategy: refactor_to_expose")
		fmt.Printf("  Decision point: %s\n", strat.DecisionPoint)
		fmt.Printf("  Required structure: %s\n", strat.RequiredStructure)
	case spec.TraceAssertionStrategy:
		fmt.Println("  Strategy: trace_assertion")
		fmt.Printf("  Trace point: %s\n", strat.TracePoint)
		fmt.Printf("  Test input: %s\n", strat.TestInput)
	}
}

func printCheck(check spec.VerificationCheck) {
	switch c := check.(type) {
	case spec.TestSuiteCheck:
		fmt.Printf("  - [test_suite] %s (expect: %s)\n", c.Command, c.Expected)
	case spec.SqlAssertionCheck:
		fmt.Printf("  - [sql] %s (expect: %s)\n", c.Query, c.Expected)
	case spec.CommandOutputCheck:
		fmt.Printf("  - [command] %s (expect: %s)\n", c.Command, c.Expected)
	case spec.MigrationRollbackCheck:
		fmt.Printf("  - [migration_rollback] %s\n", c.Description)
	case spec.CustomCheck:
		fmt.Printf("  - [custom] %s\n", c.Description)
	case spec.RefactorToExposeCheck:
		fmt.Printf("  - [refactor_to_expose] %s (%s)\n", c.DecisionPoint, c.RequiredStructure)
	case spec.TraceAssertionCheck:
		fmt.Printf("  - [trace_assertion] %s\n", c.TracePoint)
	}
}

