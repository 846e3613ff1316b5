package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/ozten/speck/pkg/codemap"
	"github.com/ozten/speck/pkg/plan"
)

type cmdPlan struct {
	From string `long:"from" description:"Read the requirement text from this file instead of the command line"`
	Args struct {
		Requirement string `positional-arg-name:"requirement" description:"The requirement text to plan against"`
	} `positional-args:"yes"`
}

func (cmd *cmdPlan) Execute(_ []string) error {
	requirement, err := resolveRequirement(cmd.Args.Requirement, cmd.From)
	if err != nil {
		return err
	}

	root, err := currentDir()
	if err != nil {
		return err
	}

	modulePrefix, err := resolveModulePrefix(root)
	if err != nil {
		return err
	}

	ctx, cleanup, err := newServiceContext(root)
	if err != nil {
		return err
	}
	defer cleanup()
	mapPorts := codemap.Ports{Clock: ctx.Clock, Git: ctx.Git, FS: ctx.FS}

	result, err := plan.BroadSurvey(context.Background(), ctx.LLM, mapPorts, root, modulePrefix, requirement)
	if err != nil {
		return fmt.Errorf("broad survey failed: %w", err)
	}

	printSurveyResult(result)
	return nil
}

// resolveRequirement prefers an inline requirement argument over --from; a
// file is only consulted when no argument was given.
func resolveRequirement(arg, from string) (string, error) {
	if arg != "" {
		return arg, nil
	}
	if from != "" {
		content, err := os.ReadFile(from)
		if err != nil {
			return "", fmt.Errorf("failed to read requirement file %s: %w", from, err)
		}
		return string(content), nil
	}
	return "", fmt.Errorf("requirement text is required: provide it as an argument or use --from <file>")
}

func printSurveyResult(result plan.SurveyResult) {
	fmt.Println("=== Routing Table ===")
	concerns := make([]string, 0, len(result.RoutingTable))
	for concern := range result.RoutingTable {
		concerns = append(concerns, concern)
	}
	sort.Strings(concerns)
	for _, concern := range concerns {
		fmt.Printf("  %s: %s\n", concern, result.RoutingTable[concern])
	}

	fmt.Println("\n=== Cross-Cutting Concerns ===")
	if len(result.CrossCuttingConcerns) == 0 {
		fmt.Println("  (none identified)")
	} else {
		for _, concern := range result.CrossCuttingConcerns {
			fmt.Printf("  - %s\n", concern)
		}
	}

	fmt.Println("\n=== Foundational Gaps ===")
	if len(result.FoundationalGaps) == 0 {
		fmt.Println("  (none identified)")
	} else {
		for _, gap := range result.FoundationalGaps {
			fmt.Printf("  - %s\n", gap)
		}
	}

	if len(result.DependencyGraph) > 0 {
		fmt.Println("\n=== Dependency Graph ===")
		modules := make([]string, 0, len(result.DependencyGraph))
		for mod := range result.DependencyGraph {
			modules = append(modules, mod)
		}
		sort.Strings(modules)
		for _, mod := range modules {
			fmt.Printf("  %s -> %s\n", mod, strings.Join(result.DependencyGraph[mod], ", "))
		}
	}
}
