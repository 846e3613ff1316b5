package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ozten/speck/pkg/store"
)

type cmdDeps struct{}

func (cmd *cmdDeps) Execute(_ []string) error {
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

	ids, err := st.ListTaskSpecs()
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		fmt.Println("No specs found in store.")
		return nil
	}
	sort.Strings(ids)

	dependsOn := make(map[string][]string)
	dependedBy := make(map[string][]string)
	titles := make(map[string]string)

	for _, id := range ids {
		ts, err := st.LoadTaskSpec(id)
		if err != nil {
			return err
		}
		titles[ts.ID] = ts.Title

		var deps []string
		if ts.Context != nil {
			deps = ts.Context.Dependencies
		}
		for _, dep := range deps {
			dependedBy[dep] = append(dependedBy[dep], ts.ID)
		}
		dependsOn[ts.ID] = deps
	}

	var roots []string
	for _, id := range ids {
		if len(dependsOn[id]) == 0 {
			roots = append(roots, id)
		}
	}

	if len(roots) == len(ids) {
		fmt.Printf("No dependencies found among %d spec(s).\n", len(ids))
		fmt.Println("\nAll specs are independent:")
		for _, id := range ids {
			fmt.Printf("  %s — %s\n", id, titles[id])
		}
		return nil
	}

	fmt.Println("Dependency Graph:")
	fmt.Println()

	for _, id := range ids {
		deps := dependsOn[id]
		dependents := dependedBy[id]

		fmt.Printf("%s — %s\n", id, titles[id])
		if len(deps) == 0 {
			fmt.Println("  depends on: (none)")
		} else {
			fmt.Printf("  depends on: %s\n", strings.Join(deps, ", "))
		}
		if len(dependents) == 0 {
			fmt.Println("  blocks: (none)")
		} else {
			fmt.Printf("  blocks: %s\n", strings.Join(dependents, ", "))
		}
		fmt.Println()
	}

	if len(roots) > 0 {
		fmt.Printf("Roots (no dependencies): %s\n", strings.Join(roots, ", "))
	}

	var leaves []string
	for _, id := range ids {
		if len(dependedBy[id]) == 0 {
			leaves = append(leaves, id)
		}
	}
	if len(leaves) > 0 {
		fmt.Printf("Leaves (nothing depends on them): %s\n", strings.Join(leaves, ", "))
	}

	return nil
}
