package main

import (
	"fmt"

	"github.com/ozten/speck/pkg/spec"
	"github.com/ozten/speck/pkg/store"
	"github.com/ozten/speck/pkg/sync"
)

type cmdSync struct {
	DryRun bool `long:"dry-run" description:"Print planned actions without performing them"`
	Args   struct {
		Target string `positional-arg-name:"target" description:"Sync target (supported: beads)"`
	} `positional-args:"yes"`
}

func (cmd *cmdSync) Execute(_ []string) error {
	if cmd.Args.Target != "beads" {
		return fmt.Errorf("unknown sync target: %s. Supported targets: beads", cmd.Args.Target)
	}

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

	specs := make([]*spec.TaskSpec, 0, len(ids))
	for _, id := range ids {
		ts, err := st.LoadTaskSpec(id)
		if err != nil {
			return err
		}
		specs = append(specs, ts)
	}

	existingIssues, err := ctx.Issues.ListIssues(nil)
	if err != nil {
		return fmt.Errorf("failed to list existing issues: %w", err)
	}

	actions := sync.PlanSync(specs, existingIssues)

	if cmd.DryRun {
		fmt.Println("Dry run — would perform:")
		fmt.Println(sync.FormatActions(actions))
		return nil
	}

	if err := sync.ExecuteSync(ctx.Issues, specs, actions); err != nil {
		return err
	}
	fmt.Println("Sync complete:")
	fmt.Println(sync.FormatActions(actions))
	return nil
}
