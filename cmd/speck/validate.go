package main

import (
	"fmt"

	"github.com/ozten/speck/pkg/spec"
	"github.com/ozten/speck/pkg/store"
	"github.com/ozten/speck/pkg/validate"
)

type cmdValidate struct {
	All bool `long:"all" description:"Validate every spec in the store"`
	Args struct {
		SpecID string `positional-arg-name:"spec-id" description:"The spec to validate"`
	} `positional-args:"yes"`
}

func (cmd *cmdValidate) Execute(_ []string) error {
	if cmd.Args.SpecID == "" && !cmd.All {
		return fmt.Errorf("provide a SPEC_ID or use --all to validate all specs")
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

	var specs []*spec.TaskSpec
	if cmd.All {
		ids, err := st.ListTaskSpecs()
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			fmt.Println("No specs found in store.")
			return nil
		}
		for _, id := range ids {
			ts, err := st.LoadTaskSpec(id)
			if err != nil {
				return err
			}
			specs = append(specs, ts)
		}
	} else {
		ts, err := st.LoadTaskSpec(cmd.Args.SpecID)
		if err != nil {
			return err
		}
		specs = append(specs, ts)
	}

	anyFailed := false
	for _, ts := range specs {
		result := validate.Validate(validate.Options{Shell: ctx.Shell}, ts)
		fmt.Println(validate.FormatResult(result))
		if !result.Passed() {
			anyFailed = true
		}
	}

	if anyFailed {
		return fmt.Errorf("one or more validation checks failed")
	}
	return nil
}
