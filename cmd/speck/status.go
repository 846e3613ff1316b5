package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ozten/speck/pkg/spec"
	"github.com/ozten/speck/pkg/store"
)

type cmdStatus struct{}

type statusRow struct {
	id, title, signal, strategy string
}

func (cmd *cmdStatus) Execute(_ []string) error {
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

	rows := make([]statusRow, 0, len(ids))
	for _, id := range ids {
		ts, err := st.LoadTaskSpec(id)
		if err != nil {
			return err
		}
		rows = append(rows, statusRow{
			id:       ts.ID,
			title:    ts.Title,
			signal:   string(ts.SignalType),
			strategy: strategyName(ts.Verification),
		})
	}

	idWidth, titleWidth, signalWidth, strategyWidth := 2, 5, 6, 8
	for _, r := range rows {
		idWidth = max(idWidth, len(r.id))
		titleWidth = max(titleWidth, len(r.title))
		signalWidth = max(signalWidth, len(r.signal))
		strategyWidth = max(strategyWidth, len(r.strategy))
	}

	fmt.Printf("%-*s  %-*s  %-*s  %-*s\n", idWidth, "ID", titleWidth, "TITLE", signalWidth, "SIGNAL", strategyWidth, "STRATEGY")
	fmt.Printf("%s  %s  %s  %s\n",
		strings.Repeat("-", idWidth), strings.Repeat("-", titleWidth),
		strings.Repeat("-", signalWidth), strings.Repeat("-", strategyWidth))

	for _, r := range rows {
		fmt.Printf("%-*s  %-*s  %-*s  %-*s\n", idWidth, r.id, titleWidth, r.title, signalWidth, r.signal, strategyWidth, r.strategy)
	}

	fmt.Printf("\n%d spec(s) total.\n", len(rows))
	return nil
}

func strategyName(v spec.VerificationStrategy) string {
	switch v.(type) {
	case spec.DirectAssertionStrategy:
		return "direct_assertion"
	case spec.RefactorToExposeStrategy:
		return "refactor_to_expose"
	case spec.TraceAssertionStrategy:
		return "trace_assertion"
	default:
		return "unknown"
	}
}

