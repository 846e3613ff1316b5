// Command cassette-split splits a monolithic cassette YAML file into
// per-port cassette files, each carrying a source_session back-reference
// to the recording it was extracted from.
//
// Usage: cassette-split <input.yaml> <output-dir>
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/ozten/speck/pkg/cassette"
)

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintln(os.Stderr, "Usage: cassette-split <input.yaml> <output-dir>")
		os.Exit(1)
	}

	if err := splitCassette(os.Args[1], os.Args[2]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func splitCassette(input, outputDir string) error {
	content, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", input, err)
	}

	var c cassette.Cassette
	if err := yaml.Unmarshal(content, &c); err != nil {
		return fmt.Errorf("failed to parse %s: %w", input, err)
	}

	byPort := make(map[string][]cassette.Interaction)
	var portOrder []string
	for _, interaction := range c.Interactions {
		if _, seen := byPort[interaction.Port]; !seen {
			portOrder = append(portOrder, interaction.Port)
		}
		byPort[interaction.Port] = append(byPort[interaction.Port], interaction)
	}
	sort.Strings(portOrder)

	for _, port := range portOrder {
		interactions := byPort[port]
		if len(interactions) == 0 {
			continue
		}

		renumbered := make([]cassette.Interaction, len(interactions))
		for i, orig := range interactions {
			renumbered[i] = cassette.Interaction{
				Seq:    uint64(i),
				Port:   orig.Port,
				Method: orig.Method,
				Input:  orig.Input,
				Output: orig.Output,
			}
		}

		perPort := cassette.Cassette{
			Name:          c.Name + "-" + port,
			RecordedAt:    c.RecordedAt,
			Commit:        c.Commit,
			SourceSession: c.Name,
			Interactions:  renumbered,
		}

		portDir := filepath.Join(outputDir, port)
		if err := os.MkdirAll(portDir, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", portDir, err)
		}

		filePath := filepath.Join(portDir, c.Name+".yaml")
		out, err := yaml.Marshal(&perPort)
		if err != nil {
			return fmt.Errorf("failed to serialize cassette for port %s: %w", port, err)
		}
		if err := os.WriteFile(filePath, out, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", filePath, err)
		}

		fmt.Printf("Wrote %s\n", filePath)
	}

	return nil
}
