package main

import (
	"fmt"
	"path"

	"gopkg.in/yaml.v3"

	"github.com/ozten/speck/pkg/codemap"
)

type cmdMap struct {
	Diff bool `long:"diff" description:"Compare the previous codebase map against a freshly generated one"`
}

func (cmd *cmdMap) Execute(_ []string) error {
	root, err := currentDir()
	if err != nil {
		return err
	}
	ctx, cleanup, err := newServiceContext(root)
	if err != nil {
		return err
	}
	defer cleanup()
	modulePrefix, err := resolveModulePrefix(root)
	if err != nil {
		return err
	}
	mapPorts := codemap.Ports{Clock: ctx.Clock, Git: ctx.Git, FS: ctx.FS}

	if cmd.Diff {
		return runMapDiff(mapPorts, root, modulePrefix)
	}
	return runMapGenerate(mapPorts, root, modulePrefix)
}

func runMapGenerate(p codemap.Ports, root, modulePrefix string) error {
	m, err := codemap.Generate(p, root, modulePrefix)
	if err != nil {
		return fmt.Errorf("failed to generate codebase map: %w", err)
	}

	fmt.Printf("Map generated: %d modules, %d files, %d test files\n",
		len(m.Modules), len(m.DirectoryTree), len(m.TestInfrastructure))
	fmt.Printf("Written to %s\n", codemap.OutputPath)
	return nil
}

func runMapDiff(p codemap.Ports, root, modulePrefix string) error {
	mapPath := path.Join(root, codemap.OutputPath)
	oldYAML, err := p.FS.ReadToString(mapPath)
	if err != nil {
		return fmt.Errorf("failed to read previous map at %s: %w", mapPath, err)
	}

	var oldMap codemap.CodebaseMap
	if err := yaml.Unmarshal([]byte(oldYAML), &oldMap); err != nil {
		return fmt.Errorf("failed to parse previous map: %w", err)
	}

	newMap, err := codemap.Generate(p, root, modulePrefix)
	if err != nil {
		return fmt.Errorf("failed to generate codebase map: %w", err)
	}

	d := codemap.DiffMaps(oldMap, newMap)
	fmt.Println(codemap.FormatDiff(d))
	return nil
}
