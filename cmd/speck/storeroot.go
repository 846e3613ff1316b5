package main

import (
	"fmt"
	"os"
	"path"
	"strings"
)

// storeRoot resolves the spec store's root directory: the SPECK_STORE
// environment variable when set, else ".speck" under the current directory.
func storeRoot() string {
	if p := os.Getenv("SPECK_STORE"); p != "" {
		return p
	}
	return ".speck"
}

// currentDir returns the process's current working directory, wrapped with
// context on failure.
func currentDir() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("cannot determine current directory: %w", err)
	}
	return cwd, nil
}

// resolveModulePrefix reads the module path declared in root's go.mod.
func resolveModulePrefix(root string) (string, error) {
	content, err := os.ReadFile(path.Join(root, "go.mod"))
	if err != nil {
		return "", fmt.Errorf("failed to read go.mod: %w", err)
	}

	for _, line := range strings.Split(string(content), "\n") {
		if rest, ok := strings.CutPrefix(strings.TrimSpace(line), "module "); ok {
			return strings.TrimSpace(rest), nil
		}
	}
	return "", fmt.Errorf("go.mod has no module line")
}
