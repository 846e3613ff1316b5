package live

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileSystem is the real OS filesystem.
type FileSystem struct{}

// NewFileSystem returns a live FileSystem.
func NewFileSystem() FileSystem { return FileSystem{} }

// ReadToString reads the file at path as a UTF-8 string.
func (FileSystem) ReadToString(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

// Write writes contents to path, creating parent directories as needed.
func (FileSystem) Write(path, contents string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// Exists reports whether path exists.
func (FileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ListDir lists the entry names directly under path.
func (FileSystem) ListDir(path string) ([]string, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("failed to list directory %s: %w", path, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names, nil
}
