package live

import (
	"fmt"
	"os/exec"
	"strings"
)

// Git shells out to the real git binary.
type Git struct {
	Dir string
}

// NewGit returns a live Git rooted at dir.
func NewGit(dir string) Git { return Git{Dir: dir} }

func (g Git) run(args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = g.Dir
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("git %s failed: %w", strings.Join(args, " "), err)
	}
	return strings.TrimRight(string(out), "\r\n"), nil
}

// CurrentCommit returns the current HEAD commit hash.
func (g Git) CurrentCommit() (string, error) {
	return g.run("rev-parse", "HEAD")
}

// Diff returns the working-tree diff against HEAD.
func (g Git) Diff() (string, error) {
	return g.run("diff")
}

// ListFiles lists every git-tracked file under path.
func (g Git) ListFiles(path string) ([]string, error) {
	out, err := g.run("ls-files", path)
	if err != nil {
		return nil, err
	}
	if out == "" {
		return []string{}, nil
	}
	return strings.Split(out, "\n"), nil
}
