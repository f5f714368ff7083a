// Package git queries the version-control status of a workspace.
package git

import (
	"context"
	"os/exec"
	"strings"

	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/depot/internal/core/ports"
)

// StatusQuerier implements ports.StatusQuerier by shelling out to git.
type StatusQuerier struct {
	logger ports.Logger
}

// NewStatusQuerier creates a new StatusQuerier.
func NewStatusQuerier(logger ports.Logger) *StatusQuerier {
	return &StatusQuerier{logger: logger}
}

// Changes runs `git status --porcelain` at root and returns the changed
// paths, ignoring blank lines and the lockfile. A non-zero exit or a
// missing git binary means the tree is not under version control, which is
// treated as clean.
func (q *StatusQuerier) Changes(ctx context.Context, root string) ([]string, error) {
	cmd := exec.CommandContext(ctx, "git", "status", "--porcelain")
	cmd.Dir = root

	out, err := cmd.Output()
	if err != nil {
		// Likely not a git repository. The check is advisory.
		return nil, nil
	}

	var changes []string
	for line := range strings.Lines(string(out)) {
		line = strings.TrimRight(line, "\n")
		if strings.TrimSpace(line) == "" {
			continue
		}
		// The build tool excludes the lockfile from packaging anyway.
		if strings.Contains(line, domain.LockfileName) {
			continue
		}
		changes = append(changes, line)
	}

	return changes, nil
}
