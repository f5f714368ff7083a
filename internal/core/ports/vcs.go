package ports

import "context"

// StatusQuerier reports uncommitted changes in a source tree.
//
//go:generate mockgen -source=vcs.go -destination=mocks/mock_vcs.go -package=mocks
type StatusQuerier interface {
	// Changes returns the changed paths of the working tree at root,
	// excluding the lockfile. A tree that is not under version control
	// yields no changes; the check is advisory.
	Changes(ctx context.Context, root string) ([]string, error)
}
