package ports

import (
	"context"

	"go.trai.ch/depot/internal/core/domain"
)

// MetadataReader loads the package descriptors of a workspace.
//
//go:generate mockgen -source=metadata.go -destination=mocks/mock_metadata.go -package=mocks
type MetadataReader interface {
	// Read returns the workspace metadata for the workspace at dir.
	// Packages that forbid publishing are filtered out.
	Read(ctx context.Context, dir string) (*domain.WorkspaceMetadata, error)
}
