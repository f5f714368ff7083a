package ports

import (
	"context"

	"go.trai.ch/depot/internal/core/domain"
)

// BuildExecutor runs the external build tool to package one unit.
//
//go:generate mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type BuildExecutor interface {
	// Package builds the archive for pkg with all features enabled and
	// verification skipped. It blocks until the tool exits and returns the
	// path of the produced archive under meta's target directory.
	//
	// A non-zero exit status is reported as domain.ErrBuildFailed.
	Package(ctx context.Context, pkg *domain.Package, meta *domain.WorkspaceMetadata) (string, error)
}
