package cargo

import (
	"context"
	"encoding/json"
	"errors"
	"os/exec"
	"strings"

	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/depot/internal/core/ports"
	"go.trai.ch/zerr"
)

// MetadataReader implements ports.MetadataReader by invoking
// `cargo metadata`.
type MetadataReader struct {
	logger ports.Logger
	tool   string
}

// NewMetadataReader creates a new MetadataReader.
func NewMetadataReader(logger ports.Logger) *MetadataReader {
	return &MetadataReader{
		logger: logger,
		tool:   "cargo",
	}
}

// Read runs `cargo metadata --format-version 1 --no-deps` in dir and
// decodes the workspace metadata. Packages whose manifest forbids
// publishing are filtered out.
func (r *MetadataReader) Read(ctx context.Context, dir string) (*domain.WorkspaceMetadata, error) {
	cmd := exec.CommandContext(ctx, r.tool, "metadata", "--format-version", "1", "--no-deps") //nolint:gosec // fixed tool and arguments
	cmd.Dir = dir

	out, err := cmd.Output()
	if err != nil {
		wrapped := zerr.Wrap(err, domain.ErrMetadataFailed.Error())
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			wrapped = zerr.With(wrapped, "stderr", strings.TrimSpace(string(exitErr.Stderr)))
		}
		return nil, wrapped
	}

	var meta domain.WorkspaceMetadata
	if err := json.Unmarshal(out, &meta); err != nil {
		return nil, zerr.Wrap(err, domain.ErrMetadataFailed.Error())
	}

	publishable := meta.Packages[:0]
	for _, p := range meta.Packages {
		if p.Publishable() {
			publishable = append(publishable, p)
		} else {
			r.logger.Info("skipping package with publishing disabled: " + p.Name)
		}
	}
	meta.Packages = publishable

	return &meta, nil
}
