// Package registry maintains a local, file-based package registry: a
// sharded index of append-only per-package ledgers plus the immutable
// content archives they describe.
//
// There is no locking across processes. Two concurrent runs against the
// same registry root can race between the duplicate check and the ledger
// append; callers must serialize invocations externally.
package registry

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/depot/internal/adapters/manifest"
	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/depot/internal/core/ports"
	"go.trai.ch/zerr"
)

// Registry is the top-level facade over one registry root.
type Registry struct {
	root     string
	ledger   *Ledger
	executor ports.BuildExecutor
	vcs      ports.StatusQuerier
	logger   ports.Logger
}

// Open opens the registry at root, creating the directory tree if absent.
// When the index configuration does not exist yet, baseURL is required and
// the configuration is initialized from it; on subsequent opens baseURL may
// be empty.
func Open(
	root, baseURL string,
	executor ports.BuildExecutor,
	vcs ports.StatusQuerier,
	logger ports.Logger,
) (*Registry, error) {
	if err := os.MkdirAll(root, domain.DirPerm); err != nil {
		return nil, zerr.Wrap(err, domain.ErrRegistryCreateFailed.Error())
	}

	if _, err := os.Stat(domain.IndexConfigPath(root)); err != nil {
		if baseURL == "" {
			return nil, domain.ErrMissingURL
		}
		logger.Info("initializing registry at " + root)
		if err := NewIndexConfig(baseURL).Write(root); err != nil {
			return nil, err
		}
	}

	return &Registry{
		root:     root,
		ledger:   NewLedger(root),
		executor: executor,
		vcs:      vcs,
		logger:   logger,
	}, nil
}

// Root returns the registry root directory.
func (r *Registry) Root() string {
	return r.root
}

// Ledger returns the registry's index ledger.
func (r *Registry) Ledger() *Ledger {
	return r.ledger
}

// AddPackage publishes one package version: duplicate check, manifest
// transaction, build, checksum, artifact placement, ledger append, in that
// order. Non-library packages and already-published versions are skips, not
// errors.
func (r *Registry) AddPackage(ctx context.Context, pkg *domain.Package, meta *domain.WorkspaceMetadata) error {
	if !pkg.HasLibraryTarget() {
		r.logger.Warn("skipping non-library package " + pkg.Name)
		return nil
	}

	published, err := r.ledger.AlreadyPublished(pkg.Name, pkg.Version)
	if err != nil {
		return err
	}
	if published {
		r.logger.Warn("package " + pkg.Name + " " + pkg.Version + " already in the index, skipping")
		return nil
	}

	if err := r.checkClean(ctx, meta.WorkspaceRoot); err != nil {
		return err
	}

	checksum, err := r.buildArtifact(ctx, pkg, meta)
	if err != nil {
		return err
	}

	return r.ledger.Append(pkg.Name, domain.NewVersionEntry(pkg, checksum))
}

// checkClean aborts when the workspace's working tree has uncommitted
// changes beyond the lockfile; those files would be embedded in the
// package. A tree without version control passes.
func (r *Registry) checkClean(ctx context.Context, workspaceRoot string) error {
	changes, err := r.vcs.Changes(ctx, workspaceRoot)
	if err != nil {
		return err
	}
	if len(changes) > 0 {
		return zerr.With(domain.ErrDirtyTree, "paths", strings.Join(changes, " "))
	}
	return nil
}

// buildArtifact runs the external build under a manifest transaction,
// checksums the produced archive, and moves it to its immutable location.
// The manifest is restored on every exit path; only a restore failure is
// allowed to mask the build result, since it leaves the tree corrupted.
func (r *Registry) buildArtifact(
	ctx context.Context,
	pkg *domain.Package,
	meta *domain.WorkspaceMetadata,
) (string, error) {
	r.logger.Info("editing manifest of " + pkg.Name)
	tx, err := manifest.Begin(pkg.ManifestPath)
	if err != nil {
		return "", err
	}

	r.logger.Info("building package " + pkg.Name + " " + pkg.Version)
	archive, buildErr := r.executor.Package(ctx, pkg, meta)

	if restoreErr := tx.Close(); restoreErr != nil {
		return "", restoreErr
	}
	if buildErr != nil {
		return "", buildErr
	}

	checksum, err := checksumFile(archive)
	if err != nil {
		return "", err
	}

	if err := r.placeArtifact(archive, pkg); err != nil {
		return "", err
	}
	return checksum, nil
}

// placeArtifact copies the archive to crates/<name>/<name>-<version>.crate.
// An occupied destination is a hard error: published artifacts are
// immutable, and the duplicate check only inspects the ledger, not the
// filesystem.
func (r *Registry) placeArtifact(archive string, pkg *domain.Package) error {
	dest := domain.ArtifactPath(r.root, pkg.Name, pkg.Version)
	if err := os.MkdirAll(filepath.Dir(dest), domain.DirPerm); err != nil {
		return zerr.Wrap(err, domain.ErrArtifactCopyFailed.Error())
	}

	src, err := os.Open(archive) // #nosec G304 -- path from the build output directory
	if err != nil {
		return zerr.Wrap(err, domain.ErrArtifactCopyFailed.Error())
	}
	defer func() { _ = src.Close() }()

	// O_EXCL narrows the race window between two runs placing the same
	// artifact; the loser fails instead of overwriting.
	dst, err := os.OpenFile(dest, os.O_CREATE|os.O_EXCL|os.O_WRONLY, domain.FilePerm) // #nosec G304 -- path derived from registry root
	if err != nil {
		if os.IsExist(err) {
			return zerr.With(domain.ErrArtifactExists, "path", dest)
		}
		return zerr.Wrap(err, domain.ErrArtifactCopyFailed.Error())
	}
	defer func() { _ = dst.Close() }()

	if _, err := io.Copy(dst, src); err != nil {
		return zerr.Wrap(err, domain.ErrArtifactCopyFailed.Error())
	}
	return nil
}

// checksumFile streams the file through SHA-256 and returns the hex digest.
func checksumFile(path string) (string, error) {
	f, err := os.Open(path) // #nosec G304 -- path from the build output directory
	if err != nil {
		return "", zerr.Wrap(err, domain.ErrChecksumFailed.Error())
	}
	defer func() { _ = f.Close() }()

	hasher := sha256.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return "", zerr.Wrap(err, domain.ErrChecksumFailed.Error())
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}
