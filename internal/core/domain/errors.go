package domain

import "go.trai.ch/zerr"

var (
	// ErrMissingURL is returned when a registry is initialized without a
	// base URL. Subsequent opens do not need one.
	ErrMissingURL = zerr.New("provide the URL where the registry will be hosted with the --url flag")

	// ErrRegistryCreateFailed is returned when the registry directory tree
	// cannot be created.
	ErrRegistryCreateFailed = zerr.New("failed to create registry directory")

	// ErrConfigWriteFailed is returned when the index configuration file
	// cannot be written.
	ErrConfigWriteFailed = zerr.New("failed to write index config")

	// ErrLedgerReadFailed is returned when a package's ledger file cannot
	// be read.
	ErrLedgerReadFailed = zerr.New("failed to read package index")

	// ErrLedgerParseFailed is returned when a ledger line is not valid JSON.
	ErrLedgerParseFailed = zerr.New("failed to parse package index line")

	// ErrLedgerWriteFailed is returned when appending to a ledger fails.
	ErrLedgerWriteFailed = zerr.New("failed to append to package index")

	// ErrDirtyTree is returned when the workspace has uncommitted changes
	// other than the lockfile.
	ErrDirtyTree = zerr.New("repository not clean, stash changes with `git stash -u` or add them to gitignore")

	// ErrManifestReadFailed is returned when a package manifest cannot be read.
	ErrManifestReadFailed = zerr.New("failed to read manifest")

	// ErrManifestParseFailed is returned when a package manifest is not
	// valid TOML.
	ErrManifestParseFailed = zerr.New("failed to parse manifest")

	// ErrManifestWriteFailed is returned when the edited manifest cannot be
	// written in place.
	ErrManifestWriteFailed = zerr.New("failed to write edited manifest")

	// ErrManifestRestoreFailed is returned when the original manifest cannot
	// be renamed back after a build. The source tree is corrupted.
	ErrManifestRestoreFailed = zerr.New("failed to restore manifest, source tree left with .pre-edit backup")

	// ErrBuildFailed is returned when the external build tool exits non-zero.
	ErrBuildFailed = zerr.New("failed to build package")

	// ErrChecksumFailed is returned when the produced archive cannot be
	// read while hashing.
	ErrChecksumFailed = zerr.New("failed to checksum archive")

	// ErrArtifactExists is returned when the artifact destination is
	// already occupied. Published artifacts are never overwritten.
	ErrArtifactExists = zerr.New("artifact already exists")

	// ErrArtifactCopyFailed is returned when the archive cannot be copied
	// to its final path.
	ErrArtifactCopyFailed = zerr.New("failed to copy archive into registry")

	// ErrMetadataFailed is returned when workspace metadata cannot be read.
	ErrMetadataFailed = zerr.New("failed to read workspace metadata")

	// ErrFetchFailed is returned when a remote archive cannot be downloaded.
	ErrFetchFailed = zerr.New("failed to download archive")

	// ErrExtractFailed is returned when a downloaded archive cannot be
	// unpacked.
	ErrExtractFailed = zerr.New("failed to extract archive")

	// ErrWorkspaceNotFound is returned when an extracted archive has no
	// directory containing a manifest at its first level.
	ErrWorkspaceNotFound = zerr.New("failed to find workspace at the first level of the tarball")

	// ErrDefaultsReadFailed is returned when the defaults file exists but
	// cannot be read.
	ErrDefaultsReadFailed = zerr.New("failed to read defaults file")

	// ErrDefaultsParseFailed is returned when the defaults file is not
	// valid YAML.
	ErrDefaultsParseFailed = zerr.New("failed to parse defaults file")

	// ErrMissingRegistryPath is returned when no registry path is given by
	// flag or defaults file.
	ErrMissingRegistryPath = zerr.New("no registry path, pass --registry or set it in depot.yaml")

	// ErrPublishFailed is returned by a run in which at least one package
	// failed to publish.
	ErrPublishFailed = zerr.New("one or more packages failed to publish")
)
