package domain

import "path/filepath"

const (
	// IndexDirName is the name of the index subtree inside a registry root.
	IndexDirName = "index"

	// CratesDirName is the name of the artifact subtree inside a registry root.
	CratesDirName = "crates"

	// IndexConfigFileName is the name of the index configuration file.
	IndexConfigFileName = "config.json"

	// CrateExt is the file extension of packaged archives.
	CrateExt = ".crate"

	// ManifestFileName is the name of a package's build manifest.
	ManifestFileName = "Cargo.toml"

	// LockfileName is the lockfile ignored by the dirty-tree check.
	LockfileName = "Cargo.lock"

	// ManifestBackupSuffix is appended to a manifest path while a
	// manifest transaction is open.
	ManifestBackupSuffix = ".pre-edit"

	// PackageOutputDirName is the directory under the build target
	// directory where the external build tool places archives.
	PackageOutputDirName = "package"

	// DefaultsFileName is the name of the optional defaults file
	// discovered from the working directory upward.
	DefaultsFileName = "depot.yaml"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// IndexPath returns the index subtree of a registry root.
func IndexPath(root string) string {
	return filepath.Join(root, IndexDirName)
}

// IndexConfigPath returns the path of the index configuration file.
func IndexConfigPath(root string) string {
	return filepath.Join(IndexPath(root), IndexConfigFileName)
}

// CratesPath returns the artifact subtree of a registry root.
func CratesPath(root string) string {
	return filepath.Join(root, CratesDirName)
}

// ArtifactPath returns the immutable destination of one package version's
// archive: crates/<name>/<name>-<version>.crate.
func ArtifactPath(root, name, version string) string {
	return filepath.Join(CratesPath(root), name, name+"-"+version+CrateExt)
}
