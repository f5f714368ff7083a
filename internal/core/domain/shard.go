package domain

import (
	"path/filepath"
	"strings"
)

// Shard returns the index subdirectory for a package name. The layout
// mirrors the crates.io index so tooling written against that layout can
// read this registry:
//
//	length 1 -> "1"
//	length 2 -> "2"
//	length 3 -> "3/<first char>"
//	length 4+ -> "<chars 1-2>/<chars 3-4>"
//
// The name is lowercased before the computation, so sharding is
// case-insensitive.
func Shard(name string) string {
	name = strings.ToLower(name)
	switch len(name) {
	case 1:
		return "1"
	case 2:
		return "2"
	case 3:
		return filepath.Join("3", name[:1])
	default:
		return filepath.Join(name[0:2], name[2:4])
	}
}

// PackageIndexPath returns the ledger file for a package:
// root/index/<shard>/<name>. The final path element keeps the caller's
// casing; only the shard is derived from the lowercased name.
func PackageIndexPath(root, name string) string {
	return filepath.Join(IndexPath(root), Shard(name), name)
}
