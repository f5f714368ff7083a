// Package domain holds the registry's core types: package descriptors as
// reported by the workspace metadata reader, and the ledger entries the
// index is made of.
package domain

import (
	"slices"

	"golang.org/x/mod/semver"
)

// CratesIORegistry is the source string of the well-known public registry.
// Dependencies from any other source are redirected into this registry.
const CratesIORegistry = "registry+https://github.com/rust-lang/crates.io-index"

// Target is one build target of a package, tagged with its kind
// ("lib", "bin", "proc-macro", ...).
type Target struct {
	Name string   `json:"name"`
	Kind []string `json:"kind"`
}

// libKinds are the target kinds that produce a library artifact.
var libKinds = []string{"lib", "rlib", "dylib", "cdylib", "staticlib"}

// IsLibrary reports whether the target produces a library.
func (t Target) IsLibrary() bool {
	return slices.ContainsFunc(t.Kind, func(k string) bool {
		return slices.Contains(libKinds, k)
	})
}

// IsProcMacro reports whether the target is a macro-processor target.
func (t Target) IsProcMacro() bool {
	return slices.Contains(t.Kind, "proc-macro")
}

// PackageDependency is a dependency as reported by the metadata reader.
type PackageDependency struct {
	Name                string   `json:"name"`
	Source              *string  `json:"source"`
	Req                 string   `json:"req"`
	Kind                *string  `json:"kind"`
	Optional            bool     `json:"optional"`
	UsesDefaultFeatures bool     `json:"uses_default_features"`
	Features            []string `json:"features"`
	Target              *string  `json:"target"`
	Path                *string  `json:"path"`
}

// Package describes one publishable unit of a workspace.
type Package struct {
	Name         string              `json:"name"`
	Version      string              `json:"version"`
	License      *string             `json:"license"`
	LicenseFile  *string             `json:"license_file"`
	Dependencies []PackageDependency `json:"dependencies"`
	Targets      []Target            `json:"targets"`
	Features     map[string][]string `json:"features"`
	ManifestPath string              `json:"manifest_path"`
	Publish      *[]string           `json:"publish"`
}

// HasLibraryTarget reports whether the package exposes a library or a
// macro-processor target. Packages without one are skipped, not published.
func (p *Package) HasLibraryTarget() bool {
	return slices.ContainsFunc(p.Targets, func(t Target) bool {
		return t.IsLibrary() || t.IsProcMacro()
	})
}

// Publishable reports whether publishing is allowed for the package.
// A nil publish list means unrestricted; an empty list forbids publishing.
func (p *Package) Publishable() bool {
	return p.Publish == nil || len(*p.Publish) > 0
}

// WorkspaceMetadata is the workspace-level context a package is built in.
type WorkspaceMetadata struct {
	WorkspaceRoot   string    `json:"workspace_root"`
	TargetDirectory string    `json:"target_directory"`
	Packages        []Package `json:"packages"`
}

// Dependency is one dependency record inside a ledger entry, following the
// registry index JSON schema.
type Dependency struct {
	Name            string   `json:"name"`
	Req             string   `json:"req"`
	Features        []string `json:"features"`
	Optional        bool     `json:"optional"`
	DefaultFeatures bool     `json:"default_features"`
	Target          *string  `json:"target"`
	Kind            string   `json:"kind"`
	Registry        *string  `json:"registry"`
	Package         *string  `json:"package"`
}

// LedgerSchemaVersion is the index JSON schema version written with every
// new entry.
const LedgerSchemaVersion = 2

// VersionEntry is one line of a package's ledger: the metadata of a single
// published version.
type VersionEntry struct {
	Name        string              `json:"name"`
	Version     string              `json:"vers"`
	Deps        []Dependency        `json:"deps"`
	Features    map[string][]string `json:"features"`
	License     *string             `json:"license"`
	LicenseFile *string             `json:"license_file"`
	Checksum    string              `json:"cksum"`
	Schema      int                 `json:"v"`
	Yanked      bool                `json:"yanked"`
}

// NewVersionEntry builds the ledger entry for a package and the checksum of
// its packaged archive. Dependencies sourced from a path, a version-control
// checkout, or any registry other than the public one have their registry
// field cleared, which makes them resolve against this registry.
func NewVersionEntry(p *Package, checksum string) VersionEntry {
	deps := make([]Dependency, 0, len(p.Dependencies))
	for _, d := range p.Dependencies {
		dep := Dependency{
			Name:            d.Name,
			Req:             d.Req,
			Features:        d.Features,
			Optional:        d.Optional,
			DefaultFeatures: d.UsesDefaultFeatures,
			Target:          d.Target,
			Kind:            dependencyKind(d.Kind),
			Registry:        d.Source,
		}
		if dep.Features == nil {
			dep.Features = []string{}
		}
		if d.Path != nil || (dep.Registry != nil && *dep.Registry != CratesIORegistry) {
			dep.Registry = nil
		}
		deps = append(deps, dep)
	}

	features := p.Features
	if features == nil {
		features = map[string][]string{}
	}

	return VersionEntry{
		Name:        p.Name,
		Version:     p.Version,
		Deps:        deps,
		Features:    features,
		License:     p.License,
		LicenseFile: p.LicenseFile,
		Checksum:    checksum,
		Schema:      LedgerSchemaVersion,
		Yanked:      false,
	}
}

// dependencyKind maps the metadata reader's kind (absent for normal
// dependencies) to the ledger representation.
func dependencyKind(kind *string) string {
	if kind == nil || *kind == "" {
		return "normal"
	}
	return *kind
}

// CompareVersions orders two semver version strings. Invalid versions sort
// before valid ones so they surface at the top of listings.
func CompareVersions(a, b string) int {
	return semver.Compare("v"+a, "v"+b)
}

// ValidVersion reports whether v is a well-formed semver version.
func ValidVersion(v string) bool {
	return semver.IsValid("v" + v)
}
