// Package manifest implements the scoped manifest edit performed before
// packaging: the original file is snapshotted under a .pre-edit name, a
// mutated copy is written in place, and the snapshot is restored when the
// transaction closes, whatever the outcome of the enclosed build.
package manifest

import (
	"os"

	"github.com/pelletier/go-toml/v2"
	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/zerr"
)

// Transaction is an open manifest edit. Close must be called on every exit
// path; it restores the original manifest.
type Transaction struct {
	path   string
	backup string
	closed bool
}

// Begin snapshots the manifest at path and writes the mutated manifest in
// its place. The mutation disables automatic example-target discovery and
// strips binary-target declarations so packaging only ever produces a
// library artifact.
func Begin(path string) (*Transaction, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- manifest path comes from workspace metadata
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrManifestReadFailed.Error())
	}

	var doc map[string]any
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, zerr.Wrap(err, domain.ErrManifestParseFailed.Error())
	}

	edited, err := toml.Marshal(mutate(doc))
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrManifestWriteFailed.Error())
	}

	backup := path + domain.ManifestBackupSuffix
	if err := os.Rename(path, backup); err != nil {
		return nil, zerr.Wrap(err, domain.ErrManifestWriteFailed.Error())
	}

	if err := os.WriteFile(path, edited, domain.FilePerm); err != nil { //nolint:gosec // manifest path from trusted metadata
		// The original is still intact under the backup name; put it back
		// before reporting the write failure.
		if restoreErr := os.Rename(backup, path); restoreErr != nil {
			return nil, zerr.Wrap(restoreErr, domain.ErrManifestRestoreFailed.Error())
		}
		return nil, zerr.Wrap(err, domain.ErrManifestWriteFailed.Error())
	}

	return &Transaction{path: path, backup: backup}, nil
}

// Close restores the original manifest. It is idempotent. A failure here
// means the source tree is left with the .pre-edit snapshot in place and is
// reported as domain.ErrManifestRestoreFailed, distinct from any pending
// build failure.
func (t *Transaction) Close() error {
	if t.closed {
		return nil
	}
	t.closed = true

	if err := os.Rename(t.backup, t.path); err != nil {
		return zerr.Wrap(err, domain.ErrManifestRestoreFailed.Error())
	}
	return nil
}

// mutate applies the packaging edits to a decoded manifest. The
// autoexamples flag is only set when a [package] table exists.
func mutate(doc map[string]any) map[string]any {
	if pkg, ok := doc["package"].(map[string]any); ok {
		pkg["autoexamples"] = false
	}
	delete(doc, "bin")
	return doc
}
