package registry

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/zerr"
)

// Ledger reads and appends the per-package metadata files of the index.
// Files are append-only: one compact JSON object per line, one line per
// published version, never rewritten in place.
type Ledger struct {
	root string
}

// NewLedger creates a Ledger over the registry root.
func NewLedger(root string) *Ledger {
	return &Ledger{root: root}
}

// Read returns the entries of a package's ledger. A missing file means the
// package has never been published and yields an empty list, not an error.
func (l *Ledger) Read(name string) ([]domain.VersionEntry, error) {
	data, err := os.ReadFile(domain.PackageIndexPath(l.root, name)) // #nosec G304 -- path derived from registry root
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.Wrap(err, domain.ErrLedgerReadFailed.Error())
	}

	var entries []domain.VersionEntry
	for line := range strings.Lines(string(data)) {
		line = strings.TrimRight(line, "\n")
		if strings.TrimSpace(line) == "" {
			continue
		}

		var entry domain.VersionEntry
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			return nil, zerr.Wrap(err, domain.ErrLedgerParseFailed.Error()+": "+line)
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// AlreadyPublished reports whether a version of the package is recorded in
// the ledger. This is the sole duplicate-publish gate; it is checked once
// before the build and not re-validated against concurrent writers.
func (l *Ledger) AlreadyPublished(name, version string) (bool, error) {
	entries, err := l.Read(name)
	if err != nil {
		return false, err
	}

	for _, e := range entries {
		if e.Version == version {
			return true, nil
		}
	}
	return false, nil
}

// Append serializes the entry compactly and appends it as one line to the
// package's ledger, creating the shard directory and the file as needed.
func (l *Ledger) Append(name string, entry domain.VersionEntry) error {
	path := domain.PackageIndexPath(l.root, name)
	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return zerr.Wrap(err, domain.ErrLedgerWriteFailed.Error())
	}

	line, err := json.Marshal(entry)
	if err != nil {
		return zerr.Wrap(err, domain.ErrLedgerWriteFailed.Error())
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, domain.FilePerm) // #nosec G304 -- path derived from registry root
	if err != nil {
		return zerr.Wrap(err, domain.ErrLedgerWriteFailed.Error())
	}
	defer func() { _ = f.Close() }()

	if _, err := f.Write(append(line, '\n')); err != nil {
		return zerr.Wrap(err, domain.ErrLedgerWriteFailed.Error())
	}
	return nil
}
