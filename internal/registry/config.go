package registry

import (
	"encoding/json"
	"os"
	"strings"

	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/zerr"
)

// IndexConfig is the config.json at the root of the index. It is written
// once at initialization and never mutated afterward.
type IndexConfig struct {
	DL string `json:"dl"`
}

// NewIndexConfig derives the download-URL template from the base URL the
// registry will be served under.
func NewIndexConfig(baseURL string) IndexConfig {
	return IndexConfig{
		DL: strings.TrimRight(baseURL, "/") +
			"/" + domain.CratesDirName + "/{crate}/{crate}-{version}" + domain.CrateExt,
	}
}

// Write creates the index directory and writes the config file.
func (c IndexConfig) Write(root string) error {
	if err := os.MkdirAll(domain.IndexPath(root), domain.DirPerm); err != nil {
		return zerr.Wrap(err, domain.ErrRegistryCreateFailed.Error())
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigWriteFailed.Error())
	}

	if err := os.WriteFile(domain.IndexConfigPath(root), data, domain.FilePerm); err != nil {
		return zerr.Wrap(err, domain.ErrConfigWriteFailed.Error())
	}
	return nil
}
