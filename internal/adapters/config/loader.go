// Package config provides the loader for depot's optional defaults file.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/depot/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.DefaultsLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// depotFile represents the structure of the depot.yaml defaults file.
type depotFile struct {
	Registry string `yaml:"registry"`
	URL      string `yaml:"url"`
}

// Load walks up from cwd to the filesystem root looking for depot.yaml and
// returns its defaults. No file anywhere on the path is not an error, just
// zero defaults.
func (l *Loader) Load(cwd string) (ports.Defaults, error) {
	path, found := l.findDefaults(cwd)
	if !found {
		return ports.Defaults{}, nil
	}

	data, err := os.ReadFile(path) // #nosec G304 -- path found by walking up from cwd
	if err != nil {
		return ports.Defaults{}, zerr.Wrap(err, domain.ErrDefaultsReadFailed.Error())
	}

	var file depotFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return ports.Defaults{}, zerr.With(
			zerr.Wrap(err, domain.ErrDefaultsParseFailed.Error()),
			"path", path,
		)
	}

	l.Logger.Info("using defaults from " + path)
	return ports.Defaults{
		Registry: file.Registry,
		URL:      file.URL,
	}, nil
}

func (l *Loader) findDefaults(cwd string) (string, bool) {
	currentDir := cwd
	for {
		path := filepath.Join(currentDir, domain.DefaultsFileName)
		if _, err := os.Stat(path); err == nil {
			return path, true
		} else if !errors.Is(err, fs.ErrNotExist) {
			return "", false
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root
			break
		}
		currentDir = parentDir
	}
	return "", false
}
