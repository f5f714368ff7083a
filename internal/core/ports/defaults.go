package ports

// Defaults are the optional tool-level defaults read from depot.yaml.
// Command-line flags take precedence over every field.
type Defaults struct {
	Registry string
	URL      string
}

// DefaultsLoader discovers and reads the optional defaults file.
//
//go:generate mockgen -source=defaults.go -destination=mocks/mock_defaults.go -package=mocks
type DefaultsLoader interface {
	// Load walks up from cwd looking for the defaults file. A missing file
	// yields zero-value Defaults and no error.
	Load(cwd string) (Defaults, error)
}
