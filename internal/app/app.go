// Package app implements the application layer for depot.
package app

import (
	"context"
	"slices"
	"strconv"
	"strings"

	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/depot/internal/core/ports"
	"go.trai.ch/depot/internal/registry"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	defaults ports.DefaultsLoader
	metadata ports.MetadataReader
	executor ports.BuildExecutor
	vcs      ports.StatusQuerier
	fetcher  ports.ArchiveFetcher
	tracer   ports.Tracer
	logger   ports.Logger
}

// New creates a new App instance.
func New(
	defaults ports.DefaultsLoader,
	metadata ports.MetadataReader,
	executor ports.BuildExecutor,
	vcs ports.StatusQuerier,
	fetcher ports.ArchiveFetcher,
	tracer ports.Tracer,
	log ports.Logger,
) *App {
	return &App{
		defaults: defaults,
		metadata: metadata,
		executor: executor,
		vcs:      vcs,
		fetcher:  fetcher,
		tracer:   tracer,
		logger:   log,
	}
}

// PublishOptions configuration for the Publish method.
type PublishOptions struct {
	Registry string
	URL      string
}

// Publish adds every library package of the given workspaces to the
// registry. Workspaces are local directories or http(s) tarball URLs; an
// empty list means the current directory. One failing workspace or package
// does not stop the others, but any failure makes the whole run fail.
func (a *App) Publish(ctx context.Context, workspaces []string, opts PublishOptions) error {
	reg, err := a.openRegistry(opts.Registry, opts.URL)
	if err != nil {
		return err
	}

	if len(workspaces) == 0 {
		workspaces = []string{"."}
	}

	if remote := filterRemote(workspaces); len(remote) > 0 {
		a.fetcher.Prefetch(ctx, remote)
	}

	var failures int
	for _, workspace := range workspaces {
		n, err := a.publishWorkspace(ctx, reg, workspace)
		failures += n
		if err != nil {
			a.logger.Error(zerr.Wrap(err, "failed to publish "+workspace))
			failures++
		}
	}

	if failures > 0 {
		return zerr.With(domain.ErrPublishFailed, "failures", strconv.Itoa(failures))
	}
	return nil
}

// publishWorkspace publishes the packages of one workspace and returns how
// many of them failed. The returned error covers workspace-level problems
// such as an unreachable archive or unreadable metadata.
func (a *App) publishWorkspace(ctx context.Context, reg *registry.Registry, workspace string) (int, error) {
	dir := workspace
	if isRemote(workspace) {
		fetched, err := a.fetcher.Fetch(ctx, workspace)
		if err != nil {
			return 0, err
		}
		dir = fetched
	}

	meta, err := a.metadata.Read(ctx, dir)
	if err != nil {
		return 0, err
	}

	var failures int
	for i := range meta.Packages {
		pkg := &meta.Packages[i]

		spanCtx, span := a.tracer.Start(ctx, "publish "+pkg.Name)
		span.SetAttribute("version", pkg.Version)

		if err := reg.AddPackage(spanCtx, pkg, meta); err != nil {
			span.RecordError(err)
			span.End()
			a.logger.Error(zerr.Wrap(err, "failed to publish "+pkg.Name+" "+pkg.Version))
			failures++
			continue
		}
		span.End()
	}
	return failures, nil
}

// ShowOptions configuration for the Show method.
type ShowOptions struct {
	Registry string
}

// Show returns the published versions of a package, oldest first. A package
// with no ledger yields an empty list.
func (a *App) Show(_ context.Context, name string, opts ShowOptions) ([]domain.VersionEntry, error) {
	path, _, err := a.resolve(opts.Registry, "")
	if err != nil {
		return nil, err
	}

	entries, err := registry.NewLedger(path).Read(name)
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(entries, func(a, b domain.VersionEntry) int {
		return domain.CompareVersions(a.Version, b.Version)
	})
	return entries, nil
}

// InitOptions configuration for the Init method.
type InitOptions struct {
	Registry string
	URL      string
}

// Init creates the registry directory tree and its index configuration
// without publishing anything.
func (a *App) Init(_ context.Context, opts InitOptions) error {
	_, err := a.openRegistry(opts.Registry, opts.URL)
	return err
}

func (a *App) openRegistry(registryFlag, urlFlag string) (*registry.Registry, error) {
	path, url, err := a.resolve(registryFlag, urlFlag)
	if err != nil {
		return nil, err
	}
	return registry.Open(path, url, a.executor, a.vcs, a.logger)
}

// resolve merges flags with the depot.yaml defaults; flags win.
func (a *App) resolve(registryFlag, urlFlag string) (path, url string, err error) {
	defaults, err := a.defaults.Load(".")
	if err != nil {
		return "", "", err
	}

	path = registryFlag
	if path == "" {
		path = defaults.Registry
	}
	if path == "" {
		return "", "", domain.ErrMissingRegistryPath
	}

	url = urlFlag
	if url == "" {
		url = defaults.URL
	}
	return path, url, nil
}

func isRemote(workspace string) bool {
	return strings.HasPrefix(workspace, "http://") || strings.HasPrefix(workspace, "https://")
}

func filterRemote(workspaces []string) []string {
	var remote []string
	for _, w := range workspaces {
		if isRemote(w) {
			remote = append(remote, w)
		}
	}
	return remote
}
