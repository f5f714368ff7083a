package app_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/depot/internal/app"
	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/depot/internal/core/ports"
	"go.trai.ch/depot/internal/core/ports/mocks"
	"go.trai.ch/depot/internal/registry"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	defaults *mocks.MockDefaultsLoader
	metadata *mocks.MockMetadataReader
	executor *mocks.MockBuildExecutor
	vcs      *mocks.MockStatusQuerier
	fetcher  *mocks.MockArchiveFetcher
	app      *app.App
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Info(gomock.Any()).AnyTimes()
	logger.EXPECT().Warn(gomock.Any()).AnyTimes()
	logger.EXPECT().Error(gomock.Any()).AnyTimes()

	tracer := mocks.NewMockTracer(ctrl)
	tracer.EXPECT().
		Start(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string) (context.Context, ports.Span) {
			span := mocks.NewMockSpan(ctrl)
			span.EXPECT().SetAttribute(gomock.Any(), gomock.Any()).AnyTimes()
			span.EXPECT().RecordError(gomock.Any()).AnyTimes()
			span.EXPECT().End().AnyTimes()
			return ctx, span
		}).
		AnyTimes()

	f := &fixture{
		defaults: mocks.NewMockDefaultsLoader(ctrl),
		metadata: mocks.NewMockMetadataReader(ctrl),
		executor: mocks.NewMockBuildExecutor(ctrl),
		vcs:      mocks.NewMockStatusQuerier(ctrl),
		fetcher:  mocks.NewMockArchiveFetcher(ctrl),
	}
	f.app = app.New(f.defaults, f.metadata, f.executor, f.vcs, f.fetcher, tracer, logger)
	return f
}

// workspace lays out a manifest and target directory and returns the
// matching metadata for one library package.
func workspace(t *testing.T, name, version string) (string, *domain.WorkspaceMetadata) {
	t.Helper()
	dir := t.TempDir()

	manifestPath := filepath.Join(dir, "Cargo.toml")
	manifest := "[package]\nname = \"" + name + "\"\nversion = \"" + version + "\"\n"
	require.NoError(t, os.WriteFile(manifestPath, []byte(manifest), 0o644))

	targetDir := filepath.Join(dir, "target")
	require.NoError(t, os.MkdirAll(filepath.Join(targetDir, "package"), 0o750))

	meta := &domain.WorkspaceMetadata{
		WorkspaceRoot:   dir,
		TargetDirectory: targetDir,
		Packages: []domain.Package{{
			Name:         name,
			Version:      version,
			ManifestPath: manifestPath,
			Targets:      []domain.Target{{Name: name, Kind: []string{"lib"}}},
		}},
	}
	return dir, meta
}

func (f *fixture) expectBuild() {
	f.executor.EXPECT().
		Package(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, pkg *domain.Package, meta *domain.WorkspaceMetadata) (string, error) {
			archive := filepath.Join(meta.TargetDirectory, "package", pkg.Name+"-"+pkg.Version+".crate")
			if err := os.WriteFile(archive, []byte(pkg.Name), 0o644); err != nil {
				return "", err
			}
			return archive, nil
		})
}

func TestPublish_LocalWorkspace(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	root := t.TempDir()
	dir, meta := workspace(t, "demo", "1.0.0")

	f.defaults.EXPECT().Load(".").Return(ports.Defaults{}, nil)
	f.metadata.EXPECT().Read(gomock.Any(), dir).Return(meta, nil)
	f.vcs.EXPECT().Changes(gomock.Any(), dir).Return(nil, nil)
	f.expectBuild()

	err := f.app.Publish(context.Background(), []string{dir}, app.PublishOptions{
		Registry: root,
		URL:      "https://crates.example.com",
	})
	require.NoError(t, err)

	entries, err := registry.NewLedger(root).Read("demo")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "1.0.0", entries[0].Version)
	assert.FileExists(t, filepath.Join(root, "crates", "demo", "demo-1.0.0.crate"))
}

func TestPublish_DefaultsFillMissingFlags(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	root := t.TempDir()
	dir, meta := workspace(t, "demo", "1.0.0")

	f.defaults.EXPECT().Load(".").Return(ports.Defaults{
		Registry: root,
		URL:      "https://defaults.example.com",
	}, nil)
	f.metadata.EXPECT().Read(gomock.Any(), dir).Return(meta, nil)
	f.vcs.EXPECT().Changes(gomock.Any(), dir).Return(nil, nil)
	f.expectBuild()

	err := f.app.Publish(context.Background(), []string{dir}, app.PublishOptions{})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(root, "index", "config.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "defaults.example.com")
}

func TestPublish_NoRegistryAnywhere(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.defaults.EXPECT().Load(".").Return(ports.Defaults{}, nil)

	err := f.app.Publish(context.Background(), nil, app.PublishOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMissingRegistryPath)
}

func TestPublish_RemoteWorkspace(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	root := t.TempDir()
	dir, meta := workspace(t, "remote-pkg", "2.0.0")
	url := "https://example.com/remote-pkg-2.0.0.tar.gz"

	f.defaults.EXPECT().Load(".").Return(ports.Defaults{}, nil)
	f.fetcher.EXPECT().Prefetch(gomock.Any(), []string{url})
	f.fetcher.EXPECT().Fetch(gomock.Any(), url).Return(dir, nil)
	f.metadata.EXPECT().Read(gomock.Any(), dir).Return(meta, nil)
	f.vcs.EXPECT().Changes(gomock.Any(), dir).Return(nil, nil)
	f.expectBuild()

	err := f.app.Publish(context.Background(), []string{url}, app.PublishOptions{
		Registry: root,
		URL:      "https://crates.example.com",
	})
	require.NoError(t, err)

	entries, err := registry.NewLedger(root).Read("remote-pkg")
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestPublish_OneWorkspaceFailingDoesNotStopOthers(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	root := t.TempDir()
	broken := t.TempDir()
	dir, meta := workspace(t, "survivor", "1.0.0")

	f.defaults.EXPECT().Load(".").Return(ports.Defaults{}, nil)
	f.metadata.EXPECT().Read(gomock.Any(), broken).Return(nil, domain.ErrMetadataFailed)
	f.metadata.EXPECT().Read(gomock.Any(), dir).Return(meta, nil)
	f.vcs.EXPECT().Changes(gomock.Any(), dir).Return(nil, nil)
	f.expectBuild()

	err := f.app.Publish(context.Background(), []string{broken, dir}, app.PublishOptions{
		Registry: root,
		URL:      "https://crates.example.com",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrPublishFailed)

	// The second workspace was still published.
	entries, readErr := registry.NewLedger(root).Read("survivor")
	require.NoError(t, readErr)
	assert.Len(t, entries, 1)
}

func TestShow_SortsBySemver(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	root := t.TempDir()
	ledger := registry.NewLedger(root)
	for _, version := range []string{"1.10.0", "0.9.0", "1.2.0"} {
		entry := domain.NewVersionEntry(&domain.Package{Name: "demo", Version: version}, "aa")
		require.NoError(t, ledger.Append("demo", entry))
	}

	f.defaults.EXPECT().Load(".").Return(ports.Defaults{}, nil)

	entries, err := f.app.Show(context.Background(), "demo", app.ShowOptions{Registry: root})
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "0.9.0", entries[0].Version)
	assert.Equal(t, "1.2.0", entries[1].Version)
	assert.Equal(t, "1.10.0", entries[2].Version)
}

func TestShow_UnknownPackage(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.defaults.EXPECT().Load(".").Return(ports.Defaults{}, nil)

	entries, err := f.app.Show(context.Background(), "ghost", app.ShowOptions{Registry: t.TempDir()})
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestInit_CreatesRegistry(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	root := filepath.Join(t.TempDir(), "registry")

	f.defaults.EXPECT().Load(".").Return(ports.Defaults{}, nil)

	err := f.app.Init(context.Background(), app.InitOptions{
		Registry: root,
		URL:      "https://crates.example.com",
	})
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(root, "index", "config.json"))
}

func TestInit_RequiresURL(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.defaults.EXPECT().Load(".").Return(ports.Defaults{}, nil)

	err := f.app.Init(context.Background(), app.InitOptions{Registry: t.TempDir()})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMissingURL)
}
