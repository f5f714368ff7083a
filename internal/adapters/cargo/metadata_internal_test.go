package cargo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/depot/internal/core/domain"
)

const metadataJSON = `{
  "workspace_root": "/ws",
  "target_directory": "/ws/target",
  "packages": [
    {
      "name": "demo",
      "version": "1.0.0",
      "license": "MIT",
      "license_file": null,
      "manifest_path": "/ws/demo/Cargo.toml",
      "publish": null,
      "features": {"default": ["std"], "std": []},
      "targets": [{"name": "demo", "kind": ["lib"]}],
      "dependencies": [
        {
          "name": "serde",
          "source": "registry+https://github.com/rust-lang/crates.io-index",
          "req": "^1",
          "kind": null,
          "optional": false,
          "uses_default_features": true,
          "features": [],
          "target": null,
          "path": null
        }
      ]
    },
    {
      "name": "internal-tool",
      "version": "0.1.0",
      "license": null,
      "license_file": null,
      "manifest_path": "/ws/tool/Cargo.toml",
      "publish": [],
      "features": {},
      "targets": [{"name": "internal-tool", "kind": ["bin"]}],
      "dependencies": []
    }
  ]
}`

func TestMetadataReader_Read(t *testing.T) {
	t.Parallel()

	log := quietLogger(t)
	r := NewMetadataReader(log)
	r.tool = stubTool(t, "cat <<'EOF'\n"+metadataJSON+"\nEOF")

	meta, err := r.Read(context.Background(), t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "/ws", meta.WorkspaceRoot)
	assert.Equal(t, "/ws/target", meta.TargetDirectory)

	// The publish = [] package is filtered out.
	require.Len(t, meta.Packages, 1)
	pkg := meta.Packages[0]
	assert.Equal(t, "demo", pkg.Name)
	assert.Equal(t, "1.0.0", pkg.Version)
	require.NotNil(t, pkg.License)
	assert.Equal(t, "MIT", *pkg.License)
	assert.True(t, pkg.HasLibraryTarget())

	require.Len(t, pkg.Dependencies, 1)
	dep := pkg.Dependencies[0]
	assert.Equal(t, "serde", dep.Name)
	assert.Nil(t, dep.Kind)
	assert.True(t, dep.UsesDefaultFeatures)
	require.NotNil(t, dep.Source)
	assert.Equal(t, domain.CratesIORegistry, *dep.Source)
}

func TestMetadataReader_Read_ToolFailure(t *testing.T) {
	t.Parallel()

	r := NewMetadataReader(quietLogger(t))
	r.tool = stubTool(t, "echo 'error: could not find Cargo.toml' >&2; exit 101")

	_, err := r.Read(context.Background(), t.TempDir())
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrMetadataFailed.Error())
}

func TestMetadataReader_Read_BadJSON(t *testing.T) {
	t.Parallel()

	r := NewMetadataReader(quietLogger(t))
	r.tool = stubTool(t, "echo not-json")

	_, err := r.Read(context.Background(), t.TempDir())
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrMetadataFailed.Error())
}
