package cargo

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/depot/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

// stubTool writes an executable shell script standing in for cargo.
func stubTool(t *testing.T, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell stubs are not portable to windows")
	}

	path := filepath.Join(t.TempDir(), "cargo-stub")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o755)) //nolint:gosec // test stub must be executable
	return path
}

func quietLogger(t *testing.T) *mocks.MockLogger {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).AnyTimes()
	return log
}

func testPackage(t *testing.T) *domain.Package {
	t.Helper()
	return &domain.Package{
		Name:         "demo",
		Version:      "1.0.0",
		ManifestPath: filepath.Join(t.TempDir(), "Cargo.toml"),
	}
}

func TestExecutor_Package_Success(t *testing.T) {
	t.Parallel()

	e := NewExecutor(quietLogger(t))
	e.tool = stubTool(t, "echo packaging; exit 0")

	meta := &domain.WorkspaceMetadata{TargetDirectory: "/ws/target"}
	archive, err := e.Package(context.Background(), testPackage(t), meta)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/ws/target", "package", "demo-1.0.0.crate"), archive)
}

func TestExecutor_Package_NonZeroExit(t *testing.T) {
	t.Parallel()

	e := NewExecutor(quietLogger(t))
	e.tool = stubTool(t, "exit 101")

	meta := &domain.WorkspaceMetadata{TargetDirectory: "/ws/target"}
	_, err := e.Package(context.Background(), testPackage(t), meta)
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrBuildFailed.Error())
}

func TestExecutor_Package_MissingTool(t *testing.T) {
	t.Parallel()

	e := NewExecutor(quietLogger(t))
	e.tool = filepath.Join(t.TempDir(), "does-not-exist")

	meta := &domain.WorkspaceMetadata{TargetDirectory: "/ws/target"}
	_, err := e.Package(context.Background(), testPackage(t), meta)
	require.Error(t, err)
}

func TestLogWriter_SplitsLines(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info("first")
	log.EXPECT().Info("second")
	log.EXPECT().Info("tail")

	w := &logWriter{logger: log, level: "info"}
	_, err := w.Write([]byte("first\nsec"))
	require.NoError(t, err)
	_, err = w.Write([]byte("ond\ntail"))
	require.NoError(t, err)
	require.NoError(t, w.Close())
}
