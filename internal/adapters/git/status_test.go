package git_test

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/depot/internal/adapters/git"
	"go.trai.ch/depot/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newQuerier(t *testing.T) *git.StatusQuerier {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Warn(gomock.Any()).AnyTimes()
	return git.NewStatusQuerier(log)
}

func gitInit(t *testing.T, dir string) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	for _, args := range [][]string{
		{"init"},
		{"config", "user.email", "test@example.com"},
		{"config", "user.name", "test"},
	} {
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		require.NoError(t, cmd.Run(), "git %v", args)
	}
}

func TestChanges_NotARepository(t *testing.T) {
	t.Parallel()

	q := newQuerier(t)
	changes, err := q.Changes(context.Background(), t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, changes)
}

func TestChanges_UntrackedFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	gitInit(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "stray.txt"), []byte("x"), 0o644))

	q := newQuerier(t)
	changes, err := q.Changes(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, changes, 1)
	assert.Contains(t, changes[0], "stray.txt")
}

func TestChanges_LockfileIgnored(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	gitInit(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Cargo.lock"), []byte("x"), 0o644))

	q := newQuerier(t)
	changes, err := q.Changes(context.Background(), dir)
	require.NoError(t, err)
	assert.Empty(t, changes)
}
