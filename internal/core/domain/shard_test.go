package domain_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/depot/internal/core/domain"
)

func TestShard(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want string
	}{
		{"a", "1"},
		{"ab", "2"},
		{"abc", filepath.Join("3", "a")},
		{"abcd", filepath.Join("ab", "cd")},
		{"serde", filepath.Join("se", "rd")},
		{"x-y", filepath.Join("3", "x")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, domain.Shard(tt.name))
		})
	}
}

func TestShard_CaseInsensitive(t *testing.T) {
	t.Parallel()

	assert.Equal(t, domain.Shard("foo"), domain.Shard("Foo"))
	assert.Equal(t, domain.Shard("serde"), domain.Shard("SERDE"))
	assert.Equal(t, domain.Shard("ab"), domain.Shard("AB"))
}

func TestPackageIndexPath(t *testing.T) {
	t.Parallel()

	t.Run("shard from lowercased name", func(t *testing.T) {
		t.Parallel()
		got := domain.PackageIndexPath("/reg", "serde")
		assert.Equal(t, filepath.Join("/reg", "index", "se", "rd", "serde"), got)
	})

	t.Run("final element keeps caller casing", func(t *testing.T) {
		t.Parallel()
		got := domain.PackageIndexPath("/reg", "Inflector")
		assert.Equal(t, filepath.Join("/reg", "index", "in", "fl", "Inflector"), got)
	})
}

func TestArtifactPath(t *testing.T) {
	t.Parallel()

	got := domain.ArtifactPath("/reg", "demo", "1.0.0")
	assert.Equal(t, filepath.Join("/reg", "crates", "demo", "demo-1.0.0.crate"), got)
}
