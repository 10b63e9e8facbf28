package util

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafeJoinStaysInsideRoot(t *testing.T) {
	root := t.TempDir()
	for _, rel := range []string{"a/b.png", "/a/b.png", "../a/b.png", "a/../../b.png"} {
		got, err := SafeJoin(root, rel)
		require.NoError(t, err, rel)
		r, err := filepath.Rel(root, got)
		require.NoError(t, err)
		assert.NotContains(t, r, "..", rel)
	}
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "x", "y")
	require.NoError(t, EnsureDir(dir))
	require.NoError(t, EnsureDir(dir))
}
