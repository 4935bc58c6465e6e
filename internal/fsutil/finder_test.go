package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindOne(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "deploy.hcl"), nil, 0644))

	path, err := FindOne(dir, "deploy.hcl")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "sub", "deploy.hcl"), path)
}

func TestFindOneMissing(t *testing.T) {
	t.Parallel()
	_, err := FindOne(t.TempDir(), "deploy.hcl")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no file named")
}

func TestFindOneAmbiguous(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "deploy.hcl"), nil, 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "deploy.hcl"), nil, 0644))

	_, err := FindOne(dir, "deploy.hcl")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected exactly one")
}

func TestFindFilesByExtension(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.hcl"), nil, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), nil, 0644))

	files, err := FindFilesByExtension(dir, ".hcl")
	require.NoError(t, err)
	assert.Len(t, files, 1)
}
