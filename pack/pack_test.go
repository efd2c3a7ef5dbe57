package pack

import (
	"archive/zip"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moyoez/airshare-go/types"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func archiveEntries(t *testing.T, archivePath string) map[string]string {
	t.Helper()
	r, err := zip.OpenReader(archivePath)
	require.NoError(t, err)
	defer r.Close()

	entries := make(map[string]string)
	for _, f := range r.File {
		rc, err := f.Open()
		require.NoError(t, err)
		buf, err := io.ReadAll(rc)
		require.NoError(t, err)
		rc.Close()
		entries[f.Name] = string(buf)
	}
	return entries
}

func TestPrepareEmptyInput(t *testing.T) {
	_, _, _, err := Prepare(nil, false)
	assert.True(t, errors.Is(err, types.ErrInvalidInput))

	_, _, _, err = Prepare([]string{}, true)
	assert.True(t, errors.Is(err, types.ErrInvalidInput))
}

func TestPrepareMissingPath(t *testing.T) {
	_, _, _, err := Prepare([]string{filepath.Join(t.TempDir(), "nope.txt")}, false)
	assert.Error(t, err)
	assert.False(t, errors.Is(err, types.ErrInvalidInput))
}

func TestPrepareSingleFilePassthrough(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hello.txt")
	writeFile(t, path, "hello world")

	artifact, name, cleanup, err := Prepare([]string{path}, false)
	require.NoError(t, err)
	defer cleanup()

	assert.Equal(t, path, artifact)
	assert.Equal(t, "hello.txt", name)

	// Passthrough twice yields the identical artifact and name.
	artifact2, name2, cleanup2, err := Prepare([]string{path}, false)
	require.NoError(t, err)
	defer cleanup2()
	assert.Equal(t, artifact, artifact2)
	assert.Equal(t, name, name2)

	// cleanup must not delete a passthrough artifact
	cleanup()
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestPrepareForceCompressSingleFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hello.txt")
	writeFile(t, path, "hello world")

	artifact, name, cleanup, err := Prepare([]string{path}, true)
	require.NoError(t, err)
	defer cleanup()

	assert.NotEqual(t, path, artifact)
	assert.Contains(t, name, "airshare-")
	assert.Contains(t, name, ".zip")

	entries := archiveEntries(t, artifact)
	assert.Equal(t, map[string]string{"hello.txt": "hello world"}, entries)
}

func TestPrepareMultiInputArchive(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	writeFile(t, a, "alpha")
	sub := filepath.Join(dir, "docs")
	writeFile(t, filepath.Join(sub, "one.txt"), "one")
	writeFile(t, filepath.Join(sub, "nested", "two.txt"), "two")

	artifact, _, cleanup, err := Prepare([]string{a, sub}, false)
	require.NoError(t, err)
	defer cleanup()

	entries := archiveEntries(t, artifact)
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	// Directory entries keep slash-separated relative paths under the dir name.
	assert.Equal(t, []string{"a.txt", "docs/nested/two.txt", "docs/one.txt"}, keys)
	assert.Equal(t, "alpha", entries["a.txt"])
	assert.Equal(t, "one", entries["docs/one.txt"])
	assert.Equal(t, "two", entries["docs/nested/two.txt"])
}

func TestPrepareDirectoryInputArchives(t *testing.T) {
	dir := t.TempDir()
	root := filepath.Join(dir, "share")
	writeFile(t, filepath.Join(root, "f.bin"), "payload")

	artifact, name, cleanup, err := Prepare([]string{root}, false)
	require.NoError(t, err)

	entries := archiveEntries(t, artifact)
	assert.Equal(t, "payload", entries["share/f.bin"])
	assert.Contains(t, name, ".zip")

	cleanup()
	_, err = os.Stat(artifact)
	assert.True(t, os.IsNotExist(err))
}
