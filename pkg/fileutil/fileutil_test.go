package fileutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteAtomic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "file.xml")
	require.NoError(t, WriteAtomic(path, []byte("content")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "content", string(data))

	// temp sibling is gone after the rename
	_, err = os.Stat(path + ".tmp.write")
	assert.True(t, os.IsNotExist(err))
}

func TestWriteAtomicOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.xml")
	require.NoError(t, WriteAtomic(path, []byte("old")))
	require.NoError(t, WriteAtomic(path, []byte("new")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}

func TestWriteAtomicRecoversFromStaleTemp(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "file.xml")
	// a stale temp file from an aborted run is simply overwritten
	require.NoError(t, os.WriteFile(path+".tmp.write", []byte("stale"), 0o644))

	require.NoError(t, WriteAtomic(path, []byte("fresh")))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "fresh", string(data))
}

func TestFileAndDirExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "f.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	assert.True(t, FileExists(file))
	assert.False(t, FileExists(dir))
	assert.True(t, DirExists(dir))
	assert.False(t, DirExists(file))
	assert.False(t, FileExists(filepath.Join(dir, "missing")))
}

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.xml")
	dst := filepath.Join(dir, "dst.xml")
	require.NoError(t, os.WriteFile(src, []byte("payload"), 0o644))

	require.NoError(t, CopyFile(src, dst))
	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))
}

func TestBackupPath(t *testing.T) {
	assert.Equal(t, "Some.xml.bak", BackupPath("Some.xml"))
}
