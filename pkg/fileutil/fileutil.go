// Package fileutil provides utility functions for working with file paths and file operations.
package fileutil

import (
	"io"
	"os"
	"path/filepath"
)

// FileExists checks if a file exists and is not a directory.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// DirExists checks if a directory exists.
func DirExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// CopyFile copies a file from src to dst using buffered IO.
func CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func() { _ = out.Close() }()

	if _, err = io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}

// WriteAtomic writes bytes to path through a temporary sibling file and a
// rename, so that no reader ever observes a partially written file. Parent
// directories are created as needed. A temp file left behind by an aborted
// run is simply overwritten on retry.
func WriteAtomic(path string, data []byte) error {
	if parent := filepath.Dir(path); parent != "" {
		if err := os.MkdirAll(parent, 0o755); err != nil {
			return err
		}
	}
	tmp := path + ".tmp.write"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// BackupPath returns the sibling backup path for an XML file
// (Some.xml -> Some.xml.bak).
func BackupPath(path string) string {
	return path + ".bak"
}
