//go:build windows
// +build windows

// Package xos provides cross-platform atomic file operations.
// On Windows, atomic rename over an existing file is not always possible,
// so a temp-file-and-replace approach within the target directory is used.
package xos

import (
	"os"
	"path/filepath"
)

// WriteFile writes data to the named file using a temp file in the target
// directory followed by a rename, removing the destination first if needed.
func WriteFile(filename string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(filename)
	tempFile, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return err
	}
	tempName := tempFile.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		tempFile.Close()
		return err
	}
	if err := tempFile.Sync(); err != nil {
		tempFile.Close()
		return err
	}
	if err := tempFile.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tempName, perm); err != nil {
		return err
	}

	if _, err := os.Stat(filename); err == nil {
		if err := os.Remove(filename); err != nil {
			return err
		}
	}
	if err := os.Rename(tempName, filename); err != nil {
		return err
	}

	success = true
	return nil
}

// CopyFile copies a file by reading it fully and writing the destination
// through WriteFile.
func CopyFile(src, dst string, perm os.FileMode) error {
	content, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return WriteFile(dst, content, perm)
}
