// Package ioutils provides file system utilities for mangadl.
//
// This package contains functions for:
//   - File writing
//   - File existence checks used by the exporters' resume logic
//   - Directory creation
package ioutils

import "os"

// WriteFile writes data to a file, creating it if necessary.
//
// The file is created with mode 0644. If the file already exists,
// it is truncated before writing. The whole buffer is written in one
// shot, which is what the archive exporter relies on to avoid leaving
// a truncated archive behind.
func WriteFile(path string, data []byte) error {
	return os.WriteFile(path, data, 0644)
}

// FileExists reports whether path exists.
//
// The exporters use this as their resume signal: an artifact that is
// already on disk means the chapter (or page) was exported by a
// previous run and must not be touched again.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// EnsureDir creates a directory and all parent directories if they don't exist.
//
// Directories are created with mode 0755 (rwxr-xr-x).
// If the directory already exists, no error is returned.
//
// Example:
//
//	err := EnsureDir("/manga/Title Name/c042")
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}
