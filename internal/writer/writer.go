// Package writer persists output documents under a single output root.
// Writes are atomic (same-directory temp file + rename) so an aborted build
// never leaves a truncated page in the output tree, and destination paths
// are confined to the root.
package writer

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// ErrPathInvalid is returned for destinations that would escape the output
// root (absolute paths, "..", Windows volume names).
var ErrPathInvalid = errors.New("writer: invalid output path")

// FS writes files beneath a fixed root directory.
type FS struct {
	root     string
	permFile os.FileMode
	permDir  os.FileMode
}

// New creates a filesystem writer rooted at dir.
func New(dir string) (*FS, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("writer: output root is empty")
	}
	return &FS{root: dir, permFile: 0o644, permDir: 0o755}, nil
}

// Write stores data at the given slash-separated path relative to the root,
// creating parent directories as needed.
func (w *FS) Write(rel string, data []byte) error {
	dest, err := w.mapPath(rel)
	if err != nil {
		return err
	}
	dir := filepath.Dir(dest)
	if err := os.MkdirAll(dir, w.permDir); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".docsplit-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	_ = os.Chmod(tmpPath, w.permFile)

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}

// mapPath cleans rel, rejects root escapes, and joins it under the root.
func (w *FS) mapPath(rel string) (string, error) {
	cleaned := filepath.Clean(filepath.FromSlash(rel))
	if cleaned == "." || cleaned == "" {
		return "", ErrPathInvalid
	}
	if filepath.IsAbs(cleaned) || filepath.VolumeName(cleaned) != "" {
		return "", ErrPathInvalid
	}
	if cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return "", ErrPathInvalid
	}
	return filepath.Join(w.root, cleaned), nil
}
