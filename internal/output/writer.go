// Package output writes generated files, leaving files whose content is
// unchanged untouched so incremental C++ builds do not recompile them.
package output

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// Status describes what happened to one file
type Status string

const (
	Created   Status = "created"
	Updated   Status = "updated"
	Unchanged Status = "unchanged"
)

// FileResult records the outcome for one written file
type FileResult struct {
	Path   string `json:"path"`
	Status Status `json:"status"`
}

// Writer writes files under a directory
type Writer struct {
	dir    string
	dryRun bool
}

// NewWriter creates a writer rooted at dir. With dryRun set it reports
// what would change without touching the filesystem.
func NewWriter(dir string, dryRun bool) *Writer {
	return &Writer{dir: dir, dryRun: dryRun}
}

// WriteFile writes content to name, relative to the output directory
func (w *Writer) WriteFile(name string, content []byte) (FileResult, error) {
	path := filepath.Join(w.dir, name)

	existing, err := os.ReadFile(path)
	status := Updated
	switch {
	case err == nil && bytes.Equal(existing, content):
		return FileResult{Path: path, Status: Unchanged}, nil
	case errors.Is(err, fs.ErrNotExist):
		status = Created
	case err != nil:
		return FileResult{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if w.dryRun {
		return FileResult{Path: path, Status: status}, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return FileResult{}, fmt.Errorf("failed to create directory for %s: %w", path, err)
	}

	// Write to a temp file and rename so a reader never sees a partial file
	tmp, err := os.CreateTemp(filepath.Dir(path), ".reflectgen-*")
	if err != nil {
		return FileResult{}, fmt.Errorf("failed to create temp file for %s: %w", path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return FileResult{}, fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return FileResult{}, fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return FileResult{}, fmt.Errorf("failed to set permissions on %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return FileResult{}, fmt.Errorf("failed to move %s into place: %w", path, err)
	}

	return FileResult{Path: path, Status: status}, nil
}

// WriteAll writes a set of files in name order and stops at the first error
func (w *Writer) WriteAll(files map[string]string) ([]FileResult, error) {
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	results := make([]FileResult, 0, len(names))
	for _, name := range names {
		res, err := w.WriteFile(name, []byte(files[name]))
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}
