package utils

import (
	"fmt"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultHeaderPatterns is used when no include pattern is configured
var DefaultHeaderPatterns = []string{"**/*.h"}

// FindHeaderFiles returns the files under root matching any include pattern
// and no exclude pattern. Patterns are slash separated and relative to root.
// The result is sorted so repeated runs see files in the same order.
func FindHeaderFiles(root string, includes, excludes []string) ([]string, error) {
	if len(includes) == 0 {
		includes = DefaultHeaderPatterns
	}

	seen := make(map[string]bool)
	for _, pattern := range includes {
		if err := validatePattern(pattern); err != nil {
			return nil, err
		}

		// doublestar does not follow symbolic links
		matches, err := doublestar.FilepathGlob(filepath.Join(root, pattern), doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
		}
		for _, match := range matches {
			seen[match] = true
		}
	}

	files := make([]string, 0, len(seen))
	for file := range seen {
		if excluded(root, file, excludes) {
			continue
		}
		files = append(files, file)
	}
	sort.Strings(files)

	return files, nil
}

// MatchesHeader reports whether path, relative to root, would be picked up
// by FindHeaderFiles with the same patterns
func MatchesHeader(root, path string, includes, excludes []string) bool {
	if len(includes) == 0 {
		includes = DefaultHeaderPatterns
	}
	rel, err := filepath.Rel(root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return false
	}
	rel = filepath.ToSlash(rel)

	for _, pattern := range includes {
		if ok, _ := doublestar.Match(filepath.ToSlash(pattern), rel); ok {
			return !excluded(root, path, excludes)
		}
	}
	return false
}

func validatePattern(pattern string) error {
	clean := filepath.Clean(pattern)
	if filepath.IsAbs(clean) {
		return fmt.Errorf("absolute patterns are not allowed: %s", pattern)
	}
	if slices.Contains(strings.Split(filepath.ToSlash(clean), "/"), "..") {
		return fmt.Errorf("parent directory references are not allowed: %s", pattern)
	}
	return nil
}

// excluded matches exclude patterns against both the relative path and the
// base name, so "Generated/**" and "*.generated.h" both work
func excluded(root, file string, excludes []string) bool {
	if len(excludes) == 0 {
		return false
	}
	rel, err := filepath.Rel(root, file)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	base := filepath.Base(file)

	for _, pattern := range excludes {
		pattern = filepath.ToSlash(pattern)
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
		if ok, _ := doublestar.Match(pattern, base); ok {
			return true
		}
	}
	return false
}
