// Package scanner discovers audio recordings awaiting chapter processing.
package scanner

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SupportedExtensions lists the audio container types the pipeline accepts.
var SupportedExtensions = []string{".mp3", ".wav", ".aac", ".m4a", ".m4b", ".flac"}

// Recording is one discovered audio file.
type Recording struct {
	Path    string // absolute path
	RelPath string // path relative to the scanned root
	Stem    string // base name without extension
}

// IsSupported reports whether the path carries a recognized audio extension.
func IsSupported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, supported := range SupportedExtensions {
		if ext == supported {
			return true
		}
	}
	return false
}

// Scan walks root and returns supported recordings sorted by relative path.
// Hidden files and directories are skipped.
func Scan(root string) ([]Recording, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		return nil, fmt.Errorf("scan: root directory required")
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scan: %s is not a directory", root)
	}

	var recordings []Recording
	err = filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") && path != root {
			if entry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if entry.IsDir() || !IsSupported(path) {
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = name
		}
		recordings = append(recordings, Recording{
			Path:    path,
			RelPath: rel,
			Stem:    strings.TrimSuffix(name, filepath.Ext(name)),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}

	sort.Slice(recordings, func(i, j int) bool { return recordings[i].RelPath < recordings[j].RelPath })
	return recordings, nil
}
