package main

import (
	"os"
	"path/filepath"
	"sort"
)

// scanDirectory returns the names of regular files in dir whose extension is
// one of exts (matched case-sensitively), sorted lexicographically.
// Unreadable entries are skipped.
func scanDirectory(dir string, exts []string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	files := make([]string, 0, len(entries))
	for _, e := range entries {
		info, err := e.Info()
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		if !isImage(e.Name(), exts) {
			continue
		}
		files = append(files, e.Name())
	}

	sort.Strings(files)
	return files, nil
}

// isImage reports whether name carries one of the recognised extensions.
// A dotfile such as ".png" has no extension.
func isImage(name string, exts []string) bool {
	ext := filepath.Ext(name)
	if len(ext) < 2 || ext == name {
		return false
	}
	ext = ext[1:]
	for _, e := range exts {
		if e == ext {
			return true
		}
	}
	return false
}

// isDirectory reports whether path exists and is a directory.
func isDirectory(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
