package main

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestScanDirectory(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"c.png", "a.jpg", "b.PNG", "d.jpeg", "e.txt", "png", ".png", ".jpg"} {
		touch(t, dir, name)
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.png"), 0755); err != nil {
		t.Fatal(err)
	}

	files, err := scanDirectory(dir, []string{"jpg", "png"})
	if err != nil {
		t.Fatalf("scanDirectory: %v", err)
	}
	want := []string{"a.jpg", "c.png"}
	if !reflect.DeepEqual(files, want) {
		t.Errorf("files = %v, want %v", files, want)
	}
}

func TestScanDirectory_Missing(t *testing.T) {
	if _, err := scanDirectory(filepath.Join(t.TempDir(), "nope"), []string{"png"}); err == nil {
		t.Error("expected an error for a missing directory")
	}
}

func TestIsDirectory(t *testing.T) {
	dir := t.TempDir()
	file := touch(t, dir, "x.png")
	if !isDirectory(dir) {
		t.Error("temp dir should be a directory")
	}
	if isDirectory(file) || isDirectory(filepath.Join(dir, "missing")) {
		t.Error("files and missing paths are not directories")
	}
}
