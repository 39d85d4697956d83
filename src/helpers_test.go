package main

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// fakeUploader records uploads and releases instead of talking to a terminal
type fakeUploader struct {
	next     Handle
	live     map[Handle]bool
	released []Handle
	fail     bool
}

func newFakeUploader() *fakeUploader {
	return &fakeUploader{live: make(map[Handle]bool)}
}

func (f *fakeUploader) Upload(img *image.RGBA) (Handle, error) {
	if f.fail {
		return 0, errors.New("upload refused")
	}
	f.next++
	f.live[f.next] = true
	return f.next, nil
}

func (f *fakeUploader) Release(h Handle) {
	delete(f.live, h)
	f.released = append(f.released, h)
}

func solidImage(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

// writePNG writes a w x h PNG to dir/name and returns its path
func writePNG(t *testing.T, dir, name string, w, h int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, solidImage(w, h, color.RGBA{R: 200, G: 10, B: 10, A: 255})); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
	return path
}

// touch creates an empty file
func touch(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// drainJobs pops every queued job path without blocking
func drainJobs(q *Queue[DecodeJob]) []string {
	var paths []string
	for {
		job, ok := q.TryPop()
		if !ok {
			return paths
		}
		paths = append(paths, job.Path)
	}
}
