package main

import (
	"errors"
	"image/color"
	"testing"
)

func TestImageCache_InsertTwiceKeepsOneEntry(t *testing.T) {
	up := newFakeUploader()
	cache := NewImageCache(up)

	img := solidImage(8, 6, color.RGBA{A: 255})
	first, err := cache.Insert(DecodeResult{Path: "/d/a.png", Image: img})
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	second, err := cache.Insert(DecodeResult{Path: "/d/a.png", Image: img})
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}

	if cache.Len() != 1 {
		t.Errorf("Len() = %d, want 1", cache.Len())
	}
	e, _ := cache.Get("/d/a.png")
	if e != second {
		t.Error("second insert should win")
	}
	if len(up.live) != 1 || up.live[first.Handle] {
		t.Errorf("superseded handle %d should be released, live = %v", first.Handle, up.live)
	}
	if e.Width != 8 || e.Height != 6 {
		t.Errorf("entry size = %dx%d, want 8x6", e.Width, e.Height)
	}
}

func TestImageCache_FailedSentinel(t *testing.T) {
	cache := NewImageCache(newFakeUploader())

	entry, err := cache.Insert(DecodeResult{Path: "/d/bad.png", Err: errors.New("corrupt")})
	if err != nil {
		t.Fatalf("decode failures are stored, not returned: %v", err)
	}
	if !entry.Failed() || entry.Handle != 0 {
		t.Errorf("entry = %+v, want failed sentinel", entry)
	}
	if !cache.Has("/d/bad.png") {
		t.Error("failed path should count as cached")
	}
	if cache.Failed() != 1 {
		t.Errorf("Failed() = %d, want 1", cache.Failed())
	}

	// a later success replaces the sentinel
	if _, err := cache.Insert(DecodeResult{Path: "/d/bad.png", Image: solidImage(1, 1, color.RGBA{A: 255})}); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if cache.Failed() != 0 {
		t.Errorf("Failed() after recovery = %d, want 0", cache.Failed())
	}
}

func TestImageCache_UploadFailure(t *testing.T) {
	up := newFakeUploader()
	up.fail = true
	cache := NewImageCache(up)

	entry, err := cache.Insert(DecodeResult{Path: "/d/a.png", Image: solidImage(2, 2, color.RGBA{A: 255})})
	if err == nil {
		t.Fatal("upload failure should be returned")
	}
	if !entry.Failed() || !cache.Has("/d/a.png") {
		t.Error("upload failure should leave a failed entry")
	}
}

func TestImageCache_ClearReleasesHandles(t *testing.T) {
	up := newFakeUploader()
	cache := NewImageCache(up)

	cache.Insert(DecodeResult{Path: "/d/a.png", Image: solidImage(1, 1, color.RGBA{A: 255})})
	cache.Insert(DecodeResult{Path: "/d/b.png", Image: solidImage(1, 1, color.RGBA{A: 255})})
	cache.Insert(DecodeResult{Path: "/d/c.png", Err: errors.New("bad")})

	cache.Clear()

	if cache.Len() != 0 || cache.Failed() != 0 {
		t.Errorf("after Clear: Len=%d Failed=%d", cache.Len(), cache.Failed())
	}
	if len(up.live) != 0 {
		t.Errorf("handles still live after Clear: %v", up.live)
	}
	if len(up.released) != 2 {
		t.Errorf("released %d handles, want 2", len(up.released))
	}
}
