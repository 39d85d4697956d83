package main

import (
	"errors"
	"image/color"
	"reflect"
	"testing"
)

func newTestPrefetcher(files []string) (*Prefetcher, *Slideshow, *ImageCache, *Queue[DecodeJob]) {
	show := NewSlideshow("/d", files)
	cache := NewImageCache(newFakeUploader())
	jobs := NewQueue[DecodeJob]()
	return NewPrefetcher(show, cache, jobs), show, cache, jobs
}

func TestPrefetcher_SkipsCachedPaths(t *testing.T) {
	p, _, cache, jobs := newTestPrefetcher([]string{"a.png", "b.png"})
	cache.Insert(DecodeResult{Path: "/d/a.png", Image: solidImage(1, 1, color.RGBA{A: 255})})
	cache.Insert(DecodeResult{Path: "/d/b.png", Err: errors.New("bad")})

	if p.Request(0) || p.Request(1) {
		t.Error("Request() for cached paths should not enqueue")
	}
	if jobs.Len() != 0 {
		t.Errorf("queued %d jobs, want 0", jobs.Len())
	}
}

func TestPrefetcher_NextScenario(t *testing.T) {
	p, show, cache, jobs := newTestPrefetcher([]string{"a.png", "b.jpg", "c.png"})
	cache.Insert(DecodeResult{Path: "/d/b.jpg", Image: solidImage(1, 1, color.RGBA{A: 255})})
	show.SetIndex(2)

	show.Next()
	p.Request(0)
	p.Request(1)

	if i, _ := show.Current(); i != 0 {
		t.Fatalf("index = %d, want 0", i)
	}
	want := []string{"/d/a.png"}
	if got := drainJobs(jobs); !reflect.DeepEqual(got, want) {
		t.Errorf("jobs = %v, want %v", got, want)
	}
}

func TestPrefetcher_RequestWrapsBackwards(t *testing.T) {
	p, _, _, jobs := newTestPrefetcher([]string{"a.png", "b.jpg", "c.png"})
	p.Request(-1)

	want := []string{"/d/c.png"}
	if got := drainJobs(jobs); !reflect.DeepEqual(got, want) {
		t.Errorf("jobs = %v, want %v", got, want)
	}
}

func TestPrefetcher_EmptyList(t *testing.T) {
	p, _, _, jobs := newTestPrefetcher(nil)
	if p.Request(0) || p.Request(1) {
		t.Error("Request() on empty list should not enqueue")
	}
	if n := p.Warm(); n != 0 {
		t.Errorf("Warm() = %d, want 0", n)
	}
	if jobs.Len() != 0 {
		t.Errorf("queued %d jobs, want 0", jobs.Len())
	}
}

func TestPrefetcher_WarmIncludesLastFile(t *testing.T) {
	p, show, _, jobs := newTestPrefetcher([]string{"a.png", "b.png", "c.png", "d.png"})
	show.SetIndex(1)

	if n := p.Warm(); n != 3 {
		t.Errorf("Warm() = %d, want 3", n)
	}
	want := []string{"/d/b.png", "/d/c.png", "/d/d.png"}
	if got := drainJobs(jobs); !reflect.DeepEqual(got, want) {
		t.Errorf("jobs = %v, want %v", got, want)
	}
}
