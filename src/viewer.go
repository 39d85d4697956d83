package main

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Viewer is the UI-goroutine side of the decode pipeline: it owns the
// slideshow position, the image cache and the playback timer, and is the only
// writer of any of them.
type Viewer struct {
	Show     *Slideshow
	Cache    *ImageCache
	Prefetch *Prefetcher
	Playback *PlaybackDriver

	jobs       *Queue[DecodeJob]
	results    *Queue[DecodeResult]
	extensions []string
}

// NewViewer scans dir and positions the slideshow at the first file.
// A directory that cannot be read yields an empty slideshow.
func NewViewer(dir string, extensions []string, uploader Uploader, jobs *Queue[DecodeJob], results *Queue[DecodeResult], framerate float64, now time.Time) *Viewer {
	dir = normalizeDir(dir)
	files, err := scanDirectory(dir, extensions)
	if err != nil {
		log.WithField("dir", dir).WithError(err).Warn("Could not scan directory")
	}

	show := NewSlideshow(dir, files)
	cache := NewImageCache(uploader)

	return &Viewer{
		Show:       show,
		Cache:      cache,
		Prefetch:   NewPrefetcher(show, cache, jobs),
		Playback:   NewPlaybackDriver(framerate, now),
		jobs:       jobs,
		results:    results,
		extensions: extensions,
	}
}

// Next moves forward one file and prefetches the one after it.
func (v *Viewer) Next() bool {
	if !v.Show.Next() {
		return false
	}
	v.Prefetch.Request(0)
	v.Prefetch.Request(1)
	return true
}

// Prev moves back one file and prefetches the one before it.
func (v *Viewer) Prev() bool {
	if !v.Show.Prev() {
		return false
	}
	v.Prefetch.Request(0)
	v.Prefetch.Request(-1)
	return true
}

// JumpTo moves to index i (wrapped) and prefetches it and the file after it.
func (v *Viewer) JumpTo(i int) bool {
	if v.Show.Len() == 0 {
		return false
	}
	v.Show.SetIndex(i)
	v.Prefetch.Request(0)
	v.Prefetch.Request(1)
	return true
}

// Restore jumps to a saved index and warms the cache from there.
func (v *Viewer) Restore(index int) {
	if index >= 0 && index < v.Show.Len() {
		v.Show.SetIndex(index)
	}
	v.Prefetch.Warm()
}

// Tick runs once per rendered frame. It advances playback when due and
// consumes at most one decode result. Reports whether anything visible
// changed.
func (v *Viewer) Tick(now time.Time) bool {
	changed := false

	if v.Playback.Tick(now) && v.Show.Next() {
		v.Prefetch.Request(0)
		v.Prefetch.Request(1)
		changed = true
	}

	if _, ok := v.PollResult(); ok {
		changed = true
	}
	return changed
}

// PollResult takes one finished decode off the result queue, if any, and
// stores it in the cache. Results for a directory that is no longer active
// are dropped.
func (v *Viewer) PollResult() (DecodeResult, bool) {
	res, ok := v.results.TryPop()
	if !ok {
		return res, false
	}

	if filepath.Dir(res.Path) != v.Show.Dir {
		log.WithField("path", res.Path).Debug("Dropping result for inactive directory")
		return res, true
	}

	if _, err := v.Cache.Insert(res); err != nil {
		log.WithField("path", res.Path).WithError(err).Warn("Could not upload image")
	}
	return res, true
}

// ChangeDirectory switches to dir if it exists, is a directory and differs
// from the current one. Anything else is ignored. On a switch the cache is
// cleared and warmed for the new list.
func (v *Viewer) ChangeDirectory(dir string) bool {
	if !v.switchDirectory(dir) {
		return false
	}
	v.Prefetch.Warm()
	return true
}

// switchDirectory is ChangeDirectory without the warm-up
func (v *Viewer) switchDirectory(dir string) bool {
	dir = normalizeDir(dir)
	if dir == "" || dir == v.Show.Dir || !isDirectory(dir) {
		log.WithField("dir", dir).Debug("Ignoring directory change")
		return false
	}

	files, err := scanDirectory(dir, v.extensions)
	if err != nil {
		log.WithField("dir", dir).WithError(err).Debug("Ignoring unreadable directory")
		return false
	}

	v.Show = NewSlideshow(dir, files)
	v.Prefetch.setShow(v.Show)
	v.Cache.Clear()

	log.WithFields(logrus.Fields{"dir": dir, "files": len(files)}).Info("Directory changed")
	return true
}

// CurrentEntry returns the cache entry of the file on screen.
func (v *Viewer) CurrentEntry() (*CacheEntry, bool) {
	path, ok := v.Show.CurrentPath()
	if !ok {
		return nil, false
	}
	return v.Cache.Get(path)
}

// normalizeDir turns user input into a clean absolute path
func normalizeDir(dir string) string {
	dir = strings.TrimSpace(strings.ReplaceAll(dir, "\\", "/"))
	if dir == "" {
		return ""
	}
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	return filepath.Clean(dir)
}
