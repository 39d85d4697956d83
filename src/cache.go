package main

import (
	"fmt"
	"image"

	"github.com/sirupsen/logrus"
)

// Uploader moves decoded pixels into the renderer. Handles are only valid on
// the goroutine that owns the renderer, so an Uploader is never shared with
// decode workers.
type Uploader interface {
	Upload(img *image.RGBA) (Handle, error)
	Release(h Handle)
}

// ImageCache maps absolute file paths to renderer handles.
// It has a single owner (the UI goroutine) and therefore no locking.
// Entries are only dropped by Clear.
type ImageCache struct {
	uploader Uploader
	entries  map[string]*CacheEntry
	failed   int
}

func NewImageCache(uploader Uploader) *ImageCache {
	return &ImageCache{
		uploader: uploader,
		entries:  make(map[string]*CacheEntry),
	}
}

// Get looks up path without side effects.
func (c *ImageCache) Get(path string) (*CacheEntry, bool) {
	e, ok := c.entries[path]
	return e, ok
}

// Has reports whether path has an entry, successful or failed.
func (c *ImageCache) Has(path string) bool {
	_, ok := c.entries[path]
	return ok
}

// Insert stores the outcome of a decode. Successful results are uploaded and
// the handle kept; failed results are stored as a sentinel so the path is not
// requested again. Inserting a path twice keeps one entry (last write wins).
func (c *ImageCache) Insert(res DecodeResult) (*CacheEntry, error) {
	var entry *CacheEntry
	var uploadErr error

	switch {
	case res.Err != nil:
		entry = &CacheEntry{Err: res.Err}
	case res.Image == nil:
		entry = &CacheEntry{Err: fmt.Errorf("no image for %s", res.Path)}
	default:
		h, err := c.uploader.Upload(res.Image)
		if err != nil {
			uploadErr = fmt.Errorf("upload %s: %w", res.Path, err)
			entry = &CacheEntry{Err: uploadErr}
		} else {
			b := res.Image.Bounds()
			entry = &CacheEntry{Handle: h, Width: b.Dx(), Height: b.Dy()}
		}
	}

	c.put(res.Path, entry)

	log.WithFields(logrus.Fields{
		"path":    res.Path,
		"worker":  res.Worker,
		"elapsed": res.Elapsed,
		"failed":  entry.Failed(),
		"cached":  len(c.entries),
	}).Debug("Cache insert")

	return entry, uploadErr
}

func (c *ImageCache) put(path string, entry *CacheEntry) {
	if old, ok := c.entries[path]; ok {
		if old.Failed() {
			c.failed--
		} else if old.Handle != entry.Handle {
			c.uploader.Release(old.Handle)
		}
	}
	if entry.Failed() {
		c.failed++
	}
	c.entries[path] = entry
}

// Clear releases every handle and drops all entries.
func (c *ImageCache) Clear() {
	for _, e := range c.entries {
		if !e.Failed() {
			c.uploader.Release(e.Handle)
		}
	}
	log.WithField("entries", len(c.entries)).Debug("Cache cleared")
	c.entries = make(map[string]*CacheEntry)
	c.failed = 0
}

// Len returns the number of entries, failed ones included.
func (c *ImageCache) Len() int {
	return len(c.entries)
}

// Failed returns the number of failed-decode sentinels.
func (c *ImageCache) Failed() int {
	return c.failed
}
