package main

import "path/filepath"

// Slideshow is the file list of the active directory plus the current
// position in it. The index is only meaningful while the list is non-empty.
type Slideshow struct {
	Dir   string
	Files []string
	index int
}

// NewSlideshow starts at the first file, or nowhere if files is empty.
func NewSlideshow(dir string, files []string) *Slideshow {
	return &Slideshow{Dir: dir, Files: files}
}

// Len returns the number of files.
func (s *Slideshow) Len() int {
	return len(s.Files)
}

// Current returns the current index; ok is false iff the list is empty.
func (s *Slideshow) Current() (int, bool) {
	if len(s.Files) == 0 {
		return 0, false
	}
	return s.index, true
}

// CurrentName returns the current filename.
func (s *Slideshow) CurrentName() (string, bool) {
	i, ok := s.Current()
	if !ok {
		return "", false
	}
	return s.Files[i], true
}

// CurrentPath returns the fully qualified path of the current file.
func (s *Slideshow) CurrentPath() (string, bool) {
	i, ok := s.Current()
	if !ok {
		return "", false
	}
	return s.PathAt(i), true
}

// PathAt joins the directory with the file at i (wrapped into range).
func (s *Slideshow) PathAt(i int) string {
	return filepath.Join(s.Dir, s.Files[wrapIndex(i, len(s.Files))])
}

// SetIndex moves to i, wrapped into range. No-op on an empty list.
func (s *Slideshow) SetIndex(i int) {
	if len(s.Files) == 0 {
		return
	}
	s.index = wrapIndex(i, len(s.Files))
}

// Next advances by one, wrapping past the end. Reports whether it moved.
func (s *Slideshow) Next() bool {
	if len(s.Files) == 0 {
		return false
	}
	if s.index == len(s.Files)-1 {
		s.index = 0
	} else {
		s.index++
	}
	return true
}

// Prev steps back by one, wrapping before the start. Reports whether it moved.
func (s *Slideshow) Prev() bool {
	if len(s.Files) == 0 {
		return false
	}
	if s.index == 0 {
		s.index = len(s.Files) - 1
	} else {
		s.index--
	}
	return true
}

// Progress returns index/len in [0, 1).
func (s *Slideshow) Progress() float64 {
	i, ok := s.Current()
	if !ok {
		return 0
	}
	return float64(i) / float64(len(s.Files))
}

// wrapIndex maps any integer onto [0, n). n must be positive.
func wrapIndex(i, n int) int {
	if n <= 0 {
		return 0
	}
	i %= n
	if i < 0 {
		i += n
	}
	return i
}
