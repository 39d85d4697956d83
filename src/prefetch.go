package main

// Prefetcher decides which paths to hand to the decode workers ahead of
// display. It only skips paths already in the cache; a path that is in
// flight but not yet cached can be requested again, which is harmless
// because decoding is idempotent.
type Prefetcher struct {
	show  *Slideshow
	cache *ImageCache
	jobs  *Queue[DecodeJob]
}

func NewPrefetcher(show *Slideshow, cache *ImageCache, jobs *Queue[DecodeJob]) *Prefetcher {
	return &Prefetcher{show: show, cache: cache, jobs: jobs}
}

// Request enqueues the file offset positions away from the current one
// unless it is already cached. Reports whether a job was enqueued.
func (p *Prefetcher) Request(offset int) bool {
	i, ok := p.show.Current()
	if !ok {
		return false
	}

	path := p.show.PathAt(wrapIndex(i+offset, p.show.Len()))
	if p.cache.Has(path) {
		return false
	}

	if !p.jobs.Push(DecodeJob{Path: path}) {
		return false
	}
	log.WithField("path", path).Debug("Prefetch requested")
	return true
}

// Warm requests every file from the current one through the end of the
// list. Returns the number of jobs enqueued.
func (p *Prefetcher) Warm() int {
	i, ok := p.show.Current()
	if !ok {
		return 0
	}

	n := 0
	for offset := 0; i+offset < p.show.Len(); offset++ {
		if p.Request(offset) {
			n++
		}
	}
	log.WithField("jobs", n).Info("Cache warm-up queued")
	return n
}

// setShow points the prefetcher at a new slideshow after a directory change
func (p *Prefetcher) setShow(show *Slideshow) {
	p.show = show
}
