package main

import (
	"fmt"
	"image"
	"runtime/debug"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// WorkerPool runs a fixed number of decode workers that compete for jobs on
// one queue and report on another. Workers never touch UI state.
type WorkerPool struct {
	size    int
	jobs    *Queue[DecodeJob]
	results *Queue[DecodeResult]
	decode  DecodeFunc
	group   errgroup.Group
}

// NewWorkerPool starts n workers immediately.
func NewWorkerPool(n int, jobs *Queue[DecodeJob], results *Queue[DecodeResult], decode DecodeFunc) *WorkerPool {
	if n < 1 {
		n = 1
	}

	p := &WorkerPool{
		size:    n,
		jobs:    jobs,
		results: results,
		decode:  decode,
	}

	for id := 0; id < n; id++ {
		id := id
		p.group.Go(func() error {
			p.worker(id)
			return nil
		})
	}

	log.WithField("workers", n).Info("Decode pool started")
	return p
}

// Size returns the number of workers.
func (p *WorkerPool) Size() int {
	return p.size
}

// worker loops until the job queue is closed and drained.
func (p *WorkerPool) worker(id int) {
	for {
		job, ok := p.jobs.Pop()
		if !ok {
			log.WithField("worker", id).Debug("Job queue closed, worker exiting")
			return
		}

		log.WithFields(logrus.Fields{"worker": id, "path": job.Path}).Debug("Decoding")

		start := time.Now()
		img, err := p.safeDecode(job.Path)
		res := DecodeResult{
			Path:    job.Path,
			Image:   img,
			Err:     err,
			Worker:  id,
			Elapsed: time.Since(start),
		}
		if err != nil {
			res.Image = nil
			log.WithFields(logrus.Fields{"worker": id, "path": job.Path}).WithError(err).Warn("Decode failed")
		}

		if !p.results.Push(res) {
			return
		}
	}
}

// safeDecode converts a panicking backend into an error result
func (p *WorkerPool) safeDecode(path string) (img *image.RGBA, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.WithField("path", path).Errorf("Decoder panic: %v\n%s", r, debug.Stack())
			img = nil
			err = fmt.Errorf("decoder panic: %v", r)
		}
	}()

	img, err = p.decode(path)
	if err == nil && img == nil {
		err = fmt.Errorf("decoder returned no image")
	}
	return img, err
}

// Close stops accepting jobs. Queued jobs still run to completion.
func (p *WorkerPool) Close() {
	p.jobs.Close()
}

// Wait blocks until every worker has exited.
func (p *WorkerPool) Wait() {
	_ = p.group.Wait()
}
