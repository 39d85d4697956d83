package main

import (
	"io"
	"time"
)

// startInputReader reads raw key bytes in the background and feeds parsed
// keys into app.Keys. The main loop drains it without blocking.
func (app *SlidePod) startInputReader(r io.Reader) {
	go func() {
		buf := make([]byte, 256)
		for {
			n, err := r.Read(buf)
			if n > 0 {
				for _, k := range parseKeys(buf[:n]) {
					app.Keys <- k
				}
			}
			if err != nil {
				if err != io.EOF {
					log.WithError(err).Error("Reading input")
				}
				time.Sleep(100 * time.Millisecond)
				if err == io.EOF {
					app.Keys <- KEY_QUIT
					return
				}
			}
		}
	}()
}

// pollKey returns the next pending key or NONE
func (app *SlidePod) pollKey() Key {
	select {
	case k := <-app.Keys:
		return k
	default:
		return NONE
	}
}
