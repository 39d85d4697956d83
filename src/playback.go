package main

import (
	"math"
	"time"
)

// PlaybackDriver advances the slideshow at a fixed framerate while playing.
type PlaybackDriver struct {
	playing   bool
	framerate float64
	last      time.Time
}

func NewPlaybackDriver(framerate float64, now time.Time) *PlaybackDriver {
	return &PlaybackDriver{
		framerate: clampFramerate(framerate),
		last:      now,
	}
}

func (d *PlaybackDriver) Playing() bool {
	return d.playing
}

func (d *PlaybackDriver) Framerate() float64 {
	return d.framerate
}

// Interval is the time between two advances at the current framerate.
func (d *PlaybackDriver) Interval() time.Duration {
	return time.Duration(float64(time.Second) / d.framerate)
}

// Toggle flips between playing and stopped. Starting playback restarts the
// baseline so the first advance comes one interval later.
func (d *PlaybackDriver) Toggle(now time.Time) {
	d.SetPlaying(!d.playing, now)
}

func (d *PlaybackDriver) SetPlaying(playing bool, now time.Time) {
	if playing && !d.playing {
		d.last = now
	}
	d.playing = playing
}

// SetFramerate takes effect on the next Tick; the baseline is kept.
func (d *PlaybackDriver) SetFramerate(f float64) {
	d.framerate = clampFramerate(f)
}

// Tick reports whether the slideshow should advance by one frame now.
// At most one advance per call; the baseline moves to now, not to the
// missed deadline, so a late tick never causes a burst.
func (d *PlaybackDriver) Tick(now time.Time) bool {
	if !d.playing {
		return false
	}
	if now.Sub(d.last) <= d.Interval() {
		return false
	}
	d.last = now
	return true
}

// clampFramerate keeps f within the range the UI allows
func clampFramerate(f float64) float64 {
	if math.IsNaN(f) || f < MIN_FRAMERATE {
		return MIN_FRAMERATE
	}
	if f > MAX_FRAMERATE {
		return MAX_FRAMERATE
	}
	return f
}
