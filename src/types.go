package main

import (
	"image"
	"time"
)

// App metadata
const (
	APP_NAME    = "SlidePod"
	APP_VERSION = "0.0.1"
	APP_AUTHOR  = "Danilo Fragoso"
	SUPPORT_URL = "https://github.com/danfragoso/slidepod"
)

// Decode pipeline defaults
const (
	DEFAULT_WORKERS   = 5
	DEFAULT_FRAMERATE = 25.0
	MIN_FRAMERATE     = 1.0
	MAX_FRAMERATE     = 9999.0
	FRAMERATE_STEP    = 1.0
)

// Main loop pacing - ~30Hz when idle, faster while playing above 30fps
const TICK_INTERVAL = 33 * time.Millisecond

// UI layout constants (terminal cells)
const (
	HEADER_ROWS      = 1
	STATUS_BAR_ROWS  = 1
	PROGRESS_ROWS    = 1
	FILE_LIST_COLS   = 32
	MIN_IMAGE_COLS   = 8
	MIN_IMAGE_ROWS   = 3
	DEFAULT_COLS     = 80
	DEFAULT_ROWS     = 24
	CELL_PIXEL_W     = 10 // fallback when the terminal does not report pixels
	CELL_PIXEL_H     = 20
	PLACEHOLDER_SIZE = 320
	ABOUT_WIDTH      = 480
	ABOUT_HEIGHT     = 360
)

// DecodeJob asks a worker to decode the file at Path.
type DecodeJob struct {
	Path string
}

// DecodeResult carries a decoded frame back to the UI goroutine.
// Exactly one of Image and Err is set.
type DecodeResult struct {
	Path    string
	Image   *image.RGBA
	Err     error
	Worker  int
	Elapsed time.Duration
}

// Handle is an opaque reference to an image resident in the renderer.
// Zero means "no image".
type Handle uint32

// CacheEntry is what the UI knows about a decoded path.
type CacheEntry struct {
	Handle Handle
	Width  int
	Height int
	Err    error // non-nil marks a failed decode; Handle is zero
}

// Failed reports whether the entry is a failed-decode sentinel.
func (e *CacheEntry) Failed() bool {
	return e.Err != nil
}

// --- Screens ---

type ScreenType int

const (
	ScreenSlideshow ScreenType = iota
	ScreenPrompt
	ScreenAbout
)

func (s ScreenType) String() string {
	switch s {
	case ScreenSlideshow:
		return "slideshow"
	case ScreenPrompt:
		return "prompt"
	case ScreenAbout:
		return "about"
	}
	return "unknown"
}

// --- Main application ---

type SlidePod struct {
	Running bool

	Config   *Config
	Settings *Settings
	Viewer   *Viewer

	// Decode pipeline
	Jobs    *Queue[DecodeJob]
	Results *Queue[DecodeResult]
	Pool    *WorkerPool

	// Display
	Term     *Terminal
	Uploader Uploader
	Theme    Theme

	// Input
	Keys chan Key

	// Navigation
	CurrentScreen ScreenType
	ListFiles     bool

	// Directory prompt state
	Label       string // text shown/edited in the directory prompt
	PromptInput string

	// Set whenever something visible changed since the last draw
	Dirty bool

	// About overlay, uploaded lazily
	AboutHandle Handle

	// Placeholder frames, uploaded lazily
	PendingHandle  Handle
	FailureHandles map[string]Handle

	InstallationID string
	SessionID      string
}
