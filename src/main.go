package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

func createApp(cfg *Config) *SlidePod {
	return &SlidePod{
		Running:        true,
		Config:         cfg,
		Theme:          ThemeDark,
		Keys:           make(chan Key, 64),
		FailureHandles: make(map[string]Handle),
		SessionID:      uuid.New().String(),
	}
}

// Init builds the decode pipeline and the viewer for dir, then restores the
// saved state. When explicit is set, dir wins over the saved directory.
func (app *SlidePod) Init(dir string, explicit bool, uploader Uploader) error {
	cfg := app.Config
	log.WithFields(logrus.Fields{
		"session": app.SessionID,
		"version": versionString(),
	}).Info("Initializing " + APP_NAME)

	settings, err := loadSettings(cfg.SettingsPath)
	if err != nil {
		log.WithError(err).Warn("Could not load settings, using defaults")
	}
	app.Settings = settings
	app.InstallationID = settings.InstallationID
	if explicit {
		settings.Directory = ""
		settings.FileIndex = nil
	}

	app.Uploader = uploader
	app.Jobs = NewQueue[DecodeJob]()
	app.Results = NewQueue[DecodeResult]()

	decoder := &Decoder{MaxDimension: cfg.MaxDimension}
	app.Pool = NewWorkerPool(cfg.Workers, app.Jobs, app.Results, decoder.Decode)

	app.Viewer = NewViewer(dir, cfg.Extensions, uploader, app.Jobs, app.Results, cfg.Framerate, time.Now())
	app.restoreSettings()
	app.Label = app.Viewer.Show.Dir
	app.Dirty = true

	log.WithFields(logrus.Fields{
		"dir":    app.Viewer.Show.Dir,
		"files":  app.Viewer.Show.Len(),
		"queued": app.Jobs.Len(),
	}).Info(APP_NAME + " init OK")
	return nil
}

// Run drives the UI until the user quits: one tick per frame, at most one
// decode result consumed per tick.
func (app *SlidePod) Run(term *Terminal) {
	app.Term = term
	app.startInputReader(term.Input())

	sigs := make(chan os.Signal, 4)
	signal.Notify(sigs, syscall.SIGWINCH, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigs)

	for app.Running {
		for key := app.pollKey(); key != NONE; key = app.pollKey() {
			app.handleKey(key)
		}

		select {
		case sig := <-sigs:
			if sig == syscall.SIGWINCH {
				app.Dirty = true
			} else {
				log.WithField("signal", sig).Info("Received signal, quitting")
				app.Running = false
			}
		default:
		}

		if app.Viewer.Tick(time.Now()) {
			app.Dirty = true
		}
		if app.Dirty && app.Running {
			app.drawCurrentScreen()
		}

		time.Sleep(app.tickInterval())
	}

	app.Shutdown()
}

// tickInterval is the main loop sleep: ~30Hz, faster while playing above 30fps
func (app *SlidePod) tickInterval() time.Duration {
	d := TICK_INTERVAL
	if app.Viewer.Playback.Playing() {
		if iv := app.Viewer.Playback.Interval(); iv < d {
			d = iv
		}
	}
	return d
}

// Shutdown saves the settings, stops the workers and frees uploaded images.
func (app *SlidePod) Shutdown() {
	app.persistSettings()

	dropped := app.Jobs.Discard()
	app.Pool.Close()
	app.Pool.Wait()
	app.Results.Close()

	app.invalidateFrames()
	app.Viewer.Cache.Clear()

	log.WithField("dropped_jobs", dropped).Info(APP_NAME + " stopped")
}

// setScreen changes the current screen and marks the frame dirty
func (app *SlidePod) setScreen(screen ScreenType) {
	if app.CurrentScreen != screen {
		log.WithFields(logrus.Fields{"from": app.CurrentScreen, "to": screen}).Debug("Screen change")
		app.CurrentScreen = screen
	}
	app.Dirty = true
}

func (app *SlidePod) handleKey(key Key) {
	switch app.CurrentScreen {
	case ScreenPrompt:
		app.handlePromptKey(key)
		return
	case ScreenAbout:
		app.handleAboutKey(key)
		return
	}

	v := app.Viewer
	now := time.Now()

	switch key {
	case KEY_QUIT, CTRL_C:
		app.Running = false
	case RIGHT, PGDN, KEY_NEXT_ALT:
		app.Dirty = v.Next() || app.Dirty
	case LEFT, PGUP, KEY_PREV_ALT:
		app.Dirty = v.Prev() || app.Dirty
	case HOME, KEY_FIRST_ALT:
		app.Dirty = v.JumpTo(0) || app.Dirty
	case END, KEY_LAST_ALT:
		app.Dirty = v.JumpTo(v.Show.Len()-1) || app.Dirty
	case KEY_SPACE:
		v.Playback.Toggle(now)
		log.WithField("playing", v.Playback.Playing()).Debug("Playback toggled")
		app.Dirty = true
	case UP, KEY_FASTER:
		v.Playback.SetFramerate(v.Playback.Framerate() + FRAMERATE_STEP)
		app.Dirty = true
	case DOWN, KEY_SLOWER:
		v.Playback.SetFramerate(v.Playback.Framerate() - FRAMERATE_STEP)
		app.Dirty = true
	case KEY_LIST:
		app.ListFiles = !app.ListFiles
		app.Dirty = true
	case KEY_OPEN, TAB:
		app.PromptInput = app.Label
		app.setScreen(ScreenPrompt)
	case KEY_THEME:
		app.cycleTheme()
	case KEY_ABOUT:
		app.showAboutScreen()
	case KEY_DEBUG:
		app.toggleDebugLogs()
	}
}

// handlePromptKey edits the directory prompt. Enter applies it, Escape
// cancels. Paths that do not name another directory are ignored.
func (app *SlidePod) handlePromptKey(key Key) {
	switch key {
	case ESCAPE, CTRL_C:
		app.setScreen(ScreenSlideshow)
	case ENTER:
		app.Label = app.PromptInput
		app.applyDirectory(app.PromptInput)
		app.setScreen(ScreenSlideshow)
	case BACKSPACE:
		if r := []rune(app.PromptInput); len(r) > 0 {
			app.PromptInput = string(r[:len(r)-1])
		}
		app.Dirty = true
	default:
		if key.IsPrintable() {
			app.PromptInput += string(rune(key))
			app.Dirty = true
		}
	}
}

// applyDirectory switches the viewer to dir and drops frames that belonged
// to the old one
func (app *SlidePod) applyDirectory(dir string) {
	if !app.Viewer.ChangeDirectory(dir) {
		return
	}
	app.invalidateFrames()
	app.Label = app.Viewer.Show.Dir
	app.persistSettings()
}
