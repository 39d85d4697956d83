package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Settings is the state restored across runs. The decoded-image cache and the
// queues are never persisted.
type Settings struct {
	InstallationID string  `json:"installation_id,omitempty"`
	Directory      string  `json:"directory,omitempty"`
	FileIndex      *int    `json:"file_index,omitempty"`
	ListFiles      bool    `json:"list_files,omitempty"`
	Playing        bool    `json:"playing,omitempty"`
	Framerate      float64 `json:"framerate,omitempty"`
	Theme          string  `json:"theme,omitempty"`
}

// loadSettings reads the settings file at path. A missing file yields empty
// settings with a fresh installation ID.
func loadSettings(path string) (*Settings, error) {
	settings := &Settings{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return settings, err
	}
	if err == nil {
		if err := json.Unmarshal(data, settings); err != nil {
			return &Settings{InstallationID: uuid.New().String()}, err
		}
	}

	if settings.InstallationID == "" {
		settings.InstallationID = uuid.New().String()
		log.WithField("installation_id", settings.InstallationID).Info("Generated new installation ID")
	} else {
		log.WithField("installation_id", settings.InstallationID).Info("Loaded installation ID")
	}
	return settings, nil
}

// saveSettings writes settings to path as indented JSON
func saveSettings(path string, settings *Settings) error {
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0644)
}

// restoreSettings applies persisted state to the app. Anything that no longer
// makes sense (a deleted directory, an index past the end) falls back to the
// defaults.
func (app *SlidePod) restoreSettings() {
	s := app.Settings
	v := app.Viewer

	// The saved index only means something in the directory it was saved in
	sameDir := s.Directory == "" || normalizeDir(s.Directory) == v.Show.Dir
	if !sameDir {
		if v.switchDirectory(s.Directory) {
			sameDir = true
		} else {
			log.WithField("dir", s.Directory).Warn("Saved directory unavailable, using current directory")
		}
	}

	if s.Framerate > 0 {
		v.Playback.SetFramerate(s.Framerate)
	}

	if s.Theme != "" {
		for _, theme := range AllThemes() {
			if theme.Name == s.Theme {
				app.Theme = theme
				break
			}
		}
	}

	app.ListFiles = s.ListFiles

	index := 0
	if s.FileIndex != nil && sameDir {
		index = *s.FileIndex
	}
	v.Restore(index)

	// Playback resumes after the restored position is in place
	v.Playback.SetPlaying(s.Playing, time.Now())

	log.WithFields(logrus.Fields{
		"dir":       v.Show.Dir,
		"index":     index,
		"framerate": v.Playback.Framerate(),
		"playing":   s.Playing,
		"theme":     app.Theme.Name,
	}).Info("Settings restored")
}

// snapshotSettings copies the live state into app.Settings
func (app *SlidePod) snapshotSettings() {
	v := app.Viewer
	s := app.Settings

	s.Directory = v.Show.Dir
	s.FileIndex = nil
	if i, ok := v.Show.Current(); ok {
		s.FileIndex = &i
	}
	s.ListFiles = app.ListFiles
	s.Playing = v.Playback.Playing()
	s.Framerate = v.Playback.Framerate()
	s.Theme = app.Theme.Name
}

// persistSettings snapshots and writes the settings file, logging failures
func (app *SlidePod) persistSettings() {
	app.snapshotSettings()
	if err := saveSettings(app.Config.SettingsPath, app.Settings); err != nil {
		log.WithError(err).Error("Failed to save settings")
	}
}
