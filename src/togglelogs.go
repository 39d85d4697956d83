package main

import "github.com/sirupsen/logrus"

// toggleDebugLogs flips the logger between debug and the configured level
func (app *SlidePod) toggleDebugLogs() {
	if log.GetLevel() == logrus.DebugLevel {
		lvl, err := logrus.ParseLevel(app.Config.LogLevel)
		if err != nil || lvl == logrus.DebugLevel {
			lvl = logrus.InfoLevel
		}
		log.SetLevel(lvl)
	} else {
		log.SetLevel(logrus.DebugLevel)
	}
	log.WithField("level", log.GetLevel()).Info("Log level changed")
}
