package main

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

const DEFAULT_LOG_PATH = "./slidepod.log"

// log writes to a file: stdout belongs to the terminal UI.
var log = logrus.New()

var logFile *os.File

func init() {
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.999",
		DisableColors:   true,
	})
	log.SetOutput(io.Discard)
}

// setupLogging points the logger at path and applies level.
// An empty path keeps logging disabled.
func setupLogging(path, level string, verbose bool) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	if verbose {
		lvl = logrus.DebugLevel
	}
	log.SetLevel(lvl)

	if path == "" {
		return nil
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	if logFile != nil {
		logFile.Close()
	}
	logFile = f
	log.SetOutput(f)
	return nil
}

func closeLogging() {
	if logFile != nil {
		logFile.Sync()
		logFile.Close()
		logFile = nil
	}
	log.SetOutput(io.Discard)
}
