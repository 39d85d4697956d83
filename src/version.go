package main

import (
	"fmt"
	"runtime"
)

// versionString describes the build for the version command and the log
func versionString() string {
	return fmt.Sprintf("%s %s (%s %s/%s)", APP_NAME, APP_VERSION, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
