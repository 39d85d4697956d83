package main

import (
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
)

// installCrashHandler catches fatal signals (SIGABRT, SIGBUS, SIGSEGV sent
// from outside). It restores the terminal and writes the stack trace of
// every goroutine to the log, then re-raises the signal with the default
// handler.
func installCrashHandler(restore func()) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGSEGV, syscall.SIGABRT, syscall.SIGBUS)

	go func() {
		sig := <-sigChan

		restore()
		logCrash(fmt.Sprintf("Fatal signal: %v", sig), stackTrace())

		signal.Reset(sig.(syscall.Signal))
		syscall.Kill(syscall.Getpid(), sig.(syscall.Signal))
	}()
}

// recoverCrash is deferred by the entry point: a panic anywhere on the main
// goroutine restores the terminal before the process dies
func recoverCrash(restore func()) {
	if r := recover(); r != nil {
		restore()
		logCrash(fmt.Sprintf("Application crashed with panic: %v", r), stackTrace())
		panic(r) // Re-panic to show error
	}
}

func logCrash(msg, stack string) {
	log.Errorf("FATAL: %s\n%s", msg, stack)
	if logFile != nil {
		logFile.Sync()
	}
}

// stackTrace captures the stacks of all goroutines
func stackTrace() string {
	buf := make([]byte, 16384)
	n := runtime.Stack(buf, true)
	return string(buf[:n])
}
