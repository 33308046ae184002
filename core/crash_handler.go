// Package core holds process-level crash handling shared by the backends and the CLI.
package core

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"sync"
)

var (
	mu        sync.Mutex
	finalizer func()

	// Replaced in tests
	stderr io.Writer = os.Stderr
	exit             = os.Exit
)

// SetCrashFinalizer registers the function that restores the display before the
// crash report is printed, typically the active screen's Fini. Passing nil clears it.
func SetCrashFinalizer(fn func()) {
	mu.Lock()
	finalizer = fn
	mu.Unlock()
}

// HandleCrash is the unified panic handler that restores the display and prints the stack trace
func HandleCrash(r any) {
	if r == nil {
		return
	}

	mu.Lock()
	fini := finalizer
	finalizer = nil
	mu.Unlock()

	// Restore terminal to sane state immediately
	if fini != nil {
		fini()
	}

	os.Stdout.Sync()

	// Use \r\n in case the terminal is still raw
	fmt.Fprintf(stderr, "\r\n\x1b[31mCRASH DETECTED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())

	exit(1)
}

// Go runs a function in a new goroutine with panic recovery.
// Use this instead of the 'go' keyword to ensure terminal cleanup on crash.
func Go(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				HandleCrash(r)
			}
		}()
		fn()
	}()
}
