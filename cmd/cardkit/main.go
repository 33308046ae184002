// Command cardkit runs the demo card game in a terminal or a window.
package main

import (
	"os"

	"github.com/lixenwraith/cardkit/core"
)

func main() {
	// Restore the terminal before reporting a panic
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
