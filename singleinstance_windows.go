//go:build windows

package main

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/windows"
)

const instanceMutex = `Local\QobuzPlayer_SingleInstance`

// ensureSingleInstance checks that no other instance is running in this
// session. Returns a cleanup function to call on exit, or restores the
// running instance's window and exits.
func ensureSingleInstance() func() {
	name, _ := windows.UTF16PtrFromString(instanceMutex)
	handle, err := windows.CreateMutex(nil, false, name)
	if handle == 0 {
		fmt.Fprintf(os.Stderr, "creating instance mutex failed: %v\n", err)
		os.Exit(1)
	}
	if errors.Is(err, windows.ERROR_ALREADY_EXISTS) {
		Log.Info("another instance is running, restoring it")
		bringExistingWindowToFront()
		windows.CloseHandle(handle)
		os.Exit(0)
	}

	return func() {
		windows.CloseHandle(handle)
	}
}

func bringExistingWindowToFront() {
	if hwnd := findWindow("", windowTitle); hwnd != 0 {
		focusWindow(hwnd)
	}
}
