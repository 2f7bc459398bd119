//go:build !windows

package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"
)

// ensureSingleInstance checks that no other instance is running.
// Returns a cleanup function to call on exit, or exits the process if another instance is found.
func ensureSingleInstance() func() {
	lockPath := DataPath("qobuz-player.lock")

	// Check if lock file exists and process is still alive
	if data, err := os.ReadFile(lockPath); err == nil {
		if pid, err := strconv.Atoi(strings.TrimSpace(string(data))); err == nil {
			if process, err := os.FindProcess(pid); err == nil {
				// On Unix, FindProcess always succeeds; check if process is alive
				if err := process.Signal(syscall.Signal(0)); err == nil {
					fmt.Println("Qobuz Player is already running")
					os.Exit(0)
				}
			}
		}
	}

	if err := os.WriteFile(lockPath, []byte(strconv.Itoa(os.Getpid())), 0644); err != nil {
		Log.Warn("writing lock file failed", "error", err)
	}

	return func() {
		os.Remove(lockPath)
	}
}
