//go:build !windows

package main

import _ "embed"

//go:embed build/appicon.png
var appIconPNG []byte

// trayIcon returns the PNG icon bytes for non-Windows systray.
func trayIcon() []byte {
	return appIconPNG
}

// subclassSystray is Windows-only; elsewhere the menu's "Show" item restores.
func subclassSystray(onClick func()) {}
