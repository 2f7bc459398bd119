package main

import (
	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"

	"QobuzPlayer/internal/native"
)

// Event name constants for Wails runtime events
const (
	EventThumbClick      = "thumbbar-click"
	EventHiddenToTray    = "hidden-to-tray"
	EventSettingsChanged = "settings-changed"
)

// Event emission helpers. They are no-ops until the Wails context exists.

func (a *DesktopApp) emitThumbClick(id native.ButtonID) {
	if a.ctx != nil {
		wailsRuntime.EventsEmit(a.ctx, EventThumbClick, id.String())
	}
}

func (a *DesktopApp) emitHiddenToTray() {
	if a.ctx != nil {
		wailsRuntime.EventsEmit(a.ctx, EventHiddenToTray)
	}
}

func (a *DesktopApp) emitSettingsChanged() {
	if a.ctx != nil {
		wailsRuntime.EventsEmit(a.ctx, EventSettingsChanged, a.store.Get())
	}
}
