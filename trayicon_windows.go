//go:build windows

package main

import (
	_ "embed"
	"unsafe"

	"golang.org/x/sys/windows"

	"QobuzPlayer/internal/native"
)

//go:embed build/windows/icon.ico
var trayIconICO []byte

// trayIcon returns the ICO-format icon bytes for Windows systray.
func trayIcon() []byte {
	return trayIconICO
}

const (
	wmUser       = 0x0400
	wmSystrayMsg = wmUser + 1 // must match systray-on-wails initInstance (WM_USER+1)
	wmLButtonUp  = 0x0202
)

var traySubclass *native.Subclass

// trayClickHandler turns a left click on the tray icon into onClick. Other
// tray messages, including the right click that opens the menu, pass on.
func trayClickHandler(onClick func()) native.Handler {
	return native.HandlerFunc(func(m native.Message) (native.Disposition, uintptr) {
		if m.Msg == wmSystrayMsg && m.LParam == wmLButtonUp {
			onClick()
			return native.Consumed, 0
		}
		return native.Forward, 0
	})
}

// subclassSystray finds the systray hidden window (class "SystrayClass" created by
// the systray-on-wails library) and chains a click handler in front of its wndProc.
// Must be called from the systray onReady callback (after the window exists).
func subclassSystray(onClick func()) {
	className, _ := windows.UTF16PtrFromString("SystrayClass")
	hwnd, _, _ := pFindWindowW.Call(uintptr(unsafe.Pointer(className)), 0)
	if hwnd == 0 {
		Log.Warn("systray window not found")
		return
	}

	traySubclass = native.NewWindowSubclass(trayClickHandler(onClick))
	if _, err := traySubclass.Install(hwnd); err != nil {
		Log.Warn("subclassing systray window failed", "error", err)
	}
}
