//go:build windows

package main

import (
	"os"
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32dll            = windows.NewLazySystemDLL("User32.dll")
	pFindWindowW         = user32dll.NewProc("FindWindowW")
	pShowWindow          = user32dll.NewProc("ShowWindow")
	pSetForegroundWindow = user32dll.NewProc("SetForegroundWindow")
)

const (
	swRestore = 9

	// wailsWindowClass is the class Wails registers for its main window.
	wailsWindowClass = "wailsWindow"
)

var (
	hwndMu     sync.Mutex
	cachedHwnd windows.HWND
)

// findMainHwnd locates the main Wails window of this process: the cached
// handle if still valid, then by title, then by class.
func findMainHwnd() uintptr {
	hwndMu.Lock()
	defer hwndMu.Unlock()

	if cachedHwnd != 0 {
		if windows.IsWindow(cachedHwnd) {
			return uintptr(cachedHwnd)
		}
		cachedHwnd = 0
	}
	for _, lookup := range []func() uintptr{
		func() uintptr { return findWindow("", windowTitle) },
		func() uintptr { return findWindow(wailsWindowClass, "") },
	} {
		if hwnd := lookup(); hwnd != 0 && ownedByUs(hwnd) {
			cachedHwnd = windows.HWND(hwnd)
			return hwnd
		}
	}
	return 0
}

func findWindow(class, title string) uintptr {
	var classPtr, titlePtr uintptr
	if class != "" {
		p, _ := windows.UTF16PtrFromString(class)
		classPtr = uintptr(unsafe.Pointer(p))
	}
	if title != "" {
		p, _ := windows.UTF16PtrFromString(title)
		titlePtr = uintptr(unsafe.Pointer(p))
	}
	hwnd, _, _ := pFindWindowW.Call(classPtr, titlePtr)
	return hwnd
}

func ownedByUs(hwnd uintptr) bool {
	var pid uint32
	if _, err := windows.GetWindowThreadProcessId(windows.HWND(hwnd), &pid); err != nil {
		return false
	}
	return pid == uint32(os.Getpid())
}

// focusWindow restores hwnd and brings it to the foreground.
func focusWindow(hwnd uintptr) {
	pShowWindow.Call(hwnd, swRestore)
	pSetForegroundWindow.Call(hwnd)
}
