//go:build windows

package native

func newPlatform() platform {
	return platform{
		supported:         true,
		procs:             procs,
		icons:             win32Icons{},
		taskbar:           comTaskbar{},
		hider:             win32Hider{},
		taskbarCreatedMsg: registerWindowMessage("TaskbarButtonCreated"),
	}
}

type win32Hider struct{}

func (win32Hider) Hide(hwnd uintptr) {
	pShowWindow.Call(hwnd, swHide)
}

// NewWindowSubclass returns a subclass for another window of this process,
// sharing the native callback with the main window.
func NewWindowSubclass(handlers ...Handler) *Subclass {
	return NewSubclass(procs, handlers...)
}
