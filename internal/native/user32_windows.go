//go:build windows

package native

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32dll = windows.NewLazySystemDLL("User32.dll")

	pSetWindowLongPtrW      = user32dll.NewProc("SetWindowLongPtrW") // 64-bit
	pSetWindowLongW         = user32dll.NewProc("SetWindowLongW")    // 32-bit fallback
	pCallWindowProcW        = user32dll.NewProc("CallWindowProcW")
	pDefWindowProcW         = user32dll.NewProc("DefWindowProcW")
	pIsWindow               = user32dll.NewProc("IsWindow")
	pShowWindow             = user32dll.NewProc("ShowWindow")
	pLoadImageW             = user32dll.NewProc("LoadImageW")
	pDestroyIcon            = user32dll.NewProc("DestroyIcon")
	pKeybdEvent             = user32dll.NewProc("keybd_event")
	pRegisterWindowMessageW = user32dll.NewProc("RegisterWindowMessageW")
)

const (
	// GWLP_WNDPROC = -4, represented as ^uintptr(3) for unsigned conversion
	gwlpWndProc = ^uintptr(3)

	swHide = 0

	imageIcon      = 1
	lrLoadFromFile = 0x0010

	keyEventFKeyUp = 0x0002
)

// callSetWindowLongPtr calls SetWindowLongPtrW (64-bit) or SetWindowLongW (32-bit).
// SetWindowLongPtrW does not exist in 32-bit user32.dll.
func callSetWindowLongPtr(hwnd, index, newLong uintptr) uintptr {
	if pSetWindowLongPtrW.Find() == nil {
		ret, _, _ := pSetWindowLongPtrW.Call(hwnd, index, newLong)
		return ret
	}
	ret, _, _ := pSetWindowLongW.Call(hwnd, index, newLong)
	return ret
}

func isWindow(hwnd uintptr) bool {
	if hwnd == 0 {
		return false
	}
	ret, _, _ := pIsWindow.Call(hwnd)
	return ret != 0
}

// registerWindowMessage returns the process-wide id of a named message, or 0.
func registerWindowMessage(name string) uint32 {
	p, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return 0
	}
	ret, _, _ := pRegisterWindowMessageW.Call(uintptr(unsafe.Pointer(p)))
	return uint32(ret)
}
