//go:build windows

package native

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

type win32Icons struct{}

func (win32Icons) LoadIcon(path string, size int) (uintptr, error) {
	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return 0, err
	}
	h, _, callErr := pLoadImageW.Call(0, uintptr(unsafe.Pointer(p)), imageIcon, uintptr(size), uintptr(size), lrLoadFromFile)
	if h == 0 {
		return 0, fmt.Errorf("LoadImageW %s: %w", path, callErr)
	}
	return h, nil
}

func (win32Icons) DestroyIcon(h uintptr) error {
	if ret, _, err := pDestroyIcon.Call(h); ret == 0 {
		return fmt.Errorf("DestroyIcon: %w", err)
	}
	return nil
}
