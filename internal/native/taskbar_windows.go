//go:build windows

package native

import (
	"errors"
	"fmt"
	"runtime"
	"syscall"
	"unsafe"

	ole "github.com/go-ole/go-ole"
	"golang.org/x/sys/windows"
)

var (
	clsidTaskbarList = ole.NewGUID("{56FDF344-FD6D-11D0-958A-006097C9A090}")
	iidITaskbarList3 = ole.NewGUID("{EA1AFB91-9E28-4B86-90E9-9E9F8A5EEFAF}")
)

// iTaskbarList3Vtbl is the COM vtable of ITaskbarList3, including the
// methods inherited from ITaskbarList and ITaskbarList2.
type iTaskbarList3Vtbl struct {
	ole.IUnknownVtbl
	HrInit                uintptr
	AddTab                uintptr
	DeleteTab             uintptr
	ActivateTab           uintptr
	SetActiveAlt          uintptr
	MarkFullscreenWindow  uintptr
	SetProgressValue      uintptr
	SetProgressState      uintptr
	RegisterTab           uintptr
	UnregisterTab         uintptr
	SetTabOrder           uintptr
	SetTabActive          uintptr
	ThumbBarAddButtons    uintptr
	ThumbBarUpdateButtons uintptr
	ThumbBarSetImageList  uintptr
	SetOverlayIcon        uintptr
	SetThumbnailTooltip   uintptr
	SetThumbnailClip      uintptr
}

// thumbButton matches the THUMBBUTTON layout; Go inserts the same padding
// before icon as the C compiler on both 386 and amd64.
type thumbButton struct {
	mask   uint32
	id     uint32
	bitmap uint32
	icon   uintptr
	tip    [260]uint16
	flags  uint32
}

func toNative(buttons []ThumbButton) []thumbButton {
	out := make([]thumbButton, len(buttons))
	for i, b := range buttons {
		out[i] = thumbButton{
			mask:  thbIcon | thbTooltip | thbFlags,
			id:    uint32(b.ID),
			icon:  b.Icon,
			flags: b.Flags,
		}
		tip, err := windows.UTF16FromString(b.Tooltip)
		if err != nil {
			continue
		}
		if len(tip) > len(out[i].tip) {
			tip = tip[:len(out[i].tip)-1]
		}
		copy(out[i].tip[:], tip)
	}
	return out
}

// comTaskbar talks to the shell's TaskbarList object. The object is created
// per call, so a restarted Explorer never leaves us with a dead instance.
type comTaskbar struct{}

func (comTaskbar) AddButtons(hwnd uintptr, buttons []ThumbButton) error {
	return withTaskbarList(func(tb *ole.IUnknown, vt *iTaskbarList3Vtbl) error {
		return thumbBarCall("ThumbBarAddButtons", vt.ThumbBarAddButtons, tb, hwnd, toNative(buttons))
	})
}

func (comTaskbar) UpdateButtons(hwnd uintptr, buttons []ThumbButton) error {
	return withTaskbarList(func(tb *ole.IUnknown, vt *iTaskbarList3Vtbl) error {
		return thumbBarCall("ThumbBarUpdateButtons", vt.ThumbBarUpdateButtons, tb, hwnd, toNative(buttons))
	})
}

func thumbBarCall(name string, method uintptr, tb *ole.IUnknown, hwnd uintptr, buttons []thumbButton) error {
	if len(buttons) == 0 {
		return nil
	}
	hr, _, _ := syscall.SyscallN(method,
		uintptr(unsafe.Pointer(tb)),
		hwnd,
		uintptr(len(buttons)),
		uintptr(unsafe.Pointer(&buttons[0])))
	runtime.KeepAlive(buttons)
	if int32(hr) < 0 {
		return fmt.Errorf("%s: %w", name, ole.NewError(hr))
	}
	return nil
}

// withTaskbarList initializes an apartment on the current OS thread, creates
// and initializes ITaskbarList3, and runs fn with it.
func withTaskbarList(fn func(tb *ole.IUnknown, vt *iTaskbarList3Vtbl) error) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := ole.CoInitializeEx(0, ole.COINIT_APARTMENTTHREADED); err == nil || isSFalse(err) {
		defer ole.CoUninitialize()
	}

	unk, err := ole.CreateInstance(clsidTaskbarList, iidITaskbarList3)
	if err != nil {
		return fmt.Errorf("creating TaskbarList: %w", err)
	}
	defer unk.Release()

	vt := (*iTaskbarList3Vtbl)(unsafe.Pointer(unk.RawVTable))
	if hr, _, _ := syscall.SyscallN(vt.HrInit, uintptr(unsafe.Pointer(unk))); int32(hr) < 0 {
		return fmt.Errorf("ITaskbarList3.HrInit: %w", ole.NewError(hr))
	}
	return fn(unk, vt)
}

// isSFalse reports the "already initialized on this thread" result, which
// still has to be balanced by CoUninitialize.
func isSFalse(err error) bool {
	var oleErr *ole.OleError
	return errors.As(err, &oleErr) && oleErr.Code() == 1
}
