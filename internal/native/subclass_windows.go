//go:build windows

package native

import (
	"sync"
	"syscall"
)

// win32Procs is the procTable backed by user32. One native callback serves
// every subclassed window; it looks the Subclass up by handle.
type win32Procs struct {
	once sync.Once
	cb   uintptr

	mu    sync.Mutex
	bound map[uintptr]*Subclass
}

var procs = &win32Procs{bound: make(map[uintptr]*Subclass)}

func (p *win32Procs) Callback() uintptr {
	// NewCallback slots are never released, so the callback is created once.
	p.once.Do(func() {
		p.cb = syscall.NewCallback(p.wndProc)
	})
	return p.cb
}

func (p *win32Procs) wndProc(hWnd uintptr, msg uint32, wParam, lParam uintptr) uintptr {
	p.mu.Lock()
	s := p.bound[hWnd]
	p.mu.Unlock()

	m := Message{HWND: hWnd, Msg: msg, WParam: wParam, LParam: lParam}
	if s == nil {
		return p.DefWndProc(m)
	}
	return s.WndProc(m)
}

func (p *win32Procs) Bind(hwnd uintptr, s *Subclass) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if cur, ok := p.bound[hwnd]; ok && cur != s {
		return false
	}
	p.bound[hwnd] = s
	return true
}

func (p *win32Procs) Unbind(hwnd uintptr) {
	p.mu.Lock()
	delete(p.bound, hwnd)
	p.mu.Unlock()
}

func (p *win32Procs) SetWndProc(hwnd, proc uintptr) uintptr {
	return callSetWindowLongPtr(hwnd, gwlpWndProc, proc)
}

func (p *win32Procs) CallWndProc(prev uintptr, m Message) uintptr {
	ret, _, _ := pCallWindowProcW.Call(prev, m.HWND, uintptr(m.Msg), m.WParam, m.LParam)
	return ret
}

func (p *win32Procs) DefWndProc(m Message) uintptr {
	ret, _, _ := pDefWindowProcW.Call(m.HWND, uintptr(m.Msg), m.WParam, m.LParam)
	return ret
}

func (p *win32Procs) IsWindow(hwnd uintptr) bool {
	return isWindow(hwnd)
}
