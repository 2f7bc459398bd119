package native

import (
	"fmt"
	"sync"
)

// procTable is the OS boundary of the subclass mechanism. The Windows
// implementation wraps SetWindowLongPtrW(GWLP_WNDPROC) and CallWindowProcW;
// tests use an in-memory table.
type procTable interface {
	// Callback is the native window procedure that routes into bound subclasses.
	Callback() uintptr
	// Bind routes messages for hwnd to s. It fails if another subclass owns hwnd.
	Bind(hwnd uintptr, s *Subclass) bool
	Unbind(hwnd uintptr)
	// SetWndProc installs proc and returns the procedure it replaced (0 on failure).
	SetWndProc(hwnd, proc uintptr) uintptr
	CallWndProc(prev uintptr, m Message) uintptr
	DefWndProc(m Message) uintptr
	IsWindow(hwnd uintptr) bool
}

// Subclass owns the replacement window procedure of one window and the
// procedure it replaced. The replaced procedure is captured once per handle
// lifetime: installing again on the same handle never overwrites it, so
// Uninstall always restores what the OS had installed.
type Subclass struct {
	table procTable
	chain *Chain

	mu   sync.Mutex
	hwnd uintptr
	prev uintptr
}

// NewSubclass returns an uninstalled subclass whose chain runs handlers.
func NewSubclass(table procTable, handlers ...Handler) *Subclass {
	s := &Subclass{table: table}
	s.chain = NewChain(s.forward, handlers...)
	return s
}

// Chain returns the handler chain messages pass through.
func (s *Subclass) Chain() *Chain { return s.chain }

// Install replaces the window procedure of hwnd and returns the previous one.
// A repeated Install on the same handle is a no-op returning the procedure
// recorded the first time. Installing on a new handle first restores the old
// one, since a different handle means the previous window lifetime ended.
func (s *Subclass) Install(hwnd uintptr) (uintptr, error) {
	if hwnd == 0 {
		return 0, ErrNoHandle
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.prev != 0 {
		if s.hwnd == hwnd {
			return s.prev, nil
		}
		s.restoreLocked()
	}

	cb := s.table.Callback()
	if !s.table.Bind(hwnd, s) {
		return 0, fmt.Errorf("%w: hwnd=%#x", ErrAlreadySubclassed, hwnd)
	}
	prev := s.table.SetWndProc(hwnd, cb)
	if prev == 0 || prev == cb {
		s.table.Unbind(hwnd)
		return 0, fmt.Errorf("%w: hwnd=%#x", ErrSubclassFailed, hwnd)
	}
	s.hwnd, s.prev = hwnd, prev
	return prev, nil
}

// Uninstall writes the recorded procedure back. Safe to call when nothing
// is installed.
func (s *Subclass) Uninstall() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.prev == 0 {
		return
	}
	s.restoreLocked()
}

func (s *Subclass) restoreLocked() {
	// A destroyed window has no procedure left to restore.
	if s.table.IsWindow(s.hwnd) {
		s.table.SetWndProc(s.hwnd, s.prev)
	}
	s.table.Unbind(s.hwnd)
	s.hwnd, s.prev = 0, 0
}

// Installed reports the handle the chain is installed on.
func (s *Subclass) Installed() (uintptr, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hwnd, s.prev != 0
}

// Previous returns the recorded previous procedure, or 0.
func (s *Subclass) Previous() uintptr {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prev
}

// WndProc runs m through the chain. Called by the native callback.
func (s *Subclass) WndProc(m Message) uintptr {
	return s.chain.Dispatch(m)
}

func (s *Subclass) forward(m Message) uintptr {
	s.mu.Lock()
	prev := s.prev
	s.mu.Unlock()
	if prev != 0 {
		return s.table.CallWndProc(prev, m)
	}
	return s.table.DefWndProc(m)
}
