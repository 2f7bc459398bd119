package native

import (
	"errors"
	"io"
	"log/slog"
	"sync"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeProcs is an in-memory window procedure table.
type fakeProcs struct {
	mu      sync.Mutex
	cb      uintptr
	procs   map[uintptr]uintptr
	bound   map[uintptr]*Subclass
	dead    map[uintptr]bool
	forward []uintptr
	defs    int
	sets    int
}

func newFakeProcs(windows ...uintptr) *fakeProcs {
	f := &fakeProcs{
		cb:    0xCB,
		procs: make(map[uintptr]uintptr),
		bound: make(map[uintptr]*Subclass),
		dead:  make(map[uintptr]bool),
	}
	for i, h := range windows {
		f.procs[h] = 0x1000 + uintptr(i)
	}
	return f
}

func (f *fakeProcs) Callback() uintptr { return f.cb }

func (f *fakeProcs) Bind(hwnd uintptr, s *Subclass) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if cur, ok := f.bound[hwnd]; ok && cur != s {
		return false
	}
	f.bound[hwnd] = s
	return true
}

func (f *fakeProcs) Unbind(hwnd uintptr) {
	f.mu.Lock()
	delete(f.bound, hwnd)
	f.mu.Unlock()
}

func (f *fakeProcs) SetWndProc(hwnd, proc uintptr) uintptr {
	f.mu.Lock()
	defer f.mu.Unlock()
	old, ok := f.procs[hwnd]
	if !ok || f.dead[hwnd] {
		return 0
	}
	f.sets++
	f.procs[hwnd] = proc
	return old
}

func (f *fakeProcs) CallWndProc(prev uintptr, m Message) uintptr {
	f.mu.Lock()
	f.forward = append(f.forward, prev)
	f.mu.Unlock()
	return prev
}

func (f *fakeProcs) DefWndProc(Message) uintptr {
	f.mu.Lock()
	f.defs++
	f.mu.Unlock()
	return 0
}

func (f *fakeProcs) IsWindow(hwnd uintptr) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.procs[hwnd]
	return ok && !f.dead[hwnd]
}

func (f *fakeProcs) current(hwnd uintptr) uintptr {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.procs[hwnd]
}

// send delivers m the way the OS would: through the installed procedure.
func (f *fakeProcs) send(m Message) uintptr {
	f.mu.Lock()
	proc := f.procs[m.HWND]
	s := f.bound[m.HWND]
	f.mu.Unlock()
	if proc == f.cb && s != nil {
		return s.WndProc(m)
	}
	return proc
}

// fakeLoader hands out increasing handles and tracks which are live.
type fakeLoader struct {
	mu        sync.Mutex
	next      uintptr
	live      map[uintptr]bool
	loads     int
	failSmall bool
	failAll   bool
}

func newFakeLoader() *fakeLoader {
	return &fakeLoader{next: 0x100, live: make(map[uintptr]bool)}
}

func (l *fakeLoader) LoadIcon(path string, size int) (uintptr, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.loads++
	if l.failAll || (l.failSmall && size != 0) {
		return 0, errors.New("load failed")
	}
	l.next++
	l.live[l.next] = true
	return l.next, nil
}

func (l *fakeLoader) DestroyIcon(h uintptr) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.live[h] {
		return errors.New("double destroy")
	}
	delete(l.live, h)
	return nil
}

func (l *fakeLoader) liveCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.live)
}

type taskbarCall struct {
	op      string
	hwnd    uintptr
	buttons []ThumbButton
}

type fakeTaskbar struct {
	mu        sync.Mutex
	calls     []taskbarCall
	addErr    error
	updateErr error
}

func (t *fakeTaskbar) AddButtons(hwnd uintptr, b []ThumbButton) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.calls = append(t.calls, taskbarCall{"add", hwnd, b})
	return t.addErr
}

func (t *fakeTaskbar) UpdateButtons(hwnd uintptr, b []ThumbButton) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.calls = append(t.calls, taskbarCall{"update", hwnd, b})
	return t.updateErr
}

func (t *fakeTaskbar) ops() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	var out []string
	for _, c := range t.calls {
		out = append(out, c.op)
	}
	return out
}

type fakeHider struct {
	mu     sync.Mutex
	hidden []uintptr
}

func (h *fakeHider) Hide(hwnd uintptr) {
	h.mu.Lock()
	h.hidden = append(h.hidden, hwnd)
	h.mu.Unlock()
}

func (h *fakeHider) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.hidden)
}

type fakeDispatcher struct {
	mu  sync.Mutex
	ids []ButtonID
	err error
}

func (d *fakeDispatcher) Dispatch(id ButtonID) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.ids = append(d.ids, id)
	return d.err
}

func (d *fakeDispatcher) got() []ButtonID {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]ButtonID(nil), d.ids...)
}

func thumbClick(hwnd uintptr, id ButtonID) Message {
	return Message{HWND: hwnd, Msg: wmCommand, WParam: uintptr(thbnClicked)<<16 | uintptr(id)}
}

func minimizeCmd(hwnd uintptr) Message {
	return Message{HWND: hwnd, Msg: wmSysCommand, WParam: scMinimize}
}
