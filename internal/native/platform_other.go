//go:build !windows

package native

func newPlatform() platform {
	return platform{
		procs:   nopProcs{},
		icons:   nopIcons{},
		taskbar: nopTaskbar{},
		hider:   nopHider{},
	}
}

// NewWindowSubclass returns a subclass that never installs.
func NewWindowSubclass(handlers ...Handler) *Subclass {
	return NewSubclass(nopProcs{}, handlers...)
}

type nopProcs struct{}

func (nopProcs) Callback() uintptr                    { return 0 }
func (nopProcs) Bind(uintptr, *Subclass) bool         { return true }
func (nopProcs) Unbind(uintptr)                       {}
func (nopProcs) SetWndProc(uintptr, uintptr) uintptr  { return 0 }
func (nopProcs) CallWndProc(uintptr, Message) uintptr { return 0 }
func (nopProcs) DefWndProc(Message) uintptr           { return 0 }
func (nopProcs) IsWindow(uintptr) bool                { return false }

type nopIcons struct{}

func (nopIcons) LoadIcon(string, int) (uintptr, error) { return 0, ErrUnsupported }
func (nopIcons) DestroyIcon(uintptr) error             { return nil }

type nopTaskbar struct{}

func (nopTaskbar) AddButtons(uintptr, []ThumbButton) error    { return ErrUnsupported }
func (nopTaskbar) UpdateButtons(uintptr, []ThumbButton) error { return ErrUnsupported }

type nopHider struct{}

func (nopHider) Hide(uintptr) {}
