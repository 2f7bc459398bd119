package native

import "log/slog"

// PolicyFlags is a snapshot of the tray behavior settings.
type PolicyFlags struct {
	MinimizeToTray bool
	CloseToTray    bool
}

// PolicySource supplies the current tray policy. Implementations must not
// block or do I/O: they are read from inside the window procedure.
type PolicySource interface {
	PolicyFlags() PolicyFlags
}

// PolicyFunc adapts a function to PolicySource.
type PolicyFunc func() PolicyFlags

func (f PolicyFunc) PolicyFlags() PolicyFlags { return f() }

// windowHider hides a window without destroying it.
type windowHider interface {
	Hide(hwnd uintptr)
}

// MinimizeHook replaces the OS minimize with hide-to-tray when the user
// asked for it. The setting is read on every minimize command.
type MinimizeHook struct {
	policy PolicySource
	hider  windowHider
	log    *slog.Logger

	// OnHidden, if set, runs after the window was hidden.
	OnHidden func()
}

func NewMinimizeHook(policy PolicySource, hider windowHider, log *slog.Logger) *MinimizeHook {
	if log == nil {
		log = slog.Default()
	}
	return &MinimizeHook{policy: policy, hider: hider, log: log}
}

// IsMinimizeCommand reports whether m is WM_SYSCOMMAND/SC_MINIMIZE. The low
// four bits of the command are used by the system and ignored.
func IsMinimizeCommand(m Message) bool {
	return m.Msg == wmSysCommand && m.WParam&0xFFF0 == scMinimize
}

func (h *MinimizeHook) HandleMessage(m Message) (Disposition, uintptr) {
	if !IsMinimizeCommand(m) {
		return Forward, 0
	}
	if !h.policy.PolicyFlags().MinimizeToTray {
		return Forward, 0
	}
	h.log.Debug("minimize to tray", "hwnd", m.HWND)
	h.hider.Hide(m.HWND)
	if h.OnHidden != nil {
		h.OnHidden()
	}
	return Consumed, 0
}

// taskbarButtonHook watches the registered "TaskbarButtonCreated" message.
// The shell sends it whenever the window's taskbar button is (re)created,
// which drops any thumbnail toolbar. It never consumes the message.
type taskbarButtonHook struct {
	msg       uint32
	recreated func(hwnd uintptr)
}

func (h *taskbarButtonHook) HandleMessage(m Message) (Disposition, uintptr) {
	if h.msg != 0 && m.Msg == h.msg && h.recreated != nil {
		h.recreated(m.HWND)
	}
	return Forward, 0
}
