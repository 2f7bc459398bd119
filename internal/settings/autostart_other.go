//go:build !windows

package settings

// RunKey is the login entry; there is none outside Windows.
type RunKey struct{}

func (RunKey) Enable(string) error { return ErrAutostartUnsupported }
func (RunKey) Disable() error      { return ErrAutostartUnsupported }
func (RunKey) Enabled() bool       { return false }
