package native

import "errors"

var (
	// ErrNoHandle is returned by every operation that runs before a window
	// handle was registered, or after it was cleared. It is never fatal.
	ErrNoHandle = errors.New("native: no window handle")

	// ErrUnsupported is returned on platforms without a thumbnail toolbar.
	ErrUnsupported = errors.New("native: not supported on this platform")

	ErrSubclassFailed    = errors.New("native: replacing window procedure failed")
	ErrAlreadySubclassed = errors.New("native: window already subclassed by another chain")
)
