package native

import "sync"

// HandleRegistry holds the current top-level window handle for the process.
// Hide/minimize/restore cycles can change which handle is usable, so every
// show path writes the freshly acquired value here.
type HandleRegistry struct {
	mu sync.Mutex
	h  uintptr
}

// Set stores h as the current handle. Storing 0 is the same as Clear.
func (r *HandleRegistry) Set(h uintptr) {
	r.mu.Lock()
	r.h = h
	r.mu.Unlock()
}

// Get returns the latest handle and whether it is usable.
func (r *HandleRegistry) Get() (uintptr, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.h, r.h != 0
}

// Clear forgets the stored handle.
func (r *HandleRegistry) Clear() {
	r.Set(0)
}
