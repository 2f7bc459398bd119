package native

import "sync"

// Window messages inspected by the chain consumers.
const (
	wmCommand    = 0x0111
	wmSysCommand = 0x0112

	scMinimize  = 0xF020
	thbnClicked = 0x1800
)

// Message is one window message as delivered to a window procedure.
type Message struct {
	HWND   uintptr
	Msg    uint32
	WParam uintptr
	LParam uintptr
}

func loWord(v uintptr) uint32 { return uint32(v & 0xFFFF) }
func hiWord(v uintptr) uint32 { return uint32((v >> 16) & 0xFFFF) }

// Disposition tells the chain whether a handler swallowed a message.
type Disposition int

const (
	Forward Disposition = iota
	Consumed
)

func (d Disposition) String() string {
	if d == Consumed {
		return "consumed"
	}
	return "forward"
}

// Handler is one consumer on a subclass chain. The returned LRESULT is only
// used when the disposition is Consumed.
type Handler interface {
	HandleMessage(m Message) (Disposition, uintptr)
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(m Message) (Disposition, uintptr)

func (f HandlerFunc) HandleMessage(m Message) (Disposition, uintptr) { return f(m) }

// Chain runs handlers in registration order. The first handler to consume a
// message ends the walk; otherwise the message reaches next, which is the
// procedure that was installed on the window before the chain.
type Chain struct {
	mu       sync.RWMutex
	handlers []Handler
	next     func(m Message) uintptr
}

// NewChain returns a chain that ends in next.
func NewChain(next func(m Message) uintptr, handlers ...Handler) *Chain {
	return &Chain{handlers: handlers, next: next}
}

// Append adds h after the existing handlers.
func (c *Chain) Append(h Handler) {
	c.mu.Lock()
	c.handlers = append(c.handlers, h)
	c.mu.Unlock()
}

// Len returns the number of handlers.
func (c *Chain) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.handlers)
}

// Dispatch delivers m. No lock is held while handlers or the next procedure
// run: they may re-enter the window procedure on the same thread.
func (c *Chain) Dispatch(m Message) uintptr {
	c.mu.RLock()
	handlers := c.handlers
	next := c.next
	c.mu.RUnlock()

	for _, h := range handlers {
		if d, ret := h.HandleMessage(m); d == Consumed {
			return ret
		}
	}
	if next == nil {
		return 0
	}
	return next(m)
}
