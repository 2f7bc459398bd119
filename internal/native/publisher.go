package native

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// ButtonID identifies a thumb button. The values are published to the
// taskbar and come back in WM_COMMAND, so they never change.
type ButtonID uint32

const (
	ButtonPrev      ButtonID = 100
	ButtonPlayPause ButtonID = 101
	ButtonNext      ButtonID = 102
)

func (b ButtonID) String() string {
	switch b {
	case ButtonPrev:
		return "prev"
	case ButtonPlayPause:
		return "playpause"
	case ButtonNext:
		return "next"
	}
	return fmt.Sprintf("button(%d)", uint32(b))
}

func (b ButtonID) valid() bool { return b >= ButtonPrev && b <= ButtonNext }

// THUMBBUTTON mask and flag bits.
const (
	thbIcon    = 0x2
	thbTooltip = 0x4
	thbFlags   = 0x8

	thbfEnabled = 0x0
)

// ThumbButton describes one thumbnail toolbar button.
type ThumbButton struct {
	ID      ButtonID
	Icon    uintptr
	Tooltip string
	Flags   uint32
}

// ThumbButtons builds the fixed three-button toolbar. Buttons are always
// enabled and never toggle; play state is owned by the hosted page.
func ThumbButtons(icons IconSet) []ThumbButton {
	return []ThumbButton{
		{ID: ButtonPrev, Icon: icons[0], Tooltip: "Prev", Flags: thbfEnabled},
		{ID: ButtonPlayPause, Icon: icons[1], Tooltip: "Play-Pause", Flags: thbfEnabled},
		{ID: ButtonNext, Icon: icons[2], Tooltip: "Next", Flags: thbfEnabled},
	}
}

// Taskbar submits thumbnail toolbars to the shell. Add may only succeed once
// per taskbar button; later submissions go through Update.
type Taskbar interface {
	AddButtons(hwnd uintptr, buttons []ThumbButton) error
	UpdateButtons(hwnd uintptr, buttons []ThumbButton) error
}

// Publisher attaches the thumb buttons to a window's taskbar entry.
type Publisher struct {
	taskbar Taskbar
	log     *slog.Logger

	mu    sync.Mutex
	added map[uintptr]bool
}

func NewPublisher(taskbar Taskbar, log *slog.Logger) *Publisher {
	if log == nil {
		log = slog.Default()
	}
	return &Publisher{taskbar: taskbar, log: log, added: make(map[uintptr]bool)}
}

// Publish submits the toolbar for hwnd. Repeated calls resubmit the same
// descriptors.
func (p *Publisher) Publish(hwnd uintptr, icons IconSet) error {
	if hwnd == 0 {
		return ErrNoHandle
	}
	buttons := ThumbButtons(icons)

	p.mu.Lock()
	defer p.mu.Unlock()

	first, second := p.taskbar.AddButtons, p.taskbar.UpdateButtons
	if p.added[hwnd] {
		first, second = second, first
	}
	err := first(hwnd, buttons)
	if err != nil {
		p.log.Debug("thumb buttons submit retry", "hwnd", hwnd, "error", err)
		if err2 := second(hwnd, buttons); err2 != nil {
			return fmt.Errorf("publishing thumb buttons: %w", errors.Join(err, err2))
		}
	}
	p.added[hwnd] = true
	return nil
}

// Forget drops the record for hwnd so the next Publish adds the buttons
// again. Used when the shell recreates the taskbar button.
func (p *Publisher) Forget(hwnd uintptr) {
	p.mu.Lock()
	delete(p.added, hwnd)
	p.mu.Unlock()
}

const thbfHidden = 0x8

// Hide hides previously published buttons. The shell has no call to remove
// thumb buttons, so they stay registered and Publish shows them again.
func (p *Publisher) Hide(hwnd uintptr) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.added[hwnd] {
		return nil
	}
	buttons := ThumbButtons(IconSet{})
	for i := range buttons {
		buttons[i].Flags = thbfHidden
	}
	if err := p.taskbar.UpdateButtons(hwnd, buttons); err != nil {
		return fmt.Errorf("hiding thumb buttons: %w", err)
	}
	return nil
}
