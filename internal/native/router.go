package native

import (
	"encoding/json"
	"fmt"
	"log/slog"
)

// Dispatcher forwards a thumb-button click to whatever owns playback. It
// reports intent only; transport state stays with the hosted page.
type Dispatcher interface {
	Dispatch(id ButtonID) error
}

// DecodeThumbClick reports which thumb button a message is a click on.
// Only WM_COMMAND with a known button id and THBN_CLICKED qualifies.
func DecodeThumbClick(m Message) (ButtonID, bool) {
	if m.Msg != wmCommand || hiWord(m.WParam) != thbnClicked {
		return 0, false
	}
	id := ButtonID(loWord(m.WParam))
	if !id.valid() {
		return 0, false
	}
	return id, true
}

// ThumbClickRouter is the chain consumer for thumb-button clicks. Clicks are
// dispatched off the window procedure so a slow script evaluation can never
// stall the message loop.
type ThumbClickRouter struct {
	dispatcher Dispatcher
	log        *slog.Logger

	// run executes dispatches; a goroutine per click by default.
	run func(func())
	// OnClick, if set, observes every recognized click after dispatch.
	OnClick func(ButtonID)
}

func NewThumbClickRouter(d Dispatcher, log *slog.Logger) *ThumbClickRouter {
	if log == nil {
		log = slog.Default()
	}
	return &ThumbClickRouter{
		dispatcher: d,
		log:        log,
		run:        func(f func()) { go f() },
	}
}

func (r *ThumbClickRouter) HandleMessage(m Message) (Disposition, uintptr) {
	id, ok := DecodeThumbClick(m)
	if !ok {
		return Forward, 0
	}
	r.run(func() {
		if err := r.dispatcher.Dispatch(id); err != nil {
			r.log.Warn("thumb button dispatch failed", "button", id, "error", err)
		}
		if r.OnClick != nil {
			r.OnClick(id)
		}
	})
	return Consumed, 0
}

// ScriptDispatcher drives the hosted page by evaluating scripts in it.
type ScriptDispatcher struct {
	eval func(js string)
}

// NewScriptDispatcher evaluates scripts with eval, typically the webview's
// ExecJS.
func NewScriptDispatcher(eval func(js string)) *ScriptDispatcher {
	return &ScriptDispatcher{eval: eval}
}

func (d *ScriptDispatcher) Dispatch(id ButtonID) error {
	js, ok := thumbScripts[id]
	if !ok {
		return fmt.Errorf("no script for %s", id)
	}
	d.eval(js)
	return nil
}

// ScriptFor returns the script evaluated for id.
func ScriptFor(id ButtonID) (string, bool) {
	js, ok := thumbScripts[id]
	return js, ok
}

var (
	prevSelectors = []string{
		`button[aria-label*="revious"]`,
		`button[aria-label*="Previous"]`,
		`button[aria-label*="PREVIOUS"]`,
		`button[title*="revious"]`,
		`button[title*="Previous"]`,
		`.pct-player-previous`,
		`.player__action-previous`,
		`button[class*="previous"]`,
		`button[class*="prev"]`,
		`button[class*="back"]`,
		`[data-testid*="previous"]`,
		`[data-testid*="prev"]`,
		`button.pct-player-previous`,
		`span.pct-player-previous`,
	}
	playSelectors = []string{
		`span.pct.player__action-play.pct-player-play`,
		`span.pct.player__action-pause.pct-player-pause`,
		`.player__action-play`,
		`.player__action-pause`,
		`.pct-player-play`,
		`.pct-player-pause`,
		`button[aria-label*="lay"]`,
		`button[aria-label*="ause"]`,
		`.play-button`,
		`.pause-button`,
		`[data-testid*="play"]`,
	}
	nextSelectors = []string{
		`button[aria-label*="ext"]`,
		`button[aria-label*="Next"]`,
		`.pct-player-next`,
		`.player__action-next`,
		`button[class*="next"]`,
		`[data-testid*="next"]`,
	}

	thumbScripts = map[ButtonID]string{
		ButtonPrev:      clickFirstScript(prevSelectors, ""),
		ButtonPlayPause: clickFirstScript(playSelectors, toggleMediaJS),
		ButtonNext:      clickFirstScript(nextSelectors, ""),
	}
)

// toggleMediaJS toggles the first media element and returns when one exists.
const toggleMediaJS = `var m = document.querySelector('audio, video');
if (m) { if (m.paused) { var p = m.play(); if (p && p.catch) { p.catch(function(){}); } } else { m.pause(); } return; }
`

// clickFirstScript builds a self-contained script that runs prelude, then
// clicks the first element matching selectors. It defines no globals and
// swallows every error.
func clickFirstScript(selectors []string, prelude string) string {
	list, _ := json.Marshal(selectors)
	return "(function(){try{\n" + prelude +
		"var s = " + string(list) + ";\n" +
		"for (var i = 0; i < s.length; i++) { var el = document.querySelector(s[i]); if (el) { el.click(); return; } }\n" +
		"}catch(e){}})();"
}

// Virtual-key codes of the media keys.
const (
	vkMediaNextTrack = 0xB0
	vkMediaPrevTrack = 0xB1
	vkMediaPlayPause = 0xB3
)

// MediaKeyDispatcher turns clicks into system-wide media key presses.
type MediaKeyDispatcher struct {
	send func(vk uint16) error
}

// NewMediaKeyDispatcher returns a dispatcher that synthesizes key presses
// through the OS input queue.
func NewMediaKeyDispatcher() *MediaKeyDispatcher {
	return &MediaKeyDispatcher{send: sendMediaKey}
}

func (d *MediaKeyDispatcher) Dispatch(id ButtonID) error {
	var vk uint16
	switch id {
	case ButtonPrev:
		vk = vkMediaPrevTrack
	case ButtonPlayPause:
		vk = vkMediaPlayPause
	case ButtonNext:
		vk = vkMediaNextTrack
	default:
		return fmt.Errorf("no media key for %s", id)
	}
	return d.send(vk)
}
