package native

import (
	"errors"
	"strings"
	"testing"
)

func syncRouter(d Dispatcher) *ThumbClickRouter {
	r := NewThumbClickRouter(d, discardLogger())
	r.run = func(f func()) { f() }
	return r
}

func TestDecodeThumbClick(t *testing.T) {
	tests := []struct {
		name   string
		m      Message
		want   ButtonID
		wantOK bool
	}{
		{"prev", thumbClick(1, ButtonPrev), ButtonPrev, true},
		{"play", thumbClick(1, ButtonPlayPause), ButtonPlayPause, true},
		{"next", thumbClick(1, ButtonNext), ButtonNext, true},
		{"unknown id", thumbClick(1, 103), 0, false},
		{"id below range", thumbClick(1, 99), 0, false},
		{"other notification", Message{Msg: wmCommand, WParam: 0x1234<<16 | 101}, 0, false},
		{"menu command", Message{Msg: wmCommand, WParam: 101}, 0, false},
		{"other message", Message{Msg: wmSysCommand, WParam: uintptr(thbnClicked)<<16 | 101}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := DecodeThumbClick(tt.m)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("DecodeThumbClick() = %v, %v; want %v, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestThumbClickRouter(t *testing.T) {
	d := &fakeDispatcher{}
	r := syncRouter(d)
	var observed []ButtonID
	r.OnClick = func(id ButtonID) { observed = append(observed, id) }

	for _, id := range []ButtonID{ButtonPrev, ButtonNext, ButtonPlayPause} {
		if disp, ret := r.HandleMessage(thumbClick(1, id)); disp != Consumed || ret != 0 {
			t.Errorf("click %s = %v, %d; want consumed, 0", id, disp, ret)
		}
	}
	for _, m := range []Message{thumbClick(1, 103), {Msg: wmCommand, WParam: 101}, minimizeCmd(1)} {
		if disp, _ := r.HandleMessage(m); disp != Forward {
			t.Errorf("message %+v was consumed", m)
		}
	}

	want := []ButtonID{ButtonPrev, ButtonNext, ButtonPlayPause}
	got := d.got()
	if len(got) != len(want) || len(observed) != len(want) {
		t.Fatalf("dispatched %v, observed %v; want %v", got, observed, want)
	}
	for i := range want {
		if got[i] != want[i] || observed[i] != want[i] {
			t.Errorf("dispatch %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestThumbClickRouterDispatchError(t *testing.T) {
	d := &fakeDispatcher{err: errors.New("page gone")}
	r := syncRouter(d)
	if disp, _ := r.HandleMessage(thumbClick(1, ButtonNext)); disp != Consumed {
		t.Error("failed dispatch must still consume the click")
	}
}

func TestThumbClickRouterRunsOffProcedure(t *testing.T) {
	d := &fakeDispatcher{}
	r := NewThumbClickRouter(d, discardLogger())
	var queued []func()
	r.run = func(f func()) { queued = append(queued, f) }

	r.HandleMessage(thumbClick(1, ButtonPrev))
	if len(d.got()) != 0 {
		t.Fatal("dispatched inside the window procedure")
	}
	for _, f := range queued {
		f()
	}
	if len(d.got()) != 1 {
		t.Error("queued dispatch did not run")
	}
}

func TestScriptDispatcher(t *testing.T) {
	var evaluated []string
	d := NewScriptDispatcher(func(js string) { evaluated = append(evaluated, js) })

	for _, id := range []ButtonID{ButtonPrev, ButtonPlayPause, ButtonNext} {
		if err := d.Dispatch(id); err != nil {
			t.Fatalf("Dispatch(%s): %v", id, err)
		}
	}
	if err := d.Dispatch(7); err == nil {
		t.Error("Dispatch(7) succeeded")
	}
	if len(evaluated) != 3 {
		t.Fatalf("evaluated %d scripts, want 3", len(evaluated))
	}
	for i, js := range evaluated {
		if !strings.HasPrefix(js, "(function(){try{") || !strings.HasSuffix(js, "}catch(e){}})();") {
			t.Errorf("script %d is not a guarded IIFE: %q", i, js)
		}
		if !strings.Contains(js, ".click()") {
			t.Errorf("script %d never clicks", i)
		}
	}
}

func TestScriptForSelectors(t *testing.T) {
	tests := []struct {
		id      ButtonID
		contain []string
	}{
		{ButtonPrev, []string{`.pct-player-previous`, `button[aria-label*=\"revious\"]`}},
		{ButtonPlayPause, []string{`.pct-player-play`, `.pct-player-pause`, `document.querySelector('audio, video')`}},
		{ButtonNext, []string{`.pct-player-next`, `.player__action-next`}},
	}
	for _, tt := range tests {
		js, ok := ScriptFor(tt.id)
		if !ok {
			t.Fatalf("no script for %s", tt.id)
		}
		for _, c := range tt.contain {
			if !strings.Contains(js, c) {
				t.Errorf("%s script lacks %q", tt.id, c)
			}
		}
	}
	if prev, _ := ScriptFor(ButtonPrev); strings.Contains(prev, "audio, video") {
		t.Error("prev script toggles media")
	}
}

func TestMediaKeyDispatcher(t *testing.T) {
	var sent []uint16
	d := &MediaKeyDispatcher{send: func(vk uint16) error {
		sent = append(sent, vk)
		return nil
	}}
	tests := map[ButtonID]uint16{
		ButtonPrev:      vkMediaPrevTrack,
		ButtonPlayPause: vkMediaPlayPause,
		ButtonNext:      vkMediaNextTrack,
	}
	for id, vk := range tests {
		sent = nil
		if err := d.Dispatch(id); err != nil {
			t.Fatal(err)
		}
		if len(sent) != 1 || sent[0] != vk {
			t.Errorf("Dispatch(%s) sent %v, want %#x", id, sent, vk)
		}
	}
	if err := d.Dispatch(99); err == nil {
		t.Error("Dispatch(99) succeeded")
	}
}
