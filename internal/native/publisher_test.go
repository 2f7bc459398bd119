package native

import (
	"errors"
	"testing"
)

func TestThumbButtons(t *testing.T) {
	icons := IconSet{1, 2, 3}
	got := ThumbButtons(icons)
	want := []struct {
		id  ButtonID
		tip string
	}{
		{ButtonPrev, "Prev"},
		{ButtonPlayPause, "Play-Pause"},
		{ButtonNext, "Next"},
	}
	if len(got) != len(want) {
		t.Fatalf("len = %d", len(got))
	}
	for i, w := range want {
		if got[i].ID != w.id || got[i].Tooltip != w.tip || got[i].Icon != icons[i] || got[i].Flags != thbfEnabled {
			t.Errorf("button %d = %+v", i, got[i])
		}
	}
}

func TestPublisherAddThenUpdate(t *testing.T) {
	tb := &fakeTaskbar{}
	p := NewPublisher(tb, discardLogger())

	for i := 0; i < 3; i++ {
		if err := p.Publish(0xA, IconSet{1, 2, 3}); err != nil {
			t.Fatalf("Publish #%d: %v", i, err)
		}
	}
	assertOps(t, tb.ops(), "add", "update", "update")

	p.Forget(0xA)
	if err := p.Publish(0xA, IconSet{}); err != nil {
		t.Fatal(err)
	}
	assertOps(t, tb.ops(), "add", "update", "update", "add")
}

func TestPublisherFallback(t *testing.T) {
	boom := errors.New("boom")

	t.Run("add rejected", func(t *testing.T) {
		tb := &fakeTaskbar{addErr: boom}
		p := NewPublisher(tb, discardLogger())
		if err := p.Publish(0xA, IconSet{}); err != nil {
			t.Fatal(err)
		}
		assertOps(t, tb.ops(), "add", "update")
	})

	t.Run("both rejected", func(t *testing.T) {
		tb := &fakeTaskbar{addErr: boom, updateErr: boom}
		p := NewPublisher(tb, discardLogger())
		if err := p.Publish(0xA, IconSet{}); !errors.Is(err, boom) {
			t.Fatalf("error = %v, want boom", err)
		}
		if err := p.Publish(0xA, IconSet{}); err == nil {
			t.Fatal("want error")
		}
		assertOps(t, tb.ops(), "add", "update", "add", "update")
	})
}

func TestPublisherNoHandle(t *testing.T) {
	tb := &fakeTaskbar{}
	if err := NewPublisher(tb, discardLogger()).Publish(0, IconSet{}); !errors.Is(err, ErrNoHandle) {
		t.Errorf("error = %v, want ErrNoHandle", err)
	}
	if len(tb.calls) != 0 {
		t.Error("taskbar called without a handle")
	}
}

func TestPublisherHide(t *testing.T) {
	tb := &fakeTaskbar{}
	p := NewPublisher(tb, discardLogger())

	if err := p.Hide(0xA); err != nil {
		t.Fatal(err)
	}
	if len(tb.calls) != 0 {
		t.Fatal("Hide before Publish reached the taskbar")
	}

	if err := p.Publish(0xA, IconSet{1, 2, 3}); err != nil {
		t.Fatal(err)
	}
	if err := p.Hide(0xA); err != nil {
		t.Fatal(err)
	}
	assertOps(t, tb.ops(), "add", "update")
	for _, b := range tb.calls[1].buttons {
		if b.Flags != thbfHidden {
			t.Errorf("button %s flags = %#x, want hidden", b.ID, b.Flags)
		}
	}
}

func TestButtonIDString(t *testing.T) {
	tests := map[ButtonID]string{
		ButtonPrev:      "prev",
		ButtonPlayPause: "playpause",
		ButtonNext:      "next",
		7:               "button(7)",
	}
	for id, want := range tests {
		if got := id.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", uint32(id), got, want)
		}
	}
}

func assertOps(t *testing.T, got []string, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("ops = %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("ops = %v, want %v", got, want)
		}
	}
}
