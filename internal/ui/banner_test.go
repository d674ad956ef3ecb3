package ui

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestBannerCountdown(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	clock := start
	b := NewBanner(1, Prompt{Kind: PromptUpdateAvailable, Description: "Update 2.0 is available!", Duration: 10 * time.Second})
	b.started = start
	b.now = func() time.Time { return clock }

	if got := b.Remaining(); got != 10 {
		t.Errorf("Remaining() = %d, want 10", got)
	}
	if !strings.Contains(b.View(), "[10s]") {
		t.Errorf("view should show the countdown:\n%s", b.View())
	}

	clock = start.Add(3500 * time.Millisecond)
	if got := b.Remaining(); got != 7 {
		t.Errorf("Remaining() = %d, want 7", got)
	}

	_, cmd := b.Update(bannerTickMsg{id: 1})
	if cmd == nil {
		t.Fatal("tick should reschedule while time remains")
	}

	clock = start.Add(11 * time.Second)
	_, cmd = b.Update(bannerTickMsg{id: 1})
	if cmd == nil {
		t.Fatal("tick after expiry should report it")
	}
	if msg, ok := cmd().(bannerExpiredMsg); !ok || msg.id != 1 {
		t.Errorf("got %#v, want bannerExpiredMsg{id: 1}", cmd())
	}
}

func TestBannerIgnoresStaleTicks(t *testing.T) {
	b := NewBanner(2, Prompt{Duration: time.Second})
	if _, cmd := b.Update(bannerTickMsg{id: 1}); cmd != nil {
		t.Error("ticks from a replaced banner should be ignored")
	}
}

func TestBannerIndefinite(t *testing.T) {
	b := NewBanner(1, Prompt{Kind: PromptUpdateAvailable, Description: "Update 2.0 is available!"})
	if b.Init() != nil {
		t.Error("indefinite banner should not schedule ticks")
	}
	if got := b.Remaining(); got != -1 {
		t.Errorf("Remaining() = %d, want -1", got)
	}
	if strings.Contains(b.View(), "s]") {
		t.Errorf("indefinite banner should not show a countdown:\n%s", b.View())
	}
}

func TestBannerKeys(t *testing.T) {
	b := NewBanner(1, Prompt{Kind: PromptUpdateAvailable, Description: "Update 2.0 is available!", UpdateLabel: "Update"})
	_, cmd := b.Update(keyRunes("u"))
	if got := closedAction(t, cmd); got != ActionUpdate {
		t.Errorf("u action = %s, want update", got)
	}
	_, cmd = b.Update(keyRunes("x"))
	if got := closedAction(t, cmd); got != ActionDismiss {
		t.Errorf("x action = %s, want dismiss", got)
	}

	upToDate := NewBanner(2, Prompt{Kind: PromptUpToDate, Title: "Notes is up to date"})
	if _, cmd := upToDate.Update(keyRunes("u")); cmd != nil {
		t.Error("u should do nothing on an up-to-date banner")
	}
	if !strings.Contains(upToDate.View(), "Notes is up to date") {
		t.Errorf("view should fall back to the title:\n%s", upToDate.View())
	}
}

func TestNotifierWritesOSC777(t *testing.T) {
	var buf bytes.Buffer
	NewNotifier(&buf).Notify(Prompt{Icon: "⬆", Title: "Notes: update available", Description: "Version 2.0 is ready to download"})
	out := buf.String()
	if !strings.Contains(out, "777;notify;⬆ Notes: update available;Version 2.0 is ready to download") {
		t.Errorf("unexpected notification sequence: %q", out)
	}
}

func TestWriterPresenter(t *testing.T) {
	var buf bytes.Buffer
	p := NewWriterPresenter(&buf)
	p.Dispatch(func() {
		p.ShowDialog(Prompt{Kind: PromptUpdateAvailable, Title: "Update available", Description: "Version 2.0 is out"})
		p.ShowBanner(Prompt{Kind: PromptUpdateAvailable, Description: "Update 2.0 is available!", Duration: 10 * time.Second})
		p.Dismiss()
	})
	out := buf.String()
	for _, want := range []string{"Update available", "Version 2.0 is out", "Update 2.0 is available!"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "[10s]") {
		t.Error("printed banners should not show a countdown")
	}
}

func TestWriterPresenterNestedDispatch(t *testing.T) {
	p := NewWriterPresenter(&bytes.Buffer{})
	var order []string
	p.Dispatch(func() {
		order = append(order, "outer start")
		p.Dispatch(func() { order = append(order, "inner") })
		order = append(order, "outer end")
	})
	p.Dispatch(func() { order = append(order, "next") })

	want := []string{"outer start", "outer end", "inner", "next"}
	if strings.Join(order, ",") != strings.Join(want, ",") {
		t.Errorf("dispatch order = %v, want %v", order, want)
	}
}

func TestCanvasBottomRight(t *testing.T) {
	c := NewCanvas(20, 5)
	c.DrawStringAt(0, 0, "host")
	c.bottomRightOverlay("toast", 1)
	lines := strings.Split(c.Render(), "\n")
	if !strings.HasPrefix(lines[0], "host") {
		t.Errorf("first line = %q, want host content", lines[0])
	}
	if got := strings.TrimRight(lines[3], " "); !strings.HasSuffix(got, "toast") || len(got) != 19 {
		t.Errorf("row 3 = %q, want toast ending one cell from the edge", lines[3])
	}
}
