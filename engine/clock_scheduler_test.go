package engine

import (
	"testing"
	"time"
)

func waitTick(t *testing.T, done <-chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("no tick within 2s")
	}
}

func TestClockScheduler_Ticks(t *testing.T) {
	w := NewWorld(10, 10, 1)
	cs, done := NewClockScheduler(w, 5*time.Millisecond)
	cs.Start()
	defer cs.Stop()

	waitTick(t, done)
	waitTick(t, done)
	if cs.TickCount() < 2 || w.FrameNumber() < 2 {
		t.Errorf("ticks=%d frame=%d, want >= 2", cs.TickCount(), w.FrameNumber())
	}
}

func TestClockScheduler_PauseAndStep(t *testing.T) {
	w := NewWorld(10, 10, 1)
	cs, done := NewClockScheduler(w, 5*time.Millisecond)
	cs.SetPaused(true)
	cs.Start()
	defer cs.Stop()

	time.Sleep(30 * time.Millisecond)
	if w.FrameNumber() != 0 {
		t.Fatalf("paused scheduler advanced to frame %d", w.FrameNumber())
	}

	cs.Step()
	waitTick(t, done)
	if w.FrameNumber() != 1 {
		t.Errorf("frame after step = %d, want 1", w.FrameNumber())
	}

	if cs.TogglePause() {
		t.Error("TogglePause should report running")
	}
	waitTick(t, done)
}

func TestClockScheduler_StopIsIdempotent(t *testing.T) {
	w := NewWorld(10, 10, 1)
	cs, _ := NewClockScheduler(w, time.Millisecond)
	cs.Start()
	cs.Stop()
	cs.Stop()
	frame := w.FrameNumber()
	time.Sleep(10 * time.Millisecond)
	if w.FrameNumber() != frame {
		t.Error("world advanced after Stop")
	}
}
