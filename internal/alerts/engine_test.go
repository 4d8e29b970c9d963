package alerts

import (
	"testing"
	"time"
)

func TestEngineEmitsInTriggerOrder(t *testing.T) {
	engine := NewEngine(8)
	engine.Start()
	defer engine.Stop()

	now := time.Now().UTC()
	if err := engine.Schedule(Event{TaskID: "later", TriggerAt: now.Add(80 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule later: %v", err)
	}
	if err := engine.Schedule(Event{TaskID: "sooner", TriggerAt: now.Add(20 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule sooner: %v", err)
	}

	first := waitEvent(t, engine.C(), time.Second)
	second := waitEvent(t, engine.C(), time.Second)
	if first.TaskID != "sooner" || second.TaskID != "later" {
		t.Fatalf("unexpected order: first=%s second=%s", first.TaskID, second.TaskID)
	}
}

func TestRescheduleReplacesPendingAlert(t *testing.T) {
	engine := NewEngine(8)
	engine.Start()
	defer engine.Stop()

	now := time.Now().UTC()
	if err := engine.Schedule(Event{TaskID: "t1", Title: "old", TriggerAt: now.Add(30 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if err := engine.Schedule(Event{TaskID: "t1", Title: "new", TriggerAt: now.Add(60 * time.Millisecond)}); err != nil {
		t.Fatalf("reschedule: %v", err)
	}

	got := waitEvent(t, engine.C(), time.Second)
	if got.Title != "new" {
		t.Fatalf("expected superseded alert to be dropped, got %q", got.Title)
	}
	select {
	case extra := <-engine.C():
		t.Fatalf("unexpected second alert: %+v", extra)
	case <-time.After(150 * time.Millisecond):
	}
}

func TestCancelDropsPendingAlert(t *testing.T) {
	engine := NewEngine(8)
	engine.Start()
	defer engine.Stop()

	if err := engine.Schedule(Event{TaskID: "t1", TriggerAt: time.Now().UTC().Add(20 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule: %v", err)
	}
	engine.Cancel("t1")

	select {
	case ev := <-engine.C():
		t.Fatalf("expected no alert after cancel, got %+v", ev)
	case <-time.After(120 * time.Millisecond):
	}
}

func TestScheduleValidatesTriggerTime(t *testing.T) {
	engine := NewEngine(1)
	if err := engine.Schedule(Event{TaskID: "bad"}); err != ErrInvalidDueTime {
		t.Fatalf("expected ErrInvalidDueTime, got %v", err)
	}
}

func waitEvent(t *testing.T, ch <-chan Event, timeout time.Duration) Event {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(timeout):
		t.Fatalf("timed out waiting for alert")
		return Event{}
	}
}
