package toasts_test

import (
	"testing"
	"time"

	"animebharat/models"
	"animebharat/services/toasts"
)

func TestShowAppendsInOrder(t *testing.T) {
	q := toasts.New(time.Minute)
	t.Cleanup(q.Close)

	q.Info("first")
	q.Success("second")
	q.Error("third")

	active := q.Active()
	if len(active) != 3 {
		t.Fatalf("expected 3 active toasts, got %d", len(active))
	}
	if active[0].Message != "first" || active[2].Message != "third" {
		t.Fatalf("expected insertion order, got %+v", active)
	}
	if active[2].Severity != models.ToastError {
		t.Fatalf("expected error severity, got %q", active[2].Severity)
	}
}

func TestDismissRemovesOnlyTarget(t *testing.T) {
	q := toasts.New(time.Minute)
	t.Cleanup(q.Close)

	a := q.Info("a")
	b := q.Info("b")

	q.Dismiss(a.ID)

	active := q.Active()
	if len(active) != 1 || active[0].ID != b.ID {
		t.Fatalf("expected only %q to remain, got %+v", b.ID, active)
	}

	// Unknown IDs are a no-op.
	q.Dismiss("nope")
	if len(q.Active()) != 1 {
		t.Fatalf("dismissing unknown id must not change the queue")
	}
}

func TestToastsExpireIndependently(t *testing.T) {
	q := toasts.New(60 * time.Millisecond)
	t.Cleanup(q.Close)

	q.Info("one")
	time.Sleep(30 * time.Millisecond)
	two := q.Info("two")

	// The first toast expires on its own schedule; the second, created
	// later, must survive it.
	deadline := time.Now().Add(2 * time.Second)
	for {
		active := q.Active()
		if len(active) == 1 {
			if active[0].ID != two.ID {
				t.Fatalf("wrong toast survived: %+v", active)
			}
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("first toast never expired, active: %+v", active)
		}
		time.Sleep(5 * time.Millisecond)
	}

	// And eventually the second expires too.
	deadline = time.Now().Add(2 * time.Second)
	for len(q.Active()) != 0 {
		if time.Now().After(deadline) {
			t.Fatalf("second toast never expired")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestDismissDoesNotDisturbOtherTimers(t *testing.T) {
	q := toasts.New(50 * time.Millisecond)
	t.Cleanup(q.Close)

	a := q.Info("a")
	b := q.Info("b")
	q.Dismiss(a.ID)

	deadline := time.Now().Add(2 * time.Second)
	for len(q.Active()) != 0 {
		if time.Now().After(deadline) {
			t.Fatalf("toast %q never expired after sibling dismissal", b.ID)
		}
		time.Sleep(5 * time.Millisecond)
	}
}
