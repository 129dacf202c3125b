package state

import "testing"

func TestGetDefaultsToIdle(t *testing.T) {
	m := NewMemoryManager()
	sess := m.Get(1)
	if sess.State != StateIdle {
		t.Fatalf("state = %q, expected idle", sess.State)
	}
	if m.InProgress(1) {
		t.Fatal("fresh user must not be in progress")
	}
}

func TestStateTransitions(t *testing.T) {
	m := NewMemoryManager()
	const awaiting State = "awaiting_audio"

	m.SetState(7, awaiting)
	if got := m.GetState(7); got != awaiting {
		t.Fatalf("state = %q", got)
	}
	if !m.InProgress(7) {
		t.Fatal("expected in progress")
	}
	if m.InProgress(8) {
		t.Fatal("state leaked across users")
	}

	m.Clear(7)
	if m.InProgress(7) {
		t.Fatal("clear must return user to idle")
	}
}

func TestTempData(t *testing.T) {
	m := NewMemoryManager()

	m.SetTemp(7, "record_id", int64(42))
	m.SetTemp(7, "name", "owl")

	id, ok := m.GetTempInt64(7, "record_id")
	if !ok || id != 42 {
		t.Fatalf("record_id = (%d, %v)", id, ok)
	}
	name, ok := m.GetTempString(7, "name")
	if !ok || name != "owl" {
		t.Fatalf("name = (%q, %v)", name, ok)
	}
	if _, ok := m.GetTempInt64(7, "name"); ok {
		t.Fatal("type assertion must fail for mismatched kind")
	}
}

func TestGetReturnsSnapshot(t *testing.T) {
	m := NewMemoryManager()
	m.SetState(7, State("awaiting_name"))
	m.SetTemp(7, "file_id", "abc")

	sess := m.Get(7)
	sess.State = StateIdle
	sess.TempData["file_id"] = "mutated"

	if got := m.GetState(7); got != State("awaiting_name") {
		t.Fatalf("snapshot mutation leaked into the manager: state = %q", got)
	}
	if v, _ := m.GetTempString(7, "file_id"); v != "abc" {
		t.Fatalf("snapshot mutation leaked into the manager: file_id = %q", v)
	}
}

func TestClearRemovesSession(t *testing.T) {
	m := NewMemoryManager()
	m.SetState(7, State("awaiting_name"))
	m.SetTemp(7, "file_id", "abc")

	m.Clear(7)
	if m.InProgress(7) {
		t.Fatal("cleared session still in progress")
	}
	if _, ok := m.GetTemp(7, "file_id"); ok {
		t.Fatal("cleared session kept temp data")
	}
}
