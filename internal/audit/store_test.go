package audit

import (
	"path/filepath"
	"testing"
	"time"
)

func newTestSQLite(t *testing.T) *SQLiteSink {
	t.Helper()
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "audit.db"))
	if err != nil {
		t.Fatalf("failed to open sqlite sink: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteRoundTrip(t *testing.T) {
	s := newTestSQLite(t)

	e := testEvent("agent-1", false)
	e.ID = "ev-1"
	e.Timestamp = time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	if err := s.Write(e); err != nil {
		t.Fatalf("write: %v", err)
	}

	events, err := s.Events("")
	if err != nil {
		t.Fatalf("events: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	got := events[0]
	if got.ID != "ev-1" || got.AgentID != "agent-1" || got.Success {
		t.Errorf("event mismatch: %+v", got)
	}
	if !got.Timestamp.Equal(e.Timestamp) {
		t.Errorf("timestamp mismatch: %v", got.Timestamp)
	}
	if got.Details["error"] != "permission denied" {
		t.Errorf("details lost: %v", got.Details)
	}
}

func TestSQLiteInsertionOrderAndAgentFilter(t *testing.T) {
	s := newTestSQLite(t)

	for i, agent := range []string{"agent-a", "agent-b", "agent-a"} {
		e := testEvent(agent, true)
		e.Timestamp = time.Date(2026, 1, 1, 0, 0, i, 0, time.UTC)
		if err := s.Write(e); err != nil {
			t.Fatal(err)
		}
	}

	all, err := s.Events("")
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 events, got %d", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i].Timestamp.Before(all[i-1].Timestamp) {
			t.Fatal("events out of insertion order")
		}
	}

	onlyA, err := s.Events("agent-a")
	if err != nil {
		t.Fatal(err)
	}
	if len(onlyA) != 2 {
		t.Fatalf("expected 2 agent-a events, got %d", len(onlyA))
	}
}
