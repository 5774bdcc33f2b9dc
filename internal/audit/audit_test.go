package audit

import (
	"context"
	"testing"
	"time"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open(:memory:) error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndList(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	err := s.Record(ctx, Entry{
		Action:    ActionPlaneAdd,
		TableName: "PlayerPlaneDataTable",
		RowKey:    "3",
		SessionID: "sess-1",
	})
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	entries, err := s.List(ctx, 10)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("List() returned %d entries, want 1", len(entries))
	}

	e := entries[0]
	if e.Action != ActionPlaneAdd {
		t.Errorf("Action = %q, want %q", e.Action, ActionPlaneAdd)
	}
	if e.RowKey != "3" {
		t.Errorf("RowKey = %q, want %q", e.RowKey, "3")
	}
	if e.ID == "" {
		t.Error("ID not filled in")
	}
	if e.CreatedAt.IsZero() {
		t.Error("CreatedAt not filled in")
	}
}

func TestList_NewestFirst(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i, action := range []Action{ActionPlaneAdd, ActionPlaneEdit, ActionCommit} {
		err := s.Record(ctx, Entry{
			Action:    action,
			TableName: "PlayerPlaneDataTable",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	entries, err := s.List(ctx, 2)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("List(2) returned %d entries", len(entries))
	}
	if entries[0].Action != ActionCommit {
		t.Errorf("first entry = %q, want newest (commit)", entries[0].Action)
	}
	if entries[1].Action != ActionPlaneEdit {
		t.Errorf("second entry = %q, want plane_edit", entries[1].Action)
	}
}

func TestList_Empty(t *testing.T) {
	s := testStore(t)
	entries, err := s.List(context.Background(), 10)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("List() on empty store returned %d entries", len(entries))
	}
}
