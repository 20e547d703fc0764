package events

import (
	"errors"
	"testing"
)

func TestInMemoryEventStore_AppendAndRead(t *testing.T) {
	store := NewInMemoryEventStore()

	if err := store.AppendEvent("run-1", NewViewComputedEvent("run-1", "client", 2)); err != nil {
		t.Fatalf("Failed to append event: %v", err)
	}
	if err := store.AppendEvent("run-1", NewViewComputedEvent("run-1", "category", 3)); err != nil {
		t.Fatalf("Failed to append event: %v", err)
	}
	if err := store.AppendEvent("run-2", NewReportCompletedEvent("run-2", 1, 0)); err != nil {
		t.Fatalf("Failed to append event: %v", err)
	}

	events, err := store.ReadEvents("run-1", 0)
	if err != nil {
		t.Fatalf("Failed to read events: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("Expected 2 events, got %d", len(events))
	}
	if events[1].Version() != 2 {
		t.Errorf("Expected version 2, got %d", events[1].Version())
	}
	computed, ok := events[1].Data().(ViewComputed)
	if !ok || computed.View != "category" || computed.Rows != 3 {
		t.Errorf("Expected category view with 3 rows, got %+v", events[1].Data())
	}

	events, _ = store.ReadEvents("run-1", 3)
	if len(events) != 0 {
		t.Errorf("Expected no events past the end, got %d", len(events))
	}
	events, _ = store.ReadEvents("missing", 1)
	if len(events) != 0 {
		t.Errorf("Expected no events for unknown stream, got %d", len(events))
	}
}

func TestInMemoryEventStore_Subscribe(t *testing.T) {
	store := NewInMemoryEventStore()

	var seen []string
	handler := HandlerFunc(func(event Event) error {
		seen = append(seen, event.Data().(ViewComputed).View)
		return nil
	})
	if err := store.Subscribe([]string{ViewComputedEvent}, handler); err != nil {
		t.Fatalf("Failed to subscribe: %v", err)
	}

	_ = store.AppendEvent("run", NewReportStartedEvent("run", ReportStarted{}))
	_ = store.AppendEvent("run", NewViewComputedEvent("run", "client", 1))
	_ = store.AppendEvent("run", NewViewComputedEvent("run", "monthly", 1))

	if len(seen) != 2 || seen[0] != "client" || seen[1] != "monthly" {
		t.Errorf("Expected [client monthly], got %v", seen)
	}

	if err := store.Subscribe([]string{ViewComputedEvent}, nil); err == nil {
		t.Error("Expected error for nil handler")
	}
}

func TestInMemoryEventStore_HandlerError(t *testing.T) {
	store := NewInMemoryEventStore()
	boom := errors.New("boom")
	_ = store.Subscribe([]string{ReportCompletedEvent}, HandlerFunc(func(Event) error { return boom }))

	err := store.AppendEvent("run", NewReportCompletedEvent("run", 0, 0))
	if !errors.Is(err, boom) {
		t.Errorf("Expected handler error, got %v", err)
	}

	events, _ := store.ReadEvents("run", 1)
	if len(events) != 1 {
		t.Errorf("Expected the event to be stored despite the handler error, got %d", len(events))
	}
}
