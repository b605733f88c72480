package eventstore

import (
	"bytes"
	stderrors "errors"
	"path/filepath"
	"testing"
	"time"
)

const testInvocationID = "3f1c1c1e-8f2e-4a51-9d55-0c8b8d1b8c11"

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestEventStoreAppendAndRetrieve(t *testing.T) {
	store := newTestStore(t)
	ctx := t.Context()
	payload := []byte(`{"test": "data"}`)

	if err := store.Append(ctx, testInvocationID, "TestEvent", payload, map[string]string{"key": "value"}); err != nil {
		t.Fatalf("failed to append event: %v", err)
	}

	events, err := store.GetByInvocationID(ctx, testInvocationID)
	if err != nil {
		t.Fatalf("failed to get events: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}

	event := events[0]
	if event.InvocationID() != testInvocationID {
		t.Errorf("expected invocation %s, got %s", testInvocationID, event.InvocationID())
	}
	if event.Type() != "TestEvent" {
		t.Errorf("expected event type TestEvent, got %s", event.Type())
	}
	if !bytes.Equal(event.Payload(), payload) {
		t.Errorf("expected payload %s, got %s", payload, event.Payload())
	}
	if event.Metadata()["key"] != "value" {
		t.Errorf("expected metadata key=value, got %v", event.Metadata())
	}
}

func TestEventStoreGetRange(t *testing.T) {
	store := newTestStore(t)
	ctx := t.Context()
	now := time.Now()

	for range 3 {
		if err := store.Append(ctx, "run-1", "Event", []byte("data"), nil); err != nil {
			t.Fatalf("failed to append event: %v", err)
		}
	}

	events, err := store.GetRange(ctx, now.Add(-time.Hour), now.Add(time.Hour))
	if err != nil {
		t.Fatalf("failed to get range: %v", err)
	}
	if len(events) != 3 {
		t.Errorf("expected 3 events, got %d", len(events))
	}

	events, err = store.GetRange(ctx, now.Add(time.Hour), now.Add(2*time.Hour))
	if err != nil {
		t.Fatalf("failed to get range: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("expected no events in the future, got %d", len(events))
	}
}

func TestEventStoreRecent(t *testing.T) {
	store := newTestStore(t)
	ctx := t.Context()

	for _, id := range []string{"run-1", "run-2", "run-3"} {
		if err := store.Append(ctx, id, "Event", []byte("data"), nil); err != nil {
			t.Fatalf("failed to append event: %v", err)
		}
	}

	events, err := store.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("failed to get recent events: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].InvocationID() != "run-3" || events[1].InvocationID() != "run-2" {
		t.Errorf("expected newest first, got %s, %s", events[0].InvocationID(), events[1].InvocationID())
	}
}

func TestEventStorePersistsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	store, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	if err := store.Append(t.Context(), "run-1", "Event", []byte("data"), nil); err != nil {
		t.Fatalf("failed to append event: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("failed to reopen store: %v", err)
	}
	defer func() { _ = reopened.Close() }()

	events, err := reopened.GetByInvocationID(t.Context(), "run-1")
	if err != nil {
		t.Fatalf("failed to get events: %v", err)
	}
	if len(events) != 1 {
		t.Errorf("expected 1 persisted event, got %d", len(events))
	}
}

func TestEventStoreErrorsAreClassified(t *testing.T) {
	store := newTestStore(t)
	_ = store.Close()

	err := store.Append(t.Context(), "run-1", "Event", []byte("data"), nil)
	if !stderrors.Is(err, ErrEventAppendFailed) {
		t.Fatalf("expected ErrEventAppendFailed, got %v", err)
	}
	_, err = store.Recent(t.Context(), 1)
	if !stderrors.Is(err, ErrEventQueryFailed) {
		t.Fatalf("expected ErrEventQueryFailed, got %v", err)
	}
}

func TestEventStoreCountByOutcomeAndPrune(t *testing.T) {
	store := newTestStore(t)
	ctx := t.Context()

	outcomes := []string{"generated", "hit", "hit", "failed", "hit"}
	for i, outcome := range outcomes {
		id := "run-" + string(rune('a'+i))
		if err := store.Append(ctx, id, "Event", []byte("data"), map[string]string{MetadataOutcome: outcome}); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	if err := store.Append(ctx, "run-untagged", "Event", []byte("data"), nil); err != nil {
		t.Fatalf("append: %v", err)
	}

	counts, err := store.CountByOutcome(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	want := map[string]int{"generated": 1, "hit": 3, "failed": 1, "": 1}
	if len(counts) != len(want) {
		t.Fatalf("counts = %v, want %v", counts, want)
	}
	for k, v := range want {
		if counts[k] != v {
			t.Errorf("counts[%q] = %d, want %d", k, counts[k], v)
		}
	}

	removed, err := store.Prune(ctx, 2)
	if err != nil {
		t.Fatalf("prune: %v", err)
	}
	if removed != 4 {
		t.Errorf("expected 4 pruned events, got %d", removed)
	}
	events, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(events) != 2 || events[0].InvocationID() != "run-untagged" || events[1].InvocationID() != "run-e" {
		t.Errorf("prune kept the wrong events: %v", events)
	}
}
