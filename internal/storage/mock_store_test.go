package storage

import (
	"context"
	"errors"
	"testing"
)

func TestMockStore(t *testing.T) {
	store := NewMockStore()
	ctx := context.Background()

	if err := store.Emit(ctx, "b.png", []byte("b")); err != nil {
		t.Fatal(err)
	}
	if err := store.Emit(ctx, "a.png", []byte("a")); err != nil {
		t.Fatal(err)
	}

	data, err := store.ReadFile(ctx, "a.png")
	if err != nil || string(data) != "a" {
		t.Fatalf("ReadFile = %q, %v", data, err)
	}
	data[0] = 'z'
	again, _ := store.ReadFile(ctx, "a.png")
	if string(again) != "a" {
		t.Error("ReadFile must return a copy")
	}

	if _, err := store.ReadFile(ctx, "missing"); !IsNotFound(err) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	calls := store.Calls()
	if calls.Emit != 2 || calls.ReadFile != 3 {
		t.Errorf("unexpected call counts %+v", calls)
	}
	if got := store.Emitted(); len(got) != 2 || got[0] != "b.png" {
		t.Errorf("unexpected emission log %v", got)
	}
	if got := store.Names(); len(got) != 2 || got[0] != "a.png" {
		t.Errorf("unexpected names %v", got)
	}

	store.ResetCalls()
	if store.Calls() != (MockCalls{}) || len(store.Emitted()) != 0 {
		t.Error("ResetCalls should clear counters and log")
	}
}

func TestMockStoreFailEmit(t *testing.T) {
	store := NewMockStore()
	ctx := context.Background()
	boom := errors.New("disk full")

	store.FailEmit("x.png", boom)
	if err := store.Emit(ctx, "x.png", nil); !errors.Is(err, boom) {
		t.Errorf("expected injected failure, got %v", err)
	}
	if ok, _ := store.Exists(ctx, "x.png"); ok {
		t.Error("failed emit must not store the asset")
	}

	store.FailEmit("x.png", nil)
	if err := store.Emit(ctx, "x.png", nil); err != nil {
		t.Errorf("expected failure to be cleared, got %v", err)
	}

	if err := store.Remove(ctx, "x.png"); err != nil {
		t.Fatal(err)
	}
	if ok, _ := store.Exists(ctx, "x.png"); ok {
		t.Error("expected x.png to be removed")
	}
}
