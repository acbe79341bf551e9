package eventstore

import (
	"context"
	"testing"
)

func mustAppend(t *testing.T, store Store, event Event, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("failed to create event: %v", err)
	}
	if err := AppendEvent(context.Background(), store, event); err != nil {
		t.Fatalf("failed to append: %v", err)
	}
}

func TestSessionProjection_ApplyEvents(t *testing.T) {
	projection := NewSessionProjection(NewMemoryStore())
	sessionID := "session-apply"

	entered, err := NewBuilderEntered(sessionID, BuilderEnteredData{Variant: "part", Mode: "add", Depth: 1})
	if err != nil {
		t.Fatalf("failed to create event: %v", err)
	}
	projection.Apply(entered)

	summary, exists := projection.GetSession(sessionID)
	if !exists {
		t.Fatal("expected session to exist")
	}
	if summary.Status != "active" {
		t.Errorf("expected status 'active', got %q", summary.Status)
	}
	if summary.MaxDepth != 1 {
		t.Errorf("expected max depth 1, got %d", summary.MaxDepth)
	}

	combined, _ := NewCombined(sessionID, CombinedData{Variant: "part", Mode: "add"})
	projection.Apply(combined)
	combined, _ = NewCombined(sessionID, CombinedData{Variant: "part", Mode: "subtract"})
	projection.Apply(combined)
	pending, _ := NewPendingAdded(sessionID, PendingAddedData{Variant: "part", Kind: "face", Count: 3})
	projection.Apply(pending)
	edges, _ := NewPendingAdded(sessionID, PendingAddedData{Variant: "part", Kind: "edge", Count: 2})
	projection.Apply(edges)
	pushed, _ := NewLocationsPushed(sessionID, LocationsPushedData{Generator: "Locations", Points: 1, Depth: 2})
	projection.Apply(pushed)

	exited, _ := NewBuilderExited(sessionID, BuilderExitedData{Variant: "part", Mode: "add", Folded: "none"})
	projection.Apply(exited)

	summary, _ = projection.GetSession(sessionID)
	if summary.Status != "idle" {
		t.Errorf("expected status 'idle', got %q", summary.Status)
	}
	if summary.BuildersClosed != 1 {
		t.Errorf("expected 1 closed builder, got %d", summary.BuildersClosed)
	}
	if summary.Combinations["add"] != 1 || summary.Combinations["subtract"] != 1 {
		t.Errorf("unexpected combinations %v", summary.Combinations)
	}
	if summary.PendingFaces != 3 || summary.PendingEdges != 2 {
		t.Errorf("expected 3 pending faces and 2 edges, got %d and %d", summary.PendingFaces, summary.PendingEdges)
	}
	if summary.LocationScopes != 1 {
		t.Errorf("expected 1 location scope, got %d", summary.LocationScopes)
	}
}

func TestSessionProjection_Aborted(t *testing.T) {
	projection := NewSessionProjection(NewMemoryStore())
	sessionID := "session-aborted"

	entered, _ := NewBuilderEntered(sessionID, BuilderEnteredData{Variant: "sketch", Mode: "add", Depth: 1})
	projection.Apply(entered)
	aborted, _ := NewBuilderAborted(sessionID, BuilderAbortedData{Variant: "sketch", Error: "kernel failure"})
	projection.Apply(aborted)

	summary, exists := projection.GetSession(sessionID)
	if !exists {
		t.Fatal("expected session to exist")
	}
	if summary.Aborted != 1 {
		t.Errorf("expected 1 aborted builder, got %d", summary.Aborted)
	}
	if summary.LastError != "kernel failure" {
		t.Errorf("expected last error 'kernel failure', got %q", summary.LastError)
	}
	if summary.OpenBuilders != 0 {
		t.Errorf("expected no open builders, got %d", summary.OpenBuilders)
	}
}

func TestSessionProjection_Rebuild(t *testing.T) {
	store, err := NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	defer func() { _ = store.Close() }()

	sessionID := "session-rebuild"
	e1, err := NewBuilderEntered(sessionID, BuilderEnteredData{Variant: "part", Mode: "add", Depth: 1})
	mustAppend(t, store, e1, err)
	e2, err := NewBuilderEntered(sessionID, BuilderEnteredData{Variant: "sketch", Mode: "add", Parent: "part", Depth: 2})
	mustAppend(t, store, e2, err)
	e3, err := NewBuilderExited(sessionID, BuilderExitedData{Variant: "sketch", Folded: "pending"})
	mustAppend(t, store, e3, err)

	projection := NewSessionProjection(store)
	if err := projection.Rebuild(context.Background(), sessionID); err != nil {
		t.Fatalf("failed to rebuild: %v", err)
	}

	summary, exists := projection.GetSession(sessionID)
	if !exists {
		t.Fatal("expected session to exist after rebuild")
	}
	if summary.MaxDepth != 2 {
		t.Errorf("expected max depth 2, got %d", summary.MaxDepth)
	}
	if summary.OpenBuilders != 1 || summary.Status != "active" {
		t.Errorf("expected one open builder, got %d (%s)", summary.OpenBuilders, summary.Status)
	}
	if projection.LastSyncTime().IsZero() {
		t.Error("expected last sync time to be set")
	}

	// Rebuilding twice does not double count.
	if err := projection.Rebuild(context.Background(), sessionID); err != nil {
		t.Fatalf("failed to rebuild: %v", err)
	}
	summary, _ = projection.GetSession(sessionID)
	if summary.BuildersClosed != 1 {
		t.Errorf("expected 1 closed builder after second rebuild, got %d", summary.BuildersClosed)
	}
}

func TestSessionProjection_GetSessionReturnsCopy(t *testing.T) {
	projection := NewSessionProjection(NewMemoryStore())
	combined, _ := NewCombined("s", CombinedData{Mode: "add"})
	projection.Apply(combined)

	summary, _ := projection.GetSession("s")
	summary.Combinations["add"] = 99

	again, _ := projection.GetSession("s")
	if again.Combinations["add"] != 1 {
		t.Errorf("projection state was mutated through a returned summary")
	}
}
