package eventstore

import (
	"bytes"
	"testing"
	"time"

	"git.home.luguber.info/inful/partbuilder/internal/foundation/errors"
)

type storeFactory struct {
	name string
	open func(t *testing.T) Store
}

func stores() []storeFactory {
	return []storeFactory{
		{name: "memory", open: func(t *testing.T) Store { return NewMemoryStore() }},
		{name: "sqlite", open: func(t *testing.T) Store {
			t.Helper()
			store, err := NewSQLiteStore(":memory:")
			if err != nil {
				t.Fatalf("failed to create store: %v", err)
			}
			return store
		}},
	}
}

func TestEventStoreAppendAndRetrieve(t *testing.T) {
	for _, f := range stores() {
		t.Run(f.name, func(t *testing.T) {
			store := f.open(t)
			defer func() { _ = store.Close() }()

			ctx := t.Context()
			eventType := "TestEvent"
			payload := []byte(`{"test": "data"}`)
			metadata := map[string]string{"key": "value"}

			if err := store.Append(ctx, testSessionID, eventType, payload, metadata); err != nil {
				t.Fatalf("failed to append event: %v", err)
			}

			events, err := store.GetBySessionID(ctx, testSessionID)
			if err != nil {
				t.Fatalf("failed to get events: %v", err)
			}
			if len(events) != 1 {
				t.Fatalf("expected 1 event, got %d", len(events))
			}

			event := events[0]
			if event.ID() == 0 {
				t.Error("expected a store-assigned id")
			}
			if event.SessionID() != testSessionID {
				t.Errorf("expected session_id %s, got %s", testSessionID, event.SessionID())
			}
			if event.Type() != eventType {
				t.Errorf("expected event_type %s, got %s", eventType, event.Type())
			}
			if !bytes.Equal(event.Payload(), payload) {
				t.Errorf("expected payload %s, got %s", payload, event.Payload())
			}
			if event.Metadata()["key"] != "value" {
				t.Errorf("expected metadata key=value, got %v", event.Metadata())
			}
		})
	}
}

func TestEventStoreGetRange(t *testing.T) {
	for _, f := range stores() {
		t.Run(f.name, func(t *testing.T) {
			store := f.open(t)
			defer func() { _ = store.Close() }()

			ctx := t.Context()
			now := time.Now()
			for range 3 {
				if err := store.Append(ctx, "session-1", "Event", []byte("data"), nil); err != nil {
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
				t.Errorf("expected no events in a future range, got %d", len(events))
			}
		})
	}
}

func TestEventStoreMultipleSessions(t *testing.T) {
	for _, f := range stores() {
		t.Run(f.name, func(t *testing.T) {
			store := f.open(t)
			defer func() { _ = store.Close() }()

			ctx := t.Context()
			_ = store.Append(ctx, "session-1", "Event1", []byte("data1"), nil)
			_ = store.Append(ctx, "session-2", "Event2", []byte("data2"), nil)
			_ = store.Append(ctx, "session-1", "Event3", []byte("data3"), nil)

			events, err := store.GetBySessionID(ctx, "session-1")
			if err != nil {
				t.Fatalf("failed to get events: %v", err)
			}
			if len(events) != 2 {
				t.Fatalf("expected 2 events for session-1, got %d", len(events))
			}
			if events[0].Type() != "Event1" || events[1].Type() != "Event3" {
				t.Errorf("expected append order, got %s then %s", events[0].Type(), events[1].Type())
			}

			events, err = store.GetBySessionID(ctx, "session-2")
			if err != nil {
				t.Fatalf("failed to get events: %v", err)
			}
			if len(events) != 1 {
				t.Errorf("expected 1 event for session-2, got %d", len(events))
			}
		})
	}
}

func TestEventStoreAppendAfterClose(t *testing.T) {
	for _, f := range stores() {
		t.Run(f.name, func(t *testing.T) {
			store := f.open(t)
			if err := store.Close(); err != nil {
				t.Fatalf("close: %v", err)
			}

			err := store.Append(t.Context(), "s", "Event", nil, nil)
			if err == nil {
				t.Fatal("expected append on a closed store to fail")
			}
			if !errors.HasCategory(err, errors.CategoryEventStore) {
				t.Errorf("expected an eventstore error, got %v", err)
			}
		})
	}
}

func TestMemoryStoreCopiesPayload(t *testing.T) {
	store := NewMemoryStore()
	payload := []byte("abc")
	if err := store.Append(t.Context(), "s", "Event", payload, nil); err != nil {
		t.Fatalf("append: %v", err)
	}
	payload[0] = 'z'

	events, err := store.GetBySessionID(t.Context(), "s")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(events[0].Payload()) != "abc" {
		t.Errorf("stored payload was aliased: %q", events[0].Payload())
	}
}
