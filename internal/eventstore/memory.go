package eventstore

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"git.home.luguber.info/inful/partbuilder/internal/foundation/errors"
)

// MemoryStore is a Store kept in process memory. It is the default journal
// backend and safe for concurrent use.
type MemoryStore struct {
	mu     sync.RWMutex
	events []*BaseEvent
	nextID int64
	closed bool
	now    func() time.Time
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory journal.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{now: time.Now}
}

// Append adds a new event to the store.
func (s *MemoryStore) Append(ctx context.Context, sessionID, eventType string, payload []byte, metadata map[string]string) error {
	if err := ctx.Err(); err != nil {
		return errors.From(ErrEventAppendFailed).WithCause(err).WithContext("event", eventType).Build()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return errors.From(ErrStoreClosed).WithContext("event", eventType).Build()
	}

	s.nextID++
	var meta map[string]string
	if metadata != nil {
		meta = maps.Clone(metadata)
	}
	s.events = append(s.events, &BaseEvent{
		EventID:        s.nextID,
		EventSessionID: sessionID,
		EventType:      eventType,
		EventTimestamp: s.now(),
		EventPayload:   slices.Clone(payload),
		EventMetadata:  meta,
	})
	return nil
}

// GetBySessionID retrieves all events for a specific session.
func (s *MemoryStore) GetBySessionID(ctx context.Context, sessionID string) ([]Event, error) {
	return s.query(ctx, func(e *BaseEvent) bool { return e.EventSessionID == sessionID })
}

// GetRange retrieves events within a time range.
func (s *MemoryStore) GetRange(ctx context.Context, start, end time.Time) ([]Event, error) {
	return s.query(ctx, func(e *BaseEvent) bool {
		return !e.EventTimestamp.Before(start) && !e.EventTimestamp.After(end)
	})
}

func (s *MemoryStore) query(ctx context.Context, keep func(*BaseEvent) bool) ([]Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.From(ErrEventQueryFailed).WithCause(err).Build()
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, errors.From(ErrStoreClosed).Build()
	}

	var out []Event
	for _, e := range s.events {
		if keep(e) {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

// Close releases the stored events. Further use fails with ErrStoreClosed.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.events = nil
	return nil
}
