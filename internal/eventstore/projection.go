// Package eventstore provides the construction journal: an append-only record
// of builder scopes, combinations and location scopes per session.
package eventstore

import (
	"context"
	"encoding/json"
	"maps"
	"sync"
	"time"
)

const (
	sessionStatusActive = "active"
	sessionStatusIdle   = "idle"
)

// SessionSummary is a read model of one construction session.
type SessionSummary struct {
	SessionID      string         `json:"session_id"`
	Status         string         `json:"status"` // "active" while a builder is open, else "idle"
	StartedAt      time.Time      `json:"started_at"`
	LastEventAt    time.Time      `json:"last_event_at"`
	OpenBuilders   int            `json:"open_builders"`
	MaxDepth       int            `json:"max_depth"`
	BuildersClosed int            `json:"builders_closed"`
	Aborted        int            `json:"aborted"`
	Combinations   map[string]int `json:"combinations"` // by mode
	PendingFaces   int            `json:"pending_faces"`
	PendingEdges   int            `json:"pending_edges"`
	LocationScopes int            `json:"location_scopes"`
	LastError      string         `json:"last_error,omitempty"`
}

// SessionProjection maintains an in-memory view of sessions reconstructed from
// the journal.
type SessionProjection struct {
	mu       sync.RWMutex
	store    Store
	sessions map[string]*SessionSummary
	lastSync time.Time
}

// NewSessionProjection creates a new projection backed by the given store.
func NewSessionProjection(store Store) *SessionProjection {
	return &SessionProjection{
		store:    store,
		sessions: make(map[string]*SessionSummary),
	}
}

// Rebuild reconstructs the summary of one session from its events.
func (p *SessionProjection) Rebuild(ctx context.Context, sessionID string) error {
	events, err := p.store.GetBySessionID(ctx, sessionID)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	delete(p.sessions, sessionID)
	for _, event := range events {
		p.applyEventLocked(event)
	}
	p.lastSync = time.Now()
	return nil
}

// Apply processes a single event and updates the projection.
func (p *SessionProjection) Apply(event Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.applyEventLocked(event)
}

func (p *SessionProjection) applyEventLocked(event Event) {
	sessionID := event.SessionID()
	if sessionID == "" {
		return
	}

	summary, exists := p.sessions[sessionID]
	if !exists {
		summary = &SessionSummary{
			SessionID:    sessionID,
			Status:       sessionStatusIdle,
			StartedAt:    event.Timestamp(),
			Combinations: make(map[string]int),
		}
		p.sessions[sessionID] = summary
	}
	summary.LastEventAt = event.Timestamp()

	switch event.Type() {
	case TypeBuilderEntered:
		var data BuilderEnteredData
		if err := json.Unmarshal(event.Payload(), &data); err == nil {
			summary.MaxDepth = max(summary.MaxDepth, data.Depth)
		}
		summary.OpenBuilders++

	case TypeBuilderExited:
		summary.OpenBuilders = max(0, summary.OpenBuilders-1)
		summary.BuildersClosed++

	case TypeBuilderAborted:
		summary.OpenBuilders = max(0, summary.OpenBuilders-1)
		summary.BuildersClosed++
		summary.Aborted++
		var data BuilderAbortedData
		if err := json.Unmarshal(event.Payload(), &data); err == nil {
			summary.LastError = data.Error
		}

	case TypeCombined:
		var data CombinedData
		if err := json.Unmarshal(event.Payload(), &data); err == nil {
			summary.Combinations[data.Mode]++
		}

	case TypePendingAdded:
		var data PendingAddedData
		if err := json.Unmarshal(event.Payload(), &data); err == nil {
			switch data.Kind {
			case "face":
				summary.PendingFaces += data.Count
			case "edge":
				summary.PendingEdges += data.Count
			}
		}

	case TypeLocationsPushed:
		summary.LocationScopes++
	}

	summary.Status = sessionStatusIdle
	if summary.OpenBuilders > 0 {
		summary.Status = sessionStatusActive
	}
}

// GetSession returns a copy of the summary for a session.
func (p *SessionProjection) GetSession(sessionID string) (*SessionSummary, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	summary, exists := p.sessions[sessionID]
	if !exists {
		return nil, false
	}
	cp := *summary
	cp.Combinations = maps.Clone(summary.Combinations)
	return &cp, true
}

// LastSyncTime returns when the projection was last rebuilt.
func (p *SessionProjection) LastSyncTime() time.Time {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.lastSync
}
