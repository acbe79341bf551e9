package eventstore

import (
	"encoding/json"
	"time"

	"git.home.luguber.info/inful/partbuilder/internal/foundation/errors"
)

// Journal event types.
const (
	TypeBuilderEntered  = "builder.entered"
	TypeBuilderExited   = "builder.exited"
	TypeBuilderAborted  = "builder.aborted"
	TypeCombined        = "combined"
	TypePendingAdded    = "pending.added"
	TypeLocationsPushed = "locations.pushed"
)

func newBase(sessionID, eventType string, payload any) (BaseEvent, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return BaseEvent{}, errors.From(ErrMarshalPayloadFailed).
			WithCause(err).
			WithContext("session_id", sessionID).
			WithContext("event", eventType).
			Build()
	}
	return BaseEvent{
		EventSessionID: sessionID,
		EventType:      eventType,
		EventTimestamp: time.Now(),
		EventPayload:   data,
	}, nil
}

// BuilderEnteredData describes a builder that became the current context.
type BuilderEnteredData struct {
	Variant string `json:"variant"`
	Mode    string `json:"mode"`
	Parent  string `json:"parent,omitempty"`
	Depth   int    `json:"depth"`
}

// BuilderEntered is emitted when a builder scope opens.
type BuilderEntered struct {
	BaseEvent
	Data BuilderEnteredData
}

// NewBuilderEntered creates a BuilderEntered event.
func NewBuilderEntered(sessionID string, data BuilderEnteredData) (*BuilderEntered, error) {
	base, err := newBase(sessionID, TypeBuilderEntered, data)
	if err != nil {
		return nil, err
	}
	return &BuilderEntered{BaseEvent: base, Data: data}, nil
}

// BuilderExitedData describes a builder that closed normally.
type BuilderExitedData struct {
	Variant      string  `json:"variant"`
	Mode         string  `json:"mode"`
	Folded       string  `json:"folded"` // how the result reached the parent: combined, pending, private, none
	ResultKind   string  `json:"result_kind,omitempty"`
	Measure      float64 `json:"measure"`
	PendingFaces int     `json:"pending_faces"`
	PendingEdges int     `json:"pending_edges"`
	DurationMS   float64 `json:"duration_ms"`
}

// BuilderExited is emitted after a builder folded into its parent and closed.
type BuilderExited struct {
	BaseEvent
	Data BuilderExitedData
}

// NewBuilderExited creates a BuilderExited event.
func NewBuilderExited(sessionID string, data BuilderExitedData) (*BuilderExited, error) {
	base, err := newBase(sessionID, TypeBuilderExited, data)
	if err != nil {
		return nil, err
	}
	return &BuilderExited{BaseEvent: base, Data: data}, nil
}

// BuilderAbortedData describes a builder that closed because of an error or panic.
type BuilderAbortedData struct {
	Variant  string `json:"variant"`
	Error    string `json:"error"`
	Category string `json:"category,omitempty"`
	Panicked bool   `json:"panicked,omitempty"`
}

// BuilderAborted is emitted when a builder scope unwinds without folding.
type BuilderAborted struct {
	BaseEvent
	Data BuilderAbortedData
}

// NewBuilderAborted creates a BuilderAborted event.
func NewBuilderAborted(sessionID string, data BuilderAbortedData) (*BuilderAborted, error) {
	base, err := newBase(sessionID, TypeBuilderAborted, data)
	if err != nil {
		return nil, err
	}
	return &BuilderAborted{BaseEvent: base, Data: data}, nil
}

// CombinedData describes one successful combination.
type CombinedData struct {
	Variant     string  `json:"variant"`
	Mode        string  `json:"mode"`
	Operands    int     `json:"operands"`
	NewVertices int     `json:"new_vertices"`
	NewEdges    int     `json:"new_edges"`
	NewFaces    int     `json:"new_faces"`
	Measure     float64 `json:"measure"`
}

// Combined is emitted after a builder's accumulated result changed.
type Combined struct {
	BaseEvent
	Data CombinedData
}

// NewCombined creates a Combined event.
func NewCombined(sessionID string, data CombinedData) (*Combined, error) {
	base, err := newBase(sessionID, TypeCombined, data)
	if err != nil {
		return nil, err
	}
	return &Combined{BaseEvent: base, Data: data}, nil
}

// PendingAddedData describes objects queued for a later operation.
type PendingAddedData struct {
	Variant string `json:"variant"`
	Kind    string `json:"kind"` // face, edge or location
	Count   int    `json:"count"`
}

// PendingAdded is emitted when objects join a builder's pending queue.
type PendingAdded struct {
	BaseEvent
	Data PendingAddedData
}

// NewPendingAdded creates a PendingAdded event.
func NewPendingAdded(sessionID string, data PendingAddedData) (*PendingAdded, error) {
	base, err := newBase(sessionID, TypePendingAdded, data)
	if err != nil {
		return nil, err
	}
	return &PendingAdded{BaseEvent: base, Data: data}, nil
}

// LocationsPushedData describes a location scope.
type LocationsPushedData struct {
	Generator string `json:"generator"`
	Frames    int    `json:"frames"`
	Points    int    `json:"points"`
	Depth     int    `json:"depth"`
}

// LocationsPushed is emitted when a workplane or location scope opens.
type LocationsPushed struct {
	BaseEvent
	Data LocationsPushedData
}

// NewLocationsPushed creates a LocationsPushed event.
func NewLocationsPushed(sessionID string, data LocationsPushedData) (*LocationsPushed, error) {
	base, err := newBase(sessionID, TypeLocationsPushed, data)
	if err != nil {
		return nil, err
	}
	return &LocationsPushed{BaseEvent: base, Data: data}, nil
}
