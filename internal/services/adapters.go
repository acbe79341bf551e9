package services

import (
	"context"
	"log/slog"
	"sync"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/partbuilder/internal/config"
	"git.home.luguber.info/inful/partbuilder/internal/eventstore"
	ferrors "git.home.luguber.info/inful/partbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/partbuilder/internal/metrics"
)

// Service names.
const (
	JournalServiceName = "journal"
	MetricsServiceName = "metrics"
)

// JournalService opens the construction journal store on Start and closes
// it on Stop.
type JournalService struct {
	cfg    config.JournalConfig
	logger *slog.Logger

	mu         sync.RWMutex
	store      eventstore.Store
	projection *eventstore.SessionProjection
	running    bool
}

// NewJournalService creates a journal service for cfg.
func NewJournalService(cfg config.JournalConfig, logger *slog.Logger) *JournalService {
	return &JournalService{cfg: cfg, logger: logger}
}

func (s *JournalService) Name() string { return JournalServiceName }

func (s *JournalService) Start(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var store eventstore.Store
	switch s.cfg.Driver {
	case config.JournalDriverSQLite:
		sqlite, err := eventstore.NewSQLiteStore(s.cfg.Path)
		if err != nil {
			return err
		}
		store = sqlite
	case config.JournalDriverMemory, "":
		store = eventstore.NewMemoryStore()
	default:
		return ferrors.ConfigError("unsupported journal driver").
			WithContext("driver", string(s.cfg.Driver)).
			Build()
	}

	s.store = store
	s.projection = eventstore.NewSessionProjection(store)
	s.running = true
	s.logger.Debug("Journal opened", slog.String("driver", string(s.cfg.Driver)), slog.String("path", s.cfg.Path))
	return nil
}

func (s *JournalService) Stop(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store == nil {
		return nil
	}
	err := s.store.Close()
	s.running = false
	return err
}

func (s *JournalService) Health() HealthStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.running {
		return Unhealthy("journal closed")
	}
	return Healthy()
}

func (s *JournalService) Dependencies() []string { return nil }

// Store returns the open store, or nil before Start.
func (s *JournalService) Store() eventstore.Store {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store
}

// Projection returns the session read model over the store.
func (s *JournalService) Projection() *eventstore.SessionProjection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.projection
}

// MetricsService owns a Prometheus registry and the recorder feeding it.
type MetricsService struct {
	namespace string

	mu       sync.RWMutex
	registry *prom.Registry
	recorder *metrics.PrometheusRecorder
}

// NewMetricsService creates a metrics service registering under namespace.
func NewMetricsService(namespace string) *MetricsService {
	return &MetricsService{namespace: namespace}
}

func (s *MetricsService) Name() string { return MetricsServiceName }

func (s *MetricsService) Start(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.registry = prom.NewRegistry()
	s.recorder = metrics.NewPrometheusRecorder(s.registry, s.namespace)
	return nil
}

func (s *MetricsService) Stop(_ context.Context) error { return nil }

func (s *MetricsService) Health() HealthStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.registry == nil {
		return Unhealthy("metrics not started")
	}
	return Healthy()
}

// Dependencies is empty; metrics start independently of the journal.
func (s *MetricsService) Dependencies() []string { return nil }

// Registry returns the registry, or nil before Start.
func (s *MetricsService) Registry() *prom.Registry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.registry
}

// Recorder returns the recorder, or nil before Start.
func (s *MetricsService) Recorder() *metrics.PrometheusRecorder {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.recorder
}
