package services

import (
	"context"
	"log/slog"
	"maps"
	"slices"
	"sync"
	"time"

	ferrors "git.home.luguber.info/inful/partbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/partbuilder/internal/logfields"
)

// ServiceStatus represents the current state of a service.
type ServiceStatus string

const (
	StatusNotStarted ServiceStatus = "not_started"
	StatusStarting   ServiceStatus = "starting"
	StatusRunning    ServiceStatus = "running"
	StatusStopping   ServiceStatus = "stopping"
	StatusStopped    ServiceStatus = "stopped"
	StatusFailed     ServiceStatus = "failed"
)

// ServiceInfo contains metadata about a managed service.
type ServiceInfo struct {
	Name         string        `json:"name"`
	Status       ServiceStatus `json:"status"`
	Health       HealthStatus  `json:"health"`
	Dependencies []string      `json:"dependencies"`
	StartedAt    *time.Time    `json:"started_at,omitempty"`
	StoppedAt    *time.Time    `json:"stopped_at,omitempty"`
	LastError    string        `json:"last_error,omitempty"`
}

// ServiceOrchestrator manages the lifecycle of multiple services with dependency resolution.
type ServiceOrchestrator struct {
	services   map[string]ManagedService
	status     map[string]ServiceStatus
	startedAt  map[string]time.Time
	stoppedAt  map[string]time.Time
	lastErrors map[string]error
	mu         sync.RWMutex
	logger     *slog.Logger

	startTimeout time.Duration
	stopTimeout  time.Duration
}

// NewServiceOrchestrator creates a new service orchestrator logging to logger.
func NewServiceOrchestrator(logger *slog.Logger) *ServiceOrchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &ServiceOrchestrator{
		services:     make(map[string]ManagedService),
		status:       make(map[string]ServiceStatus),
		startedAt:    make(map[string]time.Time),
		stoppedAt:    make(map[string]time.Time),
		lastErrors:   make(map[string]error),
		logger:       logger,
		startTimeout: 30 * time.Second,
		stopTimeout:  10 * time.Second,
	}
}

// WithTimeouts configures start and stop timeouts.
func (so *ServiceOrchestrator) WithTimeouts(start, stop time.Duration) *ServiceOrchestrator {
	so.startTimeout = start
	so.stopTimeout = stop
	return so
}

// RegisterService adds a service to the orchestrator.
func (so *ServiceOrchestrator) RegisterService(service ManagedService) error {
	so.mu.Lock()
	defer so.mu.Unlock()

	name := service.Name()
	if name == "" {
		return ferrors.ValidationError("service name cannot be empty").Build()
	}
	if _, exists := so.services[name]; exists {
		return ferrors.ValidationError("service already registered").WithContext("service", name).Build()
	}

	so.services[name] = service
	so.status[name] = StatusNotStarted

	so.logger.Debug("Service registered", slog.String("service", name), slog.Any("dependencies", service.Dependencies()))
	return nil
}

// StartAll starts all services in dependency order. A failure stops the
// services already started.
func (so *ServiceOrchestrator) StartAll(ctx context.Context) error {
	so.mu.Lock()
	defer so.mu.Unlock()

	startOrder, err := so.calculateStartOrder()
	if err != nil {
		return ferrors.InternalError("failed to calculate service start order").WithCause(err).Build()
	}

	so.logger.Info("Starting services", logfields.Count(len(startOrder)), slog.Any("order", startOrder))
	for _, name := range startOrder {
		if err := so.startService(ctx, name); err != nil {
			so.stopStartedServices(ctx, startOrder)
			return err
		}
	}
	return nil
}

// StopAll stops all running services in reverse dependency order.
func (so *ServiceOrchestrator) StopAll(ctx context.Context) error {
	so.mu.Lock()
	defer so.mu.Unlock()

	startOrder, err := so.calculateStartOrder()
	if err != nil {
		return ferrors.InternalError("failed to calculate service stop order").WithCause(err).Build()
	}
	stopOrder := slices.Clone(startOrder)
	slices.Reverse(stopOrder)

	so.logger.Info("Stopping services", logfields.Count(len(stopOrder)), slog.Any("order", stopOrder))
	var lastError error
	for _, name := range stopOrder {
		if err := so.stopService(ctx, name); err != nil {
			lastError = err
			so.logger.Error("Error stopping service", slog.String("service", name), logfields.Error(err))
		}
	}
	if lastError != nil {
		return ferrors.InternalError("some services failed to stop gracefully").WithCause(lastError).Build()
	}
	return nil
}

// GetServiceInfo returns information about a specific service.
func (so *ServiceOrchestrator) GetServiceInfo(name string) (ServiceInfo, bool) {
	so.mu.RLock()
	defer so.mu.RUnlock()
	return so.infoLocked(name)
}

// GetAllServiceInfo returns information about all services, sorted by name.
func (so *ServiceOrchestrator) GetAllServiceInfo() []ServiceInfo {
	so.mu.RLock()
	defer so.mu.RUnlock()

	infos := make([]ServiceInfo, 0, len(so.services))
	for _, name := range slices.Sorted(maps.Keys(so.services)) {
		if info, ok := so.infoLocked(name); ok {
			infos = append(infos, info)
		}
	}
	return infos
}

func (so *ServiceOrchestrator) infoLocked(name string) (ServiceInfo, bool) {
	service, exists := so.services[name]
	if !exists {
		return ServiceInfo{}, false
	}
	info := ServiceInfo{
		Name:         name,
		Status:       so.status[name],
		Dependencies: service.Dependencies(),
		Health:       service.Health(),
	}
	if t, ok := so.startedAt[name]; ok {
		info.StartedAt = &t
	}
	if t, ok := so.stoppedAt[name]; ok {
		info.StoppedAt = &t
	}
	if err := so.lastErrors[name]; err != nil {
		info.LastError = err.Error()
	}
	return info, true
}

// calculateStartOrder sorts services topologically, visiting names in
// lexical order so the result is stable.
func (so *ServiceOrchestrator) calculateStartOrder() ([]string, error) {
	visited := make(map[string]bool)
	visiting := make(map[string]bool)
	var order []string

	var visit func(string) error
	visit = func(name string) error {
		if visiting[name] {
			return ferrors.InternalError("circular service dependency").WithContext("service", name).Build()
		}
		if visited[name] {
			return nil
		}
		service, exists := so.services[name]
		if !exists {
			return ferrors.InternalError("service not found").WithContext("service", name).Build()
		}

		visiting[name] = true
		for _, dep := range service.Dependencies() {
			if err := visit(dep); err != nil {
				return err
			}
		}
		visiting[name] = false
		visited[name] = true
		order = append(order, name)
		return nil
	}

	for _, name := range slices.Sorted(maps.Keys(so.services)) {
		if err := visit(name); err != nil {
			return nil, err
		}
	}
	return order, nil
}

func (so *ServiceOrchestrator) startService(ctx context.Context, name string) error {
	service := so.services[name]
	so.status[name] = StatusStarting

	timeoutCtx, cancel := context.WithTimeout(ctx, so.startTimeout)
	defer cancel()

	startTime := time.Now()
	if err := service.Start(timeoutCtx); err != nil {
		so.status[name] = StatusFailed
		so.lastErrors[name] = err
		return ferrors.InternalError("failed to start service").
			WithContext("service", name).
			WithCause(err).
			Build()
	}

	so.status[name] = StatusRunning
	so.startedAt[name] = startTime
	so.lastErrors[name] = nil
	so.logger.Info("Service started", slog.String("service", name),
		logfields.DurationMS(float64(time.Since(startTime).Microseconds())/1000))
	return nil
}

func (so *ServiceOrchestrator) stopService(ctx context.Context, name string) error {
	if so.status[name] != StatusRunning {
		return nil
	}
	service := so.services[name]
	so.status[name] = StatusStopping

	timeoutCtx, cancel := context.WithTimeout(ctx, so.stopTimeout)
	defer cancel()

	stopTime := time.Now()
	if err := service.Stop(timeoutCtx); err != nil {
		so.status[name] = StatusFailed
		so.lastErrors[name] = err
		return err
	}

	so.status[name] = StatusStopped
	so.stoppedAt[name] = stopTime
	so.logger.Info("Service stopped", slog.String("service", name))
	return nil
}

// stopStartedServices stops running services in reverse start order; used
// for cleanup when a start fails.
func (so *ServiceOrchestrator) stopStartedServices(ctx context.Context, startOrder []string) {
	for _, name := range slices.Backward(startOrder) {
		if err := so.stopService(ctx, name); err != nil {
			so.logger.Error("Error stopping service during cleanup", slog.String("service", name), logfields.Error(err))
		}
	}
}
