package services

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/partbuilder/internal/build"
	"git.home.luguber.info/inful/partbuilder/internal/config"
	"git.home.luguber.info/inful/partbuilder/internal/eventstore"
	ferrors "git.home.luguber.info/inful/partbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/partbuilder/internal/kernel"
	"git.home.luguber.info/inful/partbuilder/internal/kernel/refkernel"
	"git.home.luguber.info/inful/partbuilder/internal/logfields"
	"git.home.luguber.info/inful/partbuilder/internal/observability"
)

// Runtime hands out construction sessions wired to the configured logger,
// kernel, journal and metrics.
type Runtime struct {
	cfg          *config.Config
	logger       *slog.Logger
	kernel       kernel.Kernel
	orchestrator *ServiceOrchestrator
	journal      *JournalService
	metrics      *MetricsService

	mu      sync.RWMutex
	started bool
}

// RuntimeOption customizes a Runtime.
type RuntimeOption func(*runtimeOptions)

type runtimeOptions struct {
	logOutput io.Writer
	kernel    kernel.Kernel
}

// WithLogOutput directs log output to w instead of stderr.
func WithLogOutput(w io.Writer) RuntimeOption {
	return func(o *runtimeOptions) { o.logOutput = w }
}

// WithKernel replaces the reference kernel.
func WithKernel(k kernel.Kernel) RuntimeOption {
	return func(o *runtimeOptions) { o.kernel = k }
}

// NewRuntime validates cfg and registers the services it enables.
func NewRuntime(cfg *config.Config, opts ...RuntimeOption) (*Runtime, error) {
	if cfg == nil {
		return nil, ferrors.ConfigError("configuration is required").Build()
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	o := runtimeOptions{logOutput: os.Stderr}
	for _, opt := range opts {
		opt(&o)
	}

	logger := observability.NewLogger(string(cfg.Logging.Level), string(cfg.Logging.Format), o.logOutput)
	k := o.kernel
	if k == nil {
		k = refkernel.New(refkernel.WithTolerance(cfg.Kernel.Tolerance))
	}

	rt := &Runtime{
		cfg:          cfg,
		logger:       logger,
		kernel:       k,
		orchestrator: NewServiceOrchestrator(logger),
	}
	if cfg.Journal.Enabled {
		rt.journal = NewJournalService(cfg.Journal, logger)
		if err := rt.orchestrator.RegisterService(rt.journal); err != nil {
			return nil, err
		}
	}
	if cfg.Metrics.Enabled {
		rt.metrics = NewMetricsService(cfg.Metrics.Namespace)
		if err := rt.orchestrator.RegisterService(rt.metrics); err != nil {
			return nil, err
		}
	}
	return rt, nil
}

// Start starts the enabled services.
func (r *Runtime) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.started {
		return nil
	}
	if err := r.orchestrator.StartAll(ctx); err != nil {
		return err
	}
	r.started = true
	r.logger.Info("Runtime started",
		slog.Bool("journal", r.journal != nil),
		slog.Bool("metrics", r.metrics != nil))
	return nil
}

// Stop stops the services in reverse order.
func (r *Runtime) Stop(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.started {
		return nil
	}
	r.started = false
	return r.orchestrator.StopAll(ctx)
}

// Logger returns the runtime logger.
func (r *Runtime) Logger() *slog.Logger { return r.logger }

// Registry returns the metrics registry, or nil when metrics are disabled or
// not started.
func (r *Runtime) Registry() *prom.Registry {
	if r.metrics == nil {
		return nil
	}
	return r.metrics.Registry()
}

// Services reports every registered service.
func (r *Runtime) Services() []ServiceInfo {
	return r.orchestrator.GetAllServiceInfo()
}

// NewSession returns a session configured from the runtime. opts are applied
// after the runtime defaults and may override them.
func (r *Runtime) NewSession(opts ...build.Option) (*build.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if !r.started {
		return nil, ferrors.ConfigError("runtime is not started").Build()
	}

	base := []build.Option{
		build.WithLogger(r.logger),
		build.WithDefaultWorkplane(r.cfg.Build.DefaultWorkplane.Plane()),
		build.WithTolerance(r.cfg.Kernel.Tolerance),
	}
	if r.metrics != nil {
		base = append(base, build.WithRecorder(r.metrics.Recorder()))
	}
	if r.journal != nil {
		base = append(base, build.WithJournal(r.journal.Store()))
	}

	sess := build.NewSession(r.kernel, append(base, opts...)...)
	r.logger.Debug("Session created", logfields.SessionID(sess.ID()))
	return sess, nil
}

// SessionSummary rebuilds the journal read model of one session.
func (r *Runtime) SessionSummary(ctx context.Context, sessionID string) (*eventstore.SessionSummary, error) {
	if r.journal == nil {
		return nil, ferrors.ConfigError("journal is disabled").Build()
	}
	projection := r.journal.Projection()
	if projection == nil {
		return nil, ferrors.ConfigError("runtime is not started").Build()
	}
	if err := projection.Rebuild(ctx, sessionID); err != nil {
		return nil, err
	}
	summary, ok := projection.GetSession(sessionID)
	if !ok {
		return nil, ferrors.ValidationError("unknown session").WithContext("session_id", sessionID).Build()
	}
	return summary, nil
}
