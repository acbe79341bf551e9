package services

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/partbuilder/internal/build"
	"git.home.luguber.info/inful/partbuilder/internal/config"
	ferrors "git.home.luguber.info/inful/partbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/partbuilder/internal/primitives"
)

func startRuntime(t *testing.T, cfg *config.Config) (*Runtime, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	rt, err := NewRuntime(cfg, WithLogOutput(&logs))
	require.NoError(t, err)
	require.NoError(t, rt.Start(context.Background()))
	t.Cleanup(func() { _ = rt.Stop(context.Background()) })
	return rt, &logs
}

func buildBox(t *testing.T, sess *build.Session) {
	t.Helper()
	b, err := sess.BuildPart(func(*build.Builder) error {
		_, err := primitives.Box(sess, 2, 3, 4)
		return err
	})
	require.NoError(t, err)
	assert.InDelta(t, 24.0, b.Result().Volume(), 1e-9)
}

func TestRuntimeWiresJournalAndMetrics(t *testing.T) {
	cfg := config.Default()
	cfg.Journal.Enabled = true
	cfg.Metrics.Enabled = true
	cfg.Logging.Level = config.LogLevelDebug

	rt, logs := startRuntime(t, cfg)

	sess, err := rt.NewSession(build.WithSessionID("runtime-session"))
	require.NoError(t, err)
	buildBox(t, sess)

	summary, err := rt.SessionSummary(context.Background(), "runtime-session")
	require.NoError(t, err)
	assert.Equal(t, 1, summary.BuildersClosed)
	assert.Equal(t, 1, summary.Combinations["add"])
	assert.Equal(t, "idle", summary.Status)

	families, err := rt.Registry().Gather()
	require.NoError(t, err)
	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["partbuilder_combinations_total"], "families: %v", names)
	assert.True(t, names["partbuilder_builder_lifetime_seconds"], "families: %v", names)

	assert.Contains(t, logs.String(), "runtime-session")

	infos := rt.Services()
	require.Len(t, infos, 2)
	for _, info := range infos {
		assert.Equal(t, StatusRunning, info.Status)
		assert.Equal(t, "healthy", info.Health.Status)
	}
}

func TestRuntimeSQLiteJournal(t *testing.T) {
	cfg := config.Default()
	cfg.Journal.Enabled = true
	cfg.Journal.Driver = config.JournalDriverSQLite
	cfg.Journal.Path = filepath.Join(t.TempDir(), "journal.db")

	rt, _ := startRuntime(t, cfg)
	sess, err := rt.NewSession()
	require.NoError(t, err)
	buildBox(t, sess)

	summary, err := rt.SessionSummary(context.Background(), sess.ID())
	require.NoError(t, err)
	assert.Equal(t, 1, summary.MaxDepth)
	assert.Nil(t, rt.Registry())
}

func TestRuntimeWithoutOptionalServices(t *testing.T) {
	rt, _ := startRuntime(t, config.Default())
	assert.Empty(t, rt.Services())

	sess, err := rt.NewSession()
	require.NoError(t, err)
	buildBox(t, sess)

	_, err = rt.SessionSummary(context.Background(), sess.ID())
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))
}

func TestRuntimeDefaultWorkplane(t *testing.T) {
	cfg := config.Default()
	cfg.Build.DefaultWorkplane = config.WorkplaneYZ

	rt, _ := startRuntime(t, cfg)
	sess, err := rt.NewSession()
	require.NoError(t, err)

	_, err = sess.BuildPart(func(*build.Builder) error {
		frames := sess.Frames()
		require.Len(t, frames, 1)
		assert.Equal(t, cfg.Build.DefaultWorkplane.Plane().ZDir, frames[0].ZDir)
		return nil
	})
	require.NoError(t, err)
}

func TestRuntimeErrors(t *testing.T) {
	t.Run("nil config", func(t *testing.T) {
		_, err := NewRuntime(nil)
		require.Error(t, err)
		assert.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))
	})

	t.Run("invalid config", func(t *testing.T) {
		cfg := config.Default()
		cfg.Kernel.Tolerance = 2
		_, err := NewRuntime(cfg)
		require.Error(t, err)
	})

	t.Run("session before start", func(t *testing.T) {
		rt, err := NewRuntime(config.Default(), WithLogOutput(&bytes.Buffer{}))
		require.NoError(t, err)
		_, err = rt.NewSession()
		require.Error(t, err)
	})

	t.Run("unknown session", func(t *testing.T) {
		cfg := config.Default()
		cfg.Journal.Enabled = true
		rt, _ := startRuntime(t, cfg)
		_, err := rt.SessionSummary(context.Background(), "nobody")
		require.Error(t, err)
		assert.True(t, ferrors.HasCategory(err, ferrors.CategoryValidation))
	})
}

func TestJournalServiceLifecycle(t *testing.T) {
	svc := NewJournalService(config.JournalConfig{Enabled: true, Driver: config.JournalDriverMemory}, quietLogger())
	assert.Equal(t, "unhealthy", svc.Health().Status)
	assert.Nil(t, svc.Store())

	require.NoError(t, svc.Start(context.Background()))
	assert.Equal(t, "healthy", svc.Health().Status)
	require.NotNil(t, svc.Store())
	require.NotNil(t, svc.Projection())

	require.NoError(t, svc.Stop(context.Background()))
	assert.Equal(t, "unhealthy", svc.Health().Status)

	bad := NewJournalService(config.JournalConfig{Driver: "postgres"}, quietLogger())
	err := bad.Start(context.Background())
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))
}
