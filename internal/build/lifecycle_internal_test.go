package build

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/partbuilder/internal/geom"
	"git.home.luguber.info/inful/partbuilder/internal/kernel/refkernel"
)

func TestAbortLogsLeakedLocationScope(t *testing.T) {
	var logs bytes.Buffer
	sess := NewSession(refkernel.New(), WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))
	boom := errors.New("boom")

	_, err := sess.BuildSketch(func(*Builder) error {
		sess.pushLocations(locationScope{
			generator: "Leaked",
			frames:    []geom.Plane{geom.PlaneXY},
			points:    []geom.Location{geom.IdentityLocation},
		})
		return boom
	})
	require.ErrorIs(t, err, boom)

	assert.Contains(t, logs.String(), "Location stack corrupted")
	assert.Contains(t, logs.String(), "Builder aborted")
	assert.Zero(t, sess.LocationDepth())
	assert.Zero(t, sess.Depth())
}
