package build_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/partbuilder/internal/build"
	ferrors "git.home.luguber.info/inful/partbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/partbuilder/internal/geom"
	"git.home.luguber.info/inful/partbuilder/internal/primitives"
)

func TestCurrentWithoutBuilder(t *testing.T) {
	sess := newSession()

	_, err := sess.Current()
	require.ErrorIs(t, err, build.ErrNoActiveBuilder)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryContext))

	_, err = sess.Require("Box", build.VariantPart)
	require.ErrorIs(t, err, build.ErrNoActiveBuilder)
	assert.Contains(t, err.Error(), "Box")
}

func TestBuilderStackFollowsScopes(t *testing.T) {
	sess := newSession()

	part, err := sess.BuildPart(func(p *build.Builder) error {
		assert.Equal(t, 1, sess.Depth())
		cur, err := sess.Current()
		require.NoError(t, err)
		assert.Same(t, p, cur)
		assert.Nil(t, p.Parent())
		assert.Equal(t, build.StateOpen, p.State())

		_, err = sess.BuildSketch(func(s *build.Builder) error {
			assert.Equal(t, 2, sess.Depth())
			assert.Same(t, p, s.Parent())
			cur, err := sess.Current()
			require.NoError(t, err)
			assert.Same(t, s, cur)
			return nil
		})
		require.NoError(t, err)

		cur, err = sess.Current()
		require.NoError(t, err)
		assert.Same(t, p, cur)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 0, sess.Depth())
	assert.Equal(t, build.StateClosed, part.State())
	assert.Same(t, sess, part.Session())
}

func TestNestingRules(t *testing.T) {
	tests := []struct {
		name  string
		outer func(*build.Session, func(*build.Builder) error, ...build.BuilderOption) (*build.Builder, error)
		inner func(*build.Session, func(*build.Builder) error, ...build.BuilderOption) (*build.Builder, error)
		ok    bool
	}{
		{"part in part", (*build.Session).BuildPart, (*build.Session).BuildPart, true},
		{"sketch in part", (*build.Session).BuildPart, (*build.Session).BuildSketch, true},
		{"line in part", (*build.Session).BuildPart, (*build.Session).BuildLine, true},
		{"sketch in sketch", (*build.Session).BuildSketch, (*build.Session).BuildSketch, true},
		{"line in sketch", (*build.Session).BuildSketch, (*build.Session).BuildLine, true},
		{"line in line", (*build.Session).BuildLine, (*build.Session).BuildLine, true},
		{"part in sketch", (*build.Session).BuildSketch, (*build.Session).BuildPart, false},
		{"part in line", (*build.Session).BuildLine, (*build.Session).BuildPart, false},
		{"sketch in line", (*build.Session).BuildLine, (*build.Session).BuildSketch, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess := newSession()
			var innerErr error
			_, err := tt.outer(sess, func(*build.Builder) error {
				_, innerErr = tt.inner(sess, func(*build.Builder) error { return nil })
				return nil
			})
			require.NoError(t, err)
			if tt.ok {
				assert.NoError(t, innerErr)
			} else {
				assert.ErrorIs(t, innerErr, build.ErrUnsupportedBuilder)
			}
			assert.Equal(t, 0, sess.Depth())
		})
	}
}

func TestUnsupportedConstructNamesBuilder(t *testing.T) {
	sess := newSession()
	_, err := sess.BuildPart(func(*build.Builder) error {
		_, err := primitives.Circle(sess, 1)
		return err
	})
	require.ErrorIs(t, err, build.ErrUnsupportedBuilder)
	assert.Contains(t, err.Error(), "Circle")
	assert.Contains(t, err.Error(), "part")
}

func TestAbnormalChildExitLeavesParentUntouched(t *testing.T) {
	sess := newSession()
	boom := errors.New("boom")

	part, err := sess.BuildPart(func(p *build.Builder) error {
		_, err := primitives.Box(sess, 10, 10, 10)
		require.NoError(t, err)
		before := p.Result()

		_, err = sess.BuildPart(func(*build.Builder) error {
			if _, err := primitives.Box(sess, 1, 1, 1); err != nil {
				return err
			}
			return boom
		})
		assert.ErrorIs(t, err, boom)

		_, err = sess.BuildSketch(func(*build.Builder) error {
			if _, err := primitives.Circle(sess, 2); err != nil {
				return err
			}
			return boom
		})
		assert.ErrorIs(t, err, boom)

		assert.Equal(t, 1, sess.Depth())
		assert.Equal(t, before.ID(), p.Result().ID())
		assert.Empty(t, p.PendingFaces())
		return nil
	})
	require.NoError(t, err)
	assert.InDelta(t, 1000, part.Result().Volume(), 1e-9)
}

func TestFailingBuilderReturnsNoBuilder(t *testing.T) {
	sess := newSession()
	boom := errors.New("boom")

	part, err := sess.BuildPart(func(*build.Builder) error { return boom })
	assert.Nil(t, part)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, sess.Depth())
}

func TestPanicUnwindsAllScopes(t *testing.T) {
	sess := newSession()

	assert.PanicsWithValue(t, "kaboom", func() {
		_, _ = sess.BuildPart(func(*build.Builder) error {
			return sess.Locations([]geom.Location{geom.NewLocation(geom.Vec(1, 0, 0))}, func() error {
				_, err := sess.BuildSketch(func(*build.Builder) error {
					panic("kaboom")
				})
				return err
			})
		}, build.WithWorkplanes(geom.PlaneXZ))
	})

	assert.Equal(t, 0, sess.Depth())
	assert.Equal(t, 0, sess.LocationDepth())

	// The session stays usable.
	part, err := sess.BuildPart(func(*build.Builder) error {
		_, err := primitives.Box(sess, 1, 1, 1)
		return err
	})
	require.NoError(t, err)
	assert.InDelta(t, 1, part.Result().Volume(), 1e-9)
}

func TestClosedBuilderRejectsMutation(t *testing.T) {
	sess := newSession()
	k := sess.Kernel()

	part, err := sess.BuildPart(func(*build.Builder) error {
		_, err := primitives.Box(sess, 2, 2, 2)
		return err
	})
	require.NoError(t, err)

	box, err := k.Box(1, 1, 1)
	require.NoError(t, err)
	_, err = part.Combine(build.ModeAdd, box)
	require.ErrorIs(t, err, build.ErrBuilderClosed)

	face, err := k.Rectangle(1, 1)
	require.NoError(t, err)
	err = part.AddToPending(build.PendingFace, face)
	require.ErrorIs(t, err, build.ErrBuilderClosed)

	assert.InDelta(t, 8, part.Result().Volume(), 1e-9)
}

func TestSketchInPartQueuesFaces(t *testing.T) {
	sess := newSession()

	part, err := sess.BuildPart(func(*build.Builder) error {
		_, err := sess.BuildSketch(func(*build.Builder) error {
			_, err := primitives.Circle(sess, 3)
			return err
		})
		return err
	})
	require.NoError(t, err)

	assert.Nil(t, part.Result())
	faces := part.PendingFaces()
	require.Len(t, faces, 1)
	assert.InDelta(t, math.Pi*9, faces[0].Area(), 1e-9)
	require.Len(t, part.PendingLocations(), 1)
	assert.True(t, part.PendingLocations()[0].IsClose(geom.IdentityLocation, 1e-9))
}

func TestSketchFacesFollowWorkplanes(t *testing.T) {
	sess := newSession()

	part, err := sess.BuildPart(func(*build.Builder) error {
		return sess.Locations([]geom.Location{geom.NewLocation(geom.Vec(5, 0, 0))}, func() error {
			sketch, err := sess.BuildSketch(func(*build.Builder) error {
				_, err := primitives.Rectangle(sess, 2, 2)
				return err
			})
			if err != nil {
				return err
			}
			// The sketch itself is built in local coordinates.
			assert.True(t, sketch.Result().Center().IsClose(geom.Vec(0, 0, 0), 1e-9))
			return nil
		})
	})
	require.NoError(t, err)

	faces := part.PendingFaces()
	require.Len(t, faces, 1)
	assert.True(t, faces[0].Center().IsClose(geom.Vec(5, 0, 0), 1e-9))
}

func TestSketchExplicitWorkplanes(t *testing.T) {
	sess := newSession()

	part, err := sess.BuildPart(func(*build.Builder) error {
		_, err := sess.BuildSketch(func(s *build.Builder) error {
			assert.Len(t, s.Workplanes(), 2)
			_, err := primitives.Circle(sess, 1)
			return err
		}, build.WithWorkplanes(geom.PlaneXY, geom.PlaneXY.Offset(5)))
		return err
	})
	require.NoError(t, err)

	faces := part.PendingFaces()
	require.Len(t, faces, 2)
	assert.InDelta(t, 0, faces[0].Center().Z, 1e-9)
	assert.InDelta(t, 5, faces[1].Center().Z, 1e-9)
	assert.InDelta(t, 5, part.PendingLocations()[1].Position.Z, 1e-9)
}

func TestLineInPartQueuesEdges(t *testing.T) {
	sess := newSession()

	part, err := sess.BuildPart(func(*build.Builder) error {
		_, err := sess.BuildLine(func(*build.Builder) error {
			_, err := primitives.Polyline(sess, []geom.Vector{
				geom.Vec(0, 0, 0), geom.Vec(10, 0, 0), geom.Vec(10, 10, 0),
			})
			return err
		})
		return err
	})
	require.NoError(t, err)
	assert.Len(t, part.PendingEdges(), 2)
	assert.Nil(t, part.Result())
}

func TestSameVariantChildCombinesWithItsMode(t *testing.T) {
	sess := newSession()

	part, err := sess.BuildPart(func(*build.Builder) error {
		if _, err := primitives.Box(sess, 10, 10, 10); err != nil {
			return err
		}
		_, err := sess.BuildPart(func(*build.Builder) error {
			_, err := primitives.Box(sess, 2, 2, 2)
			return err
		}, build.WithMode(build.ModeSubtract))
		return err
	})
	require.NoError(t, err)
	assert.InDelta(t, 992, part.Result().Volume(), 1e-9)

	sketch, err := sess.BuildSketch(func(*build.Builder) error {
		if _, err := primitives.Rectangle(sess, 10, 10); err != nil {
			return err
		}
		_, err := sess.BuildSketch(func(*build.Builder) error {
			_, err := primitives.Circle(sess, 1)
			return err
		}, build.WithMode(build.ModeSubtract))
		return err
	})
	require.NoError(t, err)
	assert.InDelta(t, 100-math.Pi, sketch.Result().Area(), 1e-9)
}

func TestPrivateChildDoesNotFold(t *testing.T) {
	sess := newSession()

	var inner *build.Builder
	part, err := sess.BuildPart(func(*build.Builder) error {
		if _, err := primitives.Box(sess, 10, 10, 10); err != nil {
			return err
		}
		var err error
		inner, err = sess.BuildPart(func(*build.Builder) error {
			_, err := primitives.Box(sess, 2, 2, 2)
			return err
		}, build.WithMode(build.ModePrivate))
		if err != nil {
			return err
		}
		_, err = sess.BuildSketch(func(*build.Builder) error {
			_, err := primitives.Circle(sess, 1)
			return err
		}, build.WithMode(build.ModePrivate))
		return err
	})
	require.NoError(t, err)

	assert.InDelta(t, 1000, part.Result().Volume(), 1e-9)
	assert.Empty(t, part.PendingFaces())
	require.NotNil(t, inner.Result())
	assert.InDelta(t, 8, inner.Result().Volume(), 1e-9)
}

func TestSubtractOnUndefinedResultAborts(t *testing.T) {
	rec := newRecordingRecorder()
	sess := newSession(build.WithRecorder(rec))

	part, err := sess.BuildPart(func(*build.Builder) error {
		_, err := primitives.Sphere(sess, 10, primitives.WithMode(build.ModeSubtract))
		return err
	})
	assert.Nil(t, part)
	require.ErrorIs(t, err, build.ErrNothingToSubtract)
	assert.Equal(t, ferrors.CategoryCombination, ferrors.GetCategory(err))
	assert.Equal(t, 0, sess.Depth())

	assert.Equal(t, 1, rec.outcomes["part/aborted"])
	assert.Equal(t, 1, rec.errors["combination"])
	assert.Equal(t, 1, rec.combinations["part/subtract/failed"])
}

func TestBoxMinusSphere(t *testing.T) {
	sess := newSession()

	part, err := sess.BuildPart(func(*build.Builder) error {
		if _, err := primitives.Box(sess, 10, 10, 10); err != nil {
			return err
		}
		_, err := primitives.Sphere(sess, 10, primitives.WithMode(build.ModeSubtract))
		return err
	})
	require.NoError(t, err)
	assert.InDelta(t, 1000-4.0/3.0*math.Pi*1000, part.Result().Volume(), 1e-3)
}

func TestInvalidBuilderMode(t *testing.T) {
	sess := newSession()
	called := false
	_, err := sess.BuildPart(func(*build.Builder) error {
		called = true
		return nil
	}, build.WithMode(build.Mode(42)))
	require.ErrorIs(t, err, build.ErrInvalidParameter)
	assert.False(t, called)
	assert.Equal(t, 0, sess.Depth())
}

func TestNestedBuilderForwardsPendingQueues(t *testing.T) {
	sess := newSession()

	outer, err := sess.BuildPart(func(*build.Builder) error {
		inner, err := sess.BuildPart(func(*build.Builder) error {
			if _, err := sess.BuildSketch(func(*build.Builder) error {
				_, err := primitives.Circle(sess, 3)
				return err
			}); err != nil {
				return err
			}
			_, err := sess.BuildLine(func(*build.Builder) error {
				_, err := primitives.Polyline(sess, []geom.Vector{
					geom.Vec(0, 0, 0), geom.Vec(4, 0, 0), geom.Vec(4, 4, 0),
				})
				return err
			})
			return err
		})
		if err != nil {
			return err
		}
		assert.Nil(t, inner.Result())
		assert.Len(t, inner.PendingFaces(), 1)
		return nil
	})
	require.NoError(t, err)

	assert.Nil(t, outer.Result())
	faces := outer.PendingFaces()
	require.Len(t, faces, 1)
	assert.InDelta(t, math.Pi*9, faces[0].Area(), 1e-9)
	assert.Len(t, outer.PendingLocations(), 1)
	assert.Len(t, outer.PendingEdges(), 2)
}

func TestPrivateChildKeepsPendingQueues(t *testing.T) {
	sess := newSession()

	outer, err := sess.BuildPart(func(*build.Builder) error {
		_, err := sess.BuildPart(func(*build.Builder) error {
			_, err := sess.BuildSketch(func(*build.Builder) error {
				_, err := primitives.Circle(sess, 1)
				return err
			})
			return err
		}, build.WithMode(build.ModePrivate))
		return err
	})
	require.NoError(t, err)
	assert.Empty(t, outer.PendingFaces())
}

func TestNestedSketchFollowsEnclosingLocations(t *testing.T) {
	sess := newSession()

	sketch, err := sess.BuildSketch(func(*build.Builder) error {
		return sess.Locations([]geom.Location{geom.NewLocation(geom.Vec(5, 0, 0))}, func() error {
			_, err := sess.BuildSketch(func(*build.Builder) error {
				_, err := primitives.Circle(sess, 1)
				return err
			})
			return err
		})
	})
	require.NoError(t, err)
	require.NotNil(t, sketch.Result())
	assert.InDelta(t, math.Pi, sketch.Result().Area(), 1e-9)
	assert.True(t, sketch.Result().Center().IsClose(geom.Vec(5, 0, 0), 1e-9))
}

func TestNestedSketchPlacementUsesSessionTolerance(t *testing.T) {
	offset := []geom.Location{geom.NewLocation(geom.Vec(1e-4, 0, 0))}
	nested := func(sess *build.Session) *build.Builder {
		sketch, err := sess.BuildSketch(func(*build.Builder) error {
			return sess.Locations(offset, func() error {
				_, err := sess.BuildSketch(func(*build.Builder) error {
					_, err := primitives.Circle(sess, 1)
					return err
				})
				return err
			})
		})
		require.NoError(t, err)
		return sketch
	}

	coarse := nested(newSession(build.WithTolerance(1e-3)))
	assert.InDelta(t, 0, coarse.Result().Center().X, 1e-12)

	fine := nested(newSession())
	assert.InDelta(t, 1e-4, fine.Result().Center().X, 1e-12)
}
