package build_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/partbuilder/internal/build"
	"git.home.luguber.info/inful/partbuilder/internal/geom"
	"git.home.luguber.info/inful/partbuilder/internal/kernel"
	"git.home.luguber.info/inful/partbuilder/internal/selection"
)

// inPart runs fn inside a part builder and fails the test on error.
func inPart(t *testing.T, sess *build.Session, fn func(p *build.Builder)) *build.Builder {
	t.Helper()
	part, err := sess.BuildPart(func(p *build.Builder) error {
		fn(p)
		return nil
	})
	require.NoError(t, err)
	return part
}

// shapeMust returns a helper unwrapping kernel results.
func shapeMust(t *testing.T) func(kernel.Shape, error) kernel.Shape {
	return func(s kernel.Shape, err error) kernel.Shape {
		t.Helper()
		require.NoError(t, err)
		return s
	}
}

func TestCombineAddStartsFromFirstShape(t *testing.T) {
	sess := newSession()
	k := sess.Kernel()
	must := shapeMust(t)

	inPart(t, sess, func(p *build.Builder) {
		a := must(k.Box(2, 2, 2))
		out, err := p.Combine(build.ModeAdd, a)
		require.NoError(t, err)
		assert.Equal(t, []kernel.Shape{a}, out)
		assert.Equal(t, a.ID(), p.Result().ID())
		assert.Len(t, p.Edges(selection.Last), 12)
		assert.Len(t, p.Faces(selection.Last), 6)
		assert.Len(t, p.Vertices(selection.Last), 8)
	})
}

func TestCombineAddThenSubtractRestoresMeasure(t *testing.T) {
	sess := newSession()
	k := sess.Kernel()
	must := shapeMust(t)

	inPart(t, sess, func(p *build.Builder) {
		_, err := p.Combine(build.ModeAdd, must(k.Box(10, 10, 10)))
		require.NoError(t, err)
		before := kernel.Measure(p.Result())

		g := must(k.Box(2, 2, 2))
		_, err = p.Combine(build.ModeAdd, g)
		require.NoError(t, err)
		assert.InDelta(t, before+8, kernel.Measure(p.Result()), 1e-9)

		_, err = p.Combine(build.ModeSubtract, g)
		require.NoError(t, err)
		assert.InDelta(t, before, kernel.Measure(p.Result()), 1e-9)
	})
}

func TestCombineLastEdgesAreNew(t *testing.T) {
	sess := newSession()
	k := sess.Kernel()
	must := shapeMust(t)

	inPart(t, sess, func(p *build.Builder) {
		_, err := p.Combine(build.ModeAdd, must(k.Box(1, 1, 1)))
		require.NoError(t, err)
		pre := p.Edges(selection.All).IDs()

		far := must(k.Move(must(k.Box(1, 1, 1)), geom.NewLocation(geom.Vec(10, 0, 0))))
		_, err = p.Combine(build.ModeAdd, far)
		require.NoError(t, err)

		last := p.Edges(selection.Last)
		require.Len(t, last, len(far.Edges()))
		for _, e := range last {
			assert.False(t, pre.Has(e.ID()), "edge %s existed before the combination", e.ID())
		}
		assert.Len(t, p.Edges(selection.All), 24)
	})
}

func TestCombineReplace(t *testing.T) {
	sess := newSession()
	k := sess.Kernel()
	must := shapeMust(t)

	inPart(t, sess, func(p *build.Builder) {
		_, err := p.Combine(build.ModeAdd, must(k.Box(10, 10, 10)))
		require.NoError(t, err)

		g := must(k.Cylinder(1, 2))
		_, err = p.Combine(build.ModeReplace, g)
		require.NoError(t, err)
		assert.Equal(t, g.ID(), p.Result().ID())
		assert.InDelta(t, g.Volume(), p.Result().Volume(), 1e-12)
	})
}

func TestCombineIntersect(t *testing.T) {
	sess := newSession()
	k := sess.Kernel()

	t.Run("overlapping", func(t *testing.T) {
		must := shapeMust(t)
		inPart(t, sess, func(p *build.Builder) {
			_, err := p.Combine(build.ModeAdd, must(k.Box(10, 10, 10)))
			require.NoError(t, err)
			_, err = p.Combine(build.ModeIntersect, must(k.Box(2, 2, 2)))
			require.NoError(t, err)
			assert.InDelta(t, 8, p.Result().Volume(), 1e-9)
		})
	})

	t.Run("disjoint gives an empty result", func(t *testing.T) {
		must := shapeMust(t)
		inPart(t, sess, func(p *build.Builder) {
			_, err := p.Combine(build.ModeAdd, must(k.Box(1, 1, 1)))
			require.NoError(t, err)
			far := must(k.Move(must(k.Box(1, 1, 1)), geom.NewLocation(geom.Vec(50, 0, 0))))
			_, err = p.Combine(build.ModeIntersect, far)
			require.NoError(t, err)
			assert.Equal(t, kernel.KindCompound, p.Result().Kind())
			assert.Zero(t, p.Result().Volume())
			assert.Empty(t, p.Edges(selection.Last))
		})
	})

	t.Run("undefined result", func(t *testing.T) {
		must := shapeMust(t)
		inPart(t, sess, func(p *build.Builder) {
			_, err := p.Combine(build.ModeIntersect, must(k.Box(1, 1, 1)))
			require.ErrorIs(t, err, build.ErrNothingToIntersect)
			assert.Nil(t, p.Result())
		})
	})
}

func TestCombinePrivateLeavesResult(t *testing.T) {
	sess := newSession()
	k := sess.Kernel()
	must := shapeMust(t)

	inPart(t, sess, func(p *build.Builder) {
		_, err := p.Combine(build.ModeAdd, must(k.Box(1, 1, 1)))
		require.NoError(t, err)
		id := p.Result().ID()
		last := p.Edges(selection.Last)

		g := must(k.Sphere(3))
		out, err := p.Combine(build.ModePrivate, g)
		require.NoError(t, err)
		assert.Equal(t, []kernel.Shape{g}, out)
		assert.Equal(t, id, p.Result().ID())
		assert.Equal(t, last.IDs(), p.Edges(selection.Last).IDs())
	})
}

func TestCombineRejectsWrongDimension(t *testing.T) {
	sess := newSession()
	k := sess.Kernel()
	must := shapeMust(t)

	inPart(t, sess, func(p *build.Builder) {
		_, err := p.Combine(build.ModeAdd, must(k.Circle(1)))
		require.ErrorIs(t, err, build.ErrInvalidResult)
		assert.Nil(t, p.Result())

		_, err = p.Combine(build.ModeAdd)
		require.ErrorIs(t, err, build.ErrInvalidOperation)

		_, err = p.Combine(build.ModeAdd, nil)
		require.ErrorIs(t, err, build.ErrInvalidOperation)
	})

	_, err := sess.BuildSketch(func(s *build.Builder) error {
		_, err := s.Combine(build.ModeAdd, must(k.Box(1, 1, 1)))
		assert.ErrorIs(t, err, build.ErrInvalidResult)
		return nil
	})
	require.NoError(t, err)
}

func TestFailedCombinationKeepsState(t *testing.T) {
	rec := newRecordingRecorder()
	sess := newSession(build.WithRecorder(rec))
	k := sess.Kernel()
	must := shapeMust(t)

	inPart(t, sess, func(p *build.Builder) {
		_, err := p.Combine(build.ModeAdd, must(k.Box(1, 1, 1)))
		require.NoError(t, err)
		id := p.Result().ID()
		last := p.Faces(selection.Last).IDs()

		// A line cannot join a part.
		_, err = p.Combine(build.ModeSubtract, must(k.Line(geom.Vec(0, 0, 0), geom.Vec(1, 0, 0))))
		require.Error(t, err)
		assert.Equal(t, id, p.Result().ID())
		assert.Equal(t, last, p.Faces(selection.Last).IDs())
	})
	assert.Equal(t, 1, rec.combinations["part/add/success"])
}

func TestAddToPending(t *testing.T) {
	sess := newSession()
	k := sess.Kernel()
	must := shapeMust(t)

	inPart(t, sess, func(p *build.Builder) {
		box := must(k.Box(2, 2, 2))
		require.NoError(t, p.AddToPending(build.PendingFace, box))
		assert.Len(t, p.PendingFaces(), 6)
		assert.Len(t, p.PendingLocations(), 6)
		for i, f := range p.PendingFaces() {
			assert.True(t, p.PendingLocations()[i].Position.IsClose(f.Center(), 1e-9))
		}

		line := must(k.Line(geom.Vec(0, 0, 0), geom.Vec(1, 0, 0)))
		require.NoError(t, p.AddToPending(build.PendingEdge, line))
		assert.Len(t, p.PendingEdges(), 1)

		err := p.AddToPending(build.PendingEdge, box)
		require.ErrorIs(t, err, build.ErrInvalidOperation)
		err = p.AddToPending(build.PendingFace)
		require.ErrorIs(t, err, build.ErrInvalidOperation)
		err = p.AddToPending(build.PendingKind(9), line)
		require.ErrorIs(t, err, build.ErrInvalidParameter)
	})
}

func TestUsePendingClearsOnlyOnSuccess(t *testing.T) {
	sess := newSession()
	k := sess.Kernel()
	must := shapeMust(t)

	inPart(t, sess, func(p *build.Builder) {
		err := p.UsePendingFaces("Extrude", func([]kernel.Shape, []geom.Location) error { return nil })
		require.ErrorIs(t, err, build.ErrInvalidOperation)
		assert.Contains(t, err.Error(), "Extrude")

		require.NoError(t, p.AddToPending(build.PendingFace, must(k.Circle(1))))

		err = p.UsePendingFaces("Extrude", func([]kernel.Shape, []geom.Location) error {
			return build.InvalidOperation("Extrude", "refused")
		})
		require.Error(t, err)
		assert.Len(t, p.PendingFaces(), 1)

		var seen int
		err = p.UsePendingFaces("Extrude", func(faces []kernel.Shape, locs []geom.Location) error {
			seen = len(faces)
			assert.Len(t, locs, len(faces))
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 1, seen)
		assert.Empty(t, p.PendingFaces())
		assert.Empty(t, p.PendingLocations())

		require.NoError(t, p.AddToPending(build.PendingEdge, must(k.Line(geom.Vec(0, 0, 0), geom.Vec(0, 0, 5)))))
		err = p.UsePendingEdges("Sweep", func(edges []kernel.Shape) error {
			assert.Len(t, edges, 1)
			return nil
		})
		require.NoError(t, err)
		assert.Empty(t, p.PendingEdges())
	})
}
