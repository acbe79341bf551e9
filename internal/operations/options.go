// Package operations holds the generic operations. Each resolves the current
// builder and dispatches on its variant; a variant an operation does not
// support is an error naming both.
package operations

import (
	"git.home.luguber.info/inful/partbuilder/internal/build"
	"git.home.luguber.info/inful/partbuilder/internal/geom"
	"git.home.luguber.info/inful/partbuilder/internal/kernel"
)

// Option configures an operation.
type Option func(*options)

type options struct {
	mode     build.Mode
	rotation geom.Location
}

// WithMode sets the combination mode. The default is build.ModeAdd.
func WithMode(m build.Mode) Option {
	return func(o *options) { o.mode = m }
}

// WithRotation rotates added objects about their local X, Y then Z axes, in
// degrees, before they are placed.
func WithRotation(x, y, z float64) Option {
	return func(o *options) { o.rotation = geom.Rotated(x, y, z) }
}

func resolve(opts []Option) options {
	o := options{mode: build.ModeAdd, rotation: geom.IdentityLocation}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// operands rejects an empty or nil-containing operand list.
func operands(op string, objs []kernel.Shape) error {
	if len(objs) == 0 {
		return build.InvalidOperation(op, "no objects given")
	}
	for _, o := range objs {
		if o == nil {
			return build.InvalidOperation(op, "nil object")
		}
	}
	return nil
}

func requireResult(op string, b *build.Builder) (kernel.Shape, error) {
	r := b.Result()
	if r == nil {
		return nil, build.InvalidOperation(op, b.Variant().String()+" builder has no result yet")
	}
	return r, nil
}
