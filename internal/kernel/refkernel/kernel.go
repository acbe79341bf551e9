package refkernel

import (
	"errors"
	"fmt"

	"git.home.luguber.info/inful/partbuilder/internal/geom"
	"git.home.luguber.info/inful/partbuilder/internal/kernel"
	"github.com/google/uuid"
)

// ErrInvalidInput is wrapped by every error the reference kernel reports.
var ErrInvalidInput = errors.New("refkernel: invalid input")

// Kernel is the reference kernel. It is stateless apart from its options and
// safe for concurrent use.
type Kernel struct {
	tolerance float64
	newID     func() string
}

var _ kernel.Kernel = (*Kernel)(nil)

// Option configures a Kernel.
type Option func(*Kernel)

// WithTolerance sets the distance under which points are considered equal.
func WithTolerance(tol float64) Option {
	return func(k *Kernel) {
		if tol > 0 {
			k.tolerance = tol
		}
	}
}

// WithIDGenerator replaces the uuid-based ID source.
func WithIDGenerator(fn func() string) Option {
	return func(k *Kernel) {
		if fn != nil {
			k.newID = fn
		}
	}
}

// New returns a reference kernel.
func New(opts ...Option) *Kernel {
	k := &Kernel{tolerance: geom.DefaultTolerance, newID: uuid.NewString}
	for _, opt := range opts {
		opt(k)
	}
	return k
}

// Tolerance returns the configured point tolerance.
func (k *Kernel) Tolerance() float64 { return k.tolerance }

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// own converts a foreign kernel.Shape into *Shape.
func own(s kernel.Shape, role string) (*Shape, error) {
	if s == nil {
		return nil, invalid("%s is nil", role)
	}
	rs, ok := s.(*Shape)
	if !ok {
		return nil, invalid("%s of type %T was not produced by refkernel", role, s)
	}
	return rs, nil
}

func ownAll(in []kernel.Shape, role string) ([]*Shape, error) {
	out := make([]*Shape, 0, len(in))
	for i, s := range in {
		rs, err := own(s, fmt.Sprintf("%s[%d]", role, i))
		if err != nil {
			return nil, err
		}
		out = append(out, rs)
	}
	return out, nil
}
