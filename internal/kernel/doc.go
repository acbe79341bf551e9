// Package kernel defines the narrow capability interface through which the
// builder engine talks to a geometry kernel (B-rep booleans, fillets, sweeps).
//
// The engine never inspects kernel internals. It relies on three guarantees:
//
//   - Every operation is pure: inputs are never mutated and a new Shape is returned.
//   - Sub-elements keep their ID across operations that do not touch them, so
//     "what changed" can be computed as a set difference of IDs.
//   - Failures are reported as ordinary errors; callers return them unchanged.
//
// The reference implementation used by tests lives in package refkernel.
package kernel
