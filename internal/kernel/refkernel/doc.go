// Package refkernel is an in-memory reference implementation of kernel.Kernel.
//
// It tracks topology exactly (every vertex, edge and face has a stable ID and
// sub-elements are shared between results) but computes measures with a
// containment model rather than real B-rep booleans:
//
//   - Union adds the measures of both operands.
//   - Difference subtracts the tool's measure when the bounding boxes overlap,
//     so a tool larger than the target yields a negative volume, as OCCT can.
//   - Intersection keeps the smaller operand, or returns an empty compound when
//     the bounding boxes are disjoint.
//
// Fillets, chamfers, extrusions, revolutions, sweeps and lofts use closed-form
// formulas. The package exists to exercise the builder engine without a native
// kernel and is not meant for manufacturing-grade geometry.
package refkernel
