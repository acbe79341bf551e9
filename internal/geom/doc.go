// Package geom provides the coordinate value types used to position primitives:
// vectors, axes, rotation matrices, locations, planes and axis-aligned bounding boxes.
//
// All types are immutable values. Methods return new values and never modify
// their receivers, so they can be shared freely between builders and sessions.
//
// A [Plane] is a coordinate frame (origin plus orthonormal X/Y/Z directions). Its
// [Plane.Location] maps local coordinates into global space. A [Location] is a
// rigid transform (rotation followed by translation); locations compose with
// [Location.Mul], where a.Mul(b) applies b first and then a.
package geom
