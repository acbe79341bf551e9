// Package locate generates the point sets used by location scopes: explicit
// points, rectangular grids, polar arrays and hexagonal arrays. Generators are
// pure and validate their parameters before producing anything.
package locate
