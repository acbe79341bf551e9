// Package metrics provides the observability hooks for construction sessions.
//
// # Design Philosophy
//
// This package implements the Null Object pattern to enable metrics collection
// without requiring explicit nil checks throughout the codebase. By default,
// sessions use NoopRecorder which implements the Recorder interface with
// no-op methods.
//
// # Usage Pattern
//
// Sessions receive a Recorder through an option:
//
//	reg := prometheus.NewRegistry()
//	rec := metrics.NewPrometheusRecorder(reg, "partbuilder")
//	sess := build.NewSession(k, build.WithRecorder(rec))
//
// The caller owns the registry and decides how it is exposed.
package metrics
