// Package errors provides foundational, type-safe error primitives used across partbuilder.
//
// This package contains classified error types and helpers for robust error handling,
// including a fluent builder API for constructing ClassifiedError values with context.
//
// Key features:
//   - ErrorCategory: Broad error classification (context, combination, location, ...)
//   - ErrorSeverity: Impact level (fatal, error, warning, info)
//   - ClassifiedError: Structured error with category, severity, and context
//   - ErrorBuilder: Fluent API for creating classified errors
//
// Sentinels are ClassifiedError values; errors derived from them with From or
// WithContext keep matching under errors.Is because equality is by category
// and message.
//
// Example usage:
//
//	err := errors.From(ErrInvalidParameter).
//		WithContext("operation", "GridLocations").
//		WithContext("parameter", "x_count").
//		WithContext("value", 0).
//		Build()
package errors
