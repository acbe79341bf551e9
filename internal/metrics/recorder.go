package metrics

import "time"

// ResultLabel enumerates combination result categories for counters.
type ResultLabel string

const (
	ResultSuccess ResultLabel = "success"
	ResultFailed  ResultLabel = "failed"
)

// OutcomeLabel enumerates how a builder scope ended.
type OutcomeLabel string

const (
	OutcomeCompleted OutcomeLabel = "completed"
	OutcomeAborted   OutcomeLabel = "aborted"
)

// Recorder defines observability hooks for builder scopes and combinations.
// Implementations may forward to Prometheus or collect in memory.
type Recorder interface {
	IncCombination(variant, mode string, result ResultLabel)
	ObserveBuilderLifetime(variant string, outcome OutcomeLabel, d time.Duration)
	IncError(category string)
	SetLocationDepth(n int)
	AddPending(kind string, n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) IncCombination(string, string, ResultLabel)                   {}
func (NoopRecorder) ObserveBuilderLifetime(string, OutcomeLabel, time.Duration) {}
func (NoopRecorder) IncError(string)                                            {}
func (NoopRecorder) SetLocationDepth(int)                                       {}
func (NoopRecorder) AddPending(string, int)                                     {}
