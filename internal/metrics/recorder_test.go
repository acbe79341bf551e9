package metrics

import (
	"testing"
	"time"
)

func TestNoopRecorderSatisfiesInterface(t *testing.T) {
	var r Recorder = NoopRecorder{}
	r.IncCombination("part", "add", ResultSuccess)
	r.ObserveBuilderLifetime("part", OutcomeCompleted, time.Millisecond)
	r.IncError("context")
	r.SetLocationDepth(2)
	r.AddPending("face", 1)
}

func TestNilPrometheusRecorderIsSafe(t *testing.T) {
	var p *PrometheusRecorder
	p.IncCombination("part", "add", ResultSuccess)
	p.ObserveBuilderLifetime("part", OutcomeAborted, time.Millisecond)
	p.IncError("context")
	p.SetLocationDepth(1)
	p.AddPending("edge", 3)
}
