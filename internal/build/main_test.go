package build_test

import (
	"io"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"

	"git.home.luguber.info/inful/partbuilder/internal/build"
	"git.home.luguber.info/inful/partbuilder/internal/kernel/refkernel"
	"git.home.luguber.info/inful/partbuilder/internal/metrics"
	"git.home.luguber.info/inful/partbuilder/internal/observability"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newSession(opts ...build.Option) *build.Session {
	base := []build.Option{build.WithLogger(observability.NewLogger("error", "text", io.Discard))}
	return build.NewSession(refkernel.New(), append(base, opts...)...)
}

// recordingRecorder keeps every observation for assertions.
type recordingRecorder struct {
	mu           sync.Mutex
	combinations map[string]int
	outcomes     map[string]int
	errors       map[string]int
	pending      map[string]int
	depths       []int
}

func newRecordingRecorder() *recordingRecorder {
	return &recordingRecorder{
		combinations: map[string]int{},
		outcomes:     map[string]int{},
		errors:       map[string]int{},
		pending:      map[string]int{},
	}
}

func (r *recordingRecorder) IncCombination(variant, mode string, result metrics.ResultLabel) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.combinations[variant+"/"+mode+"/"+string(result)]++
}

func (r *recordingRecorder) ObserveBuilderLifetime(variant string, outcome metrics.OutcomeLabel, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes[variant+"/"+string(outcome)]++
}

func (r *recordingRecorder) IncError(category string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors[category]++
}

func (r *recordingRecorder) SetLocationDepth(n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.depths = append(r.depths, n)
}

func (r *recordingRecorder) AddPending(kind string, n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pending[kind] += n
}
