package inmemory

import (
	"sync"

	"forestguardian/internal/domain/guardian"
)

type Snapshot struct {
	DecisionTotal  uint64            `json:"decision_total"`
	BySource       map[string]uint64 `json:"by_source"`
	PolicyFailures uint64            `json:"policy_failures"`
	EpisodesEnded  uint64            `json:"episodes_ended"`
	ByOutcome      map[string]uint64 `json:"by_outcome"`
}

// Recorder is the in-memory KPI recorder behind /ops/kpi.
type Recorder struct {
	mu             sync.Mutex
	bySource       map[string]uint64
	policyFailures uint64
	byOutcome      map[string]uint64
}

func NewRecorder() *Recorder {
	return &Recorder{
		bySource:  map[string]uint64{},
		byOutcome: map[string]uint64{},
	}
}

func (r *Recorder) RecordDecision(source guardian.Source) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bySource[string(source)]++
}

func (r *Recorder) RecordPolicyFailure() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.policyFailures++
}

func (r *Recorder) RecordOutcome(status string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byOutcome[status]++
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Snapshot{
		PolicyFailures: r.policyFailures,
		BySource:       make(map[string]uint64, len(r.bySource)),
		ByOutcome:      make(map[string]uint64, len(r.byOutcome)),
	}
	for k, v := range r.bySource {
		out.BySource[k] = v
		out.DecisionTotal += v
	}
	for k, v := range r.byOutcome {
		out.ByOutcome[k] = v
		out.EpisodesEnded += v
	}
	return out
}

// SnapshotAny satisfies the HTTP layer's provider interface without the
// handler importing this package's Snapshot type.
func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}
