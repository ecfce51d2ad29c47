package inmemory

import (
	"testing"

	"forestguardian/internal/domain/guardian"
)

func TestRecorder_SnapshotTotals(t *testing.T) {
	r := NewRecorder()
	r.RecordDecision(guardian.SourceOperario)
	r.RecordDecision(guardian.SourceOperario)
	r.RecordDecision(guardian.SourceNavegador)
	r.RecordPolicyFailure()
	r.RecordOutcome("terminated_success")
	r.RecordOutcome("terminated_success")
	r.RecordOutcome("truncated")

	snap := r.Snapshot()
	if snap.DecisionTotal != 3 {
		t.Fatalf("expected 3 decisions, got %d", snap.DecisionTotal)
	}
	if snap.BySource[string(guardian.SourceOperario)] != 2 {
		t.Fatalf("expected 2 operario decisions, got %d", snap.BySource[string(guardian.SourceOperario)])
	}
	if snap.BySource[string(guardian.SourceNavegador)] != 1 {
		t.Fatalf("expected 1 navegador decision, got %d", snap.BySource[string(guardian.SourceNavegador)])
	}
	if snap.PolicyFailures != 1 {
		t.Fatalf("expected 1 policy failure, got %d", snap.PolicyFailures)
	}
	if snap.EpisodesEnded != 3 || snap.ByOutcome["terminated_success"] != 2 {
		t.Fatalf("outcome tallies wrong: %+v", snap)
	}
}

func TestRecorder_SnapshotIsDetached(t *testing.T) {
	r := NewRecorder()
	r.RecordDecision(guardian.SourceOperario)

	snap := r.Snapshot()
	snap.BySource[string(guardian.SourceOperario)] = 99

	if r.Snapshot().BySource[string(guardian.SourceOperario)] != 1 {
		t.Fatalf("snapshot should not alias internal maps")
	}
}

func TestRecorder_EmptySnapshot(t *testing.T) {
	snap := NewRecorder().Snapshot()
	if snap.DecisionTotal != 0 || snap.EpisodesEnded != 0 || snap.PolicyFailures != 0 {
		t.Fatalf("fresh recorder should be zeroed: %+v", snap)
	}
}
