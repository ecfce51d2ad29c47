package memory

import (
	"context"
	"errors"
	"testing"

	"forestguardian/internal/app/ports"
	"forestguardian/internal/domain/guardian"
)

func TestEpisodeRepo_SaveAndGet(t *testing.T) {
	repo := NewEpisodeRepo(NewStore())
	ctx := context.Background()

	summary := ports.MissionSummary{EpisodeID: "ep-1", Status: "terminated_success", Steps: 12, TotalReward: 61.5}
	if err := repo.SaveSummary(ctx, summary); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := repo.GetByEpisodeID(ctx, "ep-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Steps != 12 || got.Status != "terminated_success" {
		t.Fatalf("unexpected summary: %+v", got)
	}

	// Overwrite keeps the latest run.
	summary.Steps = 20
	if err := repo.SaveSummary(ctx, summary); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err = repo.GetByEpisodeID(ctx, "ep-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Steps != 20 {
		t.Fatalf("expected overwritten summary, got %+v", got)
	}

	if _, err := repo.GetByEpisodeID(ctx, "missing"); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDecisionEventRepo_AppendAndList(t *testing.T) {
	store := NewStore()
	repo := NewDecisionEventRepo(store)
	ctx := context.Background()

	batch1 := []guardian.DecisionRecord{
		{Step: 1, AgentID: 0, ActionCode: 6, Source: "operario"},
		{Step: 1, AgentID: 1, ActionCode: 0, Source: "navegador"},
	}
	batch2 := []guardian.DecisionRecord{
		{Step: 2, AgentID: 0, ActionCode: 5, Source: "operario"},
	}
	if err := repo.Append(ctx, "ep-1", batch1); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := repo.Append(ctx, "ep-1", batch2); err != nil {
		t.Fatalf("append: %v", err)
	}

	events, err := repo.ListByEpisodeID(ctx, "ep-1", 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
	if events[0].Step != 1 || events[2].Step != 2 {
		t.Fatalf("events out of order: %+v", events)
	}

	tail, err := repo.ListByEpisodeID(ctx, "ep-1", 2)
	if err != nil {
		t.Fatalf("list with limit: %v", err)
	}
	if len(tail) != 2 || tail[1].ActionCode != 5 {
		t.Fatalf("limit should return the newest events, got %+v", tail)
	}

	if _, err := repo.ListByEpisodeID(ctx, "missing", 0); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDecisionEventRepo_ListCopiesSlice(t *testing.T) {
	repo := NewDecisionEventRepo(NewStore())
	ctx := context.Background()

	if err := repo.Append(ctx, "ep-1", []guardian.DecisionRecord{{Step: 1, ActionCode: 6}}); err != nil {
		t.Fatalf("append: %v", err)
	}
	events, err := repo.ListByEpisodeID(ctx, "ep-1", 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	events[0].ActionCode = 99

	again, err := repo.ListByEpisodeID(ctx, "ep-1", 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if again[0].ActionCode != 6 {
		t.Fatalf("list should return a copy, stored event was mutated")
	}
}

func TestTxManager_RunsFunction(t *testing.T) {
	called := false
	err := TxManager{}.RunInTx(context.Background(), func(context.Context) error {
		called = true
		return nil
	})
	if err != nil || !called {
		t.Fatalf("expected function to run, called=%v err=%v", called, err)
	}

	want := errors.New("boom")
	if err := (TxManager{}).RunInTx(context.Background(), func(context.Context) error { return want }); !errors.Is(err, want) {
		t.Fatalf("expected error passthrough, got %v", err)
	}
}
