package replay

import (
	"context"
	"errors"
	"testing"

	"forestguardian/internal/app/ports"
	"forestguardian/internal/domain/guardian"
)

type fakeEventRepo struct {
	events map[string][]guardian.DecisionRecord
}

func (r fakeEventRepo) Append(_ context.Context, episodeID string, events []guardian.DecisionRecord) error {
	r.events[episodeID] = append(r.events[episodeID], events...)
	return nil
}

func (r fakeEventRepo) ListByEpisodeID(_ context.Context, episodeID string, limit int) ([]guardian.DecisionRecord, error) {
	out, ok := r.events[episodeID]
	if !ok {
		return nil, ports.ErrNotFound
	}
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

func TestReplay_TalliesDecisionSources(t *testing.T) {
	repo := fakeEventRepo{events: map[string][]guardian.DecisionRecord{}}
	seed := []guardian.DecisionRecord{
		{Step: 1, AgentID: 0, ActionCode: 5, Source: string(guardian.SourceOperario), Reason: "suppressing adjacent fire"},
		{Step: 1, AgentID: 1, ActionCode: 0, Source: string(guardian.SourceNavegador), Reason: "policy decision"},
		{Step: 2, AgentID: 0, ActionCode: 6, Source: string(guardian.SourceOperario), Reason: "recharging at river"},
	}
	if err := repo.Append(context.Background(), "ep-1", seed); err != nil {
		t.Fatalf("append: %v", err)
	}

	out, err := UseCase{Events: repo}.Execute(context.Background(), Request{EpisodeID: "ep-1"})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(out.Events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(out.Events))
	}
	if out.BySource[string(guardian.SourceOperario)] != 2 {
		t.Fatalf("expected 2 operario decisions, got %d", out.BySource[string(guardian.SourceOperario)])
	}
	if out.BySource[string(guardian.SourceNavegador)] != 1 {
		t.Fatalf("expected 1 navegador decision, got %d", out.BySource[string(guardian.SourceNavegador)])
	}
}

func TestReplay_UnknownEpisode(t *testing.T) {
	repo := fakeEventRepo{events: map[string][]guardian.DecisionRecord{}}
	_, err := UseCase{Events: repo}.Execute(context.Background(), Request{EpisodeID: "nope"})
	if !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestReplay_BlankEpisodeID(t *testing.T) {
	repo := fakeEventRepo{events: map[string][]guardian.DecisionRecord{}}
	_, err := UseCase{Events: repo}.Execute(context.Background(), Request{EpisodeID: ""})
	if !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
}
