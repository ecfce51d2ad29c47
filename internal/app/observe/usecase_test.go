package observe

import (
	"context"
	"errors"
	"testing"

	"forestguardian/internal/app/episode"
	"forestguardian/internal/app/ports"
	"forestguardian/internal/domain/forest"
)

func TestObserve_ReturnsObservationAndInfo(t *testing.T) {
	registry := episode.NewRegistry()
	cfg := forest.DefaultConfig()
	cfg.Seed = 4
	c, err := registry.Create(cfg, nil)
	if err != nil {
		t.Fatalf("create episode: %v", err)
	}

	out, err := UseCase{Episodes: registry}.Execute(context.Background(), Request{EpisodeID: c.ID})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if out.Observation.Size != cfg.Size {
		t.Fatalf("expected grid size %d, got %d", cfg.Size, out.Observation.Size)
	}
	if len(out.Observation.Agents) != cfg.NumAgents {
		t.Fatalf("expected %d agents, got %d", cfg.NumAgents, len(out.Observation.Agents))
	}
	if out.Info.Status != episode.StatusRunning {
		t.Fatalf("expected running episode, got %s", out.Info.Status)
	}
}

func TestObserve_UnknownEpisode(t *testing.T) {
	uc := UseCase{Episodes: episode.NewRegistry()}
	_, err := uc.Execute(context.Background(), Request{EpisodeID: "nope"})
	if !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestObserve_BlankEpisodeID(t *testing.T) {
	uc := UseCase{Episodes: episode.NewRegistry()}
	_, err := uc.Execute(context.Background(), Request{EpisodeID: "  "})
	if !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
}
