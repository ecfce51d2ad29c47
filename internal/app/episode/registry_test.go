package episode

import (
	"context"
	"testing"
)

func TestRegistry_Lifecycle(t *testing.T) {
	r := NewRegistry()

	c, err := r.Create(noSpreadConfig(1), steeringPolicy{})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if c.ID == "" {
		t.Fatalf("expected a generated episode id")
	}
	if r.Len() != 1 {
		t.Fatalf("expected 1 episode, got %d", r.Len())
	}

	got, ok := r.Get(c.ID)
	if !ok || got != c {
		t.Fatalf("lookup by id failed")
	}
	if _, ok := r.Get("missing"); ok {
		t.Fatalf("unknown id should miss")
	}

	r.Remove(c.ID)
	if r.Len() != 0 {
		t.Fatalf("expected empty registry after remove, got %d", r.Len())
	}
}

func TestRegistry_CreateRejectsInvalidConfig(t *testing.T) {
	r := NewRegistry()
	cfg := noSpreadConfig(1)
	cfg.Size = 2

	if _, err := r.Create(cfg, steeringPolicy{}); err == nil {
		t.Fatalf("expected config validation error")
	}
	if r.Len() != 0 {
		t.Fatalf("failed create should not register an episode")
	}
}

func TestRegistry_EpisodesAreIndependent(t *testing.T) {
	r := NewRegistry()
	a, err := r.Create(noSpreadConfig(2), steeringPolicy{})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	b, err := r.Create(noSpreadConfig(2), steeringPolicy{})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if a.ID == b.ID {
		t.Fatalf("episode ids should be unique")
	}

	for a.Status() == StatusRunning {
		if _, err := a.Step(context.Background()); err != nil {
			t.Fatalf("step: %v", err)
		}
	}
	if b.Status() != StatusRunning || b.StepCount() != 0 {
		t.Fatalf("finishing one episode must not advance another")
	}
}
