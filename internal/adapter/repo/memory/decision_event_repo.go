package memory

import (
	"context"

	"forestguardian/internal/app/ports"
	"forestguardian/internal/domain/guardian"
)

type DecisionEventRepo struct {
	store *Store
}

func NewDecisionEventRepo(store *Store) DecisionEventRepo {
	return DecisionEventRepo{store: store}
}

func (r DecisionEventRepo) Append(_ context.Context, episodeID string, events []guardian.DecisionRecord) error {
	if len(events) == 0 {
		return nil
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.events[episodeID] = append(r.store.events[episodeID], events...)
	return nil
}

func (r DecisionEventRepo) ListByEpisodeID(_ context.Context, episodeID string, limit int) ([]guardian.DecisionRecord, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	events, ok := r.store.events[episodeID]
	if !ok || len(events) == 0 {
		return nil, ports.ErrNotFound
	}
	if limit > 0 && len(events) > limit {
		events = events[len(events)-limit:]
	}
	out := make([]guardian.DecisionRecord, len(events))
	copy(out, events)
	return out, nil
}
