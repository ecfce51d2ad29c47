package memory

import (
	"context"

	"forestguardian/internal/app/ports"
)

type EpisodeRepo struct {
	store *Store
}

func NewEpisodeRepo(store *Store) EpisodeRepo {
	return EpisodeRepo{store: store}
}

func (r EpisodeRepo) SaveSummary(_ context.Context, summary ports.MissionSummary) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.summaries[summary.EpisodeID] = summary
	return nil
}

func (r EpisodeRepo) GetByEpisodeID(_ context.Context, episodeID string) (ports.MissionSummary, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	summary, ok := r.store.summaries[episodeID]
	if !ok {
		return ports.MissionSummary{}, ports.ErrNotFound
	}
	return summary, nil
}
