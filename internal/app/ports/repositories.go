package ports

import (
	"context"

	"forestguardian/internal/domain/guardian"
)

type EpisodeRepository interface {
	SaveSummary(ctx context.Context, summary MissionSummary) error
	GetByEpisodeID(ctx context.Context, episodeID string) (MissionSummary, error)
}

type DecisionEventRepository interface {
	Append(ctx context.Context, episodeID string, events []guardian.DecisionRecord) error
	ListByEpisodeID(ctx context.Context, episodeID string, limit int) ([]guardian.DecisionRecord, error)
}
