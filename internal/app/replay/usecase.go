package replay

import (
	"context"
	"errors"
	"strings"

	"forestguardian/internal/app/ports"
	"forestguardian/internal/domain/guardian"
)

var ErrInvalidRequest = errors.New("invalid replay request")

// UseCase reads back the persisted decision log for an episode so
// dashboards can replay who decided what, and why.
type UseCase struct {
	Events ports.DecisionEventRepository
}

type Request struct {
	EpisodeID string
	Limit     int
}

type Response struct {
	EpisodeID string                    `json:"episode_id"`
	Events    []guardian.DecisionRecord `json:"events"`
	BySource  map[string]int            `json:"by_source"`
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	if strings.TrimSpace(req.EpisodeID) == "" {
		return Response{}, ErrInvalidRequest
	}
	events, err := u.Events.ListByEpisodeID(ctx, req.EpisodeID, req.Limit)
	if err != nil {
		return Response{}, err
	}
	bySource := map[string]int{}
	for _, e := range events {
		bySource[e.Source]++
	}
	return Response{EpisodeID: req.EpisodeID, Events: events, BySource: bySource}, nil
}
