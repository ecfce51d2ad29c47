package observe

import (
	"context"
	"errors"
	"strings"

	"forestguardian/internal/app/episode"
	"forestguardian/internal/app/ports"
	"forestguardian/internal/domain/forest"
)

var ErrInvalidRequest = errors.New("invalid observe request")

// UseCase serves the read-only observation and info payload for one episode,
// the same view handed to policies and dashboards.
type UseCase struct {
	Episodes *episode.Registry
}

type Request struct {
	EpisodeID string
}

type Response struct {
	Observation forest.Observation `json:"observation"`
	Info        episode.Info       `json:"info"`
}

func (u UseCase) Execute(_ context.Context, req Request) (Response, error) {
	if strings.TrimSpace(req.EpisodeID) == "" {
		return Response{}, ErrInvalidRequest
	}
	c, ok := u.Episodes.Get(req.EpisodeID)
	if !ok {
		return Response{}, ports.ErrNotFound
	}
	return Response{Observation: c.Observation(), Info: c.Info()}, nil
}
