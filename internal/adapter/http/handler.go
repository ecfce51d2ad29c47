package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"

	"forestguardian/internal/app/episode"
	"forestguardian/internal/app/observe"
	"forestguardian/internal/app/ports"
	"forestguardian/internal/app/replay"
	"forestguardian/internal/domain/forest"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

// Handler exposes the simulation to dashboards: episode lifecycle, stepping,
// observations, decision replay, archived missions and operational KPIs.
type Handler struct {
	Episodes  *episode.Registry
	ObserveUC observe.UseCase
	ReplayUC  replay.UseCase
	Archive   ports.MissionArchive
	KPI       kpiSnapshotProvider

	DefaultConfig forest.Config
	Policy        ports.Policy
	SinkFactory   func() []ports.StepSink
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(corsMiddleware())

	api := s.Group("/api/episodes")
	api.POST("", h.createEpisode)
	api.POST("/:id/step", h.stepEpisode)
	api.POST("/:id/reset", h.resetEpisode)
	api.GET("/:id/observation", h.observation)
	api.GET("/:id/replay", h.replay)
	api.DELETE("/:id", h.removeEpisode)

	s.GET("/api/missions/recent", h.recentMissions)
	s.GET("/ops/kpi", h.kpi)
}

type createEpisodeRequest struct {
	GridSize       *int     `json:"grid_size,omitempty"`
	TreeDensity    *float64 `json:"tree_density,omitempty"`
	InitialFires   *int     `json:"initial_fires,omitempty"`
	NumAgents      *int     `json:"num_agents,omitempty"`
	MaxSteps       *int     `json:"max_steps,omitempty"`
	FireSpreadProb *float64 `json:"fire_spread_prob,omitempty"`
	Burnout        *int     `json:"burnout_threshold,omitempty"`
	RiverRow       *int     `json:"river_row,omitempty"`
	MaxWater       *int     `json:"max_water,omitempty"`
	WindSpeed      *float64 `json:"wind_speed,omitempty"`
	WindDirection  *float64 `json:"wind_direction,omitempty"`
	IncludeTerrain *bool    `json:"include_terrain,omitempty"`
	Seed           *int64   `json:"seed,omitempty"`
}

type createEpisodeResponse struct {
	EpisodeID   string             `json:"episode_id"`
	Config      forest.Config      `json:"config"`
	Observation forest.Observation `json:"observation"`
}

func (h Handler) createEpisode(c context.Context, ctx *app.RequestContext) {
	var body createEpisodeRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}

	cfg := h.DefaultConfig
	body.applyTo(&cfg)

	var opts []episode.Option
	if h.SinkFactory != nil {
		opts = append(opts, episode.WithSinks(h.SinkFactory()...))
	}
	if recorder, ok := h.KPI.(ports.DecisionMetrics); ok {
		opts = append(opts, episode.WithMetrics(recorder))
	}

	controller, err := h.Episodes.Create(cfg, h.Policy, opts...)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(consts.StatusCreated, createEpisodeResponse{
		EpisodeID:   controller.ID,
		Config:      cfg,
		Observation: controller.Observation(),
	})
}

func (r createEpisodeRequest) applyTo(cfg *forest.Config) {
	if r.GridSize != nil {
		cfg.Size = *r.GridSize
	}
	if r.TreeDensity != nil {
		cfg.TreeDensity = *r.TreeDensity
	}
	if r.InitialFires != nil {
		cfg.InitialFires = *r.InitialFires
	}
	if r.NumAgents != nil {
		cfg.NumAgents = *r.NumAgents
	}
	if r.MaxSteps != nil {
		cfg.MaxSteps = *r.MaxSteps
	}
	if r.FireSpreadProb != nil {
		cfg.FireSpreadProb = *r.FireSpreadProb
	}
	if r.Burnout != nil {
		cfg.BurnoutThreshold = *r.Burnout
	}
	if r.RiverRow != nil {
		cfg.RiverRow = *r.RiverRow
	}
	if r.MaxWater != nil {
		cfg.MaxWater = *r.MaxWater
	}
	if r.WindSpeed != nil {
		cfg.Wind.Speed = *r.WindSpeed
	}
	if r.WindDirection != nil {
		cfg.Wind.Direction = *r.WindDirection
	}
	if r.IncludeTerrain != nil {
		cfg.IncludeTerrain = *r.IncludeTerrain
	}
	if r.Seed != nil {
		cfg.Seed = *r.Seed
	}
}

type stepRequest struct {
	Steps int `json:"steps,omitempty"`
}

func (h Handler) stepEpisode(c context.Context, ctx *app.RequestContext) {
	controller, ok := h.Episodes.Get(ctx.Param("id"))
	if !ok {
		writeError(ctx, ports.ErrNotFound)
		return
	}

	var body stepRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	steps := body.Steps
	if steps <= 0 {
		steps = 1
	}

	var last episode.StepResult
	for i := 0; i < steps; i++ {
		result, err := controller.Step(c)
		if err != nil {
			if errors.Is(err, episode.ErrEpisodeFinished) && i > 0 {
				break
			}
			writeError(ctx, err)
			return
		}
		last = result
		if result.Terminated || result.Truncated {
			break
		}
	}
	ctx.JSON(consts.StatusOK, last)
}

func (h Handler) resetEpisode(_ context.Context, ctx *app.RequestContext) {
	controller, ok := h.Episodes.Get(ctx.Param("id"))
	if !ok {
		writeError(ctx, ports.ErrNotFound)
		return
	}
	controller.Reset()
	ctx.JSON(consts.StatusOK, map[string]any{
		"episode_id":  controller.ID,
		"observation": controller.Observation(),
	})
}

func (h Handler) observation(c context.Context, ctx *app.RequestContext) {
	resp, err := h.ObserveUC.Execute(c, observe.Request{EpisodeID: ctx.Param("id")})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) replay(c context.Context, ctx *app.RequestContext) {
	resp, err := h.ReplayUC.Execute(c, replay.Request{
		EpisodeID: ctx.Param("id"),
		Limit:     queryInt(ctx, "limit", 0),
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) removeEpisode(_ context.Context, ctx *app.RequestContext) {
	h.Episodes.Remove(ctx.Param("id"))
	ctx.SetStatusCode(consts.StatusNoContent)
}

func (h Handler) recentMissions(c context.Context, ctx *app.RequestContext) {
	if h.Archive == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "mission archive not configured")
		return
	}
	missions, err := h.Archive.RecentMissions(c, queryInt(ctx, "limit", 10))
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, map[string]any{"missions": missions})
}

type kpiSnapshotProvider interface {
	SnapshotAny() any
}

func (h Handler) kpi(_ context.Context, ctx *app.RequestContext) {
	if h.KPI == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "kpi recorder not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.KPI.SnapshotAny())
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

func queryInt(ctx *app.RequestContext, key string, fallback int) int {
	raw := string(ctx.Query(key))
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}

func writeError(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, forest.ErrInvalidConfig):
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_config", err.Error())
	case errors.Is(err, observe.ErrInvalidRequest), errors.Is(err, replay.ErrInvalidRequest):
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, episode.ErrEpisodeFinished):
		writeErrorBody(ctx, consts.StatusConflict, "episode_finished", err.Error())
	case errors.Is(err, ports.ErrNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ports.ErrConflict):
		writeErrorBody(ctx, consts.StatusConflict, "conflict", err.Error())
	default:
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
