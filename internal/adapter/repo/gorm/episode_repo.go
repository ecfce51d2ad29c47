package gormrepo

import (
	"context"
	"errors"

	"forestguardian/internal/adapter/repo/gorm/model"
	"forestguardian/internal/app/ports"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EpisodeRepo struct {
	db *gorm.DB
}

func NewEpisodeRepo(db *gorm.DB) EpisodeRepo {
	return EpisodeRepo{db: db}
}

func (r EpisodeRepo) SaveSummary(ctx context.Context, summary ports.MissionSummary) error {
	row := model.EpisodeSummary{
		EpisodeID:         summary.EpisodeID,
		Status:            summary.Status,
		Steps:             summary.Steps,
		TotalReward:       summary.TotalReward,
		InitialTrees:      summary.InitialTrees,
		FinalTrees:        summary.FinalTrees,
		TreesSavedPct:     summary.TreesSavedPct,
		FiresExtinguished: summary.FiresExtinguished,
		WaterUsed:         summary.WaterUsed,
		OperarioCount:     summary.OperarioCount,
		NavegadorCount:    summary.NavegadorCount,
		PolicyFailures:    summary.PolicyFailures,
		GridSize:          summary.GridSize,
		NumAgents:         summary.NumAgents,
		FireSpreadProb:    summary.FireSpreadProb,
		Seed:              summary.Seed,
		EndedAt:           summary.EndedAt,
	}
	return getDBFromCtx(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "episode_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "steps", "total_reward", "final_trees", "trees_saved_pct", "fires_extinguished", "water_used", "operario_count", "navegador_count", "policy_failures", "ended_at"}),
	}).Create(&row).Error
}

func (r EpisodeRepo) GetByEpisodeID(ctx context.Context, episodeID string) (ports.MissionSummary, error) {
	var row model.EpisodeSummary
	err := getDBFromCtx(ctx, r.db).
		Where(&model.EpisodeSummary{EpisodeID: episodeID}).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.MissionSummary{}, ports.ErrNotFound
		}
		return ports.MissionSummary{}, err
	}
	return ports.MissionSummary{
		EpisodeID:         row.EpisodeID,
		Status:            row.Status,
		Steps:             row.Steps,
		TotalReward:       row.TotalReward,
		InitialTrees:      row.InitialTrees,
		FinalTrees:        row.FinalTrees,
		TreesSavedPct:     row.TreesSavedPct,
		FiresExtinguished: row.FiresExtinguished,
		WaterUsed:         row.WaterUsed,
		OperarioCount:     row.OperarioCount,
		NavegadorCount:    row.NavegadorCount,
		PolicyFailures:    row.PolicyFailures,
		GridSize:          row.GridSize,
		NumAgents:         row.NumAgents,
		FireSpreadProb:    row.FireSpreadProb,
		Seed:              row.Seed,
		EndedAt:           row.EndedAt,
	}, nil
}
