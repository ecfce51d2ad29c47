package gormrepo

import (
	"context"

	"forestguardian/internal/adapter/repo/gorm/model"
	"forestguardian/internal/app/ports"
	"forestguardian/internal/domain/guardian"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DecisionEventRepo struct {
	db *gorm.DB
}

func NewDecisionEventRepo(db *gorm.DB) DecisionEventRepo {
	return DecisionEventRepo{db: db}
}

func (r DecisionEventRepo) Append(ctx context.Context, episodeID string, events []guardian.DecisionRecord) error {
	if len(events) == 0 {
		return nil
	}
	rows := make([]model.DecisionEvent, 0, len(events))
	for _, e := range events {
		rows = append(rows, model.DecisionEvent{
			EpisodeID:  episodeID,
			Step:       e.Step,
			AgentID:    e.AgentID,
			ActionCode: e.ActionCode,
			Source:     e.Source,
			Reason:     e.Reason,
		})
	}
	return getDBFromCtx(ctx, r.db).Create(&rows).Error
}

func (r DecisionEventRepo) ListByEpisodeID(ctx context.Context, episodeID string, limit int) ([]guardian.DecisionRecord, error) {
	rows := []model.DecisionEvent{}
	query := getDBFromCtx(ctx, r.db).
		Where(&model.DecisionEvent{EpisodeID: episodeID}).
		Clauses(clause.OrderBy{
			Columns: []clause.OrderByColumn{
				{Column: clause.Column{Name: "step"}},
				{Column: clause.Column{Name: "agent_id"}},
			},
		})
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ports.ErrNotFound
	}

	out := make([]guardian.DecisionRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, guardian.DecisionRecord{
			Step:       row.Step,
			AgentID:    row.AgentID,
			ActionCode: row.ActionCode,
			Source:     row.Source,
			Reason:     row.Reason,
		})
	}
	return out, nil
}
