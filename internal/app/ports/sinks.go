package ports

import (
	"context"
	"time"

	"forestguardian/internal/domain/forest"
	"forestguardian/internal/domain/guardian"
)

// StepSnapshot is the read-only payload fanned out to observers after each
// step. Sinks must never mutate it or block the step loop; the episode
// controller logs and swallows sink errors.
type StepSnapshot struct {
	EpisodeID   string                    `json:"episode_id"`
	Step        int                       `json:"step"`
	Grid        forest.GridSnapshot       `json:"grid"`
	Agents      []forest.AgentView        `json:"agents"`
	Decisions   []guardian.DecisionRecord `json:"decisions"`
	Reward      float64                   `json:"reward"`
	ActiveFires int                       `json:"active_fires"`
	Terminal    bool                      `json:"terminal"`

	// Summary is set only on the terminal snapshot.
	Summary *MissionSummary `json:"summary,omitempty"`
}

type StepSink interface {
	OnStep(ctx context.Context, snap StepSnapshot) error
}

// MissionSummary carries the end-of-episode KPIs.
type MissionSummary struct {
	EpisodeID         string    `json:"episode_id"`
	Status            string    `json:"status"`
	Steps             int       `json:"steps"`
	TotalReward       float64   `json:"total_reward"`
	InitialTrees      int       `json:"initial_trees"`
	FinalTrees        int       `json:"final_trees"`
	TreesSavedPct     float64   `json:"trees_saved_pct"`
	FiresExtinguished int       `json:"fires_extinguished"`
	WaterUsed         int       `json:"water_used"`
	OperarioCount     int       `json:"operario_count"`
	NavegadorCount    int       `json:"navegador_count"`
	PolicyFailures    int       `json:"policy_failures"`
	GridSize          int       `json:"grid_size"`
	NumAgents         int       `json:"num_agents"`
	FireSpreadProb    float64   `json:"fire_spread_prob"`
	Seed              int64     `json:"seed"`
	EndedAt           time.Time `json:"ended_at"`
}

// MissionArchive stores terminal mission summaries in a document store for
// later comparison. Failures must never affect the simulation.
type MissionArchive interface {
	SaveMission(ctx context.Context, summary MissionSummary) error
	RecentMissions(ctx context.Context, limit int) ([]MissionSummary, error)
}
