package model

import "time"

type EpisodeSummary struct {
	ID                int64  `gorm:"primaryKey;autoIncrement"`
	EpisodeID         string `gorm:"column:episode_id;uniqueIndex;size:64"`
	Status            string `gorm:"size:32"`
	Steps             int
	TotalReward       float64
	InitialTrees      int
	FinalTrees        int
	TreesSavedPct     float64
	FiresExtinguished int
	WaterUsed         int
	OperarioCount     int
	NavegadorCount    int
	PolicyFailures    int
	GridSize          int
	NumAgents         int
	FireSpreadProb    float64
	Seed              int64
	EndedAt           time.Time
	CreatedAt         time.Time
}

func (EpisodeSummary) TableName() string { return "episode_summaries" }

type DecisionEvent struct {
	ID         int64  `gorm:"primaryKey;autoIncrement"`
	EpisodeID  string `gorm:"column:episode_id;index;size:64"`
	Step       int
	AgentID    int
	ActionCode int
	Source     string `gorm:"size:16"`
	Reason     string `gorm:"size:128"`
	CreatedAt  time.Time
}

func (DecisionEvent) TableName() string { return "decision_events" }
