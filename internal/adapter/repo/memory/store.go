package memory

import (
	"sync"

	"forestguardian/internal/app/ports"
	"forestguardian/internal/domain/guardian"
)

// Store backs the in-memory repository twins used in tests and DSN-less
// development runs.
type Store struct {
	mu        sync.RWMutex
	summaries map[string]ports.MissionSummary
	events    map[string][]guardian.DecisionRecord
}

func NewStore() *Store {
	return &Store{
		summaries: make(map[string]ports.MissionSummary),
		events:    make(map[string][]guardian.DecisionRecord),
	}
}
