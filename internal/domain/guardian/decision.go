package guardian

import "forestguardian/internal/domain/forest"

// Source tags which arbiter produced an action.
type Source string

const (
	SourceOperario  Source = "operario"
	SourceNavegador Source = "navegador"
)

// Decision is one chosen action with its provenance and a human-readable
// reason for dashboards and the decision log.
type Decision struct {
	Action forest.Action `json:"action"`
	Source Source        `json:"source"`
	Reason string        `json:"reason"`
}

// DecisionRecord is the persisted form of a decision, one row per agent per
// step.
type DecisionRecord struct {
	Step       int    `json:"step"`
	AgentID    int    `json:"agent_id"`
	ActionCode int    `json:"action_code"`
	Source     string `json:"source"`
	Reason     string `json:"reason"`
}
