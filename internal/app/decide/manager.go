package decide

import (
	"fmt"
	"log"

	"forestguardian/internal/app/ports"
	"forestguardian/internal/domain/forest"
	"forestguardian/internal/domain/guardian"
)

// Manager arbitrates between the Operario safety rules and the Navegador
// policy: Operario first, Navegador only when every rule defers. Policy
// errors and out-of-range action codes degrade to Wait and never abort the
// episode.
type Manager struct {
	Operario guardian.Operario
	Policy   ports.Policy
	Metrics  ports.DecisionMetrics

	operarioCount  int
	navegadorCount int
	policyFailures int
}

// Decide picks the action for one agent. The observation must already carry
// ActiveAgent set to the agent's index.
func (m *Manager) Decide(g *forest.Grid, obs forest.Observation, agent *forest.Agent) guardian.Decision {
	if d, ok := m.Operario.Evaluate(g, agent); ok {
		m.operarioCount++
		m.record(d.Source)
		return d
	}

	d := m.consultPolicy(obs, agent)
	m.navegadorCount++
	m.record(d.Source)
	return d
}

func (m *Manager) consultPolicy(obs forest.Observation, agent *forest.Agent) guardian.Decision {
	if m.Policy == nil {
		return guardian.Decision{Action: forest.ActionWait, Source: guardian.SourceNavegador, Reason: "no policy attached"}
	}
	code, err := m.Policy.Decide(obs)
	if err != nil {
		m.flagPolicyFailure(agent.ID, fmt.Sprintf("policy error: %v", err))
		return guardian.Decision{Action: forest.ActionWait, Source: guardian.SourceNavegador, Reason: "policy failure, waiting"}
	}
	action, ok := forest.ActionFromCode(code)
	if !ok {
		m.flagPolicyFailure(agent.ID, fmt.Sprintf("invalid action code %d", code))
		return guardian.Decision{Action: forest.ActionWait, Source: guardian.SourceNavegador, Reason: "invalid policy action, waiting"}
	}
	return guardian.Decision{Action: action, Source: guardian.SourceNavegador, Reason: "policy decision"}
}

func (m *Manager) flagPolicyFailure(agentID int, cause string) {
	m.policyFailures++
	if m.Metrics != nil {
		m.Metrics.RecordPolicyFailure()
	}
	log.Printf("policy failure for agent %d: %s", agentID, cause)
}

func (m *Manager) record(source guardian.Source) {
	if m.Metrics != nil {
		m.Metrics.RecordDecision(source)
	}
}

// Counts reports how many decisions each source produced plus the number of
// policy failures since the last reset.
func (m *Manager) Counts() (operario, navegador, policyFailures int) {
	return m.operarioCount, m.navegadorCount, m.policyFailures
}

// ResetCounts clears the per-episode tallies.
func (m *Manager) ResetCounts() {
	m.operarioCount = 0
	m.navegadorCount = 0
	m.policyFailures = 0
}
