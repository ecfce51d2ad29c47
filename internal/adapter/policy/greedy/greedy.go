// Package greedy is the default Navegador backing: a deterministic
// nearest-target heuristic standing in for an externally trained network.
package greedy

import (
	"errors"

	"forestguardian/internal/domain/forest"
)

var ErrNoActiveAgent = errors.New("observation has no active agent")

// Policy steers the deciding agent toward the fire its strategy selects,
// extinguishing when a fire sits inside the suppression window.
type Policy struct{}

func (Policy) Decide(obs forest.Observation) (int, error) {
	if obs.ActiveAgent < 0 || obs.ActiveAgent >= len(obs.Agents) {
		return 0, ErrNoActiveAgent
	}
	agent := obs.Agents[obs.ActiveAgent]

	if agent.WaterLevel > 0 && fireInWindow(obs, agent.Pos) {
		return int(forest.ActionExtinguish), nil
	}

	grid := gridFromObservation(obs)
	selector := forest.SelectorFor(agent.Strategy)
	target, ok := selector(grid, agent.Pos)
	if !ok {
		return int(forest.ActionWait), nil
	}
	return int(forest.MoveToward(agent.Pos, target)), nil
}

func fireInWindow(obs forest.Observation, pos forest.Position) bool {
	for dr := -forest.ExtinguishRadius; dr <= forest.ExtinguishRadius; dr++ {
		for dc := -forest.ExtinguishRadius; dc <= forest.ExtinguishRadius; dc++ {
			r, c := pos.Row+dr, pos.Col+dc
			if r < 0 || r >= obs.Size || c < 0 || c >= obs.Size {
				continue
			}
			if obs.Cells[r][c] == int(forest.CellFire) {
				return true
			}
		}
	}
	return false
}

// gridFromObservation rebuilds a cells-only grid so the shared target
// selectors can run against the serialized view.
func gridFromObservation(obs forest.Observation) *forest.Grid {
	cells := make([][]forest.Cell, obs.Size)
	for r := 0; r < obs.Size; r++ {
		cells[r] = make([]forest.Cell, obs.Size)
		for c := 0; c < obs.Size; c++ {
			cells[r][c] = forest.Cell{State: forest.CellState(obs.Cells[r][c])}
		}
	}
	g, _ := forest.ImportGrid(forest.GridSnapshot{Size: obs.Size, RiverRow: obs.RiverRow, Cells: cells})
	return g
}
