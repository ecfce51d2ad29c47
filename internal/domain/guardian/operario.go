package guardian

import "forestguardian/internal/domain/forest"

// Operario is the rule-based safety arbiter. It evaluates a fixed,
// priority-ordered rule list against the agent's 4-neighborhood and water
// level; the first matching rule wins and none further are evaluated. It is
// stateless and fully deterministic given grid and agent state.
type Operario struct {
	MaxWater int
}

// Evaluate returns the emergency decision for the agent, or false when no
// rule matches and the Manager should fall back to the Navegador.
func (o Operario) Evaluate(g *forest.Grid, agent *forest.Agent) (Decision, bool) {
	// Rule 1: refill before anything else when standing on the river.
	if g.IsRiver(agent.Pos.Row) && agent.WaterLevel < o.MaxWater {
		return Decision{Action: forest.ActionWait, Source: SourceOperario, Reason: "recharging at river"}, true
	}

	fireAdjacent, treeAdjacent := false, false
	fireNearby := 0
	for _, n := range g.Neighbors(agent.Pos.Row, agent.Pos.Col) {
		switch g.At(n.Row, n.Col).State {
		case forest.CellFire:
			fireAdjacent = true
			fireNearby++
		case forest.CellTree:
			treeAdjacent = true
		}
	}

	// Rule 2: suppress fire in reach while water remains.
	if fireAdjacent && agent.WaterLevel > 0 {
		return Decision{Action: forest.ActionExtinguish, Source: SourceOperario, Reason: "suppressing adjacent fire"}, true
	}

	// Rule 3: empty tank with fire still burning anywhere: head for the
	// river row to refill.
	if agent.WaterLevel == 0 && g.FireCount() > 0 {
		action := forest.ActionMoveUp
		if agent.Pos.Row < g.RiverRow() {
			action = forest.ActionMoveDown
		}
		return Decision{Action: action, Source: SourceOperario, Reason: "retreating to refill"}, true
	}

	// Rule 4: low water next to both tree and fire: cut a firebreak
	// instead of spending the last charges.
	if treeAdjacent && fireNearby > 0 && agent.WaterLevel < forest.LowWaterThreshold {
		return Decision{Action: forest.ActionCut, Source: SourceOperario, Reason: "building firebreak"}, true
	}

	return Decision{}, false
}
