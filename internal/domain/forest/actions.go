package forest

type Action int

const (
	ActionMoveUp Action = iota
	ActionMoveDown
	ActionMoveLeft
	ActionMoveRight
	ActionCut
	ActionExtinguish
	ActionWait

	ActionCount = 7
)

func (a Action) String() string {
	switch a {
	case ActionMoveUp:
		return "move_up"
	case ActionMoveDown:
		return "move_down"
	case ActionMoveLeft:
		return "move_left"
	case ActionMoveRight:
		return "move_right"
	case ActionCut:
		return "cut"
	case ActionExtinguish:
		return "extinguish"
	case ActionWait:
		return "wait"
	default:
		return "unknown"
	}
}

// ActionFromCode maps an integer action code onto an Action. The second
// return is false for codes outside [0,6].
func ActionFromCode(code int) (Action, bool) {
	if code < 0 || code >= ActionCount {
		return ActionWait, false
	}
	return Action(code), true
}

func (a Action) IsMove() bool {
	return a >= ActionMoveUp && a <= ActionMoveRight
}

func (a Action) moveDelta() (int, int) {
	switch a {
	case ActionMoveUp:
		return -1, 0
	case ActionMoveDown:
		return 1, 0
	case ActionMoveLeft:
		return 0, -1
	case ActionMoveRight:
		return 0, 1
	default:
		return 0, 0
	}
}

type ApplyResult struct {
	Reward            float64
	FiresExtinguished int
	TreesCut          int
	WaterUsed         int
	Refilled          bool
	Moved             bool
}

// Resolver applies one discrete action for one agent against the grid.
// Callers must process agents in ascending id order within a tick; the
// collision rule below relies on it.
type Resolver struct {
	MaxWater int
}

// Apply mutates the grid and the agent at agents[idx] and returns the
// reward delta plus side effects. Moves onto a cell currently occupied by
// any other agent are blocked: agents with lower ids have already moved
// this tick and higher ids have not moved yet, so checking current
// positions yields the deterministic id-order collision rule.
func (r Resolver) Apply(g *Grid, agents []*Agent, idx int, a Action) ApplyResult {
	agent := agents[idx]
	out := ApplyResult{}

	switch {
	case a.IsMove():
		out.Reward -= MoveCost
		dr, dc := a.moveDelta()
		target := Position{Row: agent.Pos.Row + dr, Col: agent.Pos.Col + dc}
		if g.IsWithinBounds(target.Row, target.Col) && !occupied(agents, idx, target) {
			agent.Pos = target
			out.Moved = true
		}

	case a == ActionCut:
		for _, n := range g.Neighbors(agent.Pos.Row, agent.Pos.Col) {
			cell := g.At(n.Row, n.Col)
			if cell.State == CellTree {
				cell.State = CellEmpty
				out.TreesCut++
				out.Reward += RewardCut
				break
			}
		}

	case a == ActionExtinguish:
		if agent.WaterLevel == 0 {
			out.Reward -= PenaltyNoWater
			break
		}
		for dr := -ExtinguishRadius; dr <= ExtinguishRadius; dr++ {
			for dc := -ExtinguishRadius; dc <= ExtinguishRadius; dc++ {
				if agent.WaterLevel == 0 {
					break
				}
				pr, pc := agent.Pos.Row+dr, agent.Pos.Col+dc
				if !g.IsWithinBounds(pr, pc) {
					continue
				}
				cell := g.At(pr, pc)
				if cell.State == CellFire {
					cell.State = CellEmpty
					cell.FireAge = 0
					agent.WaterLevel--
					out.WaterUsed++
					out.FiresExtinguished++
					out.Reward += RewardExtinguishPerFire
				}
			}
		}

	case a == ActionWait:
		if g.IsRiver(agent.Pos.Row) {
			if agent.WaterLevel < r.MaxWater {
				agent.WaterLevel = r.MaxWater
				out.Refilled = true
				out.Reward += RewardRiverRefill
			}
			break
		}
		if agent.WaterLevel < r.MaxWater {
			agent.WaterLevel += WaterRefillRate
			if agent.WaterLevel > r.MaxWater {
				agent.WaterLevel = r.MaxWater
			}
		}
	}

	return out
}

func occupied(agents []*Agent, selfIdx int, p Position) bool {
	for i, other := range agents {
		if i == selfIdx {
			continue
		}
		if other.Pos == p {
			return true
		}
	}
	return false
}
