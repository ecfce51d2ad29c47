package forest

// Strategy is the closed set of drone roles. Roles only influence which fire
// a policy steers toward; the action set and safety rules are identical for
// every agent.
type Strategy string

const (
	// StrategyProximity heads for the nearest fire.
	StrategyProximity Strategy = "proximity"
	// StrategyPerimeter works the edge of the burning region.
	StrategyPerimeter Strategy = "perimeter"
	// StrategySupport protects the refill corridor near the river.
	StrategySupport Strategy = "support"
)

var strategyRoster = [...]Strategy{StrategyProximity, StrategyPerimeter, StrategySupport}

func StrategyForIndex(i int) Strategy {
	return strategyRoster[i%len(strategyRoster)]
}

type Agent struct {
	ID         int      `json:"id"`
	Strategy   Strategy `json:"strategy"`
	Pos        Position `json:"pos"`
	WaterLevel int      `json:"water_level"`
}

// TargetSelector picks the fire cell an agent should steer toward. Returns
// false when no fire matches.
type TargetSelector func(g *Grid, agentPos Position) (Position, bool)

// SelectorFor maps each strategy variant onto its target-selection function.
func SelectorFor(s Strategy) TargetSelector {
	switch s {
	case StrategyPerimeter:
		return perimeterTarget
	case StrategySupport:
		return supportTarget
	default:
		return proximityTarget
	}
}

func proximityTarget(g *Grid, agentPos Position) (Position, bool) {
	return nearestFire(g, agentPos, func(Position) bool { return true })
}

// perimeterTarget prefers fires that still have a non-fire neighbor, i.e.
// cells on the boundary of the burning region.
func perimeterTarget(g *Grid, agentPos Position) (Position, bool) {
	if p, ok := nearestFire(g, agentPos, func(p Position) bool {
		for _, n := range g.Neighbors(p.Row, p.Col) {
			if g.At(n.Row, n.Col).State != CellFire {
				return true
			}
		}
		return false
	}); ok {
		return p, true
	}
	return proximityTarget(g, agentPos)
}

// supportTarget picks the fire closest to the river row, breaking ties by
// distance to the agent.
func supportTarget(g *Grid, agentPos Position) (Position, bool) {
	best := Position{}
	bestRiver, bestDist := -1, 0
	for _, p := range g.FirePositions() {
		riverDist := abs(p.Row - g.RiverRow())
		dist := agentPos.ManhattanTo(p)
		if bestRiver < 0 || riverDist < bestRiver || (riverDist == bestRiver && dist < bestDist) {
			best, bestRiver, bestDist = p, riverDist, dist
		}
	}
	return best, bestRiver >= 0
}

func nearestFire(g *Grid, from Position, accept func(Position) bool) (Position, bool) {
	best := Position{}
	bestDist := -1
	for _, p := range g.FirePositions() {
		if !accept(p) {
			continue
		}
		d := from.ManhattanTo(p)
		if bestDist < 0 || d < bestDist {
			best, bestDist = p, d
		}
	}
	return best, bestDist >= 0
}

// MoveToward returns the move action that reduces the Manhattan distance to
// the target, preferring the row axis. Returns Wait when already there.
func MoveToward(from, to Position) Action {
	switch {
	case to.Row < from.Row:
		return ActionMoveUp
	case to.Row > from.Row:
		return ActionMoveDown
	case to.Col < from.Col:
		return ActionMoveLeft
	case to.Col > from.Col:
		return ActionMoveRight
	default:
		return ActionWait
	}
}
