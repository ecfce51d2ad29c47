package forest

import (
	"errors"
	"fmt"
	"math/rand"
)

// ErrInvalidConfig marks reset-time parameters outside allowed bounds. It is
// returned before any state is created.
var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Size             int       `json:"grid_size"`
	TreeDensity      float64   `json:"tree_density"`
	InitialFires     int       `json:"initial_fires"`
	NumAgents        int       `json:"num_agents"`
	MaxSteps         int       `json:"max_steps"`
	FireSpreadProb   float64   `json:"fire_spread_prob"`
	BurnoutThreshold int       `json:"burnout_threshold"`
	RiverRow         int       `json:"river_row"`
	MaxWater         int       `json:"max_water"`
	Wind             WindState `json:"wind"`
	IncludeTerrain   bool      `json:"include_terrain"`
	Seed             int64     `json:"seed"`
}

func DefaultConfig() Config {
	return Config{
		Size:             DefaultGridSize,
		TreeDensity:      DefaultTreeDensity,
		InitialFires:     DefaultInitialFires,
		NumAgents:        DefaultNumAgents,
		MaxSteps:         DefaultMaxSteps,
		FireSpreadProb:   DefaultFireSpreadProb,
		BurnoutThreshold: DefaultBurnoutThreshold,
		RiverRow:         DefaultRiverRow,
		MaxWater:         DefaultMaxWater,
	}
}

func (c Config) Validate() error {
	if c.Size < MinGridSize {
		return fmt.Errorf("%w: grid size %d below minimum %d", ErrInvalidConfig, c.Size, MinGridSize)
	}
	if c.TreeDensity <= 0 || c.TreeDensity > 1 {
		return fmt.Errorf("%w: tree density %.2f outside (0,1]", ErrInvalidConfig, c.TreeDensity)
	}
	if c.FireSpreadProb < 0 || c.FireSpreadProb > 1 {
		return fmt.Errorf("%w: fire spread probability %.2f outside [0,1]", ErrInvalidConfig, c.FireSpreadProb)
	}
	if c.InitialFires < 1 {
		return fmt.Errorf("%w: initial fires %d below 1", ErrInvalidConfig, c.InitialFires)
	}
	if c.NumAgents < 1 {
		return fmt.Errorf("%w: num agents %d below 1", ErrInvalidConfig, c.NumAgents)
	}
	if c.MaxSteps < 1 {
		return fmt.Errorf("%w: max steps %d below 1", ErrInvalidConfig, c.MaxSteps)
	}
	if c.RiverRow < 0 || c.RiverRow >= c.Size {
		return fmt.Errorf("%w: river row %d outside grid of size %d", ErrInvalidConfig, c.RiverRow, c.Size)
	}
	if c.MaxWater < 1 {
		return fmt.Errorf("%w: max water %d below 1", ErrInvalidConfig, c.MaxWater)
	}
	if c.BurnoutThreshold < 1 {
		return fmt.Errorf("%w: burnout threshold %d below 1", ErrInvalidConfig, c.BurnoutThreshold)
	}
	if c.Wind.Speed < 0 || c.Wind.Speed > MaxWindSpeed {
		return fmt.Errorf("%w: wind speed %.1f outside [0,%.0f]", ErrInvalidConfig, c.Wind.Speed, MaxWindSpeed)
	}
	return nil
}

// World owns the grid, its terrain maps and the episode RNG. Each World has
// its own rand.Rand so concurrent episodes never share mutable state.
type World struct {
	Cfg  Config
	Grid *Grid
	Rng  *rand.Rand

	InitialTreeCount int
}

// NewWorld validates the configuration and builds the initial grid: random
// forest honoring tree density, a cleared river row, elevation-correlated
// fuel-moisture maps and the requested number of fire seeds on trees.
func NewWorld(cfg Config) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	w := &World{Cfg: cfg, Rng: rand.New(rand.NewSource(cfg.Seed))}
	w.buildGrid()
	return w, nil
}

// Reset rebuilds the grid and terrain maps from the same configuration and
// seed, replacing the previous state wholesale.
func (w *World) Reset() {
	w.Rng = rand.New(rand.NewSource(w.Cfg.Seed))
	w.buildGrid()
}

func (w *World) buildGrid() {
	g := newGrid(w.Cfg.Size, w.Cfg.RiverRow)

	// Elevation rises along a random diagonal ramp with bounded noise.
	rampRow := w.Rng.Float64()
	rampCol := w.Rng.Float64()
	denom := float64(w.Cfg.Size - 1)
	for r := 0; r < w.Cfg.Size; r++ {
		for c := 0; c < w.Cfg.Size; c++ {
			cell := g.At(r, c)
			ramp := (rampRow*float64(r) + rampCol*float64(c)) / (denom * (rampRow + rampCol + 1e-9))
			cell.Elevation = clip(ramp+(w.Rng.Float64()-0.5)*0.2, 0, 1)
			// Higher ground dries out; moisture correlates inversely with
			// elevation plus bounded spatial noise.
			moisture := MinFuelMoisture + (1-cell.Elevation)*(MaxFuelMoisture-MinFuelMoisture) + (w.Rng.Float64()-0.5)*6
			cell.FuelMoisture = clip(moisture, MinFuelMoisture, MaxFuelMoisture)
		}
	}

	trees := []Position{}
	for r := 0; r < w.Cfg.Size; r++ {
		if g.IsRiver(r) {
			for c := 0; c < w.Cfg.Size; c++ {
				g.At(r, c).FuelMoisture = MaxFuelMoisture
			}
			continue
		}
		for c := 0; c < w.Cfg.Size; c++ {
			if w.Rng.Float64() < w.Cfg.TreeDensity {
				g.At(r, c).State = CellTree
				trees = append(trees, Position{Row: r, Col: c})
			}
		}
	}

	w.Rng.Shuffle(len(trees), func(i, j int) {
		trees[i], trees[j] = trees[j], trees[i]
	})
	seeds := w.Cfg.InitialFires
	if seeds > len(trees) {
		seeds = len(trees)
	}
	for _, p := range trees[:seeds] {
		cell := g.At(p.Row, p.Col)
		cell.State = CellFire
		cell.FireAge = 0
	}

	w.Grid = g
	w.InitialTreeCount = g.TreeCount()
}

// SpawnAgents places agents on distinct non-fire cells with full tanks,
// cycling through the strategy roster in id order.
func (w *World) SpawnAgents() []*Agent {
	candidates := []Position{}
	for r := 0; r < w.Cfg.Size; r++ {
		for c := 0; c < w.Cfg.Size; c++ {
			if w.Grid.At(r, c).State != CellFire {
				candidates = append(candidates, Position{Row: r, Col: c})
			}
		}
	}
	w.Rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	agents := make([]*Agent, 0, w.Cfg.NumAgents)
	for i := 0; i < w.Cfg.NumAgents && i < len(candidates); i++ {
		agents = append(agents, &Agent{
			ID:         i,
			Strategy:   StrategyForIndex(i),
			Pos:        candidates[i],
			WaterLevel: w.Cfg.MaxWater,
		})
	}
	return agents
}

func clip(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
