package forest

// AgentView is the read-only agent projection exposed to policies and
// dashboards.
type AgentView struct {
	ID         int      `json:"id"`
	Strategy   Strategy `json:"strategy"`
	Pos        Position `json:"pos"`
	WaterLevel int      `json:"water_level"`
	MaxWater   int      `json:"max_water"`
}

// Observation is the serialized, read-only view handed to the Navegador
// policy and to external dashboards. Cell codes follow Grid.StateCodes.
// Terrain maps are included only when the episode enables them.
type Observation struct {
	Step        int         `json:"step"`
	Size        int         `json:"size"`
	RiverRow    int         `json:"river_row"`
	Cells       [][]int     `json:"cells"`
	Agents      []AgentView `json:"agents"`
	ActiveAgent int         `json:"active_agent"`

	Wind         *WindState  `json:"wind,omitempty"`
	FuelMoisture [][]float64 `json:"fuel_moisture,omitempty"`
	Elevation    [][]float64 `json:"elevation,omitempty"`
}

func BuildObservation(g *Grid, agents []*Agent, step, maxWater int, wind WindState, includeTerrain bool) Observation {
	views := make([]AgentView, 0, len(agents))
	for _, a := range agents {
		views = append(views, AgentView{
			ID:         a.ID,
			Strategy:   a.Strategy,
			Pos:        a.Pos,
			WaterLevel: a.WaterLevel,
			MaxWater:   maxWater,
		})
	}
	obs := Observation{
		Step:     step,
		Size:     g.Size(),
		RiverRow: g.RiverRow(),
		Cells:    g.StateCodes(),
		Agents:   views,
	}
	if includeTerrain {
		w := wind
		obs.Wind = &w
		obs.FuelMoisture = terrainMap(g, func(c *Cell) float64 { return c.FuelMoisture })
		obs.Elevation = terrainMap(g, func(c *Cell) float64 { return c.Elevation })
	}
	return obs
}

func terrainMap(g *Grid, pick func(*Cell) float64) [][]float64 {
	out := make([][]float64, g.Size())
	for r := 0; r < g.Size(); r++ {
		out[r] = make([]float64, g.Size())
		for c := 0; c < g.Size(); c++ {
			out[r][c] = pick(g.At(r, c))
		}
	}
	return out
}
