package forest

type CellState int

const (
	CellEmpty CellState = iota
	CellTree
	CellFire
)

// Fuel moisture is a percentage in [5,35]; drier cells ignite more easily.
const (
	MinFuelMoisture = 5.0
	MaxFuelMoisture = 35.0
)

type Cell struct {
	State        CellState `json:"state"`
	FuelMoisture float64   `json:"fuel_moisture"`
	Elevation    float64   `json:"elevation"`
	FireAge      int       `json:"fire_age"`
}

func (c Cell) Flammable() bool {
	return c.State == CellTree
}

type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (p Position) ManhattanTo(other Position) int {
	return abs(p.Row-other.Row) + abs(p.Col-other.Col)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
