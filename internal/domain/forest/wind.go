package forest

// WindState holds the ambient wind for a whole episode. Direction uses
// compass degrees: 0 is north (decreasing row), 90 is east (increasing
// column).
type WindState struct {
	Speed     float64 `json:"speed"`
	Direction float64 `json:"direction"`
}

const (
	MaxWindSpeed = 20.0

	DirectionNorth = 0.0
	DirectionEast  = 90.0
	DirectionSouth = 180.0
	DirectionWest  = 270.0
)

// angularDistance returns the smallest angle between two headings, in [0,180].
func angularDistance(a, b float64) float64 {
	d := a - b
	for d < 0 {
		d += 360
	}
	for d >= 360 {
		d -= 360
	}
	if d > 180 {
		d = 360 - d
	}
	return d
}

// headingBetween returns the compass heading from one cell to an adjacent
// cell. Only 4-connected steps occur in practice.
func headingBetween(from, to Position) float64 {
	switch {
	case to.Row < from.Row:
		return DirectionNorth
	case to.Col > from.Col:
		return DirectionEast
	case to.Row > from.Row:
		return DirectionSouth
	default:
		return DirectionWest
	}
}
