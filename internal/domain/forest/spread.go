package forest

import (
	"math"
	"math/rand"
)

// SpreadEngine advances the fire lifecycle one tick at a time. Ignition
// sampling uses the world's RNG so a fixed seed replays identically.
type SpreadEngine struct {
	BaseProb         float64
	BurnoutThreshold int
	Wind             WindState

	rng *rand.Rand
}

func NewSpreadEngine(cfg Config, rng *rand.Rand) *SpreadEngine {
	return &SpreadEngine{
		BaseProb:         cfg.FireSpreadProb,
		BurnoutThreshold: cfg.BurnoutThreshold,
		Wind:             cfg.Wind,
		rng:              rng,
	}
}

type TickReport struct {
	NewIgnitions int
	BurnedOut    int
}

// Tick evaluates spread from every cell burning at the start of the tick,
// applies the sampled ignitions, then ages the original fires. A fire cell
// converts to empty once its age reaches the burnout threshold or it has no
// flammable neighbor left.
func (e *SpreadEngine) Tick(g *Grid) TickReport {
	burning := g.FirePositions()

	ignitions := []Position{}
	for _, src := range burning {
		for _, dst := range g.Neighbors(src.Row, src.Col) {
			cell := g.At(dst.Row, dst.Col)
			if !cell.Flammable() {
				continue
			}
			p := e.IgnitionProbability(g, src, dst)
			if e.rng.Float64() < p {
				ignitions = append(ignitions, dst)
			}
		}
	}

	report := TickReport{}
	for _, p := range ignitions {
		cell := g.At(p.Row, p.Col)
		if cell.State == CellTree {
			cell.State = CellFire
			cell.FireAge = 0
			report.NewIgnitions++
		}
	}

	for _, p := range burning {
		cell := g.At(p.Row, p.Col)
		cell.FireAge++
		if cell.FireAge >= e.BurnoutThreshold || !g.HasFlammableNeighbor(p.Row, p.Col) {
			cell.State = CellEmpty
			cell.FireAge = 0
			report.BurnedOut++
		}
	}
	return report
}

// IgnitionProbability computes the Rothermel-inspired chance that fire at
// src ignites the flammable neighbor dst this tick.
//
//	alignment in [-1,1]: 1 straight downwind, -1 straight upwind
//	wind_factor  = clip(1 + (speed/10)^1.5 * alignment, 0.15, 5.0)
//	slope_factor = 1 + 8*slope uphill, 1 + 0.3*slope downhill
//	moisture     = exp(-0.1 * (fuel_moisture - 5))
func (e *SpreadEngine) IgnitionProbability(g *Grid, src, dst Position) float64 {
	heading := headingBetween(src, dst)
	alignment := 1 - angularDistance(heading, e.Wind.Direction)/90

	windFactor := clip(1+math.Pow(e.Wind.Speed/10, 1.5)*alignment, WindFactorMin, WindFactorMax)

	slope := g.At(dst.Row, dst.Col).Elevation - g.At(src.Row, src.Col).Elevation
	slopeFactor := 1 + SlopeFactorDownhill*slope
	if slope > 0 {
		slopeFactor = 1 + SlopeFactorUphill*slope
	}

	moistureFactor := math.Exp(-MoistureDecayCoeff * (g.At(dst.Row, dst.Col).FuelMoisture - MinFuelMoisture))

	return clip(e.BaseProb*windFactor*slopeFactor*moistureFactor, 0, 1)
}
