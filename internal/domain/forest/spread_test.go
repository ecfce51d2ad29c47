package forest

import (
	"math"
	"math/rand"
	"testing"
)

// uniformFuelGrid builds a flat, dry, fully treed grid so ignition
// probability depends only on the factor under test.
func uniformFuelGrid(size int) *Grid {
	g := newGrid(size, 0)
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			cell := g.At(r, c)
			cell.FuelMoisture = MinFuelMoisture
			cell.Elevation = 0.5
			if r != g.RiverRow() {
				cell.State = CellTree
			}
		}
	}
	return g
}

func testEngine(baseProb float64, burnout int, wind WindState, seed int64) *SpreadEngine {
	cfg := DefaultConfig()
	cfg.FireSpreadProb = baseProb
	cfg.BurnoutThreshold = burnout
	cfg.Wind = wind
	return NewSpreadEngine(cfg, rand.New(rand.NewSource(seed)))
}

func TestTick_ZeroProbNeverSpreads(t *testing.T) {
	g := uniformFuelGrid(8)
	g.At(4, 4).State = CellFire
	e := testEngine(0, 100, WindState{}, 1)

	for i := 0; i < 20; i++ {
		report := e.Tick(g)
		if report.NewIgnitions != 0 {
			t.Fatalf("tick %d: expected no ignitions at zero probability, got %d", i, report.NewIgnitions)
		}
		if g.FireCount() > 1 {
			t.Fatalf("tick %d: fire count grew to %d", i, g.FireCount())
		}
	}
}

func TestTick_BurnoutAtThreshold(t *testing.T) {
	g := uniformFuelGrid(8)
	g.At(4, 4).State = CellFire
	e := testEngine(0, 3, WindState{}, 1)

	for i := 0; i < 2; i++ {
		report := e.Tick(g)
		if report.BurnedOut != 0 {
			t.Fatalf("tick %d: burned out before threshold", i)
		}
	}
	report := e.Tick(g)
	if report.BurnedOut != 1 {
		t.Fatalf("expected burnout on third tick, got %d", report.BurnedOut)
	}
	if g.At(4, 4).State != CellEmpty {
		t.Fatalf("burned out cell should be empty, got %v", g.At(4, 4).State)
	}
	if g.At(4, 4).FireAge != 0 {
		t.Fatalf("burned out cell should have fire age reset, got %d", g.At(4, 4).FireAge)
	}
}

func TestTick_BurnsOutWithoutFuel(t *testing.T) {
	g := newGrid(8, 0)
	g.At(4, 4).State = CellFire
	e := testEngine(0.5, 100, WindState{}, 1)

	report := e.Tick(g)
	if report.BurnedOut != 1 {
		t.Fatalf("fire with no flammable neighbor should burn out immediately, got %d", report.BurnedOut)
	}
	if g.FireCount() != 0 {
		t.Fatalf("expected no fires left, got %d", g.FireCount())
	}
}

func TestTick_CertainSpreadIgnitesAllNeighbors(t *testing.T) {
	g := uniformFuelGrid(8)
	g.At(4, 4).State = CellFire
	e := testEngine(1, 100, WindState{}, 1)

	report := e.Tick(g)
	if report.NewIgnitions != 4 {
		t.Fatalf("expected 4 ignitions at probability 1, got %d", report.NewIgnitions)
	}
	for _, p := range []Position{{3, 4}, {5, 4}, {4, 3}, {4, 5}} {
		if g.At(p.Row, p.Col).State != CellFire {
			t.Fatalf("neighbor %v did not ignite", p)
		}
		if g.At(p.Row, p.Col).FireAge != 0 {
			t.Fatalf("fresh ignition at %v should have age 0", p)
		}
	}
}

func TestIgnitionProbability_WindAlignment(t *testing.T) {
	g := uniformFuelGrid(8)
	src := Position{4, 4}
	east := Position{4, 5}
	west := Position{4, 3}
	north := Position{3, 4}

	e := testEngine(0.1, 100, WindState{Speed: 10, Direction: DirectionEast}, 1)

	// speed 10 gives (speed/10)^1.5 = 1: downwind factor 2, crosswind 1,
	// upwind clipped to the floor.
	if got, want := e.IgnitionProbability(g, src, east), 0.2; math.Abs(got-want) > 1e-9 {
		t.Fatalf("downwind probability: got=%.4f want=%.4f", got, want)
	}
	if got, want := e.IgnitionProbability(g, src, north), 0.1; math.Abs(got-want) > 1e-9 {
		t.Fatalf("crosswind probability: got=%.4f want=%.4f", got, want)
	}
	if got, want := e.IgnitionProbability(g, src, west), 0.1*WindFactorMin; math.Abs(got-want) > 1e-9 {
		t.Fatalf("upwind probability: got=%.4f want=%.4f", got, want)
	}
}

func TestIgnitionProbability_SlopeBias(t *testing.T) {
	g := uniformFuelGrid(8)
	src := Position{4, 4}
	up := Position{4, 5}
	down := Position{4, 3}
	g.At(up.Row, up.Col).Elevation = 0.7
	g.At(down.Row, down.Col).Elevation = 0.3

	e := testEngine(0.1, 100, WindState{}, 1)

	uphill := e.IgnitionProbability(g, src, up)
	downhill := e.IgnitionProbability(g, src, down)
	if uphill <= downhill {
		t.Fatalf("uphill spread should exceed downhill: up=%.4f down=%.4f", uphill, downhill)
	}
	if got, want := uphill, 0.1*(1+SlopeFactorUphill*0.2); math.Abs(got-want) > 1e-9 {
		t.Fatalf("uphill probability: got=%.4f want=%.4f", got, want)
	}
}

func TestIgnitionProbability_MoistureSuppresses(t *testing.T) {
	g := uniformFuelGrid(8)
	src := Position{4, 4}
	dst := Position{4, 5}

	e := testEngine(0.5, 100, WindState{}, 1)
	dry := e.IgnitionProbability(g, src, dst)

	g.At(dst.Row, dst.Col).FuelMoisture = MaxFuelMoisture
	wet := e.IgnitionProbability(g, src, dst)

	if wet >= dry {
		t.Fatalf("wet fuel should ignite less: wet=%.4f dry=%.4f", wet, dry)
	}
	want := 0.5 * math.Exp(-MoistureDecayCoeff*(MaxFuelMoisture-MinFuelMoisture))
	if math.Abs(wet-want) > 1e-9 {
		t.Fatalf("wet probability: got=%.6f want=%.6f", wet, want)
	}
}

func TestTick_EastWindDrivesFireEast(t *testing.T) {
	g := uniformFuelGrid(12)
	seed := Position{6, 3}
	g.At(seed.Row, seed.Col).State = CellFire
	e := testEngine(0.3, 100, WindState{Speed: MaxWindSpeed, Direction: DirectionEast}, 99)

	for i := 0; i < 5; i++ {
		e.Tick(g)
	}
	fires := g.FirePositions()
	if len(fires) == 0 {
		t.Fatalf("expected an active fire front")
	}
	sum := 0
	for _, p := range fires {
		sum += p.Col
	}
	mean := float64(sum) / float64(len(fires))
	if mean <= float64(seed.Col) {
		t.Fatalf("expected eastward bias: mean col %.2f, seed col %d", mean, seed.Col)
	}
}

func TestTick_SameSeedSameOutcome(t *testing.T) {
	run := func() [][]int {
		cfg := DefaultConfig()
		cfg.Seed = 23
		cfg.FireSpreadProb = 0.4
		cfg.Wind = WindState{Speed: 8, Direction: DirectionSouth}
		w, err := NewWorld(cfg)
		if err != nil {
			t.Fatalf("new world: %v", err)
		}
		e := NewSpreadEngine(cfg, w.Rng)
		for i := 0; i < 10; i++ {
			e.Tick(w.Grid)
		}
		return w.Grid.StateCodes()
	}

	a, b := run(), run()
	for r := range a {
		for c := range a[r] {
			if a[r][c] != b[r][c] {
				t.Fatalf("cell (%d,%d) differs across identical seeded runs", r, c)
			}
		}
	}
}
