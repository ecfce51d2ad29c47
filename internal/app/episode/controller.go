package episode

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"forestguardian/internal/app/decide"
	"forestguardian/internal/app/ports"
	"forestguardian/internal/domain/forest"
	"forestguardian/internal/domain/guardian"

	"github.com/google/uuid"
)

type Status string

const (
	StatusRunning           Status = "running"
	StatusTerminatedSuccess Status = "terminated_success"
	StatusTerminatedFailure Status = "terminated_failure"
	StatusTruncated         Status = "truncated"
)

var (
	ErrEpisodeFinished = errors.New("episode finished")

	// ErrInvariantViolation is the programming-error class: a broken step
	// invariant means the resolver or spread engine has a bug.
	ErrInvariantViolation = errors.New("internal invariant violation")
)

// Controller drives the per-step loop: for each agent in ascending id order
// Manager.decide then ActionResolver.apply, then one fire-spread tick, then
// reward accounting and termination checks. It owns all mutable episode
// state; independent episodes share nothing and may run concurrently.
type Controller struct {
	ID string

	cfg      forest.Config
	world    *forest.World
	spread   *forest.SpreadEngine
	resolver forest.Resolver
	manager  *decide.Manager
	agents   []*forest.Agent

	status      Status
	step        int
	totalReward float64

	firesExtinguished int
	waterUsed         int

	sinks   []ports.StepSink
	metrics ports.DecisionMetrics
}

// Option configures optional collaborators on a Controller.
type Option func(*Controller)

func WithSinks(sinks ...ports.StepSink) Option {
	return func(c *Controller) { c.sinks = append(c.sinks, sinks...) }
}

func WithMetrics(m ports.DecisionMetrics) Option {
	return func(c *Controller) { c.metrics = m }
}

func NewController(cfg forest.Config, policy ports.Policy, opts ...Option) (*Controller, error) {
	world, err := forest.NewWorld(cfg)
	if err != nil {
		return nil, err
	}
	c := &Controller{
		ID:    uuid.NewString(),
		cfg:   cfg,
		world: world,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.manager = &decide.Manager{
		Operario: guardian.Operario{MaxWater: cfg.MaxWater},
		Policy:   policy,
		Metrics:  c.metrics,
	}
	c.start()
	return c, nil
}

func (c *Controller) start() {
	c.spread = forest.NewSpreadEngine(c.cfg, c.world.Rng)
	c.resolver = forest.Resolver{MaxWater: c.cfg.MaxWater}
	c.agents = c.world.SpawnAgents()
	c.status = StatusRunning
	c.step = 0
	c.totalReward = 0
	c.firesExtinguished = 0
	c.waterUsed = 0
	c.manager.ResetCounts()
}

// Reset rebuilds the grid, agents, counters and episode state from the
// original configuration and seed.
func (c *Controller) Reset() {
	c.world.Reset()
	c.start()
}

func (c *Controller) Status() Status { return c.status }
func (c *Controller) StepCount() int { return c.step }

func (c *Controller) Observation() forest.Observation {
	return forest.BuildObservation(c.world.Grid, c.agents, c.step, c.cfg.MaxWater, c.cfg.Wind, c.cfg.IncludeTerrain)
}

type StepResult struct {
	Observation forest.Observation `json:"observation"`
	Reward      float64            `json:"reward"`
	Terminated  bool               `json:"terminated"`
	Truncated   bool               `json:"truncated"`
	Info        Info               `json:"info"`
}

// Step advances the episode by one tick. Calling Step on a finished episode
// returns ErrEpisodeFinished.
func (c *Controller) Step(ctx context.Context) (StepResult, error) {
	if c.status != StatusRunning {
		return StepResult{}, ErrEpisodeFinished
	}
	c.step++

	reward := 0.0
	decisions := make([]guardian.DecisionRecord, 0, len(c.agents))
	for i, agent := range c.agents {
		obs := c.Observation()
		obs.ActiveAgent = i
		d := c.manager.Decide(c.world.Grid, obs, agent)
		res := c.resolver.Apply(c.world.Grid, c.agents, i, d.Action)
		reward += res.Reward
		c.firesExtinguished += res.FiresExtinguished
		c.waterUsed += res.WaterUsed
		decisions = append(decisions, guardian.DecisionRecord{
			Step:       c.step,
			AgentID:    agent.ID,
			ActionCode: int(d.Action),
			Source:     string(d.Source),
			Reason:     d.Reason,
		})
	}

	c.spread.Tick(c.world.Grid)

	activeFires := c.world.Grid.FireCount()
	reward -= forest.PenaltyPerActiveFire * float64(activeFires)

	if c.destructionRatio() >= forest.TreeLossFailureFraction {
		reward -= forest.PenaltyTerminalFailure
		c.status = StatusTerminatedFailure
	} else if activeFires == 0 {
		reward += forest.RewardTerminalSuccess
		c.status = StatusTerminatedSuccess
	} else if c.step >= c.cfg.MaxSteps {
		c.status = StatusTruncated
	}

	c.totalReward += reward

	if err := c.checkInvariants(); err != nil {
		return StepResult{}, err
	}

	if c.status != StatusRunning && c.metrics != nil {
		c.metrics.RecordOutcome(string(c.status))
	}
	c.notifySinks(ctx, decisions, reward, activeFires)

	return StepResult{
		Observation: c.Observation(),
		Reward:      reward,
		Terminated:  c.status == StatusTerminatedSuccess || c.status == StatusTerminatedFailure,
		Truncated:   c.status == StatusTruncated,
		Info:        c.Info(),
	}, nil
}

func (c *Controller) destructionRatio() float64 {
	if c.world.InitialTreeCount == 0 {
		return 0
	}
	remaining := c.world.Grid.TreeCount()
	return 1 - float64(remaining)/float64(c.world.InitialTreeCount)
}

type Info struct {
	Step           int     `json:"step"`
	Status         Status  `json:"status"`
	OperarioCount  int     `json:"operario_count"`
	NavegadorCount int     `json:"navegador_count"`
	PolicyFailures int     `json:"policy_failures"`
	ActiveFires    int     `json:"active_fires"`
	TreesSavedPct  float64 `json:"trees_saved_pct"`
	TotalReward    float64 `json:"total_reward"`
}

func (c *Controller) Info() Info {
	operario, navegador, failures := c.manager.Counts()
	return Info{
		Step:           c.step,
		Status:         c.status,
		OperarioCount:  operario,
		NavegadorCount: navegador,
		PolicyFailures: failures,
		ActiveFires:    c.world.Grid.FireCount(),
		TreesSavedPct:  c.treesSavedPct(),
		TotalReward:    c.totalReward,
	}
}

func (c *Controller) treesSavedPct() float64 {
	if c.world.InitialTreeCount == 0 {
		return 0
	}
	return float64(c.world.Grid.TreeCount()) / float64(c.world.InitialTreeCount) * 100
}

// Summary builds the terminal mission KPIs. Meaningful once the episode has
// left the running state.
func (c *Controller) Summary() ports.MissionSummary {
	operario, navegador, failures := c.manager.Counts()
	return ports.MissionSummary{
		EpisodeID:         c.ID,
		Status:            string(c.status),
		Steps:             c.step,
		TotalReward:       c.totalReward,
		InitialTrees:      c.world.InitialTreeCount,
		FinalTrees:        c.world.Grid.TreeCount(),
		TreesSavedPct:     c.treesSavedPct(),
		FiresExtinguished: c.firesExtinguished,
		WaterUsed:         c.waterUsed,
		OperarioCount:     operario,
		NavegadorCount:    navegador,
		PolicyFailures:    failures,
		GridSize:          c.cfg.Size,
		NumAgents:         c.cfg.NumAgents,
		FireSpreadProb:    c.cfg.FireSpreadProb,
		Seed:              c.cfg.Seed,
		EndedAt:           time.Now().UTC(),
	}
}

// notifySinks fans the step snapshot out to observers. Sink errors and
// panics are logged and swallowed; they never reach the step loop.
func (c *Controller) notifySinks(ctx context.Context, decisions []guardian.DecisionRecord, reward float64, activeFires int) {
	if len(c.sinks) == 0 {
		return
	}
	snap := ports.StepSnapshot{
		EpisodeID:   c.ID,
		Step:        c.step,
		Grid:        c.world.Grid.Export(),
		Agents:      c.Observation().Agents,
		Decisions:   decisions,
		Reward:      reward,
		ActiveFires: activeFires,
		Terminal:    c.status != StatusRunning,
	}
	if snap.Terminal {
		summary := c.Summary()
		snap.Summary = &summary
	}
	for _, sink := range c.sinks {
		c.dispatch(ctx, sink, snap)
	}
}

func (c *Controller) dispatch(ctx context.Context, sink ports.StepSink, snap ports.StepSnapshot) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("episode %s: sink panic at step %d: %v", c.ID, snap.Step, r)
		}
	}()
	if err := sink.OnStep(ctx, snap); err != nil {
		log.Printf("episode %s: sink error at step %d: %v", c.ID, snap.Step, err)
	}
}

// checkInvariants asserts the step-boundary invariants. A violation is a
// bug in the resolver or spread engine, not a recoverable condition.
func (c *Controller) checkInvariants() error {
	g := c.world.Grid
	for col := 0; col < g.Size(); col++ {
		if s := g.At(g.RiverRow(), col).State; s != forest.CellEmpty {
			return fmt.Errorf("%w: river row cell %d is %v", ErrInvariantViolation, col, s)
		}
	}
	seen := map[forest.Position]int{}
	for _, a := range c.agents {
		if a.WaterLevel < 0 || a.WaterLevel > c.cfg.MaxWater {
			return fmt.Errorf("%w: agent %d water level %d outside [0,%d]", ErrInvariantViolation, a.ID, a.WaterLevel, c.cfg.MaxWater)
		}
		if !g.IsWithinBounds(a.Pos.Row, a.Pos.Col) {
			return fmt.Errorf("%w: agent %d position %v out of bounds", ErrInvariantViolation, a.ID, a.Pos)
		}
		if other, ok := seen[a.Pos]; ok {
			return fmt.Errorf("%w: agents %d and %d share cell %v", ErrInvariantViolation, other, a.ID, a.Pos)
		}
		seen[a.Pos] = a.ID
	}
	return nil
}
