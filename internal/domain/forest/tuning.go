package forest

const (
	MinGridSize = 8

	DefaultGridSize         = 10
	DefaultTreeDensity      = 0.6
	DefaultFireSpreadProb   = 0.1
	DefaultInitialFires     = 3
	DefaultNumAgents        = 2
	DefaultMaxSteps         = 200
	DefaultMaxWater         = 5
	DefaultRiverRow         = 0
	DefaultBurnoutThreshold = 8

	ExtinguishRadius = 1 // 3x3 window around the agent
	WaterRefillRate  = 1

	LowWaterThreshold = 3

	RewardCut               = 1.0
	RewardExtinguishPerFire = 10.0
	RewardRiverRefill       = 0.5
	PenaltyNoWater          = 0.5
	MoveCost                = 0.05
	PenaltyPerActiveFire    = 0.1

	RewardTerminalSuccess   = 50.0
	PenaltyTerminalFailure  = 100.0
	TreeLossFailureFraction = 0.8

	// Wind factor bounds from the Rothermel-inspired spread model.
	WindFactorMin = 0.15
	WindFactorMax = 5.0

	SlopeFactorUphill   = 8.0
	SlopeFactorDownhill = 0.3

	MoistureDecayCoeff = 0.1
)
