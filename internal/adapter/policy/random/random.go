// Package random is a seeded uniform policy, useful as an exploration
// baseline and in tests that exercise the Manager's fallback path.
package random

import (
	"math/rand"

	"forestguardian/internal/domain/forest"
)

type Policy struct {
	rng *rand.Rand
}

func New(seed int64) *Policy {
	return &Policy{rng: rand.New(rand.NewSource(seed))}
}

func (p *Policy) Decide(forest.Observation) (int, error) {
	return p.rng.Intn(forest.ActionCount), nil
}
