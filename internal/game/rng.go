package game

import "math/rand"

// Roller is the engine's only source of randomness: a single uniform
// probability-threshold primitive. Injecting it keeps battles seedable and
// lets tests force outcomes.
type Roller interface {
	// Succeeds returns true with probability chance (expected in [0, 1]).
	Succeeds(chance float64) bool
}

type randRoller struct {
	rng *rand.Rand
}

// NewRoller returns a Roller backed by a seeded math/rand source.
func NewRoller(seed int64) Roller {
	return &randRoller{rng: rand.New(rand.NewSource(seed))}
}

func (r *randRoller) Succeeds(chance float64) bool {
	return r.rng.Float64() < chance
}
