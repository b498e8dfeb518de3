package env

import "golang.org/x/exp/rand"

// Space descriptors: shape, type and bounds of what the environment
// consumes and produces. Only the three kinds the adapter declares are
// modeled.

// Discrete is an action space of n actions, 0..n-1. It owns its rand
// source so sampling is reproducible per instance.
type Discrete struct {
	N   int
	rng *rand.Rand
}

// NewDiscrete declares a discrete space seeded to the fixed default, so
// default sampling is deterministic.
func NewDiscrete(n int) *Discrete {
	d := &Discrete{N: n}
	d.Seed(0)
	return d
}

// Seed reseeds the space's sampling source.
func (d *Discrete) Seed(seed uint64) {
	d.rng = rand.New(rand.NewSource(seed))
}

// Sample draws a uniform action index.
func (d *Discrete) Sample() int {
	return d.rng.Intn(d.N)
}

// Contains reports whether action is inside the space.
func (d *Discrete) Contains(action int) bool {
	return action >= 0 && action < d.N
}

// MultiBinary is a fixed-size vector of {0,1} entries.
type MultiBinary struct {
	N int
}

func NewMultiBinary(n int) MultiBinary {
	return MultiBinary{N: n}
}

// Box is a bounded scalar interval.
type Box struct {
	Low  float64
	High float64
}

func NewBox(low, high float64) Box {
	return Box{Low: low, High: high}
}
