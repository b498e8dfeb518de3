// Package env adapts the Martis Game engine to an episodic
// reset/step/observe protocol consumable by a generic training loop. The
// adapter owns space declarations, action normalization, termination-flag
// merging and per-episode return bookkeeping; the game rules live in the
// engine behind the Engine interface.
package env

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"martis/game"
)

const (
	// DefaultObsBits is the observation size advertised at construction.
	// After Reset the space is re-derived from the engine constants; the
	// two are kept as separate dimensions on purpose.
	DefaultObsBits = 1280

	// DefaultReplayPath is used when replay saving is enabled without an
	// explicit path.
	DefaultReplayPath = "./video"

	defaultSeed = 1
)

// Engine is the game collaborator: it owns the rules, the board state and
// the win/loss logic. The adapter treats it as a black box.
type Engine interface {
	Reset() []int8
	Step(action int) (obs []int8, reward float64, terminated, truncated bool, info map[string]any, err error)
}

// Observation is one observation record: the raw binary observation, the
// action legality mask (all-ones, masking is not implemented) and the
// to-play sentinel (-1, single player).
type Observation struct {
	Bits       []int8
	ActionMask []int8
	ToPlay     int
}

// Timestep is what one Step returns. Done merges the engine's terminated
// and truncated flags; Info carries "eval_episode_return" exactly on the
// terminal step.
type Timestep struct {
	Obs    Observation
	Reward float64
	Done   bool
	Info   map[string]any
}

// Action is a length-1 action vector, the array-shaped form RandomAction
// returns.
type Action []int64

// Env exposes the engine through reset/step plus seeding, replay-intent
// and teardown bookkeeping. One Env serves exactly one caller at a time;
// nothing here is goroutine-safe.
type Env struct {
	cfg    Config
	engine Engine
	rng    *rand.Rand

	obsSpace MultiBinary
	actSpace *Discrete
	rewSpace Box

	ret         returnAccumulator
	initialized bool

	seed        uint64
	seedSet     bool
	dynamicSeed bool
	replayPath  *string
}

// Option tweaks construction.
type Option func(*Env)

// WithEngine injects an engine, bypassing the factory registry. Tests use
// this to script engine behavior.
func WithEngine(engine Engine) Option {
	return func(e *Env) {
		e.engine = engine
	}
}

// WithRand injects the random source the adapter (and the default engine)
// will own.
func WithRand(rng *rand.Rand) Option {
	return func(e *Env) {
		e.rng = rng
	}
}

// New builds an adapter from cfg. The engine comes from the factory
// registered under cfg.EnvID unless one is injected.
func New(cfg Config, opts ...Option) (*Env, error) {
	e := &Env{
		cfg:        cfg,
		obsSpace:   NewMultiBinary(DefaultObsBits),
		actSpace:   NewDiscrete(game.NumActions),
		rewSpace:   NewBox(0.0, 1.0),
		replayPath: cfg.ReplayPath,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(defaultSeed))
	}
	if e.engine == nil {
		factory, err := engineFor(cfg.EnvID)
		if err != nil {
			return nil, err
		}
		e.engine = factory(e.rng)
	}
	return e, nil
}

// Reset starts a new episode and returns the first observation. The
// observation space is re-derived from the engine constants here, which
// may disagree with the construction-time declaration.
func (e *Env) Reset() (Observation, error) {
	obs := e.engine.Reset()

	e.obsSpace = NewMultiBinary(game.MaxLines * game.WordBits)
	e.ret.Reset()
	e.initialized = true

	log.Debug().Str("env_id", e.cfg.EnvID).Msg("environment reset")

	return Observation{
		Bits:       obs,
		ActionMask: e.allOnesMask(),
		ToPlay:     -1,
	}, nil
}

// Step advances the episode by one action. Bounds are not validated
// here: an out-of-range action goes to the engine, whose error comes back
// unwrapped. On the terminal step Info gains "eval_episode_return" with
// the episode's cumulative reward.
func (e *Env) Step(action int64) (Timestep, error) {
	obs, reward, terminated, truncated, info, err := e.engine.Step(int(action))
	if err != nil {
		return Timestep{}, err
	}
	done := terminated || truncated

	e.ret.Add(reward)
	if info == nil {
		info = map[string]any{}
	}
	if done {
		info["eval_episode_return"] = e.ret.Value()
	}

	return Timestep{
		Obs: Observation{
			Bits:       obs,
			ActionMask: e.allOnesMask(),
			ToPlay:     -1,
		},
		Reward: reward,
		Done:   done,
		Info:   info,
	}, nil
}

// StepVector collapses a length-1 action vector to its scalar and steps
// with it. Any other length is an error.
func (e *Env) StepVector(action Action) (Timestep, error) {
	if len(action) != 1 {
		return Timestep{}, fmt.Errorf("action vector must have length 1, got %d", len(action))
	}
	return e.Step(action[0])
}

// Seed records the seed and the dynamic-reseed flag and reseeds the
// adapter-owned source immediately. The dynamic flag is bookkeeping only;
// per-episode reseeding is the caller's job.
func (e *Env) Seed(seed uint64, dynamic bool) {
	e.seed = seed
	e.seedSet = true
	e.dynamicSeed = dynamic
	e.rng.Seed(seed)
}

// EnableSaveReplay records the intent to persist a replay. An empty path
// selects the default. No recording happens here; an external renderer
// consumes the setting.
func (e *Env) EnableSaveReplay(path string) {
	if path == "" {
		path = DefaultReplayPath
	}
	e.replayPath = &path
}

// ReplayPath returns the recorded replay destination, nil when replay
// saving was never requested.
func (e *Env) ReplayPath() *string {
	return e.replayPath
}

// Close tears the adapter down. Safe to call repeatedly and before the
// first Reset; it never fails.
func (e *Env) Close() {
	if e.initialized {
		// engine teardown placeholder
	}
	e.initialized = false
}

// RandomAction samples uniformly from the action space, wrapped as a
// length-1 vector for callers that expect array-shaped actions.
func (e *Env) RandomAction() Action {
	return Action{int64(e.actSpace.Sample())}
}

// ObservationSpace returns the currently advertised observation space.
func (e *Env) ObservationSpace() MultiBinary {
	return e.obsSpace
}

// ActionSpace returns the discrete action space.
func (e *Env) ActionSpace() *Discrete {
	return e.actSpace
}

// RewardSpace returns the scalar reward bounds.
func (e *Env) RewardSpace() Box {
	return e.rewSpace
}

func (e *Env) allOnesMask() []int8 {
	mask := make([]int8, e.actSpace.N)
	for i := range mask {
		mask[i] = 1
	}
	return mask
}

func (e *Env) String() string {
	return "MartisGame Env"
}
