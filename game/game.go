package game

import (
	"errors"
	"fmt"

	"golang.org/x/exp/rand"
)

// Actions. The game is edited Casio style: a cursor walks the program
// token by token, up-presses bump the token under it, and a run action
// scores the program.
const (
	ActionCursorRight = iota
	ActionIncrementToken
	ActionCycleIncrement
	ActionRun

	// NumActions is the cardinality of the action set.
	NumActions = 4
)

// MaxEpisodeSteps truncates episodes that never run their program.
const MaxEpisodeSteps = 500

// ErrInvalidAction reports an action outside [0, NumActions).
var ErrInvalidAction = errors.New("invalid action")

// Game is the Martis Game engine: the player edits a fixed learner
// program and is rewarded by how well the result fits a regression task
// sampled at reset. One Game serves one caller at a time.
type Game struct {
	rng   *rand.Rand
	prog  Program
	task  *Task
	line  int
	steps int
	over  bool
}

// New builds an engine around rng; a nil rng gets a default source.
func New(rng *rand.Rand) *Game {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &Game{rng: rng}
}

// Reset reloads the default program, samples a fresh task, and returns
// the initial observation.
func (g *Game) Reset() []int8 {
	g.prog = MustParseProgram(DefaultProgram)
	g.task = NewTask(g.rng)
	g.line = 0
	g.steps = 0
	g.over = false
	return g.State()
}

// State encodes the program with the cursor on the active line.
func (g *Game) State() []int8 {
	if g.prog == nil {
		g.prog = MustParseProgram(DefaultProgram)
	}
	line := g.line
	if g.over || line >= len(g.prog) {
		line = -1
	}
	return g.prog.Encode(line)
}

// Program exposes the current program, for display and replay tooling.
func (g *Game) Program() Program {
	return g.prog
}

// Step applies one action. Terminated is set when the cursor leaves the
// last line or the program is run; truncated when the step limit is hit.
// An out-of-range action is an error for the caller to surface.
func (g *Game) Step(action int) (obs []int8, reward float64, terminated, truncated bool, info map[string]any, err error) {
	info = map[string]any{}
	if action < 0 || action >= NumActions {
		return nil, 0, false, false, nil, fmt.Errorf("%w: %d not in [0, %d)", ErrInvalidAction, action, NumActions)
	}
	if g.prog == nil {
		g.Reset()
	}
	if g.over {
		return nil, 0, false, false, nil, errors.New("episode is over, call Reset")
	}

	switch action {
	case ActionCursorRight:
		if cerr := g.prog[g.line].CursorRight(); errors.Is(cerr, ErrNextStatement) {
			g.line++
			if g.line >= len(g.prog) {
				terminated = true
			}
		}
	case ActionIncrementToken:
		g.prog[g.line].IncrementToken()
	case ActionCycleIncrement:
		g.prog[g.line].CycleIncrement()
	case ActionRun:
		terminated = true
	}

	g.steps++
	if terminated {
		reward = g.task.Evaluate(g.prog)
		g.over = true
	} else if g.steps >= MaxEpisodeSteps {
		truncated = true
		g.over = true
	}
	info["steps"] = g.steps

	return g.State(), reward, terminated, truncated, info, nil
}

// Steps returns the number of steps taken this episode.
func (g *Game) Steps() int {
	return g.steps
}
