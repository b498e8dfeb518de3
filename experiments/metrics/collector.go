package metrics

import (
	"time"

	"github.com/google/uuid"
)

// EpisodeRecord is one finished episode as seen through the adapter.
type EpisodeRecord struct {
	ID        uuid.UUID
	Episode   int
	Seed      uint64
	Steps     int
	Return    float64
	Truncated bool
	StartTime time.Time
	Duration  time.Duration
}

// Collector accumulates one episode at a time.
type Collector interface {
	Start(episode int, seed uint64)
	AddStep(reward float64)
	Complete(truncated bool) EpisodeRecord
}

type collector struct {
	episode   int
	seed      uint64
	steps     int
	ret       float64
	startTime time.Time
}

func NewCollector() Collector {
	return &collector{}
}

func (c *collector) Start(episode int, seed uint64) {
	c.episode = episode
	c.seed = seed
	c.steps = 0
	c.ret = 0
	c.startTime = time.Now()
}

func (c *collector) AddStep(reward float64) {
	c.steps++
	c.ret += reward
}

func (c *collector) Complete(truncated bool) EpisodeRecord {
	return EpisodeRecord{
		ID:        uuid.New(),
		Episode:   c.episode,
		Seed:      c.seed,
		Steps:     c.steps,
		Return:    c.ret,
		Truncated: truncated,
		StartTime: c.startTime,
		Duration:  time.Since(c.startTime),
	}
}

type dummyCollector struct{}

// NewDummyCollector returns a collector that records nothing.
func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (c *dummyCollector) Start(episode int, seed uint64)        {}
func (c *dummyCollector) AddStep(reward float64)                {}
func (c *dummyCollector) Complete(truncated bool) EpisodeRecord { return EpisodeRecord{} }
