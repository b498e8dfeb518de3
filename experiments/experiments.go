// Package experiments drives the environment adapter with a random
// policy, recording per-episode returns. It is an evaluation harness, not
// a trainer: no policy is learned and no rollouts leave the process.
package experiments

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"martis/env"
	"martis/experiments/metrics"
	"martis/game"
)

// RolloutConfig parameterizes one evaluation run.
type RolloutConfig struct {
	Episodes int
	Seed     uint64
	// Reseed reseeds the adapter before every episode (seed + episode
	// index) instead of once up front.
	Reseed bool
}

// RunRandomRollouts plays cfg.Episodes episodes with uniformly random
// actions and returns one record per episode.
func RunRandomRollouts(envCfg env.Config, cfg RolloutConfig) ([]metrics.EpisodeRecord, error) {
	if cfg.Episodes <= 0 {
		return nil, fmt.Errorf("episodes must be > 0, got %d", cfg.Episodes)
	}

	e, err := env.New(envCfg)
	if err != nil {
		return nil, fmt.Errorf("build environment: %w", err)
	}
	defer e.Close()

	e.Seed(cfg.Seed, cfg.Reseed)

	collector := metrics.NewCollector()
	records := make([]metrics.EpisodeRecord, 0, cfg.Episodes)

	for episode := 0; episode < cfg.Episodes; episode++ {
		seed := cfg.Seed
		if cfg.Reseed {
			// The adapter records the dynamic flag only; per-episode
			// reseeding is on us.
			seed = cfg.Seed + uint64(episode)
			e.Seed(seed, true)
		}

		if _, err := e.Reset(); err != nil {
			return nil, fmt.Errorf("episode %d reset: %w", episode, err)
		}
		collector.Start(episode, seed)

		for {
			ts, err := e.StepVector(e.RandomAction())
			if err != nil {
				return nil, fmt.Errorf("episode %d step: %w", episode, err)
			}
			collector.AddStep(ts.Reward)
			if ts.Done {
				ret, ok := ts.Info["eval_episode_return"].(float64)
				if !ok {
					return nil, fmt.Errorf("episode %d terminal step carries no eval_episode_return", episode)
				}
				record := collector.Complete(!isTerminated(ts))
				if record.Return != ret {
					return nil, fmt.Errorf("episode %d return mismatch: adapter %v, harness %v", episode, ret, record.Return)
				}
				records = append(records, record)
				log.Info().
					Int("episode", episode).
					Int("steps", record.Steps).
					Float64("return", record.Return).
					Msg("episode finished")
				break
			}
		}
	}

	return records, nil
}

func isTerminated(ts env.Timestep) bool {
	// The adapter merges the flags into Done; the engine leaves its step
	// count in Info, so truncation shows as a full-length episode.
	steps, ok := ts.Info["steps"].(int)
	return !ok || steps < game.MaxEpisodeSteps
}
