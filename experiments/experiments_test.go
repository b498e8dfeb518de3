package experiments

import (
	"testing"

	"github.com/stretchr/testify/require"

	"martis/env"
)

func TestRunRandomRollouts(t *testing.T) {
	t.Run("plays the requested episodes", func(t *testing.T) {
		records, err := RunRandomRollouts(env.DefaultConfig(), RolloutConfig{
			Episodes: 3,
			Seed:     5,
		})
		require.NoError(t, err)
		require.Len(t, records, 3)

		for _, r := range records {
			require.Greater(t, r.Steps, 0)
			require.GreaterOrEqual(t, r.Return, 0.0)
			require.LessOrEqual(t, r.Return, 1.0)
			require.Equal(t, uint64(5), r.Seed)
		}
	})

	t.Run("per episode reseeding varies the seed", func(t *testing.T) {
		records, err := RunRandomRollouts(env.DefaultConfig(), RolloutConfig{
			Episodes: 2,
			Seed:     100,
			Reseed:   true,
		})
		require.NoError(t, err)
		require.Len(t, records, 2)
		require.Equal(t, uint64(100), records[0].Seed)
		require.Equal(t, uint64(101), records[1].Seed)
	})

	t.Run("rejects a non positive episode count", func(t *testing.T) {
		_, err := RunRandomRollouts(env.DefaultConfig(), RolloutConfig{Episodes: 0})
		require.Error(t, err)
	})

	t.Run("unknown env id surfaces", func(t *testing.T) {
		cfg := env.DefaultConfig()
		cfg.EnvID = "NoSuchGame-v0"
		_, err := RunRandomRollouts(cfg, RolloutConfig{Episodes: 1})
		require.Error(t, err)
	})
}
