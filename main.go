package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"martis/env"
	"martis/experiments"
	"martis/experiments/metrics"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "martis",
		Short: "Martis Game: a Casio-style program-editing game behind an episodic RL interface.",
	}

	var (
		configPath string
		episodes   int
		seed       uint64
		reseed     bool
		outDir     string
	)

	evalCmd := &cobra.Command{
		Use:   "eval",
		Short: "Run random-policy episodes and record per-episode returns",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(configPath, episodes, seed, reseed, outDir)
		},
	}
	evalCmd.Flags().StringVar(&configPath, "config", "", "YAML environment config (defaults used when empty)")
	evalCmd.Flags().IntVar(&episodes, "episodes", 10, "number of episodes to play")
	evalCmd.Flags().Uint64Var(&seed, "seed", 0, "base seed")
	evalCmd.Flags().BoolVar(&reseed, "reseed", false, "reseed before every episode (seed + episode index)")
	evalCmd.Flags().StringVar(&outDir, "out", "experiments/eval", "directory for CSV records")

	for _, envFile := range []string{
		".env",
		"../../.env",
	} {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	rootCmd.AddCommand(evalCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runEval(configPath string, episodes int, seed uint64, reseed bool, outDir string) error {
	envCfg := env.DefaultConfig()
	if configPath != "" {
		var err error
		envCfg, err = env.LoadConfig(configPath)
		if err != nil {
			return err
		}
	}
	if path := os.Getenv("MARTIS_REPLAY_PATH"); path != "" && envCfg.ReplayPath == nil {
		envCfg.ReplayPath = &path
	}

	records, err := experiments.RunRandomRollouts(envCfg, experiments.RolloutConfig{
		Episodes: episodes,
		Seed:     seed,
		Reseed:   reseed,
	})
	if err != nil {
		return err
	}

	writer, err := metrics.NewWriter(outDir)
	if err != nil {
		return err
	}
	if err := writer.WriteEpisodeRecords(records); err != nil {
		return err
	}

	var total float64
	for _, r := range records {
		total += r.Return
	}
	fmt.Printf("Played %d episodes, mean return %.4f, records in %s\n",
		len(records), total/float64(len(records)), writer.BaseDir())
	return nil
}
