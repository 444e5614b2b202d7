package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"

	"github.com/oscillab/resonance/internal/config"
	"github.com/oscillab/resonance/internal/discrete"
	"github.com/oscillab/resonance/internal/logging"
	"github.com/oscillab/resonance/internal/runlog"
	"github.com/spf13/cobra"
)

// newTickCmd creates the 'tick' command: a batch discrete-engine simulation.
func newTickCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tick",
		Short: "Run the discrete phase-synchronization engine",
		Long: `Starts a discrete engine from a named preset, optionally boosts a set
of prime-addressed oscillators, ticks for a fixed number of steps, and
prints the final tick result.

Examples:
  resonance tick --ticks 200
  resonance tick --preset precise --boost 7 --boost 11 --ticks 500
  resonance tick --boost 2 --amount 5.0 --seed 42 --record`,
		RunE: runDiscrete,
	}

	cmd.Flags().String("preset", "", "Engine preset: fast or precise (default: config preset)")
	cmd.Flags().Int("ticks", 100, "Number of ticks")
	cmd.Flags().IntSlice("boost", nil, "Primes to boost before ticking (repeatable)")
	cmd.Flags().Float64("amount", 0, "Boost amount (0 = preset base boost)")
	cmd.Flags().Int64("seed", 0, "Random seed (0 = config seed, then time)")
	cmd.Flags().Bool("record", false, "Record the run to the data directory")

	return cmd
}

func runDiscrete(cmd *cobra.Command, args []string) error {
	preset, _ := cmd.Flags().GetString("preset")
	ticks, _ := cmd.Flags().GetInt("ticks")
	boosts, _ := cmd.Flags().GetIntSlice("boost")
	amount, _ := cmd.Flags().GetFloat64("amount")
	flagSeed, _ := cmd.Flags().GetInt64("seed")
	record, _ := cmd.Flags().GetBool("record")
	jsonOut, _ := cmd.Flags().GetBool("json")

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if preset == "" {
		preset = cfg.Preset
	}

	engineCfg, err := config.Preset(preset)
	if err != nil {
		return err
	}

	logger := logging.NewLogger(cfg.Logging.Level, os.Stderr)
	seed := resolveSeed(flagSeed, cfg.Seed)

	engine := discrete.NewEngine(engineCfg, rand.New(rand.NewSource(seed)))
	engine.Start()

	for _, prime := range boosts {
		engine.BoostPrime(prime, amount)
	}

	logger.Info("starting discrete run",
		"preset", preset, "ticks", ticks, "boosts", len(boosts), "seed", seed)

	var store *runlog.Store
	var run runlog.Run
	ctx := context.Background()
	if record {
		store, err = runlog.Open(cfg.DataDir)
		if err != nil {
			return fmt.Errorf("opening run log: %w", err)
		}
		defer store.Close()

		run, err = store.CreateRun(ctx, "discrete", preset, seed)
		if err != nil {
			return fmt.Errorf("creating run: %w", err)
		}
	}

	tickLog := logging.NewTickLogger(cfg.DataDir, cfg.Logging.Level)
	defer tickLog.Close()

	var result discrete.TickResult
	for tick := 0; tick < ticks; tick++ {
		result = engine.Tick()

		tickLog.Log(map[string]any{
			"engine":    "discrete",
			"tick":      tick,
			"fired":     result.Fired,
			"coherence": result.Coherence,
			"entropy":   result.Entropy,
			"margin":    result.StabilizationMargin,
			"active":    result.ActiveCount,
		})

		if store != nil {
			sample := runlog.Sample{
				Tick:         uint64(tick),
				Coherence:    result.Coherence,
				Entropy:      result.Entropy,
				Margin:       result.StabilizationMargin,
				ActiveCount:  result.ActiveCount,
				DominantBin:  result.DominantPhaseBin,
				PeakPrime:    result.PeakPrime,
				DominantAxis: result.DominantSemanticAxis,
				Fired:        result.Fired,
			}
			if err := store.AppendSample(ctx, run.ID, sample); err != nil {
				return fmt.Errorf("recording tick %d: %w", tick, err)
			}
		}
	}

	if engine.LockedUp() {
		logger.Warn("engine locked up", "ticks", ticks)
	}

	if jsonOut {
		out := map[string]any{
			"preset":    preset,
			"ticks":     ticks,
			"seed":      seed,
			"result":    result,
			"locked_up": engine.LockedUp(),
		}
		if record {
			out["run_id"] = run.ID
		}
		return json.NewEncoder(cmd.OutOrStdout()).Encode(out)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Ran %d ticks on the %s preset (seed %d)\n", ticks, preset, seed)
	fmt.Fprintf(w, "  fired:     %v\n", result.Fired)
	fmt.Fprintf(w, "  coherence: %.4f\n", result.Coherence)
	fmt.Fprintf(w, "  entropy:   %.4f\n", result.Entropy)
	fmt.Fprintf(w, "  margin:    %.4f\n", result.StabilizationMargin)
	fmt.Fprintf(w, "  active:    %d\n", result.ActiveCount)
	fmt.Fprintf(w, "  peak prime: %d\n", result.PeakPrime)
	fmt.Fprintf(w, "  locked up: %v\n", engine.LockedUp())
	if record {
		fmt.Fprintf(w, "  recorded as run %s\n", run.ID)
	}
	return nil
}
