package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/oscillab/resonance/internal/runlog"
	"github.com/spf13/cobra"
)

// newRunsCmd creates the 'runs' command: list recorded runs or inspect one.
func newRunsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "runs [run-id]",
		Short: "List recorded runs, or show one run's samples",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			store, err := runlog.Open(cfg.DataDir)
			if err != nil {
				return fmt.Errorf("opening run log: %w", err)
			}
			defer store.Close()

			ctx := context.Background()
			w := cmd.OutOrStdout()

			if len(args) == 0 {
				runs, err := store.ListRuns(ctx)
				if err != nil {
					return err
				}
				if jsonOut {
					return json.NewEncoder(w).Encode(runs)
				}
				if len(runs) == 0 {
					fmt.Fprintln(w, "No recorded runs.")
					return nil
				}
				for _, run := range runs {
					fmt.Fprintf(w, "%s  %-10s  %-8s  seed=%-12d  %s\n",
						run.ID, run.Engine, run.Preset, run.Seed,
						run.CreatedAt.Format("2006-01-02 15:04:05"))
				}
				return nil
			}

			run, err := store.GetRun(ctx, args[0])
			if err != nil {
				return err
			}
			samples, err := store.Samples(ctx, run.ID)
			if err != nil {
				return err
			}

			if jsonOut {
				return json.NewEncoder(w).Encode(map[string]any{
					"run":     run,
					"samples": samples,
				})
			}

			fmt.Fprintf(w, "Run %s (%s", run.ID, run.Engine)
			if run.Preset != "" {
				fmt.Fprintf(w, "/%s", run.Preset)
			}
			fmt.Fprintf(w, ", seed %d): %d samples\n", run.Seed, len(samples))
			for _, sample := range samples {
				fmt.Fprintf(w, "  tick %4d  coherence=%.4f  entropy=%.4f  active=%d  fired=%v\n",
					sample.Tick, sample.Coherence, sample.Entropy, sample.ActiveCount, sample.Fired)
			}
			return nil
		},
	}
}
