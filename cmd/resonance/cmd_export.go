package main

import (
	"context"
	"fmt"

	"github.com/oscillab/resonance/internal/export"
	"github.com/oscillab/resonance/internal/runlog"
	"github.com/spf13/cobra"
)

// newExportCmd creates the 'export' command: write a recorded run's tick
// series as an Arrow IPC file.
func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <run-id>",
		Short: "Export a recorded run as an Arrow IPC file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, _ := cmd.Flags().GetString("out")

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
			run, err := store.GetRun(ctx, args[0])
			if err != nil {
				return err
			}
			samples, err := store.Samples(ctx, run.ID)
			if err != nil {
				return err
			}

			if out == "" {
				out = run.ID + ".arrow"
			}
			if err := export.WriteFile(out, samples); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d samples to %s\n", len(samples), out)
			return nil
		},
	}

	cmd.Flags().String("out", "", "Output path (default: <run-id>.arrow)")

	return cmd
}
