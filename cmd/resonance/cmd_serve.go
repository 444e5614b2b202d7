package main

import (
	"context"
	"fmt"

	"github.com/oscillab/resonance/internal/mcpserver"
	"github.com/spf13/cobra"
)

// newServeCmd creates the 'serve' command: an MCP server over stdio.
func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the discrete engine over MCP (stdio)",
		Long: `Starts an MCP server on stdin/stdout exposing one discrete engine
instance as tools (resonance_status, resonance_tick, resonance_boost,
resonance_dampen, resonance_reset, resonance_recover).

Intended to be launched by an MCP client, not interactively.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			preset, _ := cmd.Flags().GetString("preset")
			flagSeed, _ := cmd.Flags().GetInt64("seed")

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if preset == "" {
				preset = cfg.Preset
			}

			server, err := mcpserver.NewServer(&mcpserver.Config{
				Name:    "resonance",
				Version: version,
				Preset:  preset,
				Seed:    resolveSeed(flagSeed, cfg.Seed),
				DataDir: cfg.DataDir,
			})
			if err != nil {
				return fmt.Errorf("creating MCP server: %w", err)
			}
			defer server.Close()

			return server.Run(context.Background())
		},
	}

	cmd.Flags().String("preset", "", "Engine preset: fast or precise (default: config preset)")
	cmd.Flags().Int64("seed", 0, "Random seed (0 = config seed, then time)")

	return cmd
}
