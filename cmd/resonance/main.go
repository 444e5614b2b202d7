package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/oscillab/resonance/internal/config"
	"github.com/spf13/cobra"
)

var version = "0.1.0-dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "resonance",
		Short: "Prime-indexed oscillator resonance substrate",
		Long: `resonance simulates networks of prime-indexed oscillators.

It provides two engines: a continuous Kuramoto network with adaptive
coupling, and a discrete phase-synchronization engine with Hebbian
coupling adaptation, semantic accumulation, and lockup detection.`,
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default: ~/.resonance/config.yaml)")

	rootCmd.AddCommand(
		newVersionCmd(),
		newRunCmd(),
		newTickCmd(),
		newPresetsCmd(),
		newRunsCmd(),
		newExportCmd(),
		newServeCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]string{"version": version})
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "resonance version %s\n", version)
			}
		},
	}
}

// loadConfig resolves the effective configuration, honoring --config.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path != "" {
		cfg, err := config.LoadFromFile(path)
		if err != nil {
			return nil, err
		}
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolveSeed picks the effective seed: the flag wins, then the config,
// then the clock.
func resolveSeed(flagSeed, configSeed int64) int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	if configSeed != 0 {
		return configSeed
	}
	return time.Now().UnixNano()
}
