package main

import (
	"encoding/json"
	"fmt"

	"github.com/oscillab/resonance/internal/config"
	"github.com/oscillab/resonance/internal/discrete"
	"github.com/spf13/cobra"
)

// newPresetsCmd creates the 'presets' command.
func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the discrete engine presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")

			presets := make(map[string]discrete.Config, 2)
			for _, name := range config.PresetNames() {
				engineCfg, err := config.Preset(name)
				if err != nil {
					return err
				}
				presets[name] = engineCfg
			}

			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(presets)
			}

			w := cmd.OutOrStdout()
			for _, name := range config.PresetNames() {
				p := presets[name]
				fmt.Fprintf(w, "%s:\n", name)
				fmt.Fprintf(w, "  oscillators:      %d\n", p.NumOscillators)
				fmt.Fprintf(w, "  phase resolution: %d\n", p.PhaseResolution)
				fmt.Fprintf(w, "  amplitude decay:  %.2f\n", p.AmplitudeDecay)
				fmt.Fprintf(w, "  coupling K:       %.1f\n", p.CouplingStrength)
				fmt.Fprintf(w, "  fire threshold:   %.2f\n", p.CoherenceThreshold)
				fmt.Fprintf(w, "  learning rate:    %.2f\n", p.HebbianLearningRate)
				fmt.Fprintf(w, "  lockup window:    %d\n", p.LockupWindow)
			}
			return nil
		},
	}
}
