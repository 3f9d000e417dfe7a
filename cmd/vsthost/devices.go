package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nullrend/vsthost/pkg/engine"
)

// devicesCommand lists backends and the current backend's capture and
// playback devices, applying --backend from the persistent flag if set.
func devicesCommand(cfg *Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "devices",
		Short: "List audio backends and devices",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := engine.New()
			if err != nil {
				return err
			}
			defer e.Close()

			if cfg.Backend != "" {
				if err := e.SelectBackend(cfg.Backend); err != nil {
					return err
				}
			}

			for _, b := range e.AvailableBackends() {
				fmt.Printf("backend: %s (exclusive=%v)\n", b.Name, b.Exclusive)
				for _, d := range b.Inputs {
					fmt.Printf("  input:  %s\n", d.Name)
				}
				for _, d := range b.Outputs {
					fmt.Printf("  output: %s\n", d.Name)
				}
			}
			return nil
		},
	}
	return cmd
}
