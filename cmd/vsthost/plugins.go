package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nullrend/vsthost/pkg/settings"
)

// pluginsCommand scans the settings bag's plugin-paths (or --scan-root
// overrides) for .vst3 bundles and prints what was found, without
// loading any of them.
func pluginsCommand(cfg *Config) *cobra.Command {
	var scanRoots []string

	cmd := &cobra.Command{
		Use:   "plugins",
		Short: "List discoverable VST3 plugins",
		RunE: func(cmd *cobra.Command, args []string) error {
			roots := scanRoots
			if len(roots) == 0 {
				bag, err := settings.Load(cfg.SettingsBag)
				if err != nil {
					return err
				}
				roots = bag.PluginPaths
			}
			if len(roots) == 0 {
				roots = cfg.ScanRoots
			}

			found := settings.ScanPlugins(roots)
			if len(found) == 0 {
				fmt.Println("no plugins found")
				return nil
			}
			for _, p := range found {
				fmt.Println(p)
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&scanRoots, "scan-root", nil, "directories to scan instead of the settings bag's plugin-paths")
	return cmd
}
