// Command vsthost is a thin CLI harness over pkg/engine, pkg/host, and
// pkg/settings: it exercises the core library end to end (enumerate
// backends and devices, load and chain plugins, run a stream) without
// being the desktop shell that owns the editor window.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// applog reads VSTHOST_LOG_LEVEL/VSTHOST_LOG_FORMAT at process start, so
// Config.LogLevel/LogFormat only take effect when set before exec (the
// config file's values are informational here unless exported as env
// vars by the caller's shell).
func main() {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "vsthost: config: %v\n", err)
		os.Exit(1)
	}

	if err := rootCommand(cfg).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "vsthost: %v\n", err)
		os.Exit(1)
	}
}

func rootCommand(cfg Config) *cobra.Command {
	root := &cobra.Command{
		Use:   "vsthost",
		Short: "VST3 plugin host CLI",
	}

	root.PersistentFlags().StringVar(&cfg.Backend, "backend", cfg.Backend, "audio backend to select before running")
	root.PersistentFlags().StringVar(&cfg.SettingsBag, "settings", cfg.SettingsBag, "path to the settings bag JSON file")

	root.AddCommand(
		devicesCommand(&cfg),
		pluginsCommand(&cfg),
		runCommand(&cfg),
	)
	return root
}
