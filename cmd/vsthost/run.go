package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nullrend/vsthost/pkg/engine"
)

// runCommand selects the configured backend (when one is set) and the
// input/output devices named by its flags; with no device named, the
// engine has none selected and starting the stream fails. It loads each
// plugin path given as an argument into the chain,
// starts the duplex stream, and blocks until SIGINT/SIGTERM, tearing
// everything down on exit.
func runCommand(cfg *Config) *cobra.Command {
	var inputName, outputName string
	var sampleRate, bufferSize uint32

	cmd := &cobra.Command{
		Use:   "run [plugin.vst3...]",
		Short: "Run a duplex audio stream through a plugin chain",
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

			pref := engine.Preference{SampleRate: sampleRate, BufferSize: bufferSize}
			if inputName != "" {
				if err := e.SelectInput(inputName, pref); err != nil {
					return err
				}
			}
			if outputName != "" {
				if err := e.SelectOutput(outputName, pref); err != nil {
					return err
				}
			}

			for _, path := range args {
				id, err := e.LoadPlugin(path)
				if err != nil {
					return fmt.Errorf("load %s: %w", path, err)
				}
				fmt.Printf("loaded plugin %d: %s\n", id, path)
			}

			if err := e.Run(); err != nil {
				return err
			}
			fmt.Println("streaming, press ctrl-c to stop")

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
			<-sigChan
			return nil
		},
	}

	cmd.Flags().StringVar(&inputName, "input", "", "capture device name")
	cmd.Flags().StringVar(&outputName, "output", "", "playback device name")
	cmd.Flags().Uint32Var(&sampleRate, "sample-rate", 48000, "preferred sample rate")
	cmd.Flags().Uint32Var(&bufferSize, "buffer-size", 512, "preferred buffer size in frames")
	return cmd
}
