package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/diamond-mine/internal/config"
)

var flagConfigForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or create the configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default diamond.yaml to the XDG config directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		path, err := config.WriteDefault(flagConfigForce)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration and where it came from",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, source, err := config.Load(flagConfig)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "source: %s\n", source)
		fmt.Fprintf(out, "board : %dx%d, %d gem types\n", cfg.Board.Rows, cfg.Board.Cols, cfg.Board.GemTypes)
		fmt.Fprintf(out, "clock : %d s\n", cfg.Timing.TotalSeconds)
		fmt.Fprintf(out, "audio : enabled=%v volume=%.2f\n", cfg.Audio.Enabled, cfg.Audio.Volume)
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&flagConfigForce, "force", false, "Overwrite an existing file")
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}
