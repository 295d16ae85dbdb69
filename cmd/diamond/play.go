package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/diamond-mine/internal/audio"
	"github.com/vovakirdan/diamond-mine/internal/config"
	"github.com/vovakirdan/diamond-mine/internal/core"
	"github.com/vovakirdan/diamond-mine/internal/games/diamond"
	"github.com/vovakirdan/diamond-mine/internal/platform/tui"
	"github.com/vovakirdan/diamond-mine/internal/registry"
)

var flagMute bool

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a board",
	Long: `Start a board. Without a variant (and without --difficulty) a menu
lists every variant with its best score.

Controls:
  Mouse      - Click a gem, then a neighbor (or drag) to swap
  S/Enter    - Start the clock
  P          - Pause
  R          - Restart
  0          - Toggle the debug grid
  B/Esc      - Back (when the clock is stopped)
  Ctrl+S     - Save a screenshot
  Q/Ctrl+C   - Quit

Examples:
  diamond play
  diamond play diamond_blitz
  diamond play --difficulty relaxed
  diamond play --config ./my-board.yaml --mute`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound")
}

func runPlay(_ *cobra.Command, args []string) error {
	logger, closeLog := fileLogger()
	defer closeLog()

	gameID := ""
	switch {
	case len(args) == 1:
		gameID = args[0]
		if !registry.Exists(gameID) {
			return fmt.Errorf("unknown board %q (run 'diamond list')", gameID)
		}
	case flagDifficulty != "":
		preset, err := config.ParseDifficulty(flagDifficulty)
		if err != nil {
			return err
		}
		gameID = diamond.VariantFor(preset).ID
	}

	cfg, err := loadConfig(logger)
	if err != nil {
		return err
	}

	sink, stopAudio := audio.NewSink(cfg.Audio.Enabled && !flagMute, cfg.Audio.SampleRate, cfg.Audio.Volume, logger)
	defer stopAudio()
	diamond.SetAudio(sink)

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}
	rc := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	if gameID == "" {
		return tui.RunSession(store, rc, logger)
	}
	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}
	logger.Info("round started", "board", gameID, "seed", flagSeed)
	return tui.Run(game, store, rc, logger)
}
