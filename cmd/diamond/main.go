// diamond is a match-3 gem board for the terminal.
//
// Usage:
//
//	diamond list                - List board variants
//	diamond play [variant]      - Play a board (menu when no variant is given)
//	diamond scores <variant>    - Show high scores
//	diamond serve               - Host boards over SSH
//	diamond web                 - Serve the leaderboard as JSON
//	diamond bench               - Let the bot play many rounds
//	diamond config init         - Write the default config file
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible boards
//	--db <path>          - Set database path (default: ~/.diamond/scores.db)
//	--config <path>      - Use a specific diamond.yaml
//	--difficulty <name>  - relaxed, normal or blitz
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/diamond-mine/internal/config"
	"github.com/vovakirdan/diamond-mine/internal/games/diamond"
	"github.com/vovakirdan/diamond-mine/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagVerbose    bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "diamond",
	Short: "Diamond Mine - swap gems against the clock in your terminal",
	Long: `Diamond Mine is a match-3 board: swap neighboring gems with the mouse
to line up three or more of a color before the clock runs out.

Examples:
  diamond play
  diamond play diamond_blitz
  diamond play --difficulty relaxed --seed 42
  diamond serve --ssh :2222
  diamond scores diamond`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath(), "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a diamond.yaml")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: relaxed, normal, blitz")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log debug messages")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webCmd)
	rootCmd.AddCommand(benchCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger returns a logger for w with the shared format.
func newLogger(w io.Writer) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "diamond",
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// fileLogger logs to the XDG state directory so messages never draw over the
// board. The returned func closes the file.
func fileLogger() (*log.Logger, func()) {
	path, err := xdg.StateFile(filepath.Join("diamond-mine", "diamond.log"))
	if err != nil {
		return newLogger(io.Discard), func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return newLogger(io.Discard), func() {}
	}
	return newLogger(f), func() { f.Close() }
}

// loadConfig resolves diamond.yaml and hands it to the board variants.
func loadConfig(logger *log.Logger) (config.DiamondConfig, error) {
	cfg, source, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	logger.Debug("config loaded", "source", source)
	diamond.SetConfig(cfg)
	return cfg, nil
}

// openStore opens the score database. Scores are optional, so a failure is
// logged and play continues without them.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("scores disabled", "db", flagDBPath, "err", err)
		return nil
	}
	return store
}
