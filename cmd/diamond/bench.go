package main

import (
	"context"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/vovakirdan/diamond-mine/internal/autoplay"
	"github.com/vovakirdan/diamond-mine/internal/config"
)

var (
	flagBenchRounds  int
	flagBenchWorkers int
	flagBenchStep    int
	flagBenchQuiet   bool
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Let the bot play many rounds and report score statistics",
	Long: `Run headless rounds with the greedy bot. Each round is seeded from
--seed so a batch is reproducible; the report shows score spread and moves.

Examples:
  diamond bench --rounds 200
  diamond bench --difficulty blitz --seed 7 --workers 4`,
	Args: cobra.NoArgs,
	RunE: runBench,
}

func init() {
	benchCmd.Flags().IntVar(&flagBenchRounds, "rounds", 100, "Number of rounds")
	benchCmd.Flags().IntVar(&flagBenchWorkers, "workers", 0, "Parallel rounds (0 = all CPUs)")
	benchCmd.Flags().IntVar(&flagBenchStep, "step", autoplay.DefaultStepMillis, "Simulated frame time in ms")
	benchCmd.Flags().BoolVarP(&flagBenchQuiet, "quiet", "q", false, "Hide the progress bar")
}

func runBench(cmd *cobra.Command, _ []string) error {
	logger := newLogger(os.Stderr)
	cfg, err := loadConfig(logger)
	if err != nil {
		return err
	}
	preset, err := config.ParseDifficulty(flagDifficulty)
	if err != nil {
		return err
	}
	config.ApplyDifficulty(&cfg, preset)

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	opts := autoplay.Options{
		Rounds:     flagBenchRounds,
		Seed:       seed,
		Config:     cfg.ToEngine(),
		StepMillis: flagBenchStep,
		Workers:    flagBenchWorkers,
	}
	if !flagBenchQuiet {
		opts.Progress = cmd.ErrOrStderr()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Info("bench started", "rounds", opts.Rounds, "seed", seed, "difficulty", preset)
	report, err := autoplay.Simulate(ctx, opts)
	if err != nil {
		return err
	}

	p := message.NewPrinter(language.English)
	out := cmd.OutOrStdout()
	p.Fprintf(out, "rounds : %d (seed %d, %s)\n", report.Rounds, seed, preset)
	p.Fprintf(out, "score  : mean %.1f  std %.1f\n", report.MeanScore, report.StdScore)
	p.Fprintf(out, "         min %.0f  p50 %.0f  p90 %.0f  max %.0f\n", report.MinScore, report.P50Score, report.P90Score, report.MaxScore)
	p.Fprintf(out, "moves  : mean %.1f\n", report.MeanMoves)
	p.Fprintf(out, "used   : %.2f seconds\n", report.Elapsed.Seconds())
	return nil
}
