package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/vovakirdan/diamond-mine/internal/registry"
	"github.com/vovakirdan/diamond-mine/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [variant]",
	Short: "Show high scores",
	Long: `Display the best rounds of a board variant, or a summary of every
variant when none is given.

Examples:
  diamond scores
  diamond scores diamond_blitz --limit 20
  diamond scores diamond --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVarP(&flagScoresLimit, "limit", "n", 10, "Number of rounds to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete every stored round of the variant")
}

func runScores(cmd *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	p := message.NewPrinter(language.English)
	out := cmd.OutOrStdout()

	if len(args) == 0 {
		return printSummary(p, out, store)
	}

	gameID := args[0]
	info, ok := registry.Info(gameID)
	if !ok {
		return fmt.Errorf("unknown board %q (run 'diamond list')", gameID)
	}

	if flagScoresClear {
		if err := store.ClearScores(gameID); err != nil {
			return err
		}
		p.Fprintf(out, "Cleared scores of %s.\n", info.Title)
		return nil
	}

	scores, err := store.TopScores(gameID, flagScoresLimit)
	if err != nil {
		return err
	}

	p.Fprintf(out, "High Scores - %s\n\n", info.Title)
	if len(scores) == 0 {
		p.Fprintf(out, "No scores recorded yet.\n\nPlay 'diamond play %s' to set the first high score!\n", gameID)
		return nil
	}

	p.Fprintf(out, "  %-4s  %10s  %6s  %6s  %s\n", "Rank", "Score", "Moves", "Chains", "Date")
	p.Fprintf(out, "  %-4s  %10s  %6s  %6s  %s\n", "----", "-----", "-----", "------", "----")
	for i, e := range scores {
		p.Fprintf(out, "  %-4d  %10d  %6d  %6d  %s\n", i+1, e.Score, e.Moves, e.Chains, e.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func printSummary(p *message.Printer, out io.Writer, store *storage.Store) error {
	stats, err := store.GetAllGamesStats()
	if err != nil {
		return err
	}

	p.Fprintf(out, "  %-18s  %6s  %10s  %10s  %s\n", "Board", "Rounds", "Best", "Average", "Last played")
	p.Fprintf(out, "  %-18s  %6s  %10s  %10s  %s\n", "-----", "------", "----", "-------", "-----------")
	for _, g := range registry.List() {
		st, ok := stats[g.ID]
		if !ok {
			p.Fprintf(out, "  %-18s  %6d  %10s  %10s  %s\n", g.ID, 0, "-", "-", "never")
			continue
		}
		p.Fprintf(out, "  %-18s  %6d  %10d  %10.1f  %s\n", g.ID, st.GamesCount, st.HighScore, st.AvgScore, st.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}
