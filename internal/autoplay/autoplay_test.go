package autoplay

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/vovakirdan/diamond-mine/internal/games/diamond/core"
)

func mustGrid(t *testing.T, lines ...string) *core.Grid {
	t.Helper()
	g, err := core.ParseGrid(lines...)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func shortConfig() core.Config {
	cfg := core.DefaultConfig()
	cfg.TotalTime = 5 * time.Second
	return cfg
}

func TestFindMoves(t *testing.T) {
	tests := []struct {
		name  string
		grid  []string
		moves []Candidate
	}{
		{
			name:  "no move",
			grid:  []string{"ABCD", "CDAB", "ABCD", "CDAB"},
			moves: nil,
		},
		{
			name: "single move",
			grid: []string{"ABAC", "CADB", "DCBA", "BDCA"},
			moves: []Candidate{
				{Move: core.Move{Row1: 0, Col1: 1, Row2: 1, Col2: 1}, Score: 3},
			},
		},
		{
			name: "both halves score",
			grid: []string{"AABCA", "CDCDB", "DCDCD"},
			moves: []Candidate{
				{Move: core.Move{Row1: 1, Col1: 1, Row2: 2, Col2: 1}, Score: 6},
				{Move: core.Move{Row1: 1, Col1: 2, Row2: 1, Col2: 3}, Score: 3},
				{Move: core.Move{Row1: 1, Col1: 2, Row2: 2, Col2: 2}, Score: 6},
				{Move: core.Move{Row1: 1, Col1: 3, Row2: 2, Col2: 3}, Score: 3},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := mustGrid(t, tt.grid...)
			before := g.String()
			got := FindMoves(g)
			if len(got) != len(tt.moves) {
				t.Fatalf("FindMoves = %+v, want %+v", got, tt.moves)
			}
			for i := range got {
				if got[i] != tt.moves[i] {
					t.Errorf("move %d = %+v, want %+v", i, got[i], tt.moves[i])
				}
			}
			if g.String() != before {
				t.Error("FindMoves changed the grid")
			}
		})
	}
}

func TestFindMovesSkipsBusyCells(t *testing.T) {
	g := mustGrid(t, "ABAC", "C#DB", "DCBA", "BDCA")
	if moves := FindMoves(g); len(moves) != 0 {
		t.Errorf("FindMoves = %+v, want none through a locked cell", moves)
	}
}

func TestRunScoreCross(t *testing.T) {
	g := mustGrid(t, "AAA", "ABC", "ACB")
	if got := runScore(g, 0, 0); got != 10 {
		t.Errorf("runScore = %d, want (3+3-1)*2 = 10", got)
	}
}

func TestChoosePrefersHighestScore(t *testing.T) {
	g := mustGrid(t, "ABAA", "BAAB", "CCBC")
	mv, ok := NewBot(rand.New(rand.NewSource(1))).Choose(g)
	want := core.Move{Row1: 0, Col1: 1, Row2: 1, Col2: 1}
	if !ok || mv != want {
		t.Errorf("Choose = %+v, %v; want %+v", mv, ok, want)
	}
}

func TestChooseBreaksTiesWithRng(t *testing.T) {
	g := mustGrid(t, "AABCA", "CDCDB", "DCDCD")
	a := core.Move{Row1: 1, Col1: 1, Row2: 2, Col2: 1}
	b := core.Move{Row1: 1, Col1: 2, Row2: 2, Col2: 2}

	if mv, _ := NewBot(nil).Choose(g); mv != a {
		t.Errorf("nil rng Choose = %+v, want first best %+v", mv, a)
	}

	seen := map[core.Move]int{}
	for seed := int64(0); seed < 64; seed++ {
		mv, _ := NewBot(rand.New(rand.NewSource(seed))).Choose(g)
		if mv != a && mv != b {
			t.Fatalf("seed %d chose non-best move %+v", seed, mv)
		}
		seen[mv]++
	}
	if seen[a] == 0 || seen[b] == 0 {
		t.Errorf("tie never broken both ways: %v", seen)
	}
}

func TestChooseWithoutMoves(t *testing.T) {
	g := mustGrid(t, "ABCD", "CDAB", "ABCD", "CDAB")
	if _, ok := NewBot(nil).Choose(g); ok {
		t.Error("Choose should report no move")
	}
}

func TestActWaitsForSettledBoard(t *testing.T) {
	board, err := core.NewBoard(core.DefaultConfig(), rand.New(rand.NewSource(5)), nil)
	if err != nil {
		t.Fatal(err)
	}
	bot := NewBot(rand.New(rand.NewSource(5)))
	if bot.Act(board) {
		t.Fatal("bot moved while the reset cascade was falling")
	}
	for i := 0; i < 2000 && !board.Settled(); i++ {
		board.Update(16)
	}
	if len(FindMoves(board.Grid())) == 0 {
		t.Skip("settled board has no moves")
	}
	if !bot.Act(board) || board.Moves() != 1 {
		t.Errorf("Act on a settled board: moves = %d", board.Moves())
	}
	if bot.Act(board) {
		t.Error("bot moved while its swap was in flight")
	}
}

func TestPlayRoundIsDeterministic(t *testing.T) {
	a, err := PlayRound(shortConfig(), 11, DefaultStepMillis)
	if err != nil {
		t.Fatal(err)
	}
	b, _ := PlayRound(shortConfig(), 11, DefaultStepMillis)
	if a != b {
		t.Errorf("rounds differ:\n%+v\n%+v", a, b)
	}
	if a.Moves == 0 || a.Score == 0 {
		t.Errorf("bot did nothing: %+v", a)
	}
	if a.Reverts != 0 {
		t.Errorf("greedy bot swaps always score, reverts = %d", a.Reverts)
	}
}

func TestPlayStopsAtTimeout(t *testing.T) {
	board, _ := core.NewBoard(shortConfig(), rand.New(rand.NewSource(2)), nil)
	res := Play(board, NewBot(nil), 100)
	if board.SecondsRemaining() != 0 {
		t.Errorf("SecondsRemaining = %d after Play", board.SecondsRemaining())
	}
	// The clock shows whole seconds, so it reads 0 once 4.1s have passed.
	if res.Ticks != 41 {
		t.Errorf("ticks = %d, want 41", res.Ticks)
	}
}

func TestSimulateIndependentOfWorkers(t *testing.T) {
	opts := Options{Rounds: 4, Seed: 3, Config: shortConfig(), Workers: 1}
	serial, err := Simulate(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	opts.Workers = 3
	parallel, err := Simulate(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}

	for i := range serial.Results {
		if serial.Results[i] != parallel.Results[i] {
			t.Errorf("round %d: %+v vs %+v", i, serial.Results[i], parallel.Results[i])
		}
		if serial.Results[i].Seed != RoundSeed(3, i) {
			t.Errorf("round %d seed = %d", i, serial.Results[i].Seed)
		}
	}
	r := serial
	if r.MinScore > r.P50Score || r.P50Score > r.P90Score || r.P90Score > r.MaxScore {
		t.Errorf("quantiles out of order: %+v", r)
	}
	if r.MeanScore < r.MinScore || r.MeanScore > r.MaxScore || r.StdScore < 0 {
		t.Errorf("mean %.1f std %.1f outside [%v, %v]", r.MeanScore, r.StdScore, r.MinScore, r.MaxScore)
	}
}

func TestSimulateRejectsBadInput(t *testing.T) {
	if _, err := Simulate(context.Background(), Options{Rounds: 0, Config: shortConfig()}); err == nil {
		t.Error("expected error for zero rounds")
	}
	cfg := shortConfig()
	cfg.GemTypes = 2
	if _, err := Simulate(context.Background(), Options{Rounds: 1, Config: cfg}); err == nil {
		t.Error("expected error for invalid config")
	}
}

func TestSimulateCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Simulate(ctx, Options{Rounds: 50, Config: shortConfig(), Workers: 1}); err == nil {
		t.Error("expected context error")
	}
}

func TestSummarizeSingleRound(t *testing.T) {
	r := summarize([]Result{{Score: 12, Moves: 3}})
	if r.MeanScore != 12 || r.StdScore != 0 || r.P50Score != 12 || r.MeanMoves != 3 {
		t.Errorf("summary = %+v", r)
	}
}
