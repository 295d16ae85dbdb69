package autoplay

import (
	"context"
	"errors"
	"io"
	"math/rand"
	"runtime"
	"slices"
	"sync"
	"time"

	"github.com/cheggaaa/pb/v3"
	"gonum.org/v1/gonum/stat"

	"github.com/vovakirdan/diamond-mine/internal/games/diamond/core"
)

// DefaultStepMillis is the fixed frame time of simulated rounds.
const DefaultStepMillis = 16

// Result is the outcome of one timed round.
type Result struct {
	Seed      int64
	Score     int
	Moves     int
	Chains    int
	Reverts   int
	Discarded int
	Ticks     int
}

// Play runs board to time-out, letting bot move whenever the board is settled.
func Play(board *core.Board, bot *Bot, stepMillis int) Result {
	stepMillis = core.ClampFrameTime(stepMillis)
	board.SetRunning(true)

	// The clock is clamped, so a round always ends; the cap guards a stopped clock.
	limit := int(board.Config().TotalTime.Milliseconds())/stepMillis + 1
	for i := 0; i < limit && board.SecondsRemaining() > 0; i++ {
		bot.Act(board)
		board.Update(stepMillis)
	}

	snap := board.Snapshot()
	return Result{
		Score:     snap.Score,
		Moves:     snap.Moves,
		Chains:    snap.Chains,
		Reverts:   snap.Reverts,
		Discarded: snap.Discarded,
		Ticks:     snap.Tick,
	}
}

// Options configure a batch of rounds.
type Options struct {
	Rounds     int
	Seed       int64
	Config     core.Config
	StepMillis int
	Workers    int       // <= 0 uses GOMAXPROCS
	Progress   io.Writer // nil hides the progress bar
}

// Report aggregates a batch.
type Report struct {
	Rounds    int
	Results   []Result
	MeanScore float64
	StdScore  float64
	MinScore  float64
	P50Score  float64
	P90Score  float64
	MaxScore  float64
	MeanMoves float64
	Elapsed   time.Duration
}

// RoundSeed derives the board seed of round i so any round can be replayed alone.
func RoundSeed(seed int64, i int) int64 {
	return seed + int64(i)*7919
}

// PlayRound plays a single round of a batch.
func PlayRound(cfg core.Config, seed int64, stepMillis int) (Result, error) {
	board, err := core.NewBoard(cfg, rand.New(rand.NewSource(seed)), nil)
	if err != nil {
		return Result{}, err
	}
	res := Play(board, NewBot(rand.New(rand.NewSource(^seed))), stepMillis)
	res.Seed = seed
	return res, nil
}

// Simulate plays opts.Rounds rounds in parallel. Results are in round order
// and depend only on the seed, not on scheduling.
func Simulate(ctx context.Context, opts Options) (Report, error) {
	if opts.Rounds <= 0 {
		return Report{}, errors.New("autoplay: rounds must be positive")
	}
	if err := opts.Config.Validate(); err != nil {
		return Report{}, err
	}
	if opts.StepMillis <= 0 {
		opts.StepMillis = DefaultStepMillis
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	workers = min(workers, opts.Rounds)

	bar := pb.New(opts.Rounds)
	if opts.Progress != nil {
		bar.SetWriter(opts.Progress)
	} else {
		bar.SetWriter(io.Discard)
	}
	bar.Start()

	results := make([]Result, opts.Rounds)
	jobs := make(chan int)
	wg := new(sync.WaitGroup)
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				// Config was validated above, so NewBoard cannot fail.
				results[i], _ = PlayRound(opts.Config, RoundSeed(opts.Seed, i), opts.StepMillis)
				bar.Increment()
			}
		}()
	}

	var ctxErr error
feed:
	for i := 0; i < opts.Rounds; i++ {
		if err := ctx.Err(); err != nil {
			ctxErr = err
			break
		}
		select {
		case jobs <- i:
		case <-ctx.Done():
			ctxErr = ctx.Err()
			break feed
		}
	}
	close(jobs)
	wg.Wait()
	elapsed := time.Since(bar.StartTime())
	bar.Finish()
	if ctxErr != nil {
		return Report{}, ctxErr
	}

	report := summarize(results)
	report.Elapsed = elapsed
	return report, nil
}

func summarize(results []Result) Report {
	scores := make([]float64, len(results))
	moves := make([]float64, len(results))
	for i, r := range results {
		scores[i] = float64(r.Score)
		moves[i] = float64(r.Moves)
	}
	mean, std := stat.MeanStdDev(scores, nil)
	if len(scores) < 2 {
		std = 0
	}

	sorted := slices.Clone(scores)
	slices.Sort(sorted)
	return Report{
		Rounds:    len(results),
		Results:   results,
		MeanScore: mean,
		StdScore:  std,
		MinScore:  sorted[0],
		P50Score:  stat.Quantile(0.5, stat.Empirical, sorted, nil),
		P90Score:  stat.Quantile(0.9, stat.Empirical, sorted, nil),
		MaxScore:  sorted[len(sorted)-1],
		MeanMoves: stat.Mean(moves, nil),
	}
}
