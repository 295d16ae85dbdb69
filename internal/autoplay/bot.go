// Package autoplay drives boards without a human: a greedy bot that looks
// one swap ahead, and a batch simulator that plays many timed rounds.
package autoplay

import (
	"math/rand"

	"github.com/vovakirdan/diamond-mine/internal/games/diamond/core"
)

// Candidate is a legal swap and the score it makes on arrival.
type Candidate struct {
	core.Move
	Score int
}

// FindMoves lists every adjacent swap of two static gems that forms a run.
// Candidates come in row-major order of their first cell.
func FindMoves(g *core.Grid) []Candidate {
	var out []Candidate
	work := g.Clone()
	for r := 0; r < g.Rows(); r++ {
		for c := 0; c < g.Cols(); c++ {
			for _, d := range [][2]int{{0, 1}, {1, 0}} {
				r2, c2 := r+d[0], c+d[1]
				if !g.InBounds(r2, c2) {
					continue
				}
				a, b := g.At(r, c), g.At(r2, c2)
				if !a.IsGem() || !b.IsGem() || a.SameGem(b) {
					continue
				}
				work.Set(r, c, b)
				work.Set(r2, c2, a)
				score := runScore(work, r, c) + runScore(work, r2, c2)
				work.Set(r, c, a)
				work.Set(r2, c2, b)
				if score > 0 {
					out = append(out, Candidate{Move: core.Move{Row1: r, Col1: c, Row2: r2, Col2: c2}, Score: score})
				}
			}
		}
	}
	return out
}

// runScore is what resolving (row, col) would add, without erasing.
func runScore(g *core.Grid, row, col int) int {
	vLen := core.LineRun(g, row, col, core.Vertical, 1) - core.LineRun(g, row, col, core.Vertical, -1) + 1
	hLen := core.LineRun(g, row, col, core.Horizontal, 1) - core.LineRun(g, row, col, core.Horizontal, -1) + 1
	score := 0
	if vLen >= 3 {
		score = vLen
	}
	if hLen >= 3 {
		score += hLen
		if vLen >= 3 {
			score = (score - 1) * 2
		}
	}
	return score
}

// Bot picks the highest scoring swap; ties are broken by its rng.
type Bot struct {
	rng *rand.Rand
}

// NewBot creates a bot. A nil rng always takes the first best move.
func NewBot(rng *rand.Rand) *Bot {
	return &Bot{rng: rng}
}

// Choose returns the move to play on g, or false when there is none.
func (b *Bot) Choose(g *core.Grid) (core.Move, bool) {
	cands := FindMoves(g)
	if len(cands) == 0 {
		return core.Move{}, false
	}
	best := 0
	ties := 1
	for i := 1; i < len(cands); i++ {
		switch {
		case cands[i].Score > cands[best].Score:
			best, ties = i, 1
		case cands[i].Score == cands[best].Score:
			// Reservoir sampling keeps each tie equally likely.
			ties++
			if b.rng != nil && b.rng.Intn(ties) == 0 {
				best = i
			}
		}
	}
	return cands[best].Move, true
}

// Act plays one move on a settled board through its pointer interface.
// It reports whether a swap was started.
func (b *Bot) Act(board *core.Board) bool {
	if !board.Settled() || board.Selection() != core.FirstSelection {
		return false
	}
	mv, ok := b.Choose(board.Grid())
	if !ok {
		return false
	}
	before := board.Moves()
	click(board, mv.Row1, mv.Col1)
	click(board, mv.Row2, mv.Col2)
	return board.Moves() > before
}

// click presses and releases in the middle of a tile.
func click(board *core.Board, row, col int) {
	l := board.Layout()
	x := l.OriginX + col*l.TileW + l.TileW/2
	y := l.OriginY + row*l.TileH + l.TileH/2
	board.PointerEvent(x, y, true)
	board.PointerEvent(x, y, false)
}
