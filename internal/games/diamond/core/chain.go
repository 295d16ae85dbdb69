package core

import "math/rand"

// Axis selects the direction a run is walked along.
type Axis uint8

const (
	// Horizontal walks along a row (column index changes).
	Horizontal Axis = iota
	// Vertical walks along a column (row index changes).
	Vertical
)

// minRun is the shortest run that erases.
const minRun = 3

// LineRun walks from (row, col) one step at a time in dir (-1 or +1) along axis
// while the visited cell is a static gem of the start color. It returns the
// index along the axis of the last matching cell, or the start index when the
// start cell is not a gem or no neighbor matches.
func LineRun(g *Grid, row, col int, axis Axis, dir int) int {
	start := g.At(row, col)
	if start.IsGem() {
		for {
			nr, nc := row, col
			if axis == Horizontal {
				nc += dir
			} else {
				nr += dir
			}
			if !g.InBounds(nr, nc) || !g.At(nr, nc).SameGem(start) {
				break
			}
			row, col = nr, nc
		}
	}
	if axis == Horizontal {
		return col
	}
	return row
}

// runSpan returns the extent of the maximal run through (row, col) on one axis.
func runSpan(g *Grid, row, col int, axis Axis) (lo, hi int) {
	return LineRun(g, row, col, axis, -1), LineRun(g, row, col, axis, 1)
}

// fallQueue accepts gems that start falling in a column.
type fallQueue interface {
	Enqueue(col int, y float64, color int) bool
}

// ChainSolver erases runs, lifts the gems above them into the fall queues
// and keeps the score.
type ChainSolver struct {
	grid     *Grid
	layout   Layout
	falls    fallQueue
	audio    AudioSink
	rng      *rand.Rand
	gemTypes int

	score  int
	chains int
}

// NewChainSolver wires a solver to its grid and fall queue.
func NewChainSolver(grid *Grid, layout Layout, falls fallQueue, audio AudioSink, rng *rand.Rand, gemTypes int) *ChainSolver {
	return &ChainSolver{
		grid:     grid,
		layout:   layout,
		falls:    falls,
		audio:    audio,
		rng:      rng,
		gemTypes: gemTypes,
	}
}

// Score returns the accumulated score.
func (s *ChainSolver) Score() int { return s.score }

// Chains returns how many resolutions erased at least one run.
func (s *ChainSolver) Chains() int { return s.chains }

func (s *ChainSolver) resetScore() {
	s.score = 0
	s.chains = 0
}

func (s *ChainSolver) randomColor() int {
	return s.rng.Intn(s.gemTypes)
}

// ResolveAt erases the vertical and horizontal runs of three or more through
// (row, col) and reports whether anything was erased.
//
// A vertical run scores its length and a horizontal run adds its length.
// When both fire, the pivot was counted twice and the total becomes
// (score-1)*2.
func (s *ChainSolver) ResolveAt(row, col int) bool {
	top, bottom := runSpan(s.grid, row, col, Vertical)
	left, right := runSpan(s.grid, row, col, Horizontal)
	vLen := bottom - top + 1
	hLen := right - left + 1
	vErase := vLen >= minRun
	hErase := hLen >= minRun
	if !vErase && !hErase {
		return false
	}

	score := 0
	if vErase {
		for r := top; r <= bottom; r++ {
			s.grid.Set(r, col, Empty())
		}
		s.lift(col, top-1, vLen)
		score = vLen
	}
	if hErase {
		for c := left; c <= right; c++ {
			s.grid.Set(row, c, Empty())
		}
		for c := left; c <= right; c++ {
			if vErase && c == col {
				continue
			}
			s.lift(c, row-1, 1)
		}
		score += hLen
	}
	if vErase && hErase {
		score = (score - 1) * 2
	}

	s.score += score
	s.chains++
	s.audio.PlayErased()
	return true
}

// BackfillColumn drops the gem at (row, col) and everything stacked on it by
// the number of empty cells directly below it, synthesizing gems for the
// shift that reaches above row 0.
func (s *ChainSolver) BackfillColumn(row, col int) {
	gap := 0
	for r := row + 1; r < s.grid.Rows() && s.grid.At(r, col).IsEmpty(); r++ {
		gap++
	}
	if gap == 0 {
		return
	}
	s.lift(col, row, gap)
}

// lift moves static gems from row `from` upward into the fall queue, stopping
// at the first empty or locked cell. Rows above the board down to -depth are
// filled with random gems.
func (s *ChainSolver) lift(col, from, depth int) {
	for r := from; r >= -depth; r-- {
		var color int
		if r >= 0 {
			cell := s.grid.At(r, col)
			if !cell.IsGem() {
				return
			}
			color = cell.Color()
			s.grid.Set(r, col, Empty())
		} else {
			color = s.randomColor()
		}
		s.falls.Enqueue(col, s.layout.CellY(r), color)
	}
}
