package core

import (
	"fmt"
	"math/rand"
	"time"
)

// Board owns the grid and drives one simulation tick at a time.
type Board struct {
	cfg    Config
	layout Layout
	rng    *rand.Rand
	audio  AudioSink

	grid   *Grid
	solver *ChainSolver
	swaps  *SwapAnimator
	falls  *FallAnimator
	sel    Selection

	running     bool
	elapsedMs   int64
	playerMoved bool
	moves       int
	ticks       int
}

// NewBoard builds a board and performs an initial Reset.
// A nil rng is seeded from the clock; a nil audio sink discards cues.
func NewBoard(cfg Config, rng *rand.Rand, audio AudioSink) (*Board, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid board config: %w", err)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if audio == nil {
		audio = NopAudio{}
	}

	b := &Board{
		cfg:    cfg,
		layout: NewLayout(cfg),
		rng:    rng,
		audio:  audio,
		grid:   NewGrid(cfg.Rows, cfg.Cols),
	}
	ppm := cfg.PixelsPerMeter
	b.falls = NewFallAnimator(b.grid, b.layout, cfg.Gravity*ppm, cfg.FallSpeed*ppm)
	b.solver = NewChainSolver(b.grid, b.layout, b.falls, audio, rng, cfg.GemTypes)
	b.swaps = NewSwapAnimator(b.grid, b.layout, b.solver, audio, cfg.SwapSpeed*ppm)
	b.falls.bind(b.solver, func() bool { return b.playerMoved })

	b.Reset()
	return b, nil
}

// Config returns the board configuration.
func (b *Board) Config() Config { return b.cfg }

// Layout returns the pixel geometry of the board.
func (b *Board) Layout() Layout { return b.layout }

// Grid returns the live grid. Callers must treat it as read-only.
func (b *Board) Grid() *Grid { return b.grid }

// Reset refills the board with a match-free layout that cascades in from above.
// Score, clock, and the player-moved flag start over; the running flag is kept.
func (b *Board) Reset() {
	b.swaps.Reset()
	b.falls.Reset()
	b.sel.Reset()
	b.solver.resetScore()
	b.elapsedMs = 0
	b.playerMoved = false
	b.moves = 0
	b.ticks = 0

	b.fillMatchFree()

	rows, cols := b.grid.Rows(), b.grid.Cols()
	for r := rows - 1; r >= 0; r-- {
		for c := 0; c < cols; c++ {
			color := b.grid.At(r, c).Color()
			b.grid.Set(r, c, Empty())
			b.falls.Enqueue(c, b.layout.CellY(r-2*rows-c), color)
		}
	}
}

// fillMatchFree samples a color for every cell until it forms no run of three.
func (b *Board) fillMatchFree() {
	b.grid.Clear()
	for r := 0; r < b.grid.Rows(); r++ {
		for c := 0; c < b.grid.Cols(); c++ {
			for {
				b.grid.Set(r, c, Gem(b.solver.randomColor()))
				if !formsRun(b.grid, r, c) {
					break
				}
			}
		}
	}
}

func formsRun(g *Grid, row, col int) bool {
	top, bottom := runSpan(g, row, col, Vertical)
	left, right := runSpan(g, row, col, Horizontal)
	return bottom-top+1 >= minRun || right-left+1 >= minRun
}

// Update advances the simulation by dtMillis, which the caller clamps
// (see ClampFrameTime).
func (b *Board) Update(dtMillis int) {
	b.spawnStarved()

	if b.running {
		b.elapsedMs = min(b.elapsedMs+int64(dtMillis), b.cfg.TotalTime.Milliseconds())
	}

	dt := float64(dtMillis) * 0.001
	b.swaps.Update(dt)
	b.falls.Update(dt)
	b.sel.Revalidate(b.grid)
	b.ticks++
}

// spawnStarved feeds random gems into every column that has empty cells but
// nothing falling toward them.
func (b *Board) spawnStarved() {
	rows := b.grid.Rows()
	for c := 0; c < b.grid.Cols(); c++ {
		if b.falls.Pending(c) > 0 {
			continue
		}
		for r := rows - 1; r >= 0; r-- {
			if b.grid.At(r, c).IsEmpty() {
				b.falls.Enqueue(c, b.layout.CellY(r-rows), b.solver.randomColor())
			}
		}
	}
}

// PointerEvent feeds a press or release at board pixel (x, y).
func (b *Board) PointerEvent(x, y int, press bool) {
	if !b.layout.Contains(x, y) {
		return
	}
	row, col := b.layout.PointerCell(x, y)
	if !b.grid.At(row, col).IsGem() {
		return
	}
	if b.sel.Revalidate(b.grid) {
		return
	}

	mv, ok := b.sel.Pointer(b.grid, row, col, press)
	if !ok {
		return
	}
	b.swaps.Begin(mv.Row1, mv.Col1, mv.Row2, mv.Col2, true)
	b.playerMoved = true
	b.moves++
	b.audio.PlayMoved()
}

// Render draws static gems, animated gems, the selection and the debug grid.
func (b *Board) Render(r Renderer) {
	for row := 0; row < b.grid.Rows(); row++ {
		for col := 0; col < b.grid.Cols(); col++ {
			if cell := b.grid.At(row, col); cell.IsGem() {
				x, y := b.layout.CellCenter(row, col)
				r.DrawGem(cell.Color(), x, y)
			}
		}
	}
	b.swaps.Each(func(g SwappingGem) {
		x, y := g.XY()
		r.DrawGem(g.Color, x, y)
	})
	b.falls.Each(func(g FallingGem) {
		r.DrawGem(g.Color, b.layout.CellX(g.Col), g.Y)
	})
	if row, col, ok := b.sel.Captured(); ok {
		r.DrawSelection(row, col)
	}

	if !r.DebugGrid() {
		return
	}
	l := b.layout
	top, bottom := float64(l.OriginY), float64(l.OriginY+l.Height)
	left, right := float64(l.OriginX), float64(l.OriginX+l.Width)
	for c := 0; c <= l.Cols; c++ {
		x := float64(l.OriginX + c*l.TileW)
		r.DrawGridLine(x, top, x, bottom)
	}
	for row := 0; row <= l.Rows; row++ {
		y := float64(l.OriginY + row*l.TileH)
		r.DrawGridLine(left, y, right, y)
	}
}

// Score returns the accumulated score.
func (b *Board) Score() int { return b.solver.Score() }

// Moves returns the number of swaps the player started.
func (b *Board) Moves() int { return b.moves }

// SecondsRemaining returns the whole seconds left on the clock, never negative.
func (b *Board) SecondsRemaining() int {
	left := b.cfg.TotalTime.Milliseconds() - b.elapsedMs
	return max(0, int(left/1000))
}

// SetRunning starts or stops the clock.
func (b *Board) SetRunning(running bool) { b.running = running }

// Running reports whether the clock advances.
func (b *Board) Running() bool { return b.running }

// PlayerMoved reports whether a swap was started since the last reset.
func (b *Board) PlayerMoved() bool { return b.playerMoved }

// Selection returns the pointer selection phase.
func (b *Board) Selection() SelectionState { return b.sel.State() }

// Settled reports whether nothing is moving and every cell holds a gem.
func (b *Board) Settled() bool {
	return b.swaps.Active() == 0 && b.falls.Total() == 0 && b.grid.CountKind(CellGem) == b.grid.Rows()*b.grid.Cols()
}

// CheckInvariants verifies cell contents against the animator pools.
func (b *Board) CheckInvariants() error {
	moving := 0
	b.swaps.Each(func(g SwappingGem) {
		moving++
	})
	if locked := b.grid.CountKind(CellLocked); locked != moving {
		return fmt.Errorf("%d locked cells but %d swapping gems", locked, moving)
	}
	for r := 0; r < b.grid.Rows(); r++ {
		for c := 0; c < b.grid.Cols(); c++ {
			if cell := b.grid.At(r, c); cell.IsGem() && cell.Color() >= b.cfg.GemTypes {
				return fmt.Errorf("cell (%d,%d) has color %d of %d", r, c, cell.Color(), b.cfg.GemTypes)
			}
		}
	}
	return nil
}
