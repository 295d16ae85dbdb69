package core

import (
	"math/rand"
	"testing"
)

type recordingAudio struct {
	moved, invalid, erased, music int
}

func (a *recordingAudio) PlayMoved()       { a.moved++ }
func (a *recordingAudio) PlayInvalidMove() { a.invalid++ }
func (a *recordingAudio) PlayErased()      { a.erased++ }
func (a *recordingAudio) PlayMusic()       { a.music++ }

func testConfig(rows, cols int) Config {
	cfg := DefaultConfig()
	cfg.Rows = rows
	cfg.Cols = cols
	cfg.Width = cols * 45
	cfg.Height = rows * 44
	return cfg
}

// newTestBoard builds a board whose grid is the given layout with nothing in flight.
func newTestBoard(t *testing.T, lines ...string) (*Board, *recordingAudio) {
	t.Helper()
	g, err := ParseGrid(lines...)
	if err != nil {
		t.Fatalf("ParseGrid: %v", err)
	}
	audio := &recordingAudio{}
	b, err := NewBoard(testConfig(g.Rows(), g.Cols()), rand.New(rand.NewSource(1)), audio)
	if err != nil {
		t.Fatalf("NewBoard: %v", err)
	}
	b.falls.Reset()
	copy(b.grid.cells, g.cells)
	return b, audio
}

// pointerAt returns a pixel inside the tile of (row, col).
func pointerAt(b *Board, row, col int) (int, int) {
	l := b.Layout()
	return l.OriginX + col*l.TileW + l.TileW/2, l.OriginY + row*l.TileH + l.TileH/2
}

func press(b *Board, row, col int) {
	x, y := pointerAt(b, row, col)
	b.PointerEvent(x, y, true)
}

func release(b *Board, row, col int) {
	x, y := pointerAt(b, row, col)
	b.PointerEvent(x, y, false)
}

// settle runs 16ms ticks until the board is settled, checking invariants each tick.
func settle(t *testing.T, b *Board) {
	t.Helper()
	for i := 0; i < 5000; i++ {
		if b.Settled() {
			return
		}
		b.Update(16)
		if err := b.CheckInvariants(); err != nil {
			t.Fatalf("tick %d: %v", i, err)
		}
	}
	t.Fatalf("board did not settle:\n%s", b.grid)
}

func hasRun(g *Grid) bool {
	for r := 0; r < g.Rows(); r++ {
		for c := 0; c < g.Cols(); c++ {
			if g.At(r, c).IsGem() && formsRun(g, r, c) {
				return true
			}
		}
	}
	return false
}
