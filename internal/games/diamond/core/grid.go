// Package core implements the Diamond Mine board simulation: grid state,
// chain resolution, swap and fall animation, and pointer selection.
// This package is UI-agnostic and deterministic for a given random source.
package core

import (
	"fmt"
	"strings"
)

// CellKind tags the state of a grid cell.
type CellKind uint8

const (
	CellEmpty CellKind = iota
	// CellLocked marks a cell whose gem is travelling in a swap.
	CellLocked
	CellGem
)

// String returns the string representation of a cell kind.
func (k CellKind) String() string {
	switch k {
	case CellEmpty:
		return "Empty"
	case CellLocked:
		return "Locked"
	case CellGem:
		return "Gem"
	default:
		return "Unknown"
	}
}

// Cell is a tagged value: Empty, Locked, or Gem with a color index.
// The zero value is an empty cell.
type Cell struct {
	kind  CellKind
	color uint8
}

// Empty returns an empty cell.
func Empty() Cell { return Cell{} }

// Locked returns a cell reserved by an in-flight swap.
func Locked() Cell { return Cell{kind: CellLocked} }

// Gem returns a static gem cell of the given color.
func Gem(color int) Cell {
	if color < 0 || color > 255 {
		panic(fmt.Sprintf("grid: invalid gem color %d", color))
	}
	return Cell{kind: CellGem, color: uint8(color)}
}

// Kind returns the cell's tag.
func (c Cell) Kind() CellKind { return c.kind }

// IsEmpty reports whether the cell holds nothing.
func (c Cell) IsEmpty() bool { return c.kind == CellEmpty }

// IsLocked reports whether the cell is mid-swap.
func (c Cell) IsLocked() bool { return c.kind == CellLocked }

// IsGem reports whether the cell holds a static gem.
func (c Cell) IsGem() bool { return c.kind == CellGem }

// Color returns the gem color. Panics for Empty and Locked cells.
func (c Cell) Color() int {
	if c.kind != CellGem {
		panic(fmt.Sprintf("grid: color of %s cell", c.kind))
	}
	return int(c.color)
}

// SameGem reports whether both cells are static gems of one color.
func (c Cell) SameGem(o Cell) bool {
	return c.kind == CellGem && o.kind == CellGem && c.color == o.color
}

// Grid is the rows x cols cell array, stored row-major.
// Row 0 is the top row.
type Grid struct {
	rows  int
	cols  int
	cells []Cell
}

// NewGrid creates a grid with every cell empty.
func NewGrid(rows, cols int) *Grid {
	if rows <= 0 || cols <= 0 {
		panic(fmt.Sprintf("grid: invalid size %dx%d", rows, cols))
	}
	return &Grid{
		rows:  rows,
		cols:  cols,
		cells: make([]Cell, rows*cols),
	}
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// InBounds returns true if the cell lies inside the grid.
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

func (g *Grid) index(row, col int) int {
	if !g.InBounds(row, col) {
		panic(fmt.Sprintf("grid: cell (%d,%d) out of range %dx%d", row, col, g.rows, g.cols))
	}
	return row*g.cols + col
}

// At returns the cell at (row, col). Out-of-range access panics.
func (g *Grid) At(row, col int) Cell {
	return g.cells[g.index(row, col)]
}

// Set replaces the cell at (row, col). Out-of-range access panics.
func (g *Grid) Set(row, col int, c Cell) {
	g.cells[g.index(row, col)] = c
}

// Clear empties every cell.
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i] = Empty()
	}
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	cells := make([]Cell, len(g.cells))
	copy(cells, g.cells)
	return &Grid{rows: g.rows, cols: g.cols, cells: cells}
}

// Equal reports whether both grids have the same size and cells.
func (g *Grid) Equal(o *Grid) bool {
	if g.rows != o.rows || g.cols != o.cols {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

// CountKind returns how many cells carry the given tag.
func (g *Grid) CountKind(k CellKind) int {
	n := 0
	for _, c := range g.cells {
		if c.kind == k {
			n++
		}
	}
	return n
}

// String renders the grid one row per line: '.' empty, '#' locked,
// 'A'+color for gems.
func (g *Grid) String() string {
	var sb strings.Builder
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			cell := g.At(r, c)
			switch cell.kind {
			case CellEmpty:
				sb.WriteByte('.')
			case CellLocked:
				sb.WriteByte('#')
			default:
				sb.WriteByte('A' + cell.color)
			}
		}
		if r < g.rows-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// ParseGrid builds a grid from the String format. All lines must have equal length.
func ParseGrid(lines ...string) (*Grid, error) {
	if len(lines) == 0 || len(lines[0]) == 0 {
		return nil, fmt.Errorf("grid: empty layout")
	}
	g := NewGrid(len(lines), len(lines[0]))
	for r, line := range lines {
		if len(line) != g.cols {
			return nil, fmt.Errorf("grid: row %d has %d cells, want %d", r, len(line), g.cols)
		}
		for c := 0; c < len(line); c++ {
			switch ch := line[c]; {
			case ch == '.':
				g.Set(r, c, Empty())
			case ch == '#':
				g.Set(r, c, Locked())
			case ch >= 'A' && ch <= 'Z':
				g.Set(r, c, Gem(int(ch-'A')))
			default:
				return nil, fmt.Errorf("grid: unknown cell %q at (%d,%d)", ch, r, c)
			}
		}
	}
	return g, nil
}
