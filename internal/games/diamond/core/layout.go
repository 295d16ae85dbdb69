package core

import "math"

// Layout converts between grid cells and board pixels.
// Gems are spread evenly: each tile is a gem plus an equal share of the spare width.
type Layout struct {
	OriginX, OriginY int
	Width, Height    int
	Rows, Cols       int
	GemW, GemH       int
	PadW, PadH       int
	TileW, TileH     int
}

// NewLayout derives the tile geometry from a configuration.
func NewLayout(cfg Config) Layout {
	padW := (cfg.Width - cfg.Cols*cfg.GemWidth) / cfg.Cols
	padH := (cfg.Height - cfg.Rows*cfg.GemHeight) / cfg.Rows
	return Layout{
		OriginX: cfg.OriginX,
		OriginY: cfg.OriginY,
		Width:   cfg.Width,
		Height:  cfg.Height,
		Rows:    cfg.Rows,
		Cols:    cfg.Cols,
		GemW:    cfg.GemWidth,
		GemH:    cfg.GemHeight,
		PadW:    padW,
		PadH:    padH,
		TileW:   cfg.GemWidth + padW,
		TileH:   cfg.GemHeight + padH,
	}
}

// CellX returns the gem draw x for a column.
func (l Layout) CellX(col int) float64 {
	return float64(l.OriginX + l.PadW/2 + col*l.TileW)
}

// CellY returns the gem draw y for a row. Negative rows lie above the board.
func (l Layout) CellY(row int) float64 {
	return float64(l.OriginY + l.PadH/2 + row*l.TileH)
}

// CellCenter returns the gem anchor position of (row, col).
func (l Layout) CellCenter(row, col int) (x, y float64) {
	return l.CellX(col), l.CellY(row)
}

// RowAt returns the row whose tile contains y, flooring above the board.
func (l Layout) RowAt(y float64) int {
	return int(math.Floor((y - float64(l.OriginY+l.PadH/2)) / float64(l.TileH)))
}

// ColAt returns the column whose tile contains x.
func (l Layout) ColAt(x float64) int {
	return int(math.Floor((x - float64(l.OriginX+l.PadW/2)) / float64(l.TileW)))
}

// CellFromPosition maps a gem anchor position back to its cell.
func (l Layout) CellFromPosition(x, y float64) (row, col int) {
	return l.RowAt(y), l.ColAt(x)
}

// Contains reports whether a pointer position lies on the board surface.
func (l Layout) Contains(x, y int) bool {
	return x >= l.OriginX && x < l.OriginX+l.Width &&
		y >= l.OriginY && y < l.OriginY+l.Height
}

// PointerCell maps a pointer position on the board to the tile under it.
// The result is clamped to the grid so the padding strip at the far edge
// still belongs to the last row or column.
func (l Layout) PointerCell(x, y int) (row, col int) {
	row = (y - l.OriginY) / l.TileH
	col = (x - l.OriginX) / l.TileW
	return min(row, l.Rows-1), min(col, l.Cols-1)
}
