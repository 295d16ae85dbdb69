package diamond

import (
	"math"

	platformcore "github.com/vovakirdan/diamond-mine/internal/core"
	"github.com/vovakirdan/diamond-mine/internal/games/diamond/core"
)

// Viewport maps board pixels to terminal cells and back.
// Each tile covers tileCols x tileRows cells.
type Viewport struct {
	layout   core.Layout
	tileCols int
	tileRows int
	X, Y     int // Top-left cell of the board
}

// NewViewport places the board at the given cell.
func NewViewport(l core.Layout, tileCols, tileRows, x, y int) Viewport {
	return Viewport{layout: l, tileCols: tileCols, tileRows: tileRows, X: x, Y: y}
}

// Size returns the board size in cells.
func (v Viewport) Size() (w, h int) {
	return v.layout.Cols * v.tileCols, v.layout.Rows * v.tileRows
}

// Rect returns the board area in cells.
func (v Viewport) Rect() platformcore.Rect {
	w, h := v.Size()
	return platformcore.NewRect(v.X, v.Y, w, h)
}

// ToCell returns the cell containing a board pixel.
func (v Viewport) ToCell(px, py float64) (cx, cy int) {
	l := v.layout
	cx = v.X + int(math.Floor((px-float64(l.OriginX))*float64(v.tileCols)/float64(l.TileW)))
	cy = v.Y + int(math.Floor((py-float64(l.OriginY))*float64(v.tileRows)/float64(l.TileH)))
	return cx, cy
}

// ToPixel returns the board pixel at the middle of a cell. Cells outside the
// board map to pixels outside the board surface.
func (v Viewport) ToPixel(cx, cy int) (px, py int) {
	l := v.layout
	px = l.OriginX + int(math.Floor((float64(cx-v.X)+0.5)*float64(l.TileW)/float64(v.tileCols)))
	py = l.OriginY + int(math.Floor((float64(cy-v.Y)+0.5)*float64(l.TileH)/float64(v.tileRows)))
	return px, py
}

// TileOrigin returns the top-left cell of a grid tile.
func (v Viewport) TileOrigin(row, col int) (cx, cy int) {
	return v.X + col*v.tileCols, v.Y + row*v.tileRows
}

// screenRenderer draws the board into a screen buffer.
type screenRenderer struct {
	dst     *platformcore.Screen
	view    Viewport
	palette []platformcore.Color
	debug   bool
}

var _ core.Renderer = (*screenRenderer)(nil)

const (
	selectionColor = platformcore.ColorBrightWhite
	gridColor      = platformcore.ColorGray
	gridDot        = '·'
)

// DrawGem draws a gem whose anchor is (x, y). Parts outside the board are clipped,
// so gems falling in from above appear row by row.
func (r *screenRenderer) DrawGem(color int, x, y float64) {
	l := r.view.layout
	cx, cy := r.view.ToCell(x-float64(l.PadW/2), y-float64(l.PadH/2))
	c := platformcore.ColorDefault
	if color < len(r.palette) {
		c = r.palette[color]
	}
	clip := r.view.Rect()
	shape := gemShape(r.view.tileCols, r.view.tileRows)
	for dy, line := range shape {
		for dx, ch := range []rune(line) {
			if ch == ' ' || !clip.Contains(cx+dx, cy+dy) {
				continue
			}
			r.dst.SetColored(cx+dx, cy+dy, ch, c)
		}
	}
}

func (r *screenRenderer) DrawSelection(row, col int) {
	cx, cy := r.view.TileOrigin(row, col)
	for dy := 0; dy < r.view.tileRows; dy++ {
		r.dst.SetColored(cx, cy+dy, '[', selectionColor)
		r.dst.SetColored(cx+r.view.tileCols-1, cy+dy, ']', selectionColor)
	}
}

// DrawGridLine dots every blank cell on the line.
func (r *screenRenderer) DrawGridLine(x1, y1, x2, y2 float64) {
	cx1, cy1 := r.view.ToCell(x1, y1)
	cx2, cy2 := r.view.ToCell(x2, y2)
	for cy := min(cy1, cy2); cy <= max(cy1, cy2); cy++ {
		for cx := min(cx1, cx2); cx <= max(cx1, cx2); cx++ {
			if r.dst.Get(cx, cy) == ' ' {
				r.dst.SetColored(cx, cy, gridDot, gridColor)
			}
		}
	}
}

func (r *screenRenderer) DebugGrid() bool { return r.debug }

// gemShape returns the glyph rows of one gem, one column of padding on each side.
func gemShape(tileCols, tileRows int) []string {
	inner := tileCols - 2
	if inner == 3 && tileRows == 2 {
		return []string{" ▟█▙", " ▜█▛"}
	}
	rows := make([]string, tileRows)
	for i := range rows {
		line := []rune{' '}
		for k := 0; k < inner; k++ {
			line = append(line, '█')
		}
		rows[i] = string(line)
	}
	return rows
}
