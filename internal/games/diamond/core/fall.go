package core

// FallingGem is a gem in free fall toward an empty slot of its column.
type FallingGem struct {
	Col   int
	Y     float64 // board pixels
	Speed float64 // px/s, downward
	Color int
}

type chainResolver interface {
	ResolveAt(row, col int) bool
}

// FallAnimator owns one bounded FIFO of falling gems per column.
// Within a column gems land in the order they were enqueued.
type FallAnimator struct {
	grid    *Grid
	layout  Layout
	columns []*Ring[FallingGem]

	gravity    float64 // px/s²
	startSpeed float64 // px/s

	solver      chainResolver
	playerMoved func() bool

	landed    int
	discarded int
}

// NewFallAnimator creates empty queues of capacity rows+1 for every column.
func NewFallAnimator(grid *Grid, layout Layout, gravity, startSpeed float64) *FallAnimator {
	cols := make([]*Ring[FallingGem], grid.Cols())
	for i := range cols {
		cols[i] = NewRing[FallingGem](grid.Rows() + 1)
	}
	return &FallAnimator{
		grid:        grid,
		layout:      layout,
		columns:     cols,
		gravity:     gravity,
		startSpeed:  startSpeed,
		playerMoved: func() bool { return false },
	}
}

// bind attaches the rescan collaborators. Both are optional.
func (f *FallAnimator) bind(solver chainResolver, playerMoved func() bool) {
	f.solver = solver
	if playerMoved != nil {
		f.playerMoved = playerMoved
	}
}

// Enqueue starts a gem falling in col from board y with the initial fall speed.
// A gem that would start below the newest gem of the column is placed one
// tile above it. Returns false if the column queue is full; the gem is dropped.
func (f *FallAnimator) Enqueue(col int, y float64, color int) bool {
	return f.enqueue(col, y, f.startSpeed, color)
}

func (f *FallAnimator) enqueue(col int, y, speed float64, color int) bool {
	q := f.columns[col]
	if tail := q.Tail(); tail != nil {
		y = min(y, tail.Y-float64(f.layout.TileH))
	}
	if !q.Push(FallingGem{Col: col, Y: y, Speed: speed, Color: color}) {
		f.discarded++
		return false
	}
	return true
}

// Pending returns how many gems are falling in col.
func (f *FallAnimator) Pending(col int) int { return f.columns[col].Len() }

// Total returns how many gems are falling on the whole board.
func (f *FallAnimator) Total() int {
	n := 0
	for _, q := range f.columns {
		n += q.Len()
	}
	return n
}

// Each calls fn for every falling gem, column by column, oldest first.
func (f *FallAnimator) Each(fn func(g FallingGem)) {
	for _, q := range f.columns {
		for i := 0; i < q.Len(); i++ {
			fn(*q.At(i))
		}
	}
}

// Reset drops all falling gems and counters.
func (f *FallAnimator) Reset() {
	for _, q := range f.columns {
		q.Clear()
	}
	f.landed = 0
	f.discarded = 0
}

// Update advances every falling gem by dt seconds and settles those that
// reached rest. Columns are processed left to right, gems oldest first.
// Gems enqueued during the pass are first advanced on the next tick.
func (f *FallAnimator) Update(dt float64) {
	tileH := float64(f.layout.TileH)
	for col, q := range f.columns {
		n := q.Len()
		i := 0
		for k := 0; k < n; k++ {
			g := q.At(i)
			prevY := g.Y
			g.Speed += f.gravity * dt
			g.Y += g.Speed * dt

			if i > 0 {
				// Never overtake the gem ahead.
				ahead := q.At(i - 1)
				if limit := ahead.Y - tileH; g.Y > limit {
					g.Y = limit
					g.Speed = min(g.Speed, ahead.Speed)
				}
				i++
				continue
			}

			row, ok := f.restingRow(col, prevY, g.Y)
			if !ok {
				i++
				continue
			}
			gem, _ := q.Pop()
			f.settle(row, col, gem.Color)
		}
	}
}

// restingRow reports whether a gem that moved from prevY to y in col has come
// to rest, and in which row. Every cell crossed during the move is checked so
// a fast gem cannot pass through an occupied cell.
func (f *FallAnimator) restingRow(col int, prevY, y float64) (int, bool) {
	blocked := max(f.layout.RowAt(prevY)+1, 0)
	for blocked < f.grid.Rows() && f.grid.At(blocked, col).IsEmpty() {
		blocked++
	}
	if f.layout.RowAt(y)+1 < blocked {
		return 0, false
	}
	return blocked - 1, true
}

func (f *FallAnimator) settle(row, col, color int) {
	if row < 0 || !f.grid.At(row, col).IsEmpty() {
		// Column already full.
		f.discarded++
		return
	}
	f.grid.Set(row, col, Gem(color))
	f.landed++

	if row == 0 && f.solver != nil && f.playerMoved() {
		f.rescanColumn(col)
	}
}

// rescanColumn re-runs chain detection bottom-up over the static gems of a
// column that has just filled to the top.
func (f *FallAnimator) rescanColumn(col int) {
	for r := f.grid.Rows() - 1; r >= 0; r-- {
		if f.grid.At(r, col).IsGem() {
			f.solver.ResolveAt(r, col)
		}
	}
}
