package core

import "fmt"

// PairState records how the first arrived half of a swap pair resolved.
type PairState uint8

const (
	PairNotFinished PairState = iota
	PairOtherChained
	PairOtherDidntChain
)

// String returns the string representation of a pair state.
func (s PairState) String() string {
	switch s {
	case PairNotFinished:
		return "NotFinished"
	case PairOtherChained:
		return "OtherChained"
	case PairOtherDidntChain:
		return "OtherDidntChain"
	default:
		return "Unknown"
	}
}

// SwappingGem is one half of an in-progress swap. It slides along a single
// axis at constant speed toward its destination cell.
type SwappingGem struct {
	AlongX bool    // moving along x (same row) or along y (same column)
	Dir    float64 // +1 or -1
	Pos    float64 // position on the moving axis
	Target float64
	Fixed  float64 // position on the other axis
	Row    int     // destination
	Col    int
	Color  int
	Pair   int // index into the pair pool, -1 when unpaired
	Moving bool
}

// XY returns the current board position of the gem.
func (g SwappingGem) XY() (x, y float64) {
	if g.AlongX {
		return g.Pos, g.Fixed
	}
	return g.Fixed, g.Pos
}

func (g *SwappingGem) arrived() bool {
	if g.Dir > 0 {
		return g.Pos >= g.Target
	}
	return g.Pos <= g.Target
}

// SwapPair links the two halves of a player swap.
type SwapPair struct {
	State     PairState
	Returning bool
	Gems      [2]int // indexes into the gem pool
}

type swapResolver interface {
	ResolveAt(row, col int) bool
	BackfillColumn(row, col int)
}

// SwapAnimator owns the pool of in-flight swap halves and their pairs.
// Both pools are compacted by swap-remove; every index held by the other
// pool is re-patched on removal.
type SwapAnimator struct {
	grid   *Grid
	layout Layout
	solver swapResolver
	audio  AudioSink
	speed  float64 // px/s

	gems  []SwappingGem
	pairs []SwapPair

	reverts int
}

// NewSwapAnimator creates an idle animator.
func NewSwapAnimator(grid *Grid, layout Layout, solver swapResolver, audio AudioSink, speed float64) *SwapAnimator {
	return &SwapAnimator{
		grid:   grid,
		layout: layout,
		solver: solver,
		audio:  audio,
		speed:  speed,
	}
}

// Active returns the number of gems in the pool.
func (a *SwapAnimator) Active() int { return len(a.gems) }

// Pairs returns the number of live swap pairs.
func (a *SwapAnimator) Pairs() int { return len(a.pairs) }

// Reverts returns how many rejected swaps were sent back.
func (a *SwapAnimator) Reverts() int { return a.reverts }

// Each calls fn for every gem still moving.
func (a *SwapAnimator) Each(fn func(g SwappingGem)) {
	for _, g := range a.gems {
		if g.Moving {
			fn(g)
		}
	}
}

// Reset drops every in-flight swap.
func (a *SwapAnimator) Reset() {
	a.gems = a.gems[:0]
	a.pairs = a.pairs[:0]
	a.reverts = 0
}

// Begin locks two orthogonally adjacent static gems and launches one
// swapping gem from each toward the other. With paired set, the halves are
// linked so an unproductive swap is sent back.
func (a *SwapAnimator) Begin(row1, col1, row2, col2 int, paired bool) {
	dr, dc := row2-row1, col2-col1
	if abs(dr)+abs(dc) != 1 {
		panic(fmt.Sprintf("swap: cells (%d,%d) and (%d,%d) are not neighbors", row1, col1, row2, col2))
	}
	c1 := a.grid.At(row1, col1)
	c2 := a.grid.At(row2, col2)
	if !c1.IsGem() || !c2.IsGem() {
		panic(fmt.Sprintf("swap: cells (%d,%d)=%s and (%d,%d)=%s must hold gems", row1, col1, c1.Kind(), row2, col2, c2.Kind()))
	}
	a.grid.Set(row1, col1, Locked())
	a.grid.Set(row2, col2, Locked())

	first := len(a.gems)
	a.gems = append(a.gems,
		a.newGem(row1, col1, row2, col2, c1.Color()),
		a.newGem(row2, col2, row1, col1, c2.Color()),
	)
	if paired {
		p := len(a.pairs)
		a.pairs = append(a.pairs, SwapPair{State: PairNotFinished, Gems: [2]int{first, first + 1}})
		a.gems[first].Pair = p
		a.gems[first+1].Pair = p
	}
}

func (a *SwapAnimator) newGem(fromRow, fromCol, toRow, toCol, color int) SwappingGem {
	g := SwappingGem{Row: toRow, Col: toCol, Color: color, Pair: -1, Moving: true}
	fx, fy := a.layout.CellCenter(fromRow, fromCol)
	tx, ty := a.layout.CellCenter(toRow, toCol)
	g.AlongX = fromRow == toRow
	if g.AlongX {
		g.Pos, g.Target, g.Fixed = fx, tx, fy
	} else {
		g.Pos, g.Target, g.Fixed = fy, ty, fx
	}
	g.Dir = 1
	if g.Target < g.Pos {
		g.Dir = -1
	}
	return g
}

// Update advances every moving gem by dt seconds and resolves arrivals.
// Gems launched during the pass (reverts) first move on the next tick.
func (a *SwapAnimator) Update(dt float64) {
	n := len(a.gems)
	for i := 0; i < n; i++ {
		g := &a.gems[i]
		if !g.Moving {
			continue
		}
		g.Pos += g.Dir * a.speed * dt
		if !g.arrived() {
			continue
		}
		g.Pos = g.Target
		g.Moving = false
		// arrive may grow the pool; g must not be used past this point.
		a.arrive(i)
	}

	for i := 0; i < len(a.gems); {
		if g := a.gems[i]; g.Moving || g.Pair >= 0 {
			i++
			continue
		}
		a.removeGem(i)
	}
}

func (a *SwapAnimator) arrive(i int) {
	g := a.gems[i]
	a.grid.Set(g.Row, g.Col, Gem(g.Color))
	chained := a.solver.ResolveAt(g.Row, g.Col)

	if g.Pair < 0 {
		if !chained {
			a.solver.BackfillColumn(g.Row, g.Col)
		}
		return
	}

	p := &a.pairs[g.Pair]
	if p.State == PairNotFinished {
		if chained {
			p.State = PairOtherChained
		} else {
			p.State = PairOtherDidntChain
		}
		return
	}

	partner := a.gems[p.Gems[0]]
	if p.Gems[0] == i {
		partner = a.gems[p.Gems[1]]
	}
	otherChained := p.State == PairOtherChained
	if !chained && !otherChained && !p.Returning {
		p.Returning = true
		a.releasePair(g.Pair)
		if a.grid.At(g.Row, g.Col).IsGem() && a.grid.At(partner.Row, partner.Col).IsGem() {
			a.Begin(g.Row, g.Col, partner.Row, partner.Col, false)
			a.reverts++
			a.audio.PlayInvalidMove()
			return
		}
		// The partner was consumed by a cascade while waiting; settle in place.
		a.solver.BackfillColumn(g.Row, g.Col)
		a.solver.BackfillColumn(partner.Row, partner.Col)
		return
	}

	a.releasePair(g.Pair)
	if !chained {
		a.solver.BackfillColumn(g.Row, g.Col)
	}
	// The partner landed while this half was locked and skipped its backfill;
	// cells below it may have been erased since.
	if !otherChained {
		a.solver.BackfillColumn(partner.Row, partner.Col)
	}
}

// removeGem swap-removes gem i and re-points the moved gem's pair at its new slot.
func (a *SwapAnimator) removeGem(i int) {
	last := len(a.gems) - 1
	if i != last {
		a.gems[i] = a.gems[last]
		if p := a.gems[i].Pair; p >= 0 {
			for k, gi := range a.pairs[p].Gems {
				if gi == last {
					a.pairs[p].Gems[k] = i
				}
			}
		}
	}
	a.gems = a.gems[:last]
}

// releasePair unlinks pair p from its gems and swap-removes it, re-pointing
// the gems of the moved pair at its new slot.
func (a *SwapAnimator) releasePair(p int) {
	for _, gi := range a.pairs[p].Gems {
		if a.gems[gi].Pair == p {
			a.gems[gi].Pair = -1
		}
	}
	last := len(a.pairs) - 1
	if p != last {
		a.pairs[p] = a.pairs[last]
		for _, gi := range a.pairs[p].Gems {
			a.gems[gi].Pair = p
		}
	}
	a.pairs = a.pairs[:last]
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
