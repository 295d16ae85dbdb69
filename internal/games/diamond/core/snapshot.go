package core

// Snapshot captures the observable board state for determinism testing and debugging.
type Snapshot struct {
	Tick        int
	Grid        string // Grid.String layout
	Score       int
	Chains      int
	Moves       int
	SecondsLeft int
	Running     bool
	Selection   SelectionState
	Swapping    int // gems in the swap pool
	Falling     int
	Landed      int
	Discarded   int
	Reverts     int
}

// Snapshot returns the current board snapshot.
func (b *Board) Snapshot() Snapshot {
	return Snapshot{
		Tick:        b.ticks,
		Grid:        b.grid.String(),
		Score:       b.solver.Score(),
		Chains:      b.solver.Chains(),
		Moves:       b.moves,
		SecondsLeft: b.SecondsRemaining(),
		Running:     b.running,
		Selection:   b.sel.State(),
		Swapping:    b.swaps.Active(),
		Falling:     b.falls.Total(),
		Landed:      b.falls.landed,
		Discarded:   b.falls.discarded,
		Reverts:     b.swaps.Reverts(),
	}
}
