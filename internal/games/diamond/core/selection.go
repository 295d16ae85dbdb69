package core

// SelectionState is the phase of the two-click swap gesture.
type SelectionState uint8

const (
	FirstSelection SelectionState = iota
	SecondSelection
)

// String returns the string representation of a selection state.
func (s SelectionState) String() string {
	if s == SecondSelection {
		return "SecondSelection"
	}
	return "FirstSelection"
}

// Move is a swap intent between a captured cell and its neighbor.
type Move struct {
	Row1, Col1 int
	Row2, Col2 int
}

// Selection turns pointer events on grid cells into swap intents.
// The zero value is ready to use.
type Selection struct {
	state    SelectionState
	row, col int
	captured Cell
}

// State returns the current phase.
func (s *Selection) State() SelectionState { return s.state }

// Captured returns the first-click cell while in SecondSelection.
func (s *Selection) Captured() (row, col int, ok bool) {
	return s.row, s.col, s.state == SecondSelection
}

// Reset returns to FirstSelection.
func (s *Selection) Reset() {
	*s = Selection{}
}

// Revalidate drops a captured selection whose cell no longer holds the
// captured gem. Reports whether the selection was dropped.
func (s *Selection) Revalidate(g *Grid) bool {
	if s.state != SecondSelection || g.At(s.row, s.col) == s.captured {
		return false
	}
	s.state = FirstSelection
	return true
}

// Pointer feeds an event on a static gem cell. It returns a move when the
// event completes a swap gesture toward a static gem.
//
// A press on an orthogonal neighbor of the captured cell targets that
// neighbor. A release anywhere else along the captured row or column targets
// the immediate neighbor in the drag direction.
func (s *Selection) Pointer(g *Grid, row, col int, press bool) (Move, bool) {
	if s.state == FirstSelection {
		if press {
			s.state = SecondSelection
			s.row, s.col = row, col
			s.captured = g.At(row, col)
		}
		return Move{}, false
	}

	dr, dc := row-s.row, col-s.col
	self := dr == 0 && dc == 0
	tr, tc := -1, -1
	switch {
	case press && abs(dr)+abs(dc) == 1:
		tr, tc = row, col
	case !press && !self && (dr == 0) != (dc == 0):
		tr, tc = s.row+sign(dr), s.col+sign(dc)
	}

	var mv Move
	ok := false
	if g.InBounds(tr, tc) && g.At(tr, tc).IsGem() {
		mv = Move{Row1: s.row, Col1: s.col, Row2: tr, Col2: tc}
		ok = true
	}

	// A release over the captured cell keeps it selected, so a plain click
	// does not select and immediately deselect.
	if press || !self {
		s.state = FirstSelection
	}
	return mv, ok
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
