package core

import "testing"

func TestLineRun(t *testing.T) {
	g, _ := ParseGrid(
		"AAAB",
		"ACAB",
		"A#AB",
		"BCCB",
	)
	tests := []struct {
		name     string
		row, col int
		axis     Axis
		dir      int
		want     int
	}{
		{"right along row", 0, 0, Horizontal, 1, 2},
		{"left from end", 0, 2, Horizontal, -1, 0},
		{"no neighbor", 0, 3, Horizontal, -1, 3},
		{"down column", 0, 0, Vertical, 1, 2},
		{"up column", 2, 2, Vertical, -1, 0},
		{"stops at grid edge", 0, 3, Vertical, 1, 3},
		{"locked start", 2, 1, Vertical, 1, 2},
		{"locked neighbor breaks run", 1, 1, Vertical, 1, 1},
		{"empty start", 3, 0, Horizontal, 1, 0},
	}
	g.Set(3, 0, Empty())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LineRun(g, tt.row, tt.col, tt.axis, tt.dir); got != tt.want {
				t.Errorf("LineRun(%d,%d) = %d, want %d", tt.row, tt.col, got, tt.want)
			}
		})
	}
}

func TestResolveAtScoring(t *testing.T) {
	tests := []struct {
		name     string
		layout   []string
		row, col int
		want     int
	}{
		{
			name: "horizontal three",
			layout: []string{
				"ABCDE",
				"BCDEA",
				"AAABC",
				"CDEAB",
				"DEABC",
			},
			row: 2, col: 0,
			want: 3,
		},
		{
			name: "horizontal four",
			layout: []string{
				"ABCDE",
				"BCDEA",
				"AAAAC",
				"CDEAB",
				"DEABC",
			},
			row: 2, col: 3,
			want: 4,
		},
		{
			name: "vertical three",
			layout: []string{
				"ABCDE",
				"BCDEA",
				"BDBEC",
				"BEADB",
				"DEABC",
			},
			row: 1, col: 0,
			want: 3,
		},
		{
			name: "cross of two threes",
			layout: []string{
				"BCDEB",
				"CDAEC",
				"DAAAE",
				"EBACD",
				"BCDEB",
			},
			row: 2, col: 2,
			want: 10,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, audio := newTestBoard(t, tt.layout...)
			if !b.solver.ResolveAt(tt.row, tt.col) {
				t.Fatal("ResolveAt reported no erase")
			}
			if got := b.Score(); got != tt.want {
				t.Errorf("Score() = %d, want %d", got, tt.want)
			}
			if audio.erased != 1 {
				t.Errorf("erase cues = %d, want 1", audio.erased)
			}
			if !b.grid.At(tt.row, tt.col).IsEmpty() {
				t.Error("pivot cell should be empty")
			}
		})
	}
}

func TestResolveAtWithoutRun(t *testing.T) {
	b, audio := newTestBoard(t,
		"ABC",
		"BCA",
		"AAB",
	)
	before := b.grid.Clone()
	if b.solver.ResolveAt(2, 0) {
		t.Error("pair of two should not erase")
	}
	if !b.grid.Equal(before) || b.Score() != 0 || audio.erased != 0 || b.falls.Total() != 0 {
		t.Error("a failed resolve must not change anything")
	}
}

func TestResolveAtLiftsColumns(t *testing.T) {
	b, _ := newTestBoard(t,
		"ABCDE",
		"BCDEA",
		"AAABC",
		"CDEAB",
		"DEABC",
	)
	b.solver.ResolveAt(2, 1)

	// Two static gems above each erased cell plus one backfill.
	for c := 0; c < 3; c++ {
		if got := b.falls.Pending(c); got != 3 {
			t.Errorf("Pending(%d) = %d, want 3", c, got)
		}
		for r := 0; r <= 2; r++ {
			if !b.grid.At(r, c).IsEmpty() {
				t.Errorf("cell (%d,%d) = %v, want empty", r, c, b.grid.At(r, c).Kind())
			}
		}
	}
	for c := 3; c < 5; c++ {
		if b.falls.Pending(c) != 0 {
			t.Errorf("column %d should be untouched", c)
		}
	}

	// The lifted gems keep their colors, bottom first.
	col0 := b.falls.columns[0]
	if col0.At(0).Color != 1 || col0.At(1).Color != 0 {
		t.Errorf("column 0 lifted colors = %d,%d, want 1,0", col0.At(0).Color, col0.At(1).Color)
	}
}

func TestVerticalEraseStopsAtLockedCell(t *testing.T) {
	b, _ := newTestBoard(t,
		"ABCDE",
		"CCDEA",
		"BDBEC",
		"BEADB",
		"BEABC",
	)
	b.grid.Set(1, 0, Locked())
	b.solver.ResolveAt(3, 0)
	if got := b.falls.Pending(0); got != 0 {
		t.Errorf("Pending(0) = %d, want 0 (scan stops at locked cell)", got)
	}
	if !b.grid.At(1, 0).IsLocked() || !b.grid.At(0, 0).IsGem() {
		t.Error("cells above the locked cell must stay in place")
	}
}

func TestBackfillColumn(t *testing.T) {
	b, _ := newTestBoard(t,
		"ABC",
		"BCA",
		"..B",
		"CAB",
	)
	b.solver.BackfillColumn(1, 0)
	if got := b.falls.Pending(0); got != 3 {
		t.Errorf("Pending(0) = %d, want 3", got)
	}
	if !b.grid.At(0, 0).IsEmpty() || !b.grid.At(1, 0).IsEmpty() {
		t.Error("backfilled cells should be empty until their gems land")
	}

	b.solver.BackfillColumn(1, 2)
	if b.falls.Pending(2) != 0 {
		t.Error("no gap below means nothing to backfill")
	}
}
