package core

import "testing"

func TestCellKinds(t *testing.T) {
	tests := []struct {
		name   string
		cell   Cell
		kind   CellKind
		gem    bool
		empty  bool
		locked bool
	}{
		{"zero value", Cell{}, CellEmpty, false, true, false},
		{"empty", Empty(), CellEmpty, false, true, false},
		{"locked", Locked(), CellLocked, false, false, true},
		{"gem", Gem(3), CellGem, true, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.cell.Kind() != tt.kind {
				t.Errorf("Kind() = %v, want %v", tt.cell.Kind(), tt.kind)
			}
			if tt.cell.IsGem() != tt.gem || tt.cell.IsEmpty() != tt.empty || tt.cell.IsLocked() != tt.locked {
				t.Errorf("predicates = (%v,%v,%v), want (%v,%v,%v)",
					tt.cell.IsGem(), tt.cell.IsEmpty(), tt.cell.IsLocked(), tt.gem, tt.empty, tt.locked)
			}
		})
	}
	if Gem(3).Color() != 3 {
		t.Errorf("Gem(3).Color() = %d, want 3", Gem(3).Color())
	}
	if Gem(1).SameGem(Gem(2)) || !Gem(2).SameGem(Gem(2)) || Locked().SameGem(Locked()) {
		t.Error("SameGem must only match static gems of one color")
	}
}

func mustPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s: expected panic", name)
		}
	}()
	fn()
}

func TestGridContractViolationsPanic(t *testing.T) {
	g := NewGrid(4, 3)
	mustPanic(t, "At row out of range", func() { g.At(4, 0) })
	mustPanic(t, "At negative col", func() { g.At(0, -1) })
	mustPanic(t, "Set out of range", func() { g.Set(0, 3, Gem(0)) })
	mustPanic(t, "Color of empty cell", func() { _ = Empty().Color() })
	mustPanic(t, "Color of locked cell", func() { _ = Locked().Color() })
	mustPanic(t, "negative gem color", func() { Gem(-1) })
}

func TestParseGridLayout(t *testing.T) {
	g, err := ParseGrid("AB.", "#CA")
	if err != nil {
		t.Fatalf("ParseGrid: %v", err)
	}
	if g.Rows() != 2 || g.Cols() != 3 {
		t.Fatalf("size = %dx%d, want 2x3", g.Rows(), g.Cols())
	}
	if !g.At(0, 2).IsEmpty() || !g.At(1, 0).IsLocked() || g.At(1, 1).Color() != 2 {
		t.Errorf("unexpected cells:\n%s", g)
	}
	if got := g.String(); got != "AB.\n#CA" {
		t.Errorf("String() = %q", got)
	}

	if _, err := ParseGrid("AB", "A"); err == nil {
		t.Error("ragged layout should fail")
	}
	if _, err := ParseGrid("A?"); err == nil {
		t.Error("unknown cell should fail")
	}
}

func TestGridCloneIsIndependent(t *testing.T) {
	g, _ := ParseGrid("ABC", "CAB")
	c := g.Clone()
	if !g.Equal(c) {
		t.Fatal("clone should equal source")
	}
	c.Set(0, 0, Empty())
	if g.Equal(c) {
		t.Error("modifying clone changed source")
	}
	if g.CountKind(CellGem) != 6 || c.CountKind(CellEmpty) != 1 {
		t.Errorf("CountKind mismatch: %d gems, %d empty", g.CountKind(CellGem), c.CountKind(CellEmpty))
	}
}

func TestLayoutGeometry(t *testing.T) {
	l := NewLayout(DefaultConfig())
	if l.TileW != 45 || l.TileH != 44 || l.PadW != 10 || l.PadH != 9 {
		t.Fatalf("tile = %dx%d pad = %dx%d, want 45x44 pad 10x9", l.TileW, l.TileH, l.PadW, l.PadH)
	}
	x, y := l.CellCenter(2, 3)
	if x != float64(315+5+3*45) || y != float64(95+4+2*44) {
		t.Errorf("CellCenter(2,3) = (%v,%v)", x, y)
	}
	if r, c := l.CellFromPosition(x, y); r != 2 || c != 3 {
		t.Errorf("CellFromPosition = (%d,%d), want (2,3)", r, c)
	}
	if r := l.RowAt(l.CellY(-1) + 10); r != -1 {
		t.Errorf("RowAt above board = %d, want -1", r)
	}

	tests := []struct {
		x, y int
		want bool
	}{
		{315, 95, true},
		{314, 95, false},
		{315 + 359, 95 + 351, true},
		{315 + 360, 95, false},
		{315, 95 + 352, false},
	}
	for _, tt := range tests {
		if got := l.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
	if r, c := l.PointerCell(315+359, 95+351); r != 7 || c != 7 {
		t.Errorf("PointerCell(corner) = (%d,%d), want (7,7)", r, c)
	}
}

func TestClampFrameTime(t *testing.T) {
	tests := []struct{ in, want int }{{-5, 1}, {0, 1}, {1, 1}, {16, 16}, {100, 100}, {250, 100}}
	for _, tt := range tests {
		if got := ClampFrameTime(tt.in); got != tt.want {
			t.Errorf("ClampFrameTime(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestConfigValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"two gem types", func(c *Config) { c.GemTypes = 2 }},
		{"more gem types than letters", func(c *Config) { c.GemTypes = MaxGemTypes + 1 }},
		{"tiny board", func(c *Config) { c.Rows = 2 }},
		{"gems wider than board", func(c *Config) { c.Width = 100 }},
		{"no time", func(c *Config) { c.TotalTime = 0 }},
		{"no gravity", func(c *Config) { c.Gravity = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if cfg.Validate() == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestGridStringRoundTripsEveryColor(t *testing.T) {
	g := NewGrid(1, MaxGemTypes)
	for c := 0; c < MaxGemTypes; c++ {
		g.Set(0, c, Gem(c))
	}
	back, err := ParseGrid(g.String())
	if err != nil {
		t.Fatalf("ParseGrid(%q): %v", g.String(), err)
	}
	if !back.Equal(g) {
		t.Errorf("round trip = %s, want %s", back, g)
	}
}
