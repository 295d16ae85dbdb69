package core

import "testing"

func TestRectContains(t *testing.T) {
	r := NewRect(2, 3, 4, 5)
	tests := []struct {
		name string
		x, y int
		want bool
	}{
		{"top-left corner", 2, 3, true},
		{"bottom-right inside", 5, 7, true},
		{"right edge excluded", 6, 3, false},
		{"bottom edge excluded", 2, 8, false},
		{"left of rect", 1, 4, false},
		{"above rect", 3, 2, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.x, tt.y); got != tt.want {
				t.Errorf("Contains(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestRectInsetAndCenter(t *testing.T) {
	r := NewRect(0, 0, 10, 6).Inset(1)
	if r != NewRect(1, 1, 8, 4) {
		t.Errorf("Inset(1) = %+v", r)
	}
	if got := NewRect(0, 0, 3, 3).Inset(5); got.W != 0 || got.H != 0 {
		t.Errorf("over-inset = %+v, want zero size", got)
	}
	c := CenteredIn(NewRect(0, 0, 80, 24), 40, 16)
	if c != NewRect(20, 4, 40, 16) {
		t.Errorf("CenteredIn = %+v", c)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct{ val, want int }{{-3, 0}, {0, 0}, {5, 5}, {10, 10}, {11, 10}}
	for _, tt := range tests {
		if got := Clamp(tt.val, 0, 10); got != tt.want {
			t.Errorf("Clamp(%d) = %d, want %d", tt.val, got, tt.want)
		}
	}
}
