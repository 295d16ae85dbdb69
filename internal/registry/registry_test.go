package registry

import (
	"testing"

	"github.com/vovakirdan/diamond-mine/internal/core"
)

type stubGame struct{ id string }

func (g *stubGame) ID() string                           { return g.id }
func (g *stubGame) Title() string                        { return "Stub" }
func (g *stubGame) Reset(core.RuntimeConfig)             {}
func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *stubGame) Render(*core.Screen)                  {}
func (g *stubGame) State() core.GameState                { return core.GameState{} }

func TestRegisterCreateList(t *testing.T) {
	Register(GameInfo{ID: "zz_stub_b", Title: "B"}, func() Game { return &stubGame{id: "zz_stub_b"} })
	Register(GameInfo{ID: "zz_stub_a", Title: "A"}, func() Game { return &stubGame{id: "zz_stub_a"} })

	if !Exists("zz_stub_a") || Exists("zz_missing") {
		t.Error("Exists mismatch")
	}
	g, err := Create("zz_stub_b")
	if err != nil || g.ID() != "zz_stub_b" {
		t.Fatalf("Create = %v, %v", g, err)
	}
	if _, err := Create("zz_missing"); err == nil {
		t.Error("Create of unknown id should fail")
	}
	if info, ok := Info("zz_stub_a"); !ok || info.Title != "A" {
		t.Errorf("Info = %+v, %v", info, ok)
	}

	list := List()
	for i := 1; i < len(list); i++ {
		if list[i-1].ID >= list[i].ID {
			t.Fatalf("List not sorted: %v", list)
		}
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register(GameInfo{ID: "zz_dup"}, func() Game { return &stubGame{} })
	defer func() {
		if recover() == nil {
			t.Error("duplicate registration should panic")
		}
	}()
	Register(GameInfo{ID: "zz_dup"}, func() Game { return &stubGame{} })
}
