// Package diamond plugs the match-3 board engine into the terminal host.
// It owns the start/playing/over shell, maps terminal cells to board pixels
// and draws gems as colored glyph blocks.
package diamond

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/vovakirdan/diamond-mine/internal/config"
	platformcore "github.com/vovakirdan/diamond-mine/internal/core"
	"github.com/vovakirdan/diamond-mine/internal/games/diamond/core"
	"github.com/vovakirdan/diamond-mine/internal/registry"
)

// Variant is a registered board flavor.
type Variant struct {
	ID          string
	Title       string
	Description string
	Preset      config.DifficultyPreset
}

// Variants lists every board flavor in menu order.
var Variants = []Variant{
	{ID: "diamond", Title: "Diamond Mine", Description: "60 seconds, five gem colors", Preset: config.DifficultyNormal},
	{ID: "diamond_relaxed", Title: "Diamond Mine (Relaxed)", Description: "Twice the time, one color fewer", Preset: config.DifficultyRelaxed},
	{ID: "diamond_blitz", Title: "Diamond Mine (Blitz)", Description: "Half the time, faster gems", Preset: config.DifficultyBlitz},
}

// VariantFor returns the registered variant for a difficulty preset.
func VariantFor(p config.DifficultyPreset) Variant {
	for _, v := range Variants {
		if v.Preset == p {
			return v
		}
	}
	return Variants[0]
}

// Package-level settings shared by every game the registry creates.
var (
	settingsMu sync.RWMutex
	baseConfig = config.Default()
	audioSink  core.AudioSink = core.NopAudio{}
)

// SetConfig replaces the configuration new games start from.
func SetConfig(cfg config.DiamondConfig) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	baseConfig = cfg
}

// SetAudio routes the sound cues of games created afterwards. Nil mutes them.
func SetAudio(sink core.AudioSink) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	if sink == nil {
		sink = core.NopAudio{}
	}
	audioSink = sink
}

func settings() (config.DiamondConfig, core.AudioSink) {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	cfg := baseConfig
	cfg.Display.Palette = append([]string(nil), baseConfig.Display.Palette...)
	return cfg, audioSink
}

func init() {
	for _, v := range Variants {
		v := v
		registry.Register(registry.GameInfo{ID: v.ID, Title: v.Title, Description: v.Description}, func() registry.Game {
			return New(v)
		})
	}
}

type phase int

const (
	phaseWaiting phase = iota
	phasePlaying
	phaseOver
)

const (
	hudRows    = 3 // Title, status, box edge
	footerRows = 2
)

// Game runs one Diamond Mine board.
type Game struct {
	variant Variant
	cfg     config.DiamondConfig
	audio   core.AudioSink
	board   *core.Board
	palette []platformcore.Color
	view    Viewport

	phase     phase
	paused    bool
	debugGrid bool
	tooSmall  bool
	frameMs   int
	highScore int
	tick      uint64
	err       error

	screenW int
	screenH int
}

// New creates a game for a variant using the current package settings.
func New(v Variant) *Game {
	cfg, sink := settings()
	config.ApplyDifficulty(&cfg, v.Preset)
	return &Game{variant: v, cfg: cfg, audio: sink}
}

// ID returns the variant identifier.
func (g *Game) ID() string { return g.variant.ID }

// Title returns the display name.
func (g *Game) Title() string { return g.variant.Title }

// SetHighScore sets the best stored score shown in the HUD.
func (g *Game) SetHighScore(score int) { g.highScore = score }

// RoundStats reports the swaps started and chains erased this round.
func (g *Game) RoundStats() (moves, chains int) {
	if g.board == nil {
		return 0, 0
	}
	snap := g.board.Snapshot()
	return snap.Moves, snap.Chains
}

// Resize re-centers the board for a new screen size without touching the round.
func (g *Game) Resize(w, h int) {
	g.screenW, g.screenH = w, h
	if g.board != nil {
		g.layoutView()
	}
}

// Board exposes the engine, mainly for tests and the bot.
func (g *Game) Board() *core.Board { return g.board }

// Reset builds a fresh board sized for the screen. The clock waits for Start.
func (g *Game) Reset(rc platformcore.RuntimeConfig) {
	g.screenW, g.screenH = rc.ScreenW, rc.ScreenH
	g.frameMs = g.cfg.ClampFrame(rc.FrameMillis())
	g.phase = phaseWaiting
	g.paused = false
	g.tick = 0
	g.err = nil

	seed := rc.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	palette, err := g.cfg.Palette()
	if err != nil {
		g.err = err
		return
	}
	g.palette = palette

	board, err := core.NewBoard(g.cfg.ToEngine(), rand.New(rand.NewSource(seed)), g.audio)
	if err != nil {
		g.err = err
		return
	}
	g.board = board

	g.layoutView()
}

// layoutView centers the board under the HUD.
func (g *Game) layoutView() {
	l := g.board.Layout()
	w, h := l.Cols*g.cfg.Display.TileCols, l.Rows*g.cfg.Display.TileRows
	g.tooSmall = g.screenW < w+2 || g.screenH < h+hudRows+footerRows
	x := max(0, (g.screenW-w)/2)
	y := hudRows + max(0, (g.screenH-hudRows-footerRows-h)/2)
	g.view = NewViewport(l, g.cfg.Display.TileCols, g.cfg.Display.TileRows, x, y)
}

// Step advances the shell and the board by one tick.
func (g *Game) Step(in platformcore.InputFrame) platformcore.StepResult {
	g.tick++
	if g.board == nil || g.tooSmall {
		return platformcore.StepResult{State: g.State()}
	}

	if in.Has(platformcore.ActionToggleGrid) {
		g.debugGrid = !g.debugGrid
	}
	if in.Has(platformcore.ActionRestart) {
		g.restart()
	}
	if in.Has(platformcore.ActionPause) && g.phase == phasePlaying {
		g.paused = !g.paused
	}
	if g.paused {
		return platformcore.StepResult{State: g.State()}
	}
	if g.phase == phaseWaiting && (in.Has(platformcore.ActionStart) || in.Has(platformcore.ActionConfirm)) {
		g.start()
	}

	if g.phase == phasePlaying {
		for _, p := range in.Pointers {
			px, py := g.view.ToPixel(p.X, p.Y)
			g.board.PointerEvent(px, py, p.Press)
		}
	}

	g.board.Update(g.frameMs)

	if g.phase == phasePlaying && g.board.SecondsRemaining() == 0 {
		g.phase = phaseOver
		g.board.SetRunning(false)
	}
	return platformcore.StepResult{State: g.State()}
}

func (g *Game) start() {
	g.phase = phasePlaying
	g.board.SetRunning(true)
	g.audio.PlayMusic()
}

// restart refills the board. A finished round goes back to waiting for Start.
func (g *Game) restart() {
	g.board.Reset()
	g.paused = false
	if g.phase == phaseOver {
		g.phase = phaseWaiting
		g.board.SetRunning(false)
	}
}

// State returns the current game state.
func (g *Game) State() platformcore.GameState {
	st := platformcore.GameState{
		Started:  g.phase != phaseWaiting,
		GameOver: g.phase == phaseOver,
		Paused:   g.paused,
	}
	if g.board != nil {
		st.Score = g.board.Score()
		st.SecondsLeft = g.board.SecondsRemaining()
	}
	return st
}

// Render draws the HUD, the board and the key help.
func (g *Game) Render(dst *platformcore.Screen) {
	if g.err != nil {
		dst.DrawTextCentered(dst.Height()/2, fmt.Sprintf("config error: %v", g.err), platformcore.ColorRed)
		return
	}
	if g.board == nil {
		return
	}
	if g.tooSmall {
		w, h := g.view.Size()
		dst.DrawTextCentered(dst.Height()/2, fmt.Sprintf("Terminal too small: need %dx%d", w+2, h+hudRows+footerRows), platformcore.ColorYellow)
		return
	}

	g.renderHUD(dst)
	dst.DrawBox(g.view.Rect().Inset(-1), platformcore.ColorGray)
	g.board.Render(&screenRenderer{dst: dst, view: g.view, palette: g.palette, debug: g.debugGrid})
	g.renderFooter(dst)
}

func (g *Game) renderHUD(dst *platformcore.Screen) {
	st := g.State()
	line := fmt.Sprintf("%s   Score: %d   Time: %ds   Best: %d", g.variant.Title, st.Score, st.SecondsLeft, max(g.highScore, st.Score))
	dst.DrawTextCentered(0, line, platformcore.ColorBrightCyan)

	switch {
	case g.paused:
		dst.DrawTextCentered(1, "PAUSED - press P to resume", platformcore.ColorYellow)
	case g.phase == phaseWaiting:
		dst.DrawTextCentered(1, "Press S to start", platformcore.ColorBrightGreen)
	case g.phase == phaseOver:
		dst.DrawTextCentered(1, fmt.Sprintf("Time's up! Final score %d. Press R to play again", st.Score), platformcore.ColorBrightRed)
	}
}

func (g *Game) renderFooter(dst *platformcore.Screen) {
	y := g.view.Rect().Bottom() + 1
	dst.DrawTextCentered(y, "Click or drag gems   S start   R restart   0 grid   P pause   Q quit", platformcore.ColorGray)
}
