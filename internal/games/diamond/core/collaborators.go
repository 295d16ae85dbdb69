package core

// AudioSink receives fire-and-forget sound cues from the board.
type AudioSink interface {
	PlayMoved()
	PlayInvalidMove()
	PlayErased()
	PlayMusic()
}

// NopAudio discards every cue.
type NopAudio struct{}

func (NopAudio) PlayMoved()       {}
func (NopAudio) PlayInvalidMove() {}
func (NopAudio) PlayErased()      {}
func (NopAudio) PlayMusic()       {}

// Renderer draws board state. Positions are board pixels.
type Renderer interface {
	DrawGem(color int, x, y float64)
	DrawSelection(row, col int)
	DrawGridLine(x1, y1, x2, y2 float64)
	DebugGrid() bool
}
