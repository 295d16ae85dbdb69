// Package tui provides the Bubble Tea host for the board: the local game
// loop, the variant menu, the scoreboard and the SSH server.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
// Loop identifies the game model that scheduled it.
type TickMsg struct {
	At   time.Time
	Loop uint64
}

var loopIDs atomic.Uint64

// nextLoopID hands out a fresh tick loop id so a model ignores ticks
// still in flight from a previous game.
func nextLoopID() uint64 {
	return loopIDs.Add(1)
}

// tickCmd schedules the next tick at the given rate. Non-positive rates fall back to 60.
func tickCmd(tickRate int, loop uint64) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{At: t, Loop: loop}
	})
}
