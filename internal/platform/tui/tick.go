// Package tui is the terminal canvas for arcade3d: a Bubble Tea program that
// projects the engine state onto a character grid, forwards control intents
// and drives the frame and time-left ticks.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent once per display frame.
type TickMsg time.Time

// TimerMsg is sent at the engine's time-left cadence.
type TimerMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// timerCmd schedules the next time-left tick.
func timerCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TimerMsg(t)
	})
}
