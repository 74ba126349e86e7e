package tui

import (
	"fmt"

	"github.com/vovakirdan/arcade3d/internal/core"
	"github.com/vovakirdan/arcade3d/internal/engine"
	"github.com/vovakirdan/arcade3d/internal/world"
)

// overlay is a message box drawn over the scene.
type overlay struct {
	title string
	lines []string
	color core.Color
}

// overlayFor returns the box for the screen the engine is on, if any.
// The end screen is rendered separately as a table.
func overlayFor(e *engine.Engine) (overlay, bool) {
	st := e.Store()
	switch e.GameState() {
	case world.GameStartScreen:
		title := e.Definition().Title
		if title == "" {
			title = e.Definition().ID
		}
		return overlay{title: title, lines: []string{"Press ENTER to start"}, color: core.ColorCyan}, true
	case world.GamePaused:
		return overlay{title: "PAUSED", lines: []string{"Press P to resume"}, color: core.ColorYellow}, true
	case world.GameEndScreen:
		return overlay{}, false
	}

	lvl := st.Level
	title := lvl.Title
	if title == "" {
		title = lvl.ID
	}
	switch e.LevelState() {
	case world.LevelStartScreen:
		return overlay{
			title: title,
			lines: []string{lvl.StartScreenBody, "", "Press ENTER to start"},
			color: core.ColorCyan,
		}, true
	case world.LevelWinScreen:
		return overlay{
			title: "LEVEL COMPLETE",
			lines: []string{fmt.Sprintf("Score: %d", lvl.Score), "", "Press ENTER to continue"},
			color: core.ColorGreen,
		}, true
	case world.LevelFailScreen:
		return overlay{
			title: "LEVEL FAILED",
			lines: []string{fmt.Sprintf("Score: %d", lvl.Score), "", "Press R to retry"},
			color: core.ColorRed,
		}, true
	case world.LevelOutOfTime:
		return overlay{
			title: "OUT OF TIME",
			lines: []string{fmt.Sprintf("Score: %d", lvl.Score), "", "Press R to retry"},
			color: core.ColorOrange,
		}, true
	}
	return overlay{}, false
}

// draw draws a centered message box.
func (o overlay) draw(dst *core.Screen) {
	boxW := len([]rune(o.title))
	for _, l := range o.lines {
		boxW = core.Max(boxW, len([]rune(l)))
	}
	boxW += 4
	boxH := len(o.lines) + 4
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	rect := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(rect, ' ', core.ColorDefault)
	dst.DrawBox(rect, o.color)

	dst.DrawText(boxX+(boxW-len([]rune(o.title)))/2, boxY+1, o.title, o.color)
	for i, l := range o.lines {
		dst.DrawText(boxX+(boxW-len([]rune(l)))/2, boxY+3+i, l, core.ColorWhite)
	}
}
