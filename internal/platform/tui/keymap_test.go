package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/arcade3d/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper(DefaultKeyMap())

	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{"a", runeKey('a'), core.ActionLeft, false},
		{"left arrow", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft, false},
		{"d", runeKey('d'), core.ActionRight, false},
		{"right arrow", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight, false},
		{"space", tea.KeyMsg{Type: tea.KeySpace}, core.ActionShoot, false},
		{"w", runeKey('w'), core.ActionShoot, false},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm, false},
		{"p", runeKey('p'), core.ActionPause, false},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionPause, false},
		{"r", runeKey('r'), core.ActionRetry, false},
		{"q", runeKey('q'), core.ActionQuit, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound", runeKey('x'), core.ActionNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, quit := km.MapKey(tt.msg)
			if action != tt.action || quit != tt.quit {
				t.Errorf("MapKey(%q) = (%v, %v), expected (%v, %v)", tt.msg.String(), action, quit, tt.action, tt.quit)
			}
		})
	}
}

func TestMapKeyToFrame(t *testing.T) {
	km := NewKeyMapper(DefaultKeyMap())
	frame := core.NewInputFrame()

	if km.MapKeyToFrame(runeKey('a'), &frame) {
		t.Fatal("a should not quit")
	}
	km.MapKeyToFrame(tea.KeyMsg{Type: tea.KeySpace}, &frame)
	km.MapKeyToFrame(runeKey('x'), &frame)

	c := frame.Controls()
	if !c.Left || !c.Shoot || c.Right {
		t.Errorf("Controls() = %+v, expected left and shoot", c)
	}
	if len(frame.Actions) != 2 {
		t.Errorf("frame has %d actions, expected 2", len(frame.Actions))
	}
}

func TestHeldControlsDecay(t *testing.T) {
	var h heldControls
	press := core.NewInputFrame()
	press.Set(core.ActionLeft)
	press.Set(core.ActionShoot)

	c := h.controls(press)
	if !c.Left || !c.Shoot {
		t.Fatalf("first frame = %+v, expected left and shoot", c)
	}

	empty := core.NewInputFrame()
	for i := 1; i < holdFrames; i++ {
		c = h.controls(empty)
		if !c.Left {
			t.Fatalf("frame %d: left released early", i)
		}
		if c.Shoot {
			t.Fatalf("frame %d: shoot should last one frame", i)
		}
	}
	if c = h.controls(empty); c.Left {
		t.Errorf("left still held after %d frames", holdFrames)
	}
}

func TestHeldControlsLatestDirectionWins(t *testing.T) {
	var h heldControls
	left := core.NewInputFrame()
	left.Set(core.ActionLeft)
	right := core.NewInputFrame()
	right.Set(core.ActionRight)

	h.controls(left)
	c := h.controls(right)
	if c.Left || !c.Right {
		t.Errorf("controls = %+v, expected right only", c)
	}

	h.release()
	if c = h.controls(core.NewInputFrame()); c.Left || c.Right {
		t.Errorf("after release controls = %+v, expected none", c)
	}
}

func TestKeyMapHelp(t *testing.T) {
	keys := DefaultKeyMap()
	if len(keys.ShortHelp()) == 0 {
		t.Error("ShortHelp should not be empty")
	}
	total := 0
	for _, col := range keys.FullHelp() {
		total += len(col)
	}
	if total != 9 {
		t.Errorf("FullHelp has %d bindings, expected 9", total)
	}
}
