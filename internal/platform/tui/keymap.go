package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/arcade3d/internal/core"
)

// holdFrames is how many frames a movement key stays pressed after its last
// key event. Terminals report no key releases, only auto-repeat.
const holdFrames = 8

// KeyMap defines the key bindings of the play screen.
type KeyMap struct {
	Left       key.Binding
	Right      key.Binding
	Shoot      key.Binding
	Confirm    key.Binding
	Pause      key.Binding
	Retry      key.Binding
	Screenshot key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Shoot, k.Pause, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Shoot},
		{k.Confirm, k.Pause, k.Retry},
		{k.Screenshot, k.Help, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("a", "left"),
			key.WithHelp("a/←", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("d", "right"),
			key.WithHelp("d/→", "right"),
		),
		Shoot: key.NewBinding(
			key.WithKeys(" ", "w", "up"),
			key.WithHelp("space", "shoot"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "start/continue"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", "esc"),
			key.WithHelp("p", "pause"),
		),
		Retry: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "retry"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// KeyMapper translates Bubble Tea key messages to control intents.
type KeyMapper struct {
	keys KeyMap
}

// NewKeyMapper creates a key mapper with the given bindings.
func NewKeyMapper(keys KeyMap) *KeyMapper {
	return &KeyMapper{keys: keys}
}

// Keys returns the bindings, for the help view.
func (km *KeyMapper) Keys() KeyMap {
	return km.keys
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch {
	case key.Matches(msg, km.keys.Quit):
		return core.ActionQuit, true
	case key.Matches(msg, km.keys.Left):
		return core.ActionLeft, false
	case key.Matches(msg, km.keys.Right):
		return core.ActionRight, false
	case key.Matches(msg, km.keys.Shoot):
		return core.ActionShoot, false
	case key.Matches(msg, km.keys.Confirm):
		return core.ActionConfirm, false
	case key.Matches(msg, km.keys.Pause):
		return core.ActionPause, false
	case key.Matches(msg, km.keys.Retry):
		return core.ActionRetry, false
	}
	return core.ActionNone, false
}

// MapKeyToFrame updates an input frame based on a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone {
		frame.Set(action)
	}
	return isQuit
}

// heldControls turns discrete key events into held movement intents that
// decay after holdFrames frames without a repeat.
type heldControls struct {
	left  int
	right int
}

// press applies the movement actions of frame. The most recent direction
// wins.
func (h *heldControls) press(frame core.InputFrame) {
	switch {
	case frame.Has(core.ActionLeft):
		h.left, h.right = holdFrames, 0
	case frame.Has(core.ActionRight):
		h.left, h.right = 0, holdFrames
	}
}

// controls returns this frame's intents and decays the held keys.
func (h *heldControls) controls(frame core.InputFrame) core.Controls {
	h.press(frame)
	c := core.Controls{
		Left:  h.left > 0,
		Right: h.right > 0,
		Shoot: frame.Has(core.ActionShoot),
	}
	if h.left > 0 {
		h.left--
	}
	if h.right > 0 {
		h.right--
	}
	return c
}

// release drops every held key.
func (h *heldControls) release() {
	h.left, h.right = 0, 0
}
