package tui

import (
	"fmt"
	"math"
	"math/rand"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/arcade3d/internal/core"
	"github.com/vovakirdan/arcade3d/internal/world"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault: lipgloss.NewStyle(),
	core.ColorRed:     lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:   lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBlue:    lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorMagenta: lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	core.ColorCyan:    lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorWhite:   lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorOrange:  lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGray:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			startColor := cell.Color

			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// Projection maps the world x/y plane onto a screen area. Depth is
// dropped: the camera looks straight down the -z axis.
type Projection struct {
	Min  mgl64.Vec3
	Max  mgl64.Vec3
	Area core.Rect
}

// Project returns the cell for a world position and whether it falls
// inside the area.
func (p Projection) Project(pos mgl64.Vec3) (x, y int, ok bool) {
	spanX := p.Max.X() - p.Min.X()
	spanY := p.Max.Y() - p.Min.Y()
	if spanX <= 0 || spanY <= 0 || p.Area.W <= 0 || p.Area.H <= 0 {
		return 0, 0, false
	}
	fx := (pos.X() - p.Min.X()) / spanX
	fy := (p.Max.Y() - pos.Y()) / spanY
	x = p.Area.X + int(math.Round(fx*float64(p.Area.W-1)))
	y = p.Area.Y + int(math.Round(fy*float64(p.Area.H-1)))
	return x, y, p.Area.Contains(x, y)
}

// Extent returns the cell footprint of a world size, at least 1x1.
func (p Projection) Extent(size mgl64.Vec3) (w, h int) {
	spanX := p.Max.X() - p.Min.X()
	spanY := p.Max.Y() - p.Min.Y()
	if spanX <= 0 || spanY <= 0 {
		return 1, 1
	}
	w = int(math.Round(size.X() / spanX * float64(p.Area.W)))
	h = int(math.Round(size.Y() / spanY * float64(p.Area.H)))
	return core.Max(w, 1), core.Max(h, 1)
}

// starCount is the number of background stars per 100 cells.
const starCount = 2

type star struct {
	x, y float64 // fractions of the play area
}

// Canvas draws the store onto a screen: background, objects, projectiles,
// player and HUD.
type Canvas struct {
	stars []star
	drift float64
}

// NewCanvas creates a canvas whose star field is derived from seed.
func NewCanvas(seed int64) *Canvas {
	rng := rand.New(rand.NewSource(seed))
	stars := make([]star, 0, 64)
	for range 64 {
		stars = append(stars, star{x: rng.Float64(), y: rng.Float64()})
	}
	return &Canvas{stars: stars}
}

// Advance scrolls the moving star modes by delta seconds.
func (c *Canvas) Advance(delta float64) {
	c.drift += delta * 0.05
	if c.drift >= 1 {
		c.drift -= math.Floor(c.drift)
	}
}

// playArea is the screen region below the HUD line.
func playArea(s *core.Screen) core.Rect {
	return core.NewRect(0, 1, s.Width(), core.Max(s.Height()-1, 0))
}

// Draw renders the current level of st. Destroyed objects are skipped.
func (c *Canvas) Draw(s *core.Screen, st *world.Store, proj Projection) {
	s.Clear()
	c.drawBackground(s, st.Game.BackgroundAddition, proj.Area)

	for _, obj := range st.Objects.All() {
		if obj.Destroyed || obj.ParentLevelID != st.Game.CurrentLevel {
			continue
		}
		drawObject(s, proj, obj, objectRune(obj))
	}
	for _, p := range st.Projectiles.All() {
		if x, y, ok := proj.Project(p.Position); ok {
			s.SetColored(x, y, '|', colorOr(p.Color, core.ColorYellow))
		}
	}
	drawObject(s, proj, st.Player.GameObjectData, 'A')

	drawHUD(s, st)
}

func (c *Canvas) drawBackground(s *core.Screen, mode core.BackgroundMode, area core.Rect) {
	if mode == core.BackgroundNone || area.W <= 0 || area.H <= 0 {
		return
	}
	visible := core.Clamp(area.W*area.H*starCount/100, 0, len(c.stars))
	for _, st := range c.stars[:visible] {
		fx, fy := st.x, st.y
		switch mode {
		case core.BackgroundStarsMovingDown:
			fy = wrap(fy + c.drift)
		case core.BackgroundStarsMovingUp:
			fy = wrap(fy - c.drift)
		case core.BackgroundStarsMovingLeft:
			fx = wrap(fx - c.drift)
		case core.BackgroundStarsMovingRight:
			fx = wrap(fx + c.drift)
		}
		x := area.X + int(fx*float64(area.W))
		y := area.Y + int(fy*float64(area.H))
		s.SetColored(x, y, '.', core.ColorGray)
	}
}

func wrap(f float64) float64 {
	return f - math.Floor(f)
}

func drawObject(s *core.Screen, proj Projection, obj world.GameObjectData, r rune) {
	x, y, ok := proj.Project(obj.Position)
	if !ok {
		return
	}
	w, h := proj.Extent(obj.Size)
	rect := core.NewRect(x-w/2, y-h/2, w, h)
	s.DrawRect(rect, r, colorOr(obj.Color, defaultColor(obj)))
}

func objectRune(obj world.GameObjectData) rune {
	switch {
	case obj.IsEnemy:
		return 'W'
	case obj.Type == world.ObjectBox:
		return '#'
	default:
		return 'o'
	}
}

func defaultColor(obj world.GameObjectData) core.Color {
	switch {
	case obj.Type == world.ObjectPlayer:
		return core.ColorCyan
	case obj.IsEnemy:
		return core.ColorRed
	default:
		return core.ColorWhite
	}
}

func colorOr(name string, fallback core.Color) core.Color {
	if c := core.ParseColor(name); c != core.ColorDefault {
		return c
	}
	return fallback
}

// hudText formats the status line of the current level.
func hudText(st *world.Store) string {
	lvl := st.Level
	title := lvl.Title
	if title == "" {
		title = lvl.ID
	}
	timeLeft := "∞"
	if !math.IsInf(lvl.TimeLeftSec, 1) {
		timeLeft = fmt.Sprintf("%.0fs", lvl.TimeLeftSec)
	}
	return fmt.Sprintf("%s  Score: %d  Time: %s  Lives: %d  Enemies: %d",
		title, lvl.Score, timeLeft, lvl.LivesLeft, lvl.LivingEnemies)
}

func drawHUD(s *core.Screen, st *world.Store) {
	s.DrawText(1, 0, hudText(st), core.ColorWhite)
}
