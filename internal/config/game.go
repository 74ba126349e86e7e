package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/arcade3d/internal/core"
	"github.com/vovakirdan/arcade3d/internal/engine"
	"github.com/vovakirdan/arcade3d/internal/world"
)

// ErrNoGameID is returned for a definition without an id.
var ErrNoGameID = errors.New("config: game definition has no id")

// GameFile is the YAML form of a game definition.
type GameFile struct {
	ID          string        `yaml:"id"`
	Title       string        `yaml:"title"`
	Description string        `yaml:"description"`
	Settings    GameSettings  `yaml:"settings"`
	Player      *PlayerConfig `yaml:"player"`
	Levels      []LevelConfig `yaml:"levels"`
}

// GameSettings is the YAML form of the game settings.
type GameSettings struct {
	Background         string   `yaml:"background"`
	BackgroundAddition string   `yaml:"background_addition"`
	OverlayTextColor   string   `yaml:"overlay_text_color"`
	Gravity            string   `yaml:"gravity"`
	TravelDirection    string   `yaml:"travel_direction"`
	LevelFlowType      string   `yaml:"level_flow_type"`
	LevelFlow          []string `yaml:"level_flow"`
}

// LevelConfig is the YAML form of a level and the objects it declares.
type LevelConfig struct {
	ID               string         `yaml:"id"`
	Title            string         `yaml:"title"`
	StartScreenBody  string         `yaml:"start_screen_body"`
	FailCriteria     []string       `yaml:"fail_criteria"`
	WinCriteria      []string       `yaml:"win_criteria"`
	NumberOfLives    *int           `yaml:"number_of_lives"`
	NumLivingEnemies *int           `yaml:"num_living_enemies"`
	TimeLimitSec     *int           `yaml:"time_limit_sec"`
	TargetIDs        []string       `yaml:"target_ids"`
	TargetScore      *int           `yaml:"target_score"`
	Objects          []ObjectConfig `yaml:"objects"`
}

// ObjectConfig is the YAML form of a declared object.
type ObjectConfig struct {
	Kind       string          `yaml:"kind"` // object, box or enemy
	ID         string          `yaml:"id"`
	Position   *Vec            `yaml:"position"`
	Size       *Vec            `yaml:"size"`
	Rotation   *Vec            `yaml:"rotation"`
	Speed      float64         `yaml:"speed"`
	Health     *int            `yaml:"health"`
	ScoreValue *int            `yaml:"score_value"`
	Collider   *ColliderConfig `yaml:"collider"`
	Color      string          `yaml:"color"`
	Model      string          `yaml:"model"`
}

// ParseGame decodes a YAML game definition.
func ParseGame(data []byte) (GameFile, error) {
	var g GameFile
	if err := yaml.Unmarshal(data, &g); err != nil {
		return GameFile{}, err
	}
	if g.ID == "" {
		return GameFile{}, ErrNoGameID
	}
	return g, nil
}

// LoadGame reads and decodes a game definition file.
func LoadGame(path string) (GameFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return GameFile{}, fmt.Errorf("failed to read game %s: %w", path, err)
	}
	g, err := ParseGame(data)
	if err != nil {
		return GameFile{}, fmt.Errorf("failed to parse game %s: %w", path, err)
	}
	return g, nil
}

// Definition converts the file into an engine definition, using ec for the
// player defaults.
func (g GameFile) Definition(ec EngineConfig) (engine.Definition, error) {
	settings, err := g.Settings.build()
	if err != nil {
		return engine.Definition{}, fmt.Errorf("config: game %q: %w", g.ID, err)
	}
	player, err := ec.NewPlayer(g.Player)
	if err != nil {
		return engine.Definition{}, fmt.Errorf("config: game %q: %w", g.ID, err)
	}

	def := engine.Definition{
		ID:     g.ID,
		Title:  g.Title,
		Game:   settings,
		Player: player,
	}
	for i, lc := range g.Levels {
		ld, err := lc.build()
		if err != nil {
			return engine.Definition{}, fmt.Errorf("config: game %q: level %d: %w", g.ID, i, err)
		}
		def.Levels = append(def.Levels, ld)
	}
	if len(g.Settings.LevelFlow) == 0 && len(def.Levels) > 0 {
		for _, ld := range def.Levels {
			def.Game.LevelFlow = append(def.Game.LevelFlow, ld.Settings.ID)
		}
	}
	return def, nil
}

func (s GameSettings) build() (world.GameSettings, error) {
	flowType := world.FlowLinear
	if s.LevelFlowType != "" {
		t, err := world.ParseLevelFlowType(s.LevelFlowType)
		if err != nil {
			return world.GameSettings{}, err
		}
		flowType = t
	}
	return world.GameSettings{
		Background:         s.Background,
		BackgroundAddition: core.ParseBackgroundMode(s.BackgroundAddition),
		OverlayTextColor:   s.OverlayTextColor,
		Gravity:            s.Gravity,
		TravelDirection:    s.TravelDirection,
		LevelFlowType:      flowType,
		LevelFlow:          s.LevelFlow,
	}, nil
}

func (lc LevelConfig) build() (engine.LevelDefinition, error) {
	if lc.ID == "" {
		return engine.LevelDefinition{}, fmt.Errorf("%w: level", world.ErrMissingID)
	}
	ls := world.LevelSettings{
		ID:               lc.ID,
		Title:            lc.Title,
		StartScreenBody:  lc.StartScreenBody,
		NumberOfLives:    lc.NumberOfLives,
		NumLivingEnemies: lc.NumLivingEnemies,
		TimeLimitSec:     lc.TimeLimitSec,
		TargetIDs:        lc.TargetIDs,
		TargetScore:      lc.TargetScore,
	}
	for _, name := range lc.FailCriteria {
		c, err := world.ParseFailCriteria(name)
		if err != nil {
			return engine.LevelDefinition{}, fmt.Errorf("level %q: %w", lc.ID, err)
		}
		ls.FailCriteria = append(ls.FailCriteria, c)
	}
	for _, name := range lc.WinCriteria {
		c, err := world.ParseWinCriteria(name)
		if err != nil {
			return engine.LevelDefinition{}, fmt.Errorf("level %q: %w", lc.ID, err)
		}
		ls.WinCriteria = append(ls.WinCriteria, c)
	}

	ld := engine.LevelDefinition{Settings: ls}
	seen := make(map[string]bool)
	for i, oc := range lc.Objects {
		obj, err := oc.build(lc.ID)
		if err != nil {
			return engine.LevelDefinition{}, fmt.Errorf("level %q: object %d: %w", lc.ID, i, err)
		}
		if seen[obj.ID] {
			return engine.LevelDefinition{}, fmt.Errorf("level %q: duplicate object id %q", lc.ID, obj.ID)
		}
		seen[obj.ID] = true
		ld.Objects = append(ld.Objects, obj)
	}
	for _, id := range lc.TargetIDs {
		if !seen[id] {
			return engine.LevelDefinition{}, fmt.Errorf("level %q: %w: target %q", lc.ID, world.ErrTargetNotFound, id)
		}
	}
	return ld, nil
}

func (oc ObjectConfig) build(levelID string) (world.GameObjectData, error) {
	props := world.Props{
		ID:         oc.ID,
		Position:   vecOr(oc.Position, mgl64.Vec3{}),
		Size:       vecOr(oc.Size, mgl64.Vec3{}),
		Rotation:   vecOr(oc.Rotation, mgl64.Vec3{}),
		Speed:      oc.Speed,
		Health:     oc.Health,
		ScoreValue: oc.ScoreValue,
		Color:      oc.Color,
		ModelPath:  oc.Model,
	}
	if oc.Collider != nil {
		col, err := oc.Collider.Build()
		if err != nil {
			return world.GameObjectData{}, err
		}
		props.Collider = col
	}

	switch oc.Kind {
	case "", "object":
		return world.NewGameObject(levelID, props), nil
	case "box":
		return world.NewBox(levelID, props), nil
	case "enemy":
		return world.NewEnemy(levelID, props), nil
	default:
		return world.GameObjectData{}, fmt.Errorf("config: unknown object kind %q", oc.Kind)
	}
}

// LevelSummary describes a level for listing and validation.
type LevelSummary struct {
	ID        string
	Title     string
	Objects   int
	Enemies   int
	Colliders map[string]int // count per collider shape, "none" for objects without one
}

// Summarize describes every level of a definition.
func Summarize(def engine.Definition) []LevelSummary {
	out := make([]LevelSummary, 0, len(def.Levels))
	for _, ld := range def.Levels {
		s := LevelSummary{
			ID:        ld.Settings.ID,
			Title:     ld.Settings.Title,
			Objects:   len(ld.Objects),
			Colliders: make(map[string]int),
		}
		for _, obj := range ld.Objects {
			if obj.IsEnemy {
				s.Enemies++
			}
			s.Colliders[shapeOf(obj.Collider)]++
		}
		out = append(out, s)
	}
	return out
}

// OverObjectLimit returns the ids of levels declaring more than MaxObjects
// objects. A MaxObjects of 0 or less disables the check.
func (c EngineConfig) OverObjectLimit(levels []LevelSummary) []string {
	if c.MaxObjects <= 0 {
		return nil
	}
	var ids []string
	for _, s := range levels {
		if s.Objects > c.MaxObjects {
			ids = append(ids, s.ID)
		}
	}
	return ids
}
