package world

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/vovakirdan/arcade3d/internal/core"
)

// GameState is the overall game screen state.
type GameState int

const (
	GameStartScreen GameState = iota
	GameNormalPlay
	GamePaused
	GameEndScreen
)

func (s GameState) String() string {
	switch s {
	case GameStartScreen:
		return "start_screen"
	case GameNormalPlay:
		return "normal_play"
	case GamePaused:
		return "paused"
	case GameEndScreen:
		return "end_screen"
	default:
		return fmt.Sprintf("game_state(%d)", int(s))
	}
}

// LevelState is the state of one level attempt.
type LevelState int

const (
	LevelStartScreen LevelState = iota
	LevelNormalPlay
	LevelWinScreen
	LevelFailScreen
	LevelOutOfTime
)

func (s LevelState) String() string {
	switch s {
	case LevelStartScreen:
		return "start_screen"
	case LevelNormalPlay:
		return "normal_play"
	case LevelWinScreen:
		return "win_screen"
	case LevelFailScreen:
		return "fail_screen"
	case LevelOutOfTime:
		return "out_of_time"
	default:
		return fmt.Sprintf("level_state(%d)", int(s))
	}
}

// FailCriteria names a condition that loses the level.
type FailCriteria int

const (
	FailNumLives0 FailCriteria = iota
	FailTimeLeft0
)

func (c FailCriteria) String() string {
	switch c {
	case FailNumLives0:
		return "num_lives_0"
	case FailTimeLeft0:
		return "time_left_0"
	default:
		return fmt.Sprintf("fail(%d)", int(c))
	}
}

// ParseFailCriteria converts a definition string into a FailCriteria.
func ParseFailCriteria(s string) (FailCriteria, error) {
	switch strings.ToLower(s) {
	case "num_lives_0":
		return FailNumLives0, nil
	case "time_left_0":
		return FailTimeLeft0, nil
	default:
		return 0, fmt.Errorf("world: unknown fail criteria %q", s)
	}
}

// WinCriteria names a condition that wins the level.
type WinCriteria int

const (
	WinNumEnemies0 WinCriteria = iota
	WinCollideWithAnyTarget
	WinCollideWithAllTargets
	WinScoreAtOrAboveTarget
)

func (c WinCriteria) String() string {
	switch c {
	case WinNumEnemies0:
		return "num_enemies_0"
	case WinCollideWithAnyTarget:
		return "collide_with_any_target"
	case WinCollideWithAllTargets:
		return "collide_with_all_targets"
	case WinScoreAtOrAboveTarget:
		return "score_at_or_above_target"
	default:
		return fmt.Sprintf("win(%d)", int(c))
	}
}

// ParseWinCriteria converts a definition string into a WinCriteria.
func ParseWinCriteria(s string) (WinCriteria, error) {
	switch strings.ToLower(s) {
	case "num_enemies_0":
		return WinNumEnemies0, nil
	case "collide_with_any_target":
		return WinCollideWithAnyTarget, nil
	case "collide_with_all_targets":
		return WinCollideWithAllTargets, nil
	case "score_at_or_above_target":
		return WinScoreAtOrAboveTarget, nil
	default:
		return 0, fmt.Errorf("world: unknown win criteria %q", s)
	}
}

// LevelFlowType selects how the game moves between levels.
type LevelFlowType int

const (
	FlowNone LevelFlowType = iota
	FlowLinear
)

func (t LevelFlowType) String() string {
	if t == FlowLinear {
		return "linear"
	}
	return "none"
}

// ParseLevelFlowType converts a definition string into a LevelFlowType.
func ParseLevelFlowType(s string) (LevelFlowType, error) {
	switch strings.ToLower(s) {
	case "linear":
		return FlowLinear, nil
	case "none":
		return FlowNone, nil
	default:
		return 0, fmt.Errorf("world: unknown level flow type %q", s)
	}
}

// GameSettings is the game-wide configuration and state.
// GoToLevel is a one-shot signal: the game machine sets it and the level
// machine of the matching level consumes and clears it.
type GameSettings struct {
	Background         string
	BackgroundAddition core.BackgroundMode
	OverlayTextColor   string
	Gravity            string
	TravelDirection    string
	LevelFlowType      LevelFlowType
	LevelFlow          []string
	CurrentLevel       string
	GoToLevel          string
	GameState          GameState
}

// DefaultGameSettings returns the settings a game starts from before the
// host's overrides are merged in.
func DefaultGameSettings() GameSettings {
	return GameSettings{
		Background:         "transparent",
		BackgroundAddition: core.BackgroundNone,
		OverlayTextColor:   "black",
		Gravity:            "none",
		TravelDirection:    "up",
		LevelFlowType:      FlowLinear,
		LevelFlow:          []string{DefaultLevelID},
		GameState:          GameStartScreen,
	}
}

// DefaultLevelID is the id of the level used when a game declares none.
const DefaultLevelID = "defaultLevel"

// LevelSettings is the static configuration of a level.
// Nil optional fields fall back to DefaultLevelSettings when merged,
// except NumLivingEnemies: nil means "count the level's enemies".
type LevelSettings struct {
	ID               string
	FailCriteria     []FailCriteria
	WinCriteria      []WinCriteria
	NumberOfLives    *int
	NumLivingEnemies *int
	TimeLimitSec     *int // 0 means unlimited
	TargetIDs        []string
	TargetScore      *int
	LevelState       LevelState
	Title            string
	StartScreenBody  string
}

// DefaultLevelSettings returns the base settings every level is merged over.
func DefaultLevelSettings() LevelSettings {
	return LevelSettings{
		ID:              DefaultLevelID,
		FailCriteria:    []FailCriteria{FailNumLives0, FailTimeLeft0},
		WinCriteria:     []WinCriteria{WinNumEnemies0},
		NumberOfLives:   IntPtr(1),
		TimeLimitSec:    IntPtr(5),
		TargetIDs:       []string{},
		LevelState:      LevelStartScreen,
		StartScreenBody: "Defeat all enemies to win!",
	}
}

// MergeLevelSettings overlays the non-zero fields of s onto the defaults.
func MergeLevelSettings(s LevelSettings) LevelSettings {
	out := DefaultLevelSettings()
	if s.ID != "" {
		out.ID = s.ID
	}
	if s.FailCriteria != nil {
		out.FailCriteria = slices.Clone(s.FailCriteria)
	}
	if s.WinCriteria != nil {
		out.WinCriteria = slices.Clone(s.WinCriteria)
	}
	if s.NumberOfLives != nil {
		out.NumberOfLives = cloneInt(s.NumberOfLives)
	}
	out.NumLivingEnemies = cloneInt(s.NumLivingEnemies)
	if s.TimeLimitSec != nil {
		out.TimeLimitSec = cloneInt(s.TimeLimitSec)
	}
	if s.TargetIDs != nil {
		out.TargetIDs = slices.Clone(s.TargetIDs)
	}
	out.TargetScore = cloneInt(s.TargetScore)
	out.LevelState = s.LevelState
	out.Title = s.Title
	if s.StartScreenBody != "" {
		out.StartScreenBody = s.StartScreenBody
	}
	return out
}

// Clone returns a deep copy of the settings.
func (s LevelSettings) Clone() LevelSettings {
	out := s
	out.FailCriteria = slices.Clone(s.FailCriteria)
	out.WinCriteria = slices.Clone(s.WinCriteria)
	out.NumberOfLives = cloneInt(s.NumberOfLives)
	out.NumLivingEnemies = cloneInt(s.NumLivingEnemies)
	out.TimeLimitSec = cloneInt(s.TimeLimitSec)
	out.TargetIDs = slices.Clone(s.TargetIDs)
	out.TargetScore = cloneInt(s.TargetScore)
	return out
}

// HasFail reports whether c is one of the level's fail criteria.
func (s LevelSettings) HasFail(c FailCriteria) bool {
	return slices.Contains(s.FailCriteria, c)
}

// HasWin reports whether c is one of the level's win criteria.
func (s LevelSettings) HasWin(c WinCriteria) bool {
	return slices.Contains(s.WinCriteria, c)
}

// LevelData is the mutable runtime data of the current level.
type LevelData struct {
	LevelSettings

	TimeLeftSec      float64 // +Inf when the level has no time limit
	PauseOffsetMs    int64
	StartTimeMs      int64
	Score            int
	LivingEnemies    int
	LivesLeft        int
	EnemiesDestroyed int
	TouchedTargets   map[string]bool
}

// NewLevelData builds fresh runtime data from settings.
func NewLevelData(s LevelSettings) LevelData {
	d := LevelData{
		LevelSettings:  s.Clone(),
		TimeLeftSec:    TimeLimit(s),
		TouchedTargets: make(map[string]bool),
	}
	if s.NumLivingEnemies != nil {
		d.LivingEnemies = *s.NumLivingEnemies
	}
	if s.NumberOfLives != nil {
		d.LivesLeft = *s.NumberOfLives
	}
	return d
}

// TimeLimit returns the level time limit in seconds, +Inf when unlimited.
func TimeLimit(s LevelSettings) float64 {
	if s.TimeLimitSec == nil || *s.TimeLimitSec <= 0 {
		return math.Inf(1)
	}
	return float64(*s.TimeLimitSec)
}

// ComputeTimeLeft returns max(0, limit - floor((now - start - pauseOffset) / 1000)).
func (d LevelData) ComputeTimeLeft(nowMs int64) float64 {
	limit := TimeLimit(d.LevelSettings)
	if math.IsInf(limit, 1) {
		return limit
	}
	elapsedSec := math.Floor(float64(nowMs-d.StartTimeMs-d.PauseOffsetMs) / 1000)
	return math.Max(0, limit-elapsedSec)
}

// LevelResults is the outcome of one completed level attempt.
type LevelResults struct {
	ID                string
	Score             int
	Won               bool
	TimeRemainingSec  float64
	TimeToCompleteSec float64
	EnemiesDestroyed  int
	LivesLeft         int
	WinningCriteria   *WinCriteria
	FailingCriteria   *FailCriteria
}
