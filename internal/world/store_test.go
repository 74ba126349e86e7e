package world

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore(NewPlayer(Props{Position: mgl64.Vec3{0, -5, 0}}, 100), 0)
	settings := s.AddLevel(LevelSettings{ID: "level1"})
	s.Level = NewLevelData(settings)
	return s
}

func TestStoreDamageScoresOnce(t *testing.T) {
	s := newTestStore(t)
	obj := enemy("a", 0, 1)
	obj.ScoreValue = IntPtr(7)
	_ = s.Objects.Register(obj)
	_ = s.Objects.Register(enemy("b", 3, 1))
	s.Level.LivingEnemies = s.Objects.LivingEnemies()

	out, err := s.Damage("a", 1, "player")
	if err != nil {
		t.Fatal(err)
	}
	if !out.Destroyed || out.ScoreValue != 7 {
		t.Errorf("outcome = %+v", out)
	}
	if s.Level.Score != 7 || s.Level.LivingEnemies != 1 || s.Level.EnemiesDestroyed != 1 {
		t.Errorf("level after kill: score=%d living=%d destroyed=%d",
			s.Level.Score, s.Level.LivingEnemies, s.Level.EnemiesDestroyed)
	}

	before := s.Level
	out, err = s.Damage("a", 1, "player")
	if err != nil {
		t.Fatal(err)
	}
	if out != (DamageOutcome{}) {
		t.Errorf("damaging destroyed target returned %+v", out)
	}
	if s.Level.Score != before.Score || s.Level.LivingEnemies != before.LivingEnemies ||
		s.Level.EnemiesDestroyed != before.EnemiesDestroyed {
		t.Error("damaging destroyed target changed level data")
	}
}

func TestStoreDamageSurvivorKeepsScore(t *testing.T) {
	s := newTestStore(t)
	_ = s.Objects.Register(enemy("a", 0, 3))
	if _, err := s.Damage("a", 1, ""); err != nil {
		t.Fatal(err)
	}
	if s.Level.Score != 0 {
		t.Errorf("score = %d after non-lethal hit", s.Level.Score)
	}
}

func TestStoreLevels(t *testing.T) {
	s := newTestStore(t)
	s.AddLevel(LevelSettings{ID: "level2", TimeLimitSec: IntPtr(30), Title: "Two"})

	got, err := s.LevelSettings("level2")
	if err != nil {
		t.Fatal(err)
	}
	if *got.TimeLimitSec != 30 || *got.NumberOfLives != 1 || !got.HasWin(WinNumEnemies0) {
		t.Errorf("merged settings = %+v", got)
	}
	if _, err := s.LevelSettings("nope"); !errors.Is(err, ErrLevelNotFound) {
		t.Errorf("unknown level = %v", err)
	}
	if levels := s.Levels(); len(levels) != 2 || levels[1].ID != "level2" {
		t.Errorf("Levels() = %v", levels)
	}
}

func TestStoreResultsOverwriteOnRetry(t *testing.T) {
	s := newTestStore(t)
	s.RecordResult(LevelResults{ID: "level1", Won: false})
	s.RecordResult(LevelResults{ID: "level2", Won: true, Score: 3})
	s.RecordResult(LevelResults{ID: "level1", Won: true, Score: 5})

	results := s.Results()
	if len(results) != 2 {
		t.Fatalf("Results() = %v", results)
	}
	if results[0].ID != "level1" || !results[0].Won || results[0].Score != 5 {
		t.Errorf("level1 result = %+v", results[0])
	}
	s.ClearResults()
	if len(s.Results()) != 0 {
		t.Error("ClearResults left results")
	}
}

func TestStoreResetPlayer(t *testing.T) {
	s := newTestStore(t)
	s.Player.Position[0] = 12
	s.Player.LastShootTimeMs = 999
	s.ResetPlayer()
	if s.Player.Position.X() != 0 || s.Player.LastShootTimeMs != 0 {
		t.Errorf("player after reset = %+v", s.Player)
	}
}

func TestLoseLife(t *testing.T) {
	s := newTestStore(t)
	s.LoseLife()
	s.LoseLife()
	if s.Level.LivesLeft != 0 {
		t.Errorf("LivesLeft = %d, want 0", s.Level.LivesLeft)
	}
}

func TestComputeTimeLeft(t *testing.T) {
	tests := []struct {
		name  string
		limit *int
		now   int64
		pause int64
		want  float64
	}{
		{"fresh", IntPtr(5), 0, 0, 5},
		{"partial second floors", IntPtr(5), 1999, 0, 4},
		{"pause discounted", IntPtr(5), 4000, 3000, 4},
		{"clamped at zero", IntPtr(5), 60000, 0, 0},
		{"unlimited", IntPtr(0), 60000, 0, math.Inf(1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewLevelData(MergeLevelSettings(LevelSettings{TimeLimitSec: tt.limit}))
			d.PauseOffsetMs = tt.pause
			if got := d.ComputeTimeLeft(tt.now); got != tt.want {
				t.Errorf("ComputeTimeLeft(%d) = %v, want %v", tt.now, got, tt.want)
			}
		})
	}
}

func TestMergeLevelSettingsDefaults(t *testing.T) {
	got := MergeLevelSettings(LevelSettings{})
	if got.ID != DefaultLevelID || *got.TimeLimitSec != 5 || got.NumLivingEnemies != nil {
		t.Errorf("defaults = %+v", got)
	}
	if !got.HasFail(FailTimeLeft0) || !got.HasFail(FailNumLives0) {
		t.Errorf("default fail criteria = %v", got.FailCriteria)
	}
}

func TestParseCriteria(t *testing.T) {
	for _, c := range []WinCriteria{WinNumEnemies0, WinCollideWithAnyTarget, WinCollideWithAllTargets, WinScoreAtOrAboveTarget} {
		got, err := ParseWinCriteria(c.String())
		if err != nil || got != c {
			t.Errorf("ParseWinCriteria(%q) = %v, %v", c, got, err)
		}
	}
	for _, c := range []FailCriteria{FailNumLives0, FailTimeLeft0} {
		got, err := ParseFailCriteria(c.String())
		if err != nil || got != c {
			t.Errorf("ParseFailCriteria(%q) = %v, %v", c, got, err)
		}
	}
	if _, err := ParseWinCriteria("bogus"); err == nil {
		t.Error("ParseWinCriteria accepted bogus")
	}
}

func TestSpawnDefaults(t *testing.T) {
	obj := NewBox("level1", Props{})
	if obj.ID == "" || obj.Size != (mgl64.Vec3{1, 1, 1}) || obj.Speed != 1 {
		t.Errorf("box defaults = %+v", obj)
	}
	if *obj.Health != 1 || *obj.ScoreValue != 1 || obj.Collider.BoxSize == nil || *obj.Collider.BoxSize != obj.Size {
		t.Errorf("box health/score/collider defaults wrong: %+v", obj)
	}
	if e := NewEnemy("level1", Props{}); !e.IsEnemy || e.Type != ObjectEnemy {
		t.Errorf("enemy = %+v", e)
	}
	if DirectionVector("forward") != (mgl64.Vec3{0, 0, -1}) || DirectionVector("") != (mgl64.Vec3{0, 1, 0}) {
		t.Error("DirectionVector mapping wrong")
	}
}
