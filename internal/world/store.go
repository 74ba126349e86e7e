package world

import (
	"fmt"
	"slices"
)

// Store is the authoritative state of one running game.
type Store struct {
	Objects     *ObjectRegistry
	Projectiles *ProjectileRegistry
	Player      PlayerObjectData
	Game        GameSettings
	Level       LevelData

	initialPlayer PlayerObjectData
	levels        map[string]LevelSettings
	levelOrder    []string
	results       map[string]LevelResults
	resultOrder   []string
}

// NewStore creates a store holding player, with default game settings and
// no levels.
func NewStore(player PlayerObjectData, projectileCapacity int) *Store {
	return &Store{
		Objects:       NewObjectRegistry(),
		Projectiles:   NewProjectileRegistry(projectileCapacity),
		Player:        player.Clone(),
		Game:          DefaultGameSettings(),
		initialPlayer: player.Clone(),
		levels:        make(map[string]LevelSettings),
		results:       make(map[string]LevelResults),
	}
}

// AddLevel merges settings over the level defaults and stores the result.
// Adding an existing id replaces its settings.
func (s *Store) AddLevel(settings LevelSettings) LevelSettings {
	merged := MergeLevelSettings(settings)
	if _, ok := s.levels[merged.ID]; !ok {
		s.levelOrder = append(s.levelOrder, merged.ID)
	}
	s.levels[merged.ID] = merged
	return merged.Clone()
}

// LevelSettings returns the stored settings for id.
func (s *Store) LevelSettings(id string) (LevelSettings, error) {
	ls, ok := s.levels[id]
	if !ok {
		return LevelSettings{}, fmt.Errorf("%w: %q", ErrLevelNotFound, id)
	}
	return ls.Clone(), nil
}

// Levels returns every level's settings in the order they were added.
func (s *Store) Levels() []LevelSettings {
	out := make([]LevelSettings, 0, len(s.levelOrder))
	for _, id := range s.levelOrder {
		out = append(out, s.levels[id].Clone())
	}
	return out
}

// Damage applies amount to targetID and publishes the consequences to the
// current level: living-enemy count, enemies destroyed and score.
// Damaging an already destroyed target changes nothing.
func (s *Store) Damage(targetID string, amount int, sourceID string) (DamageOutcome, error) {
	out, err := s.Objects.Damage(targetID, amount)
	if err != nil {
		return out, err
	}
	if !out.Destroyed {
		return out, nil
	}
	s.Level.LivingEnemies = s.Objects.LivingEnemies()
	if out.IsEnemy {
		s.Level.EnemiesDestroyed++
	}
	s.Level.Score += out.ScoreValue
	return out, nil
}

// LoseLife takes one life from the current level, never going below zero.
func (s *Store) LoseLife() {
	if s.Level.LivesLeft > 0 {
		s.Level.LivesLeft--
	}
}

// RecordResult stores r under its level id, replacing an earlier attempt.
func (s *Store) RecordResult(r LevelResults) {
	if _, ok := s.results[r.ID]; !ok {
		s.resultOrder = append(s.resultOrder, r.ID)
	}
	s.results[r.ID] = r
}

// Result returns the recorded result for a level.
func (s *Store) Result(id string) (LevelResults, bool) {
	r, ok := s.results[id]
	return r, ok
}

// Results returns every recorded result in the order the levels were first completed.
func (s *Store) Results() []LevelResults {
	out := make([]LevelResults, 0, len(s.resultOrder))
	for _, id := range s.resultOrder {
		out = append(out, s.results[id])
	}
	return out
}

// ClearResults forgets every recorded result.
func (s *Store) ClearResults() {
	s.results = make(map[string]LevelResults)
	s.resultOrder = nil
}

// InitialPlayer returns a copy of the player as the store was created with.
func (s *Store) InitialPlayer() PlayerObjectData {
	return s.initialPlayer.Clone()
}

// ResetPlayer restores the player to its initial data.
func (s *Store) ResetPlayer() {
	s.Player = s.initialPlayer.Clone()
}

// HasLevel reports whether settings exist for id.
func (s *Store) HasLevel(id string) bool {
	_, ok := s.levels[id]
	return ok
}

// FlowIndex returns the position of id in the game's level flow, or -1.
func (s *Store) FlowIndex(id string) int {
	return slices.Index(s.Game.LevelFlow, id)
}
