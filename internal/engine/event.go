package engine

import "github.com/vovakirdan/arcade3d/internal/world"

// EventKind tags an Event.
type EventKind int

const (
	EventLevelActivated EventKind = iota
	EventLevelStarted
	EventLevelWon
	EventLevelFailed
	EventLevelRetried
	EventObjectDestroyed
	EventProjectileSpawned
	EventGamePaused
	EventGameResumed
	EventGameEnded
)

func (k EventKind) String() string {
	switch k {
	case EventLevelActivated:
		return "level_activated"
	case EventLevelStarted:
		return "level_started"
	case EventLevelWon:
		return "level_won"
	case EventLevelFailed:
		return "level_failed"
	case EventLevelRetried:
		return "level_retried"
	case EventObjectDestroyed:
		return "object_destroyed"
	case EventProjectileSpawned:
		return "projectile_spawned"
	case EventGamePaused:
		return "game_paused"
	case EventGameResumed:
		return "game_resumed"
	case EventGameEnded:
		return "game_ended"
	default:
		return "unknown"
	}
}

// Event is a state change notification. Only the payload fields relevant
// to Kind are set.
type Event struct {
	Kind       EventKind
	LevelID    string
	Object     *world.GameObjectData // EventObjectDestroyed
	Projectile *world.ProjectileData // EventProjectileSpawned
	Result     *world.LevelResults   // EventLevelWon, EventLevelFailed
}

// Observer receives events synchronously, after the mutation that caused them.
type Observer func(Event)
