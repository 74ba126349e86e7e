package gallery

import (
	"testing"

	"github.com/vovakirdan/arcade3d/internal/config"
	"github.com/vovakirdan/arcade3d/internal/engine"
	"github.com/vovakirdan/arcade3d/internal/registry"
)

func TestDefinitionLoads(t *testing.T) {
	g, err := registry.Create("gallery")
	if err != nil {
		t.Fatal(err)
	}
	def, err := g.Definition(config.DefaultEngineConfig())
	if err != nil {
		t.Fatal(err)
	}
	if len(def.Levels) != 3 || len(def.Game.LevelFlow) != 3 {
		t.Errorf("levels=%d flow=%v", len(def.Levels), def.Game.LevelFlow)
	}
	if _, err := engine.New(def, engine.Options{}); err != nil {
		t.Errorf("engine.New: %v", err)
	}
}
