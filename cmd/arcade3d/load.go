package main

import (
	"fmt"
	"path/filepath"

	"github.com/vovakirdan/arcade3d/internal/config"
	"github.com/vovakirdan/arcade3d/internal/engine"
	"github.com/vovakirdan/arcade3d/internal/registry"
)

// loadDefinition resolves a built-in game id or a YAML file path and
// converts it with the engine config found at configPath.
func loadDefinition(ref, configPath string) (engine.Definition, config.EngineConfig, error) {
	ec, err := config.LoadEngine(configPath)
	if err != nil {
		return engine.Definition{}, ec, err
	}

	var gf config.GameFile
	switch {
	case registry.Exists(ref):
		gf, err = registry.Create(ref)
	case isYAML(ref):
		gf, err = config.LoadGame(ref)
	default:
		return engine.Definition{}, ec, fmt.Errorf("unknown game %q (run 'arcade3d list')", ref)
	}
	if err != nil {
		return engine.Definition{}, ec, err
	}

	def, err := gf.Definition(ec)
	if err != nil {
		return engine.Definition{}, ec, err
	}
	return def, ec, nil
}

func isYAML(path string) bool {
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
