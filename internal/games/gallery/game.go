// Package gallery is a three-wave shooting gallery: destroy every enemy of
// a wave before its timer runs out.
package gallery

import (
	_ "embed"

	"github.com/vovakirdan/arcade3d/internal/registry"
)

//go:embed gallery.yaml
var definition []byte

func init() {
	registry.RegisterYAML("gallery", definition)
}
