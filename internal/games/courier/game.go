// Package courier is a two-level delivery game built on target contact and
// score quotas rather than clearing enemies.
package courier

import (
	_ "embed"

	"github.com/vovakirdan/arcade3d/internal/registry"
)

//go:embed courier.yaml
var definition []byte

func init() {
	registry.RegisterYAML("courier", definition)
}
