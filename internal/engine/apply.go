package engine

import (
	"context"

	"github.com/craftpkg/craftpkg/pkg/registry"
)

// Upgrader performs the file replacement for one upgrade action. Satisfied by
// transfer.Manager.
type Upgrader interface {
	Upgrade(ctx context.Context, dir, oldFilename string, file registry.File) error
}

// ApplyResult pairs an action with the outcome of applying it.
type ApplyResult struct {
	Action Action
	Err    error
}

// Apply executes the upgrade actions in plan order. Non-upgrade actions pass
// through untouched. One package's transfer failure never stops the rest;
// each failure is recorded on its own result.
func Apply(ctx context.Context, dir string, actions []Action, upgrader Upgrader) []ApplyResult {
	results := make([]ApplyResult, 0, len(actions))
	for _, action := range actions {
		result := ApplyResult{Action: action}
		if action.Kind == KindUpgrade {
			result.Err = upgrader.Upgrade(ctx, dir, action.Filename, action.File)
		}
		results = append(results, result)
	}
	return results
}
