package app

import (
	"context"
	"fmt"

	"github.com/specialistvlad/ctrldeploy/internal/ctxlog"
	"github.com/specialistvlad/ctrldeploy/internal/inmemorystore"
)

// reload reads the deployment document from disk, builds it and publishes the
// result. The current revision is untouched when any step fails.
func (a *App) reload(ctx context.Context) (*inmemorystore.Revision, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading deployment...", "path", a.config.DeploymentPath)

	doc, err := a.loader.Load(ctx, a.config.DeploymentPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load deployment: %w", err)
	}

	rev, err := a.store.Rebuild(ctx, doc)
	if err != nil {
		return nil, err
	}

	for _, d := range rev.Diagnostics {
		logger.Warn("Config entry skipped.", "section", d.Section, "index", d.Index, "name", d.Name, "reason", d.Message)
	}
	return rev, nil
}
