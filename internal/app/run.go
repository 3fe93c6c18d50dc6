package app

import (
	"context"
	"fmt"

	"github.com/specialistvlad/ctrldeploy/internal/snapshot"
)

// Run loads and builds the deployment, prints it in the configured output
// format and, when an HTTP port is configured, serves it until ctx is done.
func (a *App) Run(ctx context.Context) error {
	ctx = a.context(ctx)
	a.logger.Debug("App.Run method started.")

	rev, err := a.reload(ctx)
	if err != nil {
		return err
	}

	if err := snapshot.Encode(a.outW, a.config.Output, rev.Deployment); err != nil {
		return fmt.Errorf("failed to write deployment: %w", err)
	}
	a.logger.Debug("Deployment written.", "format", a.config.Output, "revision", rev.ID)

	if a.config.HTTPPort <= 0 {
		a.logger.Debug("App.Run method finished.")
		return nil
	}

	if err := a.serve(ctx); err != nil {
		return err
	}
	a.logger.Debug("App.Run method finished.")
	return nil
}
