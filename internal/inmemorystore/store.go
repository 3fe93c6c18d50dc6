package inmemorystore

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/specialistvlad/ctrldeploy/internal/builder"
	"github.com/specialistvlad/ctrldeploy/internal/ctxlog"
	"github.com/specialistvlad/ctrldeploy/internal/element"
	"github.com/specialistvlad/ctrldeploy/internal/model"
)

// Revision is one published deployment.
type Revision struct {
	ID          uuid.UUID
	Deployment  *model.DeploymentDefinition
	Diagnostics builder.Diagnostics
	BuiltAt     time.Time
}

// Store is an in-memory holder of the current deployment revision.
type Store struct {
	current atomic.Pointer[Revision]
	now     func() time.Time
}

// New creates an empty store.
func New() *Store {
	return &Store{now: time.Now}
}

// Current returns the published revision, or nil if nothing was published yet.
func (s *Store) Current() *Revision {
	return s.current.Load()
}

// Rebuild builds a deployment from a clone of doc and publishes it. On
// failure the previously published revision stays current and the build
// error is returned.
func (s *Store) Rebuild(ctx context.Context, doc element.Document) (*Revision, error) {
	logger := ctxlog.FromContext(ctx)

	snapshot := doc.Clone()
	dep, diags, err := builder.Build(ctx, snapshot.Root())
	if err != nil {
		logger.Warn("Deployment rebuild failed, keeping current revision.", "error", err)
		return nil, err
	}

	rev := &Revision{
		ID:          uuid.New(),
		Deployment:  dep,
		Diagnostics: diags,
		BuiltAt:     s.now(),
	}
	prev := s.current.Swap(rev)

	if prev != nil {
		logger.Info("Deployment revision published.", "revision", rev.ID, "replaces", prev.ID)
	} else {
		logger.Info("Deployment revision published.", "revision", rev.ID)
	}
	return rev, nil
}
