// Package provenance records what a symbolic build did — which model type,
// how many reachable states, which reward structures, how many deadlocks
// were patched, and every diagnostics.Warning raised along the way — and
// optionally persists that record. Adapted from the teacher's
// internal/infrastructure/storage (BunStore): a Postgres-backed Store for
// production use plus an in-memory Store for tests, behind one interface.
package provenance

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/symdd/symdd/internal/diagnostics"
	"github.com/symdd/symdd/internal/program"
)

// Record is one build's provenance: enough to audit after the fact which
// program produced which model, without re-running the build.
type Record struct {
	ID             uuid.UUID
	BuildID        string
	ModelType      program.ModelType
	ModuleCount    int
	ReachableCount int
	DeadlocksFixed int
	RewardNames    []string
	Warnings       []diagnostics.Warning
	StartedAt      time.Time
	FinishedAt     time.Time
}

// Duration returns how long the build ran.
func (r Record) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// NewRecord starts a Record for a build of p, stamped with an explicit
// start time (the caller's clock, since this package's callers — like the
// rest of the module — must not call time.Now() from inside anything a
// workflow-style replay could re-run deterministically; here it is simply
// the builder's own wall-clock reading, which does not have that
// constraint, but threading it in keeps the package trivially unit
// testable without a real clock).
func NewRecord(buildID string, p program.Program, startedAt time.Time) Record {
	return Record{
		ID:          uuid.New(),
		BuildID:     buildID,
		ModelType:   p.Type,
		ModuleCount: len(p.Modules),
		StartedAt:   startedAt,
	}
}

// Store persists and retrieves Records. Both implementations below satisfy
// it; callers needing neither Postgres nor in-memory persistence (e.g. a
// one-shot CLI invocation) can simply not construct one.
type Store interface {
	Save(ctx context.Context, r Record) error
	Get(ctx context.Context, id uuid.UUID) (Record, error)
	List(ctx context.Context) ([]Record, error)
}
