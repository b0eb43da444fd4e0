package provenance

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/symdd/symdd/internal/diagnostics"
	"github.com/symdd/symdd/internal/program"
)

func TestMemoryStore_SaveGetList(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	start := time.Unix(1700000000, 0)
	rec := NewRecord("build-1", program.Program{Type: program.DTMC, Modules: []program.Module{{Name: "m"}}}, start)
	rec.ReachableCount = 42
	rec.RewardNames = []string{"steps"}
	rec.Warnings = []diagnostics.Warning{{Kind: diagnostics.NoEffectUpdate, Stage: "S2-command", Message: "no-op update"}}
	rec.FinishedAt = start.Add(5 * time.Millisecond)

	require.NoError(t, store.Save(ctx, rec))

	got, err := store.Get(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.BuildID, got.BuildID)
	assert.Equal(t, 42, got.ReachableCount)
	assert.Equal(t, []string{"steps"}, got.RewardNames)
	assert.Equal(t, 5*time.Millisecond, got.Duration())

	all, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	_, err = store.Get(ctx, uuid.Nil)
	assert.Error(t, err)
}
