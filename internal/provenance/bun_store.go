package provenance

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	"github.com/symdd/symdd/internal/diagnostics"
	"github.com/symdd/symdd/internal/program"
)

// BunStore is a Postgres-backed Store, grounded on the teacher's
// internal/infrastructure/storage.BunStore: a bun.DB over pgdriver's
// sql.DB, one table, insert-or-update on id.
type BunStore struct {
	db *bun.DB
}

// NewBunStore opens a connection pool against dsn. No query runs until
// InitSchema or a Save/Get/List call does.
func NewBunStore(dsn string) *BunStore {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	return &BunStore{db: bun.NewDB(sqldb, pgdialect.New())}
}

// InitSchema creates the provenance table if it does not already exist.
func (s *BunStore) InitSchema(ctx context.Context) error {
	_, err := s.db.NewCreateTable().Model((*recordModel)(nil)).IfNotExists().Exec(ctx)
	return err
}

// recordModel is Record's row shape: the warning list is stored as jsonb
// rather than normalised into a child table, since it is read back as a
// unit and never queried by field.
type recordModel struct {
	bun.BaseModel `bun:"table:build_records,alias:b"`

	ID             uuid.UUID      `bun:"id,pk"`
	BuildID        string         `bun:"build_id"`
	ModelType      string         `bun:"model_type"`
	ModuleCount    int            `bun:"module_count"`
	ReachableCount int            `bun:"reachable_count"`
	DeadlocksFixed int            `bun:"deadlocks_fixed"`
	RewardNames    []string       `bun:"reward_names,array"`
	Warnings       []warningModel `bun:"warnings,type:jsonb"`
	StartedAt      time.Time      `bun:"started_at"`
	FinishedAt     time.Time      `bun:"finished_at"`
}

type warningModel struct {
	Kind    string `json:"kind"`
	Stage   string `json:"stage"`
	Message string `json:"message"`
}

func toModel(r Record) *recordModel {
	warnings := make([]warningModel, len(r.Warnings))
	for i, w := range r.Warnings {
		warnings[i] = warningModel{Kind: string(w.Kind), Stage: w.Stage, Message: w.Message}
	}
	return &recordModel{
		ID:             r.ID,
		BuildID:        r.BuildID,
		ModelType:      r.ModelType.String(),
		ModuleCount:    r.ModuleCount,
		ReachableCount: r.ReachableCount,
		DeadlocksFixed: r.DeadlocksFixed,
		RewardNames:    r.RewardNames,
		Warnings:       warnings,
		StartedAt:      r.StartedAt,
		FinishedAt:     r.FinishedAt,
	}
}

func (m *recordModel) toRecord() Record {
	warnings := make([]diagnostics.Warning, len(m.Warnings))
	for i, w := range m.Warnings {
		warnings[i] = diagnostics.Warning{Kind: diagnostics.Kind(w.Kind), Stage: w.Stage, Message: w.Message}
	}
	return Record{
		ID:             m.ID,
		BuildID:        m.BuildID,
		ModelType:      program.ModelType(m.ModelType),
		ModuleCount:    m.ModuleCount,
		ReachableCount: m.ReachableCount,
		DeadlocksFixed: m.DeadlocksFixed,
		RewardNames:    m.RewardNames,
		Warnings:       warnings,
		StartedAt:      m.StartedAt,
		FinishedAt:     m.FinishedAt,
	}
}

// Save implements Store.
func (s *BunStore) Save(ctx context.Context, r Record) error {
	model := toModel(r)
	_, err := s.db.NewInsert().Model(model).On("CONFLICT (id) DO UPDATE").Exec(ctx)
	return err
}

// Get implements Store.
func (s *BunStore) Get(ctx context.Context, id uuid.UUID) (Record, error) {
	model := new(recordModel)
	if err := s.db.NewSelect().Model(model).Where("id = ?", id).Scan(ctx); err != nil {
		return Record{}, err
	}
	return model.toRecord(), nil
}

// List implements Store.
func (s *BunStore) List(ctx context.Context) ([]Record, error) {
	var models []recordModel
	if err := s.db.NewSelect().Model(&models).Order("started_at DESC").Scan(ctx); err != nil {
		return nil, err
	}
	out := make([]Record, len(models))
	for i, m := range models {
		out[i] = m.toRecord()
	}
	return out, nil
}
