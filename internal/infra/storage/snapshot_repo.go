// Package storage provides the persistence layer for the pet server.
// The snapshot repository is a pass-through codec over the engine state:
// one fixed slot, overwritten whole on every save, read once on startup.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/marissaabao/tamagotchi/internal/domain/pet"
)

// SnapshotVersion is the schema tag persisted with every snapshot. A
// stored snapshot with any other version is treated as absent; version 1
// snapshots have no migration path and are discarded.
const SnapshotVersion = 2

// snapshotSlot is the fixed key the single snapshot lives under.
const snapshotSlot = "default"

// Snapshot is the durable form of the whole simulation state.
type Snapshot struct {
	Version int            `json:"version"`
	Stage   string         `json:"stage"`
	Age     int            `json:"age"`
	Pet     pet.Attributes `json:"pet"`
}

// SnapshotRepository stores the pet snapshot in SQLite.
type SnapshotRepository struct {
	db *sql.DB
}

func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// Save overwrites the snapshot slot with a single atomic upsert.
func (r *SnapshotRepository) Save(ctx context.Context, s Snapshot) error {
	query := `
		INSERT INTO pet_snapshots (slot, version, stage, age, hunger, happiness, energy, cleanliness, last_updated, saved_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(slot) DO UPDATE SET
			version=excluded.version,
			stage=excluded.stage,
			age=excluded.age,
			hunger=excluded.hunger,
			happiness=excluded.happiness,
			energy=excluded.energy,
			cleanliness=excluded.cleanliness,
			last_updated=excluded.last_updated,
			saved_at=excluded.saved_at
	`
	_, err := r.db.ExecContext(ctx, query,
		snapshotSlot, s.Version, s.Stage, s.Age,
		s.Pet.Hunger, s.Pet.Happiness, s.Pet.Energy, s.Pet.Cleanliness,
		s.Pet.LastUpdated, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

// Load reads the snapshot slot. Returns nil without error when no
// snapshot has ever been saved.
func (r *SnapshotRepository) Load(ctx context.Context) (*Snapshot, error) {
	query := `SELECT version, stage, age, hunger, happiness, energy, cleanliness, last_updated FROM pet_snapshots WHERE slot = ?`
	var s Snapshot
	err := r.db.QueryRowContext(ctx, query, snapshotSlot).Scan(
		&s.Version, &s.Stage, &s.Age,
		&s.Pet.Hunger, &s.Pet.Happiness, &s.Pet.Energy, &s.Pet.Cleanliness,
		&s.Pet.LastUpdated,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}
	return &s, nil
}
