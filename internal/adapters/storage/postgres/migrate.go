package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS pets (
		id            TEXT PRIMARY KEY,
		owner_user_id TEXT NOT NULL,
		name          TEXT NOT NULL,
		species       TEXT NOT NULL,
		breed         TEXT NOT NULL DEFAULT '',
		gender        TEXT NOT NULL DEFAULT '',
		birth_date    DATE NULL,
		photo_url     TEXT NOT NULL DEFAULT '',
		created_at    TIMESTAMPTZ NOT NULL,
		updated_at    TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS pets_owner_idx ON pets (owner_user_id, created_at DESC)`,

	`CREATE TABLE IF NOT EXISTS health_records (
		id         TEXT PRIMARY KEY,
		pet_id     TEXT NOT NULL REFERENCES pets(id) ON DELETE CASCADE,
		date       DATE NOT NULL,
		weight_kg  DOUBLE PRECISION NOT NULL CHECK (weight_kg >= 0),
		notes      TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS health_records_pet_date_idx ON health_records (pet_id, date)`,

	`CREATE TABLE IF NOT EXISTS diary_entries (
		id         TEXT PRIMARY KEY,
		pet_id     TEXT NOT NULL REFERENCES pets(id) ON DELETE CASCADE,
		date       DATE NOT NULL,
		content    TEXT NOT NULL,
		photo_urls TEXT[] NOT NULL DEFAULT '{}',
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS diary_entries_pet_date_idx ON diary_entries (pet_id, date DESC)`,

	`CREATE TABLE IF NOT EXISTS reminders (
		id                 TEXT PRIMARY KEY,
		pet_id             TEXT NOT NULL REFERENCES pets(id) ON DELETE CASCADE,
		title              TEXT NOT NULL,
		description        TEXT NOT NULL DEFAULT '',
		due_date           DATE NOT NULL,
		repeat_interval    TEXT NOT NULL DEFAULT 'none'
			CHECK (repeat_interval IN ('none','daily','weekly','monthly','yearly')),
		is_completed       BOOLEAN NOT NULL DEFAULT FALSE,
		source_reminder_id TEXT NULL,
		created_at         TIMESTAMPTZ NOT NULL,
		updated_at         TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS reminders_pet_due_idx ON reminders (pet_id, due_date)`,
	// Un solo sucesor por recordatorio de origen.
	`CREATE UNIQUE INDEX IF NOT EXISTS reminders_source_reminder_id_key
		ON reminders (source_reminder_id) WHERE source_reminder_id IS NOT NULL`,
}

// Migrate crea el esquema si no existe. Es idempotente.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin migration: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, stmt := range schema {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration step %d: %w", i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migration: %w", err)
	}
	return nil
}
