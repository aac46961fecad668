package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/shelter/pkg/types"
)

// migration is one step of the schema history. Step N moves a database from
// user_version N-1 to N and must keep existing rows.
type migration struct {
	version int
	name    string
	apply   func(ctx context.Context, tx *sql.Tx) error
}

// migrations is the ordered schema history. Version 1 creates the pets
// table, so a new database and an upgrade share one code path.
var migrations = []migration{
	{
		version: 1,
		name:    "create pets table",
		apply: func(ctx context.Context, tx *sql.Tx) error {
			_, err := tx.ExecContext(ctx, createPets)
			return err
		},
	},
}

// currentSchemaVersion is the schema version this binary writes.
func currentSchemaVersion() int {
	if len(migrations) == 0 {
		return 0
	}
	return migrations[len(migrations)-1].version
}

// open brings the database to the current schema version. It reads
// user_version and calls upgrade when the stored version is older. Returns
// the stored and resulting versions.
func open(ctx context.Context, db *sql.DB, logger *zap.Logger) (int, int, error) {
	stored, err := schemaVersion(ctx, db)
	if err != nil {
		return 0, 0, storageError("reading schema version", err)
	}

	current := currentSchemaVersion()
	switch {
	case stored == current:
		return stored, current, nil
	case stored > current:
		return stored, stored, fmt.Errorf("database schema version %d is newer than supported version %d: %w",
			stored, current, types.ErrMigration)
	}

	if err := upgrade(ctx, db, stored, current, logger); err != nil {
		return stored, stored, err
	}
	return stored, current, nil
}

// upgrade applies every migration in (oldVersion, newVersion] inside one
// transaction and records newVersion. On failure nothing is applied.
func upgrade(ctx context.Context, db *sql.DB, oldVersion, newVersion int, logger *zap.Logger) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return storageError("beginning migration", err)
	}
	defer tx.Rollback()

	for _, m := range migrations {
		if m.version <= oldVersion || m.version > newVersion {
			continue
		}
		logger.Info("applying schema migration",
			zap.Int("version", m.version),
			zap.String("name", m.name))
		if err := m.apply(ctx, tx); err != nil {
			return migrationError(m.version, err)
		}
	}

	// PRAGMA does not take bound parameters.
	if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", newVersion)); err != nil {
		return migrationError(newVersion, err)
	}

	if err := tx.Commit(); err != nil {
		return migrationError(newVersion, err)
	}
	return nil
}

// schemaVersion reads PRAGMA user_version.
func schemaVersion(ctx context.Context, db *sql.DB) (int, error) {
	var v int
	if err := db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&v); err != nil {
		return 0, err
	}
	return v, nil
}
