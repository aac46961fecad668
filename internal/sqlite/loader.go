// This file implements loading a pets JSONL file into the pets table.
package sqlite

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/shelter/pkg/types"
)

// ImportJSONL reads pets from a JSONL file written by ExportJSONL and
// inserts them as new rows. Lines that are not JSON objects are skipped.
// Every record is validated before the first insert; one invalid record
// rejects the whole file. Inserts run in a single transaction, so either
// all records are added or none. Returns the number of pets inserted.
func (b *Backend) ImportJSONL(ctx context.Context, path string) (int, error) {
	lines, skipped, err := readJSONL(path)
	if err != nil {
		return 0, err
	}

	drafts := make([]types.PetDraft, 0, len(lines))
	for _, l := range lines {
		var rec petRecord
		if err := json.Unmarshal(l.data, &rec); err != nil {
			skipped++
			continue
		}
		d := rec.draft()
		if err := d.Validate(); err != nil {
			return 0, fmt.Errorf("%s line %d: %w", path, l.line, err)
		}
		drafts = append(drafts, d.Normalized())
	}
	if skipped > 0 {
		b.logger.Warn("skipped malformed JSONL lines", zap.String("path", path), zap.Int("count", skipped))
	}

	n, err := b.insertDrafts(ctx, drafts)
	if err != nil {
		return 0, err
	}

	b.logger.Info("pets imported", zap.String("path", path), zap.Int("count", n))
	return n, nil
}

// insertDrafts inserts validated drafts in one transaction and publishes a
// single import change.
func (b *Backend) insertDrafts(ctx context.Context, drafts []types.PetDraft) (int, error) {
	if len(drafts) == 0 {
		return 0, nil
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	db, err := b.handle()
	if err != nil {
		return 0, err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, storageError("beginning import", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, insertPetSQL)
	if err != nil {
		return 0, storageError("preparing import", err)
	}
	defer stmt.Close()

	for i, d := range drafts {
		if _, err := stmt.ExecContext(ctx, d.Name, d.Breed, int(d.Gender), d.Weight); err != nil {
			return 0, storageError(fmt.Sprintf("importing record %d", i+1), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, storageError("committing import", err)
	}

	b.observers.publish(types.Change{Op: types.ChangeImport, Rows: int64(len(drafts))})
	return len(drafts), nil
}
