// This file provides JSONL read/write helpers with atomic persistence and
// the pets export built on them.
package sqlite

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// jsonlLine is a raw JSONL record with its 1-based line number.
type jsonlLine struct {
	line int
	data json.RawMessage
}

// readJSONL reads a JSONL file and returns each non-empty, parseable line.
// Malformed lines are skipped and counted.
func readJSONL(path string) ([]jsonlLine, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var (
		records []jsonlLine
		skipped int
		n       int
	)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		n++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		if !json.Valid(line) {
			skipped++
			continue
		}
		cp := make([]byte, len(line))
		copy(cp, line)
		records = append(records, jsonlLine{line: n, data: json.RawMessage(cp)})
	}
	if err := scanner.Err(); err != nil {
		return nil, 0, fmt.Errorf("scanning %s: %w", path, err)
	}
	return records, skipped, nil
}

// writeJSONL atomically writes records to a JSONL file using the temp-file,
// fsync, rename pattern.
func writeJSONL(path string, records []json.RawMessage) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".jsonl-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	w := bufio.NewWriter(tmp)
	for _, rec := range records {
		if _, err := w.Write(rec); err != nil {
			tmp.Close()
			os.Remove(tmpName)
			return fmt.Errorf("writing record: %w", err)
		}
		if err := w.WriteByte('\n'); err != nil {
			tmp.Close()
			os.Remove(tmpName)
			return fmt.Errorf("writing newline: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("flushing buffer: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// ExportJSONL writes every pet to path, one JSON object per line, replacing
// the file atomically. Returns the number of pets written.
func (b *Backend) ExportJSONL(ctx context.Context, path string) (int, error) {
	pets, err := b.Pets()
	if err != nil {
		return 0, err
	}

	c, err := pets.QueryAll(ctx)
	if err != nil {
		return 0, err
	}
	defer c.Close()

	records := make([]json.RawMessage, 0)
	for c.Next() {
		data, err := json.Marshal(recordFromPet(c.Pet()))
		if err != nil {
			return 0, fmt.Errorf("encoding pet %d: %w", c.Pet().ID, err)
		}
		records = append(records, data)
	}
	if err := c.Err(); err != nil {
		return 0, err
	}

	if err := writeJSONL(path, records); err != nil {
		return 0, fmt.Errorf("writing %s: %w", path, err)
	}

	b.logger.Info("pets exported", zap.String("path", path), zap.Int("count", len(records)))
	return len(records), nil
}
