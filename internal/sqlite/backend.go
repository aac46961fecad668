// Package sqlite implements the SQLite storage backend for the shelter pet
// catalog. The backend owns a single database handle, creates or upgrades
// the pets table on Attach, and serves the pets table accessor.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/shelter/pkg/types"
)

// DatabaseFile is the name of the database file inside the data directory.
const DatabaseFile = "shelter.db"

// Compile-time interface check.
var _ types.Shelter = (*Backend)(nil)

// Backend implements the Shelter interface on top of a SQLite database file.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB
	dbPath   string
	pets     *petsTable
	logger   *zap.Logger

	cursorsMu sync.Mutex
	cursors   map[*cursor]struct{}

	observers *observers
}

// Option configures a Backend.
type Option func(*Backend)

// WithLogger sets the logger used by the backend. The default discards all
// output.
func WithLogger(l *zap.Logger) Option {
	return func(b *Backend) {
		if l != nil {
			b.logger = l
		}
	}
}

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
func NewBackend(opts ...Option) *Backend {
	b := &Backend{
		logger:  zap.NewNop(),
		cursors: make(map[*cursor]struct{}),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.observers = newObservers(b.logger)
	return b
}

// Attach opens the database in config.DataDir, creating the directory, the
// file and the pets table when absent, and upgrading an older schema.
// Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}

	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	dbPath := filepath.Join(dataDir, DatabaseFile)
	db, err := sql.Open("sqlite", dataSourceName(dbPath, config.SQLite))
	if err != nil {
		return fmt.Errorf("opening %s: %w", dbPath, err)
	}

	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return storageError(fmt.Sprintf("opening %s", dbPath), err)
	}

	from, to, err := open(ctx, db, b.logger)
	if err != nil {
		db.Close()
		return err
	}

	b.db = db
	b.dbPath = dbPath
	b.config = config
	b.pets = &petsTable{backend: b}
	b.observers = newObservers(b.logger)
	b.attached = true

	b.logger.Info("shelter attached",
		zap.String("path", dbPath),
		zap.String("journal_mode", config.SQLite.GetJournalMode()),
		zap.Int("schema_from", from),
		zap.Int("schema_version", to))
	return nil
}

// Detach closes open cursors and subscriptions, then the database handle.
// Detach is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}

	b.closeCursors()
	b.observers.closeAll()

	b.attached = false
	b.pets = nil

	if b.db != nil {
		err := b.db.Close()
		b.db = nil
		if err != nil {
			return fmt.Errorf("closing database: %w", err)
		}
	}

	b.logger.Info("shelter detached", zap.String("path", b.dbPath))
	return nil
}

// Pets returns the pets table accessor.
// Returns ErrDetached if the backend is not attached.
func (b *Backend) Pets() (types.PetTable, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrDetached
	}
	return b.pets, nil
}

// Path returns the database file path of the attached backend.
func (b *Backend) Path() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.dbPath
}

// handle returns the open database or ErrDetached. Callers hold b.mu.
func (b *Backend) handle() (*sql.DB, error) {
	if !b.attached || b.db == nil {
		return nil, types.ErrDetached
	}
	return b.db, nil
}

func (b *Backend) trackCursor(c *cursor) {
	b.cursorsMu.Lock()
	b.cursors[c] = struct{}{}
	b.cursorsMu.Unlock()
}

func (b *Backend) untrackCursor(c *cursor) {
	b.cursorsMu.Lock()
	delete(b.cursors, c)
	b.cursorsMu.Unlock()
}

// closeCursors releases every cursor the caller forgot to close, so that
// closing the handle does not wait on them.
func (b *Backend) closeCursors() {
	b.cursorsMu.Lock()
	leftOpen := make([]*cursor, 0, len(b.cursors))
	for c := range b.cursors {
		leftOpen = append(leftOpen, c)
	}
	b.cursorsMu.Unlock()

	if len(leftOpen) > 0 {
		b.logger.Warn("closing cursors left open", zap.Int("count", len(leftOpen)))
	}
	for _, c := range leftOpen {
		c.abort()
	}
}

// uriPathEscaper escapes the characters that end the path of a SQLite
// file: URI. SQLite decodes %HH escapes when it opens the file.
var uriPathEscaper = strings.NewReplacer("%", "%25", "?", "%3f", "#", "%23")

// dataSourceName builds the modernc.org/sqlite DSN with connection pragmas.
func dataSourceName(path string, cfg types.SQLiteConfig) string {
	q := url.Values{}
	q.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", cfg.GetBusyTimeoutMS()))
	q.Add("_pragma", fmt.Sprintf("journal_mode(%s)", cfg.GetJournalMode()))
	q.Add("_pragma", "foreign_keys(1)")
	return "file:" + uriPathEscaper.Replace(path) + "?" + q.Encode()
}
