package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	badger "github.com/dgraph-io/badger/v4"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store bundles the two persistence backends: a Badger key-value store for
// learner profiles and a SQLite database for the append-only event journal.
type Store struct {
	db *sql.DB
	kv *badger.DB
}

// Open creates a Store rooted at dataDir. Profiles live in dataDir/profiles
// (Badger) and the event journal in dataDir/events.db (SQLite).
func Open(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	kvOpts := badger.DefaultOptions(filepath.Join(dataDir, "profiles")).
		WithLogger(nil)
	kv, err := badger.Open(kvOpts)
	if err != nil {
		return nil, fmt.Errorf("open profile store: %w", err)
	}

	db, err := openJournal(filepath.Join(dataDir, "events.db"))
	if err != nil {
		kv.Close()
		return nil, err
	}

	return &Store{db: db, kv: kv}, nil
}

// OpenInMemory creates a Store with no on-disk state, for tests.
func OpenInMemory() (*Store, error) {
	kvOpts := badger.DefaultOptions("").
		WithInMemory(true).
		WithLogger(nil)
	kv, err := badger.Open(kvOpts)
	if err != nil {
		return nil, fmt.Errorf("open profile store: %w", err)
	}

	db, err := openJournal(":memory:")
	if err != nil {
		kv.Close()
		return nil, err
	}

	return &Store{db: db, kv: kv}, nil
}

func openJournal(dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	if err := createJournalTables(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("create journal tables: %w", err)
	}

	return db, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes both backends.
func (s *Store) Close() error {
	dbErr := s.db.Close()
	kvErr := s.kv.Close()
	if dbErr != nil {
		return dbErr
	}
	return kvErr
}

// ProfileRepo returns a ProfileRepo backed by this store.
func (s *Store) ProfileRepo() ProfileRepo {
	return &profileRepo{kv: s.kv}
}

// EventRepo returns an EventRepo backed by this store.
func (s *Store) EventRepo() EventRepo {
	return &eventRepo{db: s.db, seq: &sequenceCounter{db: s.db}}
}

// applyPragmas configures SQLite for optimal single-user performance.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

func createJournalTables(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS global_sequence (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			next_val INTEGER NOT NULL DEFAULT 1
		)`,
		`INSERT OR IGNORE INTO global_sequence (id, next_val) VALUES (1, 1)`,
		`CREATE TABLE IF NOT EXISTS llm_events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			sequence INTEGER NOT NULL,
			timestamp DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			provider TEXT NOT NULL,
			model TEXT NOT NULL,
			purpose TEXT NOT NULL,
			input_tokens INTEGER NOT NULL DEFAULT 0,
			output_tokens INTEGER NOT NULL DEFAULT 0,
			latency_ms INTEGER NOT NULL DEFAULT 0,
			success BOOLEAN NOT NULL,
			error_message TEXT NOT NULL DEFAULT '',
			request_body TEXT NOT NULL DEFAULT '',
			response_body TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS idx_llm_events_sequence ON llm_events(sequence)`,
		`CREATE TABLE IF NOT EXISTS session_events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			sequence INTEGER NOT NULL,
			timestamp DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			profile TEXT NOT NULL,
			subject TEXT NOT NULL,
			action TEXT NOT NULL,
			score INTEGER NOT NULL DEFAULT 0,
			detail TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS idx_session_events_sequence ON session_events(sequence)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// DefaultDataDir resolves the data directory in priority order:
// 1. MANYORA_DATA environment variable
// 2. $XDG_DATA_HOME/manyora
// 3. ~/.local/share/manyora
func DefaultDataDir() (string, error) {
	if p := os.Getenv("MANYORA_DATA"); p != "" {
		return p, nil
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	return filepath.Join(dataHome, "manyora"), nil
}
