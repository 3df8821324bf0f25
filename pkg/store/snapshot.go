package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// SnapshotStore is the Store's only disk-facing collaborator. It persists
// an opaque, caller-serialized blob of a frozen Ontology — the Store itself
// has no opinion on wire format, only a parse(bytes) -> Ontology contract.
type SnapshotStore interface {
	SaveSnapshot(ontologyID string, version uint64, blob []byte) error
	LoadSnapshot(ontologyID string) (version uint64, blob []byte, err error)
	DeleteSnapshot(ontologyID string) error
}

// SQLiteSnapshotStore is a SnapshotStore backed by modernc.org/sqlite, using
// the same connection setup as a typical metadata store (WAL journal mode,
// busy timeout, bounded connection pool) over a single-table snapshot cache
// instead of a multi-entity metadata schema.
type SQLiteSnapshotStore struct {
	db *sql.DB
}

// NewSQLiteSnapshotStore opens (creating if necessary) a SQLite database at
// dbPath and ensures its schema exists.
func NewSQLiteSnapshotStore(dbPath string) (*SQLiteSnapshotStore, error) {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=10000&_journal_mode=WAL&_synchronous=NORMAL", dbPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot database: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to snapshot database: %w", err)
	}

	s := &SQLiteSnapshotStore{db: db}
	if err := s.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize snapshot schema: %w", err)
	}
	return s, nil
}

func (s *SQLiteSnapshotStore) initSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS ontology_snapshots (
			ontology_id TEXT PRIMARY KEY,
			version     INTEGER NOT NULL,
			blob        BLOB NOT NULL,
			saved_at    DATETIME NOT NULL
		)
	`)
	return err
}

// Close closes the underlying database connection.
func (s *SQLiteSnapshotStore) Close() error {
	return s.db.Close()
}

// SaveSnapshot upserts a snapshot row. Writing a lower version than what is
// already stored leaves the stored row unchanged and returns nil: a
// snapshot store never regresses an ontology's frozen state.
func (s *SQLiteSnapshotStore) SaveSnapshot(ontologyID string, version uint64, blob []byte) error {
	_, err := s.db.Exec(`
		INSERT INTO ontology_snapshots (ontology_id, version, blob, saved_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(ontology_id) DO UPDATE SET
			version = excluded.version,
			blob = excluded.blob,
			saved_at = excluded.saved_at
		WHERE excluded.version >= ontology_snapshots.version
	`, ontologyID, version, blob, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot retrieves the most recently saved snapshot for ontologyID.
func (s *SQLiteSnapshotStore) LoadSnapshot(ontologyID string) (uint64, []byte, error) {
	var version uint64
	var blob []byte
	err := s.db.QueryRow(`
		SELECT version, blob FROM ontology_snapshots WHERE ontology_id = ?
	`, ontologyID).Scan(&version, &blob)
	if err == sql.ErrNoRows {
		return 0, nil, fmt.Errorf("no snapshot found for ontology %s", ontologyID)
	}
	if err != nil {
		return 0, nil, fmt.Errorf("failed to load snapshot: %w", err)
	}
	return version, blob, nil
}

// DeleteSnapshot removes the snapshot row for ontologyID, if present.
func (s *SQLiteSnapshotStore) DeleteSnapshot(ontologyID string) error {
	_, err := s.db.Exec(`DELETE FROM ontology_snapshots WHERE ontology_id = ?`, ontologyID)
	if err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	return nil
}
