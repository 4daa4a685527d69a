package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/songzhibin97/cryptogainers/internal/data"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// SQLStore keeps artifacts in a single table keyed by artifact key. Writing
// an existing key replaces the row, matching the file store's overwrite.
type SQLStore struct {
	db      *sql.DB
	driver  string
	runID   uuid.UUID
	dialect dialect
}

type dialect struct {
	blobType    string
	placeholder func(n int) string
}

var (
	postgresDialect = dialect{
		blobType:    "BYTEA",
		placeholder: func(n int) string { return fmt.Sprintf("$%d", n) },
	}
	sqliteDialect = dialect{
		blobType:    "BLOB",
		placeholder: func(int) string { return "?" },
	}
)

func NewPostgresStorage(connStr string) (*SQLStore, error) {
	return openSQLStore("postgres", connStr, postgresDialect)
}

// NewSQLiteStorage opens (and creates) the database file at path.
func NewSQLiteStorage(path string) (*SQLStore, error) {
	if path == "" {
		return nil, errors.New("sqlite path is required")
	}
	file, _, _ := strings.Cut(path, "?")
	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory '%s': %w", filepath.Dir(file), err)
	}
	s, err := openSQLStore("sqlite3", sqliteDSN(path), sqliteDialect)
	if err != nil {
		return nil, err
	}
	s.db.SetMaxOpenConns(1)
	return s, nil
}

// sqliteDSN adds a busy timeout unless the DSN already sets one.
func sqliteDSN(path string) string {
	if strings.Contains(path, "_timeout=") {
		return path
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_busy_timeout=5000"
}

func openSQLStore(driver, dsn string, d dialect) (*SQLStore, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &SQLStore{db: db, driver: driver, dialect: d}

	if err := s.initTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize tables: %w", err)
	}

	return s, nil
}

// WithRunID tags every row written afterwards with id.
func (s *SQLStore) WithRunID(id uuid.UUID) *SQLStore {
	s.runID = id
	return s
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}

func (s *SQLStore) query(q string) string {
	n := 0
	var b strings.Builder
	for _, r := range q {
		if r == '?' {
			n++
			b.WriteString(s.dialect.placeholder(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Put implements DataStorage interface
func (s *SQLStore) Put(ctx context.Context, key, contentType string, b []byte) (string, error) {
	if key == "" {
		return "", errors.New("artifact key is required")
	}

	query := s.query(`
        INSERT INTO artifacts (artifact_key, run_id, content_type, data, created_at)
        VALUES (?, ?, ?, ?, ?)
        ON CONFLICT (artifact_key) DO UPDATE SET
            run_id = EXCLUDED.run_id,
            content_type = EXCLUDED.content_type,
            data = EXCLUDED.data,
            created_at = EXCLUDED.created_at
    `)

	if b == nil {
		b = []byte{}
	}

	var runID string
	if s.runID != uuid.Nil {
		runID = s.runID.String()
	}

	_, err := s.db.ExecContext(ctx, query, key, runID, contentType, b, time.Now().UTC())
	if err != nil {
		return "", fmt.Errorf("failed to save artifact %s: %w", key, err)
	}

	return s.driver + "://" + key, nil
}

// Get implements DataStorage interface
func (s *SQLStore) Get(ctx context.Context, key string) ([]byte, error) {
	var b []byte
	err := s.db.QueryRowContext(ctx, s.query(`SELECT data FROM artifacts WHERE artifact_key = ?`), key).Scan(&b)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", key, data.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get artifact %s: %w", key, err)
	}
	return b, nil
}

func (s *SQLStore) initTables() error {
	query := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS artifacts (
			artifact_key VARCHAR(255) PRIMARY KEY,
			run_id VARCHAR(36) NOT NULL DEFAULT '',
			content_type VARCHAR(100) NOT NULL,
			data %s NOT NULL,
			created_at TIMESTAMP NOT NULL
		)`, s.dialect.blobType)

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("failed to execute query: %w", err)
	}
	return nil
}
