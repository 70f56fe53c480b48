// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"

	"github.com/MKhiriev/go-fleet-keeper/internal/logger"
	"github.com/MKhiriev/go-fleet-keeper/migrations"
)

const documentsTable = "documents"

// DB wraps the SQLite connection shared by every SQLiteBackend.
type DB struct {
	*sql.DB
	logger *logger.Logger
}

// NewConnectSQLite opens the SQLite database at dsn, creating the parent
// directory of a file DSN when needed, and pings it.
func NewConnectSQLite(ctx context.Context, dsn string, log *logger.Logger) (*DB, error) {
	if dir := sqliteDir(dsn); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			log.Err(err).Str("func", "NewConnectSQLite").Msg("error creating database directory")
			return nil, fmt.Errorf("error creating database directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database")
		return nil, fmt.Errorf("error opening connection to DB: %w", err)
	}

	// ping database
	if err = conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database (ping)")
		return nil, err
	}
	log.Debug().Str("func", "NewConnectSQLite").Msg("connected to database successfully")

	return &DB{DB: conn, logger: log}, nil
}

// Migrate applies pending schema migrations.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB)
}

// sqliteDir extracts the directory of a file-backed DSN.
func sqliteDir(dsn string) string {
	path := strings.TrimPrefix(dsn, "file:")
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	if path == "" || path == ":memory:" {
		return ""
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return ""
	}
	return dir
}

// SQLiteBackend keeps a document as one row of the documents table.
type SQLiteBackend struct {
	db     *DB
	key    string
	clock  func() time.Time
	logger *logger.Logger
}

// NewSQLiteBackend returns the backend of the document stored under key.
func NewSQLiteBackend(db *DB, key string, log *logger.Logger) *SQLiteBackend {
	return &SQLiteBackend{db: db, key: key, clock: time.Now, logger: log}
}

// Init is a no-op: the table is created by migrations and a missing row
// already reads as "no prior document".
func (b *SQLiteBackend) Init(_ context.Context, _ []byte) error {
	return nil
}

// Load returns the payload of the row. A missing row yields no data.
func (b *SQLiteBackend) Load(ctx context.Context) ([]byte, error) {
	query, args, err := sq.Select("payload").
		From(documentsTable).
		Where(sq.Eq{"key": b.key}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var payload string
	err = b.db.QueryRowContext(ctx, query, args...).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		b.logger.Err(err).Str("func", "SQLiteBackend.Load").Str("key", b.key).Msg("failed to load document")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return []byte(payload), nil
}

// Save upserts the row.
func (b *SQLiteBackend) Save(ctx context.Context, payload []byte) error {
	query, args, err := sq.Insert(documentsTable).
		Columns("key", "payload", "updated_at").
		Values(b.key, string(payload), b.clock().UTC()).
		Suffix("ON CONFLICT(key) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := b.db.ExecContext(ctx, query, args...)
	if err != nil {
		b.logger.Err(err).Str("func", "SQLiteBackend.Save").Str("key", b.key).Msg("failed to save document")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrDocumentNotSaved
	}
	return nil
}
