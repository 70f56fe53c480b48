// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package migrations

import (
	"database/sql"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate_DBError(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	err = Migrate(db)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "migration error"))
}

func TestMigrate_NilDB(t *testing.T) {
	var db *sql.DB

	err := Migrate(db)
	assert.Error(t, err)
}

func TestMigrate_CreatesDocumentsTable(t *testing.T) {
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	defer db.Close()
	db.SetMaxOpenConns(1)

	require.NoError(t, Migrate(db))

	_, err = db.Exec(`INSERT INTO documents (key, payload, updated_at) VALUES ('u1', '{}', CURRENT_TIMESTAMP)`)
	require.NoError(t, err)

	var payload string
	require.NoError(t, db.QueryRow(`SELECT payload FROM documents WHERE key = 'u1'`).Scan(&payload))
	assert.Equal(t, "{}", payload)

	require.NoError(t, Migrate(db), "re-running migrations is a no-op")
}
