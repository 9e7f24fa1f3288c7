// Copyright 2025 ldx Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package history records console invocations in a local SQLite database.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	_ "github.com/tursodatabase/go-libsql"
)

// InvocationModel represents one recorded console invocation.
type InvocationModel struct {
	bun.BaseModel `bun:"table:console_history"`

	ID        int64  `bun:"id,pk,autoincrement"`
	Timestamp int64  `bun:"ts,notnull"` // Unix timestamp
	Command   string `bun:"command,notnull"`
	Args      string `bun:"args,notnull"` // space-joined arguments
	ExitCode  int    `bun:"exit_code,notnull"`
	ElapsedMS int64  `bun:"elapsed_ms,notnull"`
}

const schema = `
CREATE TABLE IF NOT EXISTS console_history (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    ts INTEGER NOT NULL,
    command TEXT NOT NULL,
    args TEXT NOT NULL,
    exit_code INTEGER NOT NULL,
    elapsed_ms INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_history_ts ON console_history(ts);
`

// DB is the invocation history store. It satisfies the console package's
// Recorder interface.
type DB struct {
	path string
	db   *bun.DB
}

// execPragma runs a PRAGMA statement using Query (not Exec) because libsql
// returns rows for PRAGMA statements.
func execPragma(db *sql.DB, pragma string) error {
	rows, err := db.Query(pragma)
	if err != nil {
		return err
	}
	rows.Close()
	return nil
}

// Open opens (creating if needed) the history database at path.
func Open(path string) (*DB, error) {
	sqlDB, err := sql.Open("libsql", fmt.Sprintf("file:%s", path))
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}

	// PRAGMAs must be explicit statements; libsql ignores DSN parameters.
	if err := execPragma(sqlDB, "PRAGMA busy_timeout = 5000"); err != nil {
		sqlDB.Close()
		return nil, err
	}
	if err := execPragma(sqlDB, "PRAGMA journal_mode=WAL"); err != nil {
		sqlDB.Close()
		return nil, err
	}

	// Execute schema statements individually for libsql compatibility.
	for _, stmt := range strings.Split(schema, ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if _, err := sqlDB.Exec(stmt); err != nil {
			sqlDB.Close()
			return nil, fmt.Errorf("create history schema: %w", err)
		}
	}

	return &DB{
		path: path,
		db:   bun.NewDB(sqlDB, sqlitedialect.New()),
	}, nil
}

// Close closes the underlying database.
func (h *DB) Close() error {
	return h.db.Close()
}

// Path returns the database file path.
func (h *DB) Path() string {
	return h.path
}

// RecordConsole stores one console invocation.
func (h *DB) RecordConsole(ctx context.Context, command string, args []string, exitCode int, elapsed time.Duration) error {
	_, err := h.db.NewInsert().
		Model(&InvocationModel{
			Timestamp: time.Now().Unix(),
			Command:   command,
			Args:      strings.Join(args, " "),
			ExitCode:  exitCode,
			ElapsedMS: elapsed.Milliseconds(),
		}).
		Exec(ctx)
	return err
}

// List returns the most recent invocations, newest first.
func (h *DB) List(ctx context.Context, limit int) ([]InvocationModel, error) {
	if limit <= 0 {
		limit = 20
	}
	var rows []InvocationModel
	err := h.db.NewSelect().
		Model(&rows).
		Order("id DESC").
		Limit(limit).
		Scan(ctx)
	return rows, err
}

// Prune deletes entries older than the retention window and returns the
// number removed.
func (h *DB) Prune(ctx context.Context, keep time.Duration) (int64, error) {
	cutoff := time.Now().Add(-keep).Unix()
	res, err := h.db.NewDelete().
		Model((*InvocationModel)(nil)).
		Where("ts < ?", cutoff).
		Exec(ctx)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
