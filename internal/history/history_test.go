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

package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	h, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { h.Close() })
	return h
}

func TestRecordAndList(t *testing.T) {
	h := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, h.RecordConsole(ctx, "launch", []string{"--index", "0"}, 0, 120*time.Millisecond))
	require.NoError(t, h.RecordConsole(ctx, "quit", []string{"--index", "0"}, 1, 30*time.Millisecond))

	rows, err := h.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// Newest first.
	assert.Equal(t, "quit", rows[0].Command)
	assert.Equal(t, 1, rows[0].ExitCode)
	assert.Equal(t, "launch", rows[1].Command)
	assert.Equal(t, "--index 0", rows[1].Args)
	assert.Equal(t, int64(120), rows[1].ElapsedMS)
}

func TestListLimit(t *testing.T) {
	h := openTestDB(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, h.RecordConsole(ctx, "list", nil, 0, time.Millisecond))
	}

	rows, err := h.List(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, rows, 3)

	rows, err = h.List(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, rows, 5, "non-positive limit falls back to the default")
}

func TestPrune(t *testing.T) {
	h := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, h.RecordConsole(ctx, "list", nil, 0, time.Millisecond))

	removed, err := h.Prune(ctx, time.Hour)
	require.NoError(t, err)
	assert.Zero(t, removed, "fresh entries survive pruning")

	// Backdate the entry past the retention window.
	_, err = h.db.NewUpdate().
		Model((*InvocationModel)(nil)).
		Set("ts = ?", time.Now().Add(-48*time.Hour).Unix()).
		Where("1 = 1").
		Exec(ctx)
	require.NoError(t, err)

	removed, err = h.Prune(ctx, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	rows, err := h.List(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	h, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, h.RecordConsole(context.Background(), "list", nil, 0, time.Millisecond))
	require.NoError(t, h.Close())

	h, err = Open(path)
	require.NoError(t, err)
	defer h.Close()

	rows, err := h.List(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, rows, 1, "schema creation preserves existing rows")
}
