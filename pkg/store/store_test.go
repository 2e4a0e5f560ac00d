package store

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

// backdate rewrites a record's timestamp directly, bypassing the store API
// (which never exposes mutation), so tests can simulate history.
func backdate(t *testing.T, s *Store, id int64, ts int64) {
	t.Helper()
	err := s.db.Exec("UPDATE warnings SET timestamp = ? WHERE id = ?", ts, id).Error
	require.NoError(t, err)
}

func TestAddWarningAssignsIncreasingIDs(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id1, err := s.AddWarning(ctx, "u1", "m1", "g1", "spam")
	require.NoError(t, err)
	id2, err := s.AddWarning(ctx, "u1", "m1", "g1", "flood")
	require.NoError(t, err)

	assert.Greater(t, id2, id1)
}

func TestRecentWarningsNewestFirst(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id1, err := s.AddWarning(ctx, "u1", "m1", "g1", "spam")
	require.NoError(t, err)
	id2, err := s.AddWarning(ctx, "u1", "m2", "g1", "flood")
	require.NoError(t, err)

	// Timestamps are second-resolution and will often collide here; the id
	// tiebreak must still put the later insert first.
	rows, err := s.RecentWarnings(ctx, "u1", "g1", 10)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, id2, rows[0].ID)
	assert.Equal(t, "flood", rows[0].Reason)
	assert.Equal(t, id1, rows[1].ID)
	assert.Equal(t, "spam", rows[1].Reason)
}

func TestRecentWarningsOrderedByTimestamp(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id1, err := s.AddWarning(ctx, "u1", "m1", "g1", "viejo")
	require.NoError(t, err)
	id2, err := s.AddWarning(ctx, "u1", "m1", "g1", "reciente")
	require.NoError(t, err)

	// Push the first record a day into the past
	backdate(t, s, id1, rowTimestamp(t, s, id2)-86400)

	rows, err := s.RecentWarnings(ctx, "u1", "g1", 10)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "reciente", rows[0].Reason)
	assert.Equal(t, "viejo", rows[1].Reason)
}

func TestRecentWarningsLimit(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 15; i++ {
		_, err := s.AddWarning(ctx, "u1", "m1", "g1", "spam")
		require.NoError(t, err)
	}

	rows, err := s.RecentWarnings(ctx, "u1", "g1", 10)
	require.NoError(t, err)
	assert.Len(t, rows, 10)
}

func TestRecentWarningsScopedToUserAndGuild(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.AddWarning(ctx, "u1", "m1", "g1", "spam")
	require.NoError(t, err)
	_, err = s.AddWarning(ctx, "u2", "m1", "g1", "flood")
	require.NoError(t, err)
	_, err = s.AddWarning(ctx, "u1", "m1", "g2", "otro servidor")
	require.NoError(t, err)

	rows, err := s.RecentWarnings(ctx, "u1", "g1", 10)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "spam", rows[0].Reason)

	// Usuario sin registros: slice vacío, no error
	rows, err = s.RecentWarnings(ctx, "u9", "g1", 10)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestTotalWarnings(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := s.AddWarning(ctx, "u1", "m1", "g1", "spam")
		require.NoError(t, err)
	}
	for i := 0; i < 2; i++ {
		_, err := s.AddWarning(ctx, "u2", "m1", "g2", "flood")
		require.NoError(t, err)
	}

	perGuild, err := s.TotalWarnings(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, int64(3), perGuild)

	global, err := s.TotalWarnings(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, int64(5), global)
}

func TestConcurrentAddWarning(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	const workers = 10
	const perWorker = 10

	ids := make(chan int64, workers*perWorker)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				id, err := s.AddWarning(ctx, "u1", "m1", "g1", "concurrente")
				assert.NoError(t, err)
				ids <- id
			}
		}(w)
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]bool)
	for id := range ids {
		assert.False(t, seen[id], "id duplicado: %d", id)
		seen[id] = true
	}
	assert.Len(t, seen, workers*perWorker)

	total, err := s.TotalWarnings(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, int64(workers*perWorker), total)
}

func rowTimestamp(t *testing.T, s *Store, id int64) int64 {
	t.Helper()
	var ts int64
	err := s.db.Raw("SELECT timestamp FROM warnings WHERE id = ?", id).Scan(&ts).Error
	require.NoError(t, err)
	return ts
}
