package regno

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"namogange/pkg/ags"
)

type memorySequence struct {
	mu     sync.Mutex
	values map[string]int64
}

func (m *memorySequence) Peek(_ context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.values[key], nil
}

func (m *memorySequence) Next(_ context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key]++
	return m.values[key], nil
}

func fixedClock() time.Time {
	return time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "AGS-2026-D1-001", Format("AGS", 2026, ags.Day1, 1))
	assert.Equal(t, "AGS-2026-ALL-042", Format("AGS", 2026, ags.AllDays, 42))
	assert.Equal(t, "AGS-2026-D3-1234", Format("AGS", 2026, ags.Day3, 1234))
}

func TestAllocator_PreviewDoesNotConsume(t *testing.T) {
	a := New(&memorySequence{values: map[string]int64{}}, WithClock(fixedClock))
	ctx := context.Background()

	first, err := a.Preview(ctx, ags.Day1)
	require.NoError(t, err)
	again, err := a.Preview(ctx, ags.Day1)
	require.NoError(t, err)
	assert.Equal(t, "AGS-2026-D1-001", first)
	assert.Equal(t, first, again)

	reserved, err := a.Reserve(ctx, ags.Day1)
	require.NoError(t, err)
	assert.Equal(t, first, reserved)

	next, err := a.Preview(ctx, ags.Day1)
	require.NoError(t, err)
	assert.Equal(t, "AGS-2026-D1-002", next)
}

func TestAllocator_DaysCountSeparately(t *testing.T) {
	a := New(&memorySequence{values: map[string]int64{}}, WithClock(fixedClock), WithPrefix("NG"))
	ctx := context.Background()

	_, err := a.Reserve(ctx, ags.Day1)
	require.NoError(t, err)
	n, err := a.Reserve(ctx, ags.Day2)
	require.NoError(t, err)
	assert.Equal(t, "NG-2026-D2-001", n)
}

func TestAllocator_UnknownDay(t *testing.T) {
	a := New(&memorySequence{values: map[string]int64{}})

	_, err := a.Preview(context.Background(), "Day 9")
	assert.ErrorIs(t, err, ErrUnknownDay)
	_, err = a.Reserve(context.Background(), "")
	assert.ErrorIs(t, err, ErrUnknownDay)
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: gormlogger.Discard})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// 内存库每个连接独立，限制为单连接
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&SequenceRow{}))
	return db
}

func TestDBSequence(t *testing.T) {
	seq := NewDBSequence(openTestDB(t))
	ctx := context.Background()

	n, err := seq.Peek(ctx, "2026:D1")
	require.NoError(t, err)
	assert.Zero(t, n)

	for want := int64(1); want <= 3; want++ {
		n, err := seq.Next(ctx, "2026:D1")
		require.NoError(t, err)
		assert.Equal(t, want, n)
	}

	n, err = seq.Peek(ctx, "2026:D1")
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	n, err = seq.Peek(ctx, "2026:D2")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestDBSequence_ConcurrentNextIsUnique(t *testing.T) {
	a := New(NewDBSequence(openTestDB(t)), WithClock(fixedClock))
	ctx := context.Background()

	const n = 20
	results := make(chan string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			regNo, err := a.Reserve(ctx, ags.AllDays)
			assert.NoError(t, err)
			results <- regNo
		}()
	}
	wg.Wait()
	close(results)

	seen := map[string]bool{}
	for r := range results {
		assert.False(t, seen[r], "duplicate %s", r)
		seen[r] = true
	}
	assert.Len(t, seen, n)
	assert.True(t, seen["AGS-2026-ALL-020"])
}
