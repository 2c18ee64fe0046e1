package sequence

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	model "task-tracker.com/task-tracker/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Sequence{}))

	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return db
}

func TestDBSequence_StartsAtSeedAndIncrements(t *testing.T) {
	db := setupTestDB(t)

	seedCalls := 0
	seq := NewDBSequence(db, "employee_id", func(ctx context.Context) (int64, error) {
		seedCalls++
		return 20000, nil
	})

	ctx := context.Background()
	for want := int64(20000); want < 20005; want++ {
		got, err := seq.Next(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	assert.Equal(t, 1, seedCalls)
}

func TestDBSequence_SharedAcrossInstances(t *testing.T) {
	db := setupTestDB(t)
	seed := func(ctx context.Context) (int64, error) { return 7, nil }

	a := NewDBSequence(db, "employee_id", seed)
	b := NewDBSequence(db, "employee_id", seed)

	ctx := context.Background()
	first, err := a.Next(ctx)
	require.NoError(t, err)
	second, err := b.Next(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(7), first)
	assert.Equal(t, int64(8), second)
}

func TestDBSequence_SeedError(t *testing.T) {
	db := setupTestDB(t)
	seq := NewDBSequence(db, "employee_id", func(ctx context.Context) (int64, error) {
		return 0, fmt.Errorf("store unavailable")
	})

	_, err := seq.Next(context.Background())
	assert.EqualError(t, err, "store unavailable")
}

func TestDBSequence_AdvanceTo(t *testing.T) {
	db := setupTestDB(t)
	seq := NewDBSequence(db, "employee_id", func(ctx context.Context) (int64, error) {
		return 20000, nil
	})
	ctx := context.Background()

	first, err := seq.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(20000), first)

	require.NoError(t, seq.AdvanceTo(ctx, 20005))
	n, err := seq.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(20005), n)

	require.NoError(t, seq.AdvanceTo(ctx, 20001))
	n, err = seq.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(20006), n, "a lower floor must not move the counter back")
}

func TestDBSequence_AdvanceToBeforeFirstUse(t *testing.T) {
	db := setupTestDB(t)
	seq := NewDBSequence(db, "employee_id", func(ctx context.Context) (int64, error) {
		return 20000, nil
	})
	ctx := context.Background()

	require.NoError(t, seq.AdvanceTo(ctx, 20010))
	n, err := seq.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(20010), n)
}
