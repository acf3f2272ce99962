package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"solohunter/backend/models"
	"solohunter/backend/utils"
)

func newTestAdapter(t *testing.T) *Adapter {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, utils.Migrate(db))
	return NewAdapterWithBackoff(db, 0)
}

func TestCreateAndGet(t *testing.T) {
	a := newTestAdapter(t)

	note := models.Note{UserID: 1, Title: "Dungeon plan", Category: models.NotePlan}
	require.NoError(t, Create(a, &note))
	assert.NotZero(t, note.ID)

	got, err := Get[models.Note](a, 1, note.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dungeon plan", got.Title)
}

func TestGetScopedToUser(t *testing.T) {
	a := newTestAdapter(t)

	note := models.Note{UserID: 1, Title: "secret"}
	require.NoError(t, Create(a, &note))

	// user 2 cannot reach user 1's row, even by exact id
	_, err := Get[models.Note](a, 2, note.ID)
	assert.ErrorIs(t, err, utils.ErrNotFound)
}

func TestListScopedAndNewestFirst(t *testing.T) {
	a := newTestAdapter(t)

	for i := 0; i < 3; i++ {
		require.NoError(t, Create(a, &models.Goal{UserID: 1, Title: fmt.Sprintf("goal %d", i)}))
	}
	require.NoError(t, Create(a, &models.Goal{UserID: 2, Title: "other hunter"}))

	goals, err := List[models.Goal](a, 1)
	require.NoError(t, err)
	require.Len(t, goals, 3)
	assert.Equal(t, "goal 2", goals[0].Title)
	for _, g := range goals {
		assert.Equal(t, uint(1), g.UserID)
	}
}

func TestUpdateMissingIsNotFound(t *testing.T) {
	a := newTestAdapter(t)

	err := Update[models.Goal](a, 1, 9999, map[string]interface{}{"title": "x"})
	assert.ErrorIs(t, err, utils.ErrNotFound)
}

func TestUpdateScopedToUser(t *testing.T) {
	a := newTestAdapter(t)

	goal := models.Goal{UserID: 1, Title: "train"}
	require.NoError(t, Create(a, &goal))

	err := Update[models.Goal](a, 2, goal.ID, map[string]interface{}{"title": "hijacked"})
	assert.ErrorIs(t, err, utils.ErrNotFound)

	got, err := Get[models.Goal](a, 1, goal.ID)
	require.NoError(t, err)
	assert.Equal(t, "train", got.Title)
}

func TestDeleteIdempotent(t *testing.T) {
	a := newTestAdapter(t)

	goal := models.Goal{UserID: 1, Title: "once"}
	require.NoError(t, Create(a, &goal))

	assert.NoError(t, Delete[models.Goal](a, 1, goal.ID))
	assert.NoError(t, Delete[models.Goal](a, 1, goal.ID), "second delete succeeds")
	assert.NoError(t, Delete[models.Goal](a, 1, 424242), "absent id succeeds")

	goals, err := List[models.Goal](a, 1)
	require.NoError(t, err)
	assert.Empty(t, goals)
}

func TestTransientErrorRetriedOnce(t *testing.T) {
	a := newTestAdapter(t)

	attempts := 0
	err := a.Transaction(func(tx *gorm.DB) error {
		attempts++
		if attempts == 1 {
			return utils.ErrTransient
		}
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 2, attempts)
}

func TestTransientErrorSurfacedAfterRetry(t *testing.T) {
	a := newTestAdapter(t)

	attempts := 0
	err := a.Transaction(func(tx *gorm.DB) error {
		attempts++
		return utils.ErrTransient
	})
	assert.ErrorIs(t, err, utils.ErrTransient)
	assert.Equal(t, 2, attempts, "exactly one retry, then surface")
}

func TestNonTransientErrorNotRetried(t *testing.T) {
	a := newTestAdapter(t)

	boom := errors.New("validation broke")
	attempts := 0
	err := a.Transaction(func(tx *gorm.DB) error {
		attempts++
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, attempts)
}

func TestTransactionRollsBack(t *testing.T) {
	a := newTestAdapter(t)

	boom := errors.New("abort")
	_ = a.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&models.Goal{UserID: 1, Title: "ghost"}).Error; err != nil {
			return err
		}
		return boom
	})

	goals, err := List[models.Goal](a, 1)
	require.NoError(t, err)
	assert.Empty(t, goals, "rolled-back insert must not be visible")
}
