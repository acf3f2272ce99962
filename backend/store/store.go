// Package store is the single data-access layer: user-scoped CRUD over
// GORM with a one-shot retry on transient faults, plus the subscription
// hub that pushes result-set snapshots to in-process listeners.
package store

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"solohunter/backend/utils"
)

// RetryBackoff is the pause before the single retry of a transient
// store fault.
const RetryBackoff = 2 * time.Second

type Adapter struct {
	db      *gorm.DB
	backoff time.Duration
	sleep   func(time.Duration)
}

func NewAdapter(db *gorm.DB) *Adapter {
	return &Adapter{db: db, backoff: RetryBackoff, sleep: time.Sleep}
}

// NewAdapterWithBackoff exists for tests that cannot afford real sleeps.
func NewAdapterWithBackoff(db *gorm.DB, backoff time.Duration) *Adapter {
	a := NewAdapter(db)
	a.backoff = backoff
	return a
}

// DB exposes the underlying handle for migration and test seeding.
func (a *Adapter) DB() *gorm.DB {
	return a.db
}

// do runs op, retrying exactly once after the backoff when the failure
// is transient. Everything else surfaces immediately.
func (a *Adapter) do(op func(db *gorm.DB) error) error {
	err := op(a.db)
	if err == nil || !utils.IsTransient(err) {
		return err
	}
	a.sleep(a.backoff)
	return op(a.db)
}

// Transaction runs fn inside one DB transaction, with the same retry
// policy applied to the transaction as a whole.
func (a *Adapter) Transaction(fn func(tx *gorm.DB) error) error {
	return a.do(func(db *gorm.DB) error {
		return db.Transaction(fn)
	})
}

// Get fetches one row by id within the user's scope.
func Get[T any](a *Adapter, userID uint, id uint) (*T, error) {
	var out T
	err := a.do(func(db *gorm.DB) error {
		return db.Where("user_id = ? AND id = ?", userID, id).First(&out).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: id %d", utils.ErrNotFound, id)
		}
		return nil, err
	}
	return &out, nil
}

// List returns every row owned by the user, newest first.
func List[T any](a *Adapter, userID uint) ([]T, error) {
	var out []T
	err := a.do(func(db *gorm.DB) error {
		return db.Where("user_id = ?", userID).Order("created_at DESC, id DESC").Find(&out).Error
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Create inserts the value; GORM writes the generated id back onto it.
func Create[T any](a *Adapter, value *T) error {
	return a.do(func(db *gorm.DB) error {
		return db.Create(value).Error
	})
}

// Update applies the partial value to one scoped row. A miss is
// ErrNotFound, never a silent no-op.
func Update[T any](a *Adapter, userID uint, id uint, fields map[string]interface{}) error {
	var model T
	var affected int64
	err := a.do(func(db *gorm.DB) error {
		res := db.Model(&model).Where("user_id = ? AND id = ?", userID, id).Updates(fields)
		affected = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: id %d", utils.ErrNotFound, id)
	}
	return nil
}

// Delete removes one scoped row. Deleting an absent id succeeds.
func Delete[T any](a *Adapter, userID uint, id uint) error {
	var model T
	return a.do(func(db *gorm.DB) error {
		return db.Where("user_id = ? AND id = ?", userID, id).Delete(&model).Error
	})
}
