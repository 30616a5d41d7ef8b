package db

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestIsTransient(t *testing.T) {
	assert.True(t, IsTransient(errors.New("database is locked")))
	assert.True(t, IsTransient(errors.New("driver: bad connection")))
	assert.True(t, IsTransient(errors.New("i/o timeout")))

	assert.False(t, IsTransient(nil))
	assert.False(t, IsTransient(gorm.ErrRecordNotFound))
	assert.False(t, IsTransient(errors.New("UNIQUE constraint failed: bayiler.email")))
	assert.False(t, IsTransient(errors.New("CHECK constraint failed")))
	assert.False(t, IsTransient(context.Canceled))
}

func TestWithRetryStopsOnDeterministicError(t *testing.T) {
	calls := 0
	err := WithRetry(context.Background(), func() error {
		calls++
		return errors.New("UNIQUE constraint failed")
	})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestWithRetryRetriesTransientError(t *testing.T) {
	calls := 0
	err := WithRetry(context.Background(), func() error {
		calls++
		if calls < 3 {
			return errors.New("database is locked")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestWithRetryGivesUpAfterBudget(t *testing.T) {
	calls := 0
	err := WithRetry(context.Background(), func() error {
		calls++
		return errors.New("database is locked")
	})
	require.Error(t, err)
	assert.Equal(t, retryAttempts, calls)
}

func TestWithRetrySucceedsFirstTry(t *testing.T) {
	calls := 0
	require.NoError(t, WithRetry(context.Background(), func() error {
		calls++
		return nil
	}))
	assert.Equal(t, 1, calls)
}
