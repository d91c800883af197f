package lock

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisLock_Acquire(t *testing.T) {
	client, mock := redismock.NewClientMock()
	l := NewRedisLock(client)

	mock.ExpectSetNX("jobs:lock", "1", 30*time.Minute).SetVal(true)

	ok, err := l.Acquire(context.Background(), "jobs:lock", 30*time.Minute)

	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisLock_AcquireWhenHeld(t *testing.T) {
	client, mock := redismock.NewClientMock()
	l := NewRedisLock(client)

	mock.ExpectSetNX("jobs:lock", "1", 30*time.Minute).SetVal(false)

	ok, err := l.Acquire(context.Background(), "jobs:lock", 30*time.Minute)

	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisLock_AcquireError(t *testing.T) {
	client, mock := redismock.NewClientMock()
	l := NewRedisLock(client)

	mock.ExpectSetNX("jobs:lock", "1", time.Minute).SetErr(errors.New("connection refused"))

	ok, err := l.Acquire(context.Background(), "jobs:lock", time.Minute)

	assert.Error(t, err)
	assert.False(t, ok)
}

func TestRedisLock_Release(t *testing.T) {
	client, mock := redismock.NewClientMock()
	l := NewRedisLock(client)

	mock.ExpectDel("jobs:lock").SetVal(1)

	require.NoError(t, l.Release(context.Background(), "jobs:lock"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisLock_ReleaseError(t *testing.T) {
	client, mock := redismock.NewClientMock()
	l := NewRedisLock(client)

	mock.ExpectDel("jobs:lock").SetErr(errors.New("connection refused"))

	assert.Error(t, l.Release(context.Background(), "jobs:lock"))
}
