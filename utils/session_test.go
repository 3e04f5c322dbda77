package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitquest/fitquest/models"
)

func TestSessionLifecycle(t *testing.T) {
	store := NewMemorySessionStore(time.Hour)

	token, err := store.Create(models.User{ID: 1, Username: "JohnDoe", DailyGoal: 10000})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	user, ok := store.Get(token)
	require.True(t, ok)
	assert.Equal(t, "JohnDoe", user.Username)
	assert.Equal(t, 10000, user.DailyGoal)

	// Refresh replaces the snapshot under the same token.
	user.DailyGoal = 15000
	require.NoError(t, store.Refresh(token, user))
	user, ok = store.Get(token)
	require.True(t, ok)
	assert.Equal(t, 15000, user.DailyGoal)

	store.Destroy(token)
	_, ok = store.Get(token)
	assert.False(t, ok)

	// Destroying again is a no-op.
	store.Destroy(token)
}

func TestSessionTokensAreUnique(t *testing.T) {
	store := NewMemorySessionStore(time.Hour)

	t1, err := store.Create(models.User{ID: 1})
	require.NoError(t, err)
	t2, err := store.Create(models.User{ID: 1})
	require.NoError(t, err)
	assert.NotEqual(t, t1, t2)
}

func TestSessionExpiry(t *testing.T) {
	store := NewMemorySessionStore(10 * time.Millisecond)

	token, err := store.Create(models.User{ID: 2, Username: "Shortlived"})
	require.NoError(t, err)

	_, ok := store.Get(token)
	require.True(t, ok)

	time.Sleep(25 * time.Millisecond)
	_, ok = store.Get(token)
	assert.False(t, ok)
}

func TestGetEmptyToken(t *testing.T) {
	store := NewMemorySessionStore(time.Hour)
	_, ok := store.Get("")
	assert.False(t, ok)
}
