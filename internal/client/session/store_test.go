package session

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, store.Close())
	})

	return store
}

func TestStore_SaveGetRoundtrip(t *testing.T) {
	store := openTestStore(t)

	sess := &Session{
		AccessToken: "token-123",
		Email:       "alice@example.com",
		ExpiresAt:   time.Now().Add(30 * time.Minute).UTC(),
	}
	require.NoError(t, store.Save(sess))

	got, err := store.Get()
	require.NoError(t, err)
	assert.Equal(t, "token-123", got.AccessToken)
	assert.Equal(t, "alice@example.com", got.Email)
	assert.True(t, got.ExpiresAt.Equal(sess.ExpiresAt))
}

func TestStore_GetWithoutSession(t *testing.T) {
	store := openTestStore(t)

	_, err := store.Get()
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestStore_SaveReplacesPrevious(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.Save(&Session{AccessToken: "old", Email: "a@x.com"}))
	require.NoError(t, store.Save(&Session{AccessToken: "new", Email: "b@x.com"}))

	got, err := store.Get()
	require.NoError(t, err)
	assert.Equal(t, "new", got.AccessToken)
	assert.Equal(t, "b@x.com", got.Email)
}

func TestStore_SaveNil(t *testing.T) {
	store := openTestStore(t)
	assert.Error(t, store.Save(nil))
}

func TestStore_Delete(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.Save(&Session{AccessToken: "token"}))
	require.NoError(t, store.Delete())

	_, err := store.Get()
	assert.ErrorIs(t, err, ErrNoSession)

	// Deleting again is a no-op.
	assert.NoError(t, store.Delete())
}

func TestStore_Current(t *testing.T) {
	store := openTestStore(t)

	t.Run("no session", func(t *testing.T) {
		_, err := store.Current()
		assert.ErrorIs(t, err, ErrNoSession)
	})

	t.Run("valid session", func(t *testing.T) {
		require.NoError(t, store.Save(&Session{
			AccessToken: "token",
			ExpiresAt:   time.Now().Add(time.Hour),
		}))

		sess, err := store.Current()
		require.NoError(t, err)
		assert.Equal(t, "token", sess.AccessToken)
	})

	t.Run("expired session is absent", func(t *testing.T) {
		require.NoError(t, store.Save(&Session{
			AccessToken: "token",
			ExpiresAt:   time.Now().Add(-time.Minute),
		}))

		_, err := store.Current()
		assert.ErrorIs(t, err, ErrNoSession)
	})
}

func TestSession_Expired(t *testing.T) {
	future := Session{ExpiresAt: time.Now().Add(time.Minute)}
	past := Session{ExpiresAt: time.Now().Add(-time.Minute)}

	assert.False(t, future.Expired())
	assert.True(t, past.Expired())
}
