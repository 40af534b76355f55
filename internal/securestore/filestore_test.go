package securestore

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.bin")

	store, err := NewFileStore(path, "correct horse")
	require.NoError(t, err)

	t.Run("missing key", func(t *testing.T) {
		_, err := store.Get(ctx, "refreshToken")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("set and get", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "refreshToken", "r-123"))
		v, err := store.Get(ctx, "refreshToken")
		require.NoError(t, err)
		assert.Equal(t, "r-123", v)
	})

	t.Run("file is sealed", func(t *testing.T) {
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.False(t, strings.Contains(string(data), "r-123"))
	})

	t.Run("reopen with same passphrase", func(t *testing.T) {
		reopened, err := NewFileStore(path, "correct horse")
		require.NoError(t, err)
		v, err := reopened.Get(ctx, "refreshToken")
		require.NoError(t, err)
		assert.Equal(t, "r-123", v)
	})

	t.Run("wrong passphrase", func(t *testing.T) {
		other, err := NewFileStore(path, "battery staple")
		require.NoError(t, err)
		_, err = other.Get(ctx, "refreshToken")
		assert.ErrorIs(t, err, ErrDecrypt)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, "refreshToken"))
		require.NoError(t, store.Delete(ctx, "refreshToken"))
		_, err := store.Get(ctx, "refreshToken")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Set(ctx, "authUser", `{"id":1}`))
	v, err := store.Get(ctx, "authUser")
	require.NoError(t, err)
	assert.Equal(t, `{"id":1}`, v)

	require.NoError(t, store.Delete(ctx, "authUser"))
	_, err = store.Get(ctx, "authUser")
	assert.ErrorIs(t, err, ErrNotFound)
}
