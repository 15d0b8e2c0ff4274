package repo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/backend/internal/repo"
	"github.com/pkordes/trip-planner/backend/testutil"
)

// runBlobStoreContract exercises the behaviour every BlobStore must share.
// Each backend test only has to construct its store.
func runBlobStoreContract(t *testing.T, store repo.BlobStore) {
	t.Helper()
	ctx := context.Background()
	const key = "tripplanner:data:+15551234567"

	t.Run("missing key is not an error", func(t *testing.T) {
		blob, ok, err := store.Get(ctx, "tripplanner:data:nobody")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Empty(t, blob)
	})

	t.Run("set then get", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, key, `{"trips":[]}`))

		blob, ok, err := store.Get(ctx, key)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, `{"trips":[]}`, blob)
	})

	t.Run("set overwrites", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, key, `{"trips":[{"id":"a"}]}`))

		blob, _, err := store.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, `{"trips":[{"id":"a"}]}`, blob)
	})

	t.Run("keys are independent", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "tripplanner:auth:phone", "+15551234567"))

		blob, _, err := store.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, `{"trips":[{"id":"a"}]}`, blob)
	})

	t.Run("remove", func(t *testing.T) {
		require.NoError(t, store.Remove(ctx, key))

		_, ok, err := store.Get(ctx, key)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("remove missing key is not an error", func(t *testing.T) {
		assert.NoError(t, store.Remove(ctx, "tripplanner:data:ghost"))
	})
}

func TestMemoryBlobStore(t *testing.T) {
	runBlobStoreContract(t, repo.NewMemoryBlobStore())
}

func TestMemoryBlobStore_cancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := repo.NewMemoryBlobStore().Get(ctx, "k")

	assert.ErrorIs(t, err, context.Canceled)
}

func TestFileBlobStore(t *testing.T) {
	runBlobStoreContract(t, repo.NewFileBlobStore(t.TempDir()))
}

func TestSQLiteBlobStore(t *testing.T) {
	runBlobStoreContract(t, repo.NewSQLiteBlobStore(testutil.NewSQLite(t)))
}

// TestPostgresBlobStore runs inside a transaction that is rolled back, so it
// leaves the shared test database untouched.
func TestPostgresBlobStore(t *testing.T) {
	pool := testutil.NewPool(t)

	tx, err := pool.Begin(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { _ = tx.Rollback(context.Background()) })

	runBlobStoreContract(t, repo.NewPostgresBlobStore(tx))
}
