package tagscript

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStorage_SaveAndGet(t *testing.T) {
	storage := NewMemoryStorage()
	ctx := context.Background()

	script := &StoredScript{
		Name:        "greet",
		Source:      "hello {user}",
		Description: "greeting tag",
		Metadata:    map[string]string{"guild": "123"},
	}
	require.NoError(t, storage.Save(ctx, script))
	assert.Equal(t, 1, script.Version)
	assert.False(t, script.CreatedAt.IsZero())

	got, err := storage.Get(ctx, "greet")
	require.NoError(t, err)
	assert.Equal(t, "hello {user}", got.Source)
	assert.Equal(t, "greeting tag", got.Description)
	assert.Equal(t, 1, got.Version)
	assert.Equal(t, "123", got.Metadata["guild"])
}

func TestMemoryStorage_VersionIncrements(t *testing.T) {
	storage := NewMemoryStorage()
	ctx := context.Background()

	first := &StoredScript{Name: "tag", Source: "v1"}
	require.NoError(t, storage.Save(ctx, first))

	second := &StoredScript{Name: "tag", Source: "v2"}
	require.NoError(t, storage.Save(ctx, second))
	assert.Equal(t, 2, second.Version)
	assert.Equal(t, first.CreatedAt, second.CreatedAt)

	got, err := storage.Get(ctx, "tag")
	require.NoError(t, err)
	assert.Equal(t, "v2", got.Source)
	assert.Equal(t, 2, got.Version)
}

func TestMemoryStorage_GetCopiesAreIsolated(t *testing.T) {
	storage := NewMemoryStorage()
	ctx := context.Background()

	require.NoError(t, storage.Save(ctx, &StoredScript{
		Name:     "iso",
		Source:   "body",
		Metadata: map[string]string{"k": "v"},
	}))

	got, err := storage.Get(ctx, "iso")
	require.NoError(t, err)
	got.Source = "mutated"
	got.Metadata["k"] = "mutated"

	again, err := storage.Get(ctx, "iso")
	require.NoError(t, err)
	assert.Equal(t, "body", again.Source)
	assert.Equal(t, "v", again.Metadata["k"])
}

func TestMemoryStorage_GetMissing(t *testing.T) {
	storage := NewMemoryStorage()
	_, err := storage.Get(context.Background(), "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgScriptNotFound)
}

func TestMemoryStorage_SaveValidation(t *testing.T) {
	storage := NewMemoryStorage()
	ctx := context.Background()

	require.Error(t, storage.Save(ctx, nil))
	require.Error(t, storage.Save(ctx, &StoredScript{Source: "nameless"}))
}

func TestMemoryStorage_DeleteAndList(t *testing.T) {
	storage := NewMemoryStorage()
	ctx := context.Background()

	for _, name := range []string{"charlie", "alpha", "bravo"} {
		require.NoError(t, storage.Save(ctx, &StoredScript{Name: name, Source: "x"}))
	}

	names, err := storage.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "bravo", "charlie"}, names)

	require.NoError(t, storage.Delete(ctx, "bravo"))
	names, err = storage.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "charlie"}, names)

	err = storage.Delete(ctx, "bravo")
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgScriptNotFound)
}

func TestMemoryStorage_ClosedRejectsEverything(t *testing.T) {
	storage := NewMemoryStorage()
	ctx := context.Background()
	require.NoError(t, storage.Save(ctx, &StoredScript{Name: "x", Source: "y"}))
	require.NoError(t, storage.Close())

	_, err := storage.Get(ctx, "x")
	assert.Contains(t, err.Error(), ErrMsgStorageClosed)
	assert.Error(t, storage.Save(ctx, &StoredScript{Name: "x", Source: "y"}))
	assert.Error(t, storage.Delete(ctx, "x"))
	_, err = storage.List(ctx)
	assert.Error(t, err)
}

func TestMemoryStorage_CancelledContext(t *testing.T) {
	storage := NewMemoryStorage()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := storage.Get(ctx, "x")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMemoryStorage_ConcurrentAccess(t *testing.T) {
	storage := NewMemoryStorage()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				assert.NoError(t, storage.Save(ctx, &StoredScript{Name: "shared", Source: "s"}))
				_, err := storage.Get(ctx, "shared")
				assert.NoError(t, err)
				_, err = storage.List(ctx)
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	got, err := storage.Get(ctx, "shared")
	require.NoError(t, err)
	assert.Equal(t, 160, got.Version)
}

func TestOpenStorage_MemoryDriver(t *testing.T) {
	storage, err := OpenStorage(StorageDriverNameMemory, "")
	require.NoError(t, err)
	defer storage.Close()
	require.NoError(t, storage.Save(context.Background(), &StoredScript{Name: "a", Source: "b"}))
}

func TestOpenStorage_UnknownDriver(t *testing.T) {
	_, err := OpenStorage("no-such-driver", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgStorageDriver)
}
