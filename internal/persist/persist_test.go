package persist

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type snapshot struct {
	Name  string  `json:"name"`
	Count int     `json:"count"`
	Price float64 `json:"price"`
}

// both implementations must behave identically
func stores(t *testing.T) map[string]Store {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return map[string]Store{
		"redis":  NewRedisStore(client),
		"memory": NewMemoryStore(),
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			in := snapshot{Name: "cart", Count: 3, Price: 19.99}
			require.NoError(t, s.Save(ctx, CartKey, in))

			var out snapshot
			require.NoError(t, s.Load(ctx, CartKey, &out))
			assert.Equal(t, in, out)
		})
	}
}

func TestLoad_MissingKey(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			var out snapshot
			err := s.Load(context.Background(), "never-written", &out)
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestSave_LastWriteWins(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, s.Save(ctx, AuthKey, snapshot{Count: 1}))
			require.NoError(t, s.Save(ctx, AuthKey, snapshot{Count: 2}))

			var out snapshot
			require.NoError(t, s.Load(ctx, AuthKey, &out))
			assert.Equal(t, 2, out.Count)
		})
	}
}

func TestDelete(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, s.Save(ctx, CartKey, snapshot{Count: 1}))
			require.NoError(t, s.Delete(ctx, CartKey))

			var out snapshot
			assert.ErrorIs(t, s.Load(ctx, CartKey, &out), ErrNotFound)

			// deleting an absent key is not an error
			assert.NoError(t, s.Delete(ctx, "never-written"))
		})
	}
}

func TestRedisKeysAreNamespaced(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	s := NewRedisStore(client)
	require.NoError(t, s.Save(context.Background(), CartKey, snapshot{}))

	assert.True(t, mr.Exists("storefront:cart-storage"))
}
