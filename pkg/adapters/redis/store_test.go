package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/turing/pkg/adapters/redis"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/ports"
	contract "github.com/aretw0/turing/pkg/ports/tests"
)

func newClient(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	return mr, backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})
}

func TestRedisStore_StoreContract(t *testing.T) {
	_, client := newClient(t)
	contract.DefinitionStoreContractTest(t, redis.NewFromClient(client))
}

func TestRedisStore_LoaderContract(t *testing.T) {
	_, client := newClient(t)
	store := redis.NewFromClient(client)
	ctx := context.Background()

	data := map[string][]byte{
		"swap":  []byte("t e s n i\n_\n0\n1\n"),
		"unary": []byte("1\n_\n0\n0\n"),
	}
	for name, content := range data {
		require.NoError(t, store.SaveDefinition(ctx, &ports.Description{Name: name, Format: domain.FormatText, Data: content}))
	}

	contract.DefinitionLoaderContractTest(t, store, data)
}

func TestRedisStore_TTL_Expiration(t *testing.T) {
	mr, client := newClient(t)

	// Create store with 1s TTL
	store := redis.NewFromClient(client, redis.WithTTL(1*time.Second))
	ctx := context.Background()

	// 1. Save
	err := store.SaveDefinition(ctx, &ports.Description{Name: "swap", Format: domain.FormatText, Data: []byte("a\n_\n\n0\n")})
	require.NoError(t, err)

	// 2. Verify List (immediately)
	names, err := store.ListDefinitions(ctx)
	require.NoError(t, err)
	assert.Contains(t, names, "swap")

	// 3. Fast Forward time in miniredis (for Key Expiration)
	mr.FastForward(2 * time.Second)

	// 4. Verify Get (should fail)
	_, err = store.GetDefinition(ctx, "swap")
	assert.ErrorIs(t, err, domain.ErrDefinitionNotFound)

	// 5. Verify List (lazily cleaned up)
	// The index score is computed from time.Now(), which miniredis cannot fast forward.
	time.Sleep(2100 * time.Millisecond)

	names, err = store.ListDefinitions(ctx)
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestRedisStore_Prefix(t *testing.T) {
	mr, client := newClient(t)

	store := redis.NewFromClient(client, redis.WithPrefix("custom:app:"))
	ctx := context.Background()

	err := store.SaveDefinition(ctx, &ports.Description{Name: "swap", Format: domain.FormatYAML, Data: []byte("blank: _\ninitial: 0\n")})
	require.NoError(t, err)

	assert.True(t, mr.Exists("custom:app:machine:swap"), "Expected key with custom prefix to exist")
	assert.True(t, mr.Exists("custom:app:index"), "Expected index with custom prefix to exist")
	assert.Equal(t, "yaml", mr.HGet("custom:app:machine:swap", "format"))

	desc, err := store.GetDefinition(ctx, "swap")
	require.NoError(t, err)
	assert.Equal(t, domain.FormatYAML, desc.Format)
}
