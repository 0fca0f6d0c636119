package redis_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/automata/pkg/adapters/redis"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/ports"
	contract "github.com/aretw0/automata/pkg/ports/tests"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err, "Failed to start miniredis")
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisStore_Contract(t *testing.T) {
	_, client := newClient(t)
	ports.RunReportStoreContract(t, redis.NewFromClient(client))
}

func TestRedisStore_TTL_Expiration(t *testing.T) {
	mr, client := newClient(t)

	store := redis.NewFromClient(client, redis.WithTTL(1*time.Second))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domain.NewReport("r-ttl", "cycle", nil)))

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Contains(t, ids, "r-ttl")

	mr.FastForward(2 * time.Second)

	_, err = store.Load(ctx, "r-ttl")
	assert.ErrorIs(t, err, domain.ErrReportNotFound)
}

func TestRedisStore_Prefix(t *testing.T) {
	mr, client := newClient(t)

	store := redis.NewFromClient(client, redis.WithPrefix("custom:app:"))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domain.NewReport("my-report", "cycle", nil)))
	require.NoError(t, store.Ping(ctx))

	assert.True(t, mr.Exists("custom:app:id:my-report"), "Expected key with custom prefix to exist")
	assert.True(t, mr.Exists("custom:app:index"), "Expected index with custom prefix to exist")
}

func TestRedisSource_Contract(t *testing.T) {
	_, client := newClient(t)
	ctx := context.Background()

	data := map[string][]byte{
		"cycle": []byte("a b\nq0 q1\nq0\nq0\nq0 a q1\n"),
		"loop":  []byte("x\ns\ns\ns\ns x s\n"),
	}
	src := redis.NewSource(client, "")
	for name, content := range data {
		require.NoError(t, src.Put(ctx, name, content))
	}

	contract.DefinitionSourceContractTest(t, src, data)
}

func TestRedisStore_ReportNamedIndex(t *testing.T) {
	_, client := newClient(t)
	store := redis.NewFromClient(client)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domain.NewReport("first", "cycle", nil)))
	require.NoError(t, store.Save(ctx, domain.NewReport("index", "cycle", nil)))

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"first", "index"}, ids)

	loaded, err := store.Load(ctx, "index")
	require.NoError(t, err)
	assert.Equal(t, "index", loaded.ID)
}

func TestRedisSource_DefinitionNamedNames(t *testing.T) {
	mr, client := newClient(t)
	src := redis.NewSource(client, "")
	ctx := context.Background()

	require.NoError(t, src.Put(ctx, "cycle", []byte("a\nq0\nq0\nq0\n")))
	require.NoError(t, src.Put(ctx, "names", []byte("b\ns\ns\ns\n")))

	names, err := src.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"cycle", "names"}, names)

	raw, err := src.Read(ctx, "names")
	require.NoError(t, err)
	assert.Equal(t, "b\ns\ns\ns\n", string(raw))

	assert.True(t, mr.Exists(redis.DefaultDefinitionPrefix+"def:names"))
	assert.True(t, mr.Exists(redis.DefaultDefinitionPrefix+"names"))
}

func TestRedisSource_ConnectionErrorIsNotNotFound(t *testing.T) {
	mr, client := newClient(t)
	src := redis.NewSource(client, "")
	mr.Close()

	_, err := src.Read(context.Background(), "cycle")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrDefinitionNotFound)

	var nf *domain.NotFoundError
	assert.False(t, errors.As(err, &nf))
}
