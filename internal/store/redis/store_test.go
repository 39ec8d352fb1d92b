package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/linkbridge/internal/domain"
)

func newTestStore(t *testing.T, scope string) (*TagStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewTagStore(client, scope), mr
}

func TestScopeIsStable(t *testing.T) {
	a := Scope("linkding https://linkding.domain.ext")
	b := Scope("linkding https://linkding.domain.ext")
	c := Scope("linkding https://other.domain.ext")

	assert.Len(t, a, 12)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Equal(t, "linkbridge:tags:"+a+":o0:all:v", TagsKey(a, "o0:all:v"))
}

func TestTagStoreRoundTrip(t *testing.T) {
	store, mr := newTestStore(t, "scope")
	ctx := context.Background()

	_, ok, err := store.GetTags(ctx, "o0:all:v")
	require.NoError(t, err)
	assert.False(t, ok)

	tags := []domain.Tag{{Name: "go", Occurrences: 1}, {Name: "web", Occurrences: 3}}
	require.NoError(t, store.SetTags(ctx, "o0:all:v", tags, time.Minute))

	got, ok, err := store.GetTags(ctx, "o0:all:v")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, tags, got)

	raw, err := mr.Get("linkbridge:tags:scope:o0:all:v")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"name":"go","occurences":1},{"name":"web","occurences":3}]`, raw)
	assert.Equal(t, time.Minute, mr.TTL("linkbridge:tags:scope:o0:all:v"))
}

func TestTagStoreEmptyListingIsAHit(t *testing.T) {
	store, _ := newTestStore(t, "scope")
	ctx := context.Background()

	require.NoError(t, store.SetTags(ctx, "k", nil, 0))

	got, ok, err := store.GetTags(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestTagStoreExpires(t *testing.T) {
	store, mr := newTestStore(t, "scope")
	ctx := context.Background()

	require.NoError(t, store.SetTags(ctx, "k", []domain.Tag{{Name: "go", Occurrences: 1}}, time.Second))
	mr.FastForward(2 * time.Second)

	_, ok, err := store.GetTags(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTagStoreInvalidateOnlyTouchesScope(t *testing.T) {
	store, mr := newTestStore(t, "mine")
	ctx := context.Background()

	require.NoError(t, store.SetTags(ctx, "a", []domain.Tag{{Name: "a", Occurrences: 1}}, time.Minute))
	require.NoError(t, store.SetTags(ctx, "b", []domain.Tag{{Name: "b", Occurrences: 1}}, time.Minute))
	require.NoError(t, mr.Set("linkbridge:tags:other:a", "[]"))

	require.NoError(t, store.InvalidateTags(ctx))

	assert.False(t, mr.Exists("linkbridge:tags:mine:a"))
	assert.False(t, mr.Exists("linkbridge:tags:mine:b"))
	assert.True(t, mr.Exists("linkbridge:tags:other:a"))

	// nothing left to delete
	require.NoError(t, store.InvalidateTags(ctx))
}

func TestTagStoreCorruptEntry(t *testing.T) {
	store, mr := newTestStore(t, "scope")
	require.NoError(t, mr.Set("linkbridge:tags:scope:k", "{not json"))

	_, ok, err := store.GetTags(context.Background(), "k")
	require.Error(t, err)
	assert.False(t, ok)
}

func TestTagStoreUnavailable(t *testing.T) {
	store, mr := newTestStore(t, "scope")
	mr.Close()

	_, _, err := store.GetTags(context.Background(), "k")
	require.Error(t, err)
}
