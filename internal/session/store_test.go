package session

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCommander is an in-memory stand-in for the redis commands the store
// uses.
type fakeCommander struct {
	data map[string]string
}

func newFakeCommander() *fakeCommander {
	return &fakeCommander{data: make(map[string]string)}
}

func (f *fakeCommander) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	switch v := value.(type) {
	case []byte:
		f.data[key] = string(v)
	case string:
		f.data[key] = v
	}
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeCommander) Get(ctx context.Context, key string) *redis.StringCmd {
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeCommander) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	var n int64
	for _, k := range keys {
		if _, ok := f.data[k]; ok {
			delete(f.data, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func (f *fakeCommander) Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd {
	_, ok := f.data[key]
	return redis.NewBoolResult(ok, nil)
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewStore(newFakeCommander(), time.Hour)

	want := Session{UserID: "u-1", Name: "Priya", Role: RoleConsumer, Token: "tok"}
	require.NoError(t, store.Put(ctx, "sid-1", want))

	got, err := store.Get(ctx, "sid-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want, *got)
}

func TestStoreGetMissingReturnsNoValue(t *testing.T) {
	store := NewStore(newFakeCommander(), time.Hour)

	got, err := store.Get(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStoreOverwriteOnLogin(t *testing.T) {
	ctx := context.Background()
	store := NewStore(newFakeCommander(), time.Hour)

	require.NoError(t, store.Put(ctx, "sid-1", Session{UserID: "u-1", Name: "A", Role: RoleConsumer}))
	require.NoError(t, store.Put(ctx, "sid-1", Session{UserID: "u-2", Name: "B", Role: RoleAdmin}))

	got, err := store.Get(ctx, "sid-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "u-2", got.UserID)
	assert.Equal(t, RoleAdmin, got.Role)
}

func TestStoreDelete(t *testing.T) {
	ctx := context.Background()
	store := NewStore(newFakeCommander(), time.Hour)

	require.NoError(t, store.Put(ctx, "sid-1", Session{UserID: "u-1"}))
	require.NoError(t, store.Delete(ctx, "sid-1"))

	got, err := store.Get(ctx, "sid-1")
	require.NoError(t, err)
	assert.Nil(t, got)

	// deleting again is a no-op
	require.NoError(t, store.Delete(ctx, "sid-1"))
}
