package cart

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	redisclient "github.com/niastore/nia-storefront/pkg/redis"
	"github.com/stretchr/testify/require"
)

type memKV struct {
	values map[string]string
	ttls   map[string]time.Duration
	err    error
}

func newMemKV() *memKV {
	return &memKV{values: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (m *memKV) Get(_ context.Context, key string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	value, ok := m.values[key]
	if !ok {
		return "", redisclient.ErrNil
	}
	return value, nil
}

func (m *memKV) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	if m.err != nil {
		return m.err
	}
	m.values[key] = value.(string)
	m.ttls[key] = ttl
	return nil
}

func (m *memKV) Del(_ context.Context, keys ...string) error {
	if m.err != nil {
		return m.err
	}
	for _, key := range keys {
		delete(m.values, key)
	}
	return nil
}

func (m *memKV) CartKey(visitorID string) string {
	return "nia:cart:" + visitorID
}

func TestSessionStoreRoundTrip(t *testing.T) {
	kv := newMemKV()
	store, err := NewSessionStore(kv, time.Hour)
	require.NoError(t, err)
	ctx := context.Background()

	empty, err := store.Load(ctx, "visitor-1")
	require.NoError(t, err)
	require.True(t, empty.IsEmpty())

	c := New()
	c.Add(line(7, "12.50"))
	require.NoError(t, store.Save(ctx, "visitor-1", c))
	require.Equal(t, time.Hour, kv.ttls["nia:cart:visitor-1"])
	require.Contains(t, kv.values["nia:cart:visitor-1"], `"version":1`)

	loaded, err := store.Load(ctx, "visitor-1")
	require.NoError(t, err)
	require.Len(t, loaded.Lines, 1)
	require.Equal(t, uint(7), loaded.Lines[0].ProductID)
	require.Equal(t, "12.50", loaded.Lines[0].Price.StringFixed(2))

	require.NoError(t, store.Delete(ctx, "visitor-1"))
	gone, err := store.Load(ctx, "visitor-1")
	require.NoError(t, err)
	require.True(t, gone.IsEmpty())
}

func TestSessionStoreDiscardsForeignPayloads(t *testing.T) {
	kv := newMemKV()
	store, err := NewSessionStore(kv, time.Hour)
	require.NoError(t, err)

	kv.values["nia:cart:v"] = `{"version":99,"lines":[{"product_id":1,"quantity":1}]}`
	c, err := store.Load(context.Background(), "v")
	require.NoError(t, err)
	require.True(t, c.IsEmpty())

	kv.values["nia:cart:v"] = `not json`
	c, err = store.Load(context.Background(), "v")
	require.NoError(t, err)
	require.True(t, c.IsEmpty())

	kv.values["nia:cart:v"] = `{"version":1,"lines":[{"product_id":0,"quantity":1},{"product_id":2,"quantity":0},{"product_id":3,"price":"1.00","quantity":2}]}`
	c, err = store.Load(context.Background(), "v")
	require.NoError(t, err)
	require.Len(t, c.Lines, 1)
	require.Equal(t, uint(3), c.Lines[0].ProductID)
}

func TestSessionStoreRequiresVisitor(t *testing.T) {
	store, err := NewSessionStore(newMemKV(), time.Hour)
	require.NoError(t, err)

	_, err = store.Load(context.Background(), "  ")
	require.Error(t, err)
	require.True(t, strings.Contains(err.Error(), "visitor id"))
}

func TestSessionStorePropagatesErrors(t *testing.T) {
	kv := newMemKV()
	kv.err = errors.New("connection refused")
	store, err := NewSessionStore(kv, time.Hour)
	require.NoError(t, err)

	_, err = store.Load(context.Background(), "v")
	require.ErrorContains(t, err, "connection refused")
}

func TestNewSessionStoreValidation(t *testing.T) {
	_, err := NewSessionStore(nil, time.Hour)
	require.Error(t, err)
	_, err = NewSessionStore(newMemKV(), 0)
	require.Error(t, err)
}
