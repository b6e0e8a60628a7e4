package httpcache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var _ Adapter = (*MemCacheAdapter)(nil)
var _ Adapter = (*RedisCacheAdapter)(nil)
var _ HandlerWrapper = (*Client)(nil)
var _ HandlerWrapper = (*NopClient)(nil)

func TestMemCacheAdapter(t *testing.T) {
	a := NewMemCacheAdapter(10)
	now := time.Now()

	key := "key"
	resp := &Response{
		Value: []byte("hello"),
	}

	a.Set(key, resp, now)

	cachedResp, ok := a.Get(key)
	require.True(t, ok)
	require.Equal(t, resp, cachedResp)
	require.Equal(t, now, cachedResp.Expiration)

	a.Remove(key)
	_, ok = a.Get(key)
	require.False(t, ok)
}

func TestMemCacheAdapterEviction(t *testing.T) {
	a := NewMemCacheAdapter(2)
	a.Set("a", &Response{}, time.Time{})
	a.Set("b", &Response{}, time.Time{})
	a.Set("c", &Response{}, time.Time{})

	_, ok := a.Get("a")
	require.False(t, ok)
	require.Equal(t, 2, a.Len())
}
