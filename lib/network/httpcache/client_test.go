package httpcache

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMiddleware(t *testing.T) {
	a := NewMemCacheAdapter(10)
	a.Set("http://foo?bar=1", &Response{
		Value:      []byte("value 1"),
		StatusCode: 200,
	}, time.Time{})

	c, err := NewClient(
		WithAdapter(a),
	)
	require.NoError(t, err)

	cnt := 0
	testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(fmt.Sprintf("new value:%v", cnt)))
	})

	handler := c.Middleware(testHandler)

	tests := []struct {
		name   string
		url    string
		method string
		body   string
		cache  string
	}{
		{"return cached resp", "http://foo?bar=1", "GET", "value 1", "HIT"},
		{"return nocached resp", "http://foo?bar=2", "GET", "new value:2", "MISS"},
		{"return resp cached by previous request", "http://foo?bar=2", "GET", "new value:2", "HIT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cnt++

			r, err := http.NewRequest(tt.method, tt.url, nil)
			require.NoError(t, err)

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, r)

			require.Equal(t, http.StatusOK, w.Code)
			require.Equal(t, tt.body, w.Body.String())
			require.Equal(t, tt.cache, w.Header().Get(HeaderCacheStatus))
		})
	}
}

func TestMiddlewareSkipsErrorAndMethod(t *testing.T) {
	a := NewMemCacheAdapter(10)
	c, err := NewClient(WithAdapter(a))
	require.NoError(t, err)

	handler := c.WrapHandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("ok"))
	})

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		handler(w, httptest.NewRequest("GET", "http://foo/missing", nil))
		require.Equal(t, http.StatusNotFound, w.Code)
		require.Equal(t, "MISS", w.Header().Get(HeaderCacheStatus))
	}

	w := httptest.NewRecorder()
	handler(w, httptest.NewRequest("POST", "http://foo/ok", nil))
	require.Equal(t, "", w.Header().Get(HeaderCacheStatus))
	require.Equal(t, 0, a.Len())
}

func TestMiddlewareExpiration(t *testing.T) {
	a := NewMemCacheAdapter(10)
	a.Set("http://foo/old", &Response{Value: []byte("old"), StatusCode: 200}, time.Now().Add(-time.Second))

	c, err := NewClient(WithAdapter(a), WithExpire(time.Minute))
	require.NoError(t, err)

	handler := c.WrapHandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("new"))
	})

	w := httptest.NewRecorder()
	handler(w, httptest.NewRequest("GET", "http://foo/old", nil))
	require.Equal(t, "new", w.Body.String())

	cached, ok := a.Get("http://foo/old")
	require.True(t, ok)
	require.True(t, cached.Expiration.After(time.Now()))
}

func TestCacheKeySortsQuery(t *testing.T) {
	r1 := httptest.NewRequest("GET", "http://foo/polls?b=2&a=1", nil)
	r2 := httptest.NewRequest("GET", "http://foo/polls?a=1&b=2", nil)
	require.Equal(t, cacheKey(r1.URL), cacheKey(r2.URL))
}

func TestNewClientWithoutAdapter(t *testing.T) {
	_, err := NewClient()
	require.Error(t, err)
}
