package httpcache

import (
	"net/http"
	"time"
)

// Adapter stores the cached responses. A zero expiration never expires.
type Adapter interface {
	Get(key string) (*Response, bool)
	Set(key string, response *Response, expiration time.Time)
	Remove(key string)
}

type Response struct {
	Value      []byte
	StatusCode int
	Header     http.Header
	Expiration time.Time
}

// HandlerWrapper is implemented by `Client` and `NopClient`.
type HandlerWrapper interface {
	WrapHandlerFunc(http.HandlerFunc) http.HandlerFunc
}
