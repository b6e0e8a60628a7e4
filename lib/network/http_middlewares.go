package network

import (
	"fmt"
	"net"
	"net/http"
	"runtime/debug"
	"strconv"
	"time"

	ghandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	logging "github.com/inconshreveable/log15"
	"github.com/ulule/limiter"
	"github.com/ulule/limiter/drivers/store/memory"

	"boscoin.io/pollchain/lib/common"
	"boscoin.io/pollchain/lib/errors"
	"boscoin.io/pollchain/lib/metrics"
	"boscoin.io/pollchain/lib/network/httputils"
)

func RecoverMiddleware(logger logging.Logger) mux.MiddlewareFunc {
	if logger == nil {
		logger = log
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rc := recover(); rc != nil {
					err, ok := rc.(error)
					if !ok {
						err = fmt.Errorf("panic: %v", rc)
					}
					httputils.WriteJSON(w, http.StatusInternalServerError, err)
					logger.Error("recover an panic", "err", err, "stack", string(debug.Stack()))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

func CORSMiddleware() mux.MiddlewareFunc {
	allowedOrigins := ghandlers.AllowedOrigins([]string{"*"})
	allowedMethods := ghandlers.AllowedMethods([]string{"GET", "POST"})
	allowedHeaders := ghandlers.AllowedHeaders([]string{"Content-Type", "X-Requested-With", "Cache-Control", "Access-Control"})

	return ghandlers.CORS(allowedOrigins, allowedMethods, allowedHeaders)
}

type rateLimitMiddleware struct {
	next        http.Handler
	log         logging.Logger
	defaultRate *limiter.Limiter
	byIPAddress map[string]*limiter.Limiter
}

// RateLimitMiddleware limits the requests by the client ip address. The rate
// of `RateLimitRule.ByIPAddress` overrides the default one; a rate with zero
// limit is unlimited.
func RateLimitMiddleware(logger logging.Logger, rule common.RateLimitRule) mux.MiddlewareFunc {
	if logger == nil {
		logger = log
	}

	byIPAddress := map[string]*limiter.Limiter{}
	for ip, rate := range rule.ByIPAddress {
		byIPAddress[ip] = limiter.New(memory.NewStore(), rate)
	}

	defaultRate := limiter.New(memory.NewStore(), rule.Default)

	return func(next http.Handler) http.Handler {
		return &rateLimitMiddleware{
			next:        next,
			log:         logger,
			defaultRate: defaultRate,
			byIPAddress: byIPAddress,
		}
	}
}

func (m *rateLimitMiddleware) limiter(ip string) *limiter.Limiter {
	if l, found := m.byIPAddress[ip]; found {
		return l
	}
	return m.defaultRate
}

func (m *rateLimitMiddleware) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ip := remoteIP(r)
	l := m.limiter(ip)
	if l.Rate.Limit < 1 {
		m.next.ServeHTTP(w, r)
		return
	}

	context, err := l.Get(r.Context(), ip)
	if err != nil {
		m.log.Error("failed to get rate limit context", "ip", ip, "error", err)
		httputils.WriteJSON(w, http.StatusInternalServerError, errors.HTTPServerError)
		return
	}

	w.Header().Add("X-RateLimit-Limit", strconv.FormatInt(context.Limit, 10))
	w.Header().Add("X-RateLimit-Remaining", strconv.FormatInt(context.Remaining, 10))
	w.Header().Add("X-RateLimit-Reset", strconv.FormatInt(context.Reset, 10))

	if context.Reached {
		m.log.Debug("rate limit reached", "ip", ip, "limit", context.Limit)
		httputils.WriteJSON(
			w,
			http.StatusTooManyRequests,
			httputils.NewStatusProblem(http.StatusTooManyRequests),
		)
		return
	}

	m.next.ServeHTTP(w, r)
}

func remoteIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// MetricsMiddleware records the API metrics by the route path template.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		begin := time.Now()

		endpoint := r.URL.Path
		if route := mux.CurrentRoute(r); route != nil {
			if tpl, err := route.GetPathTemplate(); err == nil {
				endpoint = tpl
			}
		}

		writer := &HTTP2ResponseLog15Writer{w: w}
		next.ServeHTTP(writer, r)

		metrics.API.Observe(endpoint, r.Method, writer.Status(), time.Since(begin))
	})
}
