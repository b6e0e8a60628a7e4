package network

import (
	"fmt"
	goLog "log"
	"net/http"
	"strings"
	"sync"

	"github.com/gorilla/mux"
	logging "github.com/inconshreveable/log15"
	"github.com/pkg/errors"
	"golang.org/x/net/http2"

	"boscoin.io/pollchain/lib/common"
)

const (
	RouterNameAPI    = "api"
	RouterNameMetric = "metrics"
	RouterNameRPC    = "jsonrpc"
)

var (
	UrlPathPrefixAPI    = fmt.Sprintf("/%s", RouterNameAPI)
	UrlPathPrefixMetric = fmt.Sprintf("/%s", RouterNameMetric)
	UrlPathPrefixRPC    = fmt.Sprintf("/%s", RouterNameRPC)
)

var ErrorNotMatchHTTPRouter = errors.New("router name does not match")

// HTTP2Network is the http server of the node. Handlers are grouped by the
// path prefix into routers, so middlewares can be set per group.
type HTTP2Network struct {
	sync.RWMutex

	server    *http.Server
	router    *mux.Router
	rootRoute *mux.Route
	routers   map[string]*mux.Router

	ready bool

	config *HTTP2NetworkConfig
	log    logging.Logger
}

func NewHTTP2Network(config *HTTP2NetworkConfig) (h2n *HTTP2Network) {
	httpLog := log.New(logging.Ctx{"module": "http", "node": config.NodeName})
	errorLog := goLog.New(HTTP2ErrorLog15Writer{httpLog}, "", 0)

	server := &http.Server{
		Addr:              config.Addr,
		ReadTimeout:       config.ReadTimeout,
		ReadHeaderTimeout: config.ReadHeaderTimeout,
		WriteTimeout:      config.WriteTimeout,
		ErrorLog:          errorLog,
	}
	server.SetKeepAlivesEnabled(true)

	http2.ConfigureServer(
		server,
		&http2.Server{
			IdleTimeout: config.IdleTimeout,
		},
	)

	baseRouter := mux.NewRouter()

	h2n = &HTTP2Network{
		server: server,
		router: baseRouter,
		config: config,
		log:    httpLog,
	}
	h2n.routers = map[string]*mux.Router{
		RouterNameAPI:    baseRouter.PathPrefix(UrlPathPrefixAPI).Subrouter(),
		RouterNameMetric: baseRouter.PathPrefix(UrlPathPrefixMetric).Subrouter(),
		RouterNameRPC:    baseRouter.PathPrefix(UrlPathPrefixRPC).Subrouter(),
	}

	h2n.setNotReadyHandler()

	return
}

func (t *HTTP2Network) Endpoint() *common.Endpoint {
	return t.config.Endpoint
}

func (t *HTTP2Network) Router() *mux.Router {
	return t.router
}

func (t *HTTP2Network) setNotReadyHandler() {
	t.rootRoute = t.router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
	})

	t.server.Handler = HTTP2Log15Handler{log: t.log, handler: t.notReadyHandler()}
}

func (t *HTTP2Network) notReadyHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !t.IsReady() {
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
			return
		}
		t.router.ServeHTTP(w, r)
	})
}

// AddMiddleware adds middlewares to the router; empty routerName means the
// base router, which covers every request.
func (t *HTTP2Network) AddMiddleware(routerName string, mws ...mux.MiddlewareFunc) error {
	var r *mux.Router
	if len(routerName) < 1 {
		r = t.router
	} else {
		var ok bool
		if r, ok = t.routers[routerName]; !ok {
			return ErrorNotMatchHTTPRouter
		}
	}
	for _, mw := range mws {
		r.Use(mw)
	}
	return nil
}

// AddHandler registers handler by the full path pattern. A pattern ending
// with "*" matches the path prefix; the bare router prefix, like
// "/metrics", matches only itself.
func (t *HTTP2Network) AddHandler(pattern string, handler http.HandlerFunc) (router *mux.Route) {
	var routerName string
	var prefix string
	switch {
	case strings.HasPrefix(pattern, UrlPathPrefixAPI):
		routerName = RouterNameAPI
		prefix = pattern[len(UrlPathPrefixAPI):]
	case strings.HasPrefix(pattern, UrlPathPrefixMetric):
		routerName = RouterNameMetric
		prefix = pattern[len(UrlPathPrefixMetric):]
	case strings.HasPrefix(pattern, UrlPathPrefixRPC):
		routerName = RouterNameRPC
		prefix = pattern[len(UrlPathPrefixRPC):]
	default:
		if pattern == "" || pattern == "/" {
			return t.rootRoute.Handler(handler)
		}
		return t.router.HandleFunc(pattern, handler)
	}

	r := t.routers[routerName]

	if strings.HasSuffix(prefix, "*") {
		return r.PathPrefix(strings.TrimSuffix(prefix, "*")).Handler(handler)
	}
	return r.HandleFunc(prefix, handler)
}

func (t *HTTP2Network) Ready() error {
	t.Lock()
	defer t.Unlock()

	t.ready = true

	return nil
}

func (t *HTTP2Network) IsReady() bool {
	t.RLock()
	defer t.RUnlock()

	return t.ready
}

// Start will start `HTTP2Network`. It blocks until the server is stopped.
func (t *HTTP2Network) Start() (err error) {
	if t.config.IsHTTPS() {
		err = t.server.ListenAndServeTLS(t.config.TLSCertFile, t.config.TLSKeyFile)
	} else {
		err = t.server.ListenAndServe()
	}

	if err == http.ErrServerClosed {
		err = nil
	}

	return
}

func (t *HTTP2Network) Stop() {
	t.server.Close()
}
