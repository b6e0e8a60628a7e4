//
// Struct that bridges together components of a node
//
// NodeRunner bridges together the http server, storage and `ProgramRunner`.
// In this regard, it can be seen as a single node, and is used as such
// in unit tests.
//
package runner

import (
	"net/http/pprof"

	logging "github.com/inconshreveable/log15"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"boscoin.io/pollchain/lib/common"
	"boscoin.io/pollchain/lib/network"
	"boscoin.io/pollchain/lib/network/httpcache"
	"boscoin.io/pollchain/lib/node/runner/api"
	"boscoin.io/pollchain/lib/storage"
)

// DebugPProf serves the pprof handlers under "/debug/pprof" when set.
var DebugPProf bool = false

type NodeRunner struct {
	name     string
	network  *network.HTTP2Network
	program  *ProgramRunner
	storage  *storage.LevelDBBackend
	cache    httpcache.HandlerWrapper
	nodeInfo api.NodeInfo

	log logging.Logger

	Conf common.Config
}

func NewNodeRunner(name string, n *network.HTTP2Network, program *ProgramRunner) (nr *NodeRunner, err error) {
	nr = &NodeRunner{
		name:    name,
		network: n,
		program: program,
		storage: program.Storage(),
		log:     log.New(logging.Ctx{"node": name}),
		Conf:    program.Config(),
	}

	if nr.cache, err = httpcache.NewHandlerWrapper(nr.Conf); err != nil {
		return nil, err
	}

	nr.nodeInfo = api.NewNodeInfo(name, n.Endpoint(), nr.Conf)

	return
}

func (nr *NodeRunner) Ready() {
	// BaseRouter's middlewares impact all sub routers.
	if err := nr.network.AddMiddleware("", network.RecoverMiddleware(nr.log)); err != nil {
		nr.log.Error("Middleware has an error", "err", err)
		return
	}

	rateLimitMiddlewareAPI := network.RateLimitMiddleware(nr.log, nr.Conf.RateLimitRuleAPI)
	if err := nr.network.AddMiddleware(
		network.RouterNameAPI,
		rateLimitMiddlewareAPI,
		network.CORSMiddleware(),
		network.MetricsMiddleware,
	); err != nil {
		nr.log.Error("middlewares for `RouterNameAPI` has an error", "err", err)
		return
	}
	if err := nr.network.AddMiddleware(network.RouterNameMetric, rateLimitMiddlewareAPI); err != nil {
		nr.log.Error("`network.RateLimitMiddleware` for `RouterNameMetric` router has an error", "err", err)
		return
	}
	if err := nr.network.AddMiddleware(network.RouterNameRPC, rateLimitMiddlewareAPI); err != nil {
		nr.log.Error("`network.RateLimitMiddleware` for `RouterNameRPC` router has an error", "err", err)
		return
	}

	nr.network.AddHandler(network.UrlPathPrefixMetric, promhttp.Handler().ServeHTTP)
	nr.network.AddHandler(network.UrlPathPrefixRPC, NewJSONRPCHandler(nr.storage).ServeHTTP).
		Methods("POST", "OPTIONS")

	// api handlers
	apiHandler := api.NewNetworkHandlerAPI(
		nr.storage,
		nr.program,
		network.UrlPathPrefixAPI,
		nr.nodeInfo,
	)

	nr.network.AddHandler(
		apiHandler.HandlerURLPattern(api.PostTransactionPattern),
		apiHandler.PostTransactionsHandler,
	).Methods("POST", "OPTIONS").MatcherFunc(common.PostAndJSONMatcher)
	nr.network.AddHandler(
		apiHandler.HandlerURLPattern(api.GetTransactionByHashHandlerPattern),
		nr.cache.WrapHandlerFunc(apiHandler.GetTransactionByHashHandler),
	).Methods("GET", "OPTIONS")
	nr.network.AddHandler(
		apiHandler.HandlerURLPattern(api.GetPollsHandlerPattern),
		apiHandler.GetPollsHandler,
	).Methods("GET", "OPTIONS")
	nr.network.AddHandler(
		apiHandler.HandlerURLPattern(api.GetPollHandlerPattern),
		apiHandler.GetPollHandler,
	).Methods("GET", "OPTIONS")
	nr.network.AddHandler(
		apiHandler.HandlerURLPattern(api.GetPollBallotsHandlerPattern),
		apiHandler.GetPollBallotsHandler,
	).Methods("GET", "OPTIONS")
	nr.network.AddHandler(
		apiHandler.HandlerURLPattern(api.GetBallotHandlerPattern),
		nr.cache.WrapHandlerFunc(apiHandler.GetBallotHandler),
	).Methods("GET", "OPTIONS")
	nr.network.AddHandler(
		apiHandler.HandlerURLPattern(api.PostSubscribePattern),
		apiHandler.PostSubscribeHandler,
	).Methods("POST", "OPTIONS")

	// pprof
	if DebugPProf == true {
		nr.network.AddHandler("/debug/pprof/cmdline", pprof.Cmdline)
		nr.network.AddHandler("/debug/pprof/profile", pprof.Profile)
		nr.network.AddHandler("/debug/pprof/symbol", pprof.Symbol)
		nr.network.AddHandler("/debug/pprof/trace", pprof.Trace)
		nr.network.Router().PathPrefix("/debug/pprof/").HandlerFunc(pprof.Index)
	}

	nr.network.AddHandler(api.GetNodeInfoPattern, apiHandler.GetNodeInfoHandler).Methods("GET")

	nr.network.Ready()
}

// Start serves the node until `Stop` is called.
func (nr *NodeRunner) Start() (err error) {
	nr.log.Debug("NodeRunner started", "endpoint", nr.network.Endpoint())
	nr.Ready()

	return nr.network.Start()
}

func (nr *NodeRunner) Stop() {
	nr.network.Stop()
	nr.log.Debug("NodeRunner stopped")
}

func (nr *NodeRunner) Name() string {
	return nr.name
}

func (nr *NodeRunner) Network() *network.HTTP2Network {
	return nr.network
}

func (nr *NodeRunner) Program() *ProgramRunner {
	return nr.program
}

func (nr *NodeRunner) Storage() *storage.LevelDBBackend {
	return nr.storage
}

func (nr *NodeRunner) NodeInfo() api.NodeInfo {
	return nr.nodeInfo
}
