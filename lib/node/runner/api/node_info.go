package api

import (
	"fmt"
	"net/http"

	"boscoin.io/pollchain/lib/common"
	"boscoin.io/pollchain/lib/network/httputils"
	"boscoin.io/pollchain/lib/version"
)

type NodeVersion struct {
	Version   string `json:"version"`
	GitCommit string `json:"git-commit"`
	GitState  string `json:"git-state"`
	BuildDate string `json:"build-date"`
}

type NodePolicy struct {
	NetworkID       string `json:"network-id"`
	OperationsLimit int    `json:"operations-limit"`
	RateLimit       string `json:"rate-limit"`
	HTTPCache       string `json:"http-cache"`
}

// NodeInfo is served at the root of the node.
type NodeInfo struct {
	Name      string           `json:"name"`
	Endpoint  *common.Endpoint `json:"endpoint"`
	StartedAt string           `json:"started-at"`
	Version   NodeVersion      `json:"version"`
	Policy    NodePolicy       `json:"policy"`
}

func NewNodeInfo(name string, endpoint *common.Endpoint, conf common.Config) NodeInfo {
	return NodeInfo{
		Name:      name,
		Endpoint:  endpoint,
		StartedAt: common.NowISO8601(),
		Version: NodeVersion{
			Version:   version.Version,
			GitCommit: version.GitCommit,
			GitState:  version.GitState,
			BuildDate: version.BuildDate,
		},
		Policy: NodePolicy{
			NetworkID:       string(conf.NetworkID),
			OperationsLimit: conf.OpsLimit,
			RateLimit:       fmt.Sprintf("%d/%s", conf.RateLimitRuleAPI.Default.Limit, conf.RateLimitRuleAPI.Default.Period),
			HTTPCache:       conf.HTTPCacheAdapter,
		},
	}
}

func (api NetworkHandlerAPI) GetNodeInfoHandler(w http.ResponseWriter, r *http.Request) {
	httputils.MustWriteJSON(w, http.StatusOK, api.nodeInfo)
}
