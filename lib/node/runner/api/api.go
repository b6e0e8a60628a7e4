package api

import (
	"fmt"

	"boscoin.io/pollchain/lib/storage"
	"boscoin.io/pollchain/lib/transaction"
)

const APIVersionV1 = "v1"

// API Endpoint patterns
const (
	PostTransactionPattern             = "/transactions"
	GetTransactionByHashHandlerPattern = "/transactions/{id}"
	GetPollsHandlerPattern             = "/polls"
	GetPollHandlerPattern              = "/polls/{id}"
	GetPollBallotsHandlerPattern       = "/polls/{id}/ballots"
	GetBallotHandlerPattern            = "/ballots/{id}"
	PostSubscribePattern               = "/subscribe"
	GetNodeInfoPattern                 = "/"
)

// Executor applies the submitted transactions; see `runner.ProgramRunner`.
type Executor interface {
	Execute(transaction.Transaction) (*transaction.Receipt, error)
}

type NetworkHandlerAPI struct {
	storage   *storage.LevelDBBackend
	executor  Executor
	urlPrefix string
	version   string
	nodeInfo  NodeInfo
}

func NewNetworkHandlerAPI(st *storage.LevelDBBackend, executor Executor, urlPrefix string, nodeInfo NodeInfo) *NetworkHandlerAPI {
	return &NetworkHandlerAPI{
		storage:   st,
		executor:  executor,
		urlPrefix: urlPrefix,
		version:   APIVersionV1,
		nodeInfo:  nodeInfo,
	}
}

func (api NetworkHandlerAPI) HandlerURLPattern(pattern string) string {
	return fmt.Sprintf("%s/%s%s", api.urlPrefix, api.version, pattern)
}
