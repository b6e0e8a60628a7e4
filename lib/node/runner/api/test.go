package api

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/gorilla/mux"

	"boscoin.io/pollchain/lib/common"
	"boscoin.io/pollchain/lib/storage"
	"boscoin.io/pollchain/lib/transaction"
)

var networkID []byte = []byte("pollchain-test-network")

// testExecutor stores the receipt of every transaction without applying the
// operations; err is returned instead when set.
type testExecutor struct {
	sync.Mutex
	st  *storage.LevelDBBackend
	err error
	txs []transaction.Transaction
}

func (e *testExecutor) Execute(tx transaction.Transaction) (*transaction.Receipt, error) {
	e.Lock()
	defer e.Unlock()

	if e.err != nil {
		return nil, e.err
	}

	receipt := transaction.NewReceipt(tx, common.NowISO8601())
	if err := receipt.Save(e.st); err != nil {
		return nil, err
	}
	e.txs = append(e.txs, tx)

	return receipt, nil
}

func prepareAPIServer() (*httptest.Server, *storage.LevelDBBackend, *testExecutor) {
	st := storage.NewTestStorage()
	executor := &testExecutor{st: st}

	conf := common.NewTestConfig()
	apiHandler := NewNetworkHandlerAPI(st, executor, "", NewNodeInfo("showme", common.MustParseEndpoint("http://localhost:12001"), conf))

	router := mux.NewRouter()
	router.HandleFunc(PostTransactionPattern, apiHandler.PostTransactionsHandler).Methods("POST").MatcherFunc(common.PostAndJSONMatcher)
	router.HandleFunc(GetTransactionByHashHandlerPattern, apiHandler.GetTransactionByHashHandler).Methods("GET")
	router.HandleFunc(GetPollsHandlerPattern, apiHandler.GetPollsHandler).Methods("GET")
	router.HandleFunc(GetPollHandlerPattern, apiHandler.GetPollHandler).Methods("GET")
	router.HandleFunc(GetPollBallotsHandlerPattern, apiHandler.GetPollBallotsHandler).Methods("GET")
	router.HandleFunc(GetBallotHandlerPattern, apiHandler.GetBallotHandler).Methods("GET")
	router.HandleFunc(PostSubscribePattern, apiHandler.PostSubscribeHandler).Methods("POST")
	router.HandleFunc(GetNodeInfoPattern, apiHandler.GetNodeInfoHandler).Methods("GET")

	return httptest.NewServer(router), st, executor
}

func request(ts *httptest.Server, url string, streaming bool) (*http.Response, error) {
	req, err := http.NewRequest("GET", ts.URL+url, nil)
	if err != nil {
		return nil, err
	}
	if streaming {
		req.Header.Set("Accept", "text/event-stream")
	}
	return ts.Client().Do(req)
}

func post(ts *httptest.Server, url string, body []byte, streaming bool) (*http.Response, error) {
	req, err := http.NewRequest("POST", ts.URL+url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if streaming {
		req.Header.Set("Accept", "text/event-stream")
	}
	return ts.Client().Do(req)
}

func readAll(r io.Reader) []byte {
	var b bytes.Buffer
	b.ReadFrom(r)
	return b.Bytes()
}
