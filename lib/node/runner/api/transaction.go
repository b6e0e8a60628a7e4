package api

import (
	"encoding/json"
	"io/ioutil"
	"net/http"

	"github.com/gorilla/mux"

	"boscoin.io/pollchain/lib/errors"
	"boscoin.io/pollchain/lib/network/httputils"
	"boscoin.io/pollchain/lib/node/runner/api/resource"
	"boscoin.io/pollchain/lib/transaction"
)

// MaxTransactionBodySize limits the request body of `PostTransactionsHandler`.
const MaxTransactionBodySize int64 = 1 << 20

func (api NetworkHandlerAPI) PostTransactionsHandler(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	body, err := ioutil.ReadAll(http.MaxBytesReader(w, r.Body, MaxTransactionBodySize))
	if err != nil {
		httputils.WriteJSONError(w, errors.BadRequestParameter.Clone().SetData("error", err.Error()))
		return
	}

	var tx transaction.Transaction
	if err := json.Unmarshal(body, &tx); err != nil {
		if _, ok := err.(*errors.Error); ok {
			httputils.WriteJSONError(w, err)
			return
		}
		httputils.WriteJSONError(w, errors.BadRequestParameter.Clone().SetData("error", err.Error()))
		return
	}

	receipt, err := api.executor.Execute(tx)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	httputils.MustWriteJSON(w, http.StatusOK, resource.NewReceipt(receipt))
}

func (api NetworkHandlerAPI) GetTransactionByHashHandler(w http.ResponseWriter, r *http.Request) {
	hash := mux.Vars(r)["id"]

	receipt, err := transaction.GetReceipt(api.storage, hash)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	httputils.MustWriteJSON(w, http.StatusOK, resource.NewReceipt(receipt))
}
