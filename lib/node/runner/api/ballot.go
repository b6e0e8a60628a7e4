package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"boscoin.io/pollchain/lib/address"
	"boscoin.io/pollchain/lib/ballot"
	"boscoin.io/pollchain/lib/errors"
	"boscoin.io/pollchain/lib/network/httputils"
	"boscoin.io/pollchain/lib/node/runner/api/resource"
)

func (api NetworkHandlerAPI) GetBallotHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	addr := address.Address(id)
	if !addr.IsValid() {
		httputils.WriteJSONError(w, errors.BadRequestParameter.Clone().SetData("id", id))
		return
	}

	b, err := ballot.Get(api.storage, addr)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	httputils.MustWriteJSON(w, http.StatusOK, resource.NewBallot(b))
}
