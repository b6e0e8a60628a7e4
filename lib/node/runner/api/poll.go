package api

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"boscoin.io/pollchain/lib/address"
	"boscoin.io/pollchain/lib/ballot"
	"boscoin.io/pollchain/lib/common/keypair"
	"boscoin.io/pollchain/lib/common/observer"
	"boscoin.io/pollchain/lib/errors"
	"boscoin.io/pollchain/lib/network/httputils"
	"boscoin.io/pollchain/lib/node/runner/api/resource"
	"boscoin.io/pollchain/lib/poll"
)

// pollAddressFromVars accepts the numeric poll id or the poll address.
func pollAddressFromVars(r *http.Request) (address.Address, error) {
	id := mux.Vars(r)["id"]

	if n, err := strconv.ParseUint(id, 10, 64); err == nil {
		return address.PollAddress(n), nil
	}

	addr := address.Address(id)
	if !addr.IsValid() {
		return "", errors.BadRequestParameter.Clone().SetData("id", id)
	}

	return addr, nil
}

// GetPollsHandler lists polls in id order; with `creator` only the polls of
// the creator are listed.
func (api NetworkHandlerAPI) GetPollsHandler(w http.ResponseWriter, r *http.Request) {
	p, err := NewPageQuery(r)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	var iterFunc func() (*poll.Poll, []byte, bool)
	var closeFunc func()
	if creator := r.URL.Query().Get("creator"); creator != "" {
		if !keypair.IsPublicAddress(creator) {
			httputils.WriteJSONError(w, errors.BadRequestParameter.Clone().SetData("creator", creator))
			return
		}
		iterFunc, closeFunc = poll.GetPollsByCreator(api.storage, creator, p.ListOptions())
	} else {
		iterFunc, closeFunc = poll.GetPollsByID(api.storage, p.ListOptions())
	}
	defer closeFunc()

	var (
		rs                      []resource.Resource
		firstCursor, lastCursor []byte
	)
	for {
		o, cursor, hasNext := iterFunc()
		if !hasNext {
			break
		}
		if p.IsCursor(cursor) {
			continue
		}
		if uint64(len(rs)) >= p.Limit() {
			break
		}

		if firstCursor == nil {
			firstCursor = cursor
		}
		lastCursor = cursor
		rs = append(rs, resource.NewPoll(o))
	}

	httputils.MustWriteJSON(w, http.StatusOK, p.ResourceList(rs, firstCursor, lastCursor))
}

// GetPollHandler gives the poll; with `Accept: text/event-stream` it keeps
// streaming the poll whenever it is updated.
func (api NetworkHandlerAPI) GetPollHandler(w http.ResponseWriter, r *http.Request) {
	pollAddress, err := pollAddressFromVars(r)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	o, err := poll.Get(api.storage, pollAddress)

	if httputils.IsEventStream(r) {
		event := observer.NewCondition(observer.Poll, observer.Address, pollAddress.String()).String()
		es := NewEventStream(w, r, api.renderEventStream, DefaultContentType)
		if err == nil {
			es.Render(o)
		}
		es.Run(observer.ResourceObserver, event)
		return
	}

	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	httputils.MustWriteJSON(w, http.StatusOK, resource.NewPoll(o))
}

func (api NetworkHandlerAPI) GetPollBallotsHandler(w http.ResponseWriter, r *http.Request) {
	pollAddress, err := pollAddressFromVars(r)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	p, err := NewPageQuery(r)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	if exists, err := poll.Exists(api.storage, pollAddress); err != nil {
		httputils.WriteJSONError(w, err)
		return
	} else if !exists {
		httputils.WriteJSONError(w, errors.PollDoesNotExist.Clone().SetData("poll", pollAddress))
		return
	}

	iterFunc, closeFunc := ballot.GetBallotsByPoll(api.storage, pollAddress, p.ListOptions())
	defer closeFunc()

	var (
		rs                      []resource.Resource
		firstCursor, lastCursor []byte
	)
	for {
		o, cursor, hasNext := iterFunc()
		if !hasNext {
			break
		}
		if p.IsCursor(cursor) {
			continue
		}
		if uint64(len(rs)) >= p.Limit() {
			break
		}

		if firstCursor == nil {
			firstCursor = cursor
		}
		lastCursor = cursor
		rs = append(rs, resource.NewBallot(o))
	}

	httputils.MustWriteJSON(w, http.StatusOK, p.ResourceList(rs, firstCursor, lastCursor))
}
