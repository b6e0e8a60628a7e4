package httputils

import (
	"net/http"

	pkgerrors "github.com/pkg/errors"

	"boscoin.io/pollchain/lib/errors"
)

// IsEventStream checks request header accept is text/event-stream
func IsEventStream(r *http.Request) bool {
	return r.Header.Get("Accept") == "text/event-stream"
}

var (
	ErrorsToStatus = map[uint]int{
		errors.StorageCoreError.Code:          http.StatusInternalServerError,
		errors.StorageRecordDoesNotExist.Code: http.StatusNotFound,
		errors.RecordAlreadyExists.Code:       http.StatusConflict,
		errors.StorageBudgetExceeded.Code:     http.StatusBadRequest,

		errors.PollNotActive.Code:       http.StatusBadRequest,
		errors.UnauthorizedCreator.Code: http.StatusForbidden,
		errors.PollDoesNotExist.Code:    http.StatusNotFound,
		errors.BallotDoesNotExist.Code:  http.StatusNotFound,
		errors.InvalidDescription.Code:  http.StatusBadRequest,

		errors.TransactionAlreadyExists.Code: http.StatusConflict,
		errors.TransactionDoesNotExist.Code:  http.StatusNotFound,

		errors.HTTPServerError.Code: http.StatusInternalServerError,
		errors.NotImplemented.Code:  http.StatusNotImplemented,
	}
)

// StatusCode maps err to the http status of its response. Coded errors not
// listed in `ErrorsToStatus` are client errors.
func StatusCode(err error) int {
	e, ok := pkgerrors.Cause(err).(*errors.Error)
	if !ok {
		return http.StatusInternalServerError
	}

	if status, found := ErrorsToStatus[e.Code]; found {
		return status
	}
	if e.Code == 0 {
		return http.StatusInternalServerError
	}

	return http.StatusBadRequest
}
