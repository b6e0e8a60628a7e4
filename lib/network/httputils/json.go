package httputils

import (
	"encoding/json"
	"net/http"

	"github.com/nvellon/hal"
	pkgerrors "github.com/pkg/errors"
)

type HALResource interface {
	Resource() *hal.Resource
}

// WriteJSON writes the value v to the http response as json encoding
func WriteJSON(w http.ResponseWriter, code int, v interface{}) error {
	if h, ok := v.(HALResource); ok {
		w.Header().Set("Content-Type", "application/hal+json")
		v = h.Resource()
	} else if e, ok := v.(error); ok {
		w.Header().Set("Content-Type", "application/problem+json")
		v = NewErrorProblem(pkgerrors.Cause(e), code)
	} else if _, ok := v.(Problem); ok {
		w.Header().Set("Content-Type", "application/problem+json")
	} else {
		w.Header().Set("Content-Type", "application/json")
	}

	bs, err := json.Marshal(v)
	if err != nil {
		return err
	}

	w.WriteHeader(code)

	if _, err := w.Write(bs); err != nil {
		return err
	}

	return nil
}

// MustWriteJSON writes v and panics when it can not be encoded; the
// recover middleware turns the panic into a problem response.
func MustWriteJSON(w http.ResponseWriter, code int, v interface{}) {
	if err := WriteJSON(w, code, v); err != nil {
		panic(err)
	}
}

// WriteJSONError writes err as a problem with the status of `StatusCode`.
func WriteJSONError(w http.ResponseWriter, err error) {
	code := StatusCode(err)
	if e := WriteJSON(w, code, err); e != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
