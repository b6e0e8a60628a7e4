package api

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"strings"

	"github.com/GianlucaGuarini/go-observable"

	"boscoin.io/pollchain/lib/ballot"
	"boscoin.io/pollchain/lib/common/observer"
	"boscoin.io/pollchain/lib/errors"
	"boscoin.io/pollchain/lib/network/httputils"
	"boscoin.io/pollchain/lib/node/runner/api/resource"
	"boscoin.io/pollchain/lib/poll"
	"boscoin.io/pollchain/lib/transaction"
)

// DefaultContentType is "application/json"
const DefaultContentType = "application/json"

// PostSubscribeHandler streams the resources matching any of the posted
// conditions, like
// `[[{"resource": "poll", "key": "address", "value": "<address>"}]]`.
func (api NetworkHandlerAPI) PostSubscribeHandler(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	if !httputils.IsEventStream(r) {
		httputils.WriteJSONError(w, errors.BadRequestParameter.Clone().SetData("accept", r.Header.Get("Accept")))
		return
	}

	body, err := ioutil.ReadAll(r.Body)
	if err != nil {
		httputils.WriteJSONError(w, errors.BadRequestParameter)
		return
	}
	var requestParams []observer.Conditions
	if err := json.Unmarshal(body, &requestParams); err != nil {
		httputils.WriteJSONError(w, errors.BadRequestParameter.Clone().SetData("error", err.Error()))
		return
	}

	var events []string
	for _, conditions := range requestParams {
		if len(conditions) < 1 {
			continue
		}
		events = append(events, conditions.Event())
	}
	if len(events) < 1 {
		httputils.WriteJSONError(w, errors.BadRequestParameter.Clone().SetData("error", "empty conditions"))
		return
	}

	es := NewEventStream(w, r, api.renderEventStream, DefaultContentType)
	es.Render(nil)
	es.Run(observer.ResourceObserver, events...)
}

// renderEventStream renders the records of the ledger as their HAL
// resources.
func (api NetworkHandlerAPI) renderEventStream(args ...interface{}) ([]byte, error) {
	if len(args) <= 1 {
		return nil, fmt.Errorf("render: value is empty")
	}
	i := args[1]

	if i == nil {
		return []byte{}, nil
	}

	switch v := i.(type) {
	case *poll.Poll:
		return json.Marshal(resource.NewPoll(v).Resource())
	case *ballot.Ballot:
		return json.Marshal(resource.NewBallot(v).Resource())
	case *transaction.Receipt:
		return json.Marshal(resource.NewReceipt(v).Resource())
	}

	return json.Marshal(i)
}

// EventStream handles chunked responses of a observable trigger
//
// renderFunc uses on observable.On() and Render function
type EventStream struct {
	contentType string
	renderFunc  RenderFunc
	request     *http.Request
	writer      http.ResponseWriter
	flusher     http.Flusher
	err         error
	rendered    bool
	stop        chan struct{}
}

type RenderFunc func(args ...interface{}) ([]byte, error)

// NewEventStream makes *EventStream and checks http.Flusher by type assertion.
func NewEventStream(w http.ResponseWriter, r *http.Request, renderFunc RenderFunc, ct string) *EventStream {
	es := &EventStream{
		request:     r,
		writer:      w,
		renderFunc:  renderFunc,
		contentType: ct,
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		es.err = fmt.Errorf("http: can't do chunked response ")
	} else {
		es.flusher = flusher
	}

	return es
}

// Render make a chunked response by using RenderFunc and flush it.
func (s *EventStream) Render(args ...interface{}) {
	if s.err != nil {
		return
	}

	var bs []byte
	var renderArgs []interface{}
	renderArgs = append(renderArgs, "pre")
	renderArgs = append(renderArgs, args...)
	if payload, err := s.renderFunc(renderArgs...); err != nil {
		bs = s.errMessage(err)
	} else {
		bs = payload
	}

	if !s.rendered {
		s.writer.Header().Set("Content-Type", s.contentType)
		s.rendered = true
	}

	fmt.Fprintf(s.writer, "%s\n", bs)
	s.flusher.Flush()
}

// Run start observing events.
//
// Simple use case:
//
// 	event := observer.NewCondition(observer.Poll, observer.Address, address).String()
// 	es := NewEventStream(w, r, api.renderEventStream, DefaultContentType)
// 	es.Render(p)
// 	es.Run(observer.ResourceObserver, event)
func (s *EventStream) Run(ob *observable.Observable, events ...string) {
	s.Start(ob, events...)()
}

// Start prepares for observing events and returns run func.
//
// In most case, Use Run instead of Start
func (s *EventStream) Start(ob *observable.Observable, events ...string) func() {
	if s.err != nil {
		http.Error(s.writer, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return func() {}
	}

	if !s.rendered {
		s.writer.Header().Set("Content-Type", s.contentType)
		s.writer.WriteHeader(http.StatusOK)
		s.flusher.Flush()
		s.rendered = true
	}

	event := strings.Join(events, " ")
	msg := make(chan []byte)
	s.stop = make(chan struct{})

	onFunc := func(args ...interface{}) {
		var (
			payload []byte
			err     error
		)

		if len(args) > 1 {
			payload, err = s.renderFunc(args...)
		} else {
			var as []interface{}
			as = append(as, event)
			as = append(as, args...)
			payload, err = s.renderFunc(as...)
		}

		if err != nil {
			payload = s.errMessage(err)
		}
		select {
		case msg <- payload:
		case <-s.stop:
			return
		}
	}
	ob.On(event, onFunc)

	return func() {
		defer ob.Off(event, onFunc)

		for {
			select {
			case payload := <-msg:
				fmt.Fprintf(s.writer, "%s\n", payload)
				s.flusher.Flush()
			case <-s.request.Context().Done():
				close(s.stop)
				return
			}
		}
	}
}
func (s *EventStream) errMessage(err error) []byte {
	p := httputils.NewErrorProblem(err, httputils.StatusCode(err))
	b, err := json.Marshal(p)
	if err != nil {
		b = []byte{}
	}
	return b
}
