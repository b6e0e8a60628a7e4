package api

import (
	"bufio"
	"bytes"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"boscoin.io/pollchain/lib/ballot"
	"boscoin.io/pollchain/lib/common"
	"boscoin.io/pollchain/lib/common/keypair"
	"boscoin.io/pollchain/lib/common/observer"
)

// triggerUntil keeps triggering event until done is closed; the stream
// may subscribe after the first trigger.
func triggerUntil(done chan struct{}, event string, v interface{}) {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			observer.ResourceObserver.Trigger(event, v)
		}
	}
}

func readLine(t *testing.T, reader *bufio.Reader) map[string]interface{} {
	for {
		line, err := reader.ReadBytes('\n')
		require.NoError(t, err)
		line = bytes.TrimSpace(line)
		if len(line) < 1 {
			continue
		}

		var m map[string]interface{}
		require.NoError(t, json.Unmarshal(line, &m))
		return m
	}
}

func TestGetPollStream(t *testing.T) {
	ts, st, _ := prepareAPIServer()
	defer st.Close()
	defer ts.Close()

	p := makePolls(t, st, 1)[0]

	resp, err := request(ts, "/polls/0", true)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, DefaultContentType, resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)

	m := readLine(t, reader)
	require.Equal(t, float64(0), m["yes_votes"])

	_, updated, err := ballot.Cast(st, p.Address, keypair.Random().Address(), true)
	require.NoError(t, err)

	done := make(chan struct{})
	defer close(done)
	go triggerUntil(done, observer.NewCondition(observer.Poll, observer.Address, p.Address.String()).String(), updated)

	m = readLine(t, reader)
	require.Equal(t, float64(1), m["yes_votes"])
	require.Equal(t, p.Address.String(), m["address"])
}

func TestPostSubscribeHandler(t *testing.T) {
	ts, st, _ := prepareAPIServer()
	defer st.Close()
	defer ts.Close()

	p := makePolls(t, st, 1)[0]
	voter := keypair.Random().Address()

	conditions := []observer.Conditions{
		observer.NewConditions(observer.NewCondition(observer.Ballot, observer.Voter, voter)),
	}

	resp, err := post(ts, PostSubscribePattern, common.MustMarshalJSON(conditions), true)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	reader := bufio.NewReader(resp.Body)

	b, _, err := ballot.Cast(st, p.Address, voter, false)
	require.NoError(t, err)

	done := make(chan struct{})
	defer close(done)
	go triggerUntil(done, observer.NewCondition(observer.Ballot, observer.Voter, voter).String(), b)

	m := readLine(t, reader)
	require.Equal(t, voter, m["voter"])
	require.Equal(t, false, m["option"])

	{ // without event stream accept
		resp, err := post(ts, PostSubscribePattern, common.MustMarshalJSON(conditions), false)
		require.NoError(t, err)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		resp.Body.Close()
	}
}
