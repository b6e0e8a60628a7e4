package metrics

import (
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/require"
)

func TestPrometheusMetrics(t *testing.T) {
	InitPrometheusMetrics()
	InitPrometheusMetrics()

	SetVersion([]byte("pollchain-unittest"))
	Program.Transactions.With("result", ProgramResultSuccess).Add(1)
	Program.Votes.With("option", "yes").Add(2)
	Program.PollsCreated.Add(1)
	API.Observe("/api/v1/polls", "GET", 200, time.Millisecond)
	API.Observe("/api/v1/polls/{id}", "GET", 404, time.Millisecond)

	ts := httptest.NewServer(promhttp.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	b, err := ioutil.ReadAll(resp.Body)
	require.NoError(t, err)

	body := string(b)
	require.Contains(t, body, `pollchain_program_transactions_total{result="success"} 1`)
	require.Contains(t, body, `pollchain_program_votes_total{option="yes"} 2`)
	require.Contains(t, body, `pollchain_program_polls_created_total 1`)
	require.Contains(t, body, `pollchain_api_requests_total{endpoint="/api/v1/polls",method="GET",status="200"} 1`)
	require.Contains(t, body, `pollchain_api_request_errors_total{endpoint="/api/v1/polls/{id}",method="GET",status="404"} 1`)
	require.NotContains(t, body, `pollchain_api_request_errors_total{endpoint="/api/v1/polls",`)
	require.Contains(t, body, `pollchain_api_request_duration_seconds_count{endpoint="/api/v1/polls",method="GET",status="200"} 1`)
	require.Contains(t, body, `network_id="pollchain-unittest"`)
}

func TestNopMetrics(t *testing.T) {
	m := NopProgramMetrics()
	m.Transactions.With("result", ProgramResultFailure).Add(1)
	m.ExecutionSeconds.Observe(0.1)

	NopAPIMetrics().Observe("/polls", "GET", 200, time.Millisecond)
}
