package client

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	neturl "net/url"
	"strings"
	"time"

	"github.com/sethgrid/pester"

	"boscoin.io/pollchain/lib/common"
	"boscoin.io/pollchain/lib/common/observer"
	"boscoin.io/pollchain/lib/transaction"
)

const (
	UrlPrefixForAPIV1 = "/api/v1"

	UrlTransactions      = "/transactions"
	UrlTransactionByHash = "/transactions/{id}"
	UrlPolls             = "/polls"
	UrlPoll              = "/polls/{id}"
	UrlPollBallots       = "/polls/{id}/ballots"
	UrlBallot            = "/ballots/{id}"
	UrlSubscribe         = "/subscribe"
)

// DefaultRetrySetting retries the requests failed by the transport or by
// the server errors; rejected transactions are never retried.
var DefaultRetrySetting = common.RetrySetting{
	MaxRetries:  3,
	Concurrency: 1,
	Backoff:     pester.ExponentialBackoff,
}

type QueryKey string

func (qk QueryKey) String() string {
	return string(qk)
}

const (
	QueryLimit   QueryKey = "limit"
	QueryReverse QueryKey = "reverse"
	QueryCursor  QueryKey = "cursor"
	QueryCreator QueryKey = "creator"
)

type Q struct {
	Key   QueryKey
	Value string
}

type Queries []Q

func (qs Queries) toQueryString() string {
	urlValues := neturl.Values{}
	if len(qs) == 0 {
		return ""
	}
	for _, q := range qs {
		switch q.Key {
		case QueryLimit, QueryReverse, QueryCursor, QueryCreator:
			urlValues.Add(q.Key.String(), q.Value)
		}
	}
	return "?" + urlValues.Encode()
}

type Client struct {
	URL string

	HTTP *common.HTTP2Client
}

// NewClient connects to the node at url, like "https://localhost:12345".
// retrySetting may be nil to disable retries.
func NewClient(url string, timeout time.Duration, retrySetting *common.RetrySetting) (*Client, error) {
	httpClient, err := common.NewPersistentHTTP2Client(timeout, 0, true, retrySetting)
	if err != nil {
		return nil, err
	}
	return &Client{
		URL:  strings.TrimSuffix(url, "/"),
		HTTP: httpClient,
	}, nil
}

func (c *Client) Close() {
	c.HTTP.Close()
}

func (c *Client) toResponse(resp *http.Response, response interface{}) (err error) {
	defer resp.Body.Close()
	decoder := json.NewDecoder(resp.Body)

	if !(resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices) {
		var p Problem
		if err = decoder.Decode(&p); err != nil {
			return fmt.Errorf("unexpected response: %s", resp.Status)
		}
		if p.Status == 0 {
			p.Status = resp.StatusCode
		}
		return Error{Problem: p}
	}

	return decoder.Decode(response)
}

func (c *Client) Get(path string, headers http.Header) (response *http.Response, err error) {
	url := c.URL + UrlPrefixForAPIV1 + path
	return c.HTTP.Get(url, headers)
}

func (c *Client) Post(path string, body []byte, headers http.Header) (response *http.Response, err error) {
	url := c.URL + UrlPrefixForAPIV1 + path
	return c.HTTP.Post(url, body, headers)
}

func (c *Client) load(path string, response interface{}) error {
	headers := http.Header{}
	headers.Set("Accept", "application/json")
	resp, err := c.Get(path, headers)
	if err != nil {
		return err
	}
	return c.toResponse(resp, response)
}

// LoadNodeInfo reads the node information served at the root.
func (c *Client) LoadNodeInfo() (info NodeInfo, err error) {
	var resp *http.Response
	if resp, err = c.HTTP.Get(c.URL+"/", http.Header{}); err != nil {
		return
	}
	err = c.toResponse(resp, &info)
	return
}

// LoadPoll finds the poll by the numeric id or by the address.
func (c *Client) LoadPoll(id string) (poll Poll, err error) {
	err = c.load(strings.Replace(UrlPoll, "{id}", id, -1), &poll)
	return
}

func (c *Client) LoadPolls(queries ...Q) (page PollsPage, err error) {
	err = c.load(UrlPolls+Queries(queries).toQueryString(), &page)
	return
}

func (c *Client) LoadPollBallots(id string, queries ...Q) (page BallotsPage, err error) {
	url := strings.Replace(UrlPollBallots, "{id}", id, -1)
	err = c.load(url+Queries(queries).toQueryString(), &page)
	return
}

func (c *Client) LoadBallot(address string) (ballot Ballot, err error) {
	err = c.load(strings.Replace(UrlBallot, "{id}", address, -1), &ballot)
	return
}

func (c *Client) LoadTransaction(hash string) (receipt Receipt, err error) {
	err = c.load(strings.Replace(UrlTransactionByHash, "{id}", hash, -1), &receipt)
	return
}

// SubmitTransaction posts the signed transaction and returns the receipt
// once it is applied.
func (c *Client) SubmitTransaction(tx transaction.Transaction) (receipt Receipt, err error) {
	var body []byte
	if body, err = tx.Serialize(); err != nil {
		return
	}

	headers := http.Header{}
	headers.Set("Content-Type", "application/json")

	var resp *http.Response
	if resp, err = c.Post(UrlTransactions, body, headers); err != nil {
		return
	}
	err = c.toResponse(resp, &receipt)
	return
}

// Stream calls handler with every line of the event stream until ctx is
// done or the connection is lost. Empty lines are skipped.
func (c *Client) Stream(ctx context.Context, method, path string, body []byte, handler func(data []byte) error) (err error) {
	req, err := http.NewRequest(method, c.URL+UrlPrefixForAPIV1+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "text/event-stream")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTP.Do(req.WithContext(ctx))
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.toResponse(resp, nil)
	}

	reader := bufio.NewReader(resp.Body)
	for {
		line, err := reader.ReadBytes('\n')
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}

		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		if err = handler(line); err != nil {
			return err
		}
	}
}

// StreamPoll calls handler with the current poll and with every update of
// it.
func (c *Client) StreamPoll(ctx context.Context, id string, handler func(Poll)) error {
	url := strings.Replace(UrlPoll, "{id}", id, -1)
	return c.Stream(ctx, "GET", url, nil, func(b []byte) error {
		var v Poll
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		handler(v)
		return nil
	})
}

// Subscribe streams the raw resources matching any of the conditions.
func (c *Client) Subscribe(ctx context.Context, handler func([]byte) error, conditions ...observer.Conditions) error {
	body, err := json.Marshal(conditions)
	if err != nil {
		return err
	}
	return c.Stream(ctx, "POST", UrlSubscribe, body, handler)
}
