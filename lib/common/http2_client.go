package common

import (
	"bytes"
	"crypto/tls"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/sethgrid/pester"
	"golang.org/x/net/http2"
)

type HttpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

type BackoffStrategy = pester.BackoffStrategy

// RetrySetting configures the pester client; failed connections and 5xx
// responses are retried, other responses are returned as they are.
type RetrySetting struct {
	MaxRetries  int
	Concurrency int
	Backoff     BackoffStrategy
}

type HTTP2Client struct {
	doer      HttpDoer
	client    http.Client
	transport *http.Transport
}

// NewHTTP2Client makes the client for the node api. With keepAlive the
// connection is reused and the response body is not bound by timeout, so
// event streams can stay open; timeout then limits only the time to the
// response header.
func NewHTTP2Client(timeout, idleTimeout time.Duration, keepAlive bool) (client *HTTP2Client, err error) {
	transport := &http.Transport{
		// nodes usually run with the self-signed certificate of `pollchain tls`
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: true,
		},
		IdleConnTimeout:   idleTimeout,
		DisableKeepAlives: !keepAlive,
		DialContext: (&net.Dialer{
			Timeout:   3 * time.Second,
			KeepAlive: 1 * time.Second,
			DualStack: true,
		}).DialContext,
	}

	clientTimeout := timeout
	if keepAlive {
		transport.IdleConnTimeout = 0
		transport.ResponseHeaderTimeout = timeout
		clientTimeout = 0
	}

	if err = http2.ConfigureTransport(transport); err != nil {
		return
	}

	client = &HTTP2Client{
		client: http.Client{
			Transport: transport,
			Timeout:   clientTimeout,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		transport: transport,
	}
	client.doer = &client.client

	return
}

// NewPersistentHTTP2Client wraps the keep-alive client by pester when
// retrySetting is given.
func NewPersistentHTTP2Client(timeout, idleTimeout time.Duration, keepAlive bool, retrySetting *RetrySetting) (client *HTTP2Client, err error) {
	if client, err = NewHTTP2Client(timeout, idleTimeout, keepAlive); err != nil {
		return nil, err
	}

	if retrySetting == nil {
		return
	}

	ec := pester.NewExtendedClient(&client.client)
	ec.MaxRetries = retrySetting.MaxRetries
	ec.Concurrency = retrySetting.Concurrency
	ec.Backoff = retrySetting.Backoff
	client.doer = ec

	return
}

func (c *HTTP2Client) Close() {
	c.transport.CloseIdleConnections()
}

func (c *HTTP2Client) newRequest(method, url string, body io.Reader, headers http.Header) (*http.Request, error) {
	request, err := http.NewRequest(method, url, body)
	if err != nil {
		return nil, err
	}
	for k, v := range headers {
		request.Header[k] = v
	}

	return request, nil
}

func (c *HTTP2Client) Get(url string, headers http.Header) (*http.Response, error) {
	request, err := c.newRequest("GET", url, nil, headers)
	if err != nil {
		return nil, err
	}

	return c.Do(request)
}

func (c *HTTP2Client) Post(url string, b []byte, headers http.Header) (*http.Response, error) {
	request, err := c.newRequest("POST", url, bytes.NewReader(b), headers)
	if err != nil {
		return nil, err
	}

	return c.Do(request)
}

// Do is same with `http.Client.Do`, but goes through the retrying client
// if it is set.
func (c *HTTP2Client) Do(req *http.Request) (*http.Response, error) {
	return c.doer.Do(req)
}
