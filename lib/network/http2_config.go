package network

import (
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"

	"boscoin.io/pollchain/lib/common"
)

type HTTP2NetworkConfig struct {
	NodeName string
	Endpoint *common.Endpoint
	Addr     string

	ReadTimeout,
	ReadHeaderTimeout,
	WriteTimeout,
	IdleTimeout time.Duration

	TLSCertFile,
	TLSKeyFile string
}

func parseTimeout(query url.Values, key string) (time.Duration, error) {
	d, err := time.ParseDuration(common.GetUrlQuery(query, key, "0s"))
	if err != nil {
		return 0, errors.Wrapf(err, "invalid '%s'", key)
	}
	if d < 0 {
		return 0, errors.Errorf("invalid '%s'", key)
	}
	return d, nil
}

// NewHTTP2NetworkConfigFromEndpoint reads the server settings from the query
// of the bind endpoint, like
// `https://0.0.0.0:12001?TLSCertFile=a.crt&TLSKeyFile=a.key&ReadTimeout=5s`.
func NewHTTP2NetworkConfigFromEndpoint(nodeName string, endpoint *common.Endpoint) (config *HTTP2NetworkConfig, err error) {
	query := endpoint.Query()

	config = &HTTP2NetworkConfig{
		NodeName: nodeName,
		Endpoint: endpoint,
		Addr:     endpoint.Host,
	}

	if config.ReadTimeout, err = parseTimeout(query, "ReadTimeout"); err != nil {
		return nil, err
	}
	if config.ReadHeaderTimeout, err = parseTimeout(query, "ReadHeaderTimeout"); err != nil {
		return nil, err
	}
	if config.WriteTimeout, err = parseTimeout(query, "WriteTimeout"); err != nil {
		return nil, err
	}
	if config.IdleTimeout, err = parseTimeout(query, "IdleTimeout"); err != nil {
		return nil, err
	}

	config.TLSCertFile = query.Get("TLSCertFile")
	config.TLSKeyFile = query.Get("TLSKeyFile")

	if strings.ToLower(endpoint.Scheme) == "https" && !config.IsHTTPS() {
		return nil, errors.New("HTTPS needs `TLSCertFile` and `TLSKeyFile`")
	}

	return config, nil
}

func (config HTTP2NetworkConfig) IsHTTPS() bool {
	return len(config.TLSCertFile) > 0 && len(config.TLSKeyFile) > 0
}

func (config HTTP2NetworkConfig) String() string {
	return string(common.MustMarshalJSON(config))
}
