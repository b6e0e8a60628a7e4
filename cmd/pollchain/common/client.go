package common

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"boscoin.io/pollchain/lib/client"
	"boscoin.io/pollchain/lib/common"
	"boscoin.io/pollchain/lib/common/keypair"
)

const DefaultEndpoint = "http://127.0.0.1:12345"

// ClientFlags are shared by the commands talking to a node.
type ClientFlags struct {
	Endpoint   string
	NetworkID  string
	SecretSeed string
	Format     string
	Timeout    time.Duration
	NoRetry    bool
}

func NewClientFlags() *ClientFlags {
	return &ClientFlags{
		Endpoint:   common.GetENVValue("POLLCHAIN_ENDPOINT", DefaultEndpoint),
		NetworkID:  common.GetENVValue("POLLCHAIN_NETWORK_ID", ""),
		SecretSeed: common.GetENVValue("POLLCHAIN_SECRET_SEED", ""),
		Format:     "prettyjson",
		Timeout:    10 * time.Second,
	}
}

// Add registers the flags to c; withSigner adds the flags needed to sign
// transactions.
func (f *ClientFlags) Add(c *cobra.Command, withSigner bool) {
	c.Flags().StringVar(&f.Endpoint, "endpoint", f.Endpoint, "endpoint of the node")
	c.Flags().StringVar(&f.Format, "format", f.Format, "output format, "+FormatNames(DefaultEncodes))
	c.Flags().DurationVar(&f.Timeout, "timeout", f.Timeout, "request timeout")
	c.Flags().BoolVar(&f.NoRetry, "no-retry", f.NoRetry, "do not retry the failed requests")

	if withSigner {
		c.Flags().StringVar(&f.NetworkID, "network-id", f.NetworkID, "network id")
		c.Flags().StringVar(&f.SecretSeed, "secret-seed", f.SecretSeed, "secret seed of the signer")
	}
}

// Client gives the client of the endpoint; timeout zero is for the streams.
func (f *ClientFlags) Client(timeout time.Duration) (*client.Client, error) {
	if _, err := common.ParseEndpoint(f.Endpoint); err != nil {
		return nil, err
	}

	var retry *common.RetrySetting
	if !f.NoRetry {
		r := client.DefaultRetrySetting
		retry = &r
	}

	return client.NewClient(f.Endpoint, timeout, retry)
}

// Signer parses the secret seed and checks the network id is given.
func (f *ClientFlags) Signer() (flagName string, kp *keypair.Full, err error) {
	if len(f.NetworkID) < 1 {
		return "--network-id", nil, fmt.Errorf("--network-id must be given")
	}
	if len(f.SecretSeed) < 1 {
		return "--secret-seed", nil, fmt.Errorf("--secret-seed must be given")
	}

	parsed, err := keypair.Parse(f.SecretSeed)
	if err != nil {
		return "--secret-seed", nil, err
	}

	var ok bool
	if kp, ok = parsed.(*keypair.Full); !ok {
		return "--secret-seed", nil, fmt.Errorf("public address is given, not secret seed")
	}

	return "", kp, nil
}

// Encoder gives the encoder of the `--format` flag.
func (f *ClientFlags) Encoder() (Encode, error) {
	encode, ok := DefaultEncodes[f.Format]
	if !ok {
		return nil, fmt.Errorf("%q not recognized", f.Format)
	}
	return encode, nil
}

func (f *ClientFlags) Print(v interface{}, w io.Writer) error {
	encode, err := f.Encoder()
	if err != nil {
		return err
	}
	return encode(v, w)
}
