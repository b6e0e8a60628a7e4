package cmd

import (
	"bytes"
	"encoding/json"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/ulule/limiter"

	"boscoin.io/pollchain/cmd/pollchain/common"
	"boscoin.io/pollchain/lib/address"
	libcommon "boscoin.io/pollchain/lib/common"
	"boscoin.io/pollchain/lib/version"
)

func resetNodeFlags() {
	flagName = ""
	flagNetworkID = "pollchain-test-network"
	flagBindURL = "http://0.0.0.0:12345"
	flagStorageConfigString = "memory://"
	flagTLSCertFile = ""
	flagTLSKeyFile = ""
	flagLogLevel = "error"
	flagLogFormat = ""
	flagLogOutput = ""
	flagNTPSyncInterval = "10m"
	flagRateLimitAPI = nil
	flagOperationsLimit = "100"
	flagHTTPCacheAdapter = libcommon.HTTPCacheMemoryAdapterName
	flagHTTPCachePoolSize = "100"
	flagHTTPCacheRedisAddrs = nil
	flagHTTPCacheExpire = "0"
	flagDebugPProf = false
}

func TestParseFlagsNode(t *testing.T) {
	resetNodeFlags()

	name, err := parseFlagsNode()
	require.NoError(t, err)
	require.Empty(t, name)

	require.Equal(t, "0.0.0.0:12345", flagName)
	require.Equal(t, "3s", bindEndpoint.Query().Get("IdleTimeout"))
	require.Equal(t, []byte("pollchain-test-network"), nodeConfig.NetworkID)
	require.Equal(t, 100, nodeConfig.OpsLimit)
	require.Equal(t, libcommon.RateLimitAPI, nodeConfig.RateLimitRuleAPI.Default)
	require.Equal(t, 10*time.Minute, ntpSyncInterval)
	require.Equal(t, time.Duration(0), nodeConfig.HTTPCacheExpire)
	require.Equal(t, "memory", storageConfig.Scheme)
}

func TestParseFlagsNodeErrors(t *testing.T) {
	cases := []struct {
		flag  string
		apply func()
	}{
		{"--network-id", func() { flagNetworkID = "" }},
		{"--bind", func() { flagBindURL = "http://[::1" }},
		{"--tls-cert", func() { flagBindURL = "https://0.0.0.0:12345" }},
		{"--ops-limit", func() { flagOperationsLimit = "0" }},
		{"--ops-limit", func() { flagOperationsLimit = "many" }},
		{"--rate-limit-api", func() { flagRateLimitAPI = common.ListFlags{"fast"} }},
		{"--http-cache-adapter", func() { flagHTTPCacheAdapter = "disk" }},
		{"--http-cache-redis-addrs", func() { flagHTTPCacheAdapter = libcommon.HTTPCacheRedisAdapterName }},
		{"--http-cache-expire", func() { flagHTTPCacheExpire = "soon" }},
		{"--http-cache-expire", func() { flagHTTPCacheExpire = "-1m" }},
		{"--ntp-sync-interval", func() { flagNTPSyncInterval = "-1s" }},
		{"--log-level", func() { flagLogLevel = "loud" }},
		{"--log-format", func() { flagLogFormat = "xml" }},
	}

	for _, c := range cases {
		resetNodeFlags()
		c.apply()

		name, err := parseFlagsNode()
		require.Error(t, err, c.flag)
		require.Equal(t, c.flag, name)
	}
}

func TestParseFlagRateLimit(t *testing.T) {
	{ // default only
		rule, err := parseFlagRateLimit(nil, libcommon.RateLimitAPI)
		require.NoError(t, err)
		require.Equal(t, libcommon.RateLimitAPI, rule.Default)
		require.Empty(t, rule.ByIPAddress)
	}

	{
		rule, err := parseFlagRateLimit(common.ListFlags{"10-S", "1.2.3.4=1000-M"}, libcommon.RateLimitAPI)
		require.NoError(t, err)
		require.Equal(t, limiter.Rate{Formatted: "10-S", Period: time.Second, Limit: 10}, rule.Default)
		require.Equal(t, int64(1000), rule.ByIPAddress["1.2.3.4"].Limit)
		require.Equal(t, time.Minute, rule.ByIPAddress["1.2.3.4"].Period)
	}

	{ // invalid ip
		_, err := parseFlagRateLimit(common.ListFlags{"localhost=10-S"}, libcommon.RateLimitAPI)
		require.Error(t, err)
	}
}

func TestParseFlagRedisAddrs(t *testing.T) {
	addrs, err := parseFlagRedisAddrs(common.ListFlags{"a=127.0.0.1:6379 b=127.0.0.1:6380", "c=redis:6379"})
	require.NoError(t, err)
	require.Equal(t, map[string]string{
		"a": "127.0.0.1:6379",
		"b": "127.0.0.1:6380",
		"c": "redis:6379",
	}, addrs)

	for _, s := range []string{"127.0.0.1:6379", "=127.0.0.1:6379", "a="} {
		_, err := parseFlagRedisAddrs(common.ListFlags{s})
		require.Error(t, err, s)
	}
}

func TestParseBallotAddress(t *testing.T) {
	pollAddress := address.PollAddress(1)
	ballotAddress := address.BallotAddress(pollAddress, "voter")

	{
		name, addr, err := parseBallotAddress([]string{ballotAddress.String()})
		require.NoError(t, err)
		require.Empty(t, name)
		require.Equal(t, ballotAddress, addr)
	}
	{
		_, addr, err := parseBallotAddress([]string{"1", "voter"})
		require.NoError(t, err)
		require.Equal(t, ballotAddress, addr)
	}
	{
		_, addr, err := parseBallotAddress([]string{pollAddress.String(), "voter"})
		require.NoError(t, err)
		require.Equal(t, ballotAddress, addr)
	}
	{
		name, _, err := parseBallotAddress([]string{"showme"})
		require.Error(t, err)
		require.Equal(t, "<ballot address>", name)
	}
	{
		name, _, err := parseBallotAddress([]string{"showme", "voter"})
		require.Error(t, err)
		require.Equal(t, "<poll id | poll address>", name)
	}
}

func TestRootCommands(t *testing.T) {
	for _, path := range [][]string{
		{"node"},
		{"tls"},
		{"version"},
		{"key", "generate"},
		{"ballot", "show"},
		{"poll", "create"},
		{"poll", "vote"},
		{"poll", "close"},
		{"poll", "show"},
		{"poll", "list"},
	} {
		c, rest, err := rootCmd.Find(path)
		require.NoError(t, err, strings.Join(path, " "))
		require.Empty(t, rest)
		require.Equal(t, path[len(path)-1], c.Name())
	}
}

func TestPrintVersion(t *testing.T) {
	{
		var b bytes.Buffer
		require.NoError(t, printVersion("text", &b))
		require.Equal(t, version.ToDetailVersion()+"\n", b.String())
	}

	{
		var b bytes.Buffer
		require.NoError(t, printVersion("json", &b))

		var info versionInfo
		require.NoError(t, json.Unmarshal(b.Bytes(), &info))
		require.Equal(t, version.Version, info.Version)
		require.Equal(t, runtime.Version(), info.GoVersion)
	}

	{
		var b bytes.Buffer
		require.Error(t, printVersion("xml", &b))
		require.Empty(t, b.String())
	}
}
