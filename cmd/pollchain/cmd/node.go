package cmd

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	logging "github.com/inconshreveable/log15"
	"github.com/oklog/run"
	"github.com/spf13/cobra"
	"github.com/ulule/limiter"
	"golang.org/x/net/http2"

	"boscoin.io/pollchain/cmd/pollchain/common"
	"boscoin.io/pollchain/lib/ballot"
	libcommon "boscoin.io/pollchain/lib/common"
	"boscoin.io/pollchain/lib/metrics"
	"boscoin.io/pollchain/lib/network"
	"boscoin.io/pollchain/lib/network/httpcache"
	"boscoin.io/pollchain/lib/node/runner"
	"boscoin.io/pollchain/lib/poll"
	"boscoin.io/pollchain/lib/storage"
)

const (
	defaultNetwork  string      = "http"
	defaultPort     int         = 12345
	defaultHost     string      = "0.0.0.0"
	defaultLogLevel logging.Lvl = logging.LvlInfo
)

var (
	flagName                string
	flagNetworkID           string
	flagBindURL             string
	flagStorageConfigString string
	flagTLSCertFile         string
	flagTLSKeyFile          string
	flagLogLevel            string
	flagLogFormat           string
	flagLogOutput           string
	flagVerbose             bool
	flagNTPServer           string
	flagNTPSyncInterval     string
	flagRateLimitAPI        common.ListFlags
	flagOperationsLimit     string
	flagHTTPCacheAdapter    string
	flagHTTPCachePoolSize   string
	flagHTTPCacheRedisAddrs common.ListFlags
	flagHTTPCacheExpire     string
	flagDebugPProf          bool
)

var (
	nodeCmd *cobra.Command

	bindEndpoint    *libcommon.Endpoint
	storageConfig   *storage.Config
	nodeConfig      libcommon.Config
	ntpSyncInterval time.Duration
	logLevel        logging.Lvl
	logHandler      logging.Handler
	log             logging.Logger = logging.New("module", "main")
)

func init() {
	flagName = libcommon.GetENVValue("POLLCHAIN_NAME", "")
	flagNetworkID = libcommon.GetENVValue("POLLCHAIN_NETWORK_ID", "")
	flagBindURL = libcommon.GetENVValue(
		"POLLCHAIN_BIND",
		fmt.Sprintf("%s://%s:%d", defaultNetwork, defaultHost, defaultPort),
	)
	flagTLSCertFile = libcommon.GetENVValue("POLLCHAIN_TLS_CERT", "")
	flagTLSKeyFile = libcommon.GetENVValue("POLLCHAIN_TLS_KEY", "")
	flagLogLevel = libcommon.GetENVValue("POLLCHAIN_LOG_LEVEL", defaultLogLevel.String())
	flagLogFormat = libcommon.GetENVValue("POLLCHAIN_LOG_FORMAT", "")
	flagLogOutput = libcommon.GetENVValue("POLLCHAIN_LOG_OUTPUT", "")
	flagVerbose = libcommon.GetENVValue("POLLCHAIN_VERBOSE", "0") == "1"
	flagNTPServer = libcommon.GetENVValue("POLLCHAIN_NTP", "")
	flagNTPSyncInterval = libcommon.GetENVValue("POLLCHAIN_NTP_SYNC_INTERVAL", "10m")
	flagOperationsLimit = libcommon.GetENVValue("POLLCHAIN_OPERATIONS_LIMIT", strconv.Itoa(libcommon.DefaultOperationsInTransactionLimit))
	flagHTTPCacheAdapter = libcommon.GetENVValue("POLLCHAIN_HTTP_CACHE_ADAPTER", libcommon.HTTPCacheMemoryAdapterName)
	flagHTTPCachePoolSize = libcommon.GetENVValue("POLLCHAIN_HTTP_CACHE_POOL_SIZE", strconv.Itoa(libcommon.HTTPCachePoolSize))
	flagHTTPCacheExpire = libcommon.GetENVValue("POLLCHAIN_HTTP_CACHE_EXPIRE", "0")
	flagDebugPProf = libcommon.GetENVValue("POLLCHAIN_DEBUG_PPROF", "0") == "1"

	if v := libcommon.GetENVValue("POLLCHAIN_RATE_LIMIT_API", ""); len(v) > 0 {
		flagRateLimitAPI = strings.Fields(v)
	}
	if v := libcommon.GetENVValue("POLLCHAIN_HTTP_CACHE_REDIS_ADDRS", ""); len(v) > 0 {
		flagHTTPCacheRedisAddrs = strings.Fields(v)
	}

	nodeCmd = &cobra.Command{
		Use:   "node",
		Short: "Run pollchain node",
		Run: func(c *cobra.Command, args []string) {
			if name, err := parseFlagsNode(); err != nil {
				common.PrintFlagsError(c, name, err)
			}

			if err := runNode(); err != nil {
				common.PrintError(c, err)
			}
		},
	}

	var err error
	var currentDirectory string
	if currentDirectory, err = os.Getwd(); err == nil {
		currentDirectory, err = filepath.Abs(currentDirectory)
	}
	if err != nil {
		common.PrintFlagsError(nodeCmd, "--storage", err)
	}
	flagStorageConfigString = libcommon.GetENVValue("POLLCHAIN_STORAGE", fmt.Sprintf("file://%s/db", currentDirectory))

	nodeCmd.Flags().StringVar(&flagName, "name", flagName, "node name shown in node info; the bind host by default")
	nodeCmd.Flags().StringVar(&flagNetworkID, "network-id", flagNetworkID, "network id")
	nodeCmd.Flags().StringVar(&flagBindURL, "bind", flagBindURL, "bind to listen on")
	nodeCmd.Flags().StringVar(&flagStorageConfigString, "storage", flagStorageConfigString, "storage uri")
	nodeCmd.Flags().StringVar(&flagTLSCertFile, "tls-cert", flagTLSCertFile, "tls certificate file")
	nodeCmd.Flags().StringVar(&flagTLSKeyFile, "tls-key", flagTLSKeyFile, "tls key file")
	nodeCmd.Flags().StringVar(&flagLogLevel, "log-level", flagLogLevel, "log level, {crit, error, warn, info, debug}")
	nodeCmd.Flags().StringVar(&flagLogFormat, "log-format", flagLogFormat, "log format, {terminal, json}")
	nodeCmd.Flags().StringVar(&flagLogOutput, "log-output", flagLogOutput, "set log output file")
	nodeCmd.Flags().BoolVar(&flagVerbose, "verbose", flagVerbose, "verbose")
	nodeCmd.Flags().StringVar(&flagNTPServer, "ntp", flagNTPServer, "ntp server to correct the clock with; system clock if empty")
	nodeCmd.Flags().StringVar(&flagNTPSyncInterval, "ntp-sync-interval", flagNTPSyncInterval, "interval to sync the clock with the ntp server")
	nodeCmd.Flags().Var(&flagRateLimitAPI, "rate-limit-api", "rate limit for the api: [<ip>=]<limit>-<period>, ex) '10-S', '3.3.3.3=1000-M'")
	nodeCmd.Flags().StringVar(&flagOperationsLimit, "ops-limit", flagOperationsLimit, "operations limit in a transaction")
	nodeCmd.Flags().StringVar(&flagHTTPCacheAdapter, "http-cache-adapter", flagHTTPCacheAdapter, "http cache adapter, {mem, redis, none}")
	nodeCmd.Flags().StringVar(&flagHTTPCachePoolSize, "http-cache-pool-size", flagHTTPCachePoolSize, "http cache pool size of the mem adapter")
	nodeCmd.Flags().Var(&flagHTTPCacheRedisAddrs, "http-cache-redis-addrs", "redis addresses of the redis adapter: <name>=<host:port>")
	nodeCmd.Flags().StringVar(&flagHTTPCacheExpire, "http-cache-expire", flagHTTPCacheExpire, "how long a cached response is kept, ex) '10m'; '0' keeps it until evicted")
	nodeCmd.Flags().BoolVar(&flagDebugPProf, "debug-pprof", flagDebugPProf, "serve the pprof handlers under /debug/pprof")

	rootCmd.AddCommand(nodeCmd)
}

// parseFlagRateLimit reads the rules like "100-S" and "1.2.3.4=10-M". The
// rule without ip address replaces the default rate.
func parseFlagRateLimit(l common.ListFlags, defaultRate limiter.Rate) (rule libcommon.RateLimitRule, err error) {
	rule = libcommon.NewRateLimitRule(defaultRate)

	for _, s := range l {
		var ip, rs string
		if i := strings.Index(s, "="); i < 0 {
			rs = strings.TrimSpace(s)
		} else {
			ip = strings.TrimSpace(s[:i])
			rs = strings.TrimSpace(s[i+1:])
		}

		var rate limiter.Rate
		if rate, err = limiter.NewRateFromFormatted(rs); err != nil {
			return
		}

		if len(ip) < 1 {
			rule.Default = rate
			continue
		}
		if net.ParseIP(ip) == nil {
			err = fmt.Errorf("invalid ip address: %q", ip)
			return
		}
		rule.ByIPAddress[ip] = rate
	}

	return
}

func parseFlagRedisAddrs(l common.ListFlags) (map[string]string, error) {
	addrs := map[string]string{}
	for _, s := range l {
		for _, f := range strings.Fields(s) {
			i := strings.Index(f, "=")
			if i < 1 || i == len(f)-1 {
				return nil, fmt.Errorf("invalid redis address: %q; <name>=<host:port> expected", f)
			}
			addrs[f[:i]] = f[i+1:]
		}
	}

	return addrs, nil
}

func parseFlagLogFormat(s string) (logging.Format, error) {
	switch s {
	case "":
		return libcommon.DefaultLogFormat(), nil
	case "terminal":
		return logging.TerminalFormat(), nil
	case "json":
		return libcommon.JsonFormatEx(false, true), nil
	default:
		return nil, fmt.Errorf("unknown log format: %q", s)
	}
}

func parseFlagsNode() (failedFlag string, err error) {
	if len(flagNetworkID) < 1 {
		return "--network-id", errors.New("--network-id must be given")
	}

	if bindEndpoint, err = libcommon.ParseEndpoint(flagBindURL); err != nil {
		return "--bind", err
	}

	if strings.ToLower(bindEndpoint.Scheme) == "https" {
		if len(flagTLSCertFile) < 1 || len(flagTLSKeyFile) < 1 {
			return "--tls-cert", errors.New("https needs --tls-cert and --tls-key")
		}
		if _, err = os.Stat(flagTLSCertFile); os.IsNotExist(err) {
			return "--tls-cert", err
		}
		if _, err = os.Stat(flagTLSKeyFile); os.IsNotExist(err) {
			return "--tls-key", err
		}
	}

	if len(flagName) < 1 {
		flagName = bindEndpoint.Host
	}

	queries := bindEndpoint.Query()
	if len(flagTLSCertFile) > 0 {
		queries.Set("TLSCertFile", flagTLSCertFile)
		queries.Set("TLSKeyFile", flagTLSKeyFile)
	}
	if len(queries.Get("IdleTimeout")) < 1 {
		queries.Set("IdleTimeout", "3s")
	}
	bindEndpoint.RawQuery = queries.Encode()

	if storageConfig, err = storage.NewConfigFromString(flagStorageConfigString); err != nil {
		return "--storage", err
	}

	nodeConfig = libcommon.NewConfig([]byte(flagNetworkID))

	if nodeConfig.OpsLimit, err = strconv.Atoi(flagOperationsLimit); err != nil {
		return "--ops-limit", err
	} else if nodeConfig.OpsLimit < 1 {
		return "--ops-limit", errors.New("must be greater than 0")
	}

	if nodeConfig.RateLimitRuleAPI, err = parseFlagRateLimit(flagRateLimitAPI, libcommon.RateLimitAPI); err != nil {
		return "--rate-limit-api", err
	}

	switch flagHTTPCacheAdapter {
	case libcommon.HTTPCacheMemoryAdapterName, libcommon.HTTPCacheRedisAdapterName, libcommon.HTTPCacheNoneAdapterName:
		nodeConfig.HTTPCacheAdapter = flagHTTPCacheAdapter
	default:
		return "--http-cache-adapter", fmt.Errorf("unknown http cache adapter: %q", flagHTTPCacheAdapter)
	}
	if nodeConfig.HTTPCachePoolSize, err = strconv.Atoi(flagHTTPCachePoolSize); err != nil {
		return "--http-cache-pool-size", err
	}
	if nodeConfig.HTTPCacheRedisAddrs, err = parseFlagRedisAddrs(flagHTTPCacheRedisAddrs); err != nil {
		return "--http-cache-redis-addrs", err
	}
	if nodeConfig.HTTPCacheAdapter == libcommon.HTTPCacheRedisAdapterName && len(nodeConfig.HTTPCacheRedisAddrs) < 1 {
		return "--http-cache-redis-addrs", errors.New("redis adapter needs --http-cache-redis-addrs")
	}
	if nodeConfig.HTTPCacheExpire, err = time.ParseDuration(flagHTTPCacheExpire); err != nil {
		return "--http-cache-expire", err
	} else if nodeConfig.HTTPCacheExpire < 0 {
		return "--http-cache-expire", errors.New("must not be negative")
	}

	if ntpSyncInterval, err = time.ParseDuration(flagNTPSyncInterval); err != nil {
		return "--ntp-sync-interval", err
	} else if ntpSyncInterval <= 0 {
		return "--ntp-sync-interval", errors.New("must be positive")
	}

	if logLevel, err = logging.LvlFromString(flagLogLevel); err != nil {
		return "--log-level", err
	}

	var logFormat logging.Format
	if logFormat, err = parseFlagLogFormat(flagLogFormat); err != nil {
		return "--log-format", err
	}

	if len(flagLogOutput) < 1 {
		flagLogOutput = "<stdout>"
		logHandler = logging.StreamHandler(os.Stdout, logFormat)
	} else {
		if logHandler, err = logging.FileHandler(flagLogOutput, libcommon.JsonFormatEx(false, true)); err != nil {
			return "--log-output", err
		}
	}

	if logLevel == logging.LvlDebug {
		logHandler = logging.CallerFileHandler(logHandler)
	}

	log.SetHandler(logging.LvlFilterHandler(logLevel, logHandler))
	libcommon.SetLogging(logLevel, logHandler)
	network.SetLogging(logLevel, logHandler)
	httpcache.SetLogging(logLevel, logHandler)
	poll.SetLogging(logLevel, logHandler)
	ballot.SetLogging(logLevel, logHandler)
	runner.SetLogging(logLevel, logHandler)

	log.Info("Starting pollchain")

	parsedFlags := []interface{}{}
	parsedFlags = append(parsedFlags, "\n\tname", flagName)
	parsedFlags = append(parsedFlags, "\n\tnetwork-id", flagNetworkID)
	parsedFlags = append(parsedFlags, "\n\tbind", flagBindURL)
	parsedFlags = append(parsedFlags, "\n\tstorage", flagStorageConfigString)
	parsedFlags = append(parsedFlags, "\n\ttls-cert", flagTLSCertFile)
	parsedFlags = append(parsedFlags, "\n\ttls-key", flagTLSKeyFile)
	parsedFlags = append(parsedFlags, "\n\tlog-level", flagLogLevel)
	parsedFlags = append(parsedFlags, "\n\tlog-output", flagLogOutput)
	parsedFlags = append(parsedFlags, "\n\tntp", flagNTPServer)
	parsedFlags = append(parsedFlags, "\n\trate-limit-api", nodeConfig.RateLimitRuleAPI.Default)
	parsedFlags = append(parsedFlags, "\n\tops-limit", nodeConfig.OpsLimit)
	parsedFlags = append(parsedFlags, "\n\thttp-cache-adapter", nodeConfig.HTTPCacheAdapter)
	parsedFlags = append(parsedFlags, "\n\thttp-cache-expire", nodeConfig.HTTPCacheExpire)
	parsedFlags = append(parsedFlags, "\n\tdebug-pprof", flagDebugPProf)

	log.Debug("parsed flags:", parsedFlags...)

	if flagVerbose {
		http2.VerboseLogs = true
	}
	runner.DebugPProf = flagDebugPProf

	return "", nil
}

func runNode() error {
	st, err := storage.NewStorage(storageConfig)
	if err != nil {
		log.Crit("failed to initialize storage", "error", err)
		return err
	}
	defer st.Close()

	var clock libcommon.Clock = libcommon.SystemClock{}
	var ntpClock *libcommon.NTPClock
	if len(flagNTPServer) > 0 {
		if ntpClock, err = libcommon.NewNTPClock(flagNTPServer); err != nil {
			log.Crit("failed to query ntp server", "server", flagNTPServer, "error", err)
			return err
		}
		clock = ntpClock
		log.Debug("ntp clock", "offset", ntpClock.Offset())
	}

	metrics.InitPrometheusMetrics()
	metrics.SetVersion(nodeConfig.NetworkID)

	networkConfig, err := network.NewHTTP2NetworkConfigFromEndpoint(flagName, bindEndpoint)
	if err != nil {
		log.Crit("failed to create network", "error", err)
		return err
	}
	nt := network.NewHTTP2Network(networkConfig)

	program := runner.NewProgramRunner(st, nodeConfig, clock, nil)
	nr, err := runner.NewNodeRunner(flagName, nt, program)
	if err != nil {
		log.Crit("failed to create node runner", "error", err)
		return err
	}

	// Execution group.
	var g run.Group
	{
		g.Add(func() error {
			if err := nr.Start(); err != nil {
				log.Crit("failed to start node", "error", err)
				return err
			}
			return nil
		}, func(error) {
			nr.Stop()
		})
	}
	if ntpClock != nil {
		cancel := make(chan struct{})
		g.Add(func() error {
			ticker := time.NewTicker(ntpSyncInterval)
			defer ticker.Stop()
			for {
				select {
				case <-cancel:
					return nil
				case <-ticker.C:
					if err := ntpClock.Sync(); err != nil {
						log.Error("failed to sync ntp clock", "server", flagNTPServer, "error", err)
					}
				}
			}
		}, func(error) {
			close(cancel)
		})
	}
	{
		cancel := make(chan struct{})
		g.Add(func() error {
			if err := common.Interrupt(cancel); err != nil {
				log.Info("stopping pollchain", "signal", err.(common.SignalError).Signal)
			}
			return nil
		}, func(error) {
			close(cancel)
		})
	}

	return g.Run()
}
