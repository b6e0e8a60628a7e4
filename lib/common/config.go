package common

import (
	"time"

	"github.com/ulule/limiter"
)

const (
	DefaultOperationsInTransactionLimit int = 100

	HTTPCacheMemoryAdapterName = "mem"
	HTTPCacheRedisAdapterName  = "redis"
	HTTPCacheNoneAdapterName   = "none"
	HTTPCachePoolSize          = 10000
)

var (
	// RateLimitAPI is the default rate limit of the public API, per client ip.
	RateLimitAPI = limiter.Rate{
		Period: 1 * time.Second,
		Limit:  100,
	}
)

type RateLimitRule struct {
	Default     limiter.Rate
	ByIPAddress map[string]limiter.Rate
}

func NewRateLimitRule(rate limiter.Rate) RateLimitRule {
	return RateLimitRule{
		Default:     rate,
		ByIPAddress: map[string]limiter.Rate{},
	}
}

//
// Config carries the settings shared by the program runner and the API.
//
type Config struct {
	NetworkID []byte
	OpsLimit  int

	RateLimitRuleAPI RateLimitRule

	HTTPCacheAdapter    string
	HTTPCachePoolSize   int
	HTTPCacheRedisAddrs map[string]string
	// HTTPCacheExpire limits how long a cached response is kept; zero keeps
	// it until the adapter evicts it.
	HTTPCacheExpire time.Duration
}

func NewConfig(networkID []byte) Config {
	p := Config{}

	p.NetworkID = networkID
	p.OpsLimit = DefaultOperationsInTransactionLimit
	p.RateLimitRuleAPI = NewRateLimitRule(RateLimitAPI)
	p.HTTPCacheAdapter = HTTPCacheMemoryAdapterName
	p.HTTPCachePoolSize = HTTPCachePoolSize

	return p
}
