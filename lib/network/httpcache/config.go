package httpcache

import (
	"fmt"
	"strings"

	"boscoin.io/pollchain/lib/common"
)

// NewAdapter makes the cache adapter selected by `HTTPCacheAdapter`. It
// returns nil adapter for the "none" adapter.
func NewAdapter(cfg common.Config) (Adapter, error) {
	switch cfg.HTTPCacheAdapter {
	case common.HTTPCacheMemoryAdapterName:
		return NewMemCacheAdapter(cfg.HTTPCachePoolSize), nil
	case common.HTTPCacheRedisAdapterName:
		addrs := map[string]string{}
		for name, addr := range cfg.HTTPCacheRedisAddrs {
			addr = strings.TrimSpace(addr)
			if len(addr) < 1 {
				continue
			}
			addrs[name] = addr
		}
		if len(addrs) < 1 {
			return nil, fmt.Errorf("redis addresses are empty")
		}
		return NewRedisCacheAdapter(&RedisRingOptions{Addrs: addrs}), nil
	case common.HTTPCacheNoneAdapterName, "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown http cache adapter: %q", cfg.HTTPCacheAdapter)
	}
}

// NewHandlerWrapper gives the `Client` of the configured adapter, or
// `NopClient` when caching is off.
func NewHandlerWrapper(cfg common.Config, opts ...ClientOption) (HandlerWrapper, error) {
	adapter, err := NewAdapter(cfg)
	if err != nil {
		return nil, err
	}
	if adapter == nil {
		return NewNopClient(), nil
	}

	opts = append([]ClientOption{WithAdapter(adapter), WithLogger(log), WithExpire(cfg.HTTPCacheExpire)}, opts...)
	return NewClient(opts...)
}
