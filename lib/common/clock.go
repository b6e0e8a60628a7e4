package common

import (
	"sync"
	"time"

	"github.com/beevik/ntp"
)

// Clock is the process-wide time source; every timestamp written to the
// ledger is taken from it.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// NTPClock is the system clock corrected by the offset measured against an
// NTP server.
type NTPClock struct {
	sync.RWMutex
	host   string
	offset time.Duration
}

func NewNTPClock(host string) (*NTPClock, error) {
	c := &NTPClock{host: host}
	if err := c.Sync(); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *NTPClock) Sync() error {
	resp, err := ntp.Query(c.host)
	if err != nil {
		return err
	}

	c.Lock()
	c.offset = resp.ClockOffset
	c.Unlock()

	log.Debug("ntp clock synced", "host", c.host, "offset", resp.ClockOffset)

	return nil
}

func (c *NTPClock) Offset() time.Duration {
	c.RLock()
	defer c.RUnlock()

	return c.offset
}

func (c *NTPClock) Now() time.Time {
	return time.Now().Add(c.Offset()).UTC()
}

// FixedClock always returns the same time; for tests and replays.
type FixedClock struct {
	T time.Time
}

func (c FixedClock) Now() time.Time {
	return c.T
}
