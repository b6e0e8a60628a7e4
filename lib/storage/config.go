package storage

import (
	"net/url"
	"path/filepath"

	"github.com/pkg/errors"
)

// Config is the parsed storage uri, `file:///path/to/db` or `memory://`.
type Config struct {
	Scheme string
	Path   string
}

func NewConfigFromString(s string) (*Config, error) {
	u, err := url.Parse(s)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid storage uri, %q", s)
	}

	return NewConfigFromURL(u)
}

func NewConfigFromURL(u *url.URL) (*Config, error) {
	switch u.Scheme {
	case "memory":
		return &Config{Scheme: u.Scheme}, nil
	case "file":
		path := u.Path
		if len(u.Host) > 0 {
			// `file://relative/path`
			path = u.Host + u.Path
		}
		if len(path) < 1 {
			return nil, errors.Errorf("storage path is missing, %q", u.String())
		}

		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, errors.Wrap(err, "failed to get absolute storage path")
		}
		return &Config{Scheme: u.Scheme, Path: abs}, nil
	default:
		return nil, errors.Errorf("unsupported storage scheme, %q", u.Scheme)
	}
}

func (c Config) String() string {
	if c.Scheme == "memory" {
		return "memory://"
	}

	return (&url.URL{Scheme: c.Scheme, Path: c.Path}).String()
}
