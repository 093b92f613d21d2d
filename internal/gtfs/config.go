package gtfs

import (
	"strings"
	"time"
)

type Config struct {
	GtfsURL string
	// FetchTimeout bounds the download of a remote feed. Zero means one minute.
	FetchTimeout time.Duration
}

func (config Config) isLocalFile() bool {
	return !strings.HasPrefix(config.GtfsURL, "http://") && !strings.HasPrefix(config.GtfsURL, "https://")
}

func (config Config) fetchTimeout() time.Duration {
	if config.FetchTimeout <= 0 {
		return time.Minute
	}
	return config.FetchTimeout
}
