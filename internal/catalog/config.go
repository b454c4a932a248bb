package catalog

import "time"

// Config holds the settings of the remote course catalog client.
type Config struct {
	BaseURL   string
	TimeoutMs int
	// SearchLimit caps the number of courses returned by SearchByCode.
	SearchLimit int
	LogCalls    bool
}

// DefaultConfig returns a Config pointing at the public catalog API.
func DefaultConfig() Config {
	return Config{
		BaseURL:     "https://ois2.ut.ee/api",
		TimeoutMs:   10000,
		SearchLimit: 20,
		LogCalls:    false,
	}
}

// Timeout returns the per-call timeout. Zero disables it.
func (c Config) Timeout() time.Duration {
	if c.TimeoutMs <= 0 {
		return 0
	}
	return time.Duration(c.TimeoutMs) * time.Millisecond
}
