package events

import "time"

type Config struct {
	SubscriberBuffer int
	KeepAlive        time.Duration
}

func DefaultConfig() Config {
	return Config{
		SubscriberBuffer: 64,
		KeepAlive:        15 * time.Second,
	}
}

// KeepAliveInterval returns the configured keep-alive or the default one.
func (c Config) KeepAliveInterval() time.Duration {
	if c.KeepAlive <= 0 {
		return DefaultConfig().KeepAlive
	}
	return c.KeepAlive
}
