package operations

import "time"

type Config struct {
	// NetworkTimeout bounds clone, fetch, pull, push and sync. Zero disables the deadline.
	NetworkTimeout time.Duration
	// EventBuffer is the capacity of the event queue feeding listeners.
	EventBuffer int
}

func DefaultConfig() Config {
	//nolint:mnd //default values
	return Config{
		NetworkTimeout: 10 * time.Minute,
		EventBuffer:    64,
	}
}
