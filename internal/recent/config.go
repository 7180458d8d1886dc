package recent

type Config struct {
	Limit int
}

func DefaultConfig() Config {
	return Config{
		Limit: 20,
	}
}
