package reading

import "time"

// Config holds reading generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
}

// DefaultConfig returns the settings used by the result screen.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   700,
		Temperature: 0.7,
		Timeout:     30 * time.Second,
	}
}
