package summary

import "time"

// Config describes the external generation service and the retry policy used
// against it.
type Config struct {
	BaseURL      string
	Model        string
	HealthPath   string
	GeneratePath string

	// HealthTimeout bounds each liveness probe. GenerateTimeout bounds each
	// generation attempt.
	HealthTimeout   time.Duration
	GenerateTimeout time.Duration

	// HealthAttempts is the number of liveness probes before giving up.
	// MaxAttempts is the number of generation attempts, counting the first,
	// when the service answers with a retryable status.
	HealthAttempts int
	MaxAttempts    int

	// BackoffBase is the first wait between attempts. It doubles each time.
	BackoffBase time.Duration

	Temperature float64
	MaxTokens   int

	// Breaker settings for the generation phase.
	BreakerMinRequests  uint32
	BreakerFailureRatio float64
	BreakerInterval     time.Duration
	BreakerOpenTimeout  time.Duration
}

func DefaultConfig() Config {
	return Config{
		BaseURL:             "http://ollama:11434",
		Model:               "mistral",
		HealthPath:          "/api/tags",
		GeneratePath:        "/api/generate",
		HealthTimeout:       30 * time.Second,
		GenerateTimeout:     180 * time.Second,
		HealthAttempts:      3,
		MaxAttempts:         3,
		BackoffBase:         time.Second,
		Temperature:         0.7,
		MaxTokens:           500,
		BreakerMinRequests:  5,
		BreakerFailureRatio: 0.5,
		BreakerInterval:     60 * time.Second,
		BreakerOpenTimeout:  30 * time.Second,
	}
}

// backoff returns the wait after the given failed attempt (1-based).
func (c Config) backoff(attempt int) time.Duration {
	return c.BackoffBase * time.Duration(1<<uint(attempt-1))
}
