package llm

import (
	"fmt"
	"strings"
)

// NewClient creates an LLM client based on the provided configuration. When
// cfg.RateLimit is set, the client is wrapped with a token-bucket limiter.
func NewClient(cfg Config) (Client, error) {
	var client Client
	var err error

	switch strings.ToLower(cfg.Provider) {
	case "openai":
		client, err = newOpenAIClient(cfg)
	case "anthropic":
		client, err = newAnthropicClient(cfg)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
	if err != nil {
		return nil, err
	}

	if cfg.RateLimit > 0 {
		client = withRateLimit(client, cfg.RateLimit)
	}
	return client, nil
}
