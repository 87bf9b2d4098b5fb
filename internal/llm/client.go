package llm

import (
	"context"
)

// Client is the contract with the completion endpoint: send text, receive
// text or an error. Everything above this interface can be tested with a
// substitute that returns canned responses.
type Client interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Config holds provider settings.
type Config struct {
	Provider    string
	APIKey      string
	Model       string
	BaseURL     string // override for tests; defaults to the provider endpoint
	Temperature float64
	MaxTokens   int
	RateLimit   int // requests per minute; 0 disables client-side limiting
}
