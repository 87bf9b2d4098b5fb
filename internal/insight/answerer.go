package insight

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/freelens/freelens/internal/common"
	"github.com/freelens/freelens/internal/llm"
	"github.com/freelens/freelens/internal/model"
)

// systemPrompt fixes the assistant's role for every completion.
const systemPrompt = "You are a data analyst assistant. Provide concise, accurate answers based on the context."

// Answerer answers questions about the dataset. It is stateless between
// calls: each answer is a function of the question, the fixed bundle and
// sample, plus one network round trip.
type Answerer struct {
	client llm.Client
	bundle model.StatsBundle
	sample []model.Record

	// Retry tunes the retry wrapper around the completion call. The zero
	// value uses the defaults from common.WithRetry.
	Retry common.RetryOptions
}

// NewAnswerer creates an Answerer over a fixed stats snapshot and sample.
func NewAnswerer(client llm.Client, bundle model.StatsBundle, sample []model.Record) *Answerer {
	return &Answerer{
		client: client,
		bundle: bundle,
		sample: sample,
	}
}

// Answer submits the context block plus the literal question and returns the
// generated text. Failures never escape this boundary: every error collapses
// to a user-visible string so the caller's loop can continue.
func (a *Answerer) Answer(ctx context.Context, question string) string {
	prompt := fmt.Sprintf("Context:\n%s\n\nQuestion: %s\n\nAnswer:",
		BuildContext(a.bundle, a.sample), question)

	var answer string
	err := common.WithRetry(ctx, func() error {
		text, err := a.client.Complete(ctx, systemPrompt, prompt)
		if err != nil {
			return err
		}
		answer = text
		return nil
	}, a.Retry)
	if err != nil {
		slog.Debug("answer generation failed", "error", err)
		return fmt.Sprintf("Error generating answer: %v", err)
	}

	return answer
}
