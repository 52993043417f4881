package service

import "context"

// AIService abstracts the upstream text-completion provider. One prompt in,
// one response out; no retries and no streaming.
type AIService interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}
