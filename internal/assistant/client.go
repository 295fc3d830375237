package assistant

import (
	"context"
	"errors"
)

// ErrAIUnavailable is returned when a question needs a language model and
// none is configured.
var ErrAIUnavailable = errors.New("no language model configured")

// AIClient answers free-form prompts.
type AIClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// MockAIClient returns a canned answer and records the prompts it received.
type MockAIClient struct {
	Answer  string
	Err     error
	Prompts []string
}

// Complete records prompt and returns the canned answer or error.
func (m *MockAIClient) Complete(_ context.Context, prompt string) (string, error) {
	m.Prompts = append(m.Prompts, prompt)
	if m.Err != nil {
		return "", m.Err
	}
	return m.Answer, nil
}
