package assistant

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fjacquet/expense-tracker/internal/logging"

	"github.com/google/generative-ai-go/genai"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"
)

// GeminiClient implements AIClient with Google Gemini.
type GeminiClient struct {
	client  *genai.Client
	model   *genai.GenerativeModel
	limiter *rate.Limiter
	timeout time.Duration
	logger  logging.Logger
}

// GeminiOptions configure NewGeminiClient.
type GeminiOptions struct {
	APIKey            string
	Model             string
	RequestsPerMinute int
	Timeout           time.Duration
}

// NewGeminiClient connects to Gemini. Close must be called when done.
func NewGeminiClient(ctx context.Context, opts GeminiOptions, logger logging.Logger) (*GeminiClient, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}
	if opts.Model == "" {
		opts.Model = "gemini-2.0-flash"
	}
	if opts.RequestsPerMinute <= 0 {
		opts.RequestsPerMinute = 10
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(opts.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	interval := time.Minute / time.Duration(opts.RequestsPerMinute)
	return &GeminiClient{
		client:  client,
		model:   client.GenerativeModel(opts.Model),
		limiter: rate.NewLimiter(rate.Every(interval), 1),
		timeout: opts.Timeout,
		logger:  logger.WithFields(logging.F(logging.FieldComponent, "gemini"), logging.F("model", opts.Model)),
	}, nil
}

// Complete sends prompt and returns the concatenated text of the first
// candidate.
func (c *GeminiClient) Complete(ctx context.Context, prompt string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		c.logger.WithError(err).Error("Gemini request failed")
		return "", fmt.Errorf("gemini API error: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from Gemini API")
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}

	c.logger.Debug("Gemini answered",
		logging.F(logging.FieldDuration, time.Since(start).Milliseconds()))
	return strings.TrimSpace(b.String()), nil
}

// Close releases the underlying connection.
func (c *GeminiClient) Close() error {
	return c.client.Close()
}
