// Package llm is the text-generation collaborator: prompt plus system
// instruction in, plain text out.
package llm

import (
	"context"
	"strings"
	"time"

	"deprebuddy/app/config"
	"deprebuddy/app/util/retryutil"

	"github.com/cenkalti/backoff/v4"
	"github.com/samber/do"
	"github.com/samber/oops"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
)

const requestTimeout = 30 * time.Second

type Client struct {
	cfg   *config.Config
	model llms.Model
}

func NewClient(di *do.Injector) (*Client, error) {
	cfg := do.MustInvoke[*config.Config](di)

	model, err := googleai.New(context.Background(),
		googleai.WithAPIKey(cfg.Gemini.APIKey),
		googleai.WithDefaultModel(cfg.Gemini.Model),
	)
	if err != nil {
		return nil, oops.Errorf("failed to create googleai client: %w", err)
	}

	return &Client{
		cfg:   cfg,
		model: model,
	}, nil
}

// Generate produces a single completion. Transient API failures are retried
// with exponential backoff, bounded by retryutil.MaxRetries.
func (c *Client) Generate(ctx context.Context, prompt, system string) (string, error) {
	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, system),
		llms.TextParts(llms.ChatMessageTypeHuman, prompt),
	}

	var result string

	operation := func() error {
		attemptCtx, cancel := context.WithTimeout(ctx, requestTimeout)
		defer cancel()

		resp, err := c.model.GenerateContent(attemptCtx, messages)
		if err != nil {
			return retryutil.Classify(oops.Errorf("failed to generate content: %w", err))
		}

		if len(resp.Choices) == 0 {
			return backoff.Permanent(oops.Errorf("no completion choices in response"))
		}

		result = strings.TrimSpace(resp.Choices[0].Content)
		return nil
	}

	if err := backoff.Retry(operation, retryutil.New(ctx)); err != nil {
		return "", err
	}

	return result, nil
}
