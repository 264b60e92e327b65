// Package gsearch is the grounded-search collaborator: a Gemini call with
// the GoogleSearch tool enabled, returning text plus source citations
// extracted from the grounding metadata.
package gsearch

import (
	"context"
	"strings"
	"time"

	"deprebuddy/app/config"
	"deprebuddy/app/util/retryutil"

	"github.com/cenkalti/backoff/v4"
	"github.com/elliotchance/pie/v2"
	"github.com/samber/do"
	"github.com/samber/oops"
	"google.golang.org/genai"
)

const requestTimeout = 30 * time.Second

type Source struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

type Result struct {
	Text    string   `json:"text"`
	Sources []Source `json:"sources"`
}

type Client struct {
	cfg    *config.Config
	client *genai.Client
}

func NewClient(di *do.Injector) (*Client, error) {
	cfg := do.MustInvoke[*config.Config](di)

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  cfg.Gemini.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, oops.Errorf("failed to create genai client: %w", err)
	}

	return &Client{
		cfg:    cfg,
		client: client,
	}, nil
}

// Search answers the query with live search grounding. Same retry policy as
// the text-generation client.
func (c *Client) Search(ctx context.Context, query, system string) (*Result, error) {
	genCfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		Tools: []*genai.Tool{
			{GoogleSearch: &genai.GoogleSearch{}},
		},
	}

	prompt := "Based on your access to real-time information, respond to the user's need: " + query

	var result *Result

	operation := func() error {
		attemptCtx, cancel := context.WithTimeout(ctx, requestTimeout)
		defer cancel()

		resp, err := c.client.Models.GenerateContent(attemptCtx, c.cfg.Gemini.Model, genai.Text(prompt), genCfg)
		if err != nil {
			return retryutil.Classify(oops.Errorf("failed to generate grounded content: %w", err))
		}

		if len(resp.Candidates) == 0 {
			return backoff.Permanent(oops.Errorf("no candidates in response"))
		}

		result = &Result{
			Text:    strings.TrimSpace(resp.Text()),
			Sources: extractSources(resp.Candidates[0]),
		}
		return nil
	}

	if err := backoff.Retry(operation, retryutil.New(ctx)); err != nil {
		return nil, err
	}

	return result, nil
}

func extractSources(candidate *genai.Candidate) []Source {
	if candidate.GroundingMetadata == nil {
		return nil
	}

	sources := pie.Map(candidate.GroundingMetadata.GroundingChunks, func(chunk *genai.GroundingChunk) Source {
		if chunk.Web == nil {
			return Source{}
		}

		return Source{
			Title: chunk.Web.Title,
			URI:   chunk.Web.URI,
		}
	})

	return pie.Filter(sources, func(s Source) bool {
		return s.URI != ""
	})
}
