package gemini

import (
	"context"
	"fmt"

	sentry "github.com/getsentry/sentry-go"
	log "github.com/sirupsen/logrus"
	"google.golang.org/genai"

	"github.com/rcjie05/song-explainer-ai/groq"
)

// Client generates explanations with the Gemini API. Same contract as the
// Groq client; selected by config when GEMINI_ENABLED is set.
type Client struct {
	genai *genai.Client
	model string
}

func New(ctx context.Context, apiKey, model string) (*Client, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &Client{genai: client, model: model}, nil
}

// Explain sends the lyrics to Gemini and returns the generated text.
func (c *Client) Explain(ctx context.Context, lyricsText string) (string, error) {
	logger := log.WithFields(log.Fields{"module": "gemini", "function": "Explain"})

	span := sentry.StartSpan(ctx, "gemini.generate_content")
	span.Description = "Gemini generate content"
	span.SetTag("model", c.model)
	defer span.Finish()

	prompt := groq.BuildExplainPrompt(lyricsText)
	resp, err := c.genai.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		logger.Errorf("generation failed: %v", err)
		sentry.CaptureException(err)
		span.Status = sentry.SpanStatusInternalError
		return "", err
	}

	text := resp.Text()
	if text == "" {
		span.Status = sentry.SpanStatusInternalError
		return "", fmt.Errorf("gemini returned an empty response")
	}

	span.Status = sentry.SpanStatusOK
	return text, nil
}
