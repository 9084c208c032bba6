package groq

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	sentry "github.com/getsentry/sentry-go"
	log "github.com/sirupsen/logrus"
)

// Client calls the Groq chat completions API (OpenAI-compatible). One
// synchronous request per explanation; no retries, no streaming.
type Client struct {
	httpClient *http.Client
	apiKey     string
	model      string
	baseURL    string
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func New(apiKey, model string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		apiKey:  apiKey,
		model:   model,
		baseURL: "https://api.groq.com/openai/v1",
	}
}

// Explain sends the lyrics to the model and returns the generated
// explanation text.
func (c *Client) Explain(ctx context.Context, lyricsText string) (string, error) {
	logger := log.WithFields(log.Fields{"module": "groq", "function": "Explain"})

	span := sentry.StartSpan(ctx, "groq.chat_completion")
	span.Description = "Groq chat completion"
	span.SetTag("model", c.model)
	defer span.Finish()

	payload, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "user", Content: BuildExplainPrompt(lyricsText)},
		},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Errorf("request failed: %v", err)
		sentry.CaptureException(err)
		span.Status = sentry.SpanStatusInternalError
		return "", err
	}
	defer resp.Body.Close()

	var body chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		span.Status = sentry.SpanStatusInternalError
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		span.Status = sentry.SpanStatusInternalError
		if body.Error != nil {
			return "", fmt.Errorf("groq API returned status %d: %s", resp.StatusCode, body.Error.Message)
		}
		return "", fmt.Errorf("groq API returned status %d", resp.StatusCode)
	}

	if len(body.Choices) == 0 {
		span.Status = sentry.SpanStatusInternalError
		return "", fmt.Errorf("groq API returned no choices")
	}

	span.Status = sentry.SpanStatusOK
	return body.Choices[0].Message.Content, nil
}

// BuildExplainPrompt wraps lyrics in the explanation prompt.
func BuildExplainPrompt(lyricsText string) string {
	return `Explain the meaning of these song lyrics in an engaging, insightful way.
Include:
- Overall theme and story
- Line-by-line breakdown of key parts
- Metaphors, references, and symbolism
- Emotional or cultural context
Keep it fun and easy to read:

` + lyricsText
}
