package lyrics

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rcjie05/song-explainer-ai/models"
)

// Client fetches lyrics from the lyrics.ovh API.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

type ovhResponse struct {
	Lyrics string `json:"lyrics"`
	Error  string `json:"error"`
}

func New() *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: "https://api.lyrics.ovh/v1",
	}
}

// Lookup fetches lyrics for a title/artist pair. A 404 from the API means the
// song is unknown and maps to models.ErrNotFound.
func (c *Client) Lookup(ctx context.Context, title, artist string) (*models.LyricsResult, error) {
	u := fmt.Sprintf("%s/%s/%s", c.baseURL, url.PathEscape(artist), url.PathEscape(title))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, models.ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("lyrics.ovh API returned status %d", resp.StatusCode)
	}

	var body ovhResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}

	text := CleanLyrics(body.Lyrics)
	if text == "" {
		return nil, models.ErrNotFound
	}

	return &models.LyricsResult{
		Song:   models.Song{Title: title, Artist: artist},
		Lyrics: text,
	}, nil
}

// CleanLyrics normalizes raw lyrics text: CRLF endings, the French
// "Paroles de la chanson ... par ..." preamble lyrics.ovh prepends, and runs
// of blank lines are all stripped.
func CleanLyrics(raw string) string {
	text := strings.ReplaceAll(raw, "\r\n", "\n")
	lines := strings.Split(text, "\n")

	var out []string
	blank := false
	for i, line := range lines {
		line = strings.TrimRight(line, " \t")
		if i == 0 && strings.HasPrefix(line, "Paroles de la chanson") {
			continue
		}
		if line == "" {
			if blank || len(out) == 0 {
				continue
			}
			blank = true
		} else {
			blank = false
		}
		out = append(out, line)
	}

	return strings.TrimSpace(strings.Join(out, "\n"))
}
