package jamendo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	sentry "github.com/getsentry/sentry-go"
	log "github.com/sirupsen/logrus"

	"github.com/rcjie05/song-explainer-ai/models"
)

// Client searches Jamendo for Creative-Commons music. Tracks carry a direct
// audio URL, so Download can stream the bytes without any transcoding.
type Client struct {
	httpClient *http.Client
	clientID   string
	limit      int
	baseURL    string
}

type trackResponse struct {
	Headers struct {
		Status string `json:"status"`
		Code   int    `json:"code"`
	} `json:"headers"`
	Results []struct {
		ID         string `json:"id"`
		Name       string `json:"name"`
		ArtistName string `json:"artist_name"`
		Duration   int    `json:"duration"`
		Audio      string `json:"audio"`
		ShareURL   string `json:"shareurl"`
	} `json:"results"`
}

func New(clientID string, limit int) *Client {
	if limit <= 0 {
		limit = 10
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		clientID: clientID,
		limit:    limit,
		baseURL:  "https://api.jamendo.com/v3.0",
	}
}

// SearchTracks queries the tracks endpoint by free text.
func (c *Client) SearchTracks(ctx context.Context, query string) ([]models.Track, error) {
	logger := log.WithFields(log.Fields{"module": "jamendo", "function": "SearchTracks"})

	span := sentry.StartSpan(ctx, "jamendo.search")
	span.Description = "Search Jamendo API"
	span.SetTag("query", query)
	defer span.Finish()

	params := url.Values{}
	params.Set("client_id", c.clientID)
	params.Set("format", "json")
	params.Set("limit", strconv.Itoa(c.limit))
	params.Set("search", query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/tracks?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Errorf("request failed: %v", err)
		sentry.CaptureException(err)
		span.Status = sentry.SpanStatusInternalError
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		span.Status = sentry.SpanStatusInternalError
		return nil, fmt.Errorf("jamendo API returned status %d", resp.StatusCode)
	}

	var body trackResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		span.Status = sentry.SpanStatusInternalError
		return nil, err
	}

	if body.Headers.Status != "success" {
		span.Status = sentry.SpanStatusInternalError
		return nil, fmt.Errorf("jamendo API error: %s (code %d)", body.Headers.Status, body.Headers.Code)
	}

	if len(body.Results) == 0 {
		span.Status = sentry.SpanStatusOK
		return nil, models.ErrNotFound
	}

	tracks := make([]models.Track, 0, len(body.Results))
	for _, r := range body.Results {
		tracks = append(tracks, models.Track{
			ID:              r.ID,
			Title:           r.Name,
			Artist:          r.ArtistName,
			URL:             r.ShareURL,
			AudioURL:        r.Audio,
			DurationSeconds: r.Duration,
			Source:          "jamendo",
		})
	}

	span.Status = sentry.SpanStatusOK
	span.SetData("results_count", len(tracks))
	return tracks, nil
}

// GetTrack fetches metadata for a single track ID.
func (c *Client) GetTrack(ctx context.Context, trackID string) (*models.Track, error) {
	params := url.Values{}
	params.Set("client_id", c.clientID)
	params.Set("format", "json")
	params.Set("id", trackID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/tracks?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("jamendo API returned status %d", resp.StatusCode)
	}

	var body trackResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}
	if len(body.Results) == 0 {
		return nil, models.ErrNotFound
	}

	r := body.Results[0]
	return &models.Track{
		ID:              r.ID,
		Title:           r.Name,
		Artist:          r.ArtistName,
		URL:             r.ShareURL,
		AudioURL:        r.Audio,
		DurationSeconds: r.Duration,
		Source:          "jamendo",
	}, nil
}

// Download streams the raw audio bytes for a track. The caller owns the
// returned ReadCloser.
func (c *Client) Download(ctx context.Context, track *models.Track) (io.ReadCloser, string, error) {
	if track.AudioURL == "" {
		return nil, "", models.ErrNotFound
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, track.AudioURL, nil)
	if err != nil {
		return nil, "", err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, "", fmt.Errorf("jamendo audio fetch returned status %d", resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "audio/mpeg"
	}
	return resp.Body, contentType, nil
}
