package youtube

import (
	"context"
	"fmt"
	"html"
	"net/url"
	"strconv"
	"strings"

	sentry "github.com/getsentry/sentry-go"
	log "github.com/sirupsen/logrus"

	"google.golang.org/api/option"
	ytapi "google.golang.org/api/youtube/v3"

	"github.com/rcjie05/song-explainer-ai/config"
	"github.com/rcjie05/song-explainer-ai/models"
)

// Client searches YouTube for track metadata via the Data API. Audio is
// never downloaded or transcoded here; results carry the watch URL only.
type Client struct{}

func New() *Client {
	return &Client{}
}

// ParseYoutubeURL extracts the video ID from a youtube.com watch URL.
// Returns "" for anything else.
func ParseYoutubeURL(rawURL string) string {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}

	if parsedURL.Host == "www.youtube.com" || parsedURL.Host == "youtube.com" {
		return parsedURL.Query().Get("v")
	}
	if parsedURL.Host == "youtu.be" {
		return strings.TrimPrefix(parsedURL.Path, "/")
	}

	return ""
}

// GetVideoByID fetches metadata for a single video.
func (c *Client) GetVideoByID(ctx context.Context, videoID string) (*models.Track, error) {
	apiKey := config.Config.Youtube.APIKey

	service, err := ytapi.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		log.Errorf("error creating YouTube client: %v", err)
		return nil, fmt.Errorf("error creating YouTube client: %w", err)
	}

	call := service.Videos.List([]string{"snippet", "contentDetails"}).Id(videoID)
	response, err := call.Do()
	if err != nil {
		log.Errorf("error querying YouTube: %v", err)
		return nil, fmt.Errorf("error querying YouTube: %w", err)
	}

	if len(response.Items) == 0 {
		return nil, models.ErrNotFound
	}

	item := response.Items[0]
	log.Tracef("video found: %v", item.Snippet.Title)
	return &models.Track{
		ID:              videoID,
		Title:           html.UnescapeString(item.Snippet.Title),
		Artist:          item.Snippet.ChannelTitle,
		URL:             "https://www.youtube.com/watch?v=" + videoID,
		DurationSeconds: parseDurationSeconds(item.ContentDetails.Duration),
		Source:          "youtube",
	}, nil
}

// SearchTracks searches the music category and returns metadata for the top
// hits. Details are fetched in one batched call.
func (c *Client) SearchTracks(ctx context.Context, query string) ([]models.Track, error) {
	logger := log.WithFields(log.Fields{"module": "youtube", "function": "SearchTracks"})

	span := sentry.StartSpan(ctx, "youtube.search")
	span.Description = "Search YouTube API"
	span.SetTag("query", query)
	defer span.Finish()

	apiKey := config.Config.Youtube.APIKey

	service, err := ytapi.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		logger.Errorf("error creating YouTube client: %v", err)
		sentry.CaptureException(err)
		span.Status = sentry.SpanStatusInternalError
		return nil, fmt.Errorf("error creating YouTube client: %w", err)
	}

	call := service.Search.List([]string{"snippet"}).
		Q(query + " (official music video|official audio|lyrics|audio|Audio)").
		MaxResults(int64(config.Config.Youtube.MaxResults)).
		Type("video").
		VideoCategoryId("10")

	response, err := call.Do()
	if err != nil {
		logger.Errorf("error querying YouTube: %v", err)
		sentry.CaptureException(err)
		span.Status = sentry.SpanStatusInternalError
		return nil, fmt.Errorf("error querying YouTube: %w", err)
	}

	// Collect all video IDs for batch request
	videoIDs := make([]string, 0)
	titleByID := make(map[string]string)
	channelByID := make(map[string]string)

	for _, item := range response.Items {
		if item.Id.Kind == "youtube#video" {
			videoIDs = append(videoIDs, item.Id.VideoId)
			titleByID[item.Id.VideoId] = html.UnescapeString(item.Snippet.Title)
			channelByID[item.Id.VideoId] = item.Snippet.ChannelTitle
		}
	}

	if len(videoIDs) == 0 {
		span.Status = sentry.SpanStatusOK
		return nil, models.ErrNotFound
	}

	// Single API call for all video details instead of N calls
	videoCall := service.Videos.List([]string{"contentDetails"}).Id(videoIDs...)
	videoResponse, err := videoCall.Do()
	if err != nil {
		logger.Errorf("error getting video details: %v", err)
		sentry.CaptureException(err)
		span.Status = sentry.SpanStatusInternalError
		return nil, fmt.Errorf("error getting video details: %w", err)
	}

	tracks := make([]models.Track, 0, len(videoResponse.Items))
	for _, item := range videoResponse.Items {
		tracks = append(tracks, models.Track{
			ID:              item.Id,
			Title:           titleByID[item.Id],
			Artist:          channelByID[item.Id],
			URL:             "https://www.youtube.com/watch?v=" + item.Id,
			DurationSeconds: parseDurationSeconds(item.ContentDetails.Duration),
			Source:          "youtube",
		})
	}

	span.Status = sentry.SpanStatusOK
	span.SetData("results_count", len(tracks))
	logger.Tracef("found %d videos", len(tracks))
	return tracks, nil
}

// parseDurationSeconds converts an ISO 8601 duration like PT3M52S to seconds.
func parseDurationSeconds(duration string) int {
	duration = strings.TrimPrefix(duration, "PT")

	var seconds int
	if idx := strings.Index(duration, "H"); idx != -1 {
		h, _ := strconv.Atoi(duration[:idx])
		seconds += h * 3600
		duration = duration[idx+1:]
	}

	if idx := strings.Index(duration, "M"); idx != -1 {
		m, _ := strconv.Atoi(duration[:idx])
		seconds += m * 60
		duration = duration[idx+1:]
	}

	if idx := strings.Index(duration, "S"); idx != -1 {
		s, _ := strconv.Atoi(duration[:idx])
		seconds += s
	}

	return seconds
}
