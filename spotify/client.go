package spotify

import (
	"context"
	"errors"

	sentry "github.com/getsentry/sentry-go"
	log "github.com/sirupsen/logrus"
	spotifyclient "github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/rcjie05/song-explainer-ai/config"
	"github.com/rcjie05/song-explainer-ai/models"
)

var Spotify *spotifyclient.Client

// NewSpotifyClient authenticates with client credentials and sets the
// package client. Call once at startup when Spotify is configured.
func NewSpotifyClient() error {
	ctx := context.Background()
	cfg := &clientcredentials.Config{
		ClientID:     config.Config.Spotify.ClientID,
		ClientSecret: config.Config.Spotify.ClientSecret,
		TokenURL:     spotifyauth.TokenURL,
	}
	token, err := cfg.Token(ctx)
	if err != nil {
		sentry.CaptureException(err)
		return err
	}

	httpClient := spotifyauth.New().Client(ctx, token)
	Spotify = spotifyclient.New(httpClient)
	return nil
}

// ResolveSong turns a free-text query into a title/artist pair using the top
// Spotify track hit. models.ErrNotFound when the search matches nothing.
func ResolveSong(ctx context.Context, query string) (*models.Song, error) {
	if Spotify == nil {
		return nil, errors.New("spotify client not initialized")
	}

	span := sentry.StartSpan(ctx, "spotify.search")
	span.Description = "Search Spotify API"
	span.SetTag("query", query)
	defer span.Finish()

	results, err := Spotify.Search(ctx, query, spotifyclient.SearchTypeTrack)
	if err != nil {
		sentry.CaptureException(err)
		span.Status = sentry.SpanStatusInternalError
		return nil, err
	}

	if results.Tracks == nil || len(results.Tracks.Tracks) == 0 {
		span.Status = sentry.SpanStatusOK
		return nil, models.ErrNotFound
	}

	track := results.Tracks.Tracks[0]
	song := &models.Song{
		Title:  track.Name,
		Artist: JoinArtists(trackArtistNames(track)),
	}

	log.Tracef("resolved %q to %s by %s", query, song.Title, song.Artist)
	span.Status = sentry.SpanStatusOK
	return song, nil
}

func trackArtistNames(track spotifyclient.FullTrack) []string {
	names := make([]string, 0, len(track.Artists))
	for _, artist := range track.Artists {
		names = append(names, artist.Name)
	}
	return names
}

// JoinArtists formats a list of artist names the way the UI shows them:
// "A", "A & B", "A, B & C".
func JoinArtists(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	case 2:
		return names[0] + " & " + names[1]
	}

	out := names[0]
	for _, name := range names[1 : len(names)-1] {
		out += ", " + name
	}
	return out + " & " + names[len(names)-1]
}
