package models

import (
	"context"
	"errors"
)

// ErrNotFound means a lookup completed but matched nothing. Distinct from a
// provider failure: callers surface it as a hint to try another input path.
var ErrNotFound = errors.New("not found")

type Song struct {
	Title  string `json:"title"`
	Artist string `json:"artist"`
}

type LyricsResult struct {
	Song   Song   `json:"song"`
	Lyrics string `json:"lyrics"`
}

// Track is audio-source metadata. AudioURL is only set by sources that serve
// direct audio (Jamendo); YouTube results carry the watch URL instead.
type Track struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Artist          string `json:"artist"`
	URL             string `json:"url"`
	AudioURL        string `json:"audio_url,omitempty"`
	DurationSeconds int    `json:"duration_seconds,omitempty"`
	Source          string `json:"source"`
}

// LyricsProvider finds lyrics for a song. Returns ErrNotFound when the
// provider answered but had no match.
type LyricsProvider interface {
	Lookup(ctx context.Context, title, artist string) (*LyricsResult, error)
}

// Generator produces an explanation for a block of lyrics with one
// synchronous call. No retries, no streaming.
type Generator interface {
	Explain(ctx context.Context, lyrics string) (string, error)
}

// AudioSearcher finds track metadata for a free-text query.
type AudioSearcher interface {
	SearchTracks(ctx context.Context, query string) ([]Track, error)
}
