package genius

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/rcjie05/song-explainer-ai/models"
)

// Client searches Genius for a song and scrapes the lyrics from its page.
// The Genius API only returns song metadata; the lyrics themselves are not
// exposed, so the song URL from the top search hit is fetched and parsed.
type Client struct {
	httpClient *http.Client
	token      string
	apiBase    string
}

type searchResponse struct {
	Response struct {
		Hits []struct {
			Type   string `json:"type"`
			Result struct {
				Title         string `json:"title"`
				ArtistNames   string `json:"artist_names"`
				URL           string `json:"url"`
				PrimaryArtist struct {
					Name string `json:"name"`
				} `json:"primary_artist"`
			} `json:"result"`
		} `json:"hits"`
	} `json:"response"`
}

func New(token string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		token:   token,
		apiBase: "https://api.genius.com",
	}
}

// Lookup searches for title+artist, takes the best hit, and scrapes its
// lyrics page. models.ErrNotFound when no hit has usable lyrics.
func (c *Client) Lookup(ctx context.Context, title, artist string) (*models.LyricsResult, error) {
	song, err := c.search(ctx, strings.TrimSpace(title+" "+artist))
	if err != nil {
		return nil, err
	}

	lyricsText, err := c.scrapeLyrics(ctx, song.URL)
	if err != nil {
		return nil, err
	}
	if lyricsText == "" {
		log.Debugf("genius page %s had no lyrics containers", song.URL)
		return nil, models.ErrNotFound
	}

	return &models.LyricsResult{
		Song:   models.Song{Title: song.Title, Artist: song.Artist},
		Lyrics: lyricsText,
	}, nil
}

type songHit struct {
	Title  string
	Artist string
	URL    string
}

func (c *Client) search(ctx context.Context, query string) (*songHit, error) {
	u := fmt.Sprintf("%s/search?q=%s", c.apiBase, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("genius API returned status %d", resp.StatusCode)
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}

	for _, hit := range body.Response.Hits {
		if hit.Type != "song" {
			continue
		}
		artist := hit.Result.PrimaryArtist.Name
		if artist == "" {
			artist = hit.Result.ArtistNames
		}
		return &songHit{
			Title:  hit.Result.Title,
			Artist: artist,
			URL:    hit.Result.URL,
		}, nil
	}

	return nil, models.ErrNotFound
}
