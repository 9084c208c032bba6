package handlers

// handlers own the HTTP surface: auth endpoints, the explain flow, history
// reads, and the provider search endpoints. Every failure is mapped to one
// response for the request that caused it and nothing else.

import (
	"context"
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/rcjie05/song-explainer-ai/auth"
	"github.com/rcjie05/song-explainer-ai/database"
	"github.com/rcjie05/song-explainer-ai/models"
	"github.com/rcjie05/song-explainer-ai/sentry"
)

// lookupHint is shown when a lyric search comes up empty; pasting the lyrics
// always works.
const lookupHint = "Song not found or lyrics unavailable. Try pasting the lyrics instead."

// SongResolver turns a free-text query into a title/artist pair.
type SongResolver func(ctx context.Context, query string) (*models.Song, error)

// AudioStore is the Jamendo-shaped source: searchable tracks that can also
// be fetched by ID and streamed as raw audio.
type AudioStore interface {
	models.AudioSearcher
	GetTrack(ctx context.Context, trackID string) (*models.Track, error)
	Download(ctx context.Context, track *models.Track) (io.ReadCloser, string, error)
}

type Manager struct {
	DB          *database.Database
	Credentials *auth.Credentials
	Sessions    *auth.Sessions
	Lyrics      models.LyricsProvider
	Generator   models.Generator
	Youtube     models.AudioSearcher
	Jamendo     AudioStore
	Resolver    SongResolver
}

func NewManager(
	db *database.Database,
	credentials *auth.Credentials,
	sessions *auth.Sessions,
	lyricsProvider models.LyricsProvider,
	generator models.Generator,
	youtubeClient models.AudioSearcher,
	jamendoClient AudioStore,
	resolver SongResolver,
) *Manager {
	return &Manager{
		DB:          db,
		Credentials: credentials,
		Sessions:    sessions,
		Lyrics:      lyricsProvider,
		Generator:   generator,
		Youtube:     youtubeClient,
		Jamendo:     jamendoClient,
		Resolver:    resolver,
	}
}

type credentialsRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (m *Manager) Register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	if err := m.Credentials.Register(req.Username, req.Password); err != nil {
		if errors.Is(err, auth.ErrUsernameTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": "username already taken"})
			return
		}
		if errors.Is(err, auth.ErrPasswordTooLong) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "password too long (max 72 bytes)"})
			return
		}
		log.Errorf("register failed for %s: %v", req.Username, err)
		sentry.ReportError(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
		return
	}

	log.Infof("registered user %s", req.Username)
	c.JSON(http.StatusCreated, gin.H{"ok": true})
}

func (m *Manager) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	// Unknown user and wrong password both land here, indistinguishably.
	if !m.Credentials.Verify(req.Username, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, err := m.Sessions.Issue(req.Username)
	if err != nil {
		log.Errorf("failed to issue session for %s: %v", req.Username, err)
		sentry.ReportError(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}

	c.SetCookie(auth.SessionCookie, token, 0, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"ok": true, "username": req.Username})
}

func (m *Manager) Logout(c *gin.Context) {
	c.SetCookie(auth.SessionCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

type explainRequest struct {
	Title  string `json:"title"`
	Artist string `json:"artist"`
	Lyrics string `json:"lyrics"`
	Query  string `json:"query"`
}

type explainResponse struct {
	Song        models.Song `json:"song"`
	Lyrics      string      `json:"lyrics,omitempty"`
	Explanation string      `json:"explanation"`
}

func (m *Manager) Explain(c *gin.Context) {
	username := auth.Username(c)

	var req explainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	var song models.Song
	lyricsText := strings.TrimSpace(req.Lyrics)

	switch {
	case lyricsText != "":
		// Pasted-lyrics path: song stays a placeholder.

	case req.Query != "" && m.Resolver != nil:
		resolved, err := m.Resolver(c.Request.Context(), req.Query)
		if err != nil {
			m.renderLookupError(c, err)
			return
		}
		result, err := m.lookupLyrics(c.Request.Context(), resolved.Title, resolved.Artist)
		if err != nil {
			m.renderLookupError(c, err)
			return
		}
		song = result.Song
		lyricsText = result.Lyrics

	case req.Title != "" && req.Artist != "":
		result, err := m.lookupLyrics(c.Request.Context(), req.Title, req.Artist)
		if err != nil {
			m.renderLookupError(c, err)
			return
		}
		song = result.Song
		lyricsText = result.Lyrics

	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "provide title and artist, a query, or pasted lyrics"})
		return
	}

	explanation, err := m.Generator.Explain(c.Request.Context(), lyricsText)
	if err != nil {
		log.Errorf("explanation generation failed: %v", err)
		sentry.ReportError(err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "explanation generation failed"})
		return
	}

	if err := m.DB.RecordExplanation(username, song.Title, song.Artist, explanation); err != nil {
		log.Errorf("failed to record history for %s: %v", username, err)
		sentry.ReportError(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save history"})
		return
	}

	c.JSON(http.StatusOK, explainResponse{
		Song:        song,
		Lyrics:      lyricsText,
		Explanation: explanation,
	})
}

func (m *Manager) lookupLyrics(ctx context.Context, title, artist string) (*models.LyricsResult, error) {
	return m.Lyrics.Lookup(ctx, title, artist)
}

func (m *Manager) renderLookupError(c *gin.Context, err error) {
	if errors.Is(err, models.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": lookupHint})
		return
	}
	log.Errorf("lyrics lookup failed: %v", err)
	sentry.ReportError(err)
	c.JSON(http.StatusBadGateway, gin.H{"error": "lyrics provider failed"})
}

type historyEntry struct {
	ID          int64  `json:"id"`
	SongTitle   string `json:"song_title"`
	Artist      string `json:"artist"`
	Explanation string `json:"explanation"`
	Timestamp   string `json:"timestamp"`
}

func (m *Manager) History(c *gin.Context) {
	username := auth.Username(c)

	records, err := m.DB.GetHistory(username)
	if err != nil {
		log.Errorf("failed to load history for %s: %v", username, err)
		sentry.ReportError(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load history"})
		return
	}

	entries := make([]historyEntry, 0, len(records))
	for _, r := range records {
		entries = append(entries, historyEntry{
			ID:          r.ID,
			SongTitle:   r.SongTitle,
			Artist:      r.Artist,
			Explanation: r.Explanation,
			Timestamp:   r.Timestamp,
		})
	}

	c.JSON(http.StatusOK, gin.H{"history": entries})
}

func (m *Manager) LyricsSearch(c *gin.Context) {
	title := c.Query("title")
	artist := c.Query("artist")
	if title == "" || artist == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title and artist are required"})
		return
	}

	result, err := m.lookupLyrics(c.Request.Context(), title, artist)
	if err != nil {
		m.renderLookupError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (m *Manager) AudioSearch(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q is required"})
		return
	}

	var searcher models.AudioSearcher
	switch source := c.DefaultQuery("source", "jamendo"); source {
	case "youtube":
		searcher = m.Youtube
	case "jamendo":
		searcher = m.Jamendo
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "source must be youtube or jamendo"})
		return
	}

	tracks, err := searcher.SearchTracks(c.Request.Context(), query)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no tracks found"})
			return
		}
		log.Errorf("audio search failed: %v", err)
		sentry.ReportError(err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "audio search failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"tracks": tracks})
}

func (m *Manager) JamendoDownload(c *gin.Context) {
	trackID := c.Param("trackID")

	track, err := m.Jamendo.GetTrack(c.Request.Context(), trackID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "track not found"})
			return
		}
		log.Errorf("jamendo track lookup failed: %v", err)
		sentry.ReportError(err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "track lookup failed"})
		return
	}

	body, contentType, err := m.Jamendo.Download(c.Request.Context(), track)
	if err != nil {
		log.Errorf("jamendo download failed: %v", err)
		sentry.ReportError(err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "audio download failed"})
		return
	}
	defer body.Close()

	c.Header("Content-Type", contentType)
	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
		"filename": track.Title + ".mp3",
	}))
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, body); err != nil {
		log.Warnf("jamendo stream interrupted: %v", err)
	}
}
