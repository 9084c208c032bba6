package main

import (
	"context"
	"log"
	"net/http"

	nested "github.com/antonfisher/nested-logrus-formatter"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	logrus "github.com/sirupsen/logrus"

	"github.com/rcjie05/song-explainer-ai/auth"
	appConfig "github.com/rcjie05/song-explainer-ai/config"
	"github.com/rcjie05/song-explainer-ai/database"
	"github.com/rcjie05/song-explainer-ai/gemini"
	"github.com/rcjie05/song-explainer-ai/genius"
	"github.com/rcjie05/song-explainer-ai/groq"
	"github.com/rcjie05/song-explainer-ai/handlers"
	"github.com/rcjie05/song-explainer-ai/jamendo"
	"github.com/rcjie05/song-explainer-ai/lyrics"
	"github.com/rcjie05/song-explainer-ai/models"
	"github.com/rcjie05/song-explainer-ai/pages"
	"github.com/rcjie05/song-explainer-ai/sentry"
	"github.com/rcjie05/song-explainer-ai/spotify"
	"github.com/rcjie05/song-explainer-ai/youtube"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Error loading .env file: %v", err)
	}
	appConfig.NewConfig()

	logrus.SetFormatter(&nested.Formatter{
		HideKeys:        true,
		FieldsOrder:     []string{"module", "function"},
		TimestampFormat: "2006-01-02 15:04:05",
	})

	sentry.Init()

	if err := run(context.Background()); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context) error {
	cfg := appConfig.Config

	if cfg.Auth.JWTSecret == "" {
		logrus.Fatal("SESSION_SECRET must be set")
	}

	db, err := database.New(cfg.Options.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	credentials := auth.NewCredentials(db, cfg.Auth.BcryptCost)
	sessions := auth.NewSessions(cfg.Auth.JWTSecret)

	var lyricsProvider models.LyricsProvider
	if cfg.Genius.IsConfigured() {
		logrus.Info("Using Genius as the lyrics provider")
		lyricsProvider = genius.New(cfg.Genius.Token)
	} else {
		logrus.Info("Using lyrics.ovh as the lyrics provider")
		lyricsProvider = lyrics.New()
	}

	var generator models.Generator
	if cfg.Gemini.Enabled {
		logrus.Infof("Using Gemini (%s) as the explanation generator", cfg.Gemini.Model)
		generator, err = gemini.New(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
		if err != nil {
			return err
		}
	} else {
		logrus.Infof("Using Groq (%s) as the explanation generator", cfg.Groq.Model)
		generator = groq.New(cfg.Groq.APIKey, cfg.Groq.Model)
	}

	var resolver handlers.SongResolver
	if cfg.Spotify.IsConfigured() {
		if err := spotify.NewSpotifyClient(); err != nil {
			logrus.Errorf("Error creating Spotify client, free-text resolution disabled: %v", err)
		} else {
			resolver = spotify.ResolveSong
		}
	}

	manager := handlers.NewManager(
		db,
		credentials,
		sessions,
		lyricsProvider,
		generator,
		youtube.New(),
		jamendo.New(cfg.Jamendo.ClientID, cfg.Jamendo.Limit),
		resolver,
	)

	router := gin.Default()
	router.Use(sentry.GetSentryGin())

	router.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(pages.AppShell))
	})

	api := router.Group("/api")
	{
		api.POST("/register", manager.Register)
		api.POST("/login", manager.Login)
		api.POST("/logout", manager.Logout)

		authed := api.Group("", sessions.Middleware())
		{
			authed.POST("/explain", manager.Explain)
			authed.GET("/history", manager.History)
			authed.GET("/lyrics/search", manager.LyricsSearch)
			authed.GET("/audio/search", manager.AudioSearch)
			authed.GET("/audio/jamendo/:trackID/download", manager.JamendoDownload)
		}
	}

	port := cfg.Options.Port
	if port == "" {
		port = "8080"
	}
	logrus.Infof("Starting server on :%s", port)
	return http.ListenAndServe(":"+port, router)
}
