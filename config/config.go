package config

import (
	"os"
	"strconv"
)

type ConfigStruct struct {
	Auth    AuthConfig
	Options Options
	Genius  GeniusConfig
	Groq    GroqConfig
	Gemini  GeminiConfig
	Youtube YoutubeConfig
	Jamendo JamendoConfig
	Spotify SpotifyConfig
}

type AuthConfig struct {
	JWTSecret  string
	BcryptCost int
}

type GeniusConfig struct {
	Token string
}

type GroqConfig struct {
	APIKey string
	Model  string
}

type GeminiConfig struct {
	Enabled bool
	APIKey  string
	Model   string
}

type YoutubeConfig struct {
	APIKey     string
	MaxResults int
}

type JamendoConfig struct {
	ClientID string
	Limit    int
}

type SpotifyConfig struct {
	ClientID     string
	ClientSecret string
	Enabled      bool
}

type Options struct {
	Port   string
	DBPath string
}

func (g *GeniusConfig) IsConfigured() bool {
	return g.Token != ""
}

func (s *SpotifyConfig) IsConfigured() bool {
	return s.Enabled && s.ClientID != "" && s.ClientSecret != ""
}

var Config *ConfigStruct

func NewConfig() {
	config := &ConfigStruct{
		Auth: AuthConfig{
			JWTSecret:  os.Getenv("SESSION_SECRET"),
			BcryptCost: getBcryptCost(),
		},
		Options: Options{
			Port:   os.Getenv("PORT"),
			DBPath: os.Getenv("DB_PATH"),
		},
		Genius: GeniusConfig{
			Token: os.Getenv("GENIUS_TOKEN"),
		},
		Groq: GroqConfig{
			APIKey: os.Getenv("GROQ_API_KEY"),
			Model:  getGroqModel(),
		},
		Gemini: GeminiConfig{
			Enabled: os.Getenv("GEMINI_ENABLED") == "true",
			APIKey:  os.Getenv("GEMINI_API_KEY"),
			Model:   getGeminiModel(),
		},
		Youtube: YoutubeConfig{
			APIKey:     os.Getenv("YOUTUBE_API_KEY"),
			MaxResults: getYoutubeMaxResults(),
		},
		Jamendo: JamendoConfig{
			ClientID: os.Getenv("JAMENDO_CLIENT_ID"),
			Limit:    getJamendoLimit(),
		},
		Spotify: SpotifyConfig{
			ClientID:     os.Getenv("SPOTIFY_CLIENT_ID"),
			ClientSecret: os.Getenv("SPOTIFY_CLIENT_SECRET"),
			Enabled:      os.Getenv("SPOTIFY_ENABLED") == "true",
		},
	}

	Config = config
}

func getBcryptCost() int {
	costStr := os.Getenv("BCRYPT_COST")
	if costStr == "" {
		return 12
	}
	cost, err := strconv.Atoi(costStr)
	if err != nil || cost < 4 {
		return 12
	}
	if cost > 31 {
		return 31 // bcrypt's hard ceiling
	}
	return cost
}

func getGroqModel() string {
	model := os.Getenv("GROQ_MODEL")
	if model == "" {
		return "llama-3.1-8b-instant"
	}
	return model
}

func getGeminiModel() string {
	model := os.Getenv("GEMINI_MODEL")
	if model == "" {
		return "gemini-2.0-flash"
	}
	return model
}

func getYoutubeMaxResults() int {
	limitStr := os.Getenv("YOUTUBE_MAX_RESULTS")
	if limitStr == "" {
		return 10
	}
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		return 10
	}
	if limit > 25 {
		return 25 // Cap to keep Data API quota usage sane
	}
	return limit
}

func getJamendoLimit() int {
	limitStr := os.Getenv("JAMENDO_LIMIT")
	if limitStr == "" {
		return 10
	}
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		return 10
	}
	if limit > 50 {
		return 50
	}
	return limit
}
