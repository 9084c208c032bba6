package config

import "testing"

func TestGetBcryptCost(t *testing.T) {
	tests := []struct {
		name string
		env  string
		want int
	}{
		{"empty", "", 12},
		{"invalid", "abc", 12},
		{"too_low", "3", 12},
		{"min_valid", "4", 4},
		{"default", "12", 12},
		{"high", "14", 14},
		{"over_ceiling", "40", 31},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("BCRYPT_COST", tt.env)
			if got := getBcryptCost(); got != tt.want {
				t.Errorf("getBcryptCost() = %d; want %d", got, tt.want)
			}
		})
	}
}

func TestGetYoutubeMaxResults(t *testing.T) {
	tests := []struct {
		name string
		env  string
		want int
	}{
		{"empty", "", 10},
		{"invalid", "foo", 10},
		{"zero", "0", 10},
		{"negative", "-5", 10},
		{"min", "1", 1},
		{"mid", "15", 15},
		{"max", "25", 25},
		{"over", "26", 25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("YOUTUBE_MAX_RESULTS", tt.env)
			if got := getYoutubeMaxResults(); got != tt.want {
				t.Errorf("getYoutubeMaxResults() = %d; want %d", got, tt.want)
			}
		})
	}
}

func TestGetJamendoLimit(t *testing.T) {
	tests := []struct {
		name string
		env  string
		want int
	}{
		{"empty", "", 10},
		{"invalid", "x", 10},
		{"zero", "0", 10},
		{"valid", "25", 25},
		{"max", "50", 50},
		{"over", "51", 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("JAMENDO_LIMIT", tt.env)
			if got := getJamendoLimit(); got != tt.want {
				t.Errorf("getJamendoLimit() = %d; want %d", got, tt.want)
			}
		})
	}
}

func TestGetModelDefaults(t *testing.T) {
	t.Setenv("GROQ_MODEL", "")
	if got := getGroqModel(); got != "llama-3.1-8b-instant" {
		t.Errorf("getGroqModel() = %q; want default", got)
	}
	t.Setenv("GROQ_MODEL", "llama-3.3-70b-versatile")
	if got := getGroqModel(); got != "llama-3.3-70b-versatile" {
		t.Errorf("getGroqModel() = %q; want override", got)
	}
	t.Setenv("GEMINI_MODEL", "")
	if got := getGeminiModel(); got != "gemini-2.0-flash" {
		t.Errorf("getGeminiModel() = %q; want default", got)
	}
}

func TestNewConfigReadsEnv(t *testing.T) {
	t.Setenv("SESSION_SECRET", "topsecret")
	t.Setenv("GENIUS_TOKEN", "tok")
	t.Setenv("SPOTIFY_ENABLED", "true")
	t.Setenv("SPOTIFY_CLIENT_ID", "id")
	t.Setenv("SPOTIFY_CLIENT_SECRET", "secret")

	NewConfig()

	if Config.Auth.JWTSecret != "topsecret" {
		t.Errorf("JWTSecret = %q", Config.Auth.JWTSecret)
	}
	if !Config.Genius.IsConfigured() {
		t.Error("expected Genius to be configured")
	}
	if !Config.Spotify.IsConfigured() {
		t.Error("expected Spotify to be configured")
	}
}
