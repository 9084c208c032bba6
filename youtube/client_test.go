package youtube

import "testing"

func TestParseYoutubeURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{
			name: "watch video",
			url:  "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			want: "dQw4w9WgXcQ",
		},
		{
			name: "watch video no www",
			url:  "https://youtube.com/watch?v=abc123",
			want: "abc123",
		},
		{
			name: "youtu.be short",
			url:  "https://youtu.be/dQw4w9WgXcQ",
			want: "dQw4w9WgXcQ",
		},
		{
			name: "invalid host",
			url:  "https://example.com/watch?v=abc",
			want: "",
		},
		{
			name: "malformed URL",
			url:  "://invalid-url",
			want: "",
		},
		{
			name: "no video param",
			url:  "https://www.youtube.com/",
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseYoutubeURL(tt.url); got != tt.want {
				t.Errorf("ParseYoutubeURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseDurationSeconds(t *testing.T) {
	tests := []struct {
		name string
		iso  string
		want int
	}{
		{"minutes and seconds", "PT1M30S", 90},
		{"one hour", "PT1H", 3600},
		{"thirty seconds", "PT30S", 30},
		{"hours minutes seconds", "PT1H2M3S", 3723},
		{"minutes only", "PT4M", 240},
		{"empty", "", 0},
		{"garbage", "not-a-duration", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseDurationSeconds(tt.iso); got != tt.want {
				t.Errorf("parseDurationSeconds(%q) = %d, want %d", tt.iso, got, tt.want)
			}
		})
	}
}
