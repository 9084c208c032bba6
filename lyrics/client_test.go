package lyrics

import "testing"

func TestCleanLyrics(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "plain",
			raw:  "line one\nline two",
			want: "line one\nline two",
		},
		{
			name: "crlf",
			raw:  "line one\r\nline two",
			want: "line one\nline two",
		},
		{
			name: "ovh preamble",
			raw:  "Paroles de la chanson Imagine par John Lennon\nImagine there's no heaven",
			want: "Imagine there's no heaven",
		},
		{
			name: "collapse blank runs",
			raw:  "verse one\n\n\n\nverse two",
			want: "verse one\n\nverse two",
		},
		{
			name: "leading and trailing blanks",
			raw:  "\n\nverse\n\n",
			want: "verse",
		},
		{
			name: "trailing whitespace on lines",
			raw:  "verse  \nchorus\t",
			want: "verse\nchorus",
		},
		{
			name: "empty",
			raw:  "",
			want: "",
		},
		{
			name: "only whitespace",
			raw:  "\n\n  \n",
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanLyrics(tt.raw); got != tt.want {
				t.Errorf("CleanLyrics() = %q, want %q", got, tt.want)
			}
		})
	}
}
