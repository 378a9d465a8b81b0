package nfo

import (
	"reflect"
	"testing"
)

func TestParseFloat(t *testing.T) {
	tests := []struct {
		input string
		want  float64
		ok    bool
	}{
		{"8.5", 8.5, true},
		{"8,5", 8.5, true},
		{" 7 ", 7, true},
		{"", 0, false},
		{"n/a", 0, false},
	}
	for _, tt := range tests {
		got, ok := parseFloat(tt.input)
		if got != tt.want || ok != tt.ok {
			t.Errorf("parseFloat(%q) = %v, %v; want %v, %v", tt.input, got, ok, tt.want, tt.ok)
		}
	}
}

func TestParseInt(t *testing.T) {
	tests := []struct {
		input string
		want  int
		ok    bool
	}{
		{"1999", 1999, true},
		{"1,234", 1234, true},
		{"", 0, false},
		{"abc", 0, false},
	}
	for _, tt := range tests {
		got, ok := parseInt(tt.input)
		if got != tt.want || ok != tt.ok {
			t.Errorf("parseInt(%q) = %v, %v; want %v, %v", tt.input, got, ok, tt.want, tt.ok)
		}
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{"1999-03-31", "1999-03-31", true},
		{"31.03.1999", "1999-03-31", true},
		{"1999", "1999-01-01", true},
		{"next tuesday", "", false},
	}
	for _, tt := range tests {
		got, ok := parseDate(tt.input)
		if got != tt.want || ok != tt.ok {
			t.Errorf("parseDate(%q) = %q, %v; want %q, %v", tt.input, got, ok, tt.want, tt.ok)
		}
	}
}

func TestSplitMultiValue(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"A, B", []string{"A", "B"}},
		{"USA / Germany", []string{"USA", "Germany"}},
		{"One|Two|Three", []string{"One", "Two", "Three"}},
		{"Single", []string{"Single"}},
		{" , ", nil},
	}
	for _, tt := range tests {
		if got := splitMultiValue(tt.input); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("splitMultiValue(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestNormalizeLanguage(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"en", "en"},
		{"eng", "en"},
		{"de-DE", "de"},
		{"Klingon battle speech", "Klingon battle speech"},
	}
	for _, tt := range tests {
		if got := normalizeLanguage(tt.input); got != tt.want {
			t.Errorf("normalizeLanguage(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNormalizeTrailer(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{
			"youtube plugin",
			"plugin://plugin.video.youtube/?action=play_video&videoid=dQw4w9WgXcQ",
			"https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			true,
		},
		{
			"hdtrailers plugin",
			"plugin://plugin.video.hdtrailers_net/video/heat/" + "https%3A%2F%2Fexample.com%2Ftrailer.mp4",
			"https://example.com/trailer.mp4",
			true,
		},
		{"bare url", "https://example.com/t.mp4", "https://example.com/t.mp4", true},
		{"garbage", "ftp://example.com/t.mp4", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := normalizeTrailer(tt.input)
			if got != tt.want || ok != tt.ok {
				t.Errorf("normalizeTrailer(%q) = %q, %v; want %q, %v", tt.input, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestIsImdbID(t *testing.T) {
	if !isImdbID("tt0133093") {
		t.Error("tt0133093 should be recognized")
	}
	if isImdbID("12345") || isImdbID("random") {
		t.Error("non-imdb values must be rejected")
	}
}
