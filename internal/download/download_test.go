package download

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestVideoID(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{name: "watch url", url: "https://www.youtube.com/watch?v=dQw4w9WgXcQ", want: "dQw4w9WgXcQ"},
		{name: "watch url with extra params", url: "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s&list=PL1", want: "dQw4w9WgXcQ"},
		{name: "short link", url: "https://youtu.be/dQw4w9WgXcQ", want: "dQw4w9WgXcQ"},
		{name: "short link with query", url: "https://youtu.be/dQw4w9WgXcQ?si=xyz", want: "dQw4w9WgXcQ"},
		{name: "shorts", url: "https://www.youtube.com/shorts/abc123DEF45", want: "abc123DEF45"},
		{name: "embed", url: "https://www.youtube.com/embed/abc123DEF45", want: "abc123DEF45"},
		{name: "live", url: "https://www.youtube.com/live/abc123DEF45", want: "abc123DEF45"},
		{name: "no id", url: "https://www.youtube.com/", want: ""},
		{name: "unrelated url", url: "https://example.com/watch", want: ""},
		{name: "garbage", url: "://not-a-url", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := VideoID(tt.url); got != tt.want {
				t.Errorf("VideoID(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestYtdlpSource_Args(t *testing.T) {
	s := NewYtdlpSource(Config{OutputDir: "/tmp/out"})
	args := s.args("https://youtu.be/abc", "/tmp/out/audio_abc.m4a")

	joined := strings.Join(args, " ")
	for _, want := range []string{"--no-playlist", "bestaudio", "-o /tmp/out/audio_abc.m4a", "https://youtu.be/abc"} {
		if !strings.Contains(joined, want) {
			t.Errorf("args missing %q: %s", want, joined)
		}
	}
	if args[len(args)-1] != "https://youtu.be/abc" {
		t.Errorf("URL should be the final argument, got %q", args[len(args)-1])
	}
}

func TestAudioFileName(t *testing.T) {
	if got := audioFileName("abc123"); got != "audio_abc123.m4a" {
		t.Errorf("audioFileName(abc123) = %q", got)
	}
	if got := audioFileName(""); got != "audio.m4a" {
		t.Errorf("audioFileName(empty) = %q", got)
	}
}

func TestYtdlpSource_MissingBinary(t *testing.T) {
	s := NewYtdlpSource(Config{Binary: "definitely-not-a-real-binary-xyz"})
	_, err := s.Fetch(context.Background(), "https://youtu.be/abc")
	if err == nil {
		t.Fatal("Fetch() should fail when the binary is missing")
	}
	if !IsDownloadError(err) {
		t.Errorf("Fetch() error = %v, want DownloadError", err)
	}
}

func TestDownloadError_Unwrap(t *testing.T) {
	inner := errors.New("network unreachable")
	err := &DownloadError{URL: "https://youtu.be/abc", Err: inner}

	if !errors.Is(err, inner) {
		t.Error("DownloadError should unwrap to the inner error")
	}
	if !strings.Contains(err.Error(), "https://youtu.be/abc") {
		t.Errorf("DownloadError message should name the URL, got %q", err.Error())
	}
}
