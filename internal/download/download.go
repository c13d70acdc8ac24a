package download

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

// AudioSource fetches the audio track for a video URL and returns
// the local file path. Alternate backends can be substituted without
// touching the rest of the pipeline.
type AudioSource interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Config for the yt-dlp source.
type Config struct {
	Binary    string // defaults to "yt-dlp"
	OutputDir string // defaults to the working directory
}

// YtdlpSource downloads audio with the yt-dlp binary, selecting the
// best available audio-only stream.
type YtdlpSource struct {
	config Config
}

func NewYtdlpSource(config Config) *YtdlpSource {
	if config.Binary == "" {
		config.Binary = "yt-dlp"
	}
	if config.OutputDir == "" {
		config.OutputDir = "."
	}
	return &YtdlpSource{config: config}
}

// audioFileName derives the downloaded audio name from the video ID,
// keeping the per-run file layout predictable.
func audioFileName(videoID string) string {
	if videoID == "" {
		return "audio.m4a"
	}
	return fmt.Sprintf("audio_%s.m4a", videoID)
}

func (s *YtdlpSource) args(url, outPath string) []string {
	return []string{
		"--no-playlist",
		"--no-progress",
		"-f", "bestaudio[ext=m4a]/bestaudio",
		"-x",
		"--audio-format", "m4a",
		"-o", outPath,
		url,
	}
}

func (s *YtdlpSource) Fetch(ctx context.Context, url string) (string, error) {
	binPath, err := exec.LookPath(s.config.Binary)
	if err != nil {
		return "", &DownloadError{URL: url, Err: fmt.Errorf("%s not found: install yt-dlp first", s.config.Binary)}
	}

	outPath := filepath.Join(s.config.OutputDir, audioFileName(VideoID(url)))

	cmd := exec.CommandContext(ctx, binPath, s.args(url, outPath)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	start := time.Now()
	err = cmd.Run()
	duration := time.Since(start)

	if err != nil {
		if ctx.Err() != nil {
			return "", &DownloadError{URL: url, Err: ctx.Err()}
		}
		log.Printf("download: yt-dlp failed after %v: %v\nstderr: %s", duration, err, stderr.String())
		return "", &DownloadError{URL: url, Err: fmt.Errorf("yt-dlp failed: %w", err)}
	}

	if _, err := os.Stat(outPath); err != nil {
		return "", &DownloadError{URL: url, Err: fmt.Errorf("audio file missing after download: %w", err)}
	}

	log.Printf("download: fetched audio for %s in %v: %s", url, duration, outPath)
	return outPath, nil
}
