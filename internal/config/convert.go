package config

import (
	"os"

	"github.com/pixelsoccupied/whisper-tube/internal/download"
	"github.com/pixelsoccupied/whisper-tube/internal/recognizer"
)

// ToRecognizerConfig maps the transcription section onto the
// recognizer's own config, resolving the API key.
func (c *Config) ToRecognizerConfig() recognizer.Config {
	return recognizer.Config{
		Provider: c.Transcription.Provider,
		APIKey:   c.resolveAPIKey(c.Transcription.Provider),
		Model:    c.Transcription.Model,
		Device:   c.Transcription.Device,
		Language: c.Transcription.Language,
		Threads:  c.Transcription.Threads,
	}
}

// ToDownloadConfig maps the download section onto the audio source
// config.
func (c *Config) ToDownloadConfig() download.Config {
	return download.Config{
		Binary:    c.Download.Binary,
		OutputDir: c.Output.Dir,
	}
}

// resolveAPIKey checks the providers map first, then the provider's
// environment variable.
func (c *Config) resolveAPIKey(provider string) string {
	if p, ok := c.Providers[provider]; ok && p.APIKey != "" {
		return p.APIKey
	}
	switch provider {
	case "openai":
		return os.Getenv("OPENAI_API_KEY")
	}
	return ""
}
