package config

import (
	"fmt"

	"github.com/pixelsoccupied/whisper-tube/internal/language"
	"github.com/pixelsoccupied/whisper-tube/internal/models/whisper"
	"github.com/pixelsoccupied/whisper-tube/internal/recognizer"
	"github.com/pixelsoccupied/whisper-tube/internal/transcript"
)

func (c *Config) Validate() error {
	if c.Transcription.Provider == "" {
		return fmt.Errorf("invalid transcription.provider: empty")
	}

	switch c.Transcription.Provider {
	case "openai":
		if c.resolveAPIKey("openai") == "" {
			return fmt.Errorf("OpenAI API key required: not found in config (providers.openai.api_key) or environment variable (OPENAI_API_KEY)")
		}
		if c.Transcription.Model != "" && c.Transcription.Model != "whisper-1" {
			return fmt.Errorf("invalid model for openai: %s (must be whisper-1)", c.Transcription.Model)
		}

	case "whisper-cpp":
		// local provider, no API key required
		if model := c.Transcription.Model; model != "" {
			info := whisper.GetModel(model)
			if info == nil {
				return fmt.Errorf("invalid model for whisper-cpp: %s (run: whispertube model list)", model)
			}
			if !info.Multilingual && c.Transcription.Language != "" && c.Transcription.Language != "en" {
				return fmt.Errorf("model %s does not support language '%s' (english-only model)", model, c.Transcription.Language)
			}
		}

	default:
		return fmt.Errorf("unsupported transcription.provider: %s (must be openai or whisper-cpp)", c.Transcription.Provider)
	}

	if !language.IsValidCode(c.Transcription.Language) {
		return fmt.Errorf("invalid transcription.language: %s (use empty string for auto-detect or ISO-639-1 codes like 'en', 'es', 'fr')", c.Transcription.Language)
	}

	if !recognizer.ValidDevice(c.Transcription.Device) {
		return fmt.Errorf("invalid transcription.device: %s (must be mps, cuda, or cpu)", c.Transcription.Device)
	}

	if c.Output.Format != "" {
		if _, err := transcript.ParseFormat(c.Output.Format); err != nil {
			return fmt.Errorf("invalid output.format: %w", err)
		}
	}

	if c.Download.Timeout < 0 {
		return fmt.Errorf("invalid download.timeout: %v", c.Download.Timeout)
	}

	return nil
}
