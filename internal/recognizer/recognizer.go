package recognizer

import (
	"context"
	"fmt"
	"os"

	"github.com/pixelsoccupied/whisper-tube/internal/transcript"
)

// Recognizer turns an audio file into a transcription result.
// Backends are interchangeable; the formatting stage never sees
// which one produced the result.
type Recognizer interface {
	Transcribe(ctx context.Context, audioPath string) (*transcript.Result, error)
}

// Config selects and parameterizes a recognition backend.
type Config struct {
	Provider string // "openai" or "whisper-cpp"
	APIKey   string
	Model    string
	Device   string // mps, cuda, or cpu; cloud backends ignore it
	Language string // ISO-639-1 code, empty for auto-detect
	Threads  int    // CPU threads for local transcription (0 = backend default)
}

func DefaultConfig() Config {
	return Config{
		Provider: "openai",
		Model:    "whisper-1",
		Device:   "mps",
	}
}

// New creates the recognizer for the configured provider.
func New(config Config) (Recognizer, error) {
	switch config.Provider {
	case "openai":
		if config.APIKey == "" {
			return nil, fmt.Errorf("OpenAI API key required")
		}
		return NewOpenAIRecognizer(config), nil

	case "whisper-cpp":
		return NewWhisperCppRecognizer(config), nil

	default:
		return nil, fmt.Errorf("unsupported provider: %s", config.Provider)
	}
}

// NewDefault builds a recognizer from defaults plus the environment.
func NewDefault() (Recognizer, error) {
	config := DefaultConfig()
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		config.APIKey = apiKey
	}
	return New(config)
}
