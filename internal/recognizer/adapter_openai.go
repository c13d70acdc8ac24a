package recognizer

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/pixelsoccupied/whisper-tube/internal/transcript"
)

// OpenAIRecognizer transcribes through the OpenAI Whisper API. It
// requests the verbose JSON response so segment timing and the
// detected language come back with the text.
type OpenAIRecognizer struct {
	client *openai.Client
	config Config
}

func NewOpenAIRecognizer(config Config) *OpenAIRecognizer {
	return &OpenAIRecognizer{
		client: openai.NewClient(config.APIKey),
		config: config,
	}
}

func (r *OpenAIRecognizer) Transcribe(ctx context.Context, audioPath string) (*transcript.Result, error) {
	req := openai.AudioRequest{
		Model:    r.config.Model,
		FilePath: audioPath,
		Language: r.config.Language,
		Format:   openai.AudioResponseFormatVerboseJSON,
	}

	start := time.Now()
	resp, err := r.client.CreateTranscription(ctx, req)
	duration := time.Since(start)

	if err != nil {
		log.Printf("openai: API call failed after %v: %v", duration, err)
		return nil, &RecognitionError{Provider: "openai", Err: fmt.Errorf("transcription request: %w", err)}
	}

	result := &transcript.Result{
		Text:     strings.TrimSpace(resp.Text),
		Language: resp.Language,
		Segments: make([]transcript.Segment, 0, len(resp.Segments)),
	}
	for _, seg := range resp.Segments {
		result.Segments = append(result.Segments, transcript.Segment{
			Start: seg.Start,
			End:   seg.End,
			Text:  strings.TrimSpace(seg.Text),
		})
	}

	log.Printf("openai: transcribed %s in %v (%d segments, language %q)",
		audioPath, duration, len(result.Segments), result.Language)
	return result, nil
}
