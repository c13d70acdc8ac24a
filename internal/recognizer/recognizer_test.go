package recognizer

import (
	"errors"
	"strings"
	"testing"
)

var errTest = errors.New("backend exploded")

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name:   "openai with key",
			config: Config{Provider: "openai", APIKey: "sk-test", Model: "whisper-1"},
		},
		{
			name:    "openai without key",
			config:  Config{Provider: "openai", Model: "whisper-1"},
			wantErr: true,
		},
		{
			name:   "whisper-cpp needs no key",
			config: Config{Provider: "whisper-cpp", Model: "base.en"},
		},
		{
			name:    "unsupported provider",
			config:  Config{Provider: "deepspeech"},
			wantErr: true,
		},
		{
			name:    "empty provider",
			config:  Config{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := New(tt.config)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && r == nil {
				t.Error("New() returned nil recognizer without error")
			}
		})
	}
}

func TestRecognitionError(t *testing.T) {
	inner := &RecognitionError{Provider: "openai", Err: errTest}
	if !IsRecognitionError(inner) {
		t.Error("IsRecognitionError should match a RecognitionError")
	}
	if !strings.Contains(inner.Error(), "openai") {
		t.Errorf("error message should name the provider, got %q", inner.Error())
	}
	if inner.Unwrap() != errTest {
		t.Error("Unwrap should return the inner error")
	}
}

func TestParseWhisperCppOutput(t *testing.T) {
	sample := `{
  "result": {"language": "en"},
  "transcription": [
    {"timestamps": {"from": "00:00:00,000", "to": "00:00:01,500"},
     "offsets": {"from": 0, "to": 1500},
     "text": " Hi there."},
    {"timestamps": {"from": "00:00:01,500", "to": "00:00:03,250"},
     "offsets": {"from": 1500, "to": 3250},
     "text": " How are you?"},
    {"timestamps": {"from": "00:00:03,250", "to": "00:00:03,500"},
     "offsets": {"from": 3250, "to": 3500},
     "text": "   "}
  ]
}`

	result, err := parseWhisperCppOutput([]byte(sample))
	if err != nil {
		t.Fatalf("parseWhisperCppOutput() error = %v", err)
	}

	if result.Language != "en" {
		t.Errorf("Language = %q, want en", result.Language)
	}
	if result.Text != "Hi there. How are you?" {
		t.Errorf("Text = %q, want joined segment text", result.Text)
	}
	// the whitespace-only entry is dropped
	if len(result.Segments) != 2 {
		t.Fatalf("Segments = %d, want 2", len(result.Segments))
	}
	if result.Segments[0].Start != 0 || result.Segments[0].End != 1.5 {
		t.Errorf("segment[0] timing = %v-%v, want 0-1.5", result.Segments[0].Start, result.Segments[0].End)
	}
	if result.Segments[1].Start != 1.5 || result.Segments[1].End != 3.25 {
		t.Errorf("segment[1] timing = %v-%v, want 1.5-3.25", result.Segments[1].Start, result.Segments[1].End)
	}
	if result.Segments[0].Text != "Hi there." {
		t.Errorf("segment[0] text = %q", result.Segments[0].Text)
	}
}

func TestParseWhisperCppOutput_Invalid(t *testing.T) {
	if _, err := parseWhisperCppOutput([]byte("not json")); err == nil {
		t.Error("parseWhisperCppOutput() should fail on invalid JSON")
	}
}

func TestParseWhisperCppOutput_Empty(t *testing.T) {
	result, err := parseWhisperCppOutput([]byte(`{"result":{"language":"en"},"transcription":[]}`))
	if err != nil {
		t.Fatalf("parseWhisperCppOutput() error = %v", err)
	}
	if len(result.Segments) != 0 || result.Text != "" {
		t.Errorf("empty transcription should yield empty result, got %+v", result)
	}
}
