package recognizer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/pixelsoccupied/whisper-tube/internal/models/whisper"
	"github.com/pixelsoccupied/whisper-tube/internal/transcript"
)

// WhisperCppRecognizer runs the local whisper-cli binary and parses
// its JSON output file for segment timing and the detected language.
type WhisperCppRecognizer struct {
	config Config
}

func NewWhisperCppRecognizer(config Config) *WhisperCppRecognizer {
	return &WhisperCppRecognizer{config: config}
}

// whisperCppOutput is the shape of the -oj output file. Offsets are
// milliseconds from the start of the audio.
type whisperCppOutput struct {
	Result struct {
		Language string `json:"language"`
	} `json:"result"`
	Transcription []struct {
		Offsets struct {
			From int64 `json:"from"`
			To   int64 `json:"to"`
		} `json:"offsets"`
		Text string `json:"text"`
	} `json:"transcription"`
}

func (r *WhisperCppRecognizer) modelPath() (string, error) {
	model := r.config.Model
	if model == "" {
		model = "base.en"
	}
	// a path is used as-is, a bare name goes through the registry
	if strings.ContainsRune(model, os.PathSeparator) || strings.HasSuffix(model, ".bin") {
		return model, nil
	}
	return whisper.GetInstalledPath(model)
}

func (r *WhisperCppRecognizer) Transcribe(ctx context.Context, audioPath string) (*transcript.Result, error) {
	whisperPath, err := exec.LookPath("whisper-cli")
	if err != nil {
		return nil, &RecognitionError{Provider: "whisper-cpp", Err: fmt.Errorf("whisper-cli not found: install whisper.cpp first")}
	}

	modelPath, err := r.modelPath()
	if err != nil {
		return nil, &RecognitionError{Provider: "whisper-cpp", Err: err}
	}
	if _, err := os.Stat(modelPath); err != nil {
		return nil, &RecognitionError{Provider: "whisper-cpp", Err: fmt.Errorf("model file not found: %s", modelPath)}
	}

	device, err := ResolveDevice(r.config.Device)
	if err != nil {
		return nil, &RecognitionError{Provider: "whisper-cpp", Err: err}
	}

	// whisper-cli wants 16kHz mono WAV input
	wavPath, err := convertToWAV(ctx, audioPath)
	if err != nil {
		return nil, &RecognitionError{Provider: "whisper-cpp", Err: err}
	}
	defer os.Remove(wavPath)

	lang := r.config.Language
	if lang == "" {
		lang = "auto"
	}

	outBase := filepath.Join(os.TempDir(), fmt.Sprintf("whisper-tube-%d", time.Now().UnixNano()))
	outJSON := outBase + ".json"
	defer os.Remove(outJSON)

	args := []string{
		"-m", modelPath,
		"-l", lang,
		"-oj",
		"-of", outBase,
		"-np",
		"-f", wavPath,
	}
	if r.config.Threads > 0 {
		args = append(args, "-t", fmt.Sprintf("%d", r.config.Threads))
	}
	if device == "cpu" {
		args = append(args, "-ng")
	}

	cmd := exec.CommandContext(ctx, whisperPath, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	start := time.Now()
	err = cmd.Run()
	duration := time.Since(start)

	if err != nil {
		if ctx.Err() != nil {
			return nil, &RecognitionError{Provider: "whisper-cpp", Err: ctx.Err()}
		}
		log.Printf("whisper-cpp: command failed after %v: %v\nstderr: %s", duration, err, stderr.String())
		return nil, &RecognitionError{Provider: "whisper-cpp", Err: fmt.Errorf("whisper-cli failed: %w", err)}
	}

	data, err := os.ReadFile(outJSON)
	if err != nil {
		return nil, &RecognitionError{Provider: "whisper-cpp", Err: fmt.Errorf("read whisper output: %w", err)}
	}

	result, err := parseWhisperCppOutput(data)
	if err != nil {
		return nil, &RecognitionError{Provider: "whisper-cpp", Err: err}
	}

	log.Printf("whisper-cpp: transcribed %s in %v (%d segments, language %q)",
		audioPath, duration, len(result.Segments), result.Language)
	return result, nil
}

func parseWhisperCppOutput(data []byte) (*transcript.Result, error) {
	var out whisperCppOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("parse whisper output: %w", err)
	}

	result := &transcript.Result{
		Language: out.Result.Language,
		Segments: make([]transcript.Segment, 0, len(out.Transcription)),
	}

	var fullText strings.Builder
	for _, entry := range out.Transcription {
		text := strings.TrimSpace(entry.Text)
		if text == "" {
			continue
		}
		if fullText.Len() > 0 {
			fullText.WriteString(" ")
		}
		fullText.WriteString(text)

		result.Segments = append(result.Segments, transcript.Segment{
			Start: float64(entry.Offsets.From) / 1000.0,
			End:   float64(entry.Offsets.To) / 1000.0,
			Text:  text,
		})
	}
	result.Text = fullText.String()

	return result, nil
}

// convertToWAV extracts mono 16kHz WAV with ffmpeg, the input format
// whisper-cli expects.
func convertToWAV(ctx context.Context, audioPath string) (string, error) {
	ffmpegPath, err := exec.LookPath("ffmpeg")
	if err != nil {
		return "", fmt.Errorf("ffmpeg not found: install ffmpeg first")
	}

	base := strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))
	outPath := filepath.Join(os.TempDir(), fmt.Sprintf("%s_16k_%d.wav", base, time.Now().UnixNano()))

	cmd := exec.CommandContext(ctx, ffmpegPath,
		"-y", "-i", audioPath,
		"-ac", "1", "-ar", "16000",
		"-f", "wav",
		outPath,
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		log.Printf("recognizer: ffmpeg failed: %v\nstderr: %s", err, stderr.String())
		return "", fmt.Errorf("ffmpeg failed: %w", err)
	}
	return outPath, nil
}
