package pipeline

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/pixelsoccupied/whisper-tube/internal/download"
	"github.com/pixelsoccupied/whisper-tube/internal/recognizer"
	"github.com/pixelsoccupied/whisper-tube/internal/transcript"
)

const previewLength = 500

// Options control a single transcription run.
type Options struct {
	Format    transcript.Format
	OutputDir string
	KeepAudio bool
	Timeout   time.Duration
}

// Result reports where the transcript ended up.
type Result struct {
	Transcript *transcript.Result
	OutputPath string
	AudioPath  string
}

// Pipeline runs the download -> recognize -> render -> persist chain
// for a single video URL.
type Pipeline struct {
	source     download.AudioSource
	recognizer recognizer.Recognizer
}

func New(source download.AudioSource, rec recognizer.Recognizer) *Pipeline {
	return &Pipeline{source: source, recognizer: rec}
}

func (p *Pipeline) Run(ctx context.Context, url string, opts Options) (*Result, error) {
	// Fail on a bad format before spending time on the download.
	if !opts.Format.Valid() {
		return nil, fmt.Errorf("%w: %s", transcript.ErrInvalidFormat, opts.Format)
	}

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	log.Printf("pipeline: downloading audio from %s", url)
	audioPath, err := p.source.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	if !opts.KeepAudio {
		defer func() {
			if err := os.Remove(audioPath); err != nil && !os.IsNotExist(err) {
				log.Printf("pipeline: failed to remove audio file %s: %v", audioPath, err)
			}
		}()
	}

	log.Printf("pipeline: transcribing %s", audioPath)
	result, err := p.recognizer.Transcribe(ctx, audioPath)
	if err != nil {
		return nil, err
	}

	if opts.Format == transcript.FormatSRT && len(result.Segments) == 0 {
		log.Printf("pipeline: no timestamped segments available, subtitle file will be empty (consider text format)")
	}

	content, err := transcript.Render(result, opts.Format)
	if err != nil {
		return nil, err
	}

	videoID := download.VideoID(url)
	outputPath := filepath.Join(opts.OutputDir, transcript.OutputName(videoID, opts.Format))
	if err := transcript.Write(outputPath, content); err != nil {
		return nil, err
	}
	log.Printf("pipeline: transcript written to %s", outputPath)

	run := &Result{Transcript: result, OutputPath: outputPath}
	if opts.KeepAudio {
		run.AudioPath = audioPath
	}
	return run, nil
}

// Preview returns the first part of the transcript text for display
// after a run.
func (r *Result) Preview() string {
	return r.Transcript.Preview(previewLength)
}
