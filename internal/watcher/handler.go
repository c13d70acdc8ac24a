package watcher

import (
	"context"
	"log"
	"path/filepath"
	"strings"

	"github.com/pixelsoccupied/whisper-tube/internal/recognizer"
	"github.com/pixelsoccupied/whisper-tube/internal/transcript"
)

// TranscribeHandler returns a Handler that transcribes each settled
// audio file and writes the transcript next to it in outputDir, named
// after the audio file with the format's extension.
func TranscribeHandler(rec recognizer.Recognizer, format transcript.Format, outputDir string) Handler {
	return func(ctx context.Context, audioPath string) {
		result, err := rec.Transcribe(ctx, audioPath)
		if err != nil {
			log.Printf("watcher: transcription of %s failed: %v", audioPath, err)
			return
		}

		content, err := transcript.Render(result, format)
		if err != nil {
			log.Printf("watcher: rendering %s failed: %v", audioPath, err)
			return
		}

		base := strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))
		outputPath := filepath.Join(outputDir, base+"."+format.Ext())
		if err := transcript.Write(outputPath, content); err != nil {
			log.Printf("watcher: writing transcript for %s failed: %v", audioPath, err)
			return
		}

		log.Printf("watcher: transcript written to %s", outputPath)
	}
}
