package transcript

import (
	"fmt"
	"os"
	"path/filepath"
)

// fallbackBase is used when no video ID could be extracted from the
// source URL.
const fallbackBase = "transcription"

// OutputName builds the transcript file name for a run:
// transcript_<videoID>.<ext>, or transcription.<ext> without an ID.
func OutputName(videoID string, format Format) string {
	if videoID == "" {
		return fmt.Sprintf("%s.%s", fallbackBase, format.Ext())
	}
	return fmt.Sprintf("transcript_%s.%s", videoID, format.Ext())
}

// Write persists rendered transcript content, overwriting any
// existing file at the path. Failures surface to the caller; there
// is no retry.
func Write(path, content string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("write transcript: %w", err)
	}
	return nil
}
