package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/pixelsoccupied/whisper-tube/internal/transcript"
)

// ValidateURL rejects values that cannot be a video URL. Anything
// http(s)-shaped is accepted; yt-dlp is the real judge of what it can
// download.
func ValidateURL(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("URL is required")
	}
	if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
		return fmt.Errorf("enter a full URL starting with http:// or https://")
	}
	return nil
}

// PromptURL asks for the video URL to transcribe.
func PromptURL() (string, error) {
	var url string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Video URL").
				Description("The YouTube video to transcribe").
				Placeholder("https://www.youtube.com/watch?v=...").
				Validate(ValidateURL).
				Value(&url),
		),
	).WithTheme(getTheme())

	if err := form.Run(); err != nil {
		return "", err
	}
	return strings.TrimSpace(url), nil
}

// PromptFormat asks for the output format. Plain text is the first
// option and the default.
func PromptFormat(current transcript.Format) (transcript.Format, error) {
	selected := current
	if !selected.Valid() {
		selected = transcript.FormatText
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[transcript.Format]().
				Title("Output Format").
				Description("How the transcript is written").
				Options(
					huh.NewOption("Plain text (.txt)", transcript.FormatText),
					huh.NewOption("Timestamped JSON (.json)", transcript.FormatJSON),
					huh.NewOption("Subtitles (.srt)", transcript.FormatSRT),
				).
				Value(&selected),
		),
	).WithTheme(getTheme())

	if err := form.Run(); err != nil {
		return "", err
	}
	return selected, nil
}

// PromptDevice asks which compute device local transcription should
// use. Unavailable devices fall back to cpu at run time with a
// warning, so any answer here is safe.
func PromptDevice(current string) (string, error) {
	selected := current
	if selected == "" {
		selected = "mps"
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Compute Device").
				Description("Used by the local whisper-cpp provider").
				Options(
					huh.NewOption("Apple Silicon GPU (mps)", "mps"),
					huh.NewOption("NVIDIA GPU (cuda)", "cuda"),
					huh.NewOption("CPU (cpu)", "cpu"),
				).
				Value(&selected),
		),
	).WithTheme(getTheme())

	if err := form.Run(); err != nil {
		return "", err
	}
	return selected, nil
}

// PromptLanguage asks for the transcription language. Empty means
// auto-detect.
func PromptLanguage(current string) (string, error) {
	language := current

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Language").
				Description("ISO-639-1 code (e.g., 'en', 'es', 'fr') or empty for auto-detect").
				Placeholder("auto-detect").
				Value(&language),
		),
	).WithTheme(getTheme())

	if err := form.Run(); err != nil {
		return "", err
	}
	return strings.TrimSpace(language), nil
}
