package tui

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/pixelsoccupied/whisper-tube/internal/config"
	"github.com/pixelsoccupied/whisper-tube/internal/models/whisper"
)

// ConfigureResult holds the configuration result from the TUI
type ConfigureResult struct {
	Config    *config.Config
	Cancelled bool
}

// ConfigSection represents a configuration section
type ConfigSection string

const (
	SectionTranscription ConfigSection = "transcription"
	SectionOutput        ConfigSection = "output"
	SectionDownload      ConfigSection = "download"
	SectionProviders     ConfigSection = "providers"
	SectionSaveExit      ConfigSection = "save_exit"
	SectionDiscardExit   ConfigSection = "discard_exit"
)

// Configure starts the interactive configuration editor.
func Configure(cfg *config.Config) (*ConfigureResult, error) {
	for {
		ClearScreen()
		fmt.Println(Logo())
		fmt.Println()

		section, err := selectSection()
		if err != nil {
			return &ConfigureResult{Cancelled: true}, nil
		}

		switch section {
		case SectionSaveExit:
			confirmed, err := showSummary(cfg)
			if err != nil {
				return &ConfigureResult{Cancelled: true}, nil
			}
			if confirmed {
				return &ConfigureResult{Config: cfg, Cancelled: false}, nil
			}

		case SectionDiscardExit:
			return &ConfigureResult{Cancelled: true}, nil

		case SectionTranscription:
			if err := editTranscription(cfg); err != nil {
				continue
			}

		case SectionOutput:
			if err := editOutput(cfg); err != nil {
				continue
			}

		case SectionDownload:
			if err := editDownload(cfg); err != nil {
				continue
			}

		case SectionProviders:
			if err := editProviders(cfg); err != nil {
				continue
			}
		}
	}
}

func selectSection() (ConfigSection, error) {
	options := []huh.Option[ConfigSection]{
		huh.NewOption("Transcription", SectionTranscription),
		huh.NewOption("Output", SectionOutput),
		huh.NewOption("Download", SectionDownload),
		huh.NewOption("Providers", SectionProviders),
		huh.NewOption("Save & Exit", SectionSaveExit),
		huh.NewOption("Discard & Exit", SectionDiscardExit),
	}

	var selected ConfigSection
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[ConfigSection]().
				Title("Configuration Menu").
				Description("↑/↓ navigate • enter select • esc cancel").
				Options(options...).
				Value(&selected),
		),
	).WithTheme(getTheme())

	if err := form.Run(); err != nil {
		return "", err
	}

	return selected, nil
}

// editTranscription handles provider, model, device and language.
func editTranscription(cfg *config.Config) error {
	selectedProvider := cfg.Transcription.Provider

	providerDesc := "Choose which service to use for speech-to-text"
	if cfg.Transcription.Provider != "" {
		providerDesc = fmt.Sprintf("Currently: %s/%s", cfg.Transcription.Provider, cfg.Transcription.Model)
	}

	providerForm := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Transcription Provider").
				Description(providerDesc).
				Options(
					huh.NewOption("OpenAI Whisper (API)", "openai"),
					huh.NewOption("Whisper.cpp (local)", "whisper-cpp"),
				).
				Value(&selectedProvider),
		),
	).WithTheme(getTheme())

	if err := providerForm.Run(); err != nil {
		return err
	}
	cfg.Transcription.Provider = selectedProvider

	modelOptions := transcriptionModelOptions(selectedProvider)
	selectedModel := cfg.Transcription.Model
	if len(modelOptions) > 0 {
		found := false
		for _, opt := range modelOptions {
			if opt.Value == selectedModel {
				found = true
				break
			}
		}
		if !found {
			selectedModel = modelOptions[0].Value
		}
	}

	language := cfg.Transcription.Language
	langDesc := "ISO-639-1 code (e.g., 'en', 'es', 'fr') or empty for auto-detect"
	if cfg.Transcription.Language != "" {
		langDesc = fmt.Sprintf("Currently: %s. %s", cfg.Transcription.Language, langDesc)
	}

	modelForm := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Transcription Model").
				Options(modelOptions...).
				Value(&selectedModel),
			huh.NewInput().
				Title("Language").
				Description(langDesc).
				Placeholder("auto-detect").
				Value(&language),
		),
	).WithTheme(getTheme())

	if err := modelForm.Run(); err != nil {
		return err
	}

	cfg.Transcription.Model = selectedModel
	cfg.Transcription.Language = language

	if selectedProvider == "whisper-cpp" {
		device, err := PromptDevice(cfg.Transcription.Device)
		if err != nil {
			return err
		}
		cfg.Transcription.Device = device
	}

	return nil
}

func transcriptionModelOptions(provider string) []huh.Option[string] {
	switch provider {
	case "openai":
		return []huh.Option[string]{
			huh.NewOption("whisper-1", "whisper-1"),
		}
	case "whisper-cpp":
		models := whisper.ListModels()
		options := make([]huh.Option[string], 0, len(models))
		for _, m := range models {
			label := fmt.Sprintf("%s (%s)", m.ID, m.Size)
			if whisper.IsInstalled(m.ID) {
				label += " - installed"
			} else {
				label += " - not installed"
			}
			options = append(options, huh.NewOption(label, m.ID))
		}
		return options
	default:
		return []huh.Option[string]{}
	}
}

func editOutput(cfg *config.Config) error {
	format := cfg.Output.Format
	if format == "" {
		format = "txt"
	}
	dir := cfg.Output.Dir
	keepAudio := cfg.Output.KeepAudio

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Output Format").
				Options(
					huh.NewOption("Plain text (.txt)", "txt"),
					huh.NewOption("Timestamped JSON (.json)", "json"),
					huh.NewOption("Subtitles (.srt)", "srt"),
				).
				Value(&format),
			huh.NewInput().
				Title("Output Directory").
				Description("Where transcript files are written").
				Placeholder(".").
				Value(&dir),
			huh.NewConfirm().
				Title("Keep downloaded audio?").
				Affirmative("Keep").
				Negative("Delete after transcription").
				Value(&keepAudio),
		),
	).WithTheme(getTheme())

	if err := form.Run(); err != nil {
		return err
	}

	cfg.Output.Format = format
	cfg.Output.Dir = dir
	cfg.Output.KeepAudio = keepAudio
	return nil
}

func editDownload(cfg *config.Config) error {
	binary := cfg.Download.Binary
	timeout := cfg.Download.Timeout.String()

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Downloader Binary").
				Description("Command used to fetch audio").
				Placeholder("yt-dlp").
				Value(&binary),
			huh.NewInput().
				Title("Download Timeout").
				Description("Maximum time per download (e.g., '5m', '30m')").
				Value(&timeout).
				Validate(func(s string) error {
					if _, err := time.ParseDuration(s); err != nil {
						return fmt.Errorf("invalid duration format (use '30s', '5m', etc.)")
					}
					return nil
				}),
		),
	).WithTheme(getTheme())

	if err := form.Run(); err != nil {
		return err
	}

	cfg.Download.Binary = binary
	cfg.Download.Timeout, _ = time.ParseDuration(timeout)
	return nil
}

func editProviders(cfg *config.Config) error {
	current := ""
	if pc, ok := cfg.Providers["openai"]; ok {
		current = pc.APIKey
	}

	desc := "Stored in the config file; the OPENAI_API_KEY environment variable also works"
	if current != "" {
		desc = fmt.Sprintf("Currently: %s. %s", maskAPIKey(current), desc)
	}

	apiKey := current
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("OpenAI API Key").
				Description(desc).
				EchoMode(huh.EchoModePassword).
				Value(&apiKey),
		),
	).WithTheme(getTheme())

	if err := form.Run(); err != nil {
		return err
	}

	if cfg.Providers == nil {
		cfg.Providers = make(map[string]config.ProviderConfig)
	}
	cfg.Providers["openai"] = config.ProviderConfig{APIKey: apiKey}
	return nil
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "***"
	}
	return key[:7] + "..." + key[len(key)-4:]
}

func showSummary(cfg *config.Config) (bool, error) {
	fmt.Println()
	fmt.Println(StyleHeader.Render("Configuration Summary"))
	fmt.Println()

	fmt.Printf("  %s %s (%s)\n", StyleLabel.Render("Transcription:"), cfg.Transcription.Provider, cfg.Transcription.Model)
	if cfg.Transcription.Language != "" {
		fmt.Printf("  %s %s\n", StyleLabel.Render("Language:"), cfg.Transcription.Language)
	}
	if cfg.Transcription.Provider == "whisper-cpp" {
		fmt.Printf("  %s %s\n", StyleLabel.Render("Device:"), cfg.Transcription.Device)
		if cfg.Transcription.Threads > 0 {
			fmt.Printf("  %s %s\n", StyleLabel.Render("Threads:"), strconv.Itoa(cfg.Transcription.Threads))
		}
	}

	fmt.Printf("  %s %s -> %s\n", StyleLabel.Render("Output:"), cfg.Output.Format, cfg.Output.Dir)
	if cfg.Output.KeepAudio {
		fmt.Printf("  %s kept after transcription\n", StyleLabel.Render("Audio:"))
	}

	fmt.Printf("  %s %s (timeout %s)\n", StyleLabel.Render("Download:"), cfg.Download.Binary, cfg.Download.Timeout)

	fmt.Println()

	var confirmed bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Save this configuration?").
				Affirmative("Save").
				Negative("Cancel").
				Value(&confirmed),
		),
	).WithTheme(getTheme())

	if err := form.Run(); err != nil {
		return false, err
	}

	return confirmed, nil
}
