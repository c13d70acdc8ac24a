package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pixelsoccupied/whisper-tube/internal/config"
	"github.com/pixelsoccupied/whisper-tube/internal/deps"
	"github.com/pixelsoccupied/whisper-tube/internal/download"
	"github.com/pixelsoccupied/whisper-tube/internal/models/whisper"
	"github.com/pixelsoccupied/whisper-tube/internal/pipeline"
	"github.com/pixelsoccupied/whisper-tube/internal/recognizer"
	"github.com/pixelsoccupied/whisper-tube/internal/transcript"
	"github.com/pixelsoccupied/whisper-tube/internal/tui"
	"github.com/pixelsoccupied/whisper-tube/internal/watcher"
)

var version = "dev"

func main() {
	_ = rootCmd.Execute()
}

var rootCmd = &cobra.Command{
	Use:   "whispertube",
	Short: "Transcribe YouTube videos to text, timestamped JSON, or subtitles",
}

func init() {
	rootCmd.AddCommand(
		transcribeCmd(),
		watchCmd(),
		configureCmd(),
		depsCmd(),
		modelCmd(),
		versionCmd(),
	)
}

type transcribeFlags struct {
	format    string
	device    string
	language  string
	model     string
	provider  string
	outputDir string
	keepAudio bool
}

func transcribeCmd() *cobra.Command {
	var flags transcribeFlags

	cmd := &cobra.Command{
		Use:   "transcribe [url]",
		Short: "Download a video's audio and transcribe it",
		Long: `Download the audio track of a YouTube video and transcribe it.
Without a URL argument the missing inputs are asked interactively.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			url := ""
			if len(args) == 1 {
				url = args[0]
			}
			return runTranscribe(cmd.Context(), url, cmd, &flags)
		},
	}

	cmd.Flags().StringVarP(&flags.format, "format", "f", "", "output format: txt, json, or srt")
	cmd.Flags().StringVar(&flags.device, "device", "", "compute device for local transcription: mps, cuda, or cpu")
	cmd.Flags().StringVarP(&flags.language, "language", "l", "", "ISO-639-1 language code (empty = auto-detect)")
	cmd.Flags().StringVar(&flags.model, "model", "", "transcription model")
	cmd.Flags().StringVar(&flags.provider, "provider", "", "transcription provider: openai or whisper-cpp")
	cmd.Flags().StringVarP(&flags.outputDir, "output-dir", "o", "", "directory for transcript files")
	cmd.Flags().BoolVar(&flags.keepAudio, "keep-audio", false, "keep the downloaded audio file")

	return cmd
}

func runTranscribe(ctx context.Context, url string, cmd *cobra.Command, flags *transcribeFlags) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := applyFlags(cfg, cmd, flags); err != nil {
		return err
	}

	interactive := url == ""
	if interactive {
		tui.ClearScreen()
		fmt.Println(tui.Logo())
		fmt.Println()

		url, err = tui.PromptURL()
		if err != nil {
			return err
		}

		if !cmd.Flags().Changed("format") {
			format, err := tui.PromptFormat(transcript.Format(cfg.Output.Format))
			if err != nil {
				return err
			}
			cfg.Output.Format = string(format)
		}

		if cfg.Transcription.Provider == "whisper-cpp" && !cmd.Flags().Changed("device") {
			device, err := tui.PromptDevice(cfg.Transcription.Device)
			if err != nil {
				return err
			}
			cfg.Transcription.Device = device
		}

		if !cmd.Flags().Changed("language") {
			language, err := tui.PromptLanguage(cfg.Transcription.Language)
			if err != nil {
				return err
			}
			cfg.Transcription.Language = language
		}
	} else if err := tui.ValidateURL(url); err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	format, err := transcript.ParseFormat(cfg.Output.Format)
	if err != nil {
		return err
	}

	rec, err := recognizer.New(cfg.ToRecognizerConfig())
	if err != nil {
		return err
	}
	source := download.NewYtdlpSource(cfg.ToDownloadConfig())

	p := pipeline.New(source, rec)
	result, err := p.Run(ctx, url, pipeline.Options{
		Format:    format,
		OutputDir: cfg.Output.Dir,
		KeepAudio: cfg.Output.KeepAudio,
		Timeout:   cfg.Download.Timeout,
	})
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(tui.StyleSuccess.Render("Transcription complete"))
	fmt.Println()
	if preview := result.Preview(); preview != "" {
		fmt.Println(tui.StyleMuted.Render(preview))
		fmt.Println()
	}
	fmt.Printf("Transcript saved to %s\n", result.OutputPath)
	if result.AudioPath != "" {
		fmt.Printf("Audio kept at %s\n", result.AudioPath)
	}
	return nil
}

// applyFlags layers command-line flags over the loaded config.
func applyFlags(cfg *config.Config, cmd *cobra.Command, flags *transcribeFlags) error {
	if cmd.Flags().Changed("format") {
		format, err := transcript.ParseFormat(flags.format)
		if err != nil {
			return err
		}
		cfg.Output.Format = string(format)
	}
	if cmd.Flags().Changed("device") {
		cfg.Transcription.Device = flags.device
	}
	if cmd.Flags().Changed("language") {
		cfg.Transcription.Language = flags.language
	}
	if cmd.Flags().Changed("model") {
		cfg.Transcription.Model = flags.model
	}
	if cmd.Flags().Changed("provider") {
		cfg.Transcription.Provider = flags.provider
		if !cmd.Flags().Changed("model") {
			cfg.Transcription.Model = ""
		}
	}
	if cmd.Flags().Changed("output-dir") {
		cfg.Output.Dir = flags.outputDir
	}
	if cmd.Flags().Changed("keep-audio") {
		cfg.Output.KeepAudio = flags.keepAudio
	}
	return nil
}

func watchCmd() *cobra.Command {
	var outputDir string

	cmd := &cobra.Command{
		Use:   "watch <dir>",
		Short: "Watch a directory and transcribe audio files dropped into it",
		Long: `Watch a directory for audio files and transcribe each one as it
appears. Files already in the directory are processed on startup.
Config file changes take effect without restarting.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(args[0], outputDir)
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "directory for transcript files (defaults to the watched directory)")

	return cmd
}

func runWatch(dir, outputDir string) error {
	manager, err := config.NewManager()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	defer manager.Stop()

	if outputDir == "" {
		outputDir = dir
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := manager.StartWatching(ctx); err != nil {
		return fmt.Errorf("failed to watch config: %w", err)
	}

	// Each file gets a recognizer built from the current config, so a
	// config edit mid-session applies to the next file.
	handler := func(ctx context.Context, audioPath string) {
		cfg := manager.GetConfig()

		format, err := transcript.ParseFormat(cfg.Output.Format)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid output format in config: %v\n", err)
			return
		}
		rec, err := recognizer.New(cfg.ToRecognizerConfig())
		if err != nil {
			fmt.Fprintf(os.Stderr, "recognizer unavailable: %v\n", err)
			return
		}

		watcher.TranscribeHandler(rec, format, outputDir)(ctx, audioPath)
	}

	w := watcher.New(dir, handler)
	if err := w.Start(ctx); err != nil {
		return err
	}
	defer w.Stop()

	fmt.Printf("Watching %s (transcripts in %s). Press Ctrl+C to stop.\n", dir, outputDir)
	<-ctx.Done()
	return nil
}

func configureCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "configure",
		Short: "Interactive configuration setup",
		Long: `Interactive configuration editor for whispertube.
This covers:
- Transcription provider, model, device and language
- Output format and directory
- Download tool and timeout
- Provider API keys`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigure()
		},
	}
}

func runConfigure() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	result, err := tui.Configure(cfg)
	if err != nil {
		return fmt.Errorf("configuration editor error: %w", err)
	}

	if result.Cancelled {
		fmt.Println("Configuration cancelled.")
		return nil
	}

	if err := result.Config.Validate(); err != nil {
		fmt.Printf("Configuration validation failed: %v\n", err)
		return err
	}

	if err := config.Save(result.Config); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println()
	fmt.Println("Configuration saved successfully!")
	fmt.Println()

	configPath, _ := config.GetConfigPath()
	fmt.Printf("Config file location: %s\n", configPath)
	return nil
}

func depsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deps",
		Short: "Check external tool availability",
		RunE: func(cmd *cobra.Command, args []string) error {
			printDep("yt-dlp (required)", deps.CheckYtdlp())
			printDep("ffmpeg (required for whisper-cpp)", deps.CheckFFmpeg())
			printDep("whisper-cli (required for whisper-cpp)", deps.CheckWhisperCli())
			return nil
		},
	}
}

func printDep(name string, status deps.Status) {
	if status.Installed {
		fmt.Printf("[x] %s: %s", name, status.Path)
		if status.Version != "" {
			fmt.Printf(" (%s)", status.Version)
		}
		fmt.Println()
	} else {
		fmt.Printf("[ ] %s: not found\n", name)
	}
}

func modelCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "model",
		Short: "Manage local whisper models",
	}

	cmd.AddCommand(modelListCmd())
	cmd.AddCommand(modelDownloadCmd())
	cmd.AddCommand(modelRemoveCmd())

	return cmd
}

func modelListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available whisper-cpp models",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, m := range whisper.ListModels() {
				prefix := "  [ ]"
				if whisper.IsInstalled(m.ID) {
					prefix = "  [x]"
				}
				lang := "english-only"
				if m.Multilingual {
					lang = "multilingual"
				}
				fmt.Printf("%s %s [%s, %s]\n", prefix, m.ID, m.Size, lang)
			}
			return nil
		},
	}
}

func modelDownloadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "download <model-id>",
		Short: "Download a whisper-cpp model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runModelDownload(cmd.Context(), args[0])
		},
	}
}

func runModelDownload(ctx context.Context, modelID string) error {
	model := whisper.GetModel(modelID)
	if model == nil {
		return fmt.Errorf("unknown model: %s (run: whispertube model list)", modelID)
	}

	if whisper.IsInstalled(modelID) {
		fmt.Printf("model '%s' is already installed at %s\n", modelID, whisper.GetModelPath(modelID))
		return nil
	}

	fmt.Printf("downloading %s (%s)...\n", modelID, model.Size)

	var lastPercent int
	err := whisper.Download(ctx, modelID, func(downloaded, total int64) {
		if total > 0 {
			percent := int(downloaded * 100 / total)
			if percent >= lastPercent+10 {
				fmt.Printf("%d%% ", percent)
				lastPercent = percent
			}
		}
	})
	if err != nil {
		return fmt.Errorf("download failed: %w", err)
	}

	fmt.Printf("\ndownload complete: %s\n", whisper.GetModelPath(modelID))
	return nil
}

func modelRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <model-id>",
		Short: "Remove a downloaded model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := whisper.Remove(args[0]); err != nil {
				return err
			}
			fmt.Printf("model '%s' removed successfully\n", args[0])
			return nil
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the whispertube version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(version)
			return nil
		},
	}
}
