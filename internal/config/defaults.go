package config

import "time"

// DefaultConfig returns the configuration used when no config file
// exists yet. It mirrors the defaults of the interactive prompts.
func DefaultConfig() *Config {
	return &Config{
		Transcription: TranscriptionConfig{
			Provider: "openai",
			Model:    "whisper-1",
			Language: "",
			Device:   "mps",
			Threads:  0,
		},
		Output: OutputConfig{
			Format:    "txt",
			Dir:       ".",
			KeepAudio: false,
		},
		Download: DownloadConfig{
			Binary:  "yt-dlp",
			Timeout: 10 * time.Minute,
		},
		Providers: make(map[string]ProviderConfig),
	}
}
