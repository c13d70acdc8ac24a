package config

import "time"

type Config struct {
	Transcription TranscriptionConfig       `toml:"transcription"`
	Output        OutputConfig              `toml:"output"`
	Download      DownloadConfig            `toml:"download"`
	Providers     map[string]ProviderConfig `toml:"providers"`
}

// ProviderConfig holds the API key for a cloud provider.
type ProviderConfig struct {
	APIKey string `toml:"api_key"`
}

type TranscriptionConfig struct {
	Provider string `toml:"provider"` // "openai" or "whisper-cpp"
	Model    string `toml:"model"`
	Language string `toml:"language"` // ISO-639-1 code, empty for auto-detect
	Device   string `toml:"device"`   // mps, cuda, or cpu
	Threads  int    `toml:"threads"`  // CPU threads for local transcription (0 = auto: NumCPU-1)
}

type OutputConfig struct {
	Format    string `toml:"format"` // txt, json, or srt
	Dir       string `toml:"dir"`
	KeepAudio bool   `toml:"keep_audio"`
}

type DownloadConfig struct {
	Binary  string        `toml:"binary"`
	Timeout time.Duration `toml:"timeout"`
}
