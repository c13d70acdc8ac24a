package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// createTestConfig returns a valid configuration for testing
func createTestConfig() *Config {
	return &Config{
		Transcription: TranscriptionConfig{
			Provider: "openai",
			Model:    "whisper-1",
			Language: "",
			Device:   "mps",
		},
		Output: OutputConfig{
			Format: "txt",
			Dir:    ".",
		},
		Download: DownloadConfig{
			Binary:  "yt-dlp",
			Timeout: 10 * time.Minute,
		},
		Providers: map[string]ProviderConfig{
			"openai": {APIKey: "sk-test-key"},
		},
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:   "valid config",
			mutate: func(c *Config) {},
		},
		{
			name:    "empty provider",
			mutate:  func(c *Config) { c.Transcription.Provider = "" },
			wantErr: true,
		},
		{
			name:    "unsupported provider",
			mutate:  func(c *Config) { c.Transcription.Provider = "deepspeech" },
			wantErr: true,
		},
		{
			name:    "invalid openai model",
			mutate:  func(c *Config) { c.Transcription.Model = "gpt-4o" },
			wantErr: true,
		},
		{
			name: "whisper-cpp without key is fine",
			mutate: func(c *Config) {
				c.Transcription.Provider = "whisper-cpp"
				c.Transcription.Model = "base.en"
				c.Providers = nil
			},
		},
		{
			name: "whisper-cpp unknown model",
			mutate: func(c *Config) {
				c.Transcription.Provider = "whisper-cpp"
				c.Transcription.Model = "gigantic-v9"
			},
			wantErr: true,
		},
		{
			name: "english-only model rejects spanish",
			mutate: func(c *Config) {
				c.Transcription.Provider = "whisper-cpp"
				c.Transcription.Model = "base.en"
				c.Transcription.Language = "es"
			},
			wantErr: true,
		},
		{
			name: "multilingual model accepts spanish",
			mutate: func(c *Config) {
				c.Transcription.Provider = "whisper-cpp"
				c.Transcription.Model = "base"
				c.Transcription.Language = "es"
			},
		},
		{
			name:   "valid language code",
			mutate: func(c *Config) { c.Transcription.Language = "fr" },
		},
		{
			name:    "invalid language code",
			mutate:  func(c *Config) { c.Transcription.Language = "klingon" },
			wantErr: true,
		},
		{
			name:    "invalid device",
			mutate:  func(c *Config) { c.Transcription.Device = "tpu" },
			wantErr: true,
		},
		{
			name:   "empty device is fine",
			mutate: func(c *Config) { c.Transcription.Device = "" },
		},
		{
			name:    "invalid output format",
			mutate:  func(c *Config) { c.Output.Format = "yaml" },
			wantErr: true,
		},
		{
			name:   "srt output format",
			mutate: func(c *Config) { c.Output.Format = "srt" },
		},
		{
			name:    "negative timeout",
			mutate:  func(c *Config) { c.Download.Timeout = -time.Second },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := createTestConfig()
			tt.mutate(config)

			err := config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Config.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_Validate_OpenAIWithoutAPIKey(t *testing.T) {
	config := createTestConfig()
	config.Providers = nil

	originalAPIKey := os.Getenv("OPENAI_API_KEY")
	os.Unsetenv("OPENAI_API_KEY")
	defer func() {
		if originalAPIKey != "" {
			os.Setenv("OPENAI_API_KEY", originalAPIKey)
		}
	}()

	if err := config.Validate(); err == nil {
		t.Error("Validate() should have failed without OpenAI API key")
	}
}

func TestConfig_Validate_OpenAIWithEnvVarAPIKey(t *testing.T) {
	config := createTestConfig()
	config.Providers = nil

	originalAPIKey := os.Getenv("OPENAI_API_KEY")
	os.Setenv("OPENAI_API_KEY", "env-api-key")
	defer func() {
		if originalAPIKey == "" {
			os.Unsetenv("OPENAI_API_KEY")
		} else {
			os.Setenv("OPENAI_API_KEY", originalAPIKey)
		}
	}()

	if err := config.Validate(); err != nil {
		t.Errorf("Validate() should have passed with OpenAI API key from environment: %v", err)
	}
}

func TestConfig_Load(t *testing.T) {
	t.Run("returns defaults when no config exists", func(t *testing.T) {
		tempDir := t.TempDir()
		t.Setenv("XDG_CONFIG_HOME", tempDir)

		config, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}

		if config.Transcription.Provider != "openai" {
			t.Errorf("default provider = %s, want openai", config.Transcription.Provider)
		}
		if config.Transcription.Device != "mps" {
			t.Errorf("default device = %s, want mps", config.Transcription.Device)
		}
		if config.Output.Format != "txt" {
			t.Errorf("default format = %s, want txt", config.Output.Format)
		}
	})

	t.Run("loads existing config", func(t *testing.T) {
		tempDir := t.TempDir()
		t.Setenv("XDG_CONFIG_HOME", tempDir)

		configPath := filepath.Join(tempDir, "whisper-tube", "config.toml")
		if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
			t.Fatalf("setup: %v", err)
		}

		content := `[transcription]
provider = "whisper-cpp"
model = "base"
language = "fr"
device = "cpu"

[output]
format = "srt"
dir = "/tmp/transcripts"
keep_audio = true

[download]
binary = "yt-dlp"
timeout = "5m"
`
		if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
			t.Fatalf("setup: %v", err)
		}

		config, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}

		if config.Transcription.Provider != "whisper-cpp" {
			t.Errorf("provider = %s, want whisper-cpp", config.Transcription.Provider)
		}
		if config.Transcription.Language != "fr" {
			t.Errorf("language = %s, want fr", config.Transcription.Language)
		}
		if config.Output.Format != "srt" {
			t.Errorf("format = %s, want srt", config.Output.Format)
		}
		if !config.Output.KeepAudio {
			t.Error("keep_audio should be true")
		}
		if config.Download.Timeout != 5*time.Minute {
			t.Errorf("timeout = %v, want 5m", config.Download.Timeout)
		}
		// threads default kicks in for whisper-cpp
		if config.Transcription.Threads < 1 {
			t.Errorf("threads = %d, should be at least 1", config.Transcription.Threads)
		}
	})

	t.Run("partial config gets defaults", func(t *testing.T) {
		tempDir := t.TempDir()
		t.Setenv("XDG_CONFIG_HOME", tempDir)

		configPath := filepath.Join(tempDir, "whisper-tube", "config.toml")
		if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
			t.Fatalf("setup: %v", err)
		}
		if err := os.WriteFile(configPath, []byte("[providers.openai]\napi_key = \"sk-x\"\n"), 0644); err != nil {
			t.Fatalf("setup: %v", err)
		}

		config, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if config.Transcription.Provider != "openai" {
			t.Errorf("provider = %s, want default openai", config.Transcription.Provider)
		}
		if config.Download.Binary != "yt-dlp" {
			t.Errorf("binary = %s, want default yt-dlp", config.Download.Binary)
		}
		if config.Providers["openai"].APIKey != "sk-x" {
			t.Errorf("api key not preserved: %+v", config.Providers)
		}
	})

	t.Run("invalid TOML fails", func(t *testing.T) {
		tempDir := t.TempDir()
		t.Setenv("XDG_CONFIG_HOME", tempDir)

		configPath := filepath.Join(tempDir, "whisper-tube", "config.toml")
		if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
			t.Fatalf("setup: %v", err)
		}
		if err := os.WriteFile(configPath, []byte("[transcription]\nthreads = \"many\""), 0644); err != nil {
			t.Fatalf("setup: %v", err)
		}

		if _, err := Load(); err == nil {
			t.Error("Load() should have failed with invalid TOML")
		}
	})
}

func TestConfig_SaveThenLoad(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tempDir)

	config := createTestConfig()
	config.Output.Format = "json"
	config.Transcription.Language = "de"

	if err := Save(config); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Output.Format != "json" {
		t.Errorf("format = %s, want json", loaded.Output.Format)
	}
	if loaded.Transcription.Language != "de" {
		t.Errorf("language = %s, want de", loaded.Transcription.Language)
	}
	if loaded.Providers["openai"].APIKey != "sk-test-key" {
		t.Errorf("api key = %s, want sk-test-key", loaded.Providers["openai"].APIKey)
	}
}

func TestConfig_ToRecognizerConfig(t *testing.T) {
	config := createTestConfig()

	rc := config.ToRecognizerConfig()
	if rc.Provider != "openai" {
		t.Errorf("Provider = %s, want openai", rc.Provider)
	}
	if rc.APIKey != "sk-test-key" {
		t.Errorf("APIKey = %s, want sk-test-key", rc.APIKey)
	}
	if rc.Device != "mps" {
		t.Errorf("Device = %s, want mps", rc.Device)
	}
}

func TestConfig_ToRecognizerConfig_EnvFallback(t *testing.T) {
	config := createTestConfig()
	config.Providers = map[string]ProviderConfig{}

	t.Setenv("OPENAI_API_KEY", "env-api-key")

	rc := config.ToRecognizerConfig()
	if rc.APIKey != "env-api-key" {
		t.Errorf("APIKey = %s, want env-api-key", rc.APIKey)
	}
}

func TestConfig_ToDownloadConfig(t *testing.T) {
	config := createTestConfig()
	config.Output.Dir = "/tmp/out"

	dc := config.ToDownloadConfig()
	if dc.Binary != "yt-dlp" {
		t.Errorf("Binary = %s, want yt-dlp", dc.Binary)
	}
	if dc.OutputDir != "/tmp/out" {
		t.Errorf("OutputDir = %s, want /tmp/out", dc.OutputDir)
	}
}

func TestManager_GetConfigReturnsCopy(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tempDir)
	t.Setenv("OPENAI_API_KEY", "test-key")

	m, err := NewManager()
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}
	defer m.Stop()

	c1 := m.GetConfig()
	c1.Transcription.Provider = "mutated"

	c2 := m.GetConfig()
	if c2.Transcription.Provider == "mutated" {
		t.Error("GetConfig() should return a copy")
	}
}
