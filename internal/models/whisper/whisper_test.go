package whisper

import (
	"strings"
	"testing"
)

func TestGetModel(t *testing.T) {
	tests := []struct {
		id           string
		wantNil      bool
		multilingual bool
	}{
		{id: "base.en", multilingual: false},
		{id: "base", multilingual: true},
		{id: "large-v3", multilingual: true},
		{id: "nonexistent", wantNil: true},
		{id: "", wantNil: true},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			m := GetModel(tt.id)
			if (m == nil) != tt.wantNil {
				t.Fatalf("GetModel(%q) = %v, wantNil %v", tt.id, m, tt.wantNil)
			}
			if m != nil && m.Multilingual != tt.multilingual {
				t.Errorf("GetModel(%q).Multilingual = %v, want %v", tt.id, m.Multilingual, tt.multilingual)
			}
		})
	}
}

func TestGetDownloadURL(t *testing.T) {
	url := GetDownloadURL("base.en")
	if !strings.HasSuffix(url, "/ggml-base.en.bin") {
		t.Errorf("GetDownloadURL(base.en) = %q, want ggml-base.en.bin suffix", url)
	}
	if !strings.HasPrefix(url, "https://huggingface.co/") {
		t.Errorf("GetDownloadURL(base.en) = %q, want huggingface URL", url)
	}

	if got := GetDownloadURL("nonexistent"); got != "" {
		t.Errorf("GetDownloadURL(nonexistent) = %q, want empty", got)
	}
}

func TestGetModelPath(t *testing.T) {
	path := GetModelPath("tiny")
	if !strings.HasSuffix(path, "ggml-tiny.bin") {
		t.Errorf("GetModelPath(tiny) = %q, want ggml-tiny.bin suffix", path)
	}
	if !strings.Contains(path, "whisper-tube") {
		t.Errorf("GetModelPath(tiny) = %q, should live under the whisper-tube data dir", path)
	}

	if got := GetModelPath("nonexistent"); got != "" {
		t.Errorf("GetModelPath(nonexistent) = %q, want empty", got)
	}
}

func TestListModels(t *testing.T) {
	all := ListModels()
	if len(all) == 0 {
		t.Fatal("ListModels() returned no models")
	}

	seen := make(map[string]bool)
	for _, m := range all {
		if seen[m.ID] {
			t.Errorf("duplicate model ID: %s", m.ID)
		}
		seen[m.ID] = true
		if m.Filename == "" {
			t.Errorf("model %s has no filename", m.ID)
		}
	}

	// mutating the returned slice must not affect the registry
	all[0].ID = "mutated"
	if GetModel("mutated") != nil {
		t.Error("ListModels() should return a copy")
	}
}

func TestGetInstalledPath_NotInstalled(t *testing.T) {
	// a model that exists in the registry but (in this test env) is
	// not downloaded
	_, err := GetInstalledPath("large-v3")
	if err == nil {
		t.Skip("large-v3 appears to be installed on this host")
	}
	if !strings.Contains(err.Error(), "not installed") {
		t.Errorf("error = %v, want mention of not installed", err)
	}
}

func TestGetInstalledPath_Unknown(t *testing.T) {
	_, err := GetInstalledPath("nonexistent")
	if err == nil {
		t.Fatal("GetInstalledPath(nonexistent) should fail")
	}
	if !strings.Contains(err.Error(), "unknown model") {
		t.Errorf("error = %v, want unknown model", err)
	}
}
