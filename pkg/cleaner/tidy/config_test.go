package tidy

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name     string
		got      bool
		expected bool
	}{
		{"DecodeEntities", cfg.DecodeEntities, true},
		{"StripTags", cfg.StripTags, true},
		{"PreserveFormatting", cfg.PreserveFormatting, false},
		{"NormalizeWhitespace", cfg.NormalizeWhitespace, true},
		{"RemoveURLs", cfg.RemoveURLs, false},
		{"RemoveEmails", cfg.RemoveEmails, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, tt.got)
			}
		})
	}

	if cfg.Suffix != "_cleaned" {
		t.Errorf("expected suffix _cleaned, got %q", cfg.Suffix)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Suffix = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for empty suffix")
	}
}

func TestPreset(t *testing.T) {
	tests := []struct {
		name    string
		want    Config
		wantErr bool
	}{
		{"", DefaultConfig(), false},
		{"default", DefaultConfig(), false},
		{"Minimal", PresetMinimal(), false},
		{"markdown", PresetMarkdown(), false},
		{"aggressive", PresetAggressive(), false},
		{"nuclear", Config{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Preset(tt.name)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Preset(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Preset(%q) = %+v, want %+v", tt.name, got, tt.want)
			}
		})
	}

	for _, name := range PresetNames() {
		if _, err := Preset(name); err != nil {
			t.Errorf("listed preset %q not accepted: %v", name, err)
		}
	}

	if PresetMinimal().StripTags {
		t.Error("minimal preset should leave tags in place")
	}
	if !PresetMarkdown().PreserveFormatting {
		t.Error("markdown preset should preserve formatting")
	}
}

func TestLoadProfile(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "profile.yaml")
	if err := os.WriteFile(yamlPath, []byte("remove_urls: true\nsuffix: _tidy\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadProfile(yamlPath)
	if err != nil {
		t.Fatalf("LoadProfile(yaml) error: %v", err)
	}
	if !cfg.RemoveURLs || cfg.Suffix != "_tidy" {
		t.Errorf("unexpected yaml profile: %+v", cfg)
	}
	if !cfg.DecodeEntities {
		t.Error("omitted fields should keep defaults")
	}

	jsonPath := filepath.Join(dir, "profile.json")
	if err := os.WriteFile(jsonPath, []byte(`{"strip_tags": false, "remove_emails": true}`), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = LoadProfile(jsonPath)
	if err != nil {
		t.Fatalf("LoadProfile(json) error: %v", err)
	}
	if cfg.StripTags || !cfg.RemoveEmails || cfg.Suffix != DefaultSuffix {
		t.Errorf("unexpected json profile: %+v", cfg)
	}

	badPath := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(badPath, []byte("suffix: \"\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadProfile(badPath); err == nil {
		t.Error("expected validation error for empty suffix")
	}

	if _, err := LoadProfile(filepath.Join(dir, "profile.toml")); err == nil {
		t.Error("expected error for missing file")
	}

	tomlPath := filepath.Join(dir, "real.toml")
	if err := os.WriteFile(tomlPath, []byte("preserve_formatting = true\nsuffix = '_md'\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = LoadProfile(tomlPath)
	if err != nil {
		t.Fatalf("LoadProfile(toml) error: %v", err)
	}
	if !cfg.PreserveFormatting || cfg.Suffix != "_md" || !cfg.StripTags {
		t.Errorf("unexpected toml profile: %+v", cfg)
	}

	iniPath := filepath.Join(dir, "profile.ini")
	if err := os.WriteFile(iniPath, []byte("suffix=x\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadProfile(iniPath); err == nil {
		t.Error("expected error for unsupported format")
	}
}
