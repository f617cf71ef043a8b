// Package tidy assembles the cleaner transforms into the configurable
// per-cell pipeline used to clean CSV text columns, and computes the
// before/after statistics of a cleaned column.
package tidy

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// DefaultSuffix is appended to a column name to name its cleaned copy.
const DefaultSuffix = "_cleaned"

// Config selects the pipeline stages. A Pipeline copies its Config at
// construction, so changing a Config after New has no effect on it.
type Config struct {
	// DecodeEntities converts HTML character references to the characters they name.
	DecodeEntities bool `json:"decode_entities" yaml:"decode_entities" toml:"decode_entities" mapstructure:"decode_entities"`

	// StripTags removes anything that looks like an HTML tag.
	StripTags bool `json:"strip_tags" yaml:"strip_tags" toml:"strip_tags" mapstructure:"strip_tags"`

	// PreserveFormatting rewrites bold and italic tags to markdown markers
	// before tags are stripped. Only applies when StripTags is set.
	PreserveFormatting bool `json:"preserve_formatting" yaml:"preserve_formatting" toml:"preserve_formatting" mapstructure:"preserve_formatting"`

	// NormalizeWhitespace collapses whitespace runs to one space and trims.
	NormalizeWhitespace bool `json:"normalize_whitespace" yaml:"normalize_whitespace" toml:"normalize_whitespace" mapstructure:"normalize_whitespace"`

	// RemoveURLs deletes http and https URLs.
	RemoveURLs bool `json:"remove_urls" yaml:"remove_urls" toml:"remove_urls" mapstructure:"remove_urls"`

	// RemoveEmails deletes email addresses.
	RemoveEmails bool `json:"remove_emails" yaml:"remove_emails" toml:"remove_emails" mapstructure:"remove_emails"`

	// Suffix names derived columns: <column><Suffix>.
	Suffix string `json:"suffix" yaml:"suffix" toml:"suffix" mapstructure:"suffix" validate:"required,max=64"`
}

// DefaultConfig decodes entities, strips tags and normalizes whitespace.
func DefaultConfig() Config {
	return Config{
		DecodeEntities:      true,
		StripTags:           true,
		PreserveFormatting:  false,
		NormalizeWhitespace: true,
		RemoveURLs:          false,
		RemoveEmails:        false,
		Suffix:              DefaultSuffix,
	}
}

// PresetMinimal only decodes entities and normalizes whitespace, leaving
// markup in place.
func PresetMinimal() Config {
	return Config{
		DecodeEntities:      true,
		NormalizeWhitespace: true,
		Suffix:              DefaultSuffix,
	}
}

// PresetMarkdown strips tags but keeps bold and italic as markdown.
func PresetMarkdown() Config {
	cfg := DefaultConfig()
	cfg.PreserveFormatting = true
	return cfg
}

// PresetAggressive enables every stage except formatting preservation.
func PresetAggressive() Config {
	cfg := DefaultConfig()
	cfg.RemoveURLs = true
	cfg.RemoveEmails = true
	return cfg
}

// PresetNames lists the preset names accepted by Preset.
func PresetNames() []string {
	return []string{"default", "minimal", "markdown", "aggressive"}
}

// Preset returns the named preset: default, minimal, markdown or aggressive.
func Preset(name string) (Config, error) {
	switch strings.ToLower(name) {
	case "", "default":
		return DefaultConfig(), nil
	case "minimal":
		return PresetMinimal(), nil
	case "markdown":
		return PresetMarkdown(), nil
	case "aggressive":
		return PresetAggressive(), nil
	default:
		return Config{}, fmt.Errorf("unknown preset: %s (use default, minimal, markdown, or aggressive)", name)
	}
}

// Validate checks the config's field constraints.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid cleaning config: %w", err)
	}
	return nil
}

// LoadProfile reads a Config from a JSON, YAML or TOML file. Fields the file
// omits keep their DefaultConfig values.
func LoadProfile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read profile: %w", err)
	}

	cfg := DefaultConfig()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		if err := json.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse JSON profile: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse YAML profile: %w", err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse TOML profile: %w", err)
		}
	default:
		return Config{}, fmt.Errorf("unsupported profile format: %s", ext)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
