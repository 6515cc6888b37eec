// Package config loads the pond CLI configuration from a YAML file and
// POND_* environment variables.
package config

import (
	"os"
	"path/filepath"
)

// Backend names accepted by the "backend" setting.
const (
	BackendMemory      = "memory"
	BackendNoop        = "noop"
	BackendPreferences = "preferences"
	BackendSecure      = "secure"
	BackendBlob        = "blob"
)

// Backends lists every selectable backend.
var Backends = []string{BackendMemory, BackendNoop, BackendPreferences, BackendSecure, BackendBlob}

// Config is the root configuration document. Every field can be overridden
// from the environment: the variable name is POND_ followed by the field path,
// e.g. POND_BACKEND, POND_LOG_LEVEL or POND_SECURE_PASSPHRASE.
type Config struct {
	Backend      string            `yaml:"backend" validate:"required,backend"`
	StrictWrites *bool             `yaml:"strict_writes,omitempty" split_words:"true"`
	Log          LogConfig         `yaml:"log"`
	Preferences  PreferencesConfig `yaml:"preferences"`
	Secure       SecureConfig      `yaml:"secure"`
	Blob         BlobConfig        `yaml:"blob"`
}

// LogConfig configures the zerolog logger.
type LogConfig struct {
	Level string `yaml:"level" validate:"omitempty,oneof=trace debug info warn error disabled"`
	Human bool   `yaml:"human"`
}

// PreferencesConfig configures the YAML preferences backend.
type PreferencesConfig struct {
	Path string `yaml:"path" validate:"required"`
}

// SecureConfig configures the sealed backend. The passphrase is only read
// from the environment.
type SecureConfig struct {
	Path       string `yaml:"path" validate:"required"`
	KeyPath    string `yaml:"key_path" split_words:"true"`
	Passphrase string `yaml:"-"`
}

// BlobConfig configures the file-per-key backend.
type BlobConfig struct {
	Dir         string `yaml:"dir" validate:"required"`
	Compression string `yaml:"compression" validate:"omitempty,oneof=fastest default better best"`
}

// DefaultDir returns ~/.pond, falling back to ./.pond without a home.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ".pond"
	}
	return filepath.Join(home, ".pond")
}

// DefaultPath returns the default configuration file location.
func DefaultPath() string {
	return filepath.Join(DefaultDir(), "config.yaml")
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return DefaultIn(DefaultDir())
}

// DefaultIn returns defaults rooted at dir.
func DefaultIn(dir string) *Config {
	return &Config{
		Backend: BackendPreferences,
		Log: LogConfig{
			Level: "warn",
		},
		Preferences: PreferencesConfig{
			Path: filepath.Join(dir, "preferences.yaml"),
		},
		Secure: SecureConfig{
			Path:    filepath.Join(dir, "secure.pond"),
			KeyPath: filepath.Join(dir, "secure.key"),
		},
		Blob: BlobConfig{
			Dir:         filepath.Join(dir, "blobs"),
			Compression: "default",
		},
	}
}
