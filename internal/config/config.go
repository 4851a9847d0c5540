// Package config provides configuration loading and structs for the kuizu server and CLI.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug      bool             `yaml:"debug"`
	Server     ServerConfig     `yaml:"server"`
	Generation GenerationConfig `yaml:"generation"`
	Deck       DeckConfig       `yaml:"deck"`
	Extract    ExtractConfig    `yaml:"extract"`
	Watch      WatchConfig      `yaml:"watch"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host           string        `yaml:"host"`
	Port           int           `yaml:"port"`
	StaticDir      string        `yaml:"static_dir"`
	CORSOrigins    []string      `yaml:"cors_origins"`
	MaxUploadBytes int64         `yaml:"max_upload_bytes"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

// GenerationConfig selects and tunes the text generation provider.
type GenerationConfig struct {
	// Provider is one of ollama, openai, anthropic, gemini, mock or none.
	Provider    string        `yaml:"provider"`
	Model       string        `yaml:"model"`
	BaseURL     string        `yaml:"base_url"`
	APIKey      string        `yaml:"api_key"`
	Timeout     time.Duration `yaml:"timeout"`
	MaxTokens   int           `yaml:"max_tokens"`
	Temperature float64       `yaml:"temperature"`
	// CacheSize is the number of cached responses; 0 disables the cache.
	CacheSize int `yaml:"cache_size"`
	// MaxConcurrent caps in-flight provider calls; 0 means unlimited.
	MaxConcurrent int         `yaml:"max_concurrent"`
	Retry         RetryConfig `yaml:"retry"`
}

// RetryConfig controls retry behavior for transient provider errors.
type RetryConfig struct {
	MaxAttempts int           `yaml:"max_attempts"`
	InitialWait time.Duration `yaml:"initial_wait"`
	MaxWait     time.Duration `yaml:"max_wait"`
	Multiplier  float64       `yaml:"multiplier"`
}

// DeckConfig holds deck building limits.
type DeckConfig struct {
	DefaultCount int `yaml:"default_count"`
	MaxCount     int `yaml:"max_count"`
	MaxTextChars int `yaml:"max_text_chars"`
	MinTextChars int `yaml:"min_text_chars"`
	// Seed fixes choice shuffling when non-zero.
	Seed             uint64 `yaml:"seed"`
	ShuffleGenerated *bool  `yaml:"shuffle_generated"`
}

// ShuffleGeneratedOrDefault returns whether generated choices are reshuffled; defaults to true when unset.
func (d *DeckConfig) ShuffleGeneratedOrDefault() bool {
	if d.ShuffleGenerated != nil {
		return *d.ShuffleGenerated
	}
	return true
}

// ClampCount maps a requested count to [1, MaxCount], using DefaultCount when n <= 0.
func (d *DeckConfig) ClampCount(n int) int {
	if n <= 0 {
		n = d.DefaultCount
	}
	if d.MaxCount > 0 && n > d.MaxCount {
		n = d.MaxCount
	}
	if n < 1 {
		n = 1
	}
	return n
}

// ExtractConfig lists the document types the text source accepts.
type ExtractConfig struct {
	Extensions []string `yaml:"extensions"`
}

// WatchConfig holds inbox directory settings.
type WatchConfig struct {
	Directories []string `yaml:"directories"`
	OutputDir   string   `yaml:"output_dir"`
	Recursive   *bool    `yaml:"recursive"`
}

// RecursiveOrDefault returns whether to watch recursively; defaults to true when unset.
func (w *WatchConfig) RecursiveOrDefault() bool {
	if w.Recursive != nil {
		return *w.Recursive
	}
	return true
}

// Default returns a config with every default applied, for running without a config file.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// Load reads and parses the config file at path, expands paths, and applies defaults.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)

	configDir := filepath.Dir(path)
	if cfg.Server.StaticDir != "" {
		cfg.Server.StaticDir = expandPath(cfg.Server.StaticDir, configDir)
	}
	if cfg.Watch.OutputDir != "" {
		cfg.Watch.OutputDir = expandPath(cfg.Watch.OutputDir, configDir)
	}
	for i := range cfg.Watch.Directories {
		cfg.Watch.Directories[i] = expandPath(cfg.Watch.Directories[i], configDir)
	}

	return &cfg, nil
}

// Save writes the config to path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// ApplyEnv overrides cfg from the environment. KUIZU_* variables win over the
// file; provider API keys are only used when the file leaves api_key empty.
func ApplyEnv(cfg *Config) {
	if v := os.Getenv("KUIZU_DEBUG"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Debug = b
		}
	}
	if v := os.Getenv("KUIZU_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = p
		}
	}
	if v := os.Getenv("KUIZU_PROVIDER"); v != "" {
		prev := cfg.Generation.Provider
		cfg.Generation.Provider = strings.ToLower(v)
		// A defaulted model belongs to the previous provider.
		if cfg.Generation.Model == defaultModels[prev] {
			cfg.Generation.Model = defaultModels[cfg.Generation.Provider]
		}
	}
	if v := os.Getenv("KUIZU_MODEL"); v != "" {
		cfg.Generation.Model = v
	}
	if v := os.Getenv("KUIZU_BASE_URL"); v != "" {
		cfg.Generation.BaseURL = v
	}
	if v := os.Getenv("KUIZU_API_KEY"); v != "" {
		cfg.Generation.APIKey = v
	}
	if cfg.Generation.APIKey == "" {
		if name, ok := apiKeyEnv[cfg.Generation.Provider]; ok {
			cfg.Generation.APIKey = os.Getenv(name)
		}
	}
}

// apiKeyEnv maps providers to the environment variable their SDKs conventionally read.
var apiKeyEnv = map[string]string{
	"openai":    "OPENAI_API_KEY",
	"anthropic": "ANTHROPIC_API_KEY",
	"gemini":    "GEMINI_API_KEY",
}

// expandPath converts a path to absolute. Paths starting with "./" are relative to configDir;
// other relative paths are relative to the home directory.
func expandPath(path string, configDir string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
