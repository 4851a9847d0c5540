package config

import "time"

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8000
	}
	if cfg.Server.CORSOrigins == nil {
		cfg.Server.CORSOrigins = []string{"*"}
	}
	if cfg.Server.MaxUploadBytes == 0 {
		cfg.Server.MaxUploadBytes = 20 << 20
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = 120 * time.Second
	}

	if cfg.Generation.Provider == "" {
		cfg.Generation.Provider = "ollama"
	}
	if cfg.Generation.Model == "" {
		cfg.Generation.Model = defaultModels[cfg.Generation.Provider]
	}
	if cfg.Generation.Timeout == 0 {
		cfg.Generation.Timeout = 60 * time.Second
	}
	if cfg.Generation.MaxTokens == 0 {
		cfg.Generation.MaxTokens = 1024
	}
	if cfg.Generation.Temperature == 0 {
		cfg.Generation.Temperature = 0.2
	}
	if cfg.Generation.Retry.MaxAttempts == 0 {
		cfg.Generation.Retry.MaxAttempts = 2
	}
	if cfg.Generation.Retry.InitialWait == 0 {
		cfg.Generation.Retry.InitialWait = 500 * time.Millisecond
	}
	if cfg.Generation.Retry.MaxWait == 0 {
		cfg.Generation.Retry.MaxWait = 5 * time.Second
	}
	if cfg.Generation.Retry.Multiplier == 0 {
		cfg.Generation.Retry.Multiplier = 2.0
	}

	if cfg.Deck.DefaultCount == 0 {
		cfg.Deck.DefaultCount = 10
	}
	if cfg.Deck.MaxCount == 0 {
		cfg.Deck.MaxCount = 50
	}
	if cfg.Deck.MaxTextChars == 0 {
		cfg.Deck.MaxTextChars = 3000
	}
	if cfg.Deck.MinTextChars == 0 {
		cfg.Deck.MinTextChars = 50
	}

	if cfg.Extract.Extensions == nil {
		cfg.Extract.Extensions = []string{".txt", ".md", ".rst", ".pdf", ".docx", ".xlsx", ".pptx", ".odt", ".odp", ".ods"}
	}

	if cfg.Watch.OutputDir == "" {
		cfg.Watch.OutputDir = "./decks"
	}
	// Recursive defaults to true when unset (nil).
	if len(cfg.Watch.Directories) > 0 && cfg.Watch.Recursive == nil {
		t := true
		cfg.Watch.Recursive = &t
	}
}

// defaultModels is the model used per provider when none is configured.
var defaultModels = map[string]string{
	"ollama":    "llama3.2",
	"openai":    "gpt-4o-mini",
	"anthropic": "claude-haiku-4-5-20251001",
	"gemini":    "gemini-2.0-flash",
}
