// Package config loads server configuration from the environment, with an
// optional .env file on top.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds every tunable the server reads from the environment.
// Host/port values are defaults that the CLI flags may override.
type Config struct {
	GeminiAPIKey string `env:"GEMINI_API_KEY"`
	WSHost       string `env:"WS_HOST" envDefault:"localhost"`
	WSPort       int    `env:"WS_PORT" envDefault:"8765"`
	HTTPPort     int    `env:"HTTP_PORT" envDefault:"8000"`
	LogFile      string `env:"LOG_FILE" envDefault:"chat_logs.csv"`
	ChatModel    string `env:"CHAT_MODEL" envDefault:"gemini-2.0-flash-exp"`
	TTSModel     string `env:"TTS_MODEL" envDefault:"gemini-2.5-flash-preview-tts"`
	StaticDir    string `env:"STATIC_DIR" envDefault:"static"`
}

// Load reads .env if present, then parses the environment.
func Load() (*Config, error) {
	// Missing .env is fine; real env vars still apply.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, nil
}
