// Package config loads application configuration from the optional user
// config file and the environment. Environment variables win; API keys are
// only ever read from the environment.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"darijacode/paths"
)

// Config holds every tunable the application reads at startup.
type Config struct {
	GroqAPIKey  string `json:"-" env:"GROQ_API_KEY"`
	GroqBaseURL string `json:"groq_base_url" env:"GROQ_BASE_URL"`
	Model       string `json:"model" env:"DARIJACODE_MODEL" env-default:"llama3-70b-8192"`

	HFToken         string `json:"-" env:"HF_TOKEN"`
	WhisperEndpoint string `json:"whisper_endpoint" env:"DARIJACODE_WHISPER_ENDPOINT"`

	DataDir  string `json:"data_dir" env:"DARIJACODE_DATA_DIR"`
	Language string `json:"language" env:"DARIJACODE_LANG" env-default:"en"`

	// Delay before a generated forum reply is merged in, emulating the
	// assistant "thinking".
	ReplyDelayMS int `json:"reply_delay_ms" env:"DARIJACODE_REPLY_DELAY_MS" env-default:"2000"`

	Debug bool `json:"debug" env:"DARIJACODE_DEBUG"`
}

// ReplyDelay returns the AI-reply delay as a duration.
func (c *Config) ReplyDelay() time.Duration {
	return time.Duration(c.ReplyDelayMS) * time.Millisecond
}

// Load reads the user config file when present, then applies environment
// overrides and defaults.
func Load() (*Config, error) {
	cfg := &Config{}

	configPath, err := paths.GetConfigPath()
	if err != nil {
		return nil, err
	}

	if _, statErr := os.Stat(configPath); statErr == nil {
		if err := cleanenv.ReadConfig(configPath, cfg); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
		}
	} else {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("failed to read environment config: %w", err)
		}
	}

	if cfg.DataDir == "" {
		storeDir, err := paths.GetStoreDir()
		if err != nil {
			return nil, err
		}
		cfg.DataDir = storeDir
	}

	return cfg, nil
}
