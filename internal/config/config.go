package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Provider string

const (
	ProviderOllama Provider = "ollama"
	ProviderVertex Provider = "vertex"
)

const (
	DefaultLLMBaseURL = "http://localhost:11434"
	DefaultLLMModel   = "whatis.sh"
	DefaultLLMTimeout = 30 * time.Second
	DefaultPort       = "8080"
)

type Config struct {
	Port        string
	LogLevel    string
	LLMProvider Provider
	LLMBaseURL  string
	LLMModel    string
	LLMTimeout  time.Duration
	ProjectID   string
	Region      string
}

func New() *Config {
	// a missing .env is fine; the process environment always wins
	_ = godotenv.Load()

	return &Config{
		Port:        getEnvOrDefault("PORT", DefaultPort),
		LogLevel:    os.Getenv("LOGLEVEL"),
		LLMProvider: getProvider(os.Getenv("LLM_PROVIDER")),
		LLMBaseURL:  strings.TrimRight(getEnvOrDefault("LLM_BASE_URL", DefaultLLMBaseURL), "/"),
		LLMModel:    getEnvOrDefault("LLM_MODEL", DefaultLLMModel),
		LLMTimeout:  getEnvAsDurationOrDefault("LLM_TIMEOUT", DefaultLLMTimeout),
		ProjectID:   os.Getenv("PROJECTID"),
		Region:      os.Getenv("REGION"),
	}
}

func getProvider(provider string) Provider {
	switch strings.ToLower(provider) {
	case "vertex":
		return ProviderVertex
	default: // "ollama"
		return ProviderOllama
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsDurationOrDefault(key string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil || d <= 0 {
		return defaultVal
	}
	return d
}
