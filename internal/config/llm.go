package config

import (
	"sync"
	"time"
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// LLMConfig drives the language-model gateway used by the assessment service.
type LLMConfig struct {
	Provider    string
	APIKey      string
	BaseURL     string
	Model       string
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
	MaxRetries  int
	Concurrency int

	BreakerThreshold int
	BreakerCooldown  time.Duration
}

var (
	llmConfig *LLMConfig
	llmOnce   sync.Once
)

func LoadLLMConfig() *LLMConfig {
	llmOnce.Do(func() {
		e := env()
		e.SetDefault("LLM_PROVIDER", ProviderOpenAI)
		e.SetDefault("OPENAI_BASE_URL", "https://api.openai.com/v1")
		e.SetDefault("OPENAI_MODEL", "gpt-4-turbo-preview")
		e.SetDefault("OPENAI_MAX_TOKENS", 2000)
		e.SetDefault("OPENAI_TEMPERATURE", 0.3)
		e.SetDefault("LLM_TIMEOUT", 60*time.Second)
		e.SetDefault("LLM_MAX_RETRIES", 0)
		e.SetDefault("LLM_CONCURRENCY", 1)
		e.SetDefault("LLM_BREAKER_THRESHOLD", 5)
		e.SetDefault("LLM_BREAKER_COOLDOWN", 30*time.Second)

		concurrency := e.GetInt("LLM_CONCURRENCY")
		if concurrency < 1 {
			concurrency = 1
		}
		llmConfig = &LLMConfig{
			Provider:    e.GetString("LLM_PROVIDER"),
			APIKey:      e.GetString("OPENAI_API_KEY"),
			BaseURL:     e.GetString("OPENAI_BASE_URL"),
			Model:       e.GetString("OPENAI_MODEL"),
			MaxTokens:   e.GetInt("OPENAI_MAX_TOKENS"),
			Temperature: e.GetFloat64("OPENAI_TEMPERATURE"),
			Timeout:     e.GetDuration("LLM_TIMEOUT"),
			MaxRetries:  e.GetInt("LLM_MAX_RETRIES"),
			Concurrency: concurrency,

			BreakerThreshold: e.GetInt("LLM_BREAKER_THRESHOLD"),
			BreakerCooldown:  e.GetDuration("LLM_BREAKER_COOLDOWN"),
		}
	})
	return llmConfig
}
