package config

import (
	"sync"
)

type GeminiConfig struct {
	APIKey         string
	Model          string
	EmbeddingModel string
}

var (
	geminiConfig *GeminiConfig
	geminiOnce   sync.Once
)

func LoadGeminiConfig() *GeminiConfig {
	geminiOnce.Do(func() {
		e := env()
		e.SetDefault("GEMINI_MODEL", "gemini-2.5-flash")
		e.SetDefault("GEMINI_EMBEDDING_MODEL", "gemini-embedding-001")

		geminiConfig = &GeminiConfig{
			APIKey:         e.GetString("GEMINI_API_KEY"),
			Model:          e.GetString("GEMINI_MODEL"),
			EmbeddingModel: e.GetString("GEMINI_EMBEDDING_MODEL"),
		}
	})
	return geminiConfig
}
