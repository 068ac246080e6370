package service

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/fadilmartias/ai-assessment/internal/config"
	"github.com/fadilmartias/ai-assessment/internal/logger"
	"google.golang.org/genai"
	"go.uber.org/zap"
)

const maxEmbeddingChars = 10000

// GeminiEmbedder embeds job descriptions and search queries.
type GeminiEmbedder struct {
	*geminiClient
	model string
}

func NewGeminiEmbedder(ctx context.Context, gemini *config.GeminiConfig, llm *config.LLMConfig, log *zap.Logger) (*GeminiEmbedder, error) {
	log = logger.WithCommonFields(log, config.ProviderGemini, gemini.EmbeddingModel)
	client, err := newGeminiClient(ctx, gemini.APIKey, llm, log)
	if err != nil {
		return nil, err
	}
	return &GeminiEmbedder{geminiClient: client, model: gemini.EmbeddingModel}, nil
}

func (e *GeminiEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	trimmedText := strings.TrimSpace(text)
	if trimmedText == "" {
		return nil, fmt.Errorf("text for embedding cannot be empty")
	}

	if runes := []rune(trimmedText); len(runes) > maxEmbeddingChars {
		e.log.Warn("embedding text exceeds recommended limit, truncating", zap.Int("length", len(runes)))
		trimmedText = string(runes[:maxEmbeddingChars])
	}

	content := []*genai.Content{genai.NewContentFromText(trimmedText, genai.RoleUser)}

	var result *genai.EmbedContentResponse
	err := e.do(ctx, "EmbedContent", func(ctx context.Context) error {
		resp, err := e.Client.Models.EmbedContent(ctx, e.model, content, nil)
		if err != nil {
			return err
		}
		result = resp
		return nil
	})
	if err != nil {
		return nil, err
	}

	return validateEmbeddingResponse(result)
}

func validateEmbeddingResponse(resp *genai.EmbedContentResponse) ([]float32, error) {
	if resp == nil {
		return nil, fmt.Errorf("response is nil")
	}

	if len(resp.Embeddings) == 0 {
		return nil, fmt.Errorf("no embeddings returned")
	}

	embeddings := resp.Embeddings[0].Values

	if len(embeddings) == 0 {
		return nil, fmt.Errorf("embedding vector is empty")
	}

	for i, val := range embeddings {
		if math.IsNaN(float64(val)) || math.IsInf(float64(val), 0) {
			return nil, fmt.Errorf("invalid embedding value at index %d: %v", i, val)
		}
	}

	return embeddings, nil
}
