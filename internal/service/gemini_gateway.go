package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/fadilmartias/ai-assessment/internal/config"
	"github.com/fadilmartias/ai-assessment/internal/logger"
	"google.golang.org/genai"
	"go.uber.org/zap"
)

// GeminiGateway implements LanguageModelGateway on the Gemini API in JSON mode.
type GeminiGateway struct {
	*geminiClient
	model       string
	maxTokens   int
	temperature float64
}

func NewGeminiGateway(ctx context.Context, gemini *config.GeminiConfig, llm *config.LLMConfig, log *zap.Logger) (*GeminiGateway, error) {
	log = logger.WithCommonFields(log, config.ProviderGemini, gemini.Model)
	client, err := newGeminiClient(ctx, gemini.APIKey, llm, log)
	if err != nil {
		return nil, err
	}
	return &GeminiGateway{
		geminiClient: client,
		model:        gemini.Model,
		maxTokens:    llm.MaxTokens,
		temperature:  llm.Temperature,
	}, nil
}

func (g *GeminiGateway) Model() string {
	return g.model
}

func (g *GeminiGateway) Complete(ctx context.Context, prompt, systemPrompt string) (*Completion, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, fmt.Errorf("%w: prompt cannot be empty", ErrModelCall)
	}

	genConfig := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(float32(g.temperature)),
		ResponseMIMEType: "application/json",
	}
	if g.maxTokens > 0 {
		genConfig.MaxOutputTokens = int32(g.maxTokens)
	}
	if systemPrompt != "" {
		genConfig.SystemInstruction = genai.NewContentFromText(systemPrompt, genai.RoleUser)
	}

	var result *genai.GenerateContentResponse
	err := g.do(ctx, "GenerateContent", func(ctx context.Context) error {
		resp, err := g.Client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), genConfig)
		if err != nil {
			return err
		}
		result = resp
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrModelCall, err)
	}
	if err := validateGenerateResponse(result); err != nil {
		return nil, fmt.Errorf("%w: invalid response: %v", ErrModelCall, err)
	}

	var usage Usage
	if md := result.UsageMetadata; md != nil {
		usage = Usage{
			PromptTokens:     int(md.PromptTokenCount),
			CompletionTokens: int(md.CandidatesTokenCount),
			TotalTokens:      int(md.TotalTokenCount),
		}
	}
	model := result.ModelVersion
	if model == "" {
		model = g.model
	}

	text := result.Text()
	g.log.Debug("gemini completion done",
		zap.Int("total_tokens", usage.TotalTokens),
		zap.String("reply", logger.Truncate(text, 200)),
	)
	return NewCompletion(text, usage, model), nil
}

func validateGenerateResponse(resp *genai.GenerateContentResponse) error {
	if resp == nil {
		return fmt.Errorf("response is nil")
	}

	if len(resp.Candidates) == 0 {
		return fmt.Errorf("no candidates in response")
	}

	if resp.Candidates[0].Content == nil {
		return fmt.Errorf("candidate content is nil")
	}

	if len(resp.Candidates[0].Content.Parts) == 0 {
		return fmt.Errorf("no parts in content")
	}

	return nil
}
