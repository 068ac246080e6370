package service

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/fadilmartias/ai-assessment/internal/config"
	"github.com/fadilmartias/ai-assessment/internal/logger"
	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// OpenAIGateway talks to any OpenAI-compatible chat completions endpoint.
type OpenAIGateway struct {
	client      *resty.Client
	model       string
	maxTokens   int
	temperature float64
	timeout     time.Duration
	log         *zap.Logger
}

func NewOpenAIGateway(cfg *config.LLMConfig, log *zap.Logger) (*OpenAIGateway, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY not set")
	}

	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetAuthToken(cfg.APIKey).
		SetHeader("Content-Type", "application/json").
		SetRetryCount(cfg.MaxRetries).
		SetRetryWaitTime(time.Second).
		SetRetryMaxWaitTime(30 * time.Second).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			if err != nil {
				return true
			}
			code := r.StatusCode()
			return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
		})

	return &OpenAIGateway{
		client:      client,
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		timeout:     cfg.Timeout,
		log:         logger.WithCommonFields(log, config.ProviderOpenAI, cfg.Model),
	}, nil
}

func (g *OpenAIGateway) Model() string {
	return g.model
}

func (g *OpenAIGateway) Complete(ctx context.Context, prompt, systemPrompt string) (*Completion, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	messages := make([]map[string]string, 0, 2)
	if systemPrompt != "" {
		messages = append(messages, map[string]string{"role": "system", "content": systemPrompt})
	}
	messages = append(messages, map[string]string{"role": "user", "content": prompt})

	payload := map[string]any{
		"model":           g.model,
		"messages":        messages,
		"response_format": map[string]string{"type": "json_object"},
	}
	if g.maxTokens > 0 {
		payload["max_tokens"] = g.maxTokens
	}
	payload["temperature"] = g.temperature

	start := time.Now()
	resp, err := g.client.R().
		SetContext(ctx).
		SetBody(payload).
		Post("/chat/completions")
	if err != nil {
		g.log.Warn("chat completion request failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrModelCall, err)
	}

	body := resp.String()
	if resp.IsError() {
		msg := gjson.Get(body, "error.message").String()
		if msg == "" {
			msg = logger.Truncate(body, 200)
		}
		g.log.Warn("chat completion returned error status",
			zap.Int("status", resp.StatusCode()),
			zap.String("error", msg),
		)
		return nil, fmt.Errorf("%w: status %d: %s", ErrModelCall, resp.StatusCode(), msg)
	}

	content := gjson.Get(body, "choices.0.message.content")
	if !content.Exists() {
		return nil, fmt.Errorf("%w: no choices in response", ErrModelCall)
	}

	model := gjson.Get(body, "model").String()
	if model == "" {
		model = g.model
	}
	usage := Usage{
		PromptTokens:     int(gjson.Get(body, "usage.prompt_tokens").Int()),
		CompletionTokens: int(gjson.Get(body, "usage.completion_tokens").Int()),
		TotalTokens:      int(gjson.Get(body, "usage.total_tokens").Int()),
	}

	g.log.Debug("chat completion done",
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("total_tokens", usage.TotalTokens),
		zap.String("reply", logger.Truncate(content.String(), 200)),
	)
	return NewCompletion(content.String(), usage, model), nil
}
