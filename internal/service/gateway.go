package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/tidwall/gjson"
)

// ErrModelCall wraps every transport or API failure of a language-model call.
var ErrModelCall = errors.New("language model call failed")

type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Completion is a received model reply. Content is always a JSON object; a reply that
// was not a JSON object is replaced by {"error":"Invalid JSON response","raw_content":...}
// and Malformed is set.
type Completion struct {
	Content   string
	Raw       string
	Usage     Usage
	Model     string
	Malformed bool
}

// LanguageModelGateway sends one (system prompt, prompt) pair and asks for a JSON reply.
type LanguageModelGateway interface {
	Complete(ctx context.Context, prompt, systemPrompt string) (*Completion, error)
	Model() string
}

// Embedder turns text into a vector for similarity search.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

func NewCompletion(raw string, usage Usage, model string) *Completion {
	c := &Completion{Raw: raw, Usage: usage, Model: model}
	if gjson.Valid(raw) && gjson.Parse(raw).IsObject() {
		c.Content = raw
		return c
	}
	b, _ := json.Marshal(map[string]string{
		"error":       "Invalid JSON response",
		"raw_content": raw,
	})
	c.Content = string(b)
	c.Malformed = true
	return c
}
