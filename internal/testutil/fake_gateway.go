package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/fadilmartias/ai-assessment/internal/service"
)

// FakeGateway returns canned replies keyed by the area named in the prompt.
// Areas listed in Failures return an error wrapping service.ErrModelCall.
type FakeGateway struct {
	ModelName string
	Replies   map[string]string
	Default   string
	Failures  map[string]bool
	Usage     service.Usage

	mu      sync.Mutex
	calls   int
	prompts []string
	systems []string
}

func NewFakeGateway() *FakeGateway {
	return &FakeGateway{
		ModelName: "gpt-4-turbo-preview",
		Replies:   map[string]string{},
		Failures:  map[string]bool{},
		Usage:     service.Usage{PromptTokens: 1000, CompletionTokens: 500, TotalTokens: 1500},
	}
}

// Reply registers the JSON reply for area.
func (f *FakeGateway) Reply(area, content string) *FakeGateway {
	f.Replies[area] = content
	return f
}

// Fail makes every call for area fail.
func (f *FakeGateway) Fail(area string) *FakeGateway {
	f.Failures[area] = true
	return f
}

func (f *FakeGateway) Model() string {
	return f.ModelName
}

func (f *FakeGateway) Complete(ctx context.Context, prompt, systemPrompt string) (*service.Completion, error) {
	f.mu.Lock()
	f.calls++
	f.prompts = append(f.prompts, prompt)
	f.systems = append(f.systems, systemPrompt)
	f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", service.ErrModelCall, err)
	}

	area := areaOf(prompt)
	if f.Failures[area] {
		return nil, fmt.Errorf("%w: simulated failure for %s", service.ErrModelCall, area)
	}

	reply, ok := f.Replies[area]
	if !ok {
		reply = f.Default
	}
	return service.NewCompletion(reply, f.Usage, f.ModelName), nil
}

func (f *FakeGateway) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *FakeGateway) Prompts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.prompts...)
}

func (f *FakeGateway) SystemPrompts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.systems...)
}

// areaOf reads the "Area:" or "Assessment Area:" line of a rendered prompt.
func areaOf(prompt string) string {
	for _, line := range strings.Split(prompt, "\n") {
		line = strings.TrimSpace(line)
		for _, prefix := range []string{"Assessment Area: ", "Area: "} {
			if strings.HasPrefix(line, prefix) {
				return strings.TrimPrefix(line, prefix)
			}
		}
	}
	return ""
}
