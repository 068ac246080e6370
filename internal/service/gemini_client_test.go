package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

func newTestGeminiClient(maxRetries int) *geminiClient {
	return &geminiClient{
		MaxRetries:        maxRetries,
		BaseDelay:         time.Millisecond,
		MaxDelay:          5 * time.Millisecond,
		RequestTimeout:    time.Second,
		circuitBreakerMax: 2,
		breakerCooldown:   time.Hour,
		log:               zap.NewNop(),
	}
}

func TestGeminiClient_RetriesRetryableErrors(t *testing.T) {
	s := newTestGeminiClient(2)
	calls := 0
	err := s.do(context.Background(), "op", func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return genai.APIError{Code: 503, Message: "unavailable"}
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)

	consecutive, open := s.CircuitBreakerStatus()
	assert.Equal(t, 0, consecutive)
	assert.False(t, open)
}

func TestGeminiClient_NonRetryableStopsImmediately(t *testing.T) {
	s := newTestGeminiClient(3)
	calls := 0
	err := s.do(context.Background(), "op", func(ctx context.Context) error {
		calls++
		return genai.APIError{Code: 400, Message: "bad request"}
	})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestGeminiClient_CircuitBreakerOpens(t *testing.T) {
	s := newTestGeminiClient(0)
	fail := func(ctx context.Context) error { return errors.New("boom") }

	require.Error(t, s.do(context.Background(), "op", fail))
	require.Error(t, s.do(context.Background(), "op", fail))

	calls := 0
	err := s.do(context.Background(), "op", func(ctx context.Context) error {
		calls++
		return nil
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "circuit breaker open")
	assert.Equal(t, 0, calls)

	s.ResetCircuitBreaker()
	require.NoError(t, s.do(context.Background(), "op", func(ctx context.Context) error { return nil }))
}

func TestGeminiClient_CircuitBreakerRecoversAfterCooldown(t *testing.T) {
	s := newTestGeminiClient(0)
	s.breakerCooldown = 20 * time.Millisecond
	fail := func(ctx context.Context) error { return errors.New("boom") }

	require.Error(t, s.do(context.Background(), "op", fail))
	require.Error(t, s.do(context.Background(), "op", fail))
	_, open := s.CircuitBreakerStatus()
	require.True(t, open)

	time.Sleep(40 * time.Millisecond)

	calls := 0
	succeed := func(ctx context.Context) error {
		calls++
		return nil
	}
	require.NoError(t, s.do(context.Background(), "op", succeed))
	require.NoError(t, s.do(context.Background(), "op", succeed))
	assert.Equal(t, 2, calls)

	consecutive, open := s.CircuitBreakerStatus()
	assert.Equal(t, 0, consecutive)
	assert.False(t, open)
}

func TestGeminiClient_FailedTrialReopensBreaker(t *testing.T) {
	s := newTestGeminiClient(0)
	s.breakerCooldown = 20 * time.Millisecond
	fail := func(ctx context.Context) error { return errors.New("boom") }

	require.Error(t, s.do(context.Background(), "op", fail))
	require.Error(t, s.do(context.Background(), "op", fail))
	time.Sleep(40 * time.Millisecond)

	calls := 0
	err := s.do(context.Background(), "op", func(ctx context.Context) error {
		calls++
		return errors.New("still down")
	})
	require.Error(t, err)
	assert.Equal(t, 1, calls)

	err = s.do(context.Background(), "op", func(ctx context.Context) error {
		calls++
		return nil
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "circuit breaker open")
	assert.Equal(t, 1, calls)
}

func TestGeminiClient_CallerCancellationDoesNotTrip(t *testing.T) {
	s := newTestGeminiClient(0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for i := 0; i < 3; i++ {
		err := s.do(ctx, "op", func(ctx context.Context) error { return ctx.Err() })
		require.Error(t, err)
	}

	consecutive, open := s.CircuitBreakerStatus()
	assert.Equal(t, 0, consecutive)
	assert.False(t, open)
}

func TestGeminiClient_IsRetryableError(t *testing.T) {
	s := newTestGeminiClient(0)
	assert.True(t, s.isRetryableError(genai.APIError{Code: 429}))
	assert.True(t, s.isRetryableError(errors.New("read: connection reset by peer")))
	assert.False(t, s.isRetryableError(genai.APIError{Code: 401}))
	assert.False(t, s.isRetryableError(context.DeadlineExceeded))
	assert.False(t, s.isRetryableError(nil))
}

func TestGeminiClient_CalculateBackoffCapped(t *testing.T) {
	s := newTestGeminiClient(0)
	assert.Equal(t, time.Millisecond, s.calculateBackoff(1))
	assert.Equal(t, 5*time.Millisecond, s.calculateBackoff(10))
}

func TestValidateEmbeddingResponse(t *testing.T) {
	_, err := validateEmbeddingResponse(&genai.EmbedContentResponse{})
	assert.Error(t, err)

	values, err := validateEmbeddingResponse(&genai.EmbedContentResponse{
		Embeddings: []*genai.ContentEmbedding{{Values: []float32{0.1, 0.2}}},
	})
	require.NoError(t, err)
	assert.Len(t, values, 2)
}
