package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/fadilmartias/ai-assessment/internal/config"
	"google.golang.org/genai"
	"go.uber.org/zap"
)

// geminiClient wraps a genai client with retry, exponential backoff and a
// consecutive-error circuit breaker shared by the gateway and the embedder.
type geminiClient struct {
	Client            *genai.Client
	MaxRetries        int
	BaseDelay         time.Duration
	MaxDelay          time.Duration
	RequestTimeout    time.Duration
	circuitBreakerMax int
	breakerCooldown   time.Duration
	log               *zap.Logger

	mu                sync.Mutex
	consecutiveErrors int
	openedAt          time.Time
	trialInFlight     bool
}

func newGeminiClient(ctx context.Context, apiKey string, cfg *config.LLMConfig, log *zap.Logger) (*geminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 90 * time.Second
	}
	threshold := cfg.BreakerThreshold
	if threshold <= 0 {
		threshold = 5
	}
	return &geminiClient{
		Client:            client,
		MaxRetries:        cfg.MaxRetries,
		BaseDelay:         time.Second,
		MaxDelay:          90 * time.Second,
		RequestTimeout:    timeout,
		circuitBreakerMax: threshold,
		breakerCooldown:   cfg.BreakerCooldown,
		log:               log,
	}, nil
}

// do runs fn with retries. Every attempt shares one RequestTimeout budget.
func (s *geminiClient) do(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	if err := s.acquire(op); err != nil {
		return err
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, s.RequestTimeout)
	defer cancel()

	var lastErr error
	for attempt := 0; attempt <= s.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := s.calculateBackoff(attempt)
			s.log.Info("retrying gemini call",
				zap.String("op", op),
				zap.Int("attempt", attempt),
				zap.Int("max_retries", s.MaxRetries),
				zap.Duration("delay", delay),
			)

			select {
			case <-time.After(delay):
			case <-timeoutCtx.Done():
				s.recordFailure(ctx)
				return fmt.Errorf("context timeout during retry: %w", timeoutCtx.Err())
			}
		}

		err := fn(timeoutCtx)
		if err == nil {
			s.recordSuccess()
			return nil
		}

		lastErr = err

		if !s.isRetryableError(err) {
			s.log.Warn("non-retryable gemini error", zap.String("op", op), zap.Error(err))
			s.recordFailure(ctx)
			return fmt.Errorf("%s failed: %w", op, err)
		}

		s.log.Warn("retryable gemini error", zap.String("op", op), zap.Int("attempt", attempt+1), zap.Error(err))
	}

	s.recordFailure(ctx)
	return fmt.Errorf("max retries (%d) exceeded for %s: %w", s.MaxRetries, op, lastErr)
}

func (s *geminiClient) calculateBackoff(attempt int) time.Duration {
	delay := s.BaseDelay * time.Duration(math.Pow(2, float64(attempt-1)))

	if delay > s.MaxDelay {
		delay = s.MaxDelay
	}

	jitter := time.Duration(float64(delay) * 0.25)
	delay = delay - jitter/2 + time.Duration(float64(jitter)*0.5)

	return delay
}

func (s *geminiClient) isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case 429: // Rate limit
			return true
		case 500, 502, 503, 504:
			return true
		default:
			return false
		}
	}

	errMsg := err.Error()
	return strings.Contains(errMsg, "connection refused") ||
		strings.Contains(errMsg, "connection reset") ||
		strings.Contains(errMsg, "timeout") ||
		strings.Contains(errMsg, "temporary failure") ||
		strings.Contains(errMsg, "EOF")
}

// acquire rejects calls while the breaker is open. Once breakerCooldown has
// passed since it opened, a single trial call is let through.
func (s *geminiClient) acquire(op string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.consecutiveErrors < s.circuitBreakerMax {
		return nil
	}
	if s.trialInFlight || time.Since(s.openedAt) < s.breakerCooldown {
		return fmt.Errorf("circuit breaker open: too many consecutive errors (%d)", s.consecutiveErrors)
	}
	s.trialInFlight = true
	s.log.Info("circuit breaker half-open, allowing trial call", zap.String("op", op))
	return nil
}

func (s *geminiClient) recordSuccess() {
	s.mu.Lock()
	if s.consecutiveErrors >= s.circuitBreakerMax {
		s.log.Info("circuit breaker closed")
	}
	s.consecutiveErrors = 0
	s.trialInFlight = false
	s.openedAt = time.Time{}
	s.mu.Unlock()
}

// recordFailure counts a failed call against the breaker. Calls abandoned by
// the caller's own context are not counted.
func (s *geminiClient) recordFailure(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.trialInFlight = false
	if ctx.Err() != nil {
		return
	}
	s.consecutiveErrors++
	if s.consecutiveErrors >= s.circuitBreakerMax {
		// a failed trial restarts the cooldown
		s.openedAt = time.Now()
	}
}

func (s *geminiClient) ResetCircuitBreaker() {
	s.recordSuccess()
	s.log.Info("circuit breaker reset")
}

func (s *geminiClient) CircuitBreakerStatus() (consecutiveErrors int, isOpen bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.consecutiveErrors, s.consecutiveErrors >= s.circuitBreakerMax
}
