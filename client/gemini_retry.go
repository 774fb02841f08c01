package client

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"google.golang.org/api/googleapi"
)

// RetryConfig defines retry behavior for Gemini API calls
type RetryConfig struct {
	MaxAttempts     int
	InitialDelay    time.Duration
	MaxDelay        time.Duration
	BackoffMultiple float64
}

var DefaultRetryConfig = RetryConfig{
	MaxAttempts:     3,
	InitialDelay:    1 * time.Second,
	MaxDelay:        8 * time.Second,
	BackoffMultiple: 2.0,
}

// GeminiError is a categorized Gemini API failure.
type GeminiError struct {
	OriginalError error
	Category      string
	StatusCode    int
	Message       string
	Retryable     bool
}

func (e *GeminiError) Error() string {
	return fmt.Sprintf("[%s] %s (status: %d, retryable: %v)", e.Category, e.Message, e.StatusCode, e.Retryable)
}

func (e *GeminiError) Unwrap() error {
	return e.OriginalError
}

// categorizeGeminiError decides whether a failed call is worth retrying.
func categorizeGeminiError(err error) *GeminiError {
	if err == nil {
		return nil
	}

	geminiErr := &GeminiError{
		OriginalError: err,
		Category:      "unknown",
		Message:       err.Error(),
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		geminiErr.StatusCode = apiErr.Code

		switch apiErr.Code {
		case 400:
			geminiErr.Category = "bad_request"
			geminiErr.Message = "Invalid request format or parameters"
		case 401, 403:
			geminiErr.Category = "unauthorized"
			geminiErr.Message = "Invalid API key or missing permissions"
		case 404:
			geminiErr.Category = "not_found"
			geminiErr.Message = "Model not found or invalid endpoint"
		case 413:
			geminiErr.Category = "payload_too_large"
			geminiErr.Message = "Document exceeds the request size limit"
		case 429:
			geminiErr.Category = "rate_limit"
			geminiErr.Message = "Rate limit exceeded - too many requests"
			geminiErr.Retryable = true
		case 500, 502, 503, 504:
			geminiErr.Category = "server_error"
			geminiErr.Message = fmt.Sprintf("Gemini server error (%d)", apiErr.Code)
			geminiErr.Retryable = true
		default:
			geminiErr.Category = "unknown_api_error"
			geminiErr.Message = fmt.Sprintf("API error: %s", apiErr.Message)
			geminiErr.Retryable = apiErr.Code >= 500
		}
		return geminiErr
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		geminiErr.Category = "timeout"
		geminiErr.Message = "Request timeout - processing took too long"
		geminiErr.Retryable = true
		return geminiErr
	case errors.Is(err, context.Canceled):
		geminiErr.Category = "canceled"
		geminiErr.Message = "Request was canceled"
		return geminiErr
	}

	errMsg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(errMsg, "quota"):
		geminiErr.Category = "quota_exceeded"
		geminiErr.Message = "API quota exceeded"
	case strings.Contains(errMsg, "timeout") || strings.Contains(errMsg, "deadline"):
		geminiErr.Category = "timeout"
		geminiErr.Message = "Request timeout"
		geminiErr.Retryable = true
	case strings.Contains(errMsg, "connection") || strings.Contains(errMsg, "network"):
		geminiErr.Category = "network_error"
		geminiErr.Message = "Network connection error"
		geminiErr.Retryable = true
	}

	return geminiErr
}

// withRetry runs call until it succeeds, fails with a non-retryable error or
// runs out of attempts. Rate-limit failures wait twice the normal backoff.
func withRetry[T any](ctx context.Context, label string, cfg RetryConfig, call func(context.Context) (T, error)) (T, error) {
	var zero T
	var lastErr *GeminiError

	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		if attempt > 1 {
			log.Printf("[%s] retry attempt %d/%d", label, attempt, cfg.MaxAttempts)
		}

		resp, err := call(ctx)
		if err == nil {
			return resp, nil
		}

		lastErr = categorizeGeminiError(err)
		log.Printf("[%s] API call failed (attempt %d/%d): %s", label, attempt, cfg.MaxAttempts, lastErr.Error())

		if !lastErr.Retryable {
			return zero, lastErr
		}
		if attempt >= cfg.MaxAttempts {
			break
		}

		delay := calculateBackoff(attempt, cfg)
		if lastErr.Category == "rate_limit" {
			delay *= 2
		}

		select {
		case <-ctx.Done():
			return zero, fmt.Errorf("context canceled during retry wait: %w", ctx.Err())
		case <-time.After(delay):
		}
	}

	return zero, fmt.Errorf("gemini API call failed after %d attempts: %w", cfg.MaxAttempts, lastErr)
}

// calculateBackoff computes the exponential backoff delay, capped at MaxDelay.
func calculateBackoff(attempt int, cfg RetryConfig) time.Duration {
	delay := float64(cfg.InitialDelay)
	for i := 1; i < attempt; i++ {
		delay *= cfg.BackoffMultiple
	}

	if delay > float64(cfg.MaxDelay) {
		delay = float64(cfg.MaxDelay)
	}
	return time.Duration(delay)
}
