package service

import (
	"context"

	"github.com/Aashish23092/tour-diary-generator/client"
)

// GeminiGeneratorFactory opens Gemini clients that share one rate limiter.
func GeminiGeneratorFactory(modelName string, limiter *client.RateLimiter) GeneratorFactory {
	return func(ctx context.Context, apiKey string) (ContentGenerator, error) {
		c, err := client.NewGeminiClient(ctx, apiKey, modelName, limiter)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
}

// RouteClientFactory builds directions clients against baseURL.
func RouteClientFactory(baseURL string) RouteFinderFactory {
	return func(apiKey string) RouteFinder {
		return client.NewRouteClient(baseURL, apiKey)
	}
}
