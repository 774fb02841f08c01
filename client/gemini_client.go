package client

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/Aashish23092/tour-diary-generator/dto"
)

// Documents above this size go through the File API instead of an inline blob.
const inlineDocumentLimit = 15 << 20

// GeminiClient sends one document plus a prompt to a Gemini model and returns its JSON text.
type GeminiClient struct {
	client    *genai.Client
	modelName string
	limiter   *RateLimiter
	retry     RetryConfig
}

// NewGeminiClient creates a client for apiKey. A nil limiter disables rate limiting.
func NewGeminiClient(ctx context.Context, apiKey, modelName string, limiter *RateLimiter) (*GeminiClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	c, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client:    c,
		modelName: modelName,
		limiter:   limiter,
		retry:     DefaultRetryConfig,
	}, nil
}

// Generate asks the model about doc and returns the raw text of the first candidate.
func (g *GeminiClient) Generate(ctx context.Context, doc dto.Document, prompt string) (string, error) {
	model := g.client.GenerativeModel(g.modelName)
	model.SetTemperature(0)
	model.ResponseMIMEType = "application/json"

	mimeType := doc.MIMEType
	if mimeType == "" {
		mimeType = "application/pdf"
	}

	docPart, cleanup, err := g.documentPart(ctx, doc, mimeType)
	if err != nil {
		return "", err
	}
	defer cleanup()

	resp, err := withRetry(ctx, doc.Filename, g.retry, limited(g.limiter, func(ctx context.Context) (*genai.GenerateContentResponse, error) {
		return model.GenerateContent(ctx, docPart, genai.Text(prompt))
	}))
	if err != nil {
		return "", err
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("no response from Gemini API")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("empty response from Gemini API (finish reason: %v)", resp.Candidates[0].FinishReason)
	}

	return sb.String(), nil
}

// documentPart returns the document as an inline blob, or uploads it and returns
// a file reference together with a cleanup that deletes the upload.
func (g *GeminiClient) documentPart(ctx context.Context, doc dto.Document, mimeType string) (genai.Part, func(), error) {
	noop := func() {}
	if len(doc.Data) <= inlineDocumentLimit {
		return genai.Blob{MIMEType: mimeType, Data: doc.Data}, noop, nil
	}

	file, err := g.client.UploadFile(ctx, "", bytes.NewReader(doc.Data), &genai.UploadFileOptions{
		DisplayName: "NAU_Doc",
		MIMEType:    mimeType,
	})
	if err != nil {
		return nil, noop, fmt.Errorf("failed to upload %s: %w", doc.Filename, err)
	}

	name := file.Name
	cleanup := func() {
		// the request context may already be done
		delCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := g.client.DeleteFile(delCtx, name); err != nil {
			log.Printf("[gemini] failed to delete uploaded file %s: %v", name, err)
		}
	}

	for file.State == genai.FileStateProcessing {
		select {
		case <-ctx.Done():
			cleanup()
			return nil, noop, ctx.Err()
		case <-time.After(time.Second):
		}

		file, err = g.client.GetFile(ctx, name)
		if err != nil {
			cleanup()
			return nil, noop, fmt.Errorf("failed to poll upload of %s: %w", doc.Filename, err)
		}
	}
	if file.State == genai.FileStateFailed {
		cleanup()
		return nil, noop, fmt.Errorf("upload of %s failed processing", doc.Filename)
	}

	return genai.FileData{MIMEType: file.MIMEType, URI: file.URI}, cleanup, nil
}

// Close releases the underlying connection.
func (g *GeminiClient) Close() error {
	return g.client.Close()
}
