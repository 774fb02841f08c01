package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Aashish23092/tour-diary-generator/dto"
)

// ContentGenerator sends a document and a prompt to a multimodal model.
type ContentGenerator interface {
	Generate(ctx context.Context, doc dto.Document, prompt string) (string, error)
	Close() error
}

type GeminiExtractor struct {
	gen ContentGenerator
}

func NewGeminiExtractor(gen ContentGenerator) *GeminiExtractor {
	return &GeminiExtractor{gen: gen}
}

func (e *GeminiExtractor) Name() string {
	return ExtractorGemini
}

func (e *GeminiExtractor) Extract(ctx context.Context, doc dto.Document) (*dto.Extraction, error) {
	data, err := decrypt(doc.Data, doc.Password)
	if err != nil {
		return nil, &dto.ExtractionError{Filename: doc.Filename, Stage: "read", Err: fmt.Errorf("%w: %v", dto.ErrUnreadableFile, err)}
	}
	doc.Data = data

	text, err := e.gen.Generate(ctx, doc, documentPrompt)
	if err != nil {
		return nil, &dto.ExtractionError{Filename: doc.Filename, Stage: "service", Err: fmt.Errorf("%w: %v", dto.ErrServiceCall, err)}
	}

	ext, err := parseModelJSON(text)
	if err != nil {
		return nil, &dto.ExtractionError{Filename: doc.Filename, Stage: "json", Err: err}
	}

	ext.Source = ExtractorGemini
	ext.Filename = doc.Filename
	return ext, nil
}

// parseModelJSON decodes the model reply, tolerating markdown code fences
// and the loose field types models tend to produce.
func parseModelJSON(text string) (*dto.Extraction, error) {
	text = stripCodeFence(text)

	var ext dto.Extraction
	if err := json.Unmarshal([]byte(text), &ext); err != nil {
		return nil, fmt.Errorf("%w: %v", dto.ErrInvalidJSON, err)
	}

	ext.Type = normalizeDocType(ext.Type)
	if ext.Type == "" {
		return nil, dto.ErrUnclassified
	}
	return &ext, nil
}

func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```JSON")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}

func normalizeDocType(t dto.DocumentType) dto.DocumentType {
	switch strings.ToLower(strings.TrimSpace(string(t))) {
	case "tour_approval", "tour approval", "tour":
		return dto.DocTypeTourApproval
	case "salary", "salary_slip", "salary slip":
		return dto.DocTypeSalarySlip
	case "map_data", "map", "map screenshot":
		return dto.DocTypeMapData
	case "ticket":
		return dto.DocTypeTicket
	default:
		return ""
	}
}
