package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/Aashish23092/tour-diary-generator/dto"
)

const (
	ExtractorGemini = "gemini"
	ExtractorRegex  = "regex"
	ExtractorAuto   = "auto"
)

// Extractor turns one uploaded document into an extraction. Any failure means
// the file is skipped; callers do not distinguish between failure kinds.
type Extractor interface {
	Extract(ctx context.Context, doc dto.Document) (*dto.Extraction, error)
	Name() string
}

// ChainExtractor tries Primary and falls back to Fallback when it fails.
type ChainExtractor struct {
	Primary  Extractor
	Fallback Extractor
}

func (c *ChainExtractor) Name() string {
	return c.Primary.Name() + "+" + c.Fallback.Name()
}

func (c *ChainExtractor) Extract(ctx context.Context, doc dto.Document) (*dto.Extraction, error) {
	ext, err := c.Primary.Extract(ctx, doc)
	if err == nil {
		return ext, nil
	}
	log.Printf("[%s] %s failed, falling back to %s: %v", doc.Filename, c.Primary.Name(), c.Fallback.Name(), err)

	ext, fbErr := c.Fallback.Extract(ctx, doc)
	if fbErr != nil {
		return nil, errors.Join(err, fbErr)
	}
	return ext, nil
}

// NewExtractor picks the extraction strategy. "auto" uses Gemini when a
// generator is available and the regex extractor otherwise or as fallback.
func NewExtractor(mode string, gen ContentGenerator, regex *RegexExtractor) (Extractor, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case ExtractorGemini:
		if gen == nil {
			return nil, fmt.Errorf("gemini extractor requires an API key")
		}
		return NewGeminiExtractor(gen), nil
	case ExtractorRegex:
		return regex, nil
	case ExtractorAuto, "":
		if gen == nil {
			return regex, nil
		}
		return &ChainExtractor{Primary: NewGeminiExtractor(gen), Fallback: regex}, nil
	default:
		return nil, fmt.Errorf("unknown extractor %q", mode)
	}
}
