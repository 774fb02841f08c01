package service

import (
	"context"
	"fmt"
	"image"
	"log"
	"strings"

	"github.com/Aashish23092/tour-diary-generator/dto"
	"github.com/Aashish23092/tour-diary-generator/utils"
)

// Below this many characters the text layer is treated as missing and the pages are OCRed.
const minTextLayerChars = 20

// OCRClient reads text from an encoded page image.
type OCRClient interface {
	ExtractText(image []byte) (string, float64, error)
}

// RegexExtractor reads the PDF locally: text layer first, OCR for scans,
// then the pattern parsers in utils.
type RegexExtractor struct {
	pdf PDFProcessor
	ocr OCRClient
}

// NewRegexExtractor builds the local extractor. ocr may be nil, in which case
// scanned documents without a text layer are skipped.
func NewRegexExtractor(pdf PDFProcessor, ocr OCRClient) *RegexExtractor {
	return &RegexExtractor{pdf: pdf, ocr: ocr}
}

func (e *RegexExtractor) Name() string {
	return ExtractorRegex
}

func (e *RegexExtractor) Extract(ctx context.Context, doc dto.Document) (*dto.Extraction, error) {
	text, err := e.pdf.ExtractText(doc.Data, doc.Password)
	if err != nil {
		return nil, &dto.ExtractionError{Filename: doc.Filename, Stage: "read", Err: fmt.Errorf("%w: %v", dto.ErrUnreadableFile, err)}
	}

	var images []image.Image
	if len(strings.TrimSpace(text)) < minTextLayerChars {
		images = e.pageImages(doc)
		text = e.ocrImages(ctx, doc.Filename, images)
	}
	if strings.TrimSpace(text) == "" {
		return nil, &dto.ExtractionError{Filename: doc.Filename, Stage: "read", Err: fmt.Errorf("%w: no text found", dto.ErrUnreadableFile)}
	}

	docType, ok := utils.ClassifyText(text)
	if !ok {
		return nil, &dto.ExtractionError{Filename: doc.Filename, Stage: "classify", Err: dto.ErrUnclassified}
	}

	ext := utils.ParseByType(docType, text)
	ext.Filename = doc.Filename

	if ext.Type == dto.DocTypeTourApproval && ext.SystemNo == "" {
		if images == nil {
			images = e.pageImages(doc)
		}
		ext.SystemNo = systemNoFromImages(images)
	}

	log.Printf("[%s] regex extraction: type=%s trips=%d", doc.Filename, ext.Type, len(ext.Trips))
	return &ext, nil
}

func (e *RegexExtractor) pageImages(doc dto.Document) []image.Image {
	images, err := e.pdf.ExtractImages(doc.Data, doc.Password)
	if err != nil {
		log.Printf("[%s] image extraction failed: %v", doc.Filename, err)
		return nil
	}
	if pages, err := e.pdf.PageCount(doc.Data, doc.Password); err == nil {
		log.Printf("[%s] %d page(s), %d embedded image(s)", doc.Filename, pages, len(images))
	}
	return images
}

func (e *RegexExtractor) ocrImages(ctx context.Context, filename string, images []image.Image) string {
	if e.ocr == nil {
		return ""
	}

	var sb strings.Builder
	for i, img := range images {
		if ctx.Err() != nil {
			break
		}

		data, err := PrepareForOCR(img)
		if err != nil {
			log.Printf("[%s] page image %d: %v", filename, i+1, err)
			continue
		}

		text, conf, err := e.ocr.ExtractText(data)
		if err != nil {
			log.Printf("[%s] OCR of page image %d failed: %v", filename, i+1, err)
			continue
		}
		log.Printf("[%s] OCR page image %d: %d chars, confidence %.1f", filename, i+1, len(text), conf)

		sb.WriteString(text)
		sb.WriteString("\n")
	}
	return sb.String()
}

func systemNoFromImages(images []image.Image) string {
	for _, img := range images {
		text, err := utils.DecodeBarcode(img)
		if err != nil {
			continue
		}
		if no := utils.SystemNoFromBarcode(text); no != "" {
			return no
		}
	}
	return ""
}
