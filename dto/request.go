package dto

import (
	"fmt"
	"mime/multipart"
	"strings"
)

const (
	FormatDOCX = "docx"
	FormatPDF  = "pdf"
	FormatXLSX = "xlsx"
)

// DiaryUploadRequest represents the incoming multipart request
type DiaryUploadRequest struct {
	Files        []*multipart.FileHeader `form:"files[]"`
	Format       string                  `form:"format"`
	Extractor    string                  `form:"extractor"`
	Password     string                  `form:"password"`
	GeminiAPIKey string                  `form:"gemini_api_key"`
	MapsAPIKey   string                  `form:"maps_api_key"`
}

// Validate performs basic validation on the request
func (r *DiaryUploadRequest) Validate() error {
	if len(r.Files) == 0 {
		return ErrNoFiles
	}

	for _, f := range r.Files {
		if !strings.HasSuffix(strings.ToLower(f.Filename), ".pdf") {
			return fmt.Errorf("invalid file type for %s. Supported: PDF", f.Filename)
		}
	}

	if r.Format == "" {
		r.Format = FormatDOCX
	}
	r.Format = strings.ToLower(strings.TrimSpace(r.Format))
	switch r.Format {
	case FormatDOCX, FormatPDF, FormatXLSX:
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, r.Format)
	}
	return nil
}

// GenerateRequest is the transport-independent input of the diary pipeline.
type GenerateRequest struct {
	RequestID    string
	Documents    []Document
	Format       string
	Extractor    string
	GeminiAPIKey string
	MapsAPIKey   string
}
