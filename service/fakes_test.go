package service

import (
	"context"
	"errors"
	"image"
	"sync"

	"github.com/Aashish23092/tour-diary-generator/dto"
)

// fakePDF treats the document bytes as the PDF text layer.
type fakePDF struct {
	images []image.Image
}

func (f *fakePDF) ExtractText(data []byte, _ string) (string, error) {
	if string(data) == "corrupt" {
		return "", errors.New("malformed PDF: xref not found")
	}
	return string(data), nil
}

func (f *fakePDF) ExtractImages([]byte, string) ([]image.Image, error) {
	return f.images, nil
}

func (f *fakePDF) PageCount([]byte, string) (int, error) {
	return 1, nil
}

type fakeOCR struct {
	text  string
	calls int
}

func (f *fakeOCR) ExtractText([]byte) (string, float64, error) {
	f.calls++
	return f.text, 91.5, nil
}

// fakeGenerator answers with a canned reply per filename.
type fakeGenerator struct {
	mu      sync.Mutex
	replies map[string]string
	err     error
	prompts []string
	closed  bool
}

func (f *fakeGenerator) Generate(_ context.Context, doc dto.Document, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	reply, ok := f.replies[doc.Filename]
	if !ok {
		return "", errors.New("no reply configured")
	}
	return reply, nil
}

func (f *fakeGenerator) Close() error {
	f.closed = true
	return nil
}

type stubExtractor struct {
	name string
	ext  *dto.Extraction
	err  error
}

func (s *stubExtractor) Name() string { return s.name }

func (s *stubExtractor) Extract(context.Context, dto.Document) (*dto.Extraction, error) {
	return s.ext, s.err
}
