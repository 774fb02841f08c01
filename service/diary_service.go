package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/Aashish23092/tour-diary-generator/config"
	"github.com/Aashish23092/tour-diary-generator/dto"
	"github.com/Aashish23092/tour-diary-generator/render"
	"github.com/Aashish23092/tour-diary-generator/storage"
	"github.com/Aashish23092/tour-diary-generator/utils"
)

// GeneratorFactory opens a model client for one request's API key.
type GeneratorFactory func(ctx context.Context, apiKey string) (ContentGenerator, error)

// RouteFinderFactory builds a directions client for one request's API key.
type RouteFinderFactory func(apiKey string) RouteFinder

// GeneratedDiary is a rendered diary ready for download.
type GeneratedDiary struct {
	Filename    string
	ContentType string
	Data        []byte
	Diary       *dto.Diary
}

type DiaryService struct {
	cfg            *config.Config
	regex          *RegexExtractor
	newGenerator   GeneratorFactory
	newRouteFinder RouteFinderFactory
	allowance      *AllowanceService
	history        storage.HistoryStore
}

// NewDiaryService wires the pipeline. newGenerator and newRouteFinder may be nil,
// which disables Gemini extraction and distance search respectively.
func NewDiaryService(cfg *config.Config, regex *RegexExtractor, newGenerator GeneratorFactory, newRouteFinder RouteFinderFactory, history storage.HistoryStore) *DiaryService {
	if history == nil {
		history = storage.NoopStore{}
	}
	return &DiaryService{
		cfg:            cfg,
		regex:          regex,
		newGenerator:   newGenerator,
		newRouteFinder: newRouteFinder,
		allowance:      NewAllowanceService(),
		history:        history,
	}
}

// Generate runs the whole pipeline and renders the diary in req.Format.
func (s *DiaryService) Generate(ctx context.Context, req dto.GenerateRequest) (*GeneratedDiary, error) {
	renderer, err := render.ForFormat(req.Format)
	if err != nil {
		return nil, err
	}

	diary, _, err := s.build(ctx, req, true)
	if err != nil {
		return nil, err
	}

	data, err := renderer.Render(diary)
	if err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", renderer.Format(), err)
	}
	log.Printf("[%s] rendered %s (%d bytes, %d trips, %d skipped)", req.RequestID, renderer.Format(), len(data), len(diary.Trips), len(diary.Skipped))

	s.recordHistory(ctx, req.RequestID, renderer.Format(), diary)

	return &GeneratedDiary{
		Filename:    render.Filename(renderer),
		ContentType: renderer.ContentType(),
		Data:        data,
		Diary:       diary,
	}, nil
}

// ExtractOnly runs extraction and merging without distance search or rendering.
func (s *DiaryService) ExtractOnly(ctx context.Context, req dto.GenerateRequest) (*dto.ExtractResponse, error) {
	diary, extractions, err := s.build(ctx, req, false)
	if err != nil {
		return nil, err
	}

	return &dto.ExtractResponse{
		Employee:    diary.Employee,
		Trips:       diary.Trips,
		Allowances:  diary.Allowances,
		PayLevel:    diary.PayLevel,
		MonthLabel:  diary.MonthLabel,
		TotalKm:     diary.TotalKm,
		TotalDA:     diary.TotalDA,
		Extractions: extractions,
		Skipped:     diary.Skipped,
		ProcessedAt: diary.CreatedAt.Format(time.RFC3339),
	}, nil
}

// Recent lists the latest generated diaries.
func (s *DiaryService) Recent(ctx context.Context, limit int) ([]dto.HistoryRecord, error) {
	return s.history.Recent(ctx, limit)
}

func (s *DiaryService) build(ctx context.Context, req dto.GenerateRequest, searchDistances bool) (*dto.Diary, []dto.Extraction, error) {
	if len(req.Documents) == 0 {
		return nil, nil, dto.ErrNoFiles
	}

	extractor, closeExtractor, err := s.extractorFor(ctx, req)
	if err != nil {
		return nil, nil, err
	}
	defer closeExtractor()

	log.Printf("[%s] extracting %d document(s) with %s", req.RequestID, len(req.Documents), extractor.Name())
	results, skipped := s.extractAll(ctx, req.RequestID, extractor, req.Documents)
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	merged := Merge(results)
	if len(merged.Trips) == 0 {
		return nil, nil, fmt.Errorf("%w: upload a valid tour approval PDF", dto.ErrNoTourData)
	}

	trips := merged.Trips
	if n := BackfillDistances(trips, merged.Maps); n > 0 {
		log.Printf("[%s] backfilled %d distance(s) from map data", req.RequestID, n)
	}
	ApplyTickets(trips, merged.Tickets)

	if searchDistances {
		if resolver := s.resolverFor(req); resolver != nil {
			if n := resolver.FillMissingDistances(ctx, req.RequestID, trips); n > 0 {
				log.Printf("[%s] resolved %d distance(s) via directions search", req.RequestID, n)
			}
		}
	}

	SortTrips(trips)

	allowances, totalDA, level := s.allowance.Compute(merged.Employee, trips)
	totalKm := 0.0
	for _, t := range trips {
		totalKm += t.DistanceKm.Float64()
	}

	extractions := make([]dto.Extraction, 0, len(results))
	for _, r := range results {
		if r != nil {
			extractions = append(extractions, *r)
		}
	}

	diary := &dto.Diary{
		Employee:   merged.Employee,
		Trips:      trips,
		Allowances: allowances,
		PayLevel:   level,
		MonthLabel: utils.MonthLabel(trips),
		TotalKm:    totalKm,
		TotalDA:    totalDA,
		Letterhead: s.cfg.Letterhead,
		Skipped:    skipped,
		CreatedAt:  time.Now(),
	}
	return diary, extractions, nil
}

// extractAll runs one goroutine per document. Results keep upload order so the
// "first map record" rule refers to the first uploaded map.
func (s *DiaryService) extractAll(ctx context.Context, requestID string, extractor Extractor, docs []dto.Document) ([]*dto.Extraction, []dto.SkippedFile) {
	results := make([]*dto.Extraction, len(docs))
	errs := make([]error, len(docs))

	var wg sync.WaitGroup
	for i := range docs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = extractor.Extract(ctx, docs[i])
		}(i)
	}
	wg.Wait()

	var skipped []dto.SkippedFile
	for i, err := range errs {
		if err == nil {
			continue
		}
		results[i] = nil
		log.Printf("[%s] Error processing %s: %v", requestID, docs[i].Filename, err)
		skipped = append(skipped, dto.SkippedFile{Filename: docs[i].Filename, Reason: skipReason(err)})
	}
	return results, skipped
}

func skipReason(err error) string {
	switch {
	case errors.Is(err, dto.ErrUnreadableFile):
		return dto.ErrUnreadableFile.Error()
	case errors.Is(err, dto.ErrServiceCall):
		return dto.ErrServiceCall.Error()
	case errors.Is(err, dto.ErrInvalidJSON):
		return dto.ErrInvalidJSON.Error()
	case errors.Is(err, dto.ErrUnclassified):
		return dto.ErrUnclassified.Error()
	default:
		return err.Error()
	}
}

func (s *DiaryService) extractorFor(ctx context.Context, req dto.GenerateRequest) (Extractor, func(), error) {
	mode := firstNonEmpty(req.Extractor, s.cfg.ExtractorMode)
	apiKey := firstNonEmpty(req.GeminiAPIKey, s.cfg.GeminiAPIKey)

	var gen ContentGenerator
	if apiKey != "" && s.newGenerator != nil && !strings.EqualFold(mode, ExtractorRegex) {
		g, err := s.newGenerator(ctx, apiKey)
		if err != nil {
			if strings.EqualFold(mode, ExtractorGemini) {
				return nil, nil, err
			}
			log.Printf("[%s] gemini unavailable, using regex extraction: %v", req.RequestID, err)
		} else {
			gen = g
		}
	}

	extractor, err := NewExtractor(mode, gen, s.regex)
	if err != nil {
		if gen != nil {
			_ = gen.Close()
		}
		return nil, nil, err
	}

	closeFn := func() {
		if gen != nil {
			_ = gen.Close()
		}
	}
	return extractor, closeFn, nil
}

func (s *DiaryService) resolverFor(req dto.GenerateRequest) *DistanceResolver {
	apiKey := firstNonEmpty(req.MapsAPIKey, s.cfg.MapsAPIKey)
	if apiKey == "" || s.newRouteFinder == nil {
		return nil
	}
	return NewDistanceResolver(s.newRouteFinder(apiKey))
}

// Resolver returns a distance resolver for apiKey, or the configured key when empty.
func (s *DiaryService) Resolver(apiKey string) (*DistanceResolver, error) {
	r := s.resolverFor(dto.GenerateRequest{MapsAPIKey: apiKey})
	if r == nil {
		return nil, fmt.Errorf("maps API key is not configured")
	}
	return r, nil
}

func (s *DiaryService) recordHistory(ctx context.Context, requestID, format string, d *dto.Diary) {
	rec := dto.HistoryRecord{
		RequestID:    requestID,
		EmployeeName: d.Employee.Name,
		Format:       format,
		TripCount:    len(d.Trips),
		TotalKm:      d.TotalKm,
		TotalDA:      d.TotalDA.StringFixed(2),
		Skipped:      len(d.Skipped),
		GeneratedAt:  d.CreatedAt,
	}
	if err := s.history.Save(ctx, rec); err != nil {
		log.Printf("[%s] failed to record history: %v", requestID, err)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
