package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aashish23092/tour-diary-generator/client"
	"github.com/Aashish23092/tour-diary-generator/config"
	"github.com/Aashish23092/tour-diary-generator/dto"
	"github.com/Aashish23092/tour-diary-generator/storage"
)

const (
	tourText = "Online Tour Management System\n" +
		"System No: 21781756377236\n" +
		"Name of Employee: Ravi Patel\n" +
		"16/01/2025 09:00 NAU, Navsari 16/01/2025 11:00 Surat\n" +
		"15/01/2025 08:00 NAU, Navsari 15/01/2025 10:30 Bharuch\n"
	salaryText = "PAY SLIP FOR JANUARY 2025\nEMP NAME: R. Patel\nBasic Pay: 56,100\n"
	mapText    = "Google Maps route summary\n3 hr 15 min\n142 km\n"
)

func testConfig() *config.Config {
	return &config.Config{
		ExtractorMode: ExtractorRegex,
		Letterhead:    config.DefaultLetterhead(),
	}
}

func docs(pairs ...string) []dto.Document {
	var out []dto.Document
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, dto.Document{Filename: pairs[i], Data: []byte(pairs[i+1])})
	}
	return out
}

func newTestDiaryService(cfg *config.Config, gen GeneratorFactory, routes RouteFinderFactory, history storage.HistoryStore) *DiaryService {
	return NewDiaryService(cfg, NewRegexExtractor(&fakePDF{}, nil), gen, routes, history)
}

func TestExtractOnlyMergesUploads(t *testing.T) {
	svc := newTestDiaryService(testConfig(), nil, nil, nil)

	resp, err := svc.ExtractOnly(context.Background(), dto.GenerateRequest{
		RequestID: "req-1",
		Documents: docs(
			"salary.pdf", salaryText,
			"tour.pdf", tourText,
			"broken.pdf", "corrupt",
			"map.pdf", mapText,
		),
	})

	require.NoError(t, err)
	assert.Len(t, resp.Extractions, 3)
	require.Len(t, resp.Skipped, 1)
	assert.Equal(t, "broken.pdf", resp.Skipped[0].Filename)
	assert.Equal(t, dto.ErrUnreadableFile.Error(), resp.Skipped[0].Reason)

	assert.Equal(t, "Ravi Patel", resp.Employee.Name)
	assert.Equal(t, 56100.0, resp.Employee.BasicPay.Float64())

	require.Len(t, resp.Trips, 2)
	assert.Equal(t, "Bharuch", resp.Trips[0].ArrivalPlace)
	assert.Equal(t, "Surat", resp.Trips[1].ArrivalPlace)
	for _, trip := range resp.Trips {
		assert.Equal(t, "21781756377236", trip.SystemNo)
		assert.Equal(t, 142.0, trip.DistanceKm.Float64())
	}
	assert.Equal(t, 284.0, resp.TotalKm)
	assert.Equal(t, "Month: January-2025", resp.MonthLabel)
	assert.NotEmpty(t, resp.ProcessedAt)
}

func TestBuildErrors(t *testing.T) {
	svc := newTestDiaryService(testConfig(), nil, nil, nil)
	ctx := context.Background()

	_, err := svc.ExtractOnly(ctx, dto.GenerateRequest{})
	assert.ErrorIs(t, err, dto.ErrNoFiles)

	_, err = svc.ExtractOnly(ctx, dto.GenerateRequest{Documents: docs("salary.pdf", salaryText)})
	assert.ErrorIs(t, err, dto.ErrNoTourData)

	_, err = svc.Generate(ctx, dto.GenerateRequest{Format: "odt", Documents: docs("tour.pdf", tourText)})
	assert.ErrorIs(t, err, dto.ErrUnknownFormat)

	_, err = svc.ExtractOnly(ctx, dto.GenerateRequest{Extractor: "ouija", Documents: docs("tour.pdf", tourText)})
	assert.Error(t, err)
}

func TestGenerateRecordsHistory(t *testing.T) {
	history := storage.NewMemoryStore()
	svc := newTestDiaryService(testConfig(), nil, nil, history)

	out, err := svc.Generate(context.Background(), dto.GenerateRequest{
		RequestID: "req-2",
		Format:    dto.FormatDOCX,
		Documents: docs("tour.pdf", tourText),
	})

	require.NoError(t, err)
	assert.Equal(t, "NAU_Tour_Diary_Landscape.docx", out.Filename)
	assert.Equal(t, "PK", string(out.Data[:2]))
	assert.NotEmpty(t, out.ContentType)

	recs, err := svc.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "req-2", recs[0].RequestID)
	assert.Equal(t, "Ravi Patel", recs[0].EmployeeName)
	assert.Equal(t, dto.FormatDOCX, recs[0].Format)
	assert.Equal(t, 2, recs[0].TripCount)
}

func TestGenerateSearchesMissingDistances(t *testing.T) {
	cfg := testConfig()
	cfg.MapsAPIKey = "maps-key"

	finder := &fakeRouteFinder{routes: map[string]*client.Route{
		client.RouteModeRail: {DistanceKm: 36},
	}}
	var gotKey string
	routes := func(apiKey string) RouteFinder {
		gotKey = apiKey
		return finder
	}
	svc := newTestDiaryService(cfg, nil, routes, nil)

	out, err := svc.Generate(context.Background(), dto.GenerateRequest{
		Format:    dto.FormatPDF,
		Documents: docs("tour.pdf", tourText),
	})

	require.NoError(t, err)
	assert.Equal(t, "maps-key", gotKey)
	assert.Equal(t, 72.0, out.Diary.TotalKm)
	assert.Len(t, finder.calls, 2)
}

func TestExtractOnlySkipsDistanceSearch(t *testing.T) {
	cfg := testConfig()
	cfg.MapsAPIKey = "maps-key"
	finder := &fakeRouteFinder{}
	svc := newTestDiaryService(cfg, nil, func(string) RouteFinder { return finder }, nil)

	resp, err := svc.ExtractOnly(context.Background(), dto.GenerateRequest{Documents: docs("tour.pdf", tourText)})

	require.NoError(t, err)
	assert.Empty(t, finder.calls)
	assert.Zero(t, resp.TotalKm)
}

func TestGeminiModeUsesRequestKey(t *testing.T) {
	gen := &fakeGenerator{replies: map[string]string{
		"tour.pdf": `{"type": "tour_approval", "system_no": "99887766554433", "user_details": {"name": "Meena Desai"}, "trips": [{"departure_place": "Navsari", "departure_date": "03/02/2025", "arrival_place": "Anand", "distance_km": 215}]}`,
	}}
	var gotKey string
	factory := func(_ context.Context, apiKey string) (ContentGenerator, error) {
		gotKey = apiKey
		return gen, nil
	}
	svc := newTestDiaryService(testConfig(), factory, nil, nil)

	resp, err := svc.ExtractOnly(context.Background(), dto.GenerateRequest{
		Extractor:    ExtractorGemini,
		GeminiAPIKey: "request-key",
		Documents:    docs("tour.pdf", "%PDF-1.4"),
	})

	require.NoError(t, err)
	assert.Equal(t, "request-key", gotKey)
	assert.True(t, gen.closed)
	assert.Equal(t, "Meena Desai", resp.Employee.Name)
	require.Len(t, resp.Trips, 1)
	assert.Equal(t, "99887766554433", resp.Trips[0].SystemNo)
	assert.Equal(t, 215.0, resp.TotalKm)
}

func TestAutoModeFallsBackWhenGeminiUnavailable(t *testing.T) {
	cfg := testConfig()
	cfg.ExtractorMode = ExtractorAuto
	cfg.GeminiAPIKey = "bad-key"
	factory := func(context.Context, string) (ContentGenerator, error) {
		return nil, errors.New("invalid api key")
	}
	svc := newTestDiaryService(cfg, factory, nil, nil)

	resp, err := svc.ExtractOnly(context.Background(), dto.GenerateRequest{Documents: docs("tour.pdf", tourText)})

	require.NoError(t, err)
	assert.Len(t, resp.Trips, 2)

	// explicit gemini mode surfaces the failure instead
	_, err = svc.ExtractOnly(context.Background(), dto.GenerateRequest{Extractor: ExtractorGemini, Documents: docs("tour.pdf", tourText)})
	assert.Error(t, err)
}

func TestResolverRequiresKey(t *testing.T) {
	svc := newTestDiaryService(testConfig(), nil, func(string) RouteFinder { return &fakeRouteFinder{} }, nil)

	_, err := svc.Resolver("")
	assert.Error(t, err)

	r, err := svc.Resolver("k")
	require.NoError(t, err)
	assert.NotNil(t, r)
}
