package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aashish23092/tour-diary-generator/client"
	"github.com/Aashish23092/tour-diary-generator/config"
	"github.com/Aashish23092/tour-diary-generator/dto"
	"github.com/Aashish23092/tour-diary-generator/service"
	"github.com/Aashish23092/tour-diary-generator/storage"
)

const tourText = "Online Tour Management System\n" +
	"System No: 21781756377236\n" +
	"Name of Employee: Ravi Patel\n" +
	"15/01/2025 08:00 NAU, Navsari 15/01/2025 10:30 Surat\n"

type textPDF struct{}

func (textPDF) ExtractText(data []byte, _ string) (string, error) {
	if string(data) == "corrupt" {
		return "", errors.New("malformed PDF")
	}
	return string(data), nil
}

func (textPDF) ExtractImages([]byte, string) ([]image.Image, error) { return nil, nil }

func (textPDF) PageCount([]byte, string) (int, error) { return 1, nil }

type stubRoutes struct{}

func (stubRoutes) FindRoute(_ context.Context, origin, _, mode string) (*client.Route, error) {
	if origin == "Nowhere" {
		return nil, dto.ErrNoRoute
	}
	if mode == client.RouteModeRail {
		return nil, dto.ErrNoRoute
	}
	return &client.Route{DistanceKm: 36.4, Duration: "52 min"}, nil
}

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T) (*gin.Engine, *storage.MemoryStore) {
	t.Helper()

	cfg := &config.Config{ExtractorMode: service.ExtractorRegex, Letterhead: config.DefaultLetterhead()}
	history := storage.NewMemoryStore()
	diarySvc := service.NewDiaryService(cfg,
		service.NewRegexExtractor(textPDF{}, nil),
		nil,
		func(string) service.RouteFinder { return stubRoutes{} },
		history,
	)

	router := NewRouter(
		NewDiaryHandler(diarySvc, 1<<20),
		NewLookupHandler(service.NewAllowanceService(), diarySvc),
		[]string{"*"},
	)
	return router, history
}

func multipartBody(t *testing.T, fields map[string]string, files map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for name, content := range files {
		part, err := w.CreateFormFile("files[]", name)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func TestHealth(t *testing.T) {
	router, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))
}

func TestGenerateReturnsAttachment(t *testing.T) {
	router, history := newTestRouter(t)
	body, contentType := multipartBody(t,
		map[string]string{"format": "xlsx", "maps_api_key": "k"},
		map[string]string{"tour.pdf": tourText, "broken.pdf": "corrupt"},
	)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/diary/generate", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set(requestIDHeader, "req-42")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, `attachment; filename="NAU_Tour_Diary_Landscape.xlsx"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "broken.pdf", w.Header().Get(skippedFilesHeader))
	assert.Equal(t, "req-42", w.Header().Get(requestIDHeader))
	assert.Equal(t, "PK", w.Body.String()[:2])

	recs, err := history.Recent(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "req-42", recs[0].RequestID)
	assert.Equal(t, 36.4, recs[0].TotalKm)
}

func TestGenerateValidation(t *testing.T) {
	router, _ := newTestRouter(t)

	tests := []struct {
		name   string
		fields map[string]string
		files  map[string]string
		status int
		code   string
	}{
		{"no files", nil, nil, http.StatusBadRequest, codeInvalidRequest},
		{"not a pdf", nil, map[string]string{"scan.png": "x"}, http.StatusBadRequest, codeInvalidRequest},
		{"unknown format", map[string]string{"format": "odt"}, map[string]string{"tour.pdf": tourText}, http.StatusBadRequest, codeInvalidRequest},
		{"no tour data", nil, map[string]string{"slip.pdf": "PAY SLIP\nEMP NAME: Ravi Patel\nBasic Pay: 56,100"}, http.StatusUnprocessableEntity, codeNoTourData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, contentType := multipartBody(t, tt.fields, tt.files)
			req := httptest.NewRequest(http.MethodPost, "/api/v1/diary/generate", body)
			req.Header.Set("Content-Type", contentType)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)

			var resp dto.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.code, resp.Error)
			assert.Equal(t, tt.status, resp.Code)
			assert.NotEmpty(t, resp.RequestID)
		})
	}
}

func TestGenerateRejectsLargeFile(t *testing.T) {
	router, _ := newTestRouter(t)
	big := string(bytes.Repeat([]byte("a"), 2<<20))
	body, contentType := multipartBody(t, nil, map[string]string{"tour.pdf": big})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/diary/generate", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "exceeds")
}

func TestExtractPreview(t *testing.T) {
	router, _ := newTestRouter(t)
	body, contentType := multipartBody(t, nil, map[string]string{"tour.pdf": tourText})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/diary/extract", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp dto.ExtractResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Ravi Patel", resp.Employee.Name)
	require.Len(t, resp.Trips, 1)
	assert.Equal(t, "21781756377236", resp.Trips[0].SystemNo)
	assert.Empty(t, resp.Skipped)
}

func TestHistory(t *testing.T) {
	router, history := newTestRouter(t)
	require.NoError(t, history.Save(context.Background(), dto.HistoryRecord{RequestID: "a", Format: "pdf"}))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/diary/history?limit=5", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Records []dto.HistoryRecord `json:"records"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Records, 1)
	assert.Equal(t, "a", resp.Records[0].RequestID)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/diary/history?limit=lots", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAllowanceLookup(t *testing.T) {
	router, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/allowance?basic=56100&city=Surat", nil))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp dto.AllowanceResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Surat", resp.City)
	assert.True(t, resp.Amount.IsPositive())

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/allowance?city=Surat", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/allowance?basic=abc", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func distanceRequest(query, key string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/distance?"+query, nil)
	if key != "" {
		req.Header.Set(mapsKeyHeader, key)
	}
	return req
}

func TestDistanceLookup(t *testing.T) {
	router, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, distanceRequest("from=Navsari&to=Surat", "k"))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp dto.DistanceResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, client.RouteModeRoad, resp.Mode)
	assert.Equal(t, 36.4, resp.DistanceKm)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, distanceRequest("from=Nowhere&to=Surat", "k"))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, distanceRequest("from=Navsari&to=Surat", ""))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	// a key in the query string is ignored
	w = httptest.NewRecorder()
	router.ServeHTTP(w, distanceRequest("from=Navsari&to=Surat&maps_api_key=k", ""))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/distance?from=Navsari", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSendErrorHidesInternalDetail(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	sendError(c, http.StatusInternalServerError, codeInternal, "Failed to generate tour diary",
		errors.New("mongo: dial tcp 10.0.0.5:27017: connection refused"))

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Failed to generate tour diary", resp.Message)
	assert.NotContains(t, w.Body.String(), "10.0.0.5")

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	sendError(c, http.StatusBadRequest, codeInvalidRequest, "Allowance lookup failed", dto.ErrUnknownCityClass)

	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Allowance lookup failed: unknown city class", resp.Message)
}

func TestStatusFor(t *testing.T) {
	status, code := statusFor(context.DeadlineExceeded)
	assert.Equal(t, http.StatusGatewayTimeout, status)
	assert.Equal(t, codeTimeout, code)

	status, _ = statusFor(errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, status)
}
