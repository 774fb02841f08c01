package handler

import (
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Aashish23092/tour-diary-generator/dto"
	"github.com/Aashish23092/tour-diary-generator/service"
	"github.com/Aashish23092/tour-diary-generator/storage"
)

const skippedFilesHeader = "X-Skipped-Files"

type DiaryHandler struct {
	diaryService *service.DiaryService
	maxFileSize  int64
}

func NewDiaryHandler(diaryService *service.DiaryService, maxFileSize int64) *DiaryHandler {
	return &DiaryHandler{
		diaryService: diaryService,
		maxFileSize:  maxFileSize,
	}
}

// Generate handles POST /api/v1/diary/generate and returns the rendered diary as a download.
func (h *DiaryHandler) Generate(c *gin.Context) {
	reqID := GetRequestID(c)
	log.Printf("[%s] Received diary generation request", reqID)

	req, ok := h.bindRequest(c)
	if !ok {
		return
	}

	out, err := h.diaryService.Generate(c.Request.Context(), req)
	if err != nil {
		sendServiceError(c, "Failed to generate tour diary", err)
		return
	}

	if len(out.Diary.Skipped) > 0 {
		names := make([]string, 0, len(out.Diary.Skipped))
		for _, s := range out.Diary.Skipped {
			names = append(names, s.Filename)
		}
		c.Header(skippedFilesHeader, strings.Join(names, ","))
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, out.Filename))

	log.Printf("[%s] Tour diary generated: %s", reqID, out.Filename)
	c.Data(http.StatusOK, out.ContentType, out.Data)
}

// Extract handles POST /api/v1/diary/extract, a JSON preview of the merged records.
func (h *DiaryHandler) Extract(c *gin.Context) {
	req, ok := h.bindRequest(c)
	if !ok {
		return
	}

	resp, err := h.diaryService.ExtractOnly(c.Request.Context(), req)
	if err != nil {
		sendServiceError(c, "Failed to extract tour data", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// History handles GET /api/v1/diary/history.
func (h *DiaryHandler) History(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			sendError(c, http.StatusBadRequest, codeInvalidRequest, "limit must be a number", nil)
			return
		}
		limit = n
	}

	records, err := h.diaryService.Recent(c.Request.Context(), storage.ClampLimit(limit))
	if err != nil {
		sendServiceError(c, "Failed to load history", err)
		return
	}
	if records == nil {
		records = []dto.HistoryRecord{}
	}

	c.JSON(http.StatusOK, gin.H{"records": records})
}

func (h *DiaryHandler) bindRequest(c *gin.Context) (dto.GenerateRequest, bool) {
	form, err := c.MultipartForm()
	if err != nil {
		sendError(c, http.StatusBadRequest, codeInvalidRequest, "Failed to parse multipart form", err)
		return dto.GenerateRequest{}, false
	}

	upload := &dto.DiaryUploadRequest{
		Files:        form.File["files[]"],
		Format:       c.PostForm("format"),
		Extractor:    c.PostForm("extractor"),
		Password:     c.PostForm("password"),
		GeminiAPIKey: c.PostForm("gemini_api_key"),
		MapsAPIKey:   c.PostForm("maps_api_key"),
	}

	if err := upload.Validate(); err != nil {
		sendError(c, http.StatusBadRequest, codeInvalidRequest, err.Error(), err)
		return dto.GenerateRequest{}, false
	}

	docs := make([]dto.Document, 0, len(upload.Files))
	for _, fh := range upload.Files {
		if h.maxFileSize > 0 && fh.Size > h.maxFileSize {
			sendError(c, http.StatusBadRequest, codeInvalidRequest,
				fmt.Sprintf("%s exceeds the %d MB limit", fh.Filename, h.maxFileSize>>20), nil)
			return dto.GenerateRequest{}, false
		}

		doc, err := readDocument(fh, upload.Password)
		if err != nil {
			sendError(c, http.StatusBadRequest, codeInvalidRequest, "Failed to read uploaded file", err)
			return dto.GenerateRequest{}, false
		}
		docs = append(docs, doc)
	}

	log.Printf("[%s] Processing %d files (format=%s)", GetRequestID(c), len(docs), upload.Format)

	return dto.GenerateRequest{
		RequestID:    GetRequestID(c),
		Documents:    docs,
		Format:       upload.Format,
		Extractor:    upload.Extractor,
		GeminiAPIKey: upload.GeminiAPIKey,
		MapsAPIKey:   upload.MapsAPIKey,
	}, true
}

func readDocument(fh *multipart.FileHeader, password string) (dto.Document, error) {
	f, err := fh.Open()
	if err != nil {
		return dto.Document{}, fmt.Errorf("failed to open %s: %w", fh.Filename, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return dto.Document{}, fmt.Errorf("failed to read %s: %w", fh.Filename, err)
	}

	mimeType := fh.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "application/pdf"
	}

	return dto.Document{
		Filename: fh.Filename,
		MIMEType: mimeType,
		Data:     data,
		Password: password,
	}, nil
}
