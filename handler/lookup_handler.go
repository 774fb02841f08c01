package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Aashish23092/tour-diary-generator/service"
)

// mapsKeyHeader carries a per-request search API key so it stays out of URLs.
const mapsKeyHeader = "X-Maps-Api-Key"

// LookupHandler serves the standalone allowance and distance lookups.
type LookupHandler struct {
	allowanceService *service.AllowanceService
	diaryService     *service.DiaryService
}

func NewLookupHandler(allowanceService *service.AllowanceService, diaryService *service.DiaryService) *LookupHandler {
	return &LookupHandler{
		allowanceService: allowanceService,
		diaryService:     diaryService,
	}
}

// Allowance handles GET /api/v1/allowance?basic=&level=&city=
func (h *LookupHandler) Allowance(c *gin.Context) {
	var (
		basic float64
		level int
		err   error
	)

	if raw := c.Query("basic"); raw != "" {
		basic, err = strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
		if err != nil {
			sendError(c, http.StatusBadRequest, codeInvalidRequest, "basic must be a number", nil)
			return
		}
	}
	if raw := c.Query("level"); raw != "" {
		level, err = strconv.Atoi(raw)
		if err != nil {
			sendError(c, http.StatusBadRequest, codeInvalidRequest, "level must be a number", nil)
			return
		}
	}
	if basic <= 0 && level <= 0 {
		sendError(c, http.StatusBadRequest, codeInvalidRequest, "basic or level is required", nil)
		return
	}

	resp, err := h.allowanceService.Lookup(basic, level, c.Query("city"))
	if err != nil {
		sendServiceError(c, "Allowance lookup failed", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Distance handles GET /api/v1/distance?from=&to= with the key in X-Maps-Api-Key.
func (h *LookupHandler) Distance(c *gin.Context) {
	from := strings.TrimSpace(c.Query("from"))
	to := strings.TrimSpace(c.Query("to"))
	if from == "" || to == "" {
		sendError(c, http.StatusBadRequest, codeInvalidRequest, "from and to are required", nil)
		return
	}

	resolver, err := h.diaryService.Resolver(c.GetHeader(mapsKeyHeader))
	if err != nil {
		sendError(c, http.StatusServiceUnavailable, codeInternal, "Distance search unavailable", err)
		return
	}

	resp, err := resolver.Resolve(c.Request.Context(), from, to)
	if err != nil {
		sendServiceError(c, "Distance search failed", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Health handles GET /health
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "Tour Diary Generator",
	})
}
