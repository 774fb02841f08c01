package handler

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter registers every route on a fresh engine.
func NewRouter(diary *DiaryHandler, lookup *LookupHandler, allowedOrigins []string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestID(), Logger(), cors.New(corsConfig(allowedOrigins)))

	// Configure max multipart memory (32 MB)
	router.MaxMultipartMemory = 32 << 20

	router.GET("/health", Health)

	api := router.Group("/api/v1")
	{
		diaryGroup := api.Group("/diary")
		{
			diaryGroup.POST("/generate", diary.Generate)
			diaryGroup.POST("/extract", diary.Extract)
			diaryGroup.GET("/history", diary.History)
		}
		api.GET("/allowance", lookup.Allowance)
		api.GET("/distance", lookup.Distance)
	}

	return router
}

func corsConfig(allowedOrigins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", requestIDHeader, mapsKeyHeader},
		ExposeHeaders: []string{"Content-Disposition", skippedFilesHeader, requestIDHeader},
		MaxAge:        12 * time.Hour,
	}

	for _, o := range allowedOrigins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	if len(allowedOrigins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = allowedOrigins
	return cfg
}
