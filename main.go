package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Aashish23092/tour-diary-generator/client"
	"github.com/Aashish23092/tour-diary-generator/config"
	"github.com/Aashish23092/tour-diary-generator/handler"
	"github.com/Aashish23092/tour-diary-generator/service"
	"github.com/Aashish23092/tour-diary-generator/storage"
)

func main() {
	// Initialize configuration
	cfg := config.LoadConfig()

	if cfg.GinMode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}
	log.Println("TESSDATA_PREFIX set to:", cfg.TesseractDataPath)

	// Initialize Tesseract client
	tesseractClient := client.NewTesseractClient(cfg.TesseractDataPath)
	defer tesseractClient.Close()

	// Initialize PDF processor
	pdfProcessor := service.NewPDFProcessor()
	regexExtractor := service.NewRegexExtractor(pdfProcessor, tesseractClient)

	// Gemini free tier allows roughly 15 requests per minute
	limiter := client.NewRateLimiter(12, 5*time.Second)

	history := openHistory(cfg)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := history.Close(ctx); err != nil {
			log.Printf("Failed to close history store: %v", err)
		}
	}()

	// Initialize service layer
	diaryService := service.NewDiaryService(cfg,
		regexExtractor,
		service.GeminiGeneratorFactory(cfg.GeminiModel, limiter),
		service.RouteClientFactory(cfg.MapsBaseURL),
		history,
	)

	// Initialize handler layer
	router := handler.NewRouter(
		handler.NewDiaryHandler(diaryService, cfg.MaxFileSize),
		handler.NewLookupHandler(service.NewAllowanceService(), diaryService),
		cfg.AllowedOrigins,
	)

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      5 * time.Minute,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		log.Printf("Starting Tour Diary Generator on port %s (extractor=%s)", cfg.ServerPort, cfg.ExtractorMode)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited")
}

func openHistory(cfg *config.Config) storage.HistoryStore {
	if cfg.MongoURI == "" {
		log.Println("MONGO_URI not set, generation history is disabled")
		return storage.NoopStore{}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, err := storage.NewMongoStore(ctx, cfg.MongoURI, cfg.MongoDBName)
	if err != nil {
		log.Printf("Failed to connect to MongoDB, history disabled: %v", err)
		return storage.NoopStore{}
	}
	log.Printf("Connected to MongoDB database %s", cfg.MongoDBName)
	return store
}
