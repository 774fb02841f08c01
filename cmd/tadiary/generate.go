package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/Aashish23092/tour-diary-generator/client"
	"github.com/Aashish23092/tour-diary-generator/dto"
	"github.com/Aashish23092/tour-diary-generator/service"
	"github.com/Aashish23092/tour-diary-generator/storage"
)

var generateCmd = &cobra.Command{
	Use:   "generate [files...]",
	Short: "Generate a tour diary from PDF documents",
	Long: `Reads the given PDFs (tour approvals, salary slips, map screenshots,
tickets) and writes the tour diary.

Examples:
  tadiary generate tour.pdf salary.pdf
  tadiary generate *.pdf --format pdf --output diary.pdf
  tadiary generate tour.pdf --preview`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringP("format", "f", dto.FormatDOCX, "output format: docx, pdf, xlsx")
	generateCmd.Flags().StringP("output", "o", "", "output file (default: NAU_Tour_Diary_Landscape.<ext>)")
	generateCmd.Flags().String("password", "", "password for protected PDFs")
	generateCmd.Flags().Bool("preview", false, "print the merged records as JSON instead of rendering")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	format, _ := cmd.Flags().GetString("format")
	output, _ := cmd.Flags().GetString("output")
	password, _ := cmd.Flags().GetString("password")
	preview, _ := cmd.Flags().GetBool("preview")

	docs, err := readDocuments(args, password)
	if err != nil {
		return err
	}

	cfg := loadConfig()
	tesseractClient := client.NewTesseractClient(cfg.TesseractDataPath)
	defer tesseractClient.Close()

	diaryService := service.NewDiaryService(cfg,
		service.NewRegexExtractor(service.NewPDFProcessor(), tesseractClient),
		service.GeminiGeneratorFactory(cfg.GeminiModel, client.NewRateLimiter(12, 5*time.Second)),
		service.RouteClientFactory(cfg.MapsBaseURL),
		storage.NewMemoryStore(),
	)

	req := dto.GenerateRequest{
		RequestID: uuid.NewString(),
		Documents: docs,
		Format:    strings.ToLower(format),
	}

	if preview {
		resp, err := diaryService.ExtractOnly(ctx, req)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}

	out, err := diaryService.Generate(ctx, req)
	if err != nil {
		return err
	}

	if output == "" {
		output = out.Filename
	}
	if err := os.WriteFile(output, out.Data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}

	for _, s := range out.Diary.Skipped {
		fmt.Fprintf(cmd.ErrOrStderr(), "skipped %s: %s\n", s.Filename, s.Reason)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d trips, %.1f km, DA Rs. %s)\n",
		output, len(out.Diary.Trips), out.Diary.TotalKm, out.Diary.TotalDA.StringFixed(2))
	return nil
}

func readDocuments(paths []string, password string) ([]dto.Document, error) {
	docs := make([]dto.Document, 0, len(paths))
	for _, p := range paths {
		if !strings.EqualFold(filepath.Ext(p), ".pdf") {
			return nil, fmt.Errorf("invalid file type for %s. Supported: PDF", p)
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", p, err)
		}
		docs = append(docs, dto.Document{
			Filename: filepath.Base(p),
			MIMEType: "application/pdf",
			Data:     data,
			Password: password,
		})
	}
	return docs, nil
}
