package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/Aashish23092/tour-diary-generator/dto"
	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort        string
	GinMode           string
	TesseractDataPath string
	MaxFileSize       int64
	AllowedOrigins    []string

	ExtractorMode string
	GeminiAPIKey  string
	GeminiModel   string

	MapsAPIKey  string
	MapsBaseURL string

	MongoURI    string
	MongoDBName string

	Letterhead dto.Letterhead
}

// LoadConfig reads the environment, after loading a .env file when one exists.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return &Config{
		ServerPort:        getEnv("SERVER_PORT", "8080"),
		GinMode:           getEnv("GIN_MODE", ""),
		TesseractDataPath: getEnv("TESSDATA_PREFIX", "/usr/share/tesseract-ocr/5/tessdata/"),
		MaxFileSize:       int64(getEnvInt("MAX_FILE_SIZE_MB", 10)) * 1024 * 1024,
		AllowedOrigins:    splitList(getEnv("ALLOWED_ORIGINS", "*")),

		ExtractorMode: getEnv("EXTRACTOR_MODE", "auto"),
		GeminiAPIKey:  getEnv("GEMINI_API_KEY", ""),
		GeminiModel:   getEnv("GEMINI_MODEL", "gemini-1.5-flash"),

		MapsAPIKey:  getEnv("MAPS_API_KEY", ""),
		MapsBaseURL: getEnv("MAPS_BASE_URL", "https://serpapi.com/search.json"),

		MongoURI:    getEnv("MONGO_URI", ""),
		MongoDBName: getEnv("MONGO_DB_NAME", "tour_diary"),

		Letterhead: LetterheadFromEnv(),
	}
}

// DefaultLetterhead holds the texts printed when an extraction leaves a field empty.
func DefaultLetterhead() dto.Letterhead {
	return dto.Letterhead{
		EmployeeName:   "Vaibhav Kumar Kanubhai Chaudhari",
		Designation:    "Associate Professor",
		BudgetHead:     "303/2092",
		DepartmentLine: "Dept. of Entomology, N. M. Collage of Agriculture, NAU, Navsari - 396 450",
		Department:     "Dept. of Entomology",
		College:        "N. M. College of Agriculture",
		University:     "NAU, Navsari",
		DeparturePlace: "NAU, Navsari",
		Mode:           "Private Vehicle",
		ApprovedBy:     "Principal, NMCA, NAU",
		SystemNo:       "Unknown",
	}
}

// LetterheadFromEnv overrides DefaultLetterhead field by field.
func LetterheadFromEnv() dto.Letterhead {
	lh := DefaultLetterhead()
	lh.EmployeeName = getEnv("DEFAULT_EMPLOYEE_NAME", lh.EmployeeName)
	lh.Designation = getEnv("DEFAULT_DESIGNATION", lh.Designation)
	lh.BudgetHead = getEnv("DEFAULT_BUDGET_HEAD", lh.BudgetHead)
	lh.DepartmentLine = getEnv("DEFAULT_DEPARTMENT_LINE", lh.DepartmentLine)
	lh.Department = getEnv("DEFAULT_DEPARTMENT", lh.Department)
	lh.College = getEnv("DEFAULT_COLLEGE", lh.College)
	lh.University = getEnv("DEFAULT_UNIVERSITY", lh.University)
	lh.DeparturePlace = getEnv("DEFAULT_DEPARTURE_PLACE", lh.DeparturePlace)
	lh.Mode = getEnv("DEFAULT_MODE", lh.Mode)
	lh.ApprovedBy = getEnv("DEFAULT_APPROVED_BY", lh.ApprovedBy)
	return lh
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
