package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/storefront/imgupload/internal/pkg/validator"
)

type Config struct {
	// Server
	Port         string        `json:"port" validate:"required,numeric"`
	Env          string        `json:"env" validate:"required,oneof=development dev production test"`
	ReadTimeout  time.Duration `json:"read_timeout" validate:"gt=0"`
	WriteTimeout time.Duration `json:"write_timeout" validate:"gt=0"`
	IdleTimeout  time.Duration `json:"idle_timeout" validate:"gt=0"`

	// CORS
	AllowedOrigins []string `json:"allowed_origins" validate:"min=1"`

	// Storage layout
	UploadDir    string `json:"upload_dir" validate:"required"`
	ThumbnailDir string `json:"thumbnail_dir" validate:"required"`

	// Intake limits
	MaxFileSize   int64 `json:"max_file_size" validate:"gt=0"`
	MaxBatchFiles int   `json:"max_batch_files" validate:"gte=1"`

	// Derivatives
	ThumbnailWidth  int `json:"thumbnail_width" validate:"gte=1"`
	ThumbnailHeight int `json:"thumbnail_height" validate:"gte=1"`
	JPEGQuality     int `json:"jpeg_quality" validate:"gte=1,lte=100"`

	// Logging
	LogLevel string `json:"log_level"`
	LogFile  string `json:"log_file"`
}

func Load() *Config {
	// Load .env file in development
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	uploadDir := getEnv("UPLOAD_DIR", "uploads")

	return &Config{
		// Server
		Port:         getEnv("PORT", "3000"),
		Env:          getEnv("ENV", "development"),
		ReadTimeout:  parseDuration(getEnv("READ_TIMEOUT", "15s"), 15*time.Second),
		WriteTimeout: parseDuration(getEnv("WRITE_TIMEOUT", "60s"), 60*time.Second),
		IdleTimeout:  parseDuration(getEnv("IDLE_TIMEOUT", "60s"), 60*time.Second),

		// CORS
		AllowedOrigins: parseStringSlice(getEnv("ALLOWED_ORIGINS", "*")),

		// Storage layout
		UploadDir:    uploadDir,
		ThumbnailDir: getEnv("THUMBNAIL_DIR", filepath.Join(uploadDir, "thumbnails")),

		// Intake limits
		MaxFileSize:   parseInt64(getEnv("MAX_FILE_SIZE", "5242880"), 5*1024*1024),
		MaxBatchFiles: parseInt(getEnv("MAX_BATCH_FILES", "10"), 10),

		// Derivatives
		ThumbnailWidth:  parseInt(getEnv("THUMBNAIL_WIDTH", "200"), 200),
		ThumbnailHeight: parseInt(getEnv("THUMBNAIL_HEIGHT", "200"), 200),
		JPEGQuality:     parseInt(getEnv("JPEG_QUALITY", "80"), 80),

		// Logging
		LogLevel: getEnv("LOG_LEVEL", "debug"),
		LogFile:  getEnv("LOG_FILE", ""),
	}
}

// Validate checks the loaded values and reports every invalid field at once.
func (c *Config) Validate() error {
	if errs := validator.Validate(c); errs != nil {
		return fmt.Errorf("invalid configuration: %w", errs)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func parseDuration(s string, defaultValue time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return defaultValue
	}
	return d
}

func parseInt(s string, defaultValue int) int {
	value, err := strconv.Atoi(s)
	if err != nil {
		return defaultValue
	}
	return value
}

func parseInt64(s string, defaultValue int64) int64 {
	value, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func parseStringSlice(s string) []string {
	if s == "" {
		return []string{}
	}
	// Simple split by comma
	var result []string
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == ',' {
			if start < i {
				result = append(result, s[start:i])
			}
			start = i + 1
		}
	}
	return result
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Env == "development" || c.Env == "dev"
}
