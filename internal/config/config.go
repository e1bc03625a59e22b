package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	DBPath    string
	OutputDir string

	SearchLimit    int
	TranslateLimit int
	MinScore       float64

	HierarchyMinItems int

	WatchInboxDir     string
	WatchProcessedDir string
	WatchIntervalSec  int
	WatchBatchMax     int
	WatchMoveDone     bool
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		DBPath:    getEnv("DB_PATH", filepath.Join(cwd, "data", "catalog.db")),
		OutputDir: getEnv("OUTPUT_DIR", filepath.Join(cwd, "out")),

		SearchLimit:    getEnvInt("SEARCH_LIMIT", 50),
		TranslateLimit: getEnvInt("TRANSLATE_LIMIT", 20),
		MinScore:       getEnvFloat("TRANSLATE_MIN_SCORE", 0.2),

		HierarchyMinItems: getEnvInt("HIERARCHY_MIN_ITEMS", 2),

		WatchInboxDir:     getEnv("WATCH_INBOX_DIR", filepath.Join(cwd, "data", "inbox")),
		WatchProcessedDir: getEnv("WATCH_PROCESSED_DIR", filepath.Join(cwd, "data", "processed")),
		WatchIntervalSec:  getEnvInt("WATCH_INTERVAL_SEC", 30),
		WatchBatchMax:     getEnvInt("WATCH_BATCH_MAX", 20),
		WatchMoveDone:     getEnvBool("WATCH_MOVE_DONE", true),
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvFloat(key string, fallback float64) float64 {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(key, "")))
	switch value {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return fallback
}
