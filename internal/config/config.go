package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	RawDataPath       string
	ProcessedDataPath string
	DBPath            string
	OutputDir         string

	ServerPort         int
	DevMode            bool
	CORSAllowedOrigins []string

	CacheEnabled       bool
	RefreshIntervalSec int
	RefreshAutoExport  bool

	DashboardConfigPath string
	Pages               Pages
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		RawDataPath:       getEnv("RAW_DATA_PATH", filepath.Join("dataset", "raw", "data.csv")),
		ProcessedDataPath: getEnv("PROCESSED_DATA_PATH", filepath.Join("dataset", "processed", "data.csv")),
		DBPath:            getEnv("DB_PATH", filepath.Join(cwd, "data", "app.db")),
		OutputDir:         getEnv("OUTPUT_DIR", filepath.Join(cwd, "out")),

		ServerPort:         getEnvInt("SERVER_PORT", 8501),
		DevMode:            getEnvBool("DEV_MODE", false),
		CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:5173"}),

		CacheEnabled:       getEnvBool("CACHE_ENABLED", true),
		RefreshIntervalSec: getEnvInt("REFRESH_INTERVAL_SEC", 30),
		RefreshAutoExport:  getEnvBool("REFRESH_AUTO_EXPORT", false),

		DashboardConfigPath: getEnv("DASHBOARD_CONFIG", "dashboard.toml"),
	}

	pages, err := LoadPages(cfg.DashboardConfigPath)
	if err != nil {
		return Config{}, fmt.Errorf("load dashboard config: %w", err)
	}
	cfg.Pages = pages

	return cfg, nil
}

func (c Config) Require(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("missing required env var: %s", name)
	}
	return nil
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

func getEnvBool(key string, fallback bool) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(key, "")))
	if value == "" {
		return fallback
	}
	if value == "1" || value == "true" || value == "yes" || value == "on" {
		return true
	}
	if value == "0" || value == "false" || value == "no" || value == "off" {
		return false
	}
	return fallback
}

func getEnvList(key string, fallback []string) []string {
	value := strings.TrimSpace(getEnv(key, ""))
	if value == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
