package profile

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Profile is the configuration to start the main server.
type Profile struct {
	// Mode can be "prod" or "dev" or "demo"
	Mode string
	// Addr is the binding address for server
	Addr string
	// Port is the binding port for server
	Port int
	// Data is the data directory
	Data string
	// DSN points to where inquora stores its own data
	DSN string
	// Driver is the database driver (sqlite or postgres)
	Driver string
	// Version is the current version of server
	Version string

	// LLM configuration
	LLMProvider    string  // INQUORA_LLM_PROVIDER (default: openai)
	LLMModel       string  // INQUORA_LLM_MODEL (default: gpt-4o-mini)
	LLMAPIKey      string  // INQUORA_LLM_API_KEY
	LLMBaseURL     string  // INQUORA_LLM_BASE_URL
	LLMMaxTokens   int     // INQUORA_LLM_MAX_TOKENS (default: 2048)
	LLMTemperature float32 // INQUORA_LLM_TEMPERATURE (default: 0.7)
	// LLMMaxInflight caps concurrent upstream model calls.
	LLMMaxInflight int // INQUORA_LLM_MAX_INFLIGHT (default: 4)

	// Interview tuning
	TargetDuration time.Duration // INQUORA_INTERVIEW_TARGET_DURATION (default: 10m)
	MinExchanges   int           // INQUORA_INTERVIEW_MIN_EXCHANGES (default: 8)
	IdleThreshold  time.Duration // INQUORA_INTERVIEW_IDLE_THRESHOLD (default: 2m)
	HistoryWindow  int           // INQUORA_INTERVIEW_HISTORY_WINDOW (default: 10)
}

func (p *Profile) IsDev() bool {
	return p.Mode != "prod"
}

// IsLLMEnabled returns true if an LLM provider is usable. Ollama needs no key.
func (p *Profile) IsLLMEnabled() bool {
	return p.LLMProvider == "ollama" || p.LLMAPIKey != ""
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnvOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getDurationEnvOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

// FromEnv loads configuration from INQUORA_* environment variables.
func (p *Profile) FromEnv() {
	p.LLMProvider = getEnvOrDefault("INQUORA_LLM_PROVIDER", "openai")
	p.LLMModel = getEnvOrDefault("INQUORA_LLM_MODEL", "gpt-4o-mini")
	p.LLMAPIKey = os.Getenv("INQUORA_LLM_API_KEY")
	p.LLMBaseURL = os.Getenv("INQUORA_LLM_BASE_URL")
	p.LLMMaxTokens = getIntEnvOrDefault("INQUORA_LLM_MAX_TOKENS", 2048)
	p.LLMMaxInflight = getIntEnvOrDefault("INQUORA_LLM_MAX_INFLIGHT", 4)
	if value := os.Getenv("INQUORA_LLM_TEMPERATURE"); value != "" {
		if f, err := strconv.ParseFloat(value, 32); err == nil {
			p.LLMTemperature = float32(f)
		}
	}
	if p.LLMTemperature == 0 {
		p.LLMTemperature = 0.7
	}

	p.TargetDuration = getDurationEnvOrDefault("INQUORA_INTERVIEW_TARGET_DURATION", 10*time.Minute)
	p.MinExchanges = getIntEnvOrDefault("INQUORA_INTERVIEW_MIN_EXCHANGES", 8)
	p.IdleThreshold = getDurationEnvOrDefault("INQUORA_INTERVIEW_IDLE_THRESHOLD", 2*time.Minute)
	p.HistoryWindow = getIntEnvOrDefault("INQUORA_INTERVIEW_HISTORY_WINDOW", 10)
}

func checkDataDir(dataDir string) (string, error) {
	// Convert to absolute path if relative path is supplied.
	if !filepath.IsAbs(dataDir) {
		relativeDir := filepath.Join(filepath.Dir(os.Args[0]), dataDir)
		absDir, err := filepath.Abs(relativeDir)
		if err != nil {
			return "", err
		}
		dataDir = absDir
	}

	// Trim trailing \ or / in case user supplies
	dataDir = strings.TrimRight(dataDir, "\\/")
	if _, err := os.Stat(dataDir); err != nil {
		return "", errors.Wrapf(err, "unable to access data folder %s", dataDir)
	}
	return dataDir, nil
}

func (p *Profile) Validate() error {
	if p.Mode != "demo" && p.Mode != "dev" && p.Mode != "prod" {
		p.Mode = "demo"
	}

	if p.Driver == "" {
		p.Driver = "sqlite"
	}
	if p.Driver != "sqlite" && p.Driver != "postgres" {
		return errors.Errorf("unknown db driver %q: only 'sqlite' and 'postgres' are supported", p.Driver)
	}

	if p.TargetDuration <= 0 {
		p.TargetDuration = 10 * time.Minute
	}
	if p.MinExchanges <= 0 {
		p.MinExchanges = 8
	}
	if p.IdleThreshold <= 0 {
		p.IdleThreshold = 2 * time.Minute
	}
	if p.HistoryWindow <= 0 {
		p.HistoryWindow = 10
	}

	if p.Driver == "sqlite" {
		dataDir, err := checkDataDir(p.Data)
		if err != nil {
			return errors.Wrap(err, "failed to check data dir")
		}
		p.Data = dataDir
		if p.DSN == "" {
			dbFile := fmt.Sprintf("inquora_%s.db", p.Mode)
			p.DSN = filepath.Join(dataDir, dbFile)
		}
	} else if p.DSN == "" {
		return errors.New("postgres driver requires a DSN")
	}

	return nil
}
