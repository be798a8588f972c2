package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	// Auth
	AssistantAPIKey string

	// Summarization capability
	LMBaseURL    string
	SummaryModel string
	LLMTimeout   time.Duration

	// Upload limits
	MaxUploadBytes int64

	// Pipeline bounds
	ChunkMaxWords   int
	FastModeChunks  int
	SummaryMinWords int
	SummaryMaxWords int
	RefineMinWords  int
	RefineMaxWords  int
	RefineThreshold int

	// Minimum cleaned-text length before the too-short warning applies.
	MinDocumentChars int

	// Session state
	SessionTTL time.Duration

	// PDF
	PDFFallbackPdftotext bool
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8090"),

		AssistantAPIKey: os.Getenv("ASSISTANT_API_KEY"),

		LMBaseURL:    envOr("LM_BASE_URL", "http://localhost:1234/v1"),
		SummaryModel: envOr("SUMMARY_MODEL", "distilbart-cnn-12-6"),
		LLMTimeout:   envDuration("LLM_TIMEOUT", 120*time.Second),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB

		ChunkMaxWords:   envInt("CHUNK_MAX_WORDS", 250),
		FastModeChunks:  envInt("FAST_MODE_CHUNKS", 4),
		SummaryMinWords: envInt("SUMMARY_MIN_WORDS", 100),
		SummaryMaxWords: envInt("SUMMARY_MAX_WORDS", 200),
		RefineMinWords:  envInt("REFINE_MIN_WORDS", 150),
		RefineMaxWords:  envInt("REFINE_MAX_WORDS", 250),
		RefineThreshold: envInt("REFINE_THRESHOLD_WORDS", 300),

		MinDocumentChars: envInt("MIN_DOCUMENT_CHARS", 50),

		SessionTTL: envDuration("SESSION_TTL", 1*time.Hour),

		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", true),
	}

	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.ChunkMaxWords <= 0 {
		cfg.ChunkMaxWords = 250
	}
	if cfg.FastModeChunks <= 0 {
		cfg.FastModeChunks = 4
	}
	if cfg.SummaryMinWords <= 0 {
		cfg.SummaryMinWords = 100
	}
	if cfg.SummaryMaxWords <= cfg.SummaryMinWords {
		cfg.SummaryMaxWords = cfg.SummaryMinWords * 2
	}
	if cfg.RefineMinWords <= 0 {
		cfg.RefineMinWords = 150
	}
	if cfg.RefineMaxWords <= cfg.RefineMinWords {
		cfg.RefineMaxWords = cfg.RefineMinWords + 100
	}
	if cfg.RefineThreshold <= 0 {
		cfg.RefineThreshold = 300
	}
	if cfg.MinDocumentChars < 0 {
		cfg.MinDocumentChars = 50
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 1 * time.Hour
	}
	if cfg.LLMTimeout <= 0 {
		cfg.LLMTimeout = 120 * time.Second
	}

	return cfg
}

func (c Config) Validate() error {
	if c.AssistantAPIKey == "" {
		return fmt.Errorf("ASSISTANT_API_KEY is required")
	}
	if c.SummaryModel == "" {
		return fmt.Errorf("SUMMARY_MODEL must not be empty")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
