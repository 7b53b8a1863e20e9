package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort    string
	DatabaseDSN string
	JWTSecret   string

	// Admin role secret. Either AdminSecret (compared verbatim) or
	// AdminSecretHash (bcrypt) must be set; the hash wins if both are.
	AdminSecret     string
	AdminSecretHash string

	// LLM translator (OpenAI-compatible chat completions endpoint)
	LLMBaseURL string
	LLMAPIKey  string
	LLMModel   string

	// Directory with knowledge base documents (.txt, .md, .pdf)
	KnowledgeDir string
}

func Load() *Config {
	// .env is optional, real deployments set the variables directly
	if err := godotenv.Load(); err != nil {
		log.Println("[INFO] no .env file found, using environment variables")
	}

	cfg := &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		DatabaseDSN:     getEnv("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=lagerbot port=5432 sslmode=disable"),
		JWTSecret:       getEnv("JWT_SECRET", ""),
		AdminSecret:     getEnv("ADMIN_SECRET", ""),
		AdminSecretHash: getEnv("ADMIN_SECRET_HASH", ""),
		LLMBaseURL:      getEnv("LLM_BASE_URL", "https://api.openai.com/v1"),
		LLMAPIKey:       getEnv("LLM_API_KEY", ""),
		LLMModel:        getEnv("LLM_MODEL", "gpt-4o-mini"),
		KnowledgeDir:    getEnv("KNOWLEDGE_DIR", "./knowledge"),
	}

	if cfg.JWTSecret == "" {
		log.Fatal("[FATAL] JWT_SECRET is not set")
	}
	if len(cfg.JWTSecret) < 32 {
		log.Fatal("[FATAL] JWT_SECRET must be at least 32 characters")
	}
	if cfg.AdminSecret == "" && cfg.AdminSecretHash == "" {
		log.Fatal("[FATAL] ADMIN_SECRET or ADMIN_SECRET_HASH must be set")
	}
	if cfg.LLMAPIKey == "" {
		log.Println("[WARN] LLM_API_KEY is not set, free-text interpretation will fail")
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
