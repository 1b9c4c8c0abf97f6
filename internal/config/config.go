package config

import (
	"os"

	"github.com/joho/godotenv"
)

type StorageBackend string

const (
	StorageMemory    StorageBackend = "memory"
	StorageSQLite    StorageBackend = "sqlite"
	StorageFirestore StorageBackend = "firestore"
)

type LLMBackend string

const (
	LLMMock   LLMBackend = "mock"
	LLMGemini LLMBackend = "gemini"
	LLMOpenAI LLMBackend = "openai"
)

type Config struct {
	Port string

	StorageBackend StorageBackend
	SQLitePath     string

	GCPProjectID string
	GCPLocation  string

	LLMBackend    LLMBackend
	ModelName     string
	OpenAIKey     string
	OpenAIBaseURL string

	// DevTokens maps bearer tokens to owner ids for the static
	// identity resolver used in local mode.
	DevTokens string
}

// Load reads configuration from the environment. A .env file in the
// working directory is merged in first when present.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port: getEnv("TASKPILOT_PORT", "8080"),

		StorageBackend: StorageBackend(getEnv("TASKPILOT_STORAGE_BACKEND", string(StorageMemory))),
		SQLitePath:     getEnv("TASKPILOT_SQLITE_PATH", "taskpilot.db"),

		GCPProjectID: getEnv("TASKPILOT_GCP_PROJECT", ""),
		GCPLocation:  getEnv("TASKPILOT_GCP_LOCATION", "us-central1"),

		LLMBackend:    LLMBackend(getEnv("TASKPILOT_LLM_BACKEND", string(LLMMock))),
		ModelName:     getEnv("TASKPILOT_MODEL", ""),
		OpenAIKey:     getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL: getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),

		DevTokens: getEnv("TASKPILOT_DEV_TOKENS", ""),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
