package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// defaultModels is the preference order used to pick a Gemini model at
// startup. Earlier entries win when the API reports them available.
var defaultModels = []string{
	"gemini-2.5-flash-lite",
	"gemini-2.5-flash",
	"gemini-2.5-pro",
	"gemini-1.5-flash",
	"gemini-1.5-pro",
	"gemini-pro",
}

type Config struct {
	ListenAddr      string
	GeminiAPIKey    string
	AnalyzerBackend string
	GeminiModels    []string
	KnowledgePath   string
	LogLevel        string
	LogFile         string
}

// Load reads configuration from the environment. A .env file in the working
// directory is merged in first when present; real environment variables win.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ListenAddr:      listenAddr(),
		GeminiAPIKey:    getEnv("GEMINI_API_KEY", ""),
		AnalyzerBackend: getEnv("ANALYZER_BACKEND", "gemini"),
		GeminiModels:    splitModels(getEnv("GEMINI_MODELS", "")),
		KnowledgePath:   getEnv("KNOWLEDGE_PATH", ""),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFile:         getEnv("LOG_FILE", ""),
	}
}

// listenAddr honors LISTEN_ADDR, then PORT, then the default :8000.
func listenAddr() string {
	if addr, ok := os.LookupEnv("LISTEN_ADDR"); ok {
		return addr
	}
	if port, ok := os.LookupEnv("PORT"); ok {
		return ":" + port
	}
	return ":8000"
}

func splitModels(raw string) []string {
	if raw == "" {
		return defaultModels
	}
	var models []string
	for _, m := range strings.Split(raw, ",") {
		if m = strings.TrimSpace(m); m != "" {
			models = append(models, m)
		}
	}
	if len(models) == 0 {
		return defaultModels
	}
	return models
}

func getEnv(key, defaultVal string) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	return defaultVal
}
