package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App          AppConfig
	Ai           AIConfig
	Knowledge    KnowledgeConfig
	Conversation ConversationConfig
	Tracing      TracingConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	LLMLogFilePath     string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	PortalName         string
	EventTopic         string
}

type AIConfig struct {
	LLMProvider string // "openai", "ollama", "huggingface" or "none"
	LLMModel    string
	LLMBaseURL  string
	LLMApiKey   string
	Timeout     time.Duration
	Temperature float64
	MaxTokens   int
}

type KnowledgeConfig struct {
	KnowledgeBasePath  string
	StatusRegistryPath string
	SynthesizeUnknown  bool
	DocumentPath       string
	WatchDocument      bool
}

type ConversationConfig struct {
	Store       string // "memory" or "redis"
	TTL         time.Duration
	MaxMessages int
}

type TracingConfig struct {
	Enabled     bool
	Endpoint    string
	ServiceName string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			LLMLogFilePath:     getEnv("LLM_LOG_FILE_PATH", "logs/llm.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			NatsURL:            getEnv("NATS_URL", ""),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			PortalName:         getEnv("PORTAL_NAME", "Absher"),
			EventTopic:         getEnv("CHAT_EVENT_TOPIC", "chat.resolved"),
		},
		Ai: AIConfig{
			LLMProvider: getEnv("LLM_PROVIDER", "none"),
			LLMModel:    getEnv("LLM_MODEL", ""),
			LLMBaseURL:  getEnv("LLM_BASE_URL", ""),
			LLMApiKey:   getEnv("LLM_API_KEY", ""),
			Timeout:     getEnvAsDuration("LLM_TIMEOUT", 30*time.Second),
			Temperature: getEnvAsFloat("LLM_TEMPERATURE", 0.7),
			MaxTokens:   getEnvAsInt("LLM_MAX_TOKENS", 500),
		},
		Knowledge: KnowledgeConfig{
			KnowledgeBasePath:  getEnv("KNOWLEDGE_BASE_PATH", "widget/knowledge-base.json"),
			StatusRegistryPath: getEnv("STATUS_REGISTRY_PATH", ""),
			SynthesizeUnknown:  getEnvAsBool("STATUS_SYNTHESIZE_UNKNOWN", true),
			DocumentPath:       getEnv("DOCUMENT_PATH", ""),
			WatchDocument:      getEnvAsBool("DOCUMENT_WATCH", false),
		},
		Conversation: ConversationConfig{
			Store:       strings.ToLower(getEnv("CONVERSATION_STORE", "memory")),
			TTL:         getEnvAsDuration("CONVERSATION_TTL", 30*time.Minute),
			MaxMessages: getEnvAsInt("CONVERSATION_MAX_MESSAGES", 50),
		},
		Tracing: TracingConfig{
			Enabled:     getEnvAsBool("OTEL_ENABLED", false),
			Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
			ServiceName: getEnv("OTEL_SERVICE_NAME", "support-assistant-be"),
		},
	}
}

// IsProduction reports whether the app runs with GO_ENV=production
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}

// getEnvAsDuration accepts Go durations ("45s") or plain seconds ("45")
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	if seconds, err := strconv.Atoi(strValue); err == nil {
		return time.Duration(seconds) * time.Second
	}
	return fallback
}
