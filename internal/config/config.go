package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Auth      AuthConfig
	SMTP      SMTPConfig
	Ai        AIConfig
	Agent     AgentConfig
	Retrieval RetrievalConfig
	Ingestion IngestionConfig
	Tracing   TracingConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string // empty disables event publishing
	RedisURL           string // empty keeps limiter counters in memory
	RateLimitPerSecond int
}

type DatabaseConfig struct {
	Connection string
}

type AuthConfig struct {
	JWTSecret         string
	AccessTokenTTL    time.Duration
	AllowedDomain     string
	DefaultSeedSecret string
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
}

type AIConfig struct {
	OllamaBaseURL  string
	EmbeddingModel string
	LLMProvider    string // "ollama" or "huggingface"
	LLMModel       string
	HuggingFaceKey string
}

type AgentConfig struct {
	Pipeline        string // "agent" or "retrieval_chain"
	MaxIterations   int
	MaxParseRetries int
	HistoryTurns    int
	RefusalPhrases  []string
}

type RetrievalConfig struct {
	Collection        string
	TopK              int
	EmbeddingCacheTTL time.Duration
}

type IngestionConfig struct {
	DataDir      string
	ChunkSize    int
	ChunkOverlap int
	Topic        string
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
			Port:               getEnv("APP_PORT", "8000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/knagent.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			NatsURL:            getEnv("NATS_URL", ""),
			RedisURL:           getEnv("REDIS_URL", ""),
			RateLimitPerSecond: getEnvAsInt("RATE_LIMIT_PER_SECOND", 10),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Auth: AuthConfig{
			JWTSecret:         getEnv("JWT_SECRET", ""),
			AccessTokenTTL:    time.Duration(getEnvAsInt("ACCESS_TOKEN_EXPIRE_MINUTES", 30)) * time.Minute,
			AllowedDomain:     getEnv("SIGNUP_ALLOWED_DOMAIN", "@knagent.com"),
			DefaultSeedSecret: getEnv("SEED_DEFAULT_PASSWORD", "secret"),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "KNAgent"),
		},
		Ai: AIConfig{
			OllamaBaseURL:  getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			EmbeddingModel: getEnv("OLLAMA_EMBEDDING_MODEL", "all-minilm"),
			LLMProvider:    getEnv("LLM_PROVIDER", "ollama"),
			LLMModel:       getEnv("LLM_MODEL", "llama3"),
			HuggingFaceKey: getEnv("HUGGINGFACE_API_KEY", ""),
		},
		Agent: AgentConfig{
			Pipeline:        getEnv("AGENT_PIPELINE", "agent"),
			MaxIterations:   getEnvAsInt("AGENT_MAX_ITERATIONS", 8),
			MaxParseRetries: getEnvAsInt("AGENT_MAX_PARSE_RETRIES", 3),
			HistoryTurns:    getEnvAsInt("AGENT_HISTORY_TURNS", 6),
			RefusalPhrases:  getEnvAsList("GAP_REFUSAL_PHRASES", "|", nil),
		},
		Retrieval: RetrievalConfig{
			Collection:        getEnv("VECTOR_COLLECTION_NAME", "enterprise_knowledge_base"),
			TopK:              getEnvAsInt("RETRIEVER_TOP_K", 5),
			EmbeddingCacheTTL: time.Duration(getEnvAsInt("EMBEDDING_CACHE_TTL_MINUTES", 60)) * time.Minute,
		},
		Ingestion: IngestionConfig{
			DataDir:      getEnv("INGEST_DATA_DIR", "data"),
			ChunkSize:    getEnvAsInt("INGEST_CHUNK_SIZE", 400),
			ChunkOverlap: getEnvAsInt("INGEST_CHUNK_OVERLAP", 50),
			Topic:        getEnv("INGEST_TOPIC", "knowledge.chunks"),
		},
		Tracing: TracingConfig{
			Enabled:     getEnv("OTEL_ENABLED", "false") == "true",
			Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
			ServiceName: getEnv("OTEL_SERVICE_NAME", "knagent-backend"),
		},
	}
}

var ErrMissingJWTSecret = errors.New("JWT_SECRET is not set")

// Validate reports settings the service cannot run without.
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return ErrMissingJWTSecret
	}
	return nil
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

func getEnvAsList(key, sep string, fallback []string) []string {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(raw, sep) {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
