package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	SMTP     SMTPConfig
	Keys     APIKeys
	Ai       AIConfig
	Match    MatchConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
	DigestTo   string
}

type APIKeys struct {
	GoogleGemini   string
	GithubToken    string
	SlackBotToken  string
	SlackChannelId string
	EmbedTopic     string // embedding job topic
}

type AIConfig struct {
	EmbeddingProvider string // "gemini" or "ollama"
	OllamaBaseURL     string
	OllamaModel       string
}

// MatchConfig is the tuning surface of the matching engine. Weights are
// injected into the scorer at construction, nothing reads them globally.
type MatchConfig struct {
	EmbeddingWeight float64
	StackWeight     float64
	QualityWeight   float64
	MinStars        int
	CandidateCap    int
	ResultCap       int // 0 = unlimited
	MatchWorkers    int
	NotifyThreshold float64
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "GitScout"),
			DigestTo:   getEnv("DIGEST_RECIPIENT", ""),
		},
		Keys: APIKeys{
			GoogleGemini:   getEnv("GOOGLE_GEMINI_API_KEY", ""),
			GithubToken:    getEnv("GITHUB_TOKEN", ""),
			SlackBotToken:  getEnv("SLACK_BOT_TOKEN", ""),
			SlackChannelId: getEnv("SLACK_CHANNEL_ID", ""),
			EmbedTopic:     getEnv("EMBED_REPO_TOPIC_NAME", "EMBED_JOBS"),
		},
		Ai: AIConfig{
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "gemini"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:       getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
		},
		Match: MatchConfig{
			EmbeddingWeight: getEnvAsFloat("MATCH_EMBEDDING_WEIGHT", 0.5),
			StackWeight:     getEnvAsFloat("MATCH_STACK_WEIGHT", 0.3),
			QualityWeight:   getEnvAsFloat("MATCH_QUALITY_WEIGHT", 0.2),
			MinStars:        getEnvAsInt("MATCH_MIN_STARS", 100),
			CandidateCap:    getEnvAsInt("MATCH_CANDIDATE_CAP", 100),
			ResultCap:       getEnvAsInt("MATCH_RESULT_CAP", 0),
			MatchWorkers:    getEnvAsInt("MATCH_WORKERS", 4),
			NotifyThreshold: getEnvAsFloat("NOTIFY_SCORE_THRESHOLD", 0.7),
		},
	}
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
